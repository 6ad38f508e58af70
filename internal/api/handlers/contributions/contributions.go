package contributions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"famigift/internal/models"
	"famigift/internal/repositories/sqlconnect"
	"famigift/internal/services"
	"famigift/pkg/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type contributionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Message     *string          `json:"message"`
	IsAnonymous *bool            `json:"is_anonymous"`
}

// giftFundingState is the gift snapshot taken under row lock before a
// contribution is written or resized.
type giftFundingState struct {
	OwnerID     int
	Price       decimal.Decimal
	Contributed decimal.Decimal
}

// lockGiftForFunding locks the gift row and sums its current contributions,
// optionally excluding one contribution so its replacement amount can be
// validated against the others.
func lockGiftForFunding(ctx context.Context, tx *sql.Tx, giftID, excludeContributionID int) (giftFundingState, error) {
	var state giftFundingState

	err := tx.QueryRowContext(ctx, `
		SELECT owner_id, price FROM gifts WHERE id = ? FOR UPDATE
	`, giftID).Scan(&state.OwnerID, &state.Price)
	if err != nil {
		if err == sql.ErrNoRows {
			return state, services.ErrGiftNotFound
		}
		return state, utils.ErrorHandler(err, "error fetching gift")
	}

	var total sql.NullString
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM contributions WHERE gift_id = ? AND id != ?
	`, giftID, excludeContributionID).Scan(&total)
	if err != nil {
		return state, utils.ErrorHandler(err, "error summing contributions")
	}

	state.Contributed = decimal.Zero
	if total.Valid {
		state.Contributed, err = decimal.NewFromString(total.String)
		if err != nil {
			return state, utils.ErrorHandler(err, "error parsing contribution total")
		}
	}

	return state, nil
}

func isGiftFamilyMember(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}, giftID, userID int) (bool, error) {
	var isMember bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM gift_families gf
			INNER JOIN family_members fm ON fm.family_id = gf.family_id
			WHERE gf.gift_id = ? AND fm.user_id = ?
		)
	`, giftID, userID).Scan(&isMember)
	return isMember, err
}

// FUNC TO CONTRIBUTE TO A GIFT
func ContributeHandler(w http.ResponseWriter, r *http.Request) {
	giftID, err := strconv.Atoi(r.PathValue("giftId"))
	if err != nil {
		utils.WriteError(w, "invalid gift ID", http.StatusBadRequest)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, err := utils.UserIDFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req contributionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Amount == nil {
		utils.WriteError(w, "amount is required", http.StatusBadRequest)
		return
	}

	message := ""
	if req.Message != nil {
		message = *req.Message
	}
	isAnonymous := false
	if req.IsAnonymous != nil {
		isAnonymous = *req.IsAnonymous
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.Logger.Errorf("failed to start transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	state, err := lockGiftForFunding(ctx, tx, giftID, 0)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, services.ErrGiftNotFound) {
			utils.WriteError(w, "gift not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if state.OwnerID == userID {
		tx.Rollback()
		utils.WriteError(w, "you cannot contribute to your own gift", http.StatusBadRequest)
		return
	}

	isMember, err := isGiftFamilyMember(ctx, tx, giftID, userID)
	if err != nil {
		tx.Rollback()
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !isMember {
		tx.Rollback()
		utils.WriteError(w, "forbidden: you do not share a family with this gift", http.StatusForbidden)
		return
	}

	if err := services.CheckCeiling(state.Price, state.Contributed, *req.Amount); err != nil {
		tx.Rollback()
		if errors.Is(err, services.ErrNonPositiveValue) {
			utils.WriteError(w, "amount must be greater than 0", http.StatusBadRequest)
			return
		}
		remaining := services.Remaining(state.Price, state.Contributed)
		utils.WriteError(w, "contribution exceeds the remaining amount of "+remaining.StringFixed(2), http.StatusBadRequest)
		return
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO contributions (gift_id, user_id, amount, message, is_anonymous)
		VALUES (?, ?, ?, ?, ?)
	`, giftID, userID, *req.Amount, message, isAnonymous)
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to create contribution: %v", err)
		utils.WriteError(w, "failed to create contribution", http.StatusInternalServerError)
		return
	}

	contributionID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err = tx.Commit(); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to commit transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	remaining := services.Remaining(state.Price, state.Contributed.Add(*req.Amount))

	utils.WriteJSONStatus(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "contribution recorded successfully",
		"data": map[string]interface{}{
			"contribution_id": contributionID,
			"gift_id":         giftID,
			"amount":          *req.Amount,
			"remaining":       remaining,
		},
	})
}

// FUNC TO LIST A GIFT'S CONTRIBUTIONS
//
// The gift owner is refused outright, even when they belong to a shared
// family. Anonymous rows come back with no contributor name.
func ListGiftContributionsHandler(w http.ResponseWriter, r *http.Request) {
	giftID, err := strconv.Atoi(r.PathValue("giftId"))
	if err != nil {
		utils.WriteError(w, "invalid gift ID", http.StatusBadRequest)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, err := utils.UserIDFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var ownerID int
	var price decimal.Decimal
	err = db.QueryRowContext(ctx, "SELECT owner_id, price FROM gifts WHERE id = ?", giftID).Scan(&ownerID, &price)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "gift not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if ownerID == userID {
		utils.WriteError(w, "forbidden: the recipient cannot view contributions to their gift", http.StatusForbidden)
		return
	}

	isMember, err := isGiftFamilyMember(ctx, db, giftID, userID)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !isMember {
		utils.WriteError(w, "forbidden: you do not share a family with this gift", http.StatusForbidden)
		return
	}

	rows, err := db.QueryContext(ctx, `
		SELECT c.id, c.gift_id, c.user_id, c.amount, c.message, c.is_anonymous, c.created_at, u.username
		FROM contributions c
		INNER JOIN users u ON u.id = c.user_id
		WHERE c.gift_id = ?
		ORDER BY c.created_at, c.id
	`, giftID)
	if err != nil {
		utils.Logger.Errorf("failed to fetch contributions: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	views := make([]models.ContributionView, 0)
	total := decimal.Zero
	for rows.Next() {
		var c models.Contribution
		var username string
		if err := rows.Scan(&c.ID, &c.GiftID, &c.UserID, &c.Amount, &c.Message, &c.IsAnonymous, &c.CreatedAt, &username); err != nil {
			utils.Logger.Errorf("error scanning contribution: %v", err)
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		total = total.Add(c.Amount)
		views = append(views, c.View(username))
	}
	if err := rows.Err(); err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"count":  len(views),
		"data":   views,
		"summary": map[string]interface{}{
			"total_contributed": total,
			"remaining":         services.Remaining(price, total),
			"funding_percent":   services.FundingPercent(price, total),
		},
	})
}

// FUNC TO LIST MY CONTRIBUTIONS
func MyContributionsHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, err := utils.UserIDFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	skip, limit := utils.GetSkipLimitParams(r)

	rows, err := db.Query(`
		SELECT c.id, c.gift_id, c.amount, c.message, c.is_anonymous, c.created_at, g.title
		FROM contributions c
		INNER JOIN gifts g ON g.id = c.gift_id
		WHERE c.user_id = ?
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ? OFFSET ?
	`, userID, limit, skip)
	if err != nil {
		utils.Logger.Errorf("failed to fetch contributions: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	type myContribution struct {
		ID          int             `json:"id"`
		GiftID      int             `json:"gift_id"`
		GiftTitle   string          `json:"gift_title"`
		Amount      decimal.Decimal `json:"amount"`
		Message     string          `json:"message,omitempty"`
		IsAnonymous bool            `json:"is_anonymous"`
		CreatedAt   string          `json:"created_at"`
	}

	list := make([]myContribution, 0)
	for rows.Next() {
		var c myContribution
		if err := rows.Scan(&c.ID, &c.GiftID, &c.Amount, &c.Message, &c.IsAnonymous, &c.CreatedAt, &c.GiftTitle); err != nil {
			utils.Logger.Errorf("error scanning contribution: %v", err)
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"count":  len(list),
		"data":   list,
	})
}

// FUNC TO GET MY CONTRIBUTION STATISTICS
func StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, err := utils.UserIDFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var count int
	var total sql.NullString
	err = db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM contributions WHERE user_id = ?
	`, userID).Scan(&count, &total)
	if err != nil {
		utils.Logger.Errorf("failed to fetch statistics: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	totalAmount := decimal.Zero
	if total.Valid {
		totalAmount, err = decimal.NewFromString(total.String)
		if err != nil {
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"contribution_count": count,
			"total_contributed":  totalAmount,
		},
	})
}

// FUNC TO UPDATE A CONTRIBUTION (CONTRIBUTOR ONLY)
//
// A new amount is validated against the other contributions under the same
// row lock used when contributing, so a resize cannot push the gift past
// its price either.
func UpdateContributionHandler(w http.ResponseWriter, r *http.Request) {
	contributionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid contribution ID", http.StatusBadRequest)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, err := utils.UserIDFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req contributionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Amount == nil && req.Message == nil && req.IsAnonymous == nil {
		utils.WriteError(w, "no updates provided", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.Logger.Errorf("failed to start transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var existing models.Contribution
	err = tx.QueryRowContext(ctx, `
		SELECT id, gift_id, user_id, amount, message, is_anonymous
		FROM contributions WHERE id = ?
	`, contributionID).Scan(&existing.ID, &existing.GiftID, &existing.UserID,
		&existing.Amount, &existing.Message, &existing.IsAnonymous)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			utils.WriteError(w, "contribution not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if existing.UserID != userID {
		tx.Rollback()
		utils.WriteError(w, "forbidden: you can only update your own contributions", http.StatusForbidden)
		return
	}

	amount := existing.Amount
	if req.Amount != nil {
		state, err := lockGiftForFunding(ctx, tx, existing.GiftID, contributionID)
		if err != nil {
			tx.Rollback()
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		if err := services.CheckCeiling(state.Price, state.Contributed, *req.Amount); err != nil {
			tx.Rollback()
			if errors.Is(err, services.ErrNonPositiveValue) {
				utils.WriteError(w, "amount must be greater than 0", http.StatusBadRequest)
				return
			}
			remaining := services.Remaining(state.Price, state.Contributed)
			utils.WriteError(w, "contribution exceeds the remaining amount of "+remaining.StringFixed(2), http.StatusBadRequest)
			return
		}
		amount = *req.Amount
	}

	message := existing.Message
	if req.Message != nil {
		message = *req.Message
	}
	isAnonymous := existing.IsAnonymous
	if req.IsAnonymous != nil {
		isAnonymous = *req.IsAnonymous
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE contributions SET amount = ?, message = ?, is_anonymous = ? WHERE id = ?
	`, amount, message, isAnonymous, contributionID)
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to update contribution: %v", err)
		utils.WriteError(w, "failed to update contribution", http.StatusInternalServerError)
		return
	}

	if err = tx.Commit(); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to commit transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "contribution updated successfully",
		"data": map[string]interface{}{
			"contribution_id": contributionID,
			"amount":          amount,
			"is_anonymous":    isAnonymous,
		},
	})
}

// FUNC TO DELETE A CONTRIBUTION (CONTRIBUTOR ONLY)
func DeleteContributionHandler(w http.ResponseWriter, r *http.Request) {
	contributionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid contribution ID", http.StatusBadRequest)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, err := utils.UserIDFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var contributorID int
	err = db.QueryRowContext(ctx, "SELECT user_id FROM contributions WHERE id = ?", contributionID).Scan(&contributorID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "contribution not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if contributorID != userID {
		utils.WriteError(w, "forbidden: you can only delete your own contributions", http.StatusForbidden)
		return
	}

	if _, err = db.ExecContext(ctx, "DELETE FROM contributions WHERE id = ?", contributionID); err != nil {
		utils.Logger.Errorf("error deleting contribution: %v", err)
		utils.WriteError(w, "error deleting contribution", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "contribution deleted successfully",
	})
}
