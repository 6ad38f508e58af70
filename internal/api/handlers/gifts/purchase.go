package gifts

import (
	"context"
	"database/sql"
	"famigift/internal/repositories/sqlconnect"
	"famigift/pkg/utils"
	"net/http"
	"strconv"
	"time"
)

// FUNC TO MARK A GIFT AS PURCHASED
//
// The gift row is locked for the duration of the transaction so two
// concurrent purchasers cannot both claim it.
func MarkPurchasedHandler(w http.ResponseWriter, r *http.Request) {
	giftID, err := strconv.Atoi(r.PathValue("id"))
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

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.Logger.Errorf("failed to start transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var ownerID int
	var isPurchased bool
	err = tx.QueryRowContext(ctx, `
		SELECT owner_id, is_purchased FROM gifts WHERE id = ? FOR UPDATE
	`, giftID).Scan(&ownerID, &isPurchased)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			utils.WriteError(w, "gift not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching gift: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if ownerID == userID {
		tx.Rollback()
		utils.WriteError(w, "you cannot mark your own gift as purchased", http.StatusBadRequest)
		return
	}

	if isPurchased {
		tx.Rollback()
		utils.WriteError(w, "gift is already marked as purchased", http.StatusConflict)
		return
	}

	if code, msg := giftMembership(ctx, tx, giftID, userID); code != 0 {
		tx.Rollback()
		utils.WriteError(w, msg, code)
		return
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE gifts SET is_purchased = TRUE, purchased_by = ? WHERE id = ?
	`, userID, giftID)
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to mark gift as purchased: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
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
		"message": "gift marked as purchased",
	})
}

// FUNC TO UNMARK A PURCHASED GIFT
//
// Only the user recorded as the purchaser can release the claim.
func UnmarkPurchasedHandler(w http.ResponseWriter, r *http.Request) {
	giftID, err := strconv.Atoi(r.PathValue("id"))
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

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.Logger.Errorf("failed to start transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var isPurchased bool
	var purchasedBy sql.NullInt64
	err = tx.QueryRowContext(ctx, `
		SELECT is_purchased, purchased_by FROM gifts WHERE id = ? FOR UPDATE
	`, giftID).Scan(&isPurchased, &purchasedBy)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			utils.WriteError(w, "gift not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching gift: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !isPurchased {
		utils.WriteError(w, "gift is not marked as purchased", http.StatusBadRequest)
		tx.Rollback()
		return
	}

	if !purchasedBy.Valid || int(purchasedBy.Int64) != userID {
		tx.Rollback()
		utils.WriteError(w, "forbidden: only the purchaser can unmark this gift", http.StatusForbidden)
		return
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE gifts SET is_purchased = FALSE, purchased_by = NULL WHERE id = ?
	`, giftID)
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to unmark gift: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
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
		"message": "gift unmarked as purchased",
	})
}

// giftMembership reports whether the user belongs to at least one family the
// gift is shared with. A gift linked to no family is visible to no one but
// its owner, so the check fails for everyone else.
func giftMembership(ctx context.Context, tx *sql.Tx, giftID, userID int) (int, string) {
	var isMember bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM gift_families gf
			INNER JOIN family_members fm ON fm.family_id = gf.family_id
			WHERE gf.gift_id = ? AND fm.user_id = ?
		)
	`, giftID, userID).Scan(&isMember)
	if err != nil {
		return http.StatusInternalServerError, "internal server error"
	}
	if !isMember {
		return http.StatusForbidden, "forbidden: you do not share a family with this gift"
	}
	return 0, ""
}
