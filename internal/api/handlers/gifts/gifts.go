package gifts

import (
	"context"
	"database/sql"
	"encoding/json"
	"famigift/internal/models"
	"famigift/internal/repositories/sqlconnect"
	"famigift/pkg/utils"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type giftRequest struct {
	Title          *string          `json:"title"`
	Price          *decimal.Decimal `json:"price"`
	Description    *string          `json:"description"`
	PhotoURL       *string          `json:"photo_url"`
	BuyLink        *string          `json:"buy_link"`
	FamilyIDs      *[]int           `json:"family_ids"`
	BeneficiaryIDs *[]int           `json:"beneficiary_ids"`
}

// buildGiftUpdate turns the fields present in a sparse update request into
// SET clauses. Absent fields are untouched; link updates are handled apart.
func buildGiftUpdate(req giftRequest) ([]string, []interface{}) {
	fields := []string{}
	args := []interface{}{}

	if req.Title != nil {
		fields = append(fields, "title = ?")
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Price != nil {
		fields = append(fields, "price = ?")
		args = append(args, *req.Price)
	}
	if req.Description != nil {
		fields = append(fields, "description = ?")
		args = append(args, *req.Description)
	}
	if req.PhotoURL != nil {
		fields = append(fields, "photo_url = ?")
		args = append(args, *req.PhotoURL)
	}
	if req.BuyLink != nil {
		fields = append(fields, "buy_link = ?")
		args = append(args, *req.BuyLink)
	}

	return fields, args
}

// fetchGift loads the gift row or reports sql.ErrNoRows.
func fetchGift(ctx context.Context, db *sql.DB, giftID int) (models.Gift, error) {
	var gift models.Gift
	var isPurchased bool
	var purchasedBy sql.NullInt64

	err := db.QueryRowContext(ctx, `
		SELECT id, title, price, description, photo_url, buy_link, owner_id,
		       is_purchased, purchased_by, created_at, updated_at
		FROM gifts WHERE id = ?
	`, giftID).Scan(&gift.ID, &gift.Title, &gift.Price, &gift.Description, &gift.PhotoURL,
		&gift.BuyLink, &gift.OwnerID, &isPurchased, &purchasedBy, &gift.CreatedAt, &gift.UpdatedAt)
	if err != nil {
		return gift, err
	}

	gift.IsPurchased = &isPurchased
	if purchasedBy.Valid {
		pb := int(purchasedBy.Int64)
		gift.PurchasedBy = &pb
	}
	return gift, nil
}

// loadGiftLinks fills the family and beneficiary id sets for a gift.
func loadGiftLinks(ctx context.Context, db *sql.DB, gift *models.Gift) error {
	famRows, err := db.QueryContext(ctx, "SELECT family_id FROM gift_families WHERE gift_id = ?", gift.ID)
	if err != nil {
		return err
	}
	defer famRows.Close()

	for famRows.Next() {
		var id int
		if err := famRows.Scan(&id); err != nil {
			return err
		}
		gift.FamilyIDs = append(gift.FamilyIDs, id)
	}
	if err := famRows.Err(); err != nil {
		return err
	}

	benRows, err := db.QueryContext(ctx, "SELECT user_id FROM gift_beneficiaries WHERE gift_id = ?", gift.ID)
	if err != nil {
		return err
	}
	defer benRows.Close()

	for benRows.Next() {
		var id int
		if err := benRows.Scan(&id); err != nil {
			return err
		}
		gift.Beneficiary = append(gift.Beneficiary, id)
	}
	return benRows.Err()
}

// checkFamiliesForCreator verifies that every target family exists and that
// the gift creator belongs to all of them.
func checkFamiliesForCreator(ctx context.Context, db *sql.DB, familyIDs []int, creatorID int) (string, int) {
	for _, familyID := range familyIDs {
		var exists, isMember bool
		err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM families WHERE id = ?)", familyID).Scan(&exists)
		if err != nil || !exists {
			return fmt.Sprintf("family %d not found", familyID), http.StatusNotFound
		}

		err = db.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM family_members WHERE family_id = ? AND user_id = ?)
		`, familyID, creatorID).Scan(&isMember)
		if err != nil {
			return "internal server error", http.StatusInternalServerError
		}
		if !isMember {
			return fmt.Sprintf("forbidden: you are not a member of family %d", familyID), http.StatusForbidden
		}
	}
	return "", 0
}

// checkBeneficiaries verifies that every beneficiary belongs to at least one
// of the gift's target families.
func checkBeneficiaries(ctx context.Context, db *sql.DB, familyIDs, beneficiaryIDs []int) (string, int) {
	if len(beneficiaryIDs) == 0 {
		return "", 0
	}
	if len(familyIDs) == 0 {
		return "forbidden: beneficiaries require at least one associated family", http.StatusForbidden
	}

	placeholders := make([]string, len(familyIDs))
	args := make([]interface{}, 0, len(familyIDs)+1)
	for i, id := range familyIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	famSet := strings.Join(placeholders, ",")

	for _, beneficiaryID := range beneficiaryIDs {
		var exists bool
		err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", beneficiaryID).Scan(&exists)
		if err != nil || !exists {
			return fmt.Sprintf("beneficiary %d not found", beneficiaryID), http.StatusNotFound
		}

		query := fmt.Sprintf(`
			SELECT EXISTS(SELECT 1 FROM family_members WHERE family_id IN (%s) AND user_id = ?)
		`, famSet)
		var isMember bool
		if err := db.QueryRowContext(ctx, query, append(args, beneficiaryID)...).Scan(&isMember); err != nil {
			return "internal server error", http.StatusInternalServerError
		}
		if !isMember {
			return fmt.Sprintf("forbidden: beneficiary %d is not a member of any target family", beneficiaryID), http.StatusForbidden
		}
	}
	return "", 0
}

func replaceGiftLinks(ctx context.Context, tx *sql.Tx, giftID int, familyIDs, beneficiaryIDs []int, replaceFamilies, replaceBeneficiaries bool) error {
	if replaceFamilies {
		if _, err := tx.ExecContext(ctx, "DELETE FROM gift_families WHERE gift_id = ?", giftID); err != nil {
			return err
		}
		for _, familyID := range familyIDs {
			if _, err := tx.ExecContext(ctx, "INSERT INTO gift_families (gift_id, family_id) VALUES (?, ?)", giftID, familyID); err != nil {
				return err
			}
		}
	}

	if replaceBeneficiaries {
		if _, err := tx.ExecContext(ctx, "DELETE FROM gift_beneficiaries WHERE gift_id = ?", giftID); err != nil {
			return err
		}
		for _, beneficiaryID := range beneficiaryIDs {
			if _, err := tx.ExecContext(ctx, "INSERT INTO gift_beneficiaries (gift_id, user_id) VALUES (?, ?)", giftID, beneficiaryID); err != nil {
				return err
			}
		}
	}

	return nil
}

// FUNC TO CREATE A GIFT
func CreateGiftHandler(w http.ResponseWriter, r *http.Request) {
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

	var req giftRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		utils.WriteError(w, "title is required", http.StatusBadRequest)
		return
	}
	if req.Price == nil || req.Price.LessThanOrEqual(decimal.Zero) {
		utils.WriteError(w, "price must be greater than 0", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(*req.Title)
	if len(title) > 200 {
		utils.WriteError(w, "title too long", http.StatusBadRequest)
		return
	}

	description, photoURL, buyLink := "", "", ""
	if req.Description != nil {
		description = *req.Description
	}
	if req.PhotoURL != nil {
		photoURL = *req.PhotoURL
	}
	if req.BuyLink != nil {
		buyLink = *req.BuyLink
	}

	familyIDs := []int{}
	if req.FamilyIDs != nil {
		familyIDs = *req.FamilyIDs
	}
	beneficiaryIDs := []int{}
	if req.BeneficiaryIDs != nil {
		beneficiaryIDs = *req.BeneficiaryIDs
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if msg, code := checkFamiliesForCreator(ctx, db, familyIDs, userID); code != 0 {
		utils.WriteError(w, msg, code)
		return
	}
	if msg, code := checkBeneficiaries(ctx, db, familyIDs, beneficiaryIDs); code != 0 {
		utils.WriteError(w, msg, code)
		return
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.Logger.Errorf("failed to start transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO gifts (title, price, description, photo_url, buy_link, owner_id, is_purchased)
		VALUES (?, ?, ?, ?, ?, ?, FALSE)
	`, title, *req.Price, description, photoURL, buyLink, userID)
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to create gift: %v", err)
		utils.WriteError(w, "failed to create gift", http.StatusInternalServerError)
		return
	}

	giftID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to get last inserted ID: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := replaceGiftLinks(ctx, tx, int(giftID), familyIDs, beneficiaryIDs, true, true); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to link gift: %v", err)
		utils.WriteError(w, "failed to create gift", http.StatusInternalServerError)
		return
	}

	if err = tx.Commit(); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to commit transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSONStatus(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "gift created successfully",
		"data": map[string]interface{}{
			"gift_id":         giftID,
			"title":           title,
			"price":           *req.Price,
			"family_ids":      familyIDs,
			"beneficiary_ids": beneficiaryIDs,
		},
	})
}

// FUNC TO LIST ALL GIFTS
func GetAllGiftsHandler(w http.ResponseWriter, r *http.Request) {
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
		SELECT id, title, price, description, photo_url, buy_link, owner_id,
		       is_purchased, purchased_by, created_at, updated_at
		FROM gifts
		ORDER BY id
		LIMIT ? OFFSET ?
	`, limit, skip)
	if err != nil {
		utils.Logger.Errorf("failed to fetch gifts: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	gifts, err := scanGifts(rows)
	if err != nil {
		utils.Logger.Errorf("error scanning gifts: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	for i := range gifts {
		gifts[i].RedactPurchaseStatus(userID)
	}

	utils.WriteJSON(w, struct {
		Status string        `json:"status"`
		Count  int           `json:"count"`
		Data   []models.Gift `json:"data"`
	}{
		Status: "success",
		Count:  len(gifts),
		Data:   gifts,
	})
}

// FUNC TO LIST MY GIFTS
func GetMyGiftsHandler(w http.ResponseWriter, r *http.Request) {
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
		SELECT id, title, price, description, photo_url, buy_link, owner_id,
		       is_purchased, purchased_by, created_at, updated_at
		FROM gifts
		WHERE owner_id = ?
		ORDER BY id
		LIMIT ? OFFSET ?
	`, userID, limit, skip)
	if err != nil {
		utils.Logger.Errorf("failed to fetch gifts: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	gifts, err := scanGifts(rows)
	if err != nil {
		utils.Logger.Errorf("error scanning gifts: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Own listing: purchase status is always hidden from the owner.
	for i := range gifts {
		gifts[i].RedactPurchaseStatus(userID)
	}

	utils.WriteJSON(w, struct {
		Status string        `json:"status"`
		Count  int           `json:"count"`
		Data   []models.Gift `json:"data"`
	}{
		Status: "success",
		Count:  len(gifts),
		Data:   gifts,
	})
}

// FUNC TO LIST A FAMILY'S GIFTS (MEMBERS ONLY)
func GetGiftsByFamilyHandler(w http.ResponseWriter, r *http.Request) {
	familyID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid family ID", http.StatusBadRequest)
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

	var familyExists bool
	if err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM families WHERE id = ?)", familyID).Scan(&familyExists); err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !familyExists {
		utils.WriteError(w, "family not found", http.StatusNotFound)
		return
	}

	var isMember bool
	err = db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM family_members WHERE family_id = ? AND user_id = ?)
	`, familyID, userID).Scan(&isMember)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !isMember {
		utils.WriteError(w, "forbidden: you are not a member of this family", http.StatusForbidden)
		return
	}

	rows, err := db.QueryContext(ctx, `
		SELECT g.id, g.title, g.price, g.description, g.photo_url, g.buy_link, g.owner_id,
		       g.is_purchased, g.purchased_by, g.created_at, g.updated_at
		FROM gifts g
		INNER JOIN gift_families gf ON gf.gift_id = g.id
		WHERE gf.family_id = ?
		ORDER BY g.id
	`, familyID)
	if err != nil {
		utils.Logger.Errorf("failed to fetch family gifts: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	gifts, err := scanGifts(rows)
	if err != nil {
		utils.Logger.Errorf("error scanning gifts: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	for i := range gifts {
		gifts[i].RedactPurchaseStatus(userID)
	}

	utils.WriteJSON(w, struct {
		Status string        `json:"status"`
		Count  int           `json:"count"`
		Data   []models.Gift `json:"data"`
	}{
		Status: "success",
		Count:  len(gifts),
		Data:   gifts,
	})
}

func scanGifts(rows *sql.Rows) ([]models.Gift, error) {
	gifts := make([]models.Gift, 0)
	for rows.Next() {
		var gift models.Gift
		var isPurchased bool
		var purchasedBy sql.NullInt64

		if err := rows.Scan(&gift.ID, &gift.Title, &gift.Price, &gift.Description, &gift.PhotoURL,
			&gift.BuyLink, &gift.OwnerID, &isPurchased, &purchasedBy, &gift.CreatedAt, &gift.UpdatedAt); err != nil {
			return nil, err
		}

		gift.IsPurchased = &isPurchased
		if purchasedBy.Valid {
			pb := int(purchasedBy.Int64)
			gift.PurchasedBy = &pb
		}
		gifts = append(gifts, gift)
	}
	return gifts, rows.Err()
}

// FUNC TO GET A SINGLE GIFT
func GetGiftByIDHandler(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	gift, err := fetchGift(ctx, db, giftID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "gift not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching gift: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := loadGiftLinks(ctx, db, &gift); err != nil {
		utils.Logger.Errorf("error loading gift links: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	gift.RedactPurchaseStatus(userID)

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   gift,
	})
}

// FUNC TO UPDATE A GIFT (OWNER ONLY, SPARSE FIELDS)
func UpdateGiftHandler(w http.ResponseWriter, r *http.Request) {
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

	var req giftRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		utils.WriteError(w, "title cannot be empty or whitespace", http.StatusBadRequest)
		return
	}
	if req.Price != nil && req.Price.LessThanOrEqual(decimal.Zero) {
		utils.WriteError(w, "price must be greater than 0", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	gift, err := fetchGift(ctx, db, giftID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "gift not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if gift.OwnerID != userID {
		utils.WriteError(w, "forbidden: you can only update your own gifts", http.StatusForbidden)
		return
	}

	// Resolve the family set the beneficiaries are validated against: the
	// incoming one when provided, otherwise the currently linked one.
	if err := loadGiftLinks(ctx, db, &gift); err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	familyIDs := gift.FamilyIDs
	if req.FamilyIDs != nil {
		familyIDs = *req.FamilyIDs
		if msg, code := checkFamiliesForCreator(ctx, db, familyIDs, userID); code != 0 {
			utils.WriteError(w, msg, code)
			return
		}
	}

	beneficiaryIDs := gift.Beneficiary
	if req.BeneficiaryIDs != nil {
		beneficiaryIDs = *req.BeneficiaryIDs
	}
	if req.BeneficiaryIDs != nil || req.FamilyIDs != nil {
		if msg, code := checkBeneficiaries(ctx, db, familyIDs, beneficiaryIDs); code != 0 {
			utils.WriteError(w, msg, code)
			return
		}
	}

	fields, args := buildGiftUpdate(req)
	if len(fields) == 0 && req.FamilyIDs == nil && req.BeneficiaryIDs == nil {
		utils.WriteError(w, "no updates provided", http.StatusBadRequest)
		return
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.Logger.Errorf("failed to start transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(fields) > 0 {
		args = append(args, giftID)
		query := fmt.Sprintf("UPDATE gifts SET %s WHERE id = ?", strings.Join(fields, ", "))
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			tx.Rollback()
			utils.Logger.Errorf("failed to update gift: %v", err)
			utils.WriteError(w, "failed to update gift", http.StatusInternalServerError)
			return
		}
	}

	if err := replaceGiftLinks(ctx, tx, giftID, familyIDs, beneficiaryIDs, req.FamilyIDs != nil, req.BeneficiaryIDs != nil); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to update gift links: %v", err)
		utils.WriteError(w, "failed to update gift", http.StatusInternalServerError)
		return
	}

	if err = tx.Commit(); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to commit transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	updated, err := fetchGift(ctx, db, giftID)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if err := loadGiftLinks(ctx, db, &updated); err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	updated.RedactPurchaseStatus(userID)

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "gift updated successfully",
		"data":    updated,
	})
}

// FUNC TO DELETE A GIFT (OWNER ONLY)
func DeleteGiftHandler(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	gift, err := fetchGift(ctx, db, giftID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "gift not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if gift.OwnerID != userID {
		utils.WriteError(w, "forbidden: you can only delete your own gifts", http.StatusForbidden)
		return
	}

	// Contributions and link rows cascade in the schema.
	if _, err = db.ExecContext(ctx, "DELETE FROM gifts WHERE id = ?", giftID); err != nil {
		utils.Logger.Errorf("error deleting gift: %v", err)
		utils.WriteError(w, "error deleting gift", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "gift and its contributions deleted successfully",
	})
}
