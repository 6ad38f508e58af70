package families

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
)

// fetchFamily loads the family row or reports sql.ErrNoRows.
func fetchFamily(ctx context.Context, db *sql.DB, familyID int) (models.Family, error) {
	var family models.Family
	err := db.QueryRowContext(ctx, `
		SELECT id, name, description, is_public, created_by, created_at, updated_at
		FROM families WHERE id = ?
	`, familyID).Scan(&family.ID, &family.Name, &family.Description, &family.IsPublic,
		&family.CreatedBy, &family.CreatedAt, &family.UpdatedAt)
	return family, err
}

func isFamilyMember(ctx context.Context, db *sql.DB, familyID, userID int) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM family_members WHERE family_id = ? AND user_id = ?)
	`, familyID, userID).Scan(&exists)
	return exists, err
}

// FUNC TO CREATE A FAMILY
func CreateFamilyHandler(w http.ResponseWriter, r *http.Request) {
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

	var newFamily models.Family
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&newFamily); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	newFamily.Name = strings.TrimSpace(newFamily.Name)
	if newFamily.Name == "" {
		utils.WriteError(w, "family name is required", http.StatusBadRequest)
		return
	}

	if len(newFamily.Name) > 200 || len(newFamily.Description) > 1000 {
		utils.WriteError(w, "name or description too long", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.Logger.Errorf("failed to start transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO families (name, description, is_public, created_by) VALUES (?, ?, ?, ?)
	`, newFamily.Name, newFamily.Description, newFamily.IsPublic, userID)
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to create family: %v", err)
		utils.WriteError(w, "failed to create family, try again later!", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to get last inserted ID: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// The creator is always a member and can never leave.
	_, err = tx.ExecContext(ctx, `INSERT INTO family_members (family_id, user_id) VALUES (?, ?)`, id, userID)
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to add creator as member: %v", err)
		utils.WriteError(w, "failed to create family, try again later!", http.StatusInternalServerError)
		return
	}

	if err = tx.Commit(); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to commit transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	newFamily.ID = int(id)
	newFamily.CreatedBy = userID

	utils.WriteJSONStatus(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "family created successfully",
		"data":    newFamily,
	})
}

// FUNC TO LIST MY FAMILIES
func GetMyFamiliesHandler(w http.ResponseWriter, r *http.Request) {
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
		SELECT f.id, f.name, f.description, f.is_public, f.created_by, f.created_at, f.updated_at
		FROM families f
		INNER JOIN family_members fm ON fm.family_id = f.id
		WHERE fm.user_id = ?
		ORDER BY f.id
		LIMIT ? OFFSET ?
	`, userID, limit, skip)
	if err != nil {
		utils.Logger.Errorf("failed to fetch families: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	familyList := make([]models.Family, 0)
	for rows.Next() {
		var family models.Family
		if err := rows.Scan(&family.ID, &family.Name, &family.Description, &family.IsPublic,
			&family.CreatedBy, &family.CreatedAt, &family.UpdatedAt); err != nil {
			utils.Logger.Errorf("error scanning family: %v", err)
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		familyList = append(familyList, family)
	}
	if err := rows.Err(); err != nil {
		utils.Logger.Errorf("error iterating families: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string          `json:"status"`
		Count  int             `json:"count"`
		Data   []models.Family `json:"data"`
	}{
		Status: "success",
		Count:  len(familyList),
		Data:   familyList,
	})
}

// FUNC TO SEARCH PUBLIC FAMILIES
func SearchPublicFamiliesHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	skip, limit := utils.GetSkipLimitParams(r)
	queryText := strings.TrimSpace(r.URL.Query().Get("query"))

	// Case-insensitive substring match over name and description. An empty
	// query returns the whole public page.
	query := `
		SELECT id, name, description, is_public, created_by, created_at, updated_at
		FROM families
		WHERE is_public = TRUE
	`
	args := []interface{}{}

	if queryText != "" {
		query += " AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)"
		pattern := "%" + strings.ToLower(queryText) + "%"
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := db.Query(query, args...)
	if err != nil {
		utils.Logger.Errorf("failed to search families: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	familyList := make([]models.Family, 0)
	for rows.Next() {
		var family models.Family
		if err := rows.Scan(&family.ID, &family.Name, &family.Description, &family.IsPublic,
			&family.CreatedBy, &family.CreatedAt, &family.UpdatedAt); err != nil {
			utils.Logger.Errorf("error scanning family: %v", err)
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		familyList = append(familyList, family)
	}
	if err := rows.Err(); err != nil {
		utils.Logger.Errorf("error iterating families: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string          `json:"status"`
		Count  int             `json:"count"`
		Data   []models.Family `json:"data"`
	}{
		Status: "success",
		Count:  len(familyList),
		Data:   familyList,
	})
}

// FUNC TO GET A SINGLE FAMILY AND ITS MEMBERS
func GetFamilyByIDHandler(w http.ResponseWriter, r *http.Request) {
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

	family, err := fetchFamily(ctx, db, familyID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "family not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching family: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	isMember, err := isFamilyMember(ctx, db, familyID, userID)
	if err != nil {
		utils.Logger.Errorf("error checking membership: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !isMember {
		utils.WriteError(w, "forbidden: you are not a member of this family", http.StatusForbidden)
		return
	}

	type MemberDetails struct {
		UserID    int    `json:"user_id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		JoinedAt  string `json:"joined_at,omitempty"`
	}

	rows, err := db.QueryContext(ctx, `
		SELECT u.id, u.username, u.email, u.first_name, u.last_name, fm.joined_at
		FROM family_members fm
		INNER JOIN users u ON u.id = fm.user_id
		WHERE fm.family_id = ?
		ORDER BY fm.joined_at
	`, familyID)
	if err != nil {
		utils.Logger.Errorf("error fetching family members: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	members := make([]MemberDetails, 0)
	for rows.Next() {
		var member MemberDetails
		var joinedAt sql.NullString
		if err := rows.Scan(&member.UserID, &member.Username, &member.Email,
			&member.FirstName, &member.LastName, &joinedAt); err != nil {
			utils.Logger.Errorf("error scanning family member: %v", err)
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if joinedAt.Valid {
			member.JoinedAt = joinedAt.String
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		utils.Logger.Errorf("error iterating family members: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status  string          `json:"status"`
		Family  models.Family   `json:"family"`
		Members []MemberDetails `json:"members"`
	}{
		Status:  "success",
		Family:  family,
		Members: members,
	})
}

// FUNC TO UPDATE A FAMILY
func UpdateFamilyHandler(w http.ResponseWriter, r *http.Request) {
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

	type request struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsPublic    *bool   `json:"is_public"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		utils.WriteError(w, "name cannot be empty or whitespace", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	family, err := fetchFamily(ctx, db, familyID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "family not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if family.CreatedBy != userID {
		utils.WriteError(w, "forbidden: only the creator can update the family", http.StatusForbidden)
		return
	}

	// Apply only the fields present in the request; absent fields are untouched.
	fields := []string{}
	args := []interface{}{}

	if req.Name != nil {
		fields = append(fields, "name = ?")
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		fields = append(fields, "description = ?")
		args = append(args, *req.Description)
	}
	if req.IsPublic != nil {
		fields = append(fields, "is_public = ?")
		args = append(args, *req.IsPublic)
	}

	if len(fields) == 0 {
		utils.WriteError(w, "no updates provided", http.StatusBadRequest)
		return
	}

	args = append(args, familyID)

	query := fmt.Sprintf("UPDATE families SET %s WHERE id = ?", strings.Join(fields, ", "))
	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		utils.Logger.Errorf("failed to update family: %v", err)
		utils.WriteError(w, "failed to update family", http.StatusInternalServerError)
		return
	}

	updated, err := fetchFamily(ctx, db, familyID)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "family updated successfully",
		"data":    updated,
	})
}

// FUNC TO DELETE A FAMILY
func DeleteFamilyHandler(w http.ResponseWriter, r *http.Request) {
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

	family, err := fetchFamily(ctx, db, familyID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "family not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if family.CreatedBy != userID {
		utils.WriteError(w, "forbidden: only the creator can delete the family", http.StatusForbidden)
		return
	}

	// Membership rows, invitations and join requests cascade in the schema.
	if _, err = db.ExecContext(ctx, "DELETE FROM families WHERE id = ?", familyID); err != nil {
		utils.Logger.Errorf("error deleting family: %v", err)
		utils.WriteError(w, "error deleting family", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "family deleted successfully",
	})
}

// FUNC TO ADD A MEMBER (CREATOR ONLY)
func AddMemberHandler(w http.ResponseWriter, r *http.Request) {
	familyID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid family ID", http.StatusBadRequest)
		return
	}

	targetID, err := strconv.Atoi(r.PathValue("userId"))
	if err != nil {
		utils.WriteError(w, "invalid user ID", http.StatusBadRequest)
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

	family, err := fetchFamily(ctx, db, familyID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "family not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if family.CreatedBy != userID {
		utils.WriteError(w, "forbidden: only the creator can add members", http.StatusForbidden)
		return
	}

	var targetUsername string
	err = db.QueryRowContext(ctx, "SELECT username FROM users WHERE id = ?", targetID).Scan(&targetUsername)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "user not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	isMember, err := isFamilyMember(ctx, db, familyID, targetID)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if isMember {
		utils.WriteError(w, "this user is already a member of the family", http.StatusConflict)
		return
	}

	if _, err = db.ExecContext(ctx, `INSERT INTO family_members (family_id, user_id) VALUES (?, ?)`, familyID, targetID); err != nil {
		utils.Logger.Errorf("failed to add member: %v", err)
		utils.WriteError(w, "failed to add member", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": fmt.Sprintf("user %s added to the family", targetUsername),
	})
}

// FUNC TO REMOVE A MEMBER (CREATOR, OR SELF-REMOVAL)
func RemoveMemberHandler(w http.ResponseWriter, r *http.Request) {
	familyID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid family ID", http.StatusBadRequest)
		return
	}

	targetID, err := strconv.Atoi(r.PathValue("userId"))
	if err != nil {
		utils.WriteError(w, "invalid user ID", http.StatusBadRequest)
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

	family, err := fetchFamily(ctx, db, familyID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "family not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	isCreator := family.CreatedBy == userID
	isSelf := targetID == userID

	if !isCreator && !isSelf {
		utils.WriteError(w, "forbidden: you can only remove yourself, unless you are the creator", http.StatusForbidden)
		return
	}

	// The creator can never leave their own family.
	if targetID == family.CreatedBy {
		utils.WriteError(w, "the creator cannot leave the family", http.StatusBadRequest)
		return
	}

	isMember, err := isFamilyMember(ctx, db, familyID, targetID)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !isMember {
		utils.WriteError(w, "this user is not a member of the family", http.StatusConflict)
		return
	}

	if _, err = db.ExecContext(ctx, "DELETE FROM family_members WHERE family_id = ? AND user_id = ?", familyID, targetID); err != nil {
		utils.Logger.Errorf("failed to remove member: %v", err)
		utils.WriteError(w, "failed to remove member", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "member removed from the family",
	})
}
