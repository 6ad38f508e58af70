package families

import (
	"context"
	"database/sql"
	"encoding/json"
	"famigift/internal/models"
	"famigift/internal/repositories/sqlconnect"
	"famigift/pkg/utils"
	"net/http"
	"strconv"
	"time"
)

// FUNC TO REQUEST TO JOIN A PUBLIC FAMILY
func RequestToJoinHandler(w http.ResponseWriter, r *http.Request) {
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
		Message string `json:"message"`
	}

	var req request
	if r.Body != nil {
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil && err.Error() != "EOF" {
			utils.WriteError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()
	}

	if len(req.Message) > 500 {
		utils.WriteError(w, "message too long", http.StatusBadRequest)
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

	// Join requests only exist for families visible in public search.
	if !family.IsPublic {
		utils.WriteError(w, "this family is private, you need an invitation", http.StatusBadRequest)
		return
	}

	isMember, err := isFamilyMember(ctx, db, familyID, userID)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if isMember {
		utils.WriteError(w, "you are already a member of this family", http.StatusConflict)
		return
	}

	var pending bool
	err = db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM join_requests WHERE family_id = ? AND user_id = ?)
	`, familyID, userID).Scan(&pending)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if pending {
		utils.WriteError(w, "you already have a pending request for this family", http.StatusConflict)
		return
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO join_requests (family_id, user_id, message) VALUES (?, ?, ?)
	`, familyID, userID, req.Message)
	if err != nil {
		utils.Logger.Errorf("failed to create join request: %v", err)
		utils.WriteError(w, "failed to create join request", http.StatusInternalServerError)
		return
	}

	requestID, _ := res.LastInsertId()

	// Notify the creator after the commit; a failed email never undoes the request.
	var creatorEmail, requesterName string
	err = db.QueryRowContext(ctx, "SELECT email FROM users WHERE id = ?", family.CreatedBy).Scan(&creatorEmail)
	if err == nil {
		if err := db.QueryRowContext(ctx, "SELECT username FROM users WHERE id = ?", userID).Scan(&requesterName); err != nil {
			requesterName = "un utilisateur"
		}
		go func(to, familyName, requester, message string) {
			if err := utils.SendJoinRequestEmail(to, familyName, requester, message); err != nil {
				utils.Logger.Errorf("failed to send join request email to %s: %v", to, err)
			}
		}(creatorEmail, family.Name, requesterName, req.Message)
	}

	utils.WriteJSONStatus(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "join request sent",
		"data": map[string]interface{}{
			"request_id": requestID,
			"family_id":  familyID,
		},
	})
}

// FUNC TO LIST PENDING JOIN REQUESTS (CREATOR ONLY)
func ListJoinRequestsHandler(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "forbidden: only the creator can view join requests", http.StatusForbidden)
		return
	}

	rows, err := db.QueryContext(ctx, `
		SELECT jr.id, jr.family_id, jr.user_id, jr.message, jr.created_at, u.username, u.email
		FROM join_requests jr
		INNER JOIN users u ON u.id = jr.user_id
		WHERE jr.family_id = ?
		ORDER BY jr.created_at
	`, familyID)
	if err != nil {
		utils.Logger.Errorf("failed to fetch join requests: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	requests := make([]models.JoinRequest, 0)
	for rows.Next() {
		var jr models.JoinRequest
		if err := rows.Scan(&jr.ID, &jr.FamilyID, &jr.UserID, &jr.Message, &jr.CreatedAt, &jr.Username, &jr.Email); err != nil {
			utils.Logger.Errorf("error scanning join request: %v", err)
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		requests = append(requests, jr)
	}
	if err := rows.Err(); err != nil {
		utils.Logger.Errorf("error iterating join requests: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string               `json:"status"`
		Count  int                  `json:"count"`
		Data   []models.JoinRequest `json:"data"`
	}{
		Status: "success",
		Count:  len(requests),
		Data:   requests,
	})
}

// loadJoinRequest fetches a request together with its family's creator.
func loadJoinRequest(ctx context.Context, db *sql.DB, requestID int) (models.JoinRequest, models.Family, error) {
	var jr models.JoinRequest
	err := db.QueryRowContext(ctx, `
		SELECT id, family_id, user_id, message FROM join_requests WHERE id = ?
	`, requestID).Scan(&jr.ID, &jr.FamilyID, &jr.UserID, &jr.Message)
	if err != nil {
		return jr, models.Family{}, err
	}

	family, err := fetchFamily(ctx, db, jr.FamilyID)
	return jr, family, err
}

// FUNC TO ACCEPT A JOIN REQUEST (CREATOR ONLY)
func AcceptJoinRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid request ID", http.StatusBadRequest)
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

	jr, family, err := loadJoinRequest(ctx, db, requestID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "join request not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if family.CreatedBy != userID {
		utils.WriteError(w, "forbidden: only the creator can resolve join requests", http.StatusForbidden)
		return
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.Logger.Errorf("failed to start transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Membership insert is idempotent; the requester may have been added
	// through an invitation in the meantime.
	_, err = tx.ExecContext(ctx, `
		INSERT IGNORE INTO family_members (family_id, user_id) VALUES (?, ?)
	`, jr.FamilyID, jr.UserID)
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to add member: %v", err)
		utils.WriteError(w, "failed to accept join request", http.StatusInternalServerError)
		return
	}

	// Acceptance is terminal, the request row does not survive it.
	if _, err = tx.ExecContext(ctx, "DELETE FROM join_requests WHERE id = ?", requestID); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to delete join request: %v", err)
		utils.WriteError(w, "failed to accept join request", http.StatusInternalServerError)
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
		"message": "join request accepted",
		"data": map[string]interface{}{
			"family_id": jr.FamilyID,
			"user_id":   jr.UserID,
		},
	})
}

// FUNC TO REJECT A JOIN REQUEST (CREATOR ONLY)
func RejectJoinRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid request ID", http.StatusBadRequest)
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

	jr, family, err := loadJoinRequest(ctx, db, requestID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "join request not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if family.CreatedBy != userID {
		utils.WriteError(w, "forbidden: only the creator can resolve join requests", http.StatusForbidden)
		return
	}

	if _, err = db.ExecContext(ctx, "DELETE FROM join_requests WHERE id = ?", jr.ID); err != nil {
		utils.Logger.Errorf("failed to delete join request: %v", err)
		utils.WriteError(w, "failed to reject join request", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "join request rejected",
	})
}
