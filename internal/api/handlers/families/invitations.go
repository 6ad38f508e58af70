package families

import (
	"context"
	"database/sql"
	"encoding/json"
	"famigift/internal/api/handlers"
	"famigift/internal/models"
	"famigift/internal/repositories/sqlconnect"
	"famigift/pkg/utils"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// FUNC TO INVITE SOMEONE BY EMAIL (CREATOR OR ADMIN)
func InviteMemberHandler(w http.ResponseWriter, r *http.Request) {
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

	type inviteRequest struct {
		Email string `json:"email"`
	}

	var req inviteRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !handlers.ValidateEmail(req.Email) {
		utils.WriteError(w, "invalid email format", http.StatusBadRequest)
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

	isAdmin := utils.RoleFromContext(r.Context()) == "admin"
	if family.CreatedBy != userID && !isAdmin {
		utils.WriteError(w, "forbidden: only the creator can send invitations", http.StatusForbidden)
		return
	}

	// Conflict when the address already belongs to a member of this family.
	var alreadyMember bool
	err = db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM family_members fm
			INNER JOIN users u ON u.id = fm.user_id
			WHERE fm.family_id = ? AND u.email = ?
		)
	`, familyID, req.Email).Scan(&alreadyMember)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if alreadyMember {
		utils.WriteError(w, "this email already belongs to a family member", http.StatusConflict)
		return
	}

	var alreadyInvited bool
	err = db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM invitations WHERE family_id = ? AND email = ? AND accepted = FALSE
		)
	`, familyID, req.Email).Scan(&alreadyInvited)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if alreadyInvited {
		utils.WriteError(w, "an invitation for this email is already pending", http.StatusConflict)
		return
	}

	rawToken, hashedToken, err := utils.GenerateInviteToken()
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO invitations (family_id, email, token, invited_by, accepted)
		VALUES (?, ?, ?, ?, FALSE)
	`, familyID, req.Email, hashedToken, userID)
	if err != nil {
		utils.Logger.Errorf("failed to insert invitation for %s: %v", req.Email, err)
		utils.WriteError(w, "failed to create invitation", http.StatusInternalServerError)
		return
	}

	inviteID, _ := res.LastInsertId()

	// The invitation record is committed; a failed email is logged and the
	// invitation stays valid.
	inviteLink := fmt.Sprintf("%s/invitation/%s", os.Getenv("FRONTEND_URL"), rawToken)
	go func(email, familyName, link string) {
		if err := utils.SendFamilyInviteEmail(email, familyName, link); err != nil {
			utils.Logger.Errorf("failed to send invite email to %s: %v", email, err)
		}
	}(req.Email, family.Name, inviteLink)

	utils.WriteJSONStatus(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "invitation sent",
		"data": map[string]interface{}{
			"invitation_id": inviteID,
			"family_id":     familyID,
			"email":         req.Email,
		},
	})
}

// FUNC TO ACCEPT AN INVITATION BY TOKEN
func AcceptInvitationHandler(w http.ResponseWriter, r *http.Request) {
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

	hashedToken, err := utils.HashInviteToken(r.PathValue("token"))
	if err != nil {
		utils.WriteError(w, "invitation not found", http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var invite models.Invitation
	err = db.QueryRowContext(ctx, `
		SELECT id, family_id, email, accepted FROM invitations WHERE token = ?
	`, hashedToken).Scan(&invite.ID, &invite.FamilyID, &invite.Email, &invite.Accepted)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "invitation not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var userEmail string
	err = db.QueryRowContext(ctx, "SELECT email FROM users WHERE id = ?", userID).Scan(&userEmail)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Only the account the invitation was addressed to can resolve it.
	if !strings.EqualFold(invite.Email, userEmail) {
		utils.WriteError(w, "forbidden: this invitation was sent to another email address", http.StatusForbidden)
		return
	}

	if invite.Accepted {
		utils.WriteError(w, "invitation already accepted", http.StatusConflict)
		return
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.Logger.Errorf("failed to start transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	_, err = tx.ExecContext(ctx, `
		INSERT IGNORE INTO family_members (family_id, user_id) VALUES (?, ?)
	`, invite.FamilyID, userID)
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to join family: %v", err)
		utils.WriteError(w, "failed to join family", http.StatusInternalServerError)
		return
	}

	if _, err = tx.ExecContext(ctx, "UPDATE invitations SET accepted = TRUE WHERE id = ?", invite.ID); err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to mark invitation accepted: %v", err)
		utils.WriteError(w, "failed to accept invitation", http.StatusInternalServerError)
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
		"message": "invitation accepted, welcome to the family",
		"data": map[string]interface{}{
			"family_id": invite.FamilyID,
		},
	})
}

// FUNC TO LIST MY PENDING INVITATIONS
func PendingInvitationsHandler(w http.ResponseWriter, r *http.Request) {
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

	var userEmail string
	err = db.QueryRowContext(ctx, "SELECT email FROM users WHERE id = ?", userID).Scan(&userEmail)
	if err != nil {
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	rows, err := db.QueryContext(ctx, `
		SELECT i.id, i.family_id, i.email, i.invited_by, i.accepted, i.created_at, f.name
		FROM invitations i
		INNER JOIN families f ON f.id = i.family_id
		WHERE i.email = ? AND i.accepted = FALSE
		ORDER BY i.created_at
	`, userEmail)
	if err != nil {
		utils.Logger.Errorf("failed to fetch invitations: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	invites := make([]models.Invitation, 0)
	for rows.Next() {
		var invite models.Invitation
		if err := rows.Scan(&invite.ID, &invite.FamilyID, &invite.Email, &invite.InvitedBy,
			&invite.Accepted, &invite.CreatedAt, &invite.FamilyName); err != nil {
			utils.Logger.Errorf("error scanning invitation: %v", err)
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		invites = append(invites, invite)
	}
	if err := rows.Err(); err != nil {
		utils.Logger.Errorf("error iterating invitations: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string              `json:"status"`
		Count  int                 `json:"count"`
		Data   []models.Invitation `json:"data"`
	}{
		Status: "success",
		Count:  len(invites),
		Data:   invites,
	})
}
