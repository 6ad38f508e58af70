package families

import (
	"context"
	"database/sql"
	"famigift/internal/repositories/sqlconnect"
	"famigift/internal/services"
	"famigift/pkg/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FUNC FOR THE CREATOR'S CONTRIBUTIONS RECAP
//
// Aggregates every gift associated with the family: how much each member has
// pledged overall, and how funded each gift is. Reserved to the family
// creator (or an admin) because it exposes contribution data.
func ContributionsRecapHandler(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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
		utils.WriteError(w, "forbidden: only the creator can view the recap", http.StatusForbidden)
		return
	}

	type GiftRecap struct {
		GiftID         int             `json:"gift_id"`
		Title          string          `json:"title"`
		Price          decimal.Decimal `json:"price"`
		Contributed    decimal.Decimal `json:"contributed"`
		FundingPercent decimal.Decimal `json:"funding_percent"`
	}

	giftRows, err := db.QueryContext(ctx, `
		SELECT g.id, g.title, g.price, COALESCE(SUM(c.amount), 0)
		FROM gifts g
		INNER JOIN gift_families gf ON gf.gift_id = g.id
		LEFT JOIN contributions c ON c.gift_id = g.id
		WHERE gf.family_id = ?
		GROUP BY g.id, g.title, g.price
		ORDER BY g.id
	`, familyID)
	if err != nil {
		utils.Logger.Errorf("failed to fetch gift recap: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer giftRows.Close()

	gifts := make([]GiftRecap, 0)
	for giftRows.Next() {
		var gr GiftRecap
		if err := giftRows.Scan(&gr.GiftID, &gr.Title, &gr.Price, &gr.Contributed); err != nil {
			utils.Logger.Errorf("error scanning gift recap: %v", err)
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		gr.FundingPercent = services.FundingPercent(gr.Price, gr.Contributed)
		gifts = append(gifts, gr)
	}
	if err := giftRows.Err(); err != nil {
		utils.Logger.Errorf("error iterating gift recap: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	type MemberRecap struct {
		UserID   int             `json:"user_id"`
		Username string          `json:"username"`
		Total    decimal.Decimal `json:"total"`
		Count    int             `json:"count"`
	}

	memberRows, err := db.QueryContext(ctx, `
		SELECT u.id, u.username, COALESCE(SUM(c.amount), 0), COUNT(c.id)
		FROM family_members fm
		INNER JOIN users u ON u.id = fm.user_id
		LEFT JOIN contributions c ON c.user_id = u.id AND c.gift_id IN (
			SELECT gift_id FROM gift_families WHERE family_id = ?
		)
		WHERE fm.family_id = ?
		GROUP BY u.id, u.username
		ORDER BY u.id
	`, familyID, familyID)
	if err != nil {
		utils.Logger.Errorf("failed to fetch member recap: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer memberRows.Close()

	members := make([]MemberRecap, 0)
	for memberRows.Next() {
		var mr MemberRecap
		if err := memberRows.Scan(&mr.UserID, &mr.Username, &mr.Total, &mr.Count); err != nil {
			utils.Logger.Errorf("error scanning member recap: %v", err)
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		members = append(members, mr)
	}
	if err := memberRows.Err(); err != nil {
		utils.Logger.Errorf("error iterating member recap: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":    "success",
		"family_id": familyID,
		"gifts":     gifts,
		"members":   members,
	})
}
