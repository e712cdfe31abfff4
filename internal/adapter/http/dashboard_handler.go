package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/dashboard"
)

// DashboardHandler serves the aggregated overview endpoint
type DashboardHandler struct {
	Dashboard *dashboard.DashboardService
}

type overviewResponse struct {
	User               userResponse          `json:"user"`
	TotalBalance       string                `json:"total_balance"`
	Accounts           []accountResponse     `json:"accounts"`
	RecentTransactions []transactionResponse `json:"recent_transactions"`
	Cards              []cardResponse        `json:"cards"`
}

func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.Dashboard.GetOverview(c.Context(), currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(overviewResponse{
		User:               newUserResponse(overview.User),
		TotalBalance:       overview.TotalBalance.StringFixed(2),
		Accounts:           newAccountResponses(overview.Accounts),
		RecentTransactions: newTransactionResponses(overview.RecentTransactions),
		Cards:              newCardResponses(overview.Cards),
	})
}
