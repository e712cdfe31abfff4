package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/catalog"
)

// AccountHandler serves account and card lifecycle endpoints
type AccountHandler struct {
	Catalog *catalog.Service
}

type createAccountRequest struct {
	AccountType string `json:"account_type"`
	Currency    string `json:"currency"`
}

func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var req createAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	account, err := h.Catalog.CreateAccount(c.Context(), catalog.CreateAccountInput{
		UserID:      currentUserID(c),
		AccountType: domain.AccountType(req.AccountType),
		Currency:    req.Currency,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(newAccountResponse(account))
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.Catalog.ListAccounts(c.Context(), currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newAccountResponses(accounts))
}

func (h *AccountHandler) CloseAccount(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}

	if err := h.Catalog.CloseAccount(c.Context(), currentUserID(c), accountID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

type createCardRequest struct {
	AccountID string `json:"account_id"`
	CardType  string `json:"card_type"`
	Limit     string `json:"limit"`
}

func (h *AccountHandler) CreateCard(c *fiber.Ctx) error {
	var req createCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}

	input := catalog.CreateCardInput{
		UserID:    currentUserID(c),
		AccountID: accountID,
		CardType:  domain.CardType(req.CardType),
	}
	if req.Limit != "" {
		limit, err := decimal.NewFromString(req.Limit)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid card limit"})
		}
		input.Limit = &limit
	}

	card, err := h.Catalog.CreateCard(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(newCardResponse(card))
}

func (h *AccountHandler) ListCards(c *fiber.Ctx) error {
	cards, err := h.Catalog.ListCards(c.Context(), currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newCardResponses(cards))
}
