package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/ledger"
)

// LedgerHandler serves the funds-movement endpoints
type LedgerHandler struct {
	Ledger *ledger.Service
}

// pathAccountID parses the :id route parameter
func pathAccountID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// parseAmount parses the amount field of a request body. Amounts
// travel as JSON strings so browsers never touch them as floats.
func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(raw)
}

type amountRequest struct {
	Amount string `json:"amount"`
}

type movementResponse struct {
	Transaction transactionResponse `json:"transaction"`
	NewBalance  string              `json:"new_balance"`
}

func (h *LedgerHandler) Deposit(c *fiber.Ctx) error {
	accountID, err := pathAccountID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid amount"})
	}

	result, err := h.Ledger.Deposit(c.Context(), ledger.DepositInput{
		UserID:    currentUserID(c),
		AccountID: accountID,
		Amount:    amount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(movementResponse{
		Transaction: newTransactionResponse(result.Transaction),
		NewBalance:  result.NewBalance.StringFixed(2),
	})
}

func (h *LedgerHandler) Withdraw(c *fiber.Ctx) error {
	accountID, err := pathAccountID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid amount"})
	}

	result, err := h.Ledger.Withdraw(c.Context(), ledger.WithdrawInput{
		UserID:    currentUserID(c),
		AccountID: accountID,
		Amount:    amount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(movementResponse{
		Transaction: newTransactionResponse(result.Transaction),
		NewBalance:  result.NewBalance.StringFixed(2),
	})
}

type transferRequest struct {
	ToIBAN      string `json:"to_iban"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	accountID, err := pathAccountID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}

	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.ToIBAN == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "to_iban is required"})
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid amount"})
	}

	result, err := h.Ledger.Transfer(c.Context(), ledger.TransferInput{
		UserID:      currentUserID(c),
		AccountID:   accountID,
		ToIBAN:      req.ToIBAN,
		Amount:      amount,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction": newTransactionResponse(result.Transaction),
	})
}

type payBillRequest struct {
	BillType        string `json:"bill_type"`
	Provider        string `json:"provider"`
	ReferenceNumber string `json:"reference_number"`
	Amount          string `json:"amount"`
}

func (h *LedgerHandler) PayBill(c *fiber.Ctx) error {
	accountID, err := pathAccountID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}

	var req payBillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.BillType == "" || req.Provider == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "bill_type and provider are required"})
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid amount"})
	}

	result, err := h.Ledger.PayBill(c.Context(), ledger.PayBillInput{
		UserID:          currentUserID(c),
		AccountID:       accountID,
		BillType:        req.BillType,
		Provider:        req.Provider,
		ReferenceNumber: req.ReferenceNumber,
		Amount:          amount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(movementResponse{
		Transaction: newTransactionResponse(result.Transaction),
		NewBalance:  result.NewBalance.StringFixed(2),
	})
}

func (h *LedgerHandler) GetBalance(c *fiber.Ctx) error {
	accountID, err := pathAccountID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}

	result, err := h.Ledger.GetBalance(c.Context(), currentUserID(c), accountID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"balance":  result.Balance.StringFixed(2),
		"currency": result.Currency,
	})
}

func (h *LedgerHandler) ListTransactions(c *fiber.Ctx) error {
	accountID, err := pathAccountID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}

	limit := c.QueryInt("limit")

	txs, err := h.Ledger.ListTransactions(c.Context(), currentUserID(c), accountID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(newTransactionResponses(txs))
}
