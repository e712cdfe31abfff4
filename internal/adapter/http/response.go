package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/auth"
)

// writeError maps domain errors onto HTTP statuses. Anything not in
// the map is a 500 and the detail stays out of the response body.
func writeError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrTransactionNotPending):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

type accountResponse struct {
	ID            uuid.UUID `json:"id"`
	AccountNumber string    `json:"account_number"`
	IBAN          string    `json:"iban"`
	AccountType   string    `json:"account_type"`
	Currency      string    `json:"currency"`
	Balance       string    `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	IsActive      bool      `json:"is_active"`
}

func newAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		IBAN:          a.IBAN,
		AccountType:   string(a.AccountType),
		Currency:      a.Currency,
		Balance:       a.Balance.StringFixed(2),
		CreatedAt:     a.CreatedAt,
		IsActive:      a.IsActive,
	}
}

func newAccountResponses(accounts []*domain.Account) []accountResponse {
	out := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = newAccountResponse(a)
	}
	return out
}

type transactionResponse struct {
	ID            uuid.UUID  `json:"id"`
	FromAccountID *uuid.UUID `json:"from_account_id,omitempty"`
	ToAccountID   *uuid.UUID `json:"to_account_id,omitempty"`
	FromIBAN      string     `json:"from_iban,omitempty"`
	ToIBAN        string     `json:"to_iban,omitempty"`
	Amount        string     `json:"amount"`
	Type          string     `json:"type"`
	Description   string     `json:"description,omitempty"`
	Category      string     `json:"category,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

func newTransactionResponse(t *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		FromIBAN:      t.FromIBAN,
		ToIBAN:        t.ToIBAN,
		Amount:        t.Amount.StringFixed(2),
		Type:          string(t.Type),
		Description:   t.Description,
		Category:      t.Category,
		Status:        string(t.Status),
		CreatedAt:     t.CreatedAt,
	}
}

func newTransactionResponses(txs []*domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(txs))
	for i, t := range txs {
		out[i] = newTransactionResponse(t)
	}
	return out
}

type cardResponse struct {
	ID         uuid.UUID `json:"id"`
	AccountID  uuid.UUID `json:"account_id"`
	CardNumber string    `json:"card_number"`
	CardType   string    `json:"card_type"`
	Limit      *string   `json:"limit,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func newCardResponse(card *domain.Card) cardResponse {
	resp := cardResponse{
		ID:         card.ID,
		AccountID:  card.AccountID,
		CardNumber: card.CardNumber,
		CardType:   string(card.CardType),
		Status:     string(card.Status),
		CreatedAt:  card.CreatedAt,
		ExpiresAt:  card.ExpiresAt,
	}
	if card.Limit != nil {
		l := card.Limit.StringFixed(2)
		resp.Limit = &l
	}
	return resp
}

func newCardResponses(cards []*domain.Card) []cardResponse {
	out := make([]cardResponse, len(cards))
	for i, card := range cards {
		out[i] = newCardResponse(card)
	}
	return out
}
