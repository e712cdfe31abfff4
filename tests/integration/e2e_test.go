//go:build integration

// End-to-end flow over an in-process fiber application backed by the
// in-memory store: register, fund an account, move money around and
// read it all back through the dashboard.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/omerfarukdemir/atlasbank-backend/internal/adapter/http"
	"github.com/omerfarukdemir/atlasbank-backend/internal/adapter/repository/memory"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/auth"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/catalog"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/dashboard"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/ledger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	accountRepo := memory.NewAccountRepository(store)
	cardRepo := memory.NewCardRepository(store)
	txRepo := memory.NewTransactionRepository(store)
	ledgerStore := memory.NewLedgerStore(store)

	ledgerSvc := ledger.NewService(accountRepo, txRepo, ledgerStore)
	catalogSvc := catalog.NewService(accountRepo, cardRepo)
	authSvc := auth.NewService(userRepo, catalogSvc, ledgerSvc, auth.Config{
		TokenSecret:  "integration-test-secret",
		TokenTTL:     time.Hour,
		WelcomeBonus: decimal.NewFromInt(1000),
	})
	dashboardSvc := dashboard.NewDashboardService(userRepo, accountRepo, txRepo, cardRepo)

	return httpadapter.NewApp(httpadapter.Services{
		Auth:      authSvc,
		Catalog:   catalogSvc,
		Ledger:    ledgerSvc,
		Dashboard: dashboardSvc,
	}, "*")
}

// call sends a JSON request through the in-process app and decodes the
// response body into out (when out is non-nil).
func call(t *testing.T, app *fiber.App, method, path, token string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type authPayload struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type accountPayload struct {
	ID       string `json:"id"`
	IBAN     string `json:"iban"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

type transactionPayload struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
}

type movementPayload struct {
	Transaction transactionPayload `json:"transaction"`
	NewBalance  string             `json:"new_balance"`
}

func register(t *testing.T, app *fiber.App, email string) authPayload {
	t.Helper()

	var out authPayload
	status := call(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":      email,
		"password":   "correct-horse",
		"first_name": "Ada",
		"last_name":  "Yilmaz",
	}, &out)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, out.Token)
	return out
}

func firstAccount(t *testing.T, app *fiber.App, token string) accountPayload {
	t.Helper()

	var accounts []accountPayload
	status := call(t, app, http.MethodGet, "/api/accounts", token, nil, &accounts)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, accounts, 1)
	return accounts[0]
}

func TestFullBankingFlow(t *testing.T) {
	app := newTestApp(t)

	// Register: a default TRY account with the welcome bonus appears
	alice := register(t, app, "alice@example.com")
	aliceAcc := firstAccount(t, app, alice.Token)
	assert.Equal(t, "1000.00", aliceAcc.Balance)
	assert.Equal(t, "TRY", aliceAcc.Currency)
	assert.Regexp(t, `^TR32 0001 0001 \d{11}$`, aliceAcc.IBAN)

	bob := register(t, app, "bob@example.com")
	bobAcc := firstAccount(t, app, bob.Token)

	// Deposit
	var dep movementPayload
	status := call(t, app, http.MethodPost, "/api/accounts/"+aliceAcc.ID+"/deposit", alice.Token,
		fiber.Map{"amount": "500.00"}, &dep)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "1500.00", dep.NewBalance)
	assert.Equal(t, "deposit", dep.Transaction.Type)
	assert.Equal(t, "completed", dep.Transaction.Status)

	// Transfer to Bob's IBAN: atomic debit and credit
	var tr struct {
		Transaction transactionPayload `json:"transaction"`
	}
	status = call(t, app, http.MethodPost, "/api/accounts/"+aliceAcc.ID+"/transfer", alice.Token,
		fiber.Map{"to_iban": bobAcc.IBAN, "amount": "200.00", "description": "Rent share"}, &tr)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "completed", tr.Transaction.Status)

	var balance struct {
		Balance string `json:"balance"`
	}
	status = call(t, app, http.MethodGet, "/api/accounts/"+bobAcc.ID+"/balance", bob.Token, nil, &balance)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1200.00", balance.Balance)

	// Pay a bill
	var bill movementPayload
	status = call(t, app, http.MethodPost, "/api/accounts/"+aliceAcc.ID+"/pay-bill", alice.Token,
		fiber.Map{"bill_type": "electricity", "provider": "BEDAS", "amount": "75.50"}, &bill)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "1224.50", bill.NewBalance)
	assert.Equal(t, "electricity", bill.Transaction.Category)
	assert.Equal(t, "electricity bill payment to BEDAS", bill.Transaction.Description)

	// Dashboard aggregates it all
	var overview struct {
		TotalBalance       string               `json:"total_balance"`
		Accounts           []accountPayload     `json:"accounts"`
		RecentTransactions []transactionPayload `json:"recent_transactions"`
	}
	status = call(t, app, http.MethodGet, "/api/dashboard", alice.Token, nil, &overview)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1224.50", overview.TotalBalance)
	require.Len(t, overview.Accounts, 1)
	require.NotEmpty(t, overview.RecentTransactions)
	// Newest first: the bill payment leads
	assert.Equal(t, "bill_payment", overview.RecentTransactions[0].Type)
}

func TestTransferToUnknownIBANStaysPending(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com")
	acc := firstAccount(t, app, alice.Token)

	var tr struct {
		Transaction transactionPayload `json:"transaction"`
	}
	status := call(t, app, http.MethodPost, "/api/accounts/"+acc.ID+"/transfer", alice.Token,
		fiber.Map{"to_iban": "TR32 0001 0001 99999999999", "amount": "100.00"}, &tr)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "pending", tr.Transaction.Status)

	// Funds left at transfer time
	var balance struct {
		Balance string `json:"balance"`
	}
	status = call(t, app, http.MethodGet, "/api/accounts/"+acc.ID+"/balance", alice.Token, nil, &balance)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "900.00", balance.Balance)
}

func TestRejectionsOverHTTP(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com")
	bob := register(t, app, "bob@example.com")
	aliceAcc := firstAccount(t, app, alice.Token)

	cases := []struct {
		name       string
		method     string
		path       string
		token      string
		body       any
		wantStatus int
	}{
		{
			name:       "overdraw rejected",
			method:     http.MethodPost,
			path:       "/api/accounts/" + aliceAcc.ID + "/withdraw",
			token:      alice.Token,
			body:       fiber.Map{"amount": "99999.00"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative amount rejected",
			method:     http.MethodPost,
			path:       "/api/accounts/" + aliceAcc.ID + "/deposit",
			token:      alice.Token,
			body:       fiber.Map{"amount": "-5.00"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "transfer to own iban rejected",
			method:     http.MethodPost,
			path:       "/api/accounts/" + aliceAcc.ID + "/transfer",
			token:      alice.Token,
			body:       fiber.Map{"to_iban": aliceAcc.IBAN, "amount": "10.00"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "foreign account invisible",
			method:     http.MethodGet,
			path:       "/api/accounts/" + aliceAcc.ID + "/balance",
			token:      bob.Token,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing token",
			method:     http.MethodGet,
			path:       "/api/accounts",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "duplicate email",
			method:     http.MethodPost,
			path:       "/api/auth/register",
			body:       fiber.Map{"email": "alice@example.com", "password": "correct-horse", "first_name": "A", "last_name": "B"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := call(t, app, tc.method, tc.path, tc.token, tc.body, nil)
			assert.Equal(t, tc.wantStatus, status)
		})
	}

	// Failed movements leave no trace in history
	var txs []transactionPayload
	status := call(t, app, http.MethodGet,
		fmt.Sprintf("/api/accounts/%s/transactions", aliceAcc.ID), alice.Token, nil, &txs)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, txs, 1) // only the welcome bonus deposit
	assert.Equal(t, "deposit", txs[0].Type)
}

func TestCardLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com")
	acc := firstAccount(t, app, alice.Token)

	var card struct {
		CardNumber string `json:"card_number"`
		CardType   string `json:"card_type"`
	}
	status := call(t, app, http.MethodPost, "/api/cards", alice.Token,
		fiber.Map{"account_id": acc.ID, "card_type": "debit"}, &card)
	require.Equal(t, http.StatusCreated, status)
	assert.Regexp(t, `^4\*\*\* \*\*\*\* \*\*\*\* \d{4}$`, card.CardNumber)

	var cards []struct {
		CardNumber string `json:"card_number"`
	}
	status = call(t, app, http.MethodGet, "/api/cards", alice.Token, nil, &cards)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, cards, 1)
}
