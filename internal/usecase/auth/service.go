// Package auth is the identity boundary: registration, login and
// token verification. Every other usecase trusts the user ID this
// package resolves from a bearer token.
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/catalog"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/ledger"
)

// Config carries the tunables of the identity boundary
type Config struct {
	TokenSecret  string
	TokenTTL     time.Duration
	WelcomeBonus decimal.Decimal
}

// Service handles registration, login and token verification
type Service struct {
	UserRepo domain.UserRepository
	Catalog  *catalog.Service
	Ledger   *ledger.Service
	Tokens   *TokenIssuer

	welcomeBonus decimal.Decimal
}

// NewService creates a new auth Service instance
func NewService(userRepo domain.UserRepository, catalogSvc *catalog.Service, ledgerSvc *ledger.Service, cfg Config) *Service {
	return &Service{
		UserRepo:     userRepo,
		Catalog:      catalogSvc,
		Ledger:       ledgerSvc,
		Tokens:       NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL),
		welcomeBonus: cfg.WelcomeBonus,
	}
}

// RegisterInput represents the input for registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// AuthResult is the outcome of a successful registration or login
type AuthResult struct {
	Token string
	User  *domain.User
}

// Register creates a user with a default TRY checking account. The
// welcome bonus is deposited through the ledger so the very first
// balance already has a transaction explaining it.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if !strings.Contains(input.Email, "@") {
		return nil, errors.New("invalid email address")
	}
	if len(input.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hashPassword(input.Password),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	account, err := s.Catalog.CreateAccount(ctx, catalog.CreateAccountInput{
		UserID:      user.ID,
		AccountType: domain.AccountTypeChecking,
		Currency:    domain.CurrencyTRY,
	})
	if err != nil {
		return nil, err
	}

	if s.welcomeBonus.IsPositive() {
		if _, err := s.Ledger.Deposit(ctx, ledger.DepositInput{
			UserID:    user.ID,
			AccountID: account.ID,
			Amount:    s.welcomeBonus,
		}); err != nil {
			return nil, err
		}
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// LoginInput represents the input for login
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.UserRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if !verifyPassword(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// VerifyToken resolves a bearer token to an existing user's ID
func (s *Service) VerifyToken(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.Tokens.Verify(token)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := s.UserRepo.GetByID(ctx, userID); err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

// GetUser returns the user behind a verified ID
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.UserRepo.GetByID(ctx, userID)
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func verifyPassword(password, hash string) bool {
	sum := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(hash)) == 1
}
