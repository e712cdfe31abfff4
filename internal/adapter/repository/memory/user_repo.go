package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

// userRepository implements domain.UserRepository
type userRepository struct {
	s *Store
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository(s *Store) domain.UserRepository {
	return &userRepository{s: s}
}

// Create creates a new user, enforcing email uniqueness
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.emails[user.Email]; taken {
		return domain.ErrEmailTaken
	}
	r.s.users[user.ID] = *user
	r.s.emails[user.Email] = user.ID
	return nil
}

// GetByID retrieves a user by its ID
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.emails[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.s.users[id]
	cp := u
	return &cp, nil
}
