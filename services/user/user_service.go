package user_service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/logging"
	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
	"github.com/google/uuid"
)

type PortalUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// UserService keeps the portal accounts in memory. The identity provider of
// a real deployment replaces it.
type UserService struct {
	mu     sync.RWMutex
	users  map[string]*PortalUser
	logger *logging.Logger
}

func NewUserService(logger *logging.Logger) *UserService {
	return &UserService{
		users:  make(map[string]*PortalUser),
		logger: logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *UserService) AddUser(email, name, role, password string) (*PortalUser, error) {
	email = normalizeEmail(email)
	if !IsValidRole(role) {
		return nil, NewUserError(ErrInvalidRole, email)
	}

	hash, err := utils.GenerateHashValue(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.users[email]; exists {
		return nil, NewUserError(ErrUserAlreadyExists, email)
	}

	user := &PortalUser{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
	}
	u.users[email] = user

	return user, nil
}

// SeedDemoUsers creates one account per role, all sharing password.
func (u *UserService) SeedDemoUsers(password string) error {
	demo := []struct {
		email string
		name  string
		role  string
	}{
		{"admin@partnerportal.dev", "Portal Admin", RoleAdmin},
		{"partner@partnerportal.dev", "Partner User", RolePartner},
		{"viewer@partnerportal.dev", "Read Only", RoleViewer},
	}

	for _, d := range demo {
		if _, err := u.AddUser(d.email, d.name, d.role, password); err != nil {
			return err
		}
	}

	u.logger.Info(fmt.Sprintf("seeded %d demo users", len(demo)))
	return nil
}

func (u *UserService) Authenticate(_ context.Context, email, password string) (*PortalUser, error) {
	email = normalizeEmail(email)

	u.mu.RLock()
	user, exists := u.users[email]
	u.mu.RUnlock()

	if !exists {
		return nil, NewUserError(ErrInvalidCredentials, email)
	}

	if err := utils.VerifyHashValue(password, user.PasswordHash); err != nil {
		return nil, NewUserError(ErrInvalidCredentials, email, err)
	}

	return user, nil
}

func (u *UserService) FetchUserByEmail(_ context.Context, email string) (*PortalUser, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	user, exists := u.users[normalizeEmail(email)]
	if !exists {
		return nil, NewUserError(ErrUserNotFound, email)
	}
	return user, nil
}
