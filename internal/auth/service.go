package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sandesh/prepquiz/internal/errors"
	"github.com/sandesh/prepquiz/internal/logger"
	"github.com/sandesh/prepquiz/internal/models"
	"github.com/sandesh/prepquiz/internal/store"
)

// Demo credentials accepted by the mocked login. There is no real user
// backend; the directory lives in memory and is seeded at startup.
const (
	DemoEmail    = "user@example.com"
	DemoPassword = "password123"
)

// Service is the identity provider. Login is mocked against an in-memory
// directory, but tokens are real JWTs and the issued token is persisted under
// the auth-token key so the identity survives a restart.
type Service struct {
	mu     sync.Mutex
	store  store.Store
	secret []byte
	ttl    time.Duration
	users  map[string]*models.User // keyed by email
	hashes map[string][]byte       // bcrypt hash keyed by email
}

// NewService creates the identity provider and seeds the demo account.
func NewService(st store.Store, secret string, ttl time.Duration) *Service {
	s := &Service{
		store:  st,
		secret: []byte(secret),
		ttl:    ttl,
		users:  make(map[string]*models.User),
		hashes: make(map[string][]byte),
	}
	s.seed(DemoEmail, "Demo User", DemoPassword)
	return s
}

func (s *Service) seed(email, name, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash seed password: %v", err)
		return
	}
	s.users[email] = &models.User{
		ID:               uuid.NewString(),
		Email:            email,
		Name:             name,
		IsPremium:        false,
		SubscriptionTier: models.TierFree,
		CreatedAt:        time.Now(),
	}
	s.hashes[email] = hash
}

// Login checks credentials, issues a token and persists it. The returned
// user is a copy; callers cannot mutate the directory through it.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	log := logger.FromContext(ctx).WithPrefix("auth")

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", errors.NewValidationError("credentials", "email and password are required")
	}

	s.mu.Lock()
	u, ok := s.users[email]
	hash := s.hashes[email]
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		log.Warn("login failed for %s", email)
		return nil, "", errors.NewUnauthorizedError("invalid credentials")
	}

	token, err := SignToken(s.secret, u.ID, u.Email, s.ttl)
	if err != nil {
		return nil, "", errors.NewInternalError(err)
	}

	s.store.Put(ctx, store.KeyAuthToken, token)
	log.Info("user logged in: %s", email)

	user := *u
	return &user, token, nil
}

// Logout discards the persisted token.
func (s *Service) Logout(ctx context.Context) {
	s.store.Delete(ctx, store.KeyAuthToken)
	logger.FromContext(ctx).WithPrefix("auth").Info("user logged out")
}

// UserFromToken resolves a presented token to the live directory entry.
func (s *Service) UserFromToken(tok string) (*models.User, error) {
	claims, err := ParseToken(s.secret, tok)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == claims.UID {
			user := *u
			return &user, nil
		}
	}
	return nil, errors.NewUnauthorizedError("unknown user")
}

// Current restores the identity from the persisted token, or nil when nobody
// is logged in. A nil user is a valid anonymous free identity.
func (s *Service) Current(ctx context.Context) *models.User {
	var token string
	if !s.store.Get(ctx, store.KeyAuthToken, &token) {
		return nil
	}
	user, err := s.UserFromToken(token)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("auth").Debug("stored token rejected: %v", err)
		return nil
	}
	return user
}

// Upgrade flips the user onto a paid tier. Checkout is mocked: any known
// user and valid tier succeeds, with a 30-day subscription window.
func (s *Service) Upgrade(ctx context.Context, user *models.User, tier string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("auth")

	if user == nil {
		return nil, errors.NewUnauthorizedError("login required to upgrade")
	}
	if tier != models.TierBasic && tier != models.TierPremium {
		return nil, errors.NewValidationError("tier", "must be 'basic' or 'premium'")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[user.Email]
	if !ok {
		return nil, errors.NewNotFoundError("user", user.Email)
	}

	expiry := time.Now().Add(30 * 24 * time.Hour)
	u.IsPremium = true
	u.SubscriptionTier = tier
	u.SubscriptionExpiry = &expiry

	log.Info("user upgraded: %s -> %s", u.Email, tier)
	upgraded := *u
	return &upgraded, nil
}
