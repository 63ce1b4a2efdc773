package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/progdash/progdash/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("email, password, and username are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("an account with that email already exists")
	ErrNoSession          = errors.New("no active session")
)

// Store is the subset of persistence the auth service needs.
type Store interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	CountAdmins(ctx context.Context) (int, error)
	CreateSession(ctx context.Context, s *models.Session) error
	Session(ctx context.Context, sid string) (*models.Session, error)
	DeleteSession(ctx context.Context, sid string) (bool, error)
}

// Service manages admin accounts and their sessions. Sessions live in
// the store, not in process memory, so any instance can serve any
// session.
type Service struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewService(store Store, ttl time.Duration) *Service {
	return &Service{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Signup creates an admin account and opens a session for it.
func (s *Service) Signup(ctx context.Context, email, password, username string) (*models.SessionUser, string, error) {
	if email == "" || password == "" || username == "" {
		return nil, "", ErrMissingFields
	}
	existing, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user, err := s.store.CreateUser(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}
	return s.openSession(ctx, user)
}

// Login validates credentials and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (*models.SessionUser, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("look up user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	return s.openSession(ctx, user)
}

func (s *Service) openSession(ctx context.Context, user *models.User) (*models.SessionUser, string, error) {
	su := models.SessionUser{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		LoginTime: s.now(),
	}
	sess := &models.Session{
		SID:    uuid.New().String(),
		User:   su,
		Expire: s.now().Add(s.ttl),
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	return &su, sess.SID, nil
}

// SessionUser resolves a session id to its user. Expired sessions are
// removed on sight.
func (s *Service) SessionUser(ctx context.Context, sid string) (*models.SessionUser, error) {
	if sid == "" {
		return nil, ErrNoSession
	}
	sess, err := s.store.Session(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("look up session: %w", err)
	}
	if sess == nil {
		return nil, ErrNoSession
	}
	if sess.Expired(s.now()) {
		s.store.DeleteSession(ctx, sid)
		return nil, ErrNoSession
	}
	user := sess.User
	return &user, nil
}

func (s *Service) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if _, err := s.store.DeleteSession(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// AdminExists reports whether any admin account has been created yet.
func (s *Service) AdminExists(ctx context.Context) (bool, error) {
	n, err := s.store.CountAdmins(ctx)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return n > 0, nil
}
