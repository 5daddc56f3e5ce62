// Package identity registers users, checks their credentials and manages the
// sessions that bind a browser cookie to a user.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nalindobhal/blog/internal/db"
	"github.com/nalindobhal/blog/internal/form"
)

const defaultTTL = 14 * 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid username or password")

const (
	usernameTakenMessage = "A user with that username already exists."
	emailTakenMessage    = "This email already exists"
)

type Config struct {
	Secret   string
	TTL      time.Duration
	HashCost int
}

type Service struct {
	store  db.Store
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

func NewService(store db.Store, cfg Config) *Service {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	cost := cfg.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &Service{
		store:  store,
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		cost:   cost,
		now:    time.Now,
	}
}

// RegistrationInput is the sign-up form.
type RegistrationInput struct {
	Username  string `json:"username" form:"username" validate:"required,max=150,username"`
	Email     string `json:"email" form:"email" validate:"required,max=254,email"`
	FirstName string `json:"first_name" form:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" form:"last_name" validate:"max=150"`
	Password1 string `json:"password1" form:"password1" validate:"required,min=8,max=72"`
	Password2 string `json:"password2" form:"password2" validate:"required,eqfield=Password1"`
}

// LoginInput is the sign-in form.
type LoginInput struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Register validates the sign-up form and creates the user. Validation
// problems are reported as *form.ValidationError.
func (s *Service) Register(ctx context.Context, in RegistrationInput) (*db.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	ve := form.Validate(in)
	if in.Password1 != "" && isNumeric(in.Password1) {
		ve.Add("password1", "This password is entirely numeric.")
	}

	if in.Username != "" {
		taken, err := s.store.UsernameTaken(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			ve.Add("username", usernameTakenMessage)
		}
	}

	if in.Email != "" {
		taken, err := s.store.EmailTaken(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			ve.Add("email", emailTakenMessage)
		}
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password1), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		CreatedOn:    s.now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		var dup *db.DuplicateError
		if errors.As(err, &dup) {
			if dup.Constraint == db.UsersEmailKey {
				ve.Add("email", emailTakenMessage)
			} else {
				ve.Add("username", usernameTakenMessage)
			}
			return nil, ve
		}
		return nil, err
	}

	return user, nil
}

// Authenticate returns the user owning the credentials or ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*db.User, error) {
	user, err := s.store.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Establish opens a session for user and returns the signed token to hand to the client.
func (s *Service) Establish(ctx context.Context, user *db.User) (string, time.Time, error) {
	now := s.now()
	session := &db.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedOn: now,
		ExpiresOn: now.Add(s.ttl),
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	token, err := s.sign(session)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, session.ExpiresOn, nil
}

// Current resolves a session token into its user. Invalid, expired and revoked
// tokens resolve to nil without an error.
func (s *Service) Current(ctx context.Context, token string) (*db.User, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := s.parse(token)
	if err != nil {
		return nil, nil
	}

	session, err := s.store.SessionByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}

	if !s.active(session) || strconv.FormatInt(session.UserID, 10) != claims.Subject {
		return nil, nil
	}

	return s.store.UserByID(ctx, session.UserID)
}

// Logout revokes the session behind token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.parse(token)
	if err != nil {
		return nil
	}

	return s.store.RevokeSession(ctx, claims.SessionID)
}

func (s *Service) active(session *db.Session) bool {
	return session != nil && session.RevokedOn == nil && s.now().Before(session.ExpiresOn)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
