package services

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pocketbase/pocketbase/core"

	"stockdesk/collections"
)

// MinPasswordLength matches the password rule of the users collection.
const MinPasswordLength = 8

// Session identifies the authenticated caller of one request.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Credentials is an email/password pair.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the credential format.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.EmailFormat),
		validation.Field(&c.Password, validation.Required, validation.Length(MinPasswordLength, 72)),
	)
}

// Identity authenticates users of the users auth collection and issues
// bearer tokens valid for collections.AuthTokenDuration.
type Identity struct {
	app core.App
}

// NewIdentity returns an Identity backed by app.
func NewIdentity(app core.App) *Identity {
	return &Identity{app: app}
}

// Register creates an account and returns a session for it.
func (id *Identity) Register(c Credentials) (*Session, error) {
	c.Email = normalizeEmail(c.Email)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if existing, err := id.app.FindAuthRecordByEmail(collections.Users, c.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	col, err := id.app.FindCollectionByNameOrId(collections.Users)
	if err != nil {
		return nil, fmt.Errorf("find users collection: %w", err)
	}
	user := core.NewRecord(col)
	user.SetEmail(c.Email)
	user.SetPassword(c.Password)
	if err := id.app.Save(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return id.newSession(user)
}

// Login checks the credentials and returns a fresh session.
func (id *Identity) Login(c Credentials) (*Session, error) {
	email := normalizeEmail(c.Email)
	if email == "" || c.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := id.app.FindAuthRecordByEmail(collections.Users, email)
	if err != nil || !user.ValidatePassword(c.Password) {
		return nil, ErrInvalidCredentials
	}

	return id.newSession(user)
}

// Authenticate resolves a bearer token into a session. Missing, malformed,
// expired or foreign tokens yield ErrNotAuthenticated.
func (id *Identity) Authenticate(token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := id.app.FindAuthRecordByToken(token, core.TokenTypeAuth)
	if err != nil || user.Collection().Name != collections.Users {
		return nil, ErrNotAuthenticated
	}

	expires, err := tokenExpiry(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	return &Session{
		UserID:    user.Id,
		Email:     user.Email(),
		Token:     token,
		ExpiresAt: expires,
	}, nil
}

func (id *Identity) newSession(user *core.Record) (*Session, error) {
	token, err := user.NewAuthToken()
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	expires, err := tokenExpiry(token)
	if err != nil {
		return nil, fmt.Errorf("read token expiry: %w", err)
	}
	return &Session{
		UserID:    user.Id,
		Email:     user.Email(),
		Token:     token,
		ExpiresAt: expires,
	}, nil
}

// tokenExpiry reads the exp claim of a token whose signature has already
// been verified (or was just issued).
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("token exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}
	return exp.Time, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
