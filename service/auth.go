// Package service contains the wardrobe business logic: authentication, the
// clothing catalog and the outfit composer. Operations return errors wrapping
// the errs sentinels; the HTTP layer maps them to status codes.
package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/virtuwear/wardrobe-backend/errs"
	"github.com/virtuwear/wardrobe-backend/models"
	"github.com/virtuwear/wardrobe-backend/store"
)

// Auth handles registration, login and token authentication.
type Auth struct {
	users    store.UserStore
	secret   []byte
	tokenTTL time.Duration
}

func NewAuth(users store.UserStore, secret []byte, tokenTTL time.Duration) *Auth {
	return &Auth{users: users, secret: secret, tokenTTL: tokenTTL}
}

// LoginResult is what a successful login returns: the bearer token plus the
// public profile fields. The password hash is never included.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register creates a new user with a bcrypt-hashed password.
func (a *Auth) Register(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("username, email and password are required: %w", errs.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		Clothes:   []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}
	if _, err := a.users.Create(ctx, user); err != nil {
		return err
	}
	return nil
}

// Login verifies credentials for a username or email and issues a bearer token.
func (a *Auth) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	if login == "" || password == "" {
		return nil, fmt.Errorf("login and password are required: %w", errs.ErrValidation)
	}

	user, err := a.users.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", errs.ErrAuth)
	}

	token, err := GenerateToken(user.ID.Hex(), a.secret, a.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResult{Token: token, Username: user.Username, Email: user.Email}, nil
}

// Authenticate validates a bearer token and resolves the user it identifies.
func (a *Auth) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("no token provided: %w", errs.ErrAuth)
	}

	userID, err := ParseToken(token, a.secret)
	if err != nil {
		return nil, err
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %w", errs.ErrAuth)
	}

	// A valid token for a user that no longer resolves is a not-found,
	// not an auth failure.
	return a.users.FindByID(ctx, objID)
}
