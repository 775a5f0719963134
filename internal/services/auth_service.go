package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pokedex/internal/models"
	"pokedex/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

var (
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenPayload       = errors.New("invalid token payload")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already taken")
)

// Claims is the payload carried by access tokens.
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

// AuthService handles password hashing, token issuance and verification, and
// the account flows built on them.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService signing tokens with secret.
func NewAuthService(userRepo repositories.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(secret),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for issuing and expiring tokens.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// HashPassword returns the bcrypt hash of plain.
func (s *AuthService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored hash.
func (s *AuthService) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IssueToken signs an HS256 token for the user that expires after the
// configured TTL.
func (s *AuthService) IssueToken(userID int64, email string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// VerifyToken checks signature, expiry and payload, in that order.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	parser := jwt.Parser{
		ValidMethods: []string{jwt.SigningMethodHS256.Alg()},
		// Expiry is checked against s.now below.
		SkipClaimsValidation: true,
	}

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return nil, ErrTokenExpired
	}

	if claims.UserID == 0 || claims.Email == "" {
		return nil, ErrTokenPayload
	}
	return claims, nil
}

// Register creates an account and returns it with a fresh token. Email is
// checked before username, so the first conflict reported is the email one.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	if err := s.ensureFree(ctx, s.userRepo.GetByEmail, email, ErrEmailTaken); err != nil {
		return nil, "", err
	}
	if err := s.ensureFree(ctx, s.userRepo.GetByUsername, username, ErrUsernameTaken); err != nil {
		return nil, "", err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	slog.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

func (s *AuthService) ensureFree(ctx context.Context, lookup func(context.Context, string) (*models.User, error), key string, taken error) error {
	_, err := lookup(ctx, key)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return err
	}
}

// Login authenticates by email and password. An unknown email and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.VerifyPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CurrentUser loads the account a verified token refers to.
func (s *AuthService) CurrentUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
