// services/auth_service.go
package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/repository"
	"github.com/baseelze-maker/wasel-backend/utils"
)

const (
	bcryptCost    = 12
	sessionExpiry = 72 * time.Hour
)

// SessionClaims are the JWT claims carried by a session token. The rest of
// the backend consumes only the user ID and role out of these.
type SessionClaims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles signup, signin, and session validation
type AuthService struct {
	users      UserStore
	signingKey []byte
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, signingKey string) *AuthService {
	return &AuthService{users: users, signingKey: []byte(signingKey)}
}

// SignUp registers a new traveler or sender
func (s *AuthService) SignUp(req *models.SignUpRequest) (*models.User, error) {
	if err := utils.ValidateRequired(req.FullName, "fullName"); err != nil {
		return nil, err
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := utils.ValidateOneOf(req.Role, "role", utils.RoleTraveler, utils.RoleSender); err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, utils.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, utils.NewInternalError("Failed to hash password")
	}

	user := &models.User{
		ID:           utils.GenerateID(),
		FullName:     req.FullName,
		Email:        utils.NormalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    time.Now(),
	}
	if err := s.users.StoreUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewValidationError("email is already registered")
		}
		return nil, utils.NewInternalError("Failed to store user")
	}
	return user, nil
}

// SignIn verifies credentials and issues a session token
func (s *AuthService) SignIn(email, password string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, utils.NewInvalidCredentialsError()
		}
		return "", nil, utils.NewInternalError("Failed to retrieve user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, utils.NewInvalidCredentialsError()
	}

	now := time.Now()
	claims := SessionClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionExpiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", nil, utils.NewInternalError("Failed to sign session token")
	}
	return token, user, nil
}

// ParseToken validates a session token and returns its claims
func (s *AuthService) ParseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil, utils.NewUnauthenticatedError()
	}
	return claims, nil
}

// CurrentSession returns the user behind a validated session
func (s *AuthService) CurrentSession(userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewUnauthenticatedError()
		}
		return nil, utils.NewInternalError("Failed to retrieve user")
	}
	return user, nil
}
