package services

import (
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"automarket/internal/apperrors"
	"automarket/internal/models"
	"automarket/internal/repositories"
)

// tokenCacheTTL bounds how long a validated token is trusted without
// re-validation. Kept short so role changes propagate quickly.
const tokenCacheTTL = 60 * time.Second

type cacheEntry struct {
	userID    uint
	expiresAt time.Time
}

// AuthService handles sign-up, sign-in and token validation. Accounts are
// provisioned with role "user" unless the email matches the configured owner
// address, in which case the role is forced to admin.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
	ownerEmail string

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret, ownerEmail string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		ownerEmail: ownerEmail,
		cache:      make(map[string]cacheEntry),
	}
}

// SignUp registers a new account, hashes the password and provisions the
// internal user row.
func (s *AuthService) SignUp(email, password, name string) (*models.User, error) {
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}
	if len(password) < 6 {
		return nil, apperrors.Validation("password must be at least 6 characters")
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, apperrors.Conflict("email %s already registered", email)
	} else if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to hash password")
	}

	role := models.RoleUser
	if s.ownerEmail != "" && email == s.ownerEmail {
		role = models.RoleAdmin
	}

	user := &models.User{
		OpenID:       uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hashedPassword),
		Role:         role,
		LastSignedIn: time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn authenticates a user and returns a signed token.
func (s *AuthService) SignIn(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		return "", nil, apperrors.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.Unauthorized("invalid credentials")
	}

	if s.ownerEmail != "" && user.Email == s.ownerEmail && user.Role != models.RoleAdmin {
		if err := s.userRepo.UpdateRole(user.ID, models.RoleAdmin); err != nil {
			return "", nil, err
		}
		user.Role = models.RoleAdmin
	}

	user.LastSignedIn = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return "", nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, apperrors.Internal(err, "failed to sign token")
	}
	return tokenString, user, nil
}

// SignOut forgets the cached lookup for a token. The token itself simply
// expires.
func (s *AuthService) SignOut(tokenString string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, tokenString)
}

// GetCurrentUser resolves a token to its user. Validated tokens are cached
// for a short period to avoid redundant validation; the user row itself is
// always read fresh.
func (s *AuthService) GetCurrentUser(tokenString string) (*models.User, error) {
	if userID, ok := s.cachedUserID(tokenString); ok {
		return s.userRepo.GetByID(userID)
	}

	claims, err := s.validateToken(tokenString)
	if err != nil {
		return nil, err
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apperrors.Unauthorized("token carries no user id")
	}
	userID := uint(rawID)

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Unauthorized("token user no longer exists")
		}
		return nil, err
	}

	s.mu.Lock()
	s.cache[tokenString] = cacheEntry{userID: userID, expiresAt: time.Now().Add(tokenCacheTTL)}
	s.mu.Unlock()

	return user, nil
}

func (s *AuthService) cachedUserID(tokenString string) (uint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[tokenString]
	if !ok {
		return 0, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.cache, tokenString)
		return 0, false
	}
	return entry.userID, true
}

func (s *AuthService) validateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Unauthorized("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnauthorized, err, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.Unauthorized("invalid token")
	}
	return claims, nil
}
