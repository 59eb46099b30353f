package services

import (
	"errors"
	"strings"
	"time"

	"food-ordering-api/apperr"
	"food-ordering-api/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims are embedded in every session token
type Claims struct {
	UserID  string         `json:"userId"`
	Role    models.Role    `json:"role"`
	Country models.Country `json:"country"`
	jwt.RegisteredClaims
}

type AuthService struct {
	DB       *gorm.DB
	Secret   []byte
	TokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: secret, TokenTTL: tokenTTL}
}

type RegisterInput struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=6"`
	Role     models.Role    `json:"role" binding:"required"`
	Country  models.Country `json:"country" binding:"required"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new user account and logs it in.
func (s *AuthService) Register(in RegisterInput) (*LoginResult, error) {
	if !models.ValidRole(in.Role) {
		return nil, apperr.New(apperr.Validation, "invalid role, must be ADMIN, MANAGER or MEMBER")
	}
	if !models.ValidCountry(in.Country) {
		return nil, apperr.New(apperr.Validation, "invalid country, must be INDIA or AMERICA")
	}

	email := normalizeEmail(in.Email)
	var existing models.User
	if err := s.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperr.New(apperr.Conflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Country:      in.Country,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: &user}, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found, please check your email")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Unauthorized, "invalid email or password")
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: &user}, nil
}

// GenerateToken creates a signed JWT for a given user
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID:  user.ID,
		Role:    user.Role,
		Country: user.Country,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// VerifyToken validates a bearer token and resolves it to the referenced
// user. Any malformed, expired or orphaned token is unauthorized.
func (s *AuthService) VerifyToken(tokenStr string) (*models.User, error) {
	if tokenStr == "" {
		return nil, apperr.New(apperr.Unauthorized, "missing token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.Unauthorized, "invalid or expired token")
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.Unauthorized, "invalid or expired token")
		}
		return nil, err
	}
	return &user, nil
}

// CurrentUser loads the profile behind an authenticated identity.
func (s *AuthService) CurrentUser(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
