package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"golang-marketplace-backend/internal/models"
	"golang-marketplace-backend/internal/repositories"
	"golang-marketplace-backend/pkg/auth"
	"golang-marketplace-backend/pkg/cache"
)

type AuthService struct {
	userRepo   repositories.UserRepository
	jwtManager *auth.JWTManager
	cache      *cache.RedisCache
}

func NewAuthService(userRepo repositories.UserRepository, jwtManager *auth.JWTManager, cache *cache.RedisCache) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		cache:      cache,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	User         models.User `json:"user"`
}

func (s *AuthService) storeRefreshToken(ctx context.Context, userID, refreshToken string) error {
	key := fmt.Sprintf("refresh_token:%s", userID)
	return s.cache.Set(ctx, key, refreshToken, time.Hour*24*30)
}

func (s *AuthService) getStoredRefreshToken(ctx context.Context, userID string) (string, error) {
	key := fmt.Sprintf("refresh_token:%s", userID)
	var token string
	err := s.cache.Get(ctx, key, &token)
	return token, err
}

func (s *AuthService) invalidateRefreshToken(ctx context.Context, userID string) error {
	key := fmt.Sprintf("refresh_token:%s", userID)
	return s.cache.Delete(ctx, key)
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	existingUser, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role != "restaurant_owner" {
		role = "customer"
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*AuthResponse, error) {
	tokens, err := s.jwtManager.GenerateTokenPair(user.ID.String(), user.Role, user.Email)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.storeRefreshToken(ctx, user.ID.String(), tokens.RefreshToken); err != nil {
			return nil, err
		}
	}

	return &AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "Bearer",
		User:         *user,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// token must match the one parked in Redis at login time.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return "", errors.New("invalid refresh token")
	}

	if s.cache != nil {
		stored, err := s.getStoredRefreshToken(ctx, claims.UserID)
		if err != nil || stored != refreshToken {
			return "", errors.New("refresh token revoked")
		}
	}

	return s.jwtManager.RefreshAccessToken(refreshToken)
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.invalidateRefreshToken(ctx, userID)
}
