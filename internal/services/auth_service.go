package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ArowuTest/skillprize-backend/internal/config"
	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"github.com/ArowuTest/skillprize-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

var _ AuthService = (*authService)(nil)

type authService struct {
	userRepo repositories.UserRepository
	jwtCfg   config.JWTConfig
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(userRepo repositories.UserRepository, jwtCfg config.JWTConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

// Register handles user registration. New accounts always get the user role.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, collaboratorError("find user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, collaboratorError("create user", err)
	}

	slog.Info("User registered", "userId", user.ID.Hex())
	return s.issue(user)
}

// Login handles user login
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, collaboratorError("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		slog.Warn("Login failed", "userId", user.ID.Hex())
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// GetUser resolves the identity behind a verified token
func (s *authService) GetUser(ctx context.Context, userID string) (*models.AuthUser, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, collaboratorError("find user", err)
	}
	authUser := toAuthUser(user)
	return &authUser, nil
}

func (s *authService) issue(user *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateJWT(user, s.jwtCfg)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{User: toAuthUser(user), Token: token}, nil
}

func toAuthUser(user *models.User) models.AuthUser {
	return models.AuthUser{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
