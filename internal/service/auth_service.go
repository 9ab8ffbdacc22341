package service

import (
	"context"
	"errors"
	"time"

	"risk_assessment_backend/internal/config"
	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/internal/util"
	"risk_assessment_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo UserStore
	Cfg      *config.Config
}

func NewAuthService(userRepo UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// LoginResult 登录成功后返回的令牌和用户
type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if !user.Status {
		return nil, util.ErrUserInactive
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.UserRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	user.LastLogin = &now

	return &LoginResult{Token: token, User: user}, nil
}

// CurrentUser 令牌中的用户必须仍然存在且处于启用状态
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	if !user.Status {
		return nil, util.ErrUserInactive
	}
	return user, nil
}

// Renew 为当前用户签发新令牌
func (s *AuthService) Renew(ctx context.Context, userID uint) (*LoginResult, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// EnsureAdmin 管理员账号不存在时创建，返回是否新建
func (s *AuthService) EnsureAdmin(ctx context.Context, admin config.AdminConfig) (bool, error) {
	if admin.Email == "" || admin.Password == "" {
		return false, nil
	}

	_, err := s.UserRepo.FindByEmail(ctx, admin.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := HashPassword(admin.Password)
	if err != nil {
		return false, err
	}
	user := &model.User{
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		Email:     admin.Email,
		Password:  hashed,
		Role:      model.Admin,
		Status:    true,
	}
	if user.FirstName == "" {
		user.FirstName = "Administrador"
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return false, err
	}
	logger.Log.Info("bootstrap admin created", zap.String("email", admin.Email))
	return true, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
