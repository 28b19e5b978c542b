package user

import (
	"context"

	"github.com/softglass/calculator-backend/application/token"
	"github.com/softglass/calculator-backend/cmd/config"
	"github.com/softglass/calculator-backend/constant"
	"github.com/softglass/calculator-backend/model"
	"github.com/softglass/calculator-backend/repository"
	redisrepo "github.com/softglass/calculator-backend/repository/redis"
	txrepo "github.com/softglass/calculator-backend/repository/tx"
	userrepo "github.com/softglass/calculator-backend/repository/user"
	"github.com/softglass/calculator-backend/utils/errors"
	"github.com/softglass/calculator-backend/utils/logger"
	"github.com/softglass/calculator-backend/utils/password"
	validatorx "github.com/softglass/calculator-backend/utils/validator"
	"go.uber.org/zap"
)

type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	Profile(ctx context.Context, userID uint64) (*model.ProfileResponse, error)
}

type UserAppImpl struct {
	config    *config.Config
	txRepo    txrepo.TxRepository
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
	hasher    password.Hasher
	tokens    token.TokenService
}

func NewUserApp(config *config.Config, txRepo txrepo.TxRepository, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository, hasher password.Hasher, tokens token.TokenService) UserApp {
	return &UserAppImpl{
		config:    config,
		txRepo:    txRepo,
		userRepo:  userRepo,
		redisRepo: redisRepo,
		hasher:    hasher,
		tokens:    tokens,
	}
}

func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomError(constant.ErrMissingCredentials)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		logger.Error("[Register] err hasher.Hash", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Register] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	existingUser, err := s.userRepo.GetTx(ctx, tx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Register] err userRepo.GetTx email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	userEntity, err := s.userRepo.CreateTx(ctx, tx, &model.UserEntity{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
	})
	if err != nil {
		// a concurrent registration won the race for the unique index
		if repository.IsUniqueViolation(err) {
			return nil, errors.SetCustomError(constant.ErrCredentialExists)
		}
		logger.Error("[Register] err userRepo.CreateTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Register] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return s.authResponse("Register", userEntity)
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomError(constant.ErrMissingCredentials)
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// unknown email and wrong password must look the same to the caller
	if user == nil || !s.hasher.Matches(user.PasswordHash, req.Password) {
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	return s.authResponse("Login", user)
}

// Profile serves the cached public profile when present and falls back to
// the users table.
func (s *UserAppImpl) Profile(ctx context.Context, userID uint64) (*model.ProfileResponse, error) {
	cached, err := s.redisRepo.GetProfile(ctx, userID)
	if err != nil {
		logger.Warn("[Profile] cache read failed", zap.Uint64("user_id", userID), zap.String("error", err.Error()))
	}
	if cached != nil {
		return &model.ProfileResponse{User: *cached}, nil
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[Profile] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	profile := user.Profile()
	if err := s.redisRepo.SetProfile(ctx, &profile, s.config.Redis.ProfileTTL); err != nil {
		logger.Warn("[Profile] cache write failed", zap.Uint64("user_id", userID), zap.String("error", err.Error()))
	}

	return &model.ProfileResponse{User: profile}, nil
}

func (s *UserAppImpl) authResponse(fn string, user *model.UserEntity) (*model.AuthResponse, error) {
	tokenString, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		logger.Error("["+fn+"] err tokens.Issue", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.AuthResponse{
		Token: tokenString,
		User:  user.Profile(),
	}, nil
}
