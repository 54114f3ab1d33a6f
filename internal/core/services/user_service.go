package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/dto"
	"github.com/schoolstate/sas_backend/internal/middleware"
	"github.com/schoolstate/sas_backend/internal/utils"
)

// userService implements user provisioning and the identity checks every
// other service gates on.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(ctx context.Context, sig domain.UserSignature) (*domain.User, error) {
	return s.userRepo.FindUserBySignature(ctx, sig)
}

func (s *userService) ListUsers(ctx context.Context, caller domain.UserSignature, userType domain.UserType) ([]domain.User, error) {
	if _, err := s.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.userRepo.ListUsers(ctx, userType)
}

// CreateUser provisions the user and its bank account as one unit. The
// account starts with both balances at zero.
func (s *userService) CreateUser(ctx context.Context, caller domain.UserSignature, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	passwordHash := ""
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, apperrors.Internal("failed to hash password", err)
		}
		passwordHash = hash
	} else if req.Type != domain.UserGuest {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "citizens and companies need a password")
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Type:         req.Type,
		Name:         req.Name,
		PasswordHash: passwordHash,
		Roles:        req.Roles,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.ID,
		},
	}
	account := domain.BankAccount{
		AccountID:         uuid.NewString(),
		Owner:             user.Signature(),
		Balance:           decimal.Zero,
		RedemptionBalance: decimal.Zero,
		AuditFields:       user.AuditFields,
	}

	if err := s.userRepo.SaveUser(ctx, user, account); err != nil {
		logger.Error("failed to create user", "name", req.Name, "error", err)
		return nil, err
	}
	logger.Info("user created", "userID", user.UserID, "type", user.Type)
	return &user, nil
}

func (s *userService) DeleteUser(ctx context.Context, caller domain.UserSignature, sig domain.UserSignature) error {
	if _, err := s.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return err
	}
	return s.userRepo.DeleteUser(ctx, sig, caller.ID)
}

// RequireRole loads the caller and checks for at least one of the roles.
// An unknown caller reports PERMISSION_DENIED rather than USER_NOT_FOUND so
// probing requests learn nothing about which users exist.
func (s *userService) RequireRole(ctx context.Context, caller domain.UserSignature, roles ...domain.Role) (*domain.User, error) {
	user, err := s.userRepo.FindUserBySignature(ctx, caller)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeUserNotFound) {
			return nil, apperrors.ErrPermissionDenied
		}
		return nil, err
	}
	for _, role := range roles {
		if user.HasRole(role) {
			return user, nil
		}
	}
	return nil, apperrors.Newf(apperrors.CodePermissionDenied, "operation requires one of roles %v", roles)
}

func (s *userService) RequireType(ctx context.Context, caller domain.UserSignature, types ...domain.UserType) (*domain.User, error) {
	user, err := s.userRepo.FindUserBySignature(ctx, caller)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeUserNotFound) {
			return nil, apperrors.ErrPermissionDenied
		}
		return nil, err
	}
	for _, t := range types {
		if user.Type == t {
			return user, nil
		}
	}
	return nil, apperrors.Newf(apperrors.CodePermissionDenied, "operation requires user type %v", types)
}

func (s *userService) VerifyCredentials(ctx context.Context, sig domain.UserSignature, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserBySignature(ctx, sig)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeUserNotFound) {
			return nil, apperrors.New(apperrors.CodeInvalidPassword, "invalid credentials")
		}
		return nil, err
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.New(apperrors.CodeInvalidPassword, "invalid credentials")
	}
	return user, nil
}
