package services

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/middleware"
	"github.com/schoolstate/sas_backend/internal/platform/config"
	"github.com/schoolstate/sas_backend/internal/utils"
)

// authService issues session tokens. Password logins resolve users by type
// and name; card logins resolve whoever the card is currently bound to.
type authService struct {
	userRepo portsrepo.UserRepositoryFacade
	cardRepo portsrepo.CardRepositoryFacade
	cfg      *config.Config
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// NewAuthService creates a new auth service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cardRepo portsrepo.CardRepositoryFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, cardRepo: cardRepo, cfg: cfg}
}

func (s *authService) LoginWithPassword(ctx context.Context, userType domain.UserType, name, password string) (string, *domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByName(ctx, userType, name)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeUserNotFound) {
			// Same failure as a wrong password, to keep logins unprobeable.
			return "", nil, apperrors.New(apperrors.CodeInvalidPassword, "invalid credentials")
		}
		return "", nil, err
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("failed password login", "type", userType, "name", name)
		return "", nil, apperrors.New(apperrors.CodeInvalidPassword, "invalid credentials")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	logger.Info("password login", "userID", user.UserID, "type", user.Type)
	return token, user, nil
}

func (s *authService) LoginWithCard(ctx context.Context, cardID string) (string, *domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		return "", nil, err
	}
	if card.Blocked {
		return "", nil, apperrors.New(apperrors.CodeCardBlocked, "card is blocked")
	}
	if !card.Assigned() {
		return "", nil, apperrors.New(apperrors.CodePermissionDenied, "card is not assigned to a user")
	}

	user, err := s.userRepo.FindUserBySignature(ctx, *card.UserSignature)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	logger.Info("card login", "cardID", cardID, "userID", user.UserID)
	return token, user, nil
}

func (s *authService) issueToken(user *domain.User) (string, error) {
	token, err := utils.CreateSessionToken(user.UserID, string(user.Type), s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration)
	if err != nil {
		return "", apperrors.Internal("failed to sign session token", err)
	}
	return token, nil
}
