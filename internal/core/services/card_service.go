package services

import (
	"context"
	"time"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/middleware"
)

// cardService drives the card state machine. The service only gates who may
// trigger a transition; the transition itself runs as a conditional update
// in the repository, so two callers racing on the same card serialize there.
type cardService struct {
	cardRepo portsrepo.CardRepositoryFacade
	identity portssvc.IdentitySvc
}

var _ portssvc.CardSvcFacade = (*cardService)(nil)

// NewCardService creates a new card service.
func NewCardService(cardRepo portsrepo.CardRepositoryFacade, identity portssvc.IdentitySvc) portssvc.CardSvcFacade {
	return &cardService{cardRepo: cardRepo, identity: identity}
}

func (s *cardService) RegisterCard(ctx context.Context, caller domain.UserSignature, cardID string) (*domain.Card, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.identity.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if cardID == "" {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "card id must not be empty")
	}

	now := time.Now()
	card := domain.Card{
		CardID: cardID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.ID,
		},
	}
	if err := s.cardRepo.RegisterCard(ctx, card); err != nil {
		return nil, err
	}
	logger.Info("card registered", "cardID", cardID)
	return &card, nil
}

func (s *cardService) AssignCard(ctx context.Context, caller domain.UserSignature, cardID string, user domain.UserSignature) (*domain.Card, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.identity.RequireRole(ctx, caller, domain.RoleBorderControl); err != nil {
		return nil, err
	}
	if _, err := s.identity.RequireType(ctx, user, user.Type); err != nil {
		if apperrors.IsCode(err, apperrors.CodePermissionDenied) {
			return nil, apperrors.New(apperrors.CodeUserNotFound, "user to assign not found")
		}
		return nil, err
	}
	if err := s.cardRepo.AssignCard(ctx, cardID, user, caller.ID); err != nil {
		return nil, err
	}
	logger.Info("card assigned", "cardID", cardID, "userID", user.ID)
	return s.cardRepo.FindCardByID(ctx, cardID)
}

func (s *cardService) UnassignCard(ctx context.Context, caller domain.UserSignature, cardID string) (*domain.Card, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.identity.RequireRole(ctx, caller, domain.RoleBorderControl); err != nil {
		return nil, err
	}
	if err := s.cardRepo.UnassignCard(ctx, cardID, caller.ID); err != nil {
		return nil, err
	}
	logger.Info("card unassigned", "cardID", cardID)
	return s.cardRepo.FindCardByID(ctx, cardID)
}

func (s *cardService) BlockCard(ctx context.Context, caller domain.UserSignature, cardID string) (*domain.Card, error) {
	return s.setBlocked(ctx, caller, cardID, true)
}

func (s *cardService) UnblockCard(ctx context.Context, caller domain.UserSignature, cardID string) (*domain.Card, error) {
	return s.setBlocked(ctx, caller, cardID, false)
}

func (s *cardService) setBlocked(ctx context.Context, caller domain.UserSignature, cardID string, blocked bool) (*domain.Card, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.identity.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.cardRepo.SetBlocked(ctx, cardID, blocked, caller.ID); err != nil {
		return nil, err
	}
	logger.Info("card block state changed", "cardID", cardID, "blocked", blocked)
	return s.cardRepo.FindCardByID(ctx, cardID)
}

// ReadCard answers the terminal question "who holds this card" and nothing
// else. It needs no session, so it leaks no more than the binding itself.
func (s *cardService) ReadCard(ctx context.Context, cardID string) (*domain.UserSignature, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.Blocked {
		return nil, apperrors.New(apperrors.CodeCardBlocked, "card is blocked")
	}
	return card.UserSignature, nil
}

func (s *cardService) GetCard(ctx context.Context, caller domain.UserSignature, cardID string) (*domain.Card, error) {
	if _, err := s.identity.RequireRole(ctx, caller, domain.RoleBorderControl); err != nil {
		return nil, err
	}
	return s.cardRepo.FindCardByID(ctx, cardID)
}
