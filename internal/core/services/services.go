package services

import (
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/platform/config"
)

// NewServicesContainer wires every service against the repository provider.
func NewServicesContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServicesContainer {
	userSvc := NewUserService(repos.UserRepo)
	currencySvc := NewCurrencyService(cfg)

	return &portssvc.ServicesContainer{
		User:     userSvc,
		Auth:     NewAuthService(repos.UserRepo, repos.CardRepo, cfg),
		Bank:     NewBankService(repos.LedgerRepo, repos.EmploymentRepo, userSvc, currencySvc, cfg),
		Draft:    NewDraftService(repos.DraftRepo, repos.LedgerRepo, repos.ProductRepo, repos.CardRepo, userSvc, currencySvc),
		Card:     NewCardService(repos.CardRepo, userSvc),
		Vote:     NewVoteService(repos.VoteRepo, userSvc),
		Product:  NewProductService(repos.ProductRepo, userSvc),
		Currency: currencySvc,
	}
}
