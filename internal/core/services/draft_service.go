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

// draftService implements two-phase settlement. Creating a draft computes
// and persists the pending operation without touching any balance. Paying
// it re-validates fresh credentials, consumes the draft row and settles the
// funds movement in one storage transaction, which is what makes a draft
// impossible to pay twice.
type draftService struct {
	draftRepo   portsrepo.DraftRepositoryWithTx
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	productRepo portsrepo.ProductRepositoryFacade
	cardRepo    portsrepo.CardRepositoryFacade
	identity    portssvc.IdentitySvc
	currency    portssvc.CurrencySvcFacade
}

var _ portssvc.DraftSvcFacade = (*draftService)(nil)

// NewDraftService creates a new draft service.
func NewDraftService(
	draftRepo portsrepo.DraftRepositoryWithTx,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	productRepo portsrepo.ProductRepositoryFacade,
	cardRepo portsrepo.CardRepositoryFacade,
	identity portssvc.IdentitySvc,
	currency portssvc.CurrencySvcFacade,
) portssvc.DraftSvcFacade {
	return &draftService{
		draftRepo:   draftRepo,
		ledgerRepo:  ledgerRepo,
		productRepo: productRepo,
		cardRepo:    cardRepo,
		identity:    identity,
		currency:    currency,
	}
}

// CreateChangeDraft computes a pending exchange. Exactly one side of the
// pair must be the play currency; that side decides the direction.
func (s *draftService) CreateChangeDraft(ctx context.Context, initiator domain.UserSignature, req dto.CreateChangeDraftRequest) (*domain.ChangeDraft, error) {
	if !req.FromValue.IsPositive() {
		return nil, apperrors.New(apperrors.CodeFromValueNotPositive, "exchange amount must be positive")
	}
	if req.FromCurrency == req.ToCurrency {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "cannot exchange a currency for itself")
	}

	play := s.currency.PlayCurrency()
	var direction domain.ChangeDirection
	switch play {
	case req.FromCurrency:
		direction = domain.VirtualToReal
	case req.ToCurrency:
		direction = domain.RealToVirtual
	default:
		return nil, apperrors.New(apperrors.CodeBadUserInput, "one side of the exchange must be the play currency")
	}

	fromCur, err := s.currency.GetCurrency(ctx, req.FromCurrency)
	if err != nil {
		return nil, err
	}
	fromValue := utils.RoundToPrecision(req.FromValue, fromCur.Decimals)
	toValue, err := s.currency.Convert(ctx, req.FromCurrency, req.ToCurrency, fromValue)
	if err != nil {
		return nil, err
	}

	draft := domain.ChangeDraft{
		DraftBase:    domain.DraftBase{ID: uuid.NewString(), CreatedAt: time.Now()},
		User:         initiator,
		Direction:    direction,
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		FromValue:    fromValue,
		ToValue:      toValue,
	}
	if err := s.draftRepo.SaveChangeDraft(ctx, draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// CreatePurchaseDraft prices the requested items against the company's
// current listing and pins each product's revision, so a price change
// between draft and payment fails the payment instead of mischarging.
func (s *draftService) CreatePurchaseDraft(ctx context.Context, company domain.UserSignature, req dto.CreatePurchaseDraftRequest) (*domain.PurchaseDraft, error) {
	if _, err := s.identity.RequireType(ctx, company, domain.UserCompany); err != nil {
		return nil, err
	}
	if req.Discount.IsNegative() {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "discount cannot be negative")
	}

	ids := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	gross := decimal.Zero
	items := make([]domain.PurchaseItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := products[item.ProductID]
		if !ok || product.Deleted {
			return nil, apperrors.Newf(apperrors.CodeProductNotFound, "product %s not found", item.ProductID)
		}
		if product.CompanyID != company.ID {
			return nil, apperrors.New(apperrors.CodePermissionDenied, "cannot sell another company's product")
		}
		items = append(items, domain.PurchaseItem{
			ProductID:       product.ProductID,
			ProductRevision: product.Revision,
			Amount:          item.Amount,
			UnitPrice:       product.Price,
		})
		gross = gross.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Amount))))
	}
	if req.Discount.GreaterThan(gross) {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "discount exceeds the gross price")
	}

	playCur, err := s.currency.GetCurrency(ctx, s.currency.PlayCurrency())
	if err != nil {
		return nil, err
	}
	gross = utils.RoundToPrecision(gross, playCur.Decimals)
	net := utils.RoundToPrecision(gross.Sub(req.Discount), playCur.Decimals)

	draft := domain.PurchaseDraft{
		DraftBase:  domain.DraftBase{ID: uuid.NewString(), CreatedAt: time.Now()},
		CompanyID:  company.ID,
		Items:      items,
		GrossPrice: gross,
		NetPrice:   net,
		Discount:   req.Discount,
	}
	if err := s.draftRepo.SavePurchaseDraft(ctx, draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// resolvePayer authenticates the confirming party from fresh credentials:
// either a bound, unblocked card, or a signature plus password. The session
// that created the draft plays no role here.
func (s *draftService) resolvePayer(ctx context.Context, credentials dto.Credentials) (*domain.User, error) {
	switch {
	case credentials.CardID != nil:
		card, err := s.cardRepo.FindCardByID(ctx, *credentials.CardID)
		if err != nil {
			return nil, err
		}
		if card.Blocked {
			return nil, apperrors.New(apperrors.CodeCardBlocked, "card is blocked")
		}
		if !card.Assigned() {
			return nil, apperrors.New(apperrors.CodePermissionDenied, "card is not assigned to a user")
		}
		// Confirm the bound user still exists and matches the binding.
		return s.identity.RequireType(ctx, *card.UserSignature, card.UserSignature.Type)
	case credentials.Signature != nil && credentials.Password != nil:
		return s.identity.VerifyCredentials(ctx, credentials.Signature.ToSignature(), *credentials.Password)
	default:
		return nil, apperrors.New(apperrors.CodeBadUserInput, "either a card or a signature with password is required")
	}
}

// PayChangeDraft settles a change draft. The credentials must authenticate
// the same user the draft was created for.
func (s *draftService) PayChangeDraft(ctx context.Context, draftID string, credentials dto.Credentials) (*domain.ChangeTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	draft, err := s.draftRepo.FindChangeDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	payer, err := s.resolvePayer(ctx, credentials)
	if err != nil {
		return nil, err
	}
	if !payer.Signature().Equal(draft.User) {
		return nil, apperrors.New(apperrors.CodePermissionDenied, "credentials do not belong to the draft's user")
	}

	account, err := s.ledgerRepo.FindAccountByOwner(ctx, draft.User)
	if err != nil {
		return nil, err
	}

	txn := domain.ChangeTransaction{
		TransactionBase: domain.TransactionBase{ID: uuid.NewString(), CreatedAt: time.Now()},
		User:            draft.User,
		Direction:       draft.Direction,
		FromCurrency:    draft.FromCurrency,
		ToCurrency:      draft.ToCurrency,
		FromValue:       draft.FromValue,
		ToValue:         draft.ToValue,
	}
	var deltas []domain.AccountDelta
	switch draft.Direction {
	case domain.VirtualToReal:
		deltas = []domain.AccountDelta{
			{AccountID: account.AccountID, Leg: domain.LegBalance, Amount: draft.FromValue.Neg()},
			{AccountID: account.AccountID, Leg: domain.LegRedemption, Amount: draft.ToValue},
		}
	case domain.RealToVirtual:
		// Converting back consumes accrued redemption credit; the non-negative
		// guard on the redemption balance caps it at what was accrued.
		deltas = []domain.AccountDelta{
			{AccountID: account.AccountID, Leg: domain.LegRedemption, Amount: draft.FromValue.Neg()},
			{AccountID: account.AccountID, Leg: domain.LegBalance, Amount: draft.ToValue},
		}
	}

	tx, err := s.draftRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.draftRepo.Rollback(ctx, tx) }()

	if err := s.draftRepo.ConsumeDraftInTx(ctx, tx, domain.DraftChange, draft.ID); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.MoveFundsInTx(ctx, tx, deltas, txn); err != nil {
		return nil, err
	}
	if err := s.draftRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("change draft settled", "draftID", draft.ID, "transactionID", txn.ID, "direction", draft.Direction)
	return &txn, nil
}

// PayPurchaseDraft settles a purchase draft. Whoever the credentials
// authenticate becomes the paying customer.
func (s *draftService) PayPurchaseDraft(ctx context.Context, draftID string, credentials dto.Credentials) (*domain.PurchaseTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	draft, err := s.draftRepo.FindPurchaseDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	payer, err := s.resolvePayer(ctx, credentials)
	if err != nil {
		return nil, err
	}
	if payer.Type == domain.UserCompany && payer.UserID == draft.CompanyID {
		return nil, apperrors.New(apperrors.CodePermissionDenied, "a company cannot buy from itself")
	}

	// Re-check the pinned revisions: a product edited or removed since the
	// draft was computed invalidates it.
	ids := make([]string, 0, len(draft.Items))
	for _, item := range draft.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range draft.Items {
		product, ok := products[item.ProductID]
		if !ok || product.Deleted || product.Revision != item.ProductRevision {
			return nil, apperrors.Newf(apperrors.CodeBadUserInput, "product %s changed since the draft was created", item.ProductID)
		}
	}

	customer := payer.Signature()
	customerAccount, err := s.ledgerRepo.FindAccountByOwner(ctx, customer)
	if err != nil {
		return nil, err
	}
	companyAccount, err := s.ledgerRepo.FindAccountByOwner(ctx, domain.UserSignature{Type: domain.UserCompany, ID: draft.CompanyID})
	if err != nil {
		return nil, err
	}

	txn := domain.PurchaseTransaction{
		TransactionBase: domain.TransactionBase{ID: uuid.NewString(), CreatedAt: time.Now()},
		Customer:        customer,
		CompanyID:       draft.CompanyID,
		GrossPrice:      draft.GrossPrice,
		NetPrice:        draft.NetPrice,
		Discount:        draft.Discount,
		Items:           draft.Items,
	}
	deltas := []domain.AccountDelta{
		{AccountID: customerAccount.AccountID, Leg: domain.LegBalance, Amount: draft.NetPrice.Neg()},
		{AccountID: companyAccount.AccountID, Leg: domain.LegBalance, Amount: draft.NetPrice},
	}

	tx, err := s.draftRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.draftRepo.Rollback(ctx, tx) }()

	if err := s.draftRepo.ConsumeDraftInTx(ctx, tx, domain.DraftPurchase, draft.ID); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.MoveFundsInTx(ctx, tx, deltas, txn); err != nil {
		return nil, err
	}
	if err := s.draftRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("purchase draft settled", "draftID", draft.ID, "transactionID", txn.ID, "net", draft.NetPrice.String())
	return &txn, nil
}

func (s *draftService) DeleteExpiredDrafts(ctx context.Context, olderThanSeconds int) (int64, error) {
	if olderThanSeconds <= 0 {
		return 0, apperrors.New(apperrors.CodeBadUserInput, "age must be positive")
	}
	return s.draftRepo.DeleteExpiredDrafts(ctx, olderThanSeconds)
}
