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
	"github.com/schoolstate/sas_backend/internal/platform/config"
	"github.com/schoolstate/sas_backend/internal/utils"
)

// bankService implements account reads and the direct money movements:
// transfers, customs charges and salary payouts. Every movement delegates
// the actual balance mutation plus ledger append to the funds mover, which
// keeps the two atomic.
type bankService struct {
	ledgerRepo     portsrepo.LedgerRepositoryWithTx
	employmentRepo portsrepo.EmploymentRepositoryFacade
	identity       portssvc.IdentitySvc
	currency       portssvc.CurrencySvcFacade
	cfg            *config.Config
}

var _ portssvc.BankSvcFacade = (*bankService)(nil)

// NewBankService creates a new bank service.
func NewBankService(
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	employmentRepo portsrepo.EmploymentRepositoryFacade,
	identity portssvc.IdentitySvc,
	currency portssvc.CurrencySvcFacade,
	cfg *config.Config,
) portssvc.BankSvcFacade {
	return &bankService{
		ledgerRepo:     ledgerRepo,
		employmentRepo: employmentRepo,
		identity:       identity,
		currency:       currency,
		cfg:            cfg,
	}
}

// canActFor allows a user to read their own data and the BANK role to read
// anyone's.
func (s *bankService) canActFor(ctx context.Context, caller, owner domain.UserSignature) error {
	if caller.Equal(owner) {
		return nil
	}
	_, err := s.identity.RequireRole(ctx, caller, domain.RoleBank)
	return err
}

func (s *bankService) GetAccount(ctx context.Context, caller, owner domain.UserSignature) (*domain.BankAccount, error) {
	if err := s.canActFor(ctx, caller, owner); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindAccountByOwner(ctx, owner)
}

func (s *bankService) ListTransactions(ctx context.Context, caller, owner domain.UserSignature) ([]domain.Transaction, error) {
	if err := s.canActFor(ctx, caller, owner); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListTransactionsForUser(ctx, owner)
}

// roundPlay rounds an amount to the play currency's configured precision.
func (s *bankService) roundPlay(ctx context.Context, value decimal.Decimal) (decimal.Decimal, error) {
	cur, err := s.currency.GetCurrency(ctx, s.currency.PlayCurrency())
	if err != nil {
		return decimal.Zero, err
	}
	return utils.RoundToPrecision(value, cur.Decimals), nil
}

// TransferMoney moves play currency from the calling user to a receiver.
// Guests may neither send nor receive transfers and companies may not send;
// company income comes through purchases.
func (s *bankService) TransferMoney(ctx context.Context, sender domain.UserSignature, req dto.TransferRequest) (*domain.TransferTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Value.IsPositive() {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "transfer value must be positive")
	}
	if sender.Type != domain.UserCitizen {
		return nil, apperrors.New(apperrors.CodeTransferSenderRestricted, "only citizens can send transfers")
	}
	receiver := req.Receiver.ToSignature()
	if receiver.Type == domain.UserGuest {
		return nil, apperrors.New(apperrors.CodeTransferReceiverRestricted, "guests cannot receive transfers")
	}
	if sender.Equal(receiver) {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "cannot transfer to yourself")
	}

	value, err := s.roundPlay(ctx, req.Value)
	if err != nil {
		return nil, err
	}

	senderAccount, err := s.ledgerRepo.FindAccountByOwner(ctx, sender)
	if err != nil {
		return nil, err
	}
	receiverAccount, err := s.ledgerRepo.FindAccountByOwner(ctx, receiver)
	if err != nil {
		return nil, err
	}

	txn := domain.TransferTransaction{
		TransactionBase: domain.TransactionBase{ID: uuid.NewString(), CreatedAt: time.Now()},
		Sender:          sender,
		Receiver:        receiver,
		Value:           value,
		Purpose:         req.Purpose,
	}
	deltas := []domain.AccountDelta{
		{AccountID: senderAccount.AccountID, Leg: domain.LegBalance, Amount: value.Neg()},
		{AccountID: receiverAccount.AccountID, Leg: domain.LegBalance, Amount: value},
	}
	if err := s.ledgerRepo.MoveFunds(ctx, deltas, txn); err != nil {
		return nil, err
	}
	logger.Info("transfer settled", "transactionID", txn.ID, "value", value.String())
	return &txn, nil
}

// ChargeCustoms debits a user and credits the state treasury account.
func (s *bankService) ChargeCustoms(ctx context.Context, caller domain.UserSignature, req dto.CustomsRequest) (*domain.CustomsTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.identity.RequireRole(ctx, caller, domain.RoleBorderControl); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "customs amount must be positive")
	}
	amount, err := s.roundPlay(ctx, req.Amount)
	if err != nil {
		return nil, err
	}

	user := req.User.ToSignature()
	account, err := s.ledgerRepo.FindAccountByOwner(ctx, user)
	if err != nil {
		return nil, err
	}

	txn := domain.CustomsTransaction{
		TransactionBase: domain.TransactionBase{ID: uuid.NewString(), CreatedAt: time.Now()},
		User:            user,
		Amount:          amount,
	}
	deltas := []domain.AccountDelta{
		{AccountID: account.AccountID, Leg: domain.LegBalance, Amount: amount.Neg()},
		{AccountID: s.cfg.StateAccountID, Leg: domain.LegBalance, Amount: amount},
	}
	if err := s.ledgerRepo.MoveFunds(ctx, deltas, txn); err != nil {
		return nil, err
	}
	logger.Info("customs charged", "transactionID", txn.ID, "userID", user.ID, "amount", amount.String())
	return &txn, nil
}

// PaySalary settles shift pay (hours times wage) or a flat bonus from the
// employing company to the employed citizen. The salary tax share of the
// gross goes to the state treasury; a worktime payout marks the worktime
// paid in the same storage transaction, so a shift can never pay out twice.
func (s *bankService) PaySalary(ctx context.Context, caller domain.UserSignature, req dto.SalaryRequest) (*domain.SalaryTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employment, err := s.employmentRepo.FindEmploymentByID(ctx, req.EmploymentID)
	if err != nil {
		return nil, err
	}
	if !(caller.Type == domain.UserCompany && caller.ID == employment.CompanyID) {
		if _, err := s.identity.RequireRole(ctx, caller, domain.RoleBank); err != nil {
			return nil, err
		}
	}

	if (req.WorktimeID == nil) == (req.BonusValue == nil) {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "exactly one of worktimeID and bonusValue must be set")
	}

	var gross decimal.Decimal
	var worktime *domain.Worktime
	if req.WorktimeID != nil {
		worktime, err = s.employmentRepo.FindWorktimeByID(ctx, *req.WorktimeID)
		if err != nil {
			return nil, err
		}
		if worktime.EmploymentID != employment.EmploymentID {
			return nil, apperrors.New(apperrors.CodeBadUserInput, "worktime belongs to a different employment")
		}
		if worktime.PaidTransactionID != nil {
			return nil, apperrors.New(apperrors.CodeWorktimeAlreadyPaid, "worktime was already paid out")
		}
		gross = worktime.Hours().Mul(employment.HourlyWage)
	} else {
		if !req.BonusValue.IsPositive() {
			return nil, apperrors.New(apperrors.CodeBadUserInput, "bonus value must be positive")
		}
		gross = *req.BonusValue
	}

	gross, err = s.roundPlay(ctx, gross)
	if err != nil {
		return nil, err
	}
	if !gross.IsPositive() {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "salary amounts to nothing")
	}
	net, err := s.roundPlay(ctx, gross.Mul(decimal.NewFromInt(1).Sub(s.cfg.SalaryTaxRate)))
	if err != nil {
		return nil, err
	}
	tax := gross.Sub(net)

	companyAccount, err := s.ledgerRepo.FindAccountByOwner(ctx, domain.UserSignature{Type: domain.UserCompany, ID: employment.CompanyID})
	if err != nil {
		return nil, err
	}
	citizenAccount, err := s.ledgerRepo.FindAccountByOwner(ctx, domain.UserSignature{Type: domain.UserCitizen, ID: employment.CitizenID})
	if err != nil {
		return nil, err
	}

	txn := domain.SalaryTransaction{
		TransactionBase: domain.TransactionBase{ID: uuid.NewString(), CreatedAt: time.Now()},
		EmploymentID:    employment.EmploymentID,
		WorktimeID:      req.WorktimeID,
		GrossValue:      gross,
		NetValue:        net,
	}
	deltas := []domain.AccountDelta{
		{AccountID: companyAccount.AccountID, Leg: domain.LegBalance, Amount: gross.Neg()},
		{AccountID: citizenAccount.AccountID, Leg: domain.LegBalance, Amount: net},
	}
	if tax.IsPositive() {
		deltas = append(deltas, domain.AccountDelta{AccountID: s.cfg.StateAccountID, Leg: domain.LegBalance, Amount: tax})
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.ledgerRepo.Rollback(ctx, tx) }()

	if err := s.ledgerRepo.MoveFundsInTx(ctx, tx, deltas, txn); err != nil {
		return nil, err
	}
	if worktime != nil {
		if err := s.employmentRepo.MarkWorktimePaidInTx(ctx, tx, worktime.WorktimeID, txn.ID); err != nil {
			return nil, err
		}
	}
	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("salary settled", "transactionID", txn.ID, "employmentID", employment.EmploymentID, "gross", gross.String(), "net", net.String())
	return &txn, nil
}

func (s *bankService) CreateEmployment(ctx context.Context, caller domain.UserSignature, req dto.CreateEmploymentRequest) (*domain.Employment, error) {
	if !(caller.Type == domain.UserCompany && caller.ID == req.CompanyID) {
		if _, err := s.identity.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
			return nil, err
		}
	}
	if !req.HourlyWage.IsPositive() {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "hourly wage must be positive")
	}
	if _, err := s.identity.RequireType(ctx, domain.UserSignature{Type: domain.UserCitizen, ID: req.CitizenID}, domain.UserCitizen); err != nil {
		if apperrors.IsCode(err, apperrors.CodePermissionDenied) {
			return nil, apperrors.New(apperrors.CodeUserNotFound, "citizen not found")
		}
		return nil, err
	}

	now := time.Now()
	employment := domain.Employment{
		EmploymentID: uuid.NewString(),
		CompanyID:    req.CompanyID,
		CitizenID:    req.CitizenID,
		HourlyWage:   req.HourlyWage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.ID,
		},
	}
	if err := s.employmentRepo.SaveEmployment(ctx, employment); err != nil {
		return nil, err
	}
	return &employment, nil
}

// RecordWorktime logs a shift. Citizens record their own shifts and
// companies their employees'; anyone else needs the ADMIN or TEACHER role,
// teachers being the ones who supervise shifts on site.
func (s *bankService) RecordWorktime(ctx context.Context, caller domain.UserSignature, req dto.RecordWorktimeRequest) (*domain.Worktime, error) {
	employment, err := s.employmentRepo.FindEmploymentByID(ctx, req.EmploymentID)
	if err != nil {
		return nil, err
	}
	ownShift := caller.Type == domain.UserCitizen && caller.ID == employment.CitizenID
	ownCompany := caller.Type == domain.UserCompany && caller.ID == employment.CompanyID
	if !ownShift && !ownCompany {
		if _, err := s.identity.RequireRole(ctx, caller, domain.RoleAdmin, domain.RoleTeacher); err != nil {
			return nil, err
		}
	}
	if !req.End.After(req.Start) {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "shift end must be after its start")
	}

	worktime := domain.Worktime{
		WorktimeID:   uuid.NewString(),
		EmploymentID: employment.EmploymentID,
		Start:        req.Start,
		End:          req.End,
	}
	if err := s.employmentRepo.SaveWorktime(ctx, worktime); err != nil {
		return nil, err
	}
	return &worktime, nil
}
