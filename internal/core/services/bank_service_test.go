package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/core/services"
	"github.com/schoolstate/sas_backend/internal/dto"
	"github.com/schoolstate/sas_backend/internal/platform/config"
)

// testConfig mirrors the default economy settings without touching the
// environment.
func testConfig() *config.Config {
	return &config.Config{
		PlayCurrency: "PLB",
		Currencies: []config.CurrencyConfig{
			{Code: "PLB", Symbol: "ꞓ", Name: "Plancko", Decimals: 2},
			{Code: "EUR", Symbol: "€", Name: "Euro", Decimals: 2},
		},
		ExchangeRates: map[string]decimal.Decimal{
			"PLB_EUR": decimal.RequireFromString("0.5"),
			"EUR_PLB": decimal.RequireFromString("2"),
		},
		SalaryTaxRate:  decimal.RequireFromString("0.2"),
		StateAccountID: "STATE",
	}
}

type BankServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo     *MockLedgerRepository
	mockEmploymentRepo *MockEmploymentRepository
	mockIdentity       *MockIdentitySvc
	service            portssvc.BankSvcFacade
	ctx                context.Context

	citizen  domain.UserSignature
	company  domain.UserSignature
	receiver domain.UserSignature
}

func (suite *BankServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockEmploymentRepo = new(MockEmploymentRepository)
	suite.mockIdentity = new(MockIdentitySvc)
	cfg := testConfig()
	suite.service = services.NewBankService(
		suite.mockLedgerRepo,
		suite.mockEmploymentRepo,
		suite.mockIdentity,
		services.NewCurrencyService(cfg),
		cfg,
	)
	suite.ctx = context.Background()
	suite.citizen = domain.UserSignature{Type: domain.UserCitizen, ID: "citizen-1"}
	suite.company = domain.UserSignature{Type: domain.UserCompany, ID: "company-1"}
	suite.receiver = domain.UserSignature{Type: domain.UserCitizen, ID: "citizen-2"}
}

func (suite *BankServiceTestSuite) account(id string, owner domain.UserSignature) *domain.BankAccount {
	return &domain.BankAccount{AccountID: id, Owner: owner}
}

func (suite *BankServiceTestSuite) TestGetAccount_Self() {
	account := suite.account("acc-1", suite.citizen)
	suite.mockLedgerRepo.On("FindAccountByOwner", suite.ctx, suite.citizen).Return(account, nil).Once()

	got, err := suite.service.GetAccount(suite.ctx, suite.citizen, suite.citizen)

	suite.Require().NoError(err)
	suite.Equal(account, got)
	suite.mockIdentity.AssertNotCalled(suite.T(), "RequireRole", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestGetAccount_OtherNeedsBankRole() {
	suite.mockIdentity.On("RequireRole", suite.ctx, suite.citizen, []domain.Role{domain.RoleBank}).
		Return(nil, apperrors.ErrPermissionDenied).Once()

	got, err := suite.service.GetAccount(suite.ctx, suite.citizen, suite.receiver)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.True(apperrors.IsCode(err, apperrors.CodePermissionDenied))
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindAccountByOwner", mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestListTransactions_BankRole() {
	banker := domain.UserSignature{Type: domain.UserCitizen, ID: "banker-1"}
	suite.mockIdentity.On("RequireRole", suite.ctx, banker, []domain.Role{domain.RoleBank}).
		Return(&domain.User{UserID: banker.ID, Roles: []domain.Role{domain.RoleBank}}, nil).Once()
	suite.mockLedgerRepo.On("ListTransactionsForUser", suite.ctx, suite.citizen).
		Return([]domain.Transaction{}, nil).Once()

	txns, err := suite.service.ListTransactions(suite.ctx, banker, suite.citizen)

	suite.Require().NoError(err)
	suite.Empty(txns)
}

func (suite *BankServiceTestSuite) TestTransferMoney_Success() {
	req := dto.TransferRequest{
		Receiver: dto.SignatureRef{Type: suite.receiver.Type, ID: suite.receiver.ID},
		Value:    decimal.RequireFromString("10"),
		Purpose:  "market stall",
	}
	suite.mockLedgerRepo.On("FindAccountByOwner", suite.ctx, suite.citizen).
		Return(suite.account("acc-1", suite.citizen), nil).Once()
	suite.mockLedgerRepo.On("FindAccountByOwner", suite.ctx, suite.receiver).
		Return(suite.account("acc-2", suite.receiver), nil).Once()
	suite.mockLedgerRepo.On("MoveFunds", suite.ctx, mock.MatchedBy(func(deltas []domain.AccountDelta) bool {
		return len(deltas) == 2 &&
			deltas[0].AccountID == "acc-1" && deltas[0].Amount.Equal(decimal.RequireFromString("-10")) &&
			deltas[1].AccountID == "acc-2" && deltas[1].Amount.Equal(decimal.RequireFromString("10")) &&
			deltas[0].Leg == domain.LegBalance && deltas[1].Leg == domain.LegBalance
	}), mock.AnythingOfType("domain.TransferTransaction")).Return(nil).Once()

	txn, err := suite.service.TransferMoney(suite.ctx, suite.citizen, req)

	suite.Require().NoError(err)
	suite.Equal(suite.citizen, txn.Sender)
	suite.Equal(suite.receiver, txn.Receiver)
	suite.Equal("market stall", txn.Purpose)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestTransferMoney_CompanyCannotSend() {
	req := dto.TransferRequest{
		Receiver: dto.SignatureRef{Type: suite.receiver.Type, ID: suite.receiver.ID},
		Value:    decimal.RequireFromString("5"),
		Purpose:  "payout",
	}

	txn, err := suite.service.TransferMoney(suite.ctx, suite.company, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.True(apperrors.IsCode(err, apperrors.CodeTransferSenderRestricted))
}

func (suite *BankServiceTestSuite) TestTransferMoney_GuestCannotReceive() {
	req := dto.TransferRequest{
		Receiver: dto.SignatureRef{Type: domain.UserGuest, ID: "guest-1"},
		Value:    decimal.RequireFromString("5"),
		Purpose:  "gift",
	}

	txn, err := suite.service.TransferMoney(suite.ctx, suite.citizen, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.True(apperrors.IsCode(err, apperrors.CodeTransferReceiverRestricted))
}

func (suite *BankServiceTestSuite) TestTransferMoney_SelfTransfer() {
	req := dto.TransferRequest{
		Receiver: dto.SignatureRef{Type: suite.citizen.Type, ID: suite.citizen.ID},
		Value:    decimal.RequireFromString("5"),
		Purpose:  "laundering",
	}

	txn, err := suite.service.TransferMoney(suite.ctx, suite.citizen, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *BankServiceTestSuite) TestTransferMoney_NonPositiveValue() {
	req := dto.TransferRequest{
		Receiver: dto.SignatureRef{Type: suite.receiver.Type, ID: suite.receiver.ID},
		Value:    decimal.Zero,
		Purpose:  "nothing",
	}

	txn, err := suite.service.TransferMoney(suite.ctx, suite.citizen, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *BankServiceTestSuite) TestTransferMoney_BalanceTooLow() {
	req := dto.TransferRequest{
		Receiver: dto.SignatureRef{Type: suite.receiver.Type, ID: suite.receiver.ID},
		Value:    decimal.RequireFromString("500"),
		Purpose:  "too much",
	}
	suite.mockLedgerRepo.On("FindAccountByOwner", suite.ctx, suite.citizen).
		Return(suite.account("acc-1", suite.citizen), nil).Once()
	suite.mockLedgerRepo.On("FindAccountByOwner", suite.ctx, suite.receiver).
		Return(suite.account("acc-2", suite.receiver), nil).Once()
	suite.mockLedgerRepo.On("MoveFunds", suite.ctx, mock.Anything, mock.Anything).
		Return(apperrors.ErrBalanceTooLow).Once()

	txn, err := suite.service.TransferMoney(suite.ctx, suite.citizen, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.True(apperrors.IsCode(err, apperrors.CodeBalanceTooLow))
}

func (suite *BankServiceTestSuite) TestChargeCustoms_Success() {
	border := domain.UserSignature{Type: domain.UserCitizen, ID: "border-1"}
	suite.mockIdentity.On("RequireRole", suite.ctx, border, []domain.Role{domain.RoleBorderControl}).
		Return(&domain.User{UserID: border.ID, Roles: []domain.Role{domain.RoleBorderControl}}, nil).Once()
	guest := domain.UserSignature{Type: domain.UserGuest, ID: "guest-1"}
	suite.mockLedgerRepo.On("FindAccountByOwner", suite.ctx, guest).
		Return(suite.account("acc-g", guest), nil).Once()
	suite.mockLedgerRepo.On("MoveFunds", suite.ctx, mock.MatchedBy(func(deltas []domain.AccountDelta) bool {
		return len(deltas) == 2 &&
			deltas[0].AccountID == "acc-g" && deltas[0].Amount.Equal(decimal.RequireFromString("-7.5")) &&
			deltas[1].AccountID == "STATE" && deltas[1].Amount.Equal(decimal.RequireFromString("7.5"))
	}), mock.AnythingOfType("domain.CustomsTransaction")).Return(nil).Once()

	req := dto.CustomsRequest{
		User:   dto.SignatureRef{Type: guest.Type, ID: guest.ID},
		Amount: decimal.RequireFromString("7.5"),
	}
	txn, err := suite.service.ChargeCustoms(suite.ctx, border, req)

	suite.Require().NoError(err)
	suite.Equal(guest, txn.User)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestChargeCustoms_RequiresBorderControl() {
	suite.mockIdentity.On("RequireRole", suite.ctx, suite.citizen, []domain.Role{domain.RoleBorderControl}).
		Return(nil, apperrors.ErrPermissionDenied).Once()

	req := dto.CustomsRequest{
		User:   dto.SignatureRef{Type: domain.UserGuest, ID: "guest-1"},
		Amount: decimal.RequireFromString("5"),
	}
	txn, err := suite.service.ChargeCustoms(suite.ctx, suite.citizen, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "MoveFunds", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) employment() *domain.Employment {
	return &domain.Employment{
		EmploymentID: "emp-1",
		CompanyID:    suite.company.ID,
		CitizenID:    suite.citizen.ID,
		HourlyWage:   decimal.RequireFromString("5.5"),
	}
}

func (suite *BankServiceTestSuite) expectSalaryAccounts() {
	suite.mockLedgerRepo.On("FindAccountByOwner", suite.ctx, suite.company).
		Return(suite.account("acc-c", suite.company), nil).Once()
	suite.mockLedgerRepo.On("FindAccountByOwner", suite.ctx, suite.citizen).
		Return(suite.account("acc-1", suite.citizen), nil).Once()
}

func (suite *BankServiceTestSuite) TestPaySalary_Bonus() {
	suite.mockEmploymentRepo.On("FindEmploymentByID", suite.ctx, "emp-1").Return(suite.employment(), nil).Once()
	suite.expectSalaryAccounts()
	suite.mockLedgerRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("MoveFundsInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(deltas []domain.AccountDelta) bool {
		return len(deltas) == 3 &&
			deltas[0].AccountID == "acc-c" && deltas[0].Amount.Equal(decimal.RequireFromString("-100")) &&
			deltas[1].AccountID == "acc-1" && deltas[1].Amount.Equal(decimal.RequireFromString("80")) &&
			deltas[2].AccountID == "STATE" && deltas[2].Amount.Equal(decimal.RequireFromString("20"))
	}), mock.AnythingOfType("domain.SalaryTransaction")).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)

	bonus := decimal.RequireFromString("100")
	req := dto.SalaryRequest{EmploymentID: "emp-1", BonusValue: &bonus}
	txn, err := suite.service.PaySalary(suite.ctx, suite.company, req)

	suite.Require().NoError(err)
	suite.True(txn.GrossValue.Equal(decimal.RequireFromString("100")))
	suite.True(txn.NetValue.Equal(decimal.RequireFromString("80")))
	suite.Nil(txn.WorktimeID)
	suite.mockEmploymentRepo.AssertNotCalled(suite.T(), "MarkWorktimePaidInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestPaySalary_Worktime() {
	suite.mockEmploymentRepo.On("FindEmploymentByID", suite.ctx, "emp-1").Return(suite.employment(), nil).Once()
	start := time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)
	worktime := &domain.Worktime{
		WorktimeID:   "wt-1",
		EmploymentID: "emp-1",
		Start:        start,
		End:          start.Add(2 * time.Hour),
	}
	suite.mockEmploymentRepo.On("FindWorktimeByID", suite.ctx, "wt-1").Return(worktime, nil).Once()
	suite.expectSalaryAccounts()
	suite.mockLedgerRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	// 2 hours at 5.5: gross 11, net 8.8 and tax 2.2 to the treasury.
	suite.mockLedgerRepo.On("MoveFundsInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(deltas []domain.AccountDelta) bool {
		return len(deltas) == 3 &&
			deltas[0].Amount.Equal(decimal.RequireFromString("-11")) &&
			deltas[1].Amount.Equal(decimal.RequireFromString("8.8")) &&
			deltas[2].Amount.Equal(decimal.RequireFromString("2.2"))
	}), mock.AnythingOfType("domain.SalaryTransaction")).Return(nil).Once()
	suite.mockEmploymentRepo.On("MarkWorktimePaidInTx", suite.ctx, mock.Anything, "wt-1", mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)

	worktimeID := "wt-1"
	req := dto.SalaryRequest{EmploymentID: "emp-1", WorktimeID: &worktimeID}
	txn, err := suite.service.PaySalary(suite.ctx, suite.company, req)

	suite.Require().NoError(err)
	suite.True(txn.GrossValue.Equal(decimal.RequireFromString("11")))
	suite.True(txn.NetValue.Equal(decimal.RequireFromString("8.8")))
	suite.mockEmploymentRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestPaySalary_WorktimeAlreadyPaid() {
	suite.mockEmploymentRepo.On("FindEmploymentByID", suite.ctx, "emp-1").Return(suite.employment(), nil).Once()
	paidTxn := "txn-paid"
	worktime := &domain.Worktime{
		WorktimeID:        "wt-1",
		EmploymentID:      "emp-1",
		Start:             time.Now().Add(-3 * time.Hour),
		End:               time.Now().Add(-time.Hour),
		PaidTransactionID: &paidTxn,
	}
	suite.mockEmploymentRepo.On("FindWorktimeByID", suite.ctx, "wt-1").Return(worktime, nil).Once()

	worktimeID := "wt-1"
	req := dto.SalaryRequest{EmploymentID: "emp-1", WorktimeID: &worktimeID}
	txn, err := suite.service.PaySalary(suite.ctx, suite.company, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.True(apperrors.IsCode(err, apperrors.CodeWorktimeAlreadyPaid))
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *BankServiceTestSuite) TestPaySalary_WorktimeAndBonusBothSet() {
	suite.mockEmploymentRepo.On("FindEmploymentByID", suite.ctx, "emp-1").Return(suite.employment(), nil).Once()

	worktimeID := "wt-1"
	bonus := decimal.RequireFromString("50")
	req := dto.SalaryRequest{EmploymentID: "emp-1", WorktimeID: &worktimeID, BonusValue: &bonus}
	txn, err := suite.service.PaySalary(suite.ctx, suite.company, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *BankServiceTestSuite) TestPaySalary_ForeignCompanyNeedsBankRole() {
	other := domain.UserSignature{Type: domain.UserCompany, ID: "company-2"}
	suite.mockEmploymentRepo.On("FindEmploymentByID", suite.ctx, "emp-1").Return(suite.employment(), nil).Once()
	suite.mockIdentity.On("RequireRole", suite.ctx, other, []domain.Role{domain.RoleBank}).
		Return(nil, apperrors.ErrPermissionDenied).Once()

	bonus := decimal.RequireFromString("50")
	req := dto.SalaryRequest{EmploymentID: "emp-1", BonusValue: &bonus}
	txn, err := suite.service.PaySalary(suite.ctx, other, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.True(apperrors.IsCode(err, apperrors.CodePermissionDenied))
}

func (suite *BankServiceTestSuite) TestCreateEmployment_Success() {
	citizenSig := domain.UserSignature{Type: domain.UserCitizen, ID: suite.citizen.ID}
	suite.mockIdentity.On("RequireType", suite.ctx, citizenSig, []domain.UserType{domain.UserCitizen}).
		Return(&domain.User{UserID: suite.citizen.ID, Type: domain.UserCitizen}, nil).Once()
	suite.mockEmploymentRepo.On("SaveEmployment", suite.ctx, mock.MatchedBy(func(e domain.Employment) bool {
		return e.CompanyID == suite.company.ID && e.CitizenID == suite.citizen.ID
	})).Return(nil).Once()

	req := dto.CreateEmploymentRequest{
		CompanyID:  suite.company.ID,
		CitizenID:  suite.citizen.ID,
		HourlyWage: decimal.RequireFromString("6"),
	}
	employment, err := suite.service.CreateEmployment(suite.ctx, suite.company, req)

	suite.Require().NoError(err)
	suite.NotEmpty(employment.EmploymentID)
	suite.Equal(suite.company.ID, employment.CreatedBy)
	suite.mockEmploymentRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestCreateEmployment_UnknownCitizen() {
	citizenSig := domain.UserSignature{Type: domain.UserCitizen, ID: "nobody"}
	suite.mockIdentity.On("RequireType", suite.ctx, citizenSig, []domain.UserType{domain.UserCitizen}).
		Return(nil, apperrors.ErrPermissionDenied).Once()

	req := dto.CreateEmploymentRequest{
		CompanyID:  suite.company.ID,
		CitizenID:  "nobody",
		HourlyWage: decimal.RequireFromString("6"),
	}
	employment, err := suite.service.CreateEmployment(suite.ctx, suite.company, req)

	suite.Require().Error(err)
	suite.Nil(employment)
	suite.True(apperrors.IsCode(err, apperrors.CodeUserNotFound))
}

func (suite *BankServiceTestSuite) TestCreateEmployment_NonPositiveWage() {
	req := dto.CreateEmploymentRequest{
		CompanyID:  suite.company.ID,
		CitizenID:  suite.citizen.ID,
		HourlyWage: decimal.Zero,
	}
	employment, err := suite.service.CreateEmployment(suite.ctx, suite.company, req)

	suite.Require().Error(err)
	suite.Nil(employment)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *BankServiceTestSuite) TestRecordWorktime_CitizenOwnShift() {
	suite.mockEmploymentRepo.On("FindEmploymentByID", suite.ctx, "emp-1").Return(suite.employment(), nil).Once()
	start := time.Now().Add(-2 * time.Hour)
	suite.mockEmploymentRepo.On("SaveWorktime", suite.ctx, mock.MatchedBy(func(w domain.Worktime) bool {
		return w.EmploymentID == "emp-1" && w.PaidTransactionID == nil
	})).Return(nil).Once()

	req := dto.RecordWorktimeRequest{EmploymentID: "emp-1", Start: start, End: start.Add(time.Hour)}
	worktime, err := suite.service.RecordWorktime(suite.ctx, suite.citizen, req)

	suite.Require().NoError(err)
	suite.NotEmpty(worktime.WorktimeID)
	suite.mockIdentity.AssertNotCalled(suite.T(), "RequireRole", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestRecordWorktime_EndBeforeStart() {
	suite.mockEmploymentRepo.On("FindEmploymentByID", suite.ctx, "emp-1").Return(suite.employment(), nil).Once()
	start := time.Now()

	req := dto.RecordWorktimeRequest{EmploymentID: "emp-1", Start: start, End: start.Add(-time.Hour)}
	worktime, err := suite.service.RecordWorktime(suite.ctx, suite.citizen, req)

	suite.Require().Error(err)
	suite.Nil(worktime)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *BankServiceTestSuite) TestRecordWorktime_TeacherForForeignShift() {
	teacher := domain.UserSignature{Type: domain.UserCitizen, ID: "teacher-1"}
	suite.mockEmploymentRepo.On("FindEmploymentByID", suite.ctx, "emp-1").Return(suite.employment(), nil).Once()
	teacherUser := &domain.User{UserID: teacher.ID, Type: domain.UserCitizen, Roles: []domain.Role{domain.RoleTeacher}}
	suite.mockIdentity.On("RequireRole", suite.ctx, teacher, []domain.Role{domain.RoleAdmin, domain.RoleTeacher}).
		Return(teacherUser, nil).Once()
	start := time.Now().Add(-3 * time.Hour)
	suite.mockEmploymentRepo.On("SaveWorktime", suite.ctx, mock.MatchedBy(func(w domain.Worktime) bool {
		return w.EmploymentID == "emp-1"
	})).Return(nil).Once()

	req := dto.RecordWorktimeRequest{EmploymentID: "emp-1", Start: start, End: start.Add(time.Hour)}
	worktime, err := suite.service.RecordWorktime(suite.ctx, teacher, req)

	suite.Require().NoError(err)
	suite.NotEmpty(worktime.WorktimeID)
	suite.mockEmploymentRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestRecordWorktime_UnrelatedUserNeedsAdmin() {
	other := domain.UserSignature{Type: domain.UserCitizen, ID: "citizen-9"}
	suite.mockEmploymentRepo.On("FindEmploymentByID", suite.ctx, "emp-1").Return(suite.employment(), nil).Once()
	suite.mockIdentity.On("RequireRole", suite.ctx, other, []domain.Role{domain.RoleAdmin, domain.RoleTeacher}).
		Return(nil, apperrors.ErrPermissionDenied).Once()

	start := time.Now().Add(-time.Hour)
	req := dto.RecordWorktimeRequest{EmploymentID: "emp-1", Start: start, End: start.Add(time.Hour)}
	worktime, err := suite.service.RecordWorktime(suite.ctx, other, req)

	suite.Require().Error(err)
	suite.Nil(worktime)
	suite.mockEmploymentRepo.AssertNotCalled(suite.T(), "SaveWorktime", mock.Anything, mock.Anything)
}

func TestBankServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankServiceTestSuite))
}
