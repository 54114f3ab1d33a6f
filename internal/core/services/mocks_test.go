package services_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// Shared hand-written mocks for the repository and identity ports.

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserBySignature(ctx context.Context, sig domain.UserSignature) (*domain.User, error) {
	args := m.Called(ctx, sig)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByName(ctx context.Context, userType domain.UserType, name string) (*domain.User, error) {
	args := m.Called(ctx, userType, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, userType domain.UserType) ([]domain.User, error) {
	args := m.Called(ctx, userType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User, account domain.BankAccount) error {
	args := m.Called(ctx, user, account)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, sig domain.UserSignature, deletedBy string) error {
	args := m.Called(ctx, sig, deletedBy)
	return args.Error(0)
}

// MockIdentitySvc is a mock type for the IdentitySvc interface
type MockIdentitySvc struct {
	mock.Mock
}

func (m *MockIdentitySvc) RequireRole(ctx context.Context, caller domain.UserSignature, roles ...domain.Role) (*domain.User, error) {
	args := m.Called(ctx, caller, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockIdentitySvc) RequireType(ctx context.Context, caller domain.UserSignature, types ...domain.UserType) (*domain.User, error) {
	args := m.Called(ctx, caller, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockIdentitySvc) VerifyCredentials(ctx context.Context, sig domain.UserSignature, password string) (*domain.User, error) {
	args := m.Called(ctx, sig, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryWithTx interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockLedgerRepository) FindAccountByOwner(ctx context.Context, owner domain.UserSignature) (*domain.BankAccount, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockLedgerRepository) MoveFunds(ctx context.Context, deltas []domain.AccountDelta, txn domain.Transaction) error {
	args := m.Called(ctx, deltas, txn)
	return args.Error(0)
}

func (m *MockLedgerRepository) MoveFundsInTx(ctx context.Context, tx pgx.Tx, deltas []domain.AccountDelta, txn domain.Transaction) error {
	args := m.Called(ctx, tx, deltas, txn)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListTransactionsForUser(ctx context.Context, user domain.UserSignature) ([]domain.Transaction, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockDraftRepository is a mock type for the DraftRepositoryWithTx interface
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) SaveChangeDraft(ctx context.Context, draft domain.ChangeDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) SavePurchaseDraft(ctx context.Context, draft domain.PurchaseDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) FindChangeDraftByID(ctx context.Context, draftID string) (*domain.ChangeDraft, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChangeDraft), args.Error(1)
}

func (m *MockDraftRepository) FindPurchaseDraftByID(ctx context.Context, draftID string) (*domain.PurchaseDraft, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseDraft), args.Error(1)
}

func (m *MockDraftRepository) ConsumeDraftInTx(ctx context.Context, tx pgx.Tx, kind domain.DraftKind, draftID string) error {
	args := m.Called(ctx, tx, kind, draftID)
	return args.Error(0)
}

func (m *MockDraftRepository) DeleteExpiredDrafts(ctx context.Context, olderThanSeconds int) (int64, error) {
	args := m.Called(ctx, olderThanSeconds)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDraftRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockDraftRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDraftRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockCardRepository is a mock type for the CardRepositoryFacade interface
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) RegisterCard(ctx context.Context, card domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardRepository) AssignCard(ctx context.Context, cardID string, user domain.UserSignature, updatedBy string) error {
	args := m.Called(ctx, cardID, user, updatedBy)
	return args.Error(0)
}

func (m *MockCardRepository) UnassignCard(ctx context.Context, cardID string, updatedBy string) error {
	args := m.Called(ctx, cardID, updatedBy)
	return args.Error(0)
}

func (m *MockCardRepository) SetBlocked(ctx context.Context, cardID string, blocked bool, updatedBy string) error {
	args := m.Called(ctx, cardID, blocked, updatedBy)
	return args.Error(0)
}

// MockVoteRepository is a mock type for the VoteRepositoryFacade interface
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) FindVoteByID(ctx context.Context, voteID string) (*domain.Vote, error) {
	args := m.Called(ctx, voteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vote), args.Error(1)
}

func (m *MockVoteRepository) ListVotes(ctx context.Context) ([]domain.Vote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vote), args.Error(1)
}

func (m *MockVoteRepository) FindPapersByVoteID(ctx context.Context, voteID string) ([]domain.VotingPaper, error) {
	args := m.Called(ctx, voteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VotingPaper), args.Error(1)
}

func (m *MockVoteRepository) FindPaper(ctx context.Context, voteID, citizenID string) (*domain.VotingPaper, error) {
	args := m.Called(ctx, voteID, citizenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VotingPaper), args.Error(1)
}

func (m *MockVoteRepository) SaveVote(ctx context.Context, vote domain.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) InsertPaper(ctx context.Context, paper domain.VotingPaper) error {
	args := m.Called(ctx, paper)
	return args.Error(0)
}

func (m *MockVoteRepository) SetResultIfNull(ctx context.Context, voteID string, result []float64) (bool, error) {
	args := m.Called(ctx, voteID, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoteRepository) DeleteVote(ctx context.Context, voteID string) error {
	args := m.Called(ctx, voteID)
	return args.Error(0)
}

// MockProductRepository is a mock type for the ProductRepositoryFacade interface
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProductsByCompany(ctx context.Context, companyID string) ([]domain.Product, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SoftDeleteProduct(ctx context.Context, productID string, deletedBy string) error {
	args := m.Called(ctx, productID, deletedBy)
	return args.Error(0)
}

// MockEmploymentRepository is a mock type for the EmploymentRepositoryFacade interface
type MockEmploymentRepository struct {
	mock.Mock
}

func (m *MockEmploymentRepository) SaveEmployment(ctx context.Context, employment domain.Employment) error {
	args := m.Called(ctx, employment)
	return args.Error(0)
}

func (m *MockEmploymentRepository) FindEmploymentByID(ctx context.Context, employmentID string) (*domain.Employment, error) {
	args := m.Called(ctx, employmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employment), args.Error(1)
}

func (m *MockEmploymentRepository) SaveWorktime(ctx context.Context, worktime domain.Worktime) error {
	args := m.Called(ctx, worktime)
	return args.Error(0)
}

func (m *MockEmploymentRepository) FindWorktimeByID(ctx context.Context, worktimeID string) (*domain.Worktime, error) {
	args := m.Called(ctx, worktimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worktime), args.Error(1)
}

func (m *MockEmploymentRepository) MarkWorktimePaidInTx(ctx context.Context, tx pgx.Tx, worktimeID, transactionID string) error {
	args := m.Called(ctx, tx, worktimeID, transactionID)
	return args.Error(0)
}
