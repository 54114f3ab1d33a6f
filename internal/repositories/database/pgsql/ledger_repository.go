package pgsql

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
)

// PgxLedgerRepository owns the bank accounts and the append-only
// transaction log. Every funds movement re-reads the touched balances under
// row locks, applies the deltas, and writes the ledger record in the same
// storage transaction.
type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for accounts and the ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const accountColumns = `account_id, owner_type, owner_id, balance, redemption_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.BankAccount, error) {
	var a domain.BankAccount
	err := row.Scan(
		&a.AccountID,
		&a.Owner.Type,
		&a.Owner.ID,
		&a.Balance,
		&a.RedemptionBalance,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE account_id = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeAccountNotFound, "account %s not found", accountID)
		}
		return nil, apperrors.Internal("failed to find account", err)
	}
	return account, nil
}

func (r *PgxLedgerRepository) FindAccountByOwner(ctx context.Context, owner domain.UserSignature) (*domain.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE owner_type = $1 AND owner_id = $2;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, owner.Type, owner.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeAccountNotFound, "no account for %s/%s", owner.Type, owner.ID)
		}
		return nil, apperrors.Internal("failed to find account by owner", err)
	}
	return account, nil
}

// MoveFunds runs the movement in its own storage transaction.
func (r *PgxLedgerRepository) MoveFunds(ctx context.Context, deltas []domain.AccountDelta, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.MoveFundsInTx(ctx, tx, deltas, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// MoveFundsInTx locks every touched account in a fixed order, verifies no
// balance would go negative, applies the deltas and appends the ledger
// record. The caller owns commit and rollback.
func (r *PgxLedgerRepository) MoveFundsInTx(ctx context.Context, tx pgx.Tx, deltas []domain.AccountDelta, txn domain.Transaction) error {
	if len(deltas) == 0 {
		return apperrors.New(apperrors.CodeBadUserInput, "a funds movement needs at least one delta")
	}

	// Lock in sorted id order so concurrent movements touching the same
	// accounts cannot deadlock.
	ids := make([]string, 0, len(deltas))
	seen := make(map[string]bool, len(deltas))
	for _, d := range deltas {
		if !seen[d.AccountID] {
			seen[d.AccountID] = true
			ids = append(ids, d.AccountID)
		}
	}
	sort.Strings(ids)

	type balances struct {
		balance    decimal.Decimal
		redemption decimal.Decimal
	}
	locked := make(map[string]*balances, len(ids))

	lockQuery := `SELECT account_id, balance, redemption_balance FROM bank_accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, lockQuery, ids)
	if err != nil {
		return apperrors.Internal("failed to lock accounts", err)
	}
	for rows.Next() {
		var id string
		b := &balances{}
		if err := rows.Scan(&id, &b.balance, &b.redemption); err != nil {
			rows.Close()
			return apperrors.Internal("failed to scan locked account", err)
		}
		locked[id] = b
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.Internal("failed to iterate locked accounts", err)
	}
	for _, id := range ids {
		if _, ok := locked[id]; !ok {
			return apperrors.Newf(apperrors.CodeAccountNotFound, "account %s not found", id)
		}
	}

	for _, d := range deltas {
		b := locked[d.AccountID]
		switch d.Leg {
		case domain.LegBalance:
			b.balance = b.balance.Add(d.Amount)
			if b.balance.IsNegative() {
				return apperrors.Newf(apperrors.CodeBalanceTooLow, "account %s cannot cover %s", d.AccountID, d.Amount.Neg())
			}
		case domain.LegRedemption:
			b.redemption = b.redemption.Add(d.Amount)
			if b.redemption.IsNegative() {
				return apperrors.Newf(apperrors.CodeBalanceTooLow, "account %s redemption cannot cover %s", d.AccountID, d.Amount.Neg())
			}
		default:
			return apperrors.Newf(apperrors.CodeBadUserInput, "unknown balance leg %q", d.Leg)
		}
	}

	now := time.Now()
	batch := &pgx.Batch{}
	updateQuery := `UPDATE bank_accounts SET balance = $2, redemption_balance = $3, last_updated_at = $4 WHERE account_id = $1;`
	for _, id := range ids {
		b := locked[id]
		batch.Queue(updateQuery, id, b.balance, b.redemption, now)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.Internal("failed to update balances", err)
	}

	return r.insertTransaction(ctx, tx, txn)
}

// insertTransaction appends the base row plus the kind-specific row(s).
func (r *PgxLedgerRepository) insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	baseQuery := `INSERT INTO transactions (transaction_id, kind, created_at) VALUES ($1, $2, $3);`
	if _, err := tx.Exec(ctx, baseQuery, txn.TransactionID(), txn.Kind(), txn.Date()); err != nil {
		return apperrors.Internal("failed to insert transaction", err)
	}

	switch t := txn.(type) {
	case domain.TransferTransaction:
		query := `
			INSERT INTO transfer_transactions (transaction_id, sender_type, sender_id, receiver_type, receiver_id, value, purpose)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		if _, err := tx.Exec(ctx, query, t.ID, t.Sender.Type, t.Sender.ID, t.Receiver.Type, t.Receiver.ID, t.Value, t.Purpose); err != nil {
			return apperrors.Internal("failed to insert transfer record", err)
		}
	case domain.ChangeTransaction:
		query := `
			INSERT INTO change_transactions (transaction_id, user_type, user_id, direction, from_currency, to_currency, from_value, to_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		if _, err := tx.Exec(ctx, query, t.ID, t.User.Type, t.User.ID, t.Direction, t.FromCurrency, t.ToCurrency, t.FromValue, t.ToValue); err != nil {
			return apperrors.Internal("failed to insert change record", err)
		}
	case domain.PurchaseTransaction:
		query := `
			INSERT INTO purchase_transactions (transaction_id, customer_type, customer_id, company_id, gross_price, net_price, discount)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		if _, err := tx.Exec(ctx, query, t.ID, t.Customer.Type, t.Customer.ID, t.CompanyID, t.GrossPrice, t.NetPrice, t.Discount); err != nil {
			return apperrors.Internal("failed to insert purchase record", err)
		}
		itemQuery := `
			INSERT INTO purchase_transaction_items (transaction_id, product_id, product_revision, amount, unit_price)
			VALUES ($1, $2, $3, $4, $5);
		`
		batch := &pgx.Batch{}
		for _, item := range t.Items {
			batch.Queue(itemQuery, t.ID, item.ProductID, item.ProductRevision, item.Amount, item.UnitPrice)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.Internal("failed to insert purchase items", err)
		}
	case domain.CustomsTransaction:
		query := `
			INSERT INTO customs_transactions (transaction_id, user_type, user_id, amount)
			VALUES ($1, $2, $3, $4);
		`
		if _, err := tx.Exec(ctx, query, t.ID, t.User.Type, t.User.ID, t.Amount); err != nil {
			return apperrors.Internal("failed to insert customs record", err)
		}
	case domain.SalaryTransaction:
		query := `
			INSERT INTO salary_transactions (transaction_id, employment_id, worktime_id, gross_value, net_value)
			VALUES ($1, $2, $3, $4, $5);
		`
		if _, err := tx.Exec(ctx, query, t.ID, t.EmploymentID, t.WorktimeID, t.GrossValue, t.NetValue); err != nil {
			return apperrors.Internal("failed to insert salary record", err)
		}
	default:
		return apperrors.Newf(apperrors.CodeBadUserInput, "unknown transaction kind %q", txn.Kind())
	}
	return nil
}

// ListTransactionsForUser gathers every kind a user can appear in with one
// batched round trip, then merges newest first.
func (r *PgxLedgerRepository) ListTransactionsForUser(ctx context.Context, user domain.UserSignature) ([]domain.Transaction, error) {
	batch := &pgx.Batch{}
	batch.Queue(`
		SELECT t.transaction_id, t.created_at, x.sender_type, x.sender_id, x.receiver_type, x.receiver_id, x.value, x.purpose
		FROM transfer_transactions x JOIN transactions t ON t.transaction_id = x.transaction_id
		WHERE (x.sender_type = $1 AND x.sender_id = $2) OR (x.receiver_type = $1 AND x.receiver_id = $2);
	`, user.Type, user.ID)
	batch.Queue(`
		SELECT t.transaction_id, t.created_at, x.user_type, x.user_id, x.direction, x.from_currency, x.to_currency, x.from_value, x.to_value
		FROM change_transactions x JOIN transactions t ON t.transaction_id = x.transaction_id
		WHERE x.user_type = $1 AND x.user_id = $2;
	`, user.Type, user.ID)
	batch.Queue(`
		SELECT t.transaction_id, t.created_at, x.customer_type, x.customer_id, x.company_id, x.gross_price, x.net_price, x.discount
		FROM purchase_transactions x JOIN transactions t ON t.transaction_id = x.transaction_id
		WHERE (x.customer_type = $1 AND x.customer_id = $2) OR ($1 = 'COMPANY' AND x.company_id = $2);
	`, user.Type, user.ID)
	batch.Queue(`
		SELECT t.transaction_id, t.created_at, x.user_type, x.user_id, x.amount
		FROM customs_transactions x JOIN transactions t ON t.transaction_id = x.transaction_id
		WHERE x.user_type = $1 AND x.user_id = $2;
	`, user.Type, user.ID)
	batch.Queue(`
		SELECT t.transaction_id, t.created_at, x.employment_id, x.worktime_id, x.gross_value, x.net_value
		FROM salary_transactions x
		JOIN transactions t ON t.transaction_id = x.transaction_id
		JOIN employments e ON e.employment_id = x.employment_id
		WHERE ($1 = 'COMPANY' AND e.company_id = $2) OR ($1 = 'CITIZEN' AND e.citizen_id = $2);
	`, user.Type, user.ID)

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()

	var txns []domain.Transaction

	transferRows, err := results.Query()
	if err != nil {
		return nil, apperrors.Internal("failed to query transfers", err)
	}
	for transferRows.Next() {
		var t domain.TransferTransaction
		if err := transferRows.Scan(&t.ID, &t.CreatedAt, &t.Sender.Type, &t.Sender.ID, &t.Receiver.Type, &t.Receiver.ID, &t.Value, &t.Purpose); err != nil {
			transferRows.Close()
			return nil, apperrors.Internal("failed to scan transfer", err)
		}
		txns = append(txns, t)
	}
	transferRows.Close()

	changeRows, err := results.Query()
	if err != nil {
		return nil, apperrors.Internal("failed to query changes", err)
	}
	for changeRows.Next() {
		var t domain.ChangeTransaction
		if err := changeRows.Scan(&t.ID, &t.CreatedAt, &t.User.Type, &t.User.ID, &t.Direction, &t.FromCurrency, &t.ToCurrency, &t.FromValue, &t.ToValue); err != nil {
			changeRows.Close()
			return nil, apperrors.Internal("failed to scan change", err)
		}
		txns = append(txns, t)
	}
	changeRows.Close()

	var purchases []domain.PurchaseTransaction
	purchaseRows, err := results.Query()
	if err != nil {
		return nil, apperrors.Internal("failed to query purchases", err)
	}
	for purchaseRows.Next() {
		var t domain.PurchaseTransaction
		if err := purchaseRows.Scan(&t.ID, &t.CreatedAt, &t.Customer.Type, &t.Customer.ID, &t.CompanyID, &t.GrossPrice, &t.NetPrice, &t.Discount); err != nil {
			purchaseRows.Close()
			return nil, apperrors.Internal("failed to scan purchase", err)
		}
		purchases = append(purchases, t)
	}
	purchaseRows.Close()

	customsRows, err := results.Query()
	if err != nil {
		return nil, apperrors.Internal("failed to query customs", err)
	}
	for customsRows.Next() {
		var t domain.CustomsTransaction
		if err := customsRows.Scan(&t.ID, &t.CreatedAt, &t.User.Type, &t.User.ID, &t.Amount); err != nil {
			customsRows.Close()
			return nil, apperrors.Internal("failed to scan customs", err)
		}
		txns = append(txns, t)
	}
	customsRows.Close()

	salaryRows, err := results.Query()
	if err != nil {
		return nil, apperrors.Internal("failed to query salaries", err)
	}
	for salaryRows.Next() {
		var t domain.SalaryTransaction
		if err := salaryRows.Scan(&t.ID, &t.CreatedAt, &t.EmploymentID, &t.WorktimeID, &t.GrossValue, &t.NetValue); err != nil {
			salaryRows.Close()
			return nil, apperrors.Internal("failed to scan salary", err)
		}
		txns = append(txns, t)
	}
	salaryRows.Close()

	if err := results.Close(); err != nil {
		return nil, apperrors.Internal("failed to close batch", err)
	}

	// Purchase items need a second pass once the batch is drained.
	for i := range purchases {
		items, err := r.findPurchaseItems(ctx, purchases[i].ID)
		if err != nil {
			return nil, err
		}
		purchases[i].Items = items
		txns = append(txns, purchases[i])
	}

	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date().Equal(txns[j].Date()) {
			return txns[i].Date().After(txns[j].Date())
		}
		return txns[i].TransactionID() < txns[j].TransactionID()
	})
	return txns, nil
}

func (r *PgxLedgerRepository) findPurchaseItems(ctx context.Context, transactionID string) ([]domain.PurchaseItem, error) {
	query := `
		SELECT product_id, product_revision, amount, unit_price
		FROM purchase_transaction_items WHERE transaction_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.Internal("failed to query purchase items", err)
	}
	defer rows.Close()

	var items []domain.PurchaseItem
	for rows.Next() {
		var item domain.PurchaseItem
		if err := rows.Scan(&item.ProductID, &item.ProductRevision, &item.Amount, &item.UnitPrice); err != nil {
			return nil, apperrors.Internal("failed to scan purchase item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("failed to iterate purchase items", err)
	}
	return items, nil
}
