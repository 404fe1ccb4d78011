package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/finbooks/finbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, tenant_id, transaction_type, amount, currency_code, transaction_date, description, category_id, department_id, fund_id, payment_method, reference_number, is_recurring, is_taxable, status, approved_by, approved_at, voided_by, void_reason, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		TenantID:        int64(d.TenantID),
		TransactionType: string(d.TransactionType),
		Amount:          d.Money.Amount,
		CurrencyCode:    d.Money.CurrencyCode,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		CategoryID:      d.CategoryID,
		DepartmentID:    d.DepartmentID,
		FundID:          d.FundID,
		PaymentMethod:   d.PaymentMethod,
		ReferenceNumber: d.ReferenceNumber,
		IsRecurring:     d.IsRecurring,
		IsTaxable:       d.IsTaxable,
		Status:          string(d.Status),
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		VoidedBy:        d.VoidedBy,
		VoidReason:      d.VoidReason,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		TenantID:        domain.TenantID(m.TenantID),
		TransactionType: domain.TransactionType(m.TransactionType),
		Money:           domain.NewMoney(m.Amount, m.CurrencyCode),
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		CategoryID:      m.CategoryID,
		DepartmentID:    m.DepartmentID,
		FundID:          m.FundID,
		PaymentMethod:   m.PaymentMethod,
		ReferenceNumber: m.ReferenceNumber,
		IsRecurring:     m.IsRecurring,
		IsTaxable:       m.IsTaxable,
		Status:          domain.TransactionStatus(m.Status),
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		VoidedBy:        m.VoidedBy,
		VoidReason:      m.VoidReason,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var categoryID, departmentID, fundID, approvedBy, voidedBy sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.TenantID,
		&m.TransactionType,
		&m.Amount,
		&m.CurrencyCode,
		&m.TransactionDate,
		&m.Description,
		&categoryID,
		&departmentID,
		&fundID,
		&m.PaymentMethod,
		&m.ReferenceNumber,
		&m.IsRecurring,
		&m.IsTaxable,
		&m.Status,
		&approvedBy,
		&m.ApprovedAt,
		&voidedBy,
		&m.VoidReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	m.CategoryID = categoryID.String
	m.DepartmentID = departmentID.String
	m.FundID = fundID.String
	m.ApprovedBy = approvedBy.String
	m.VoidedBy = voidedBy.String
	return m, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// SaveTransaction inserts a new transaction row.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.TenantID,
		m.TransactionType,
		m.Amount,
		m.CurrencyCode,
		m.TransactionDate,
		m.Description,
		nullable(m.CategoryID),
		nullable(m.DepartmentID),
		nullable(m.FundID),
		m.PaymentMethod,
		m.ReferenceNumber,
		m.IsRecurring,
		m.IsTaxable,
		m.Status,
		nullable(m.ApprovedBy),
		m.ApprovedAt,
		nullable(m.VoidedBy),
		m.VoidReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID within a tenant.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, tenantID domain.TenantID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1 AND transaction_id = $2;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, int64(tenantID), transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	txn := toDomainTransaction(m)
	return &txn, nil
}

// UpdateTransactionDetails persists detail changes while the row is still
// DRAFT. The status guard makes the update a check-and-set: zero rows
// affected on an existing row means the row left DRAFT concurrently.
func (r *PgxTransactionRepository) UpdateTransactionDetails(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)

	query := `
		UPDATE transactions
		SET amount = $3, transaction_date = $4, description = $5, category_id = $6,
		    department_id = $7, fund_id = $8, payment_method = $9, reference_number = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE tenant_id = $1 AND transaction_id = $2 AND status = $13;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.TransactionID,
		m.Amount,
		m.TransactionDate,
		m.Description,
		nullable(m.CategoryID),
		nullable(m.DepartmentID),
		nullable(m.FundID),
		m.PaymentMethod,
		m.ReferenceNumber,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(domain.TransactionDraft),
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindTransactionByID(ctx, txn.TenantID, txn.TransactionID)
		if findErr != nil {
			return findErr
		}
		return apperrors.ErrConflict
	}
	return nil
}

// TransitionTransactionStatus persists an already-transitioned transaction
// with a status guard on the prior state, so two concurrent transitions
// cannot both win.
func (r *PgxTransactionRepository) TransitionTransactionStatus(ctx context.Context, txn domain.Transaction, expectedFrom domain.TransactionStatus) error {
	m := toModelTransaction(txn)

	query := `
		UPDATE transactions
		SET status = $3, approved_by = $4, approved_at = $5, voided_by = $6, void_reason = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE tenant_id = $1 AND transaction_id = $2 AND status = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.TransactionID,
		m.Status,
		nullable(m.ApprovedBy),
		m.ApprovedAt,
		nullable(m.VoidedBy),
		m.VoidReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(expectedFrom),
	)
	if err != nil {
		return fmt.Errorf("failed to transition transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindTransactionByID(ctx, txn.TenantID, txn.TransactionID)
		if findErr != nil {
			return findErr
		}
		return apperrors.ErrConflict
	}
	return nil
}

// ListApprovedTransactions returns APPROVED transactions with dates in
// [start, end], both ends inclusive.
func (r *PgxTransactionRepository) ListApprovedTransactions(ctx context.Context, tenantID domain.TenantID, start, end time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1 AND status = $2
		  AND transaction_date >= $3 AND transaction_date <= $4
		ORDER BY transaction_date, created_at;
	`
	return r.queryTransactions(ctx, query, int64(tenantID), string(domain.TransactionApproved), start, end)
}

// ListApprovedByCategory narrows ListApprovedTransactions to one category.
func (r *PgxTransactionRepository) ListApprovedByCategory(ctx context.Context, tenantID domain.TenantID, categoryID string, start, end time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1 AND status = $2 AND category_id = $3
		  AND transaction_date >= $4 AND transaction_date <= $5
		ORDER BY transaction_date, created_at;
	`
	return r.queryTransactions(ctx, query, int64(tenantID), string(domain.TransactionApproved), categoryID, start, end)
}

// ListTransactions returns a keyset-paginated page, newest first, plus a
// token for the next page when more rows remain.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, tenantID domain.TenantID, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := []any{int64(tenantID)}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		query += ` AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, txnDate, createdAt)
	}
	// Fetch one extra row to know whether another page exists
	query += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT %d;`, limit+1)

	txns, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		encoded := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		token = &encoded
	}
	return txns, token, nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}
