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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, tenant_id, entry_date, description, status, source_txn_id, original_entry_id, reversing_entry_id, posted_at, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, tenant_id, account_id, debit_amount, credit_amount, currency_code, description, position`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

func toModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		TenantID:         int64(d.TenantID),
		EntryDate:        d.EntryDate,
		Description:      d.Description,
		Status:           string(d.Status),
		SourceTxnID:      d.SourceTxnID,
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		PostedAt:         d.PostedAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainEntry(m models.JournalEntry, lines []domain.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		TenantID:         domain.TenantID(m.TenantID),
		EntryDate:        m.EntryDate,
		Description:      m.Description,
		Status:           domain.JournalStatus(m.Status),
		Lines:            lines,
		SourceTxnID:      m.SourceTxnID,
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		PostedAt:         m.PostedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainLine(m models.JournalLine) domain.JournalLine {
	line := domain.JournalLine{
		LineID:      m.LineID,
		AccountID:   m.AccountID,
		Description: m.Description,
	}
	if m.DebitAmount != nil {
		money := domain.NewMoney(*m.DebitAmount, m.CurrencyCode)
		line.Debit = &money
	}
	if m.CreditAmount != nil {
		money := domain.NewMoney(*m.CreditAmount, m.CurrencyCode)
		line.Credit = &money
	}
	return line
}

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var sourceTxnID, originalEntryID, reversingEntryID sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&sourceTxnID,
		&originalEntryID,
		&reversingEntryID,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	m.SourceTxnID = sourceTxnID.String
	m.OriginalEntryID = originalEntryID.String
	m.ReversingEntryID = reversingEntryID.String
	return m, nil
}

// SaveJournalEntry persists an entry header and its lines atomically.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.TenantID,
		m.EntryDate,
		m.Description,
		m.Status,
		nullable(m.SourceTxnID),
		nullable(m.OriginalEntryID),
		nullable(m.ReversingEntryID),
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	if len(entry.Lines) > 0 {
		batch := &pgx.Batch{}
		lineQuery := `
			INSERT INTO journal_lines (` + lineColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		for i, line := range entry.Lines {
			var debit, credit *decimal.Decimal
			var currency string
			if line.Debit != nil {
				debit = &line.Debit.Amount
				currency = line.Debit.CurrencyCode
			}
			if line.Credit != nil {
				credit = &line.Credit.Amount
				currency = line.Credit.CurrencyCode
			}
			batch.Queue(lineQuery,
				line.LineID,
				m.EntryID,
				m.TenantID,
				line.AccountID,
				debit,
				credit,
				currency,
				line.Description,
				i,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert journal line for entry %s: %w", m.EntryID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close journal line batch: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID returns the entry with its lines in insertion order.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID domain.TenantID, entryID string) (*domain.JournalEntry, error) {
	entryQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, entryQuery, int64(tenantID), entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := r.findLines(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	entry := toDomainEntry(m, lines)
	return &entry, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, tenantID domain.TenantID, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE tenant_id = $1 AND entry_id = $2
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, int64(tenantID), entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.TenantID,
			&m.AccountID,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.CurrencyCode,
			&m.Description,
			&m.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, toDomainLine(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", rows.Err())
	}
	return lines, nil
}

// AppendEntryLine adds a line to a DRAFT entry. The status check and insert
// run in one transaction; apperrors.ErrConflict when the entry is no longer
// DRAFT.
func (r *PgxJournalRepository) AppendEntryLine(ctx context.Context, tenantID domain.TenantID, entryID string, line domain.JournalLine, position int) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status string
	err = tx.QueryRow(ctx,
		`SELECT status FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2 FOR UPDATE;`,
		int64(tenantID), entryID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock journal entry %s: %w", entryID, err)
	}
	if status != string(domain.EntryDraft) {
		return apperrors.ErrConflict
	}

	var debit, credit *decimal.Decimal
	var currency string
	if line.Debit != nil {
		debit = &line.Debit.Amount
		currency = line.Debit.CurrencyCode
	}
	if line.Credit != nil {
		credit = &line.Credit.Amount
		currency = line.Credit.CurrencyCode
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO journal_lines (`+lineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		line.LineID,
		entryID,
		int64(tenantID),
		line.AccountID,
		debit,
		credit,
		currency,
		line.Description,
		position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal line for entry %s: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkEntryPosted flips DRAFT -> POSTED. The entry row is locked and the
// per-currency line sums re-verified inside the transaction: AppendEntryLine
// takes the same lock, so a line committed after the caller's balance check
// is seen here and cannot slip into a posted entry.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, tenantID domain.TenantID, entryID string, postedAt time.Time, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status string
	err = tx.QueryRow(ctx,
		`SELECT status FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2 FOR UPDATE;`,
		int64(tenantID), entryID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock journal entry %s: %w", entryID, err)
	}
	if status != string(domain.EntryDraft) {
		return apperrors.ErrConflict
	}

	rows, err := tx.Query(ctx, `
		SELECT currency_code,
		       COALESCE(SUM(debit_amount), 0),
		       COALESCE(SUM(credit_amount), 0)
		FROM journal_lines
		WHERE tenant_id = $1 AND entry_id = $2
		GROUP BY currency_code;
	`, int64(tenantID), entryID)
	if err != nil {
		return fmt.Errorf("failed to sum journal lines for entry %s: %w", entryID, err)
	}

	currencies := 0
	for rows.Next() {
		var currency string
		var debits, credits decimal.Decimal
		if err := rows.Scan(&currency, &debits, &credits); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan journal line sums: %w", err)
		}
		if !debits.Equal(credits) {
			rows.Close()
			return fmt.Errorf("%w: %s debits %s, credits %s",
				domain.ErrUnbalancedEntry, currency, debits, credits)
		}
		currencies++
	}
	if rows.Err() != nil {
		return fmt.Errorf("error iterating journal line sums: %w", rows.Err())
	}
	rows.Close()
	if currencies == 0 {
		return fmt.Errorf("%w: entry %s", domain.ErrEmptyEntry, entryID)
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $3, posted_at = $4, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND entry_id = $2;
	`, int64(tenantID), entryID, string(domain.EntryPosted), postedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark journal entry %s posted: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}

// SetReversalLink records the reversing entry's ID on the original.
func (r *PgxJournalRepository) SetReversalLink(ctx context.Context, tenantID domain.TenantID, entryID string, reversingEntryID string, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET reversing_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND entry_id = $2 AND reversing_entry_id IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, int64(tenantID), entryID, reversingEntryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to set reversal link on entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// ListEntries retrieves all journal entries for a tenant with their lines,
// newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID domain.TenantID) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1
		ORDER BY entry_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, int64(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	headers := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		headers = append(headers, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", rows.Err())
	}

	entries := make([]domain.JournalEntry, 0, len(headers))
	for _, m := range headers {
		lines, err := r.findLines(ctx, tenantID, m.EntryID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, toDomainEntry(m, lines))
	}
	return entries, nil
}
