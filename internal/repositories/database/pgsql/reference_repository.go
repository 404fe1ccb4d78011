package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReferenceDataRepository struct {
	BaseRepository
}

// newPgxReferenceDataRepository creates a repository for department and fund
// name lookups.
func newPgxReferenceDataRepository(pool *pgxpool.Pool) portsrepo.ReferenceDataRepository {
	return &PgxReferenceDataRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReferenceDataRepository = (*PgxReferenceDataRepository)(nil)

// FindDepartmentNames resolves department IDs to display names.
func (r *PgxReferenceDataRepository) FindDepartmentNames(ctx context.Context, tenantID domain.TenantID, departmentIDs []string) (map[string]string, error) {
	return r.findNames(ctx, `SELECT department_id, name FROM departments WHERE tenant_id = $1 AND department_id = ANY($2);`, tenantID, departmentIDs)
}

// FindFundNames resolves fund IDs to display names.
func (r *PgxReferenceDataRepository) FindFundNames(ctx context.Context, tenantID domain.TenantID, fundIDs []string) (map[string]string, error) {
	return r.findNames(ctx, `SELECT fund_id, name FROM funds WHERE tenant_id = $1 AND fund_id = ANY($2);`, tenantID, fundIDs)
}

func (r *PgxReferenceDataRepository) findNames(ctx context.Context, query string, tenantID domain.TenantID, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	rows, err := r.Pool.Query(ctx, query, int64(tenantID), ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query reference names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan reference name row: %w", err)
		}
		names[id] = name
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reference name rows: %w", rows.Err())
	}
	return names, nil
}

type PgxTenantSettingsRepository struct {
	BaseRepository
}

// newPgxTenantSettingsRepository creates a repository for per-tenant
// bookkeeping configuration.
func newPgxTenantSettingsRepository(pool *pgxpool.Pool) portsrepo.TenantSettingsRepository {
	return &PgxTenantSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TenantSettingsRepository = (*PgxTenantSettingsRepository)(nil)

// GetTenantSettings returns the tenant's books-start date and default
// currency.
func (r *PgxTenantSettingsRepository) GetTenantSettings(ctx context.Context, tenantID domain.TenantID) (*domain.TenantSettings, error) {
	query := `
		SELECT tenant_id, books_start_date, default_currency
		FROM tenant_settings
		WHERE tenant_id = $1;
	`
	var settings domain.TenantSettings
	var id int64
	err := r.Pool.QueryRow(ctx, query, int64(tenantID)).Scan(&id, &settings.BooksStartDate, &settings.DefaultCurrency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings for tenant %s: %w", tenantID, err)
	}
	settings.TenantID = domain.TenantID(id)
	return &settings, nil
}
