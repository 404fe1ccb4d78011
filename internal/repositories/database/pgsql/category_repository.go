package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `category_id, tenant_id, name, category_type, parent_category_id, account_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data. It
// also serves as the category name resolver for the reporting services.
func newPgxCategoryRepository(pool *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.CategoryRepository   = (*PgxCategoryRepository)(nil)
	_ portsrepo.CategoryNameResolver = (*PgxCategoryRepository)(nil)
)

func toModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:       d.CategoryID,
		TenantID:         int64(d.TenantID),
		Name:             d.Name,
		CategoryType:     string(d.CategoryType),
		ParentCategoryID: d.ParentCategoryID,
		AccountID:        d.AccountID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:       m.CategoryID,
		TenantID:         domain.TenantID(m.TenantID),
		Name:             m.Name,
		CategoryType:     domain.CategoryType(m.CategoryType),
		ParentCategoryID: m.ParentCategoryID,
		AccountID:        m.AccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	var parentID, accountID sql.NullString
	err := row.Scan(
		&m.CategoryID,
		&m.TenantID,
		&m.Name,
		&m.CategoryType,
		&parentID,
		&accountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Category{}, err
	}
	if parentID.Valid {
		m.ParentCategoryID = parentID.String
	}
	if accountID.Valid {
		m.AccountID = accountID.String
	}
	return m, nil
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := toModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	var parentID, accountID sql.NullString
	if m.ParentCategoryID != "" {
		parentID = sql.NullString{String: m.ParentCategoryID, Valid: true}
	}
	if m.AccountID != "" {
		accountID = sql.NullString{String: m.AccountID, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.TenantID,
		m.Name,
		m.CategoryType,
		parentID,
		accountID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID within a tenant.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, tenantID domain.TenantID, categoryID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE tenant_id = $1 AND category_id = $2;
	`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, int64(tenantID), categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	cat := toDomainCategory(m)
	return &cat, nil
}

// ListCategories retrieves all categories for a tenant in creation order.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, tenantID domain.TenantID) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE tenant_id = $1
		ORDER BY created_at, category_id;
	`
	rows, err := r.Pool.Query(ctx, query, int64(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, toDomainCategory(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}
	return categories, nil
}

// ListCategoryAccounts returns leaf categories with a linked account in
// creation order, joined with the account's name and type. These rows feed
// the balance sheet sections.
func (r *PgxCategoryRepository) ListCategoryAccounts(ctx context.Context, tenantID domain.TenantID) ([]domain.CategoryAccount, error) {
	query := `
		SELECT c.category_id, c.name, a.account_id, a.name, a.account_type
		FROM categories c
		JOIN accounts a ON a.account_id = c.account_id AND a.tenant_id = c.tenant_id
		WHERE c.tenant_id = $1
		  AND c.account_id IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM categories child
			WHERE child.tenant_id = c.tenant_id AND child.parent_category_id = c.category_id
		  )
		ORDER BY c.created_at, c.category_id;
	`
	rows, err := r.Pool.Query(ctx, query, int64(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query category accounts for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	out := []domain.CategoryAccount{}
	for rows.Next() {
		var ca domain.CategoryAccount
		var accountType string
		if err := rows.Scan(&ca.CategoryID, &ca.CategoryName, &ca.AccountID, &ca.AccountName, &accountType); err != nil {
			return nil, fmt.Errorf("failed to scan category account row: %w", err)
		}
		ca.AccountType = domain.AccountType(accountType)
		out = append(out, ca)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category account rows: %w", rows.Err())
	}
	return out, nil
}

// FindCategoryNames resolves category IDs to display names.
func (r *PgxCategoryRepository) FindCategoryNames(ctx context.Context, tenantID domain.TenantID, categoryIDs []string) (map[string]string, error) {
	if len(categoryIDs) == 0 {
		return map[string]string{}, nil
	}
	query := `
		SELECT category_id, name
		FROM categories
		WHERE tenant_id = $1 AND category_id = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, int64(tenantID), categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query category names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(categoryIDs))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan category name row: %w", err)
		}
		names[id] = name
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category name rows: %w", rows.Err())
	}
	return names, nil
}
