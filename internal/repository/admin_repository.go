package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func adminLogList() listQuery {
	return listQuery{
		from:    dialect.From(goqu.T("admin_logs")),
		columns: []any{"id", "admin_id", "admin_username", "action", "details", "created_at"},
		search:  []string{"action", "details"},
		filters: FilterSpec{
			"admin_username": equalTo("admin_username"),
			"action":         contains("action"),
		},
		order: []exp.OrderedExpression{goqu.I("created_at").Desc(), goqu.I("id").Desc()},
	}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `SELECT id_admin, username, nama, password FROM admin WHERE username = $1`

	var admin domain.Admin
	if err := r.db.GetContext(ctx, &admin, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapNotFound("admin", username)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return &admin, nil
}

func (r *adminRepository) Log(ctx context.Context, entry *domain.AdminLog) error {
	query := `
		INSERT INTO admin_logs (admin_id, admin_username, action, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		entry.AdminID,
		entry.AdminUsername,
		entry.Action,
		entry.Details,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (r *adminRepository) ListLogs(ctx context.Context, q pagination.Query) (*pagination.Page[domain.AdminLog], error) {
	return fetchPage[domain.AdminLog](ctx, r.db, adminLogList(), q)
}
