package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/utils"
)

type visitorRepository struct {
	db *sqlx.DB
}

func NewVisitorRepository(db *sqlx.DB) VisitorRepository {
	return &visitorRepository{db: db}
}

func visitorList() listQuery {
	return listQuery{
		from: dialect.From(goqu.T("buku_tamu")),
		columns: []any{
			"id", "nis", "nama", "kelas", "keperluan", "tanggal_kunjungan",
			goqu.L("waktu_kunjungan::text").As("waktu_kunjungan"), "status",
		},
		search: []string{"nama", "nis"},
		filters: FilterSpec{
			"status":  equalTo("status"),
			"tanggal": equalTo("tanggal_kunjungan"),
			"kelas":   equalTo("kelas"),
		},
		order: []exp.OrderedExpression{
			goqu.I("tanggal_kunjungan").Desc(),
			goqu.I("waktu_kunjungan").Desc(),
			goqu.I("id").Desc(),
		},
	}
}

func (r *visitorRepository) Create(ctx context.Context, visitor *domain.Visitor) error {
	query := `
		INSERT INTO buku_tamu (nis, nama, kelas, keperluan, tanggal_kunjungan, waktu_kunjungan, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		visitor.NIS,
		visitor.Name,
		visitor.Class,
		visitor.Purpose,
		utils.DateString(visitor.VisitDate),
		visitor.VisitTime,
		visitor.Status,
	).Scan(&visitor.ID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (r *visitorRepository) GetByID(ctx context.Context, id int64) (*domain.Visitor, error) {
	query := `
		SELECT id, nis, nama, kelas, keperluan, tanggal_kunjungan, waktu_kunjungan::text AS waktu_kunjungan, status
		FROM buku_tamu
		WHERE id = $1
	`

	var visitor domain.Visitor
	if err := r.db.GetContext(ctx, &visitor, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapNotFound("visitor", id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return &visitor, nil
}

func (r *visitorRepository) FindOpen(ctx context.Context, nis string, day time.Time) (*domain.Visitor, error) {
	query := `
		SELECT id, nis, nama, kelas, keperluan, tanggal_kunjungan, waktu_kunjungan::text AS waktu_kunjungan, status
		FROM buku_tamu
		WHERE nis = $1 AND tanggal_kunjungan = $2 AND status = $3
		ORDER BY waktu_kunjungan DESC, id DESC
		LIMIT 1
	`

	var visitor domain.Visitor
	if err := r.db.GetContext(ctx, &visitor, query, nis, utils.DateString(day), domain.VisitorPresent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapNotFound("open visit for", nis)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return &visitor, nil
}

func (r *visitorRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE buku_tamu SET status = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return expectAffected(result, "visitor", id)
}

func (r *visitorRepository) CloseBefore(ctx context.Context, day time.Time) (int64, error) {
	query := `
		UPDATE buku_tamu
		SET status = $1
		WHERE status = $2 AND tanggal_kunjungan < $3
	`

	result, err := r.db.ExecContext(ctx, query, domain.VisitorDeparted, domain.VisitorPresent, utils.DateString(day))
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	return affected, nil
}

func (r *visitorRepository) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Visitor], error) {
	return fetchPage[domain.Visitor](ctx, r.db, visitorList(), q)
}

func (r *visitorRepository) CountPresent(ctx context.Context, day time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM buku_tamu WHERE status = $1 AND tanggal_kunjungan = $2`

	var total int64
	if err := r.db.GetContext(ctx, &total, query, domain.VisitorPresent, utils.DateString(day)); err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	return total, nil
}
