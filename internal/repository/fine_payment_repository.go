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

type finePaymentRepository struct {
	db *sqlx.DB
}

func NewFinePaymentRepository(db *sqlx.DB) FinePaymentRepository {
	return &finePaymentRepository{db: db}
}

var finePaymentColumns = []any{
	goqu.I("p.id"),
	goqu.I("p.nis"),
	goqu.I("s.nama").As("nama_siswa"),
	goqu.I("p.jumlah"),
	goqu.I("p.bukti_pembayaran"),
	goqu.I("p.status"),
	goqu.I("p.created_at"),
	goqu.I("p.diproses_oleh"),
	goqu.I("p.diproses_pada"),
}

func finePaymentSource() *goqu.SelectDataset {
	return dialect.From(goqu.T("pembayaran_denda").As("p")).
		Join(goqu.T("siswa").As("s"), goqu.On(goqu.I("s.nis").Eq(goqu.I("p.nis"))))
}

func finePaymentList() listQuery {
	return listQuery{
		from:    finePaymentSource(),
		columns: finePaymentColumns,
		search:  []string{"p.nis", "s.nama"},
		filters: FilterSpec{
			"status": equalTo("p.status"),
			"nis":    equalTo("p.nis"),
		},
		order: []exp.OrderedExpression{goqu.I("p.created_at").Desc(), goqu.I("p.id").Desc()},
	}
}

func (r *finePaymentRepository) GetByID(ctx context.Context, id int64) (*domain.FinePayment, error) {
	query, args, err := finePaymentSource().
		Select(finePaymentColumns...).
		Where(goqu.I("p.id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	var payment domain.FinePayment
	if err := r.db.GetContext(ctx, &payment, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapNotFound("fine payment", id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return &payment, nil
}

func (r *finePaymentRepository) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.FinePayment], error) {
	return fetchPage[domain.FinePayment](ctx, r.db, finePaymentList(), q)
}

func (r *finePaymentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	query := `SELECT COUNT(*) FROM pembayaran_denda WHERE status = $1`

	var total int64
	if err := r.db.GetContext(ctx, &total, query, status); err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	return total, nil
}
