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

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

var loanColumns = []any{
	goqu.I("c.id_sirkulasi"),
	goqu.I("c.nis"),
	goqu.I("c.id_buku"),
	goqu.I("c.tanggal_pinjam"),
	goqu.I("c.tanggal_jatuh_tempo"),
	goqu.I("c.tanggal_kembali"),
	goqu.I("c.status"),
	goqu.I("c.denda"),
	goqu.I("c.jumlah_perpanjangan"),
	goqu.I("c.tanggal_perpanjangan"),
	goqu.I("s.nama").As("nama_siswa"),
	goqu.I("s.kelas"),
	goqu.I("b.judul").As("judul_buku"),
}

func loanSource() *goqu.SelectDataset {
	return dialect.From(goqu.T("sirkulasi").As("c")).
		Join(goqu.T("siswa").As("s"), goqu.On(goqu.I("s.nis").Eq(goqu.I("c.nis")))).
		Join(goqu.T("buku").As("b"), goqu.On(goqu.I("b.id_buku").Eq(goqu.I("c.id_buku"))))
}

// adminCirculationList is the admin circulation table: search over the
// borrower and title, filter by status.
func adminCirculationList() listQuery {
	return listQuery{
		from:    loanSource(),
		columns: loanColumns,
		search:  []string{"c.nis", "s.nama", "b.judul"},
		filters: FilterSpec{
			"status": equalTo("c.status"),
			"kelas":  equalTo("s.kelas"),
		},
		order: []exp.OrderedExpression{goqu.I("c.tanggal_pinjam").Desc(), goqu.I("c.id_sirkulasi").Desc()},
	}
}

// studentHistoryList is one student's own loans.
func studentHistoryList(nis string) listQuery {
	return listQuery{
		from:    loanSource(),
		columns: loanColumns,
		search:  []string{"b.judul"},
		filters: FilterSpec{"status": equalTo("c.status")},
		fixed:   []exp.Expression{goqu.I("c.nis").Eq(nis)},
		order:   []exp.OrderedExpression{goqu.I("c.tanggal_pinjam").Desc(), goqu.I("c.id_sirkulasi").Desc()},
	}
}

func (r *loanRepository) GetByID(ctx context.Context, id int64) (*domain.LoanView, error) {
	query, args, err := loanSource().
		Select(loanColumns...).
		Where(goqu.I("c.id_sirkulasi").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	var loan domain.LoanView
	if err := r.db.GetContext(ctx, &loan, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapNotFound("loan", id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.LoanView], error) {
	return fetchPage[domain.LoanView](ctx, r.db, adminCirculationList(), q)
}

func (r *loanRepository) ListByStudent(ctx context.Context, nis string, q pagination.Query) (*pagination.Page[domain.LoanView], error) {
	return fetchPage[domain.LoanView](ctx, r.db, studentHistoryList(nis), q)
}

func (r *loanRepository) CountByStatus(ctx context.Context) ([]domain.LoanStatusCount, error) {
	query := `
		SELECT status, COUNT(*) AS total
		FROM sirkulasi
		GROUP BY status
		ORDER BY status
	`

	var counts []domain.LoanStatusCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return counts, nil
}
