package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

type bookRepository struct {
	db *sqlx.DB
}

func NewBookRepository(db *sqlx.DB) BookRepository {
	return &bookRepository{db: db}
}

var bookColumns = []any{
	goqu.I("b.id_buku"),
	goqu.I("b.judul"),
	goqu.I("b.penulis"),
	goqu.I("b.penerbit"),
	goqu.I("b.tahun_terbit"),
	goqu.I("b.isbn"),
	goqu.I("b.id_kategori"),
	goqu.I("k.nama_kategori"),
	goqu.I("b.stok"),
	goqu.I("b.lokasi_rak"),
	goqu.I("b.gambar"),
	goqu.I("b.deskripsi"),
	goqu.I("b.created_at"),
}

func bookSource() *goqu.SelectDataset {
	return dialect.From(goqu.T("buku").As("b")).
		LeftJoin(goqu.T("kategori").As("k"), goqu.On(goqu.I("k.id_kategori").Eq(goqu.I("b.id_kategori"))))
}

func bookList() listQuery {
	return listQuery{
		from:    bookSource(),
		columns: bookColumns,
		search:  []string{"b.judul", "b.penulis", "b.isbn"},
		filters: FilterSpec{
			"kategori": equalTo("b.id_kategori"),
			"penerbit": contains("b.penerbit"),
		},
		order: []exp.OrderedExpression{goqu.I("b.judul").Asc(), goqu.I("b.id_buku").Asc()},
	}
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	query, args, err := bookSource().
		Select(bookColumns...).
		Where(goqu.I("b.id_buku").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	var book domain.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapNotFound("book", id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Book], error) {
	return fetchPage[domain.Book](ctx, r.db, bookList(), q)
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	query := `
		INSERT INTO buku (judul, penulis, penerbit, tahun_terbit, isbn, id_kategori, stok, lokasi_rak, gambar, deskripsi)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id_buku, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		book.Title,
		book.Author,
		book.Publisher,
		book.Year,
		book.ISBN,
		book.CategoryID,
		book.Stock,
		book.Shelf,
		book.Cover,
		book.Description,
	).Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		return mapWriteError(err, "book", book.Title)
	}

	return nil
}

func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	query := `
		UPDATE buku
		SET judul = $2, penulis = $3, penerbit = $4, tahun_terbit = $5, isbn = $6,
		    id_kategori = $7, stok = $8, lokasi_rak = $9, gambar = $10, deskripsi = $11
		WHERE id_buku = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Publisher,
		book.Year,
		book.ISBN,
		book.CategoryID,
		book.Stock,
		book.Shelf,
		book.Cover,
		book.Description,
	)
	if err != nil {
		return mapWriteError(err, "book", book.ID)
	}

	return expectAffected(result, "book", book.ID)
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM buku WHERE id_buku = $1`, id)
	if err != nil {
		return mapWriteError(err, "book", id)
	}

	return expectAffected(result, "book", id)
}

func (r *bookRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id_kategori, nama_kategori FROM kategori ORDER BY nama_kategori`

	var categories []domain.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	return categories, nil
}

func (r *bookRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	query := `INSERT INTO kategori (nama_kategori) VALUES ($1) RETURNING id_kategori`

	if err := r.db.QueryRowxContext(ctx, query, category.Name).Scan(&category.ID); err != nil {
		return mapWriteError(err, "category", category.Name)
	}

	return nil
}

func (r *bookRepository) DeleteCategory(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM kategori WHERE id_kategori = $1`, id)
	if err != nil {
		return mapWriteError(err, "category", id)
	}

	return expectAffected(result, "category", id)
}

// mapWriteError turns constraint violations into business errors. A
// foreign key violation on delete means the row is still referenced.
func mapWriteError(err error, entity string, id any) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgerrcode.UniqueViolation:
			return customError.WrapAlreadyExists(entity, id)
		case pgerrcode.ForeignKeyViolation:
			return customError.NewBusinessError(customError.ErrCodeValidation, pqErr.Message, err)
		}
	}
	return customError.WrapDatabaseError(err)
}
