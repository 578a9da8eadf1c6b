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

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) StudentRepository {
	return &studentRepository{db: db}
}

func studentList() listQuery {
	return listQuery{
		from: dialect.From(goqu.T("siswa")),
		columns: []any{
			"nis", "nama", "kelas", "email", "total_pinjam", "sedang_pinjam",
			"max_peminjaman", "total_denda", "status", "status_peminjaman", "created_at",
		},
		search: []string{"nis", "nama"},
		filters: FilterSpec{
			"kelas":             equalTo("kelas"),
			"status":            equalTo("status"),
			"status_peminjaman": equalTo("status_peminjaman"),
		},
		order: []exp.OrderedExpression{goqu.I("nama").Asc(), goqu.I("nis").Asc()},
	}
}

func (r *studentRepository) GetByNIS(ctx context.Context, nis string) (*domain.Student, error) {
	query := `
		SELECT nis, nama, kelas, email, password, total_pinjam, sedang_pinjam, max_peminjaman,
		       total_denda, status, status_peminjaman, created_at
		FROM siswa
		WHERE nis = $1
	`

	var student domain.Student
	if err := r.db.GetContext(ctx, &student, query, nis); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapNotFound("student", nis)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return &student, nil
}

func (r *studentRepository) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Student], error) {
	return fetchPage[domain.Student](ctx, r.db, studentList(), q)
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	query := `
		INSERT INTO siswa (nis, nama, kelas, email, password, max_peminjaman, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING total_pinjam, sedang_pinjam, total_denda, status_peminjaman, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		student.NIS,
		student.Name,
		student.Class,
		student.Email,
		student.PasswordHash,
		student.MaxLoans,
		student.Status,
	).Scan(&student.TotalLoans, &student.ActiveLoans, &student.TotalFine, &student.BorrowingStatus, &student.CreatedAt)
	if err != nil {
		return mapWriteError(err, "student", student.NIS)
	}

	return nil
}

// Update writes the profile fields only; counters belong to the procedures.
func (r *studentRepository) Update(ctx context.Context, student *domain.Student) error {
	query := `
		UPDATE siswa
		SET nama = $2, kelas = $3, email = $4, password = $5, max_peminjaman = $6
		WHERE nis = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		student.NIS,
		student.Name,
		student.Class,
		student.Email,
		student.PasswordHash,
		student.MaxLoans,
	)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return expectAffected(result, "student", student.NIS)
}

func (r *studentRepository) UpdateStatus(ctx context.Context, nis string, status domain.StudentStatus) error {
	query := `UPDATE siswa SET status = $2 WHERE nis = $1`

	result, err := r.db.ExecContext(ctx, query, nis, status)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return expectAffected(result, "student", nis)
}

func (r *studentRepository) CountByStatus(ctx context.Context, status domain.StudentStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM siswa WHERE status = $1`

	var total int64
	if err := r.db.GetContext(ctx, &total, query, status); err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	return total, nil
}

func expectAffected(result sql.Result, entity string, id any) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if affected == 0 {
		return customError.WrapNotFound(entity, id)
	}
	return nil
}
