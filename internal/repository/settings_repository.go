package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

// librarySettingsID is the single row of pengaturan_perpustakaan.
const librarySettingsID = 1

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetLibraryStatus(ctx context.Context) (*domain.LibraryStatus, error) {
	query := `
		SELECT status, COALESCE(keterangan, '') AS keterangan, updated_at
		FROM pengaturan_perpustakaan
		WHERE id = $1
	`

	var status domain.LibraryStatus
	if err := r.db.GetContext(ctx, &status, query, librarySettingsID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapNotFound("library status", librarySettingsID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return &status, nil
}

func (r *settingsRepository) SetLibraryStatus(ctx context.Context, status *domain.LibraryStatus) error {
	query := `
		INSERT INTO pengaturan_perpustakaan (id, status, keterangan, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, keterangan = EXCLUDED.keterangan, updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(ctx, query, librarySettingsID, status.Status, status.Note).Scan(&status.UpdatedAt); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}
