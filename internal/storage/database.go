package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mkravets/link-shortener/internal/config"
	"github.com/mkravets/link-shortener/internal/models"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var schema = `
	CREATE TABLE IF NOT EXISTS links (
		id uuid PRIMARY KEY,
		owner_id uuid NOT NULL,
		short_url TEXT NOT NULL UNIQUE,
		original_url TEXT NOT NULL,
		created_at timestamptz NOT NULL,
		expires_at timestamptz NOT NULL,
		stats bigint NOT NULL DEFAULT 0,
		status TEXT NOT NULL
	)
`

type DatabaseStore struct {
	DB *sqlx.DB
}

func (store *DatabaseStore) Initialize() error {
	var err error
	store.DB, err = sqlx.Connect("pgx", config.Current.DatabaseDSN)
	if err != nil {
		return err
	}

	_, err = store.DB.Exec(schema)
	if err != nil {
		return err
	}

	return nil
}

func (store *DatabaseStore) FindByShortURL(ctx context.Context, shortURL string) (*models.Link, error) {
	var link models.Link
	err := store.DB.GetContext(ctx, &link, `SELECT * FROM links WHERE short_url = $1`, shortURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (store *DatabaseStore) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Link, error) {
	var links []models.Link
	err := store.DB.SelectContext(ctx, &links, `SELECT * FROM links WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (store *DatabaseStore) FindAllActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Link, error) {
	var links []models.Link
	err := store.DB.SelectContext(ctx, &links,
		`SELECT * FROM links WHERE owner_id = $1 AND status = $2`, ownerID, models.StatusActive)
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (store *DatabaseStore) Insert(ctx context.Context, link *models.Link) error {
	tx, err := store.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamed(`
		INSERT INTO links (id, owner_id, short_url, original_url, created_at, expires_at, stats, status)
		VALUES (:id, :owner_id, :short_url, :original_url, :created_at, :expires_at, :stats, :status)
	`)
	if err != nil {
		return err
	}

	if _, err = stmt.Exec(link); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

func (store *DatabaseStore) Update(ctx context.Context, link *models.Link) error {
	_, err := store.DB.NamedExecContext(ctx, `
		UPDATE links
		SET short_url = :short_url,
			original_url = :original_url,
			expires_at = :expires_at,
			stats = :stats,
			status = :status
		WHERE id = :id
	`, link)
	return err
}

func (store *DatabaseStore) Delete(ctx context.Context, link *models.Link) error {
	_, err := store.DB.ExecContext(ctx, `DELETE FROM links WHERE id = $1`, link.ID)
	return err
}

func (store *DatabaseStore) ShortURLExists(ctx context.Context, shortURL string) (bool, error) {
	var exists bool
	err := store.DB.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM links WHERE short_url = $1)`, shortURL)
	if err != nil {
		return false, err
	}
	return exists, nil
}
