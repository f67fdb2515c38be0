package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const uniqueViolation = "23505"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categorias (id, nome, user_id)
        VALUES (:id, :nome, :user_id)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, c); err != nil {
		return fmt.Errorf("create category: %w", mapPGError(err))
	}
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context, ownerID string) ([]model.Category, error) {
	categories := []model.Category{}
	query := `SELECT id, nome, user_id FROM categorias WHERE user_id = $1 ORDER BY created_at, id`
	if err := r.DB.SelectContext(ctx, &categories, query, ownerID); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categorias
        SET nome = :nome
        WHERE id = :id AND user_id = :user_id
    `
	res, err := r.DB.NamedExecContext(ctx, query, c)
	if err != nil {
		return fmt.Errorf("update category %s: %w", c.ID, mapPGError(err))
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category %s: %w", c.ID, err)
	}
	if rows == 0 {
		return fmt.Errorf("update category %s: %w", c.ID, apperror.ErrNotFound)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM categorias WHERE id = $1 AND user_id = $2", id, ownerID); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}

func mapPGError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperror.ErrAlreadyExists
	}
	return err
}
