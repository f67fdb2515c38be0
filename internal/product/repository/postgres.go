package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/fekuna/gesstock-service/internal/money"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type productRow struct {
	ID         string          `db:"id"`
	Name       string          `db:"nome"`
	Quantity   int             `db:"quantidade"`
	Price      decimal.Decimal `db:"preco"`
	CategoryID string          `db:"categoria_id"`
	OwnerID    string          `db:"user_id"`
}

func toRow(p *model.Product) productRow {
	return productRow{
		ID:         p.ID,
		Name:       p.Name,
		Quantity:   p.Quantity,
		Price:      money.CentsToUnits(p.PriceCents),
		CategoryID: p.CategoryID,
		OwnerID:    p.OwnerID,
	}
}

func (row productRow) toModel() (model.Product, error) {
	cents, err := money.UnitsToCents(row.Price)
	if err != nil {
		return model.Product{}, fmt.Errorf("product %s: %w", row.ID, err)
	}
	return model.Product{
		ID:         row.ID,
		Name:       row.Name,
		Quantity:   row.Quantity,
		PriceCents: cents,
		CategoryID: row.CategoryID,
		OwnerID:    row.OwnerID,
	}, nil
}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO produtos (id, nome, quantidade, preco, categoria_id, user_id)
        VALUES (:id, :nome, :quantidade, :preco, :categoria_id, :user_id)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, toRow(p)); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context, ownerID string) ([]model.Product, error) {
	var rows []productRow
	query := `
        SELECT id, nome, quantidade, preco, categoria_id, user_id
        FROM produtos
        WHERE user_id = $1
        ORDER BY created_at, id
    `
	if err := r.DB.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]model.Product, len(rows))
	for i, row := range rows {
		p, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products[i] = p
	}
	return products, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE produtos
        SET nome = :nome, quantidade = :quantidade, preco = :preco, categoria_id = :categoria_id
        WHERE id = :id AND user_id = :user_id
    `
	res, err := r.DB.NamedExecContext(ctx, query, toRow(p))
	if err != nil {
		return fmt.Errorf("update product %s: %w", p.ID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product %s: %w", p.ID, err)
	}
	if rows == 0 {
		return fmt.Errorf("update product %s: %w", p.ID, apperror.ErrNotFound)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM produtos WHERE id = $1 AND user_id = $2", id, ownerID); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}
