package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/fekuna/gesstock-service/internal/money"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type stockRow struct {
	ID           string          `db:"id"`
	Name         string          `db:"nome"`
	Quantity     int             `db:"quantidade"`
	Price        decimal.Decimal `db:"preco"`
	CategoryID   string          `db:"categoria_id"`
	OwnerID      string          `db:"user_id"`
	CategoryName sql.NullString  `db:"categoria_nome"`
}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListStock(ctx context.Context, ownerID string) ([]model.StockItem, error) {
	var rows []stockRow
	query := `
        SELECT p.id, p.nome, p.quantidade, p.preco, p.categoria_id, p.user_id,
               c.nome AS categoria_nome
        FROM produtos p
        LEFT JOIN categorias c ON c.id = p.categoria_id AND c.user_id = p.user_id
        WHERE p.user_id = $1
        ORDER BY p.created_at, p.id
    `
	if err := r.DB.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}

	items := make([]model.StockItem, len(rows))
	for i, row := range rows {
		item, err := row.toStockItem()
		if err != nil {
			return nil, fmt.Errorf("list stock: %w", err)
		}
		items[i] = item
	}
	return items, nil
}

func (row stockRow) toStockItem() (model.StockItem, error) {
	cents, err := money.UnitsToCents(row.Price)
	if err != nil {
		return model.StockItem{}, fmt.Errorf("product %s: %w", row.ID, err)
	}
	return model.StockItem{
		Product: model.Product{
			ID:         row.ID,
			Name:       row.Name,
			Quantity:   row.Quantity,
			PriceCents: cents,
			CategoryID: row.CategoryID,
			OwnerID:    row.OwnerID,
		},
		CategoryName:  row.CategoryName.String,
		CategoryFound: row.CategoryName.Valid,
	}, nil
}
