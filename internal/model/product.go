package model

import (
	"encoding/json"
	"fmt"

	"github.com/fekuna/gesstock-service/internal/money"
	"github.com/shopspring/decimal"
)

// Product keeps its price in cents. On disk the price is stored as `preco`,
// a decimal number of whole currency units.
type Product struct {
	ID         string
	Name       string
	Quantity   int
	PriceCents int64
	CategoryID string
	OwnerID    string
}

type productDocument struct {
	ID         string      `json:"id"`
	Name       string      `json:"nome"`
	Quantity   int         `json:"quantidade"`
	Price      json.Number `json:"preco"`
	CategoryID string      `json:"categoriaId"`
	OwnerID    string      `json:"userId"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productDocument{
		ID:         p.ID,
		Name:       p.Name,
		Quantity:   p.Quantity,
		Price:      json.Number(money.CentsToUnits(p.PriceCents).String()),
		CategoryID: p.CategoryID,
		OwnerID:    p.OwnerID,
	})
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var doc productDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var cents int64
	if doc.Price != "" {
		units, err := decimal.NewFromString(doc.Price.String())
		if err != nil {
			return fmt.Errorf("product %s: invalid preco %q: %w", doc.ID, doc.Price, err)
		}
		cents, err = money.UnitsToCents(units)
		if err != nil {
			return fmt.Errorf("product %s: invalid preco %q: %w", doc.ID, doc.Price, err)
		}
	}

	*p = Product{
		ID:         doc.ID,
		Name:       doc.Name,
		Quantity:   doc.Quantity,
		PriceCents: cents,
		CategoryID: doc.CategoryID,
		OwnerID:    doc.OwnerID,
	}
	return nil
}
