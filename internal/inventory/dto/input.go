package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type StockFilter struct {
	OwnerID string `json:"-"`
	// LowStock keeps only products with quantity at or below the threshold.
	LowStock *int `json:"low_stock"`
}

func (f StockFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.LowStock, validation.Min(0)),
	)
}

type ScanInput struct {
	OwnerID string `json:"owner_id"`
	Code    string `json:"code"`
}
