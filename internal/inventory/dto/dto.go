package dto

import "time"

type StockLine struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	PriceCents    int64  `json:"price_cents"`
	PriceDisplay  string `json:"price_display"`
	CategoryID    string `json:"category_id"`
	CategoryName  string `json:"category_name"`
	CategoryFound bool   `json:"category_found"`
	ValueCents    int64  `json:"value_cents"`
}

type StockView struct {
	Items             []StockLine `json:"items"`
	TotalProducts     int         `json:"total_products"`
	TotalQuantity     int         `json:"total_quantity"`
	TotalValueCents   int64       `json:"total_value_cents"`
	TotalValueDisplay string      `json:"total_value_display"`
}

// ScanEvent is what the scanner publishes after decoding a barcode.
type ScanEvent struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   ScanPayload `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type ScanPayload struct {
	OwnerID string `json:"owner_id"`
	Code    string `json:"code"`
}

type ScanOutcome struct {
	Code      string `json:"code"`
	ProductID string `json:"product_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}
