package dto

// ProductRequest accepts the price either as integer cents or as the text a
// user typed into a currency field ("R$ 1.500,00", "1500.00").
type ProductRequest struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	PriceCents *int64  `json:"price_cents"`
	Price      *string `json:"price"`
	CategoryID string  `json:"category_id"`
}

type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	PriceCents   int64  `json:"price_cents"`
	PriceDisplay string `json:"price_display"`
	CategoryID   string `json:"category_id"`
	OwnerID      string `json:"owner_id"`
}
