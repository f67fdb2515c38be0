package model

// StockItem is a product joined with the name of its category. CategoryName
// is empty and CategoryFound false when the category was deleted or never
// existed.
type StockItem struct {
	Product       Product
	CategoryName  string
	CategoryFound bool
}
