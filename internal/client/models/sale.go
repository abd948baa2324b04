package models

// SalesRecord is one cleaned sales row within a business.
type SalesRecord struct {
	ID       int64   `json:"id"`
	Product  int64   `json:"product"`
	Quantity int     `json:"quantity"`
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Channel  string  `json:"channel"`
}
