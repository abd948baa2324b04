package models

// Product is a catalog entry within a business.
type Product struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Price     float64        `json:"price"`
	CostPrice float64        `json:"cost_price"`
	Category  string         `json:"category"`
	Attrs     map[string]any `json:"attributes,omitempty"`
}
