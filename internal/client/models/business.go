package models

// Business is a tenant scope owned by the user. All product, sales and
// campaign calls are addressed by its slug.
type Business struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Industry string `json:"industry"`
	Location string `json:"location"`
}
