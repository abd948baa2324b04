package models

// Campaign is a generated marketing campaign. Payload holds whatever the
// generator produced (captions, ad copy, calendar) keyed by section.
type Campaign struct {
	ID        int64          `json:"id"`
	Goal      string         `json:"goal"`
	Budget    float64        `json:"budget"`
	Payload   map[string]any `json:"payload"`
	CreatedAt string         `json:"created_at"`
}
