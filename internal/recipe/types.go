package recipe

import "time"

// Recipe is a single catalog entry. It is the canonical type for storage,
// the HTTP API, the push channel, and display.
type Recipe struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string    `json:"category,omitempty" yaml:"category,omitempty"`
	Ingredients []string  `json:"ingredients" yaml:"ingredients"`
	Steps       []string  `json:"steps" yaml:"steps"`
	CookMinutes int       `json:"cookMinutes,omitempty" yaml:"cookMinutes,omitempty"`
	Servings    int       `json:"servings,omitempty" yaml:"servings,omitempty"`
	Custom      bool      `json:"custom,omitempty" yaml:"custom,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Draft is the payload for create and update operations. The store assigns
// ID and timestamps.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Steps       []string `json:"steps,omitempty"`
	CookMinutes int      `json:"cookMinutes,omitempty"`
	Servings    int      `json:"servings,omitempty"`
}

// Draft returns the editable fields of r, for round-tripping through the
// form screen.
func (r Recipe) Draft() Draft {
	return Draft{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Ingredients: append([]string(nil), r.Ingredients...),
		Steps:       append([]string(nil), r.Steps...),
		CookMinutes: r.CookMinutes,
		Servings:    r.Servings,
	}
}
