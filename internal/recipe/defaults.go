package recipe

// Shared defaults used by both the server and CLI binaries.
const (
	DefaultServings = 2
	DefaultCategory = "Other"
)

// KnownCategories is the curated category set. Normalize maps
// case-insensitive matches onto these spellings; unknown categories pass
// through title-cased.
var KnownCategories = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Dessert",
	"Snack",
	"Drink",
	"Other",
}
