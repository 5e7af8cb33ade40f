package models

// Category is the canonical tag of a spending/income classification.
// The taxonomy is closed: every free-text label resolves to exactly one
// of these tags, with CategoryOther as the fallback.
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryFuel          Category = "FUEL"
	CategoryBills         Category = "BILLS"
	CategoryShopping      Category = "SHOPPING"
	CategoryLoan          Category = "LOAN"
	CategorySavings       Category = "SAVINGS"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryOther         Category = "OTHER"
)

// Categories lists every canonical category in declaration order.
var Categories = []Category{
	CategoryFood,
	CategoryFuel,
	CategoryBills,
	CategoryShopping,
	CategoryLoan,
	CategorySavings,
	CategoryEntertainment,
	CategoryOther,
}

// CategoryMeta carries the presentation metadata of a category. It is kept
// separate from the tag so core logic never depends on display values.
type CategoryMeta struct {
	Display string
	Color   string // hex RGB, no leading '#'
}

// categoryMeta maps each canonical tag to its display metadata.
var categoryMeta = map[Category]CategoryMeta{
	CategoryFood:          {Display: "Food", Color: "FF9800"},
	CategoryFuel:          {Display: "Fuel", Color: "F44336"},
	CategoryBills:         {Display: "Bills", Color: "2196F3"},
	CategoryShopping:      {Display: "Shopping", Color: "9C27B0"},
	CategoryLoan:          {Display: "Loan", Color: "795548"},
	CategorySavings:       {Display: "Savings", Color: "4CAF50"},
	CategoryEntertainment: {Display: "Entertainment", Color: "E91E63"},
	CategoryOther:         {Display: "Other", Color: "9E9E9E"},
}

// Meta returns the display metadata for the category. Unknown tags get the
// OTHER metadata so callers always have something to render.
func (c Category) Meta() CategoryMeta {
	if meta, ok := categoryMeta[c]; ok {
		return meta
	}
	return categoryMeta[CategoryOther]
}

// Display returns the human-readable label of the category.
func (c Category) Display() string {
	return c.Meta().Display
}
