package workout

// Category classifies an exercise.
type Category string

const (
	CategoryStrength    Category = "strength"
	CategoryCardio      Category = "cardio"
	CategoryFlexibility Category = "flexibility"
	CategoryBalance     Category = "balance"
	CategorySports      Category = "sports"
	CategoryFunctional  Category = "functional"
	CategoryCore        Category = "core"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryStrength,
		CategoryCardio,
		CategoryFlexibility,
		CategoryBalance,
		CategorySports,
		CategoryFunctional,
		CategoryCore,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable name for a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryStrength:
		return "Strength"
	case CategoryCardio:
		return "Cardio"
	case CategoryFlexibility:
		return "Flexibility"
	case CategoryBalance:
		return "Balance"
	case CategorySports:
		return "Sports"
	case CategoryFunctional:
		return "Functional"
	case CategoryCore:
		return "Core"
	default:
		return string(c)
	}
}
