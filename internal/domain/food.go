package domain

import (
	"math"
	"strings"
)

// FoodCategory is one of the five nutrition groups.
type FoodCategory string

const (
	FoodCarbohydrates FoodCategory = "carbohydrates"
	FoodProteins      FoodCategory = "proteins"
	FoodVegetables    FoodCategory = "vegetables"
	FoodEggs          FoodCategory = "eggs"
	FoodDairy         FoodCategory = "dairy"
)

// DefaultFoodCategory is used when no keyword matches.
const DefaultFoodCategory = FoodCarbohydrates

// CategoryRule maps a category to the substrings that select it.
type CategoryRule struct {
	Category FoodCategory
	Keywords []string
}

// FoodCategoryRules are evaluated in order and the first match wins, so a
// description mentioning both bread and chicken is carbohydrates.
// Keywords are lower case.
var FoodCategoryRules = []CategoryRule{
	{
		Category: FoodCarbohydrates,
		Keywords: []string{
			"pan", "arroz", "pasta", "papa", "patata", "cereal", "avena", "galleta",
			"harina", "maiz", "maíz", "fideo", "quinoa", "bread", "rice", "potato",
			"oatmeal", "noodle", "cracker",
		},
	},
	{
		Category: FoodProteins,
		Keywords: []string{
			"pollo", "carne", "pescado", "cerdo", "pavo", "atun", "atún", "salmon",
			"salmón", "jamon", "jamón", "lomo", "chicken", "beef", "fish", "pork",
			"turkey", "tuna", "meat",
		},
	},
	{
		Category: FoodVegetables,
		Keywords: []string{
			"lechuga", "tomate", "zanahoria", "brocoli", "brócoli", "espinaca",
			"verdura", "ensalada", "pepino", "calabacin", "calabacín", "cebolla",
			"lettuce", "tomato", "carrot", "broccoli", "spinach", "salad", "cucumber",
			"eggplant", "vegetable",
		},
	},
	{
		Category: FoodEggs,
		Keywords: []string{"huevo", "egg", "omelet"},
	},
	{
		Category: FoodDairy,
		Keywords: []string{"leche", "queso", "yogur", "mantequilla", "milk", "cheese", "yogurt", "butter"},
	},
}

// CaloriesPerGram holds the fixed per-gram energy factor of each category.
var CaloriesPerGram = map[FoodCategory]float64{
	FoodCarbohydrates: 1.3,
	FoodProteins:      1.5,
	FoodVegetables:    0.3,
	FoodEggs:          1.5,
	FoodDairy:         1.0,
}

var foodGlyphs = map[FoodCategory]string{
	FoodCarbohydrates: "🍞",
	FoodProteins:      "🍗",
	FoodVegetables:    "🥦",
	FoodEggs:          "🥚",
	FoodDairy:         "🥛",
}

// FoodCategories lists the categories in rule order.
func FoodCategories() []FoodCategory {
	categories := make([]FoodCategory, 0, len(FoodCategoryRules))
	for _, rule := range FoodCategoryRules {
		categories = append(categories, rule.Category)
	}
	return categories
}

// CategorizeFood picks a category for a free-text description.
func CategorizeFood(description string) FoodCategory {
	return categorizeWith(FoodCategoryRules, description)
}

func categorizeWith(rules []CategoryRule, description string) FoodCategory {
	text := strings.ToLower(description)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Category
			}
		}
	}
	return DefaultFoodCategory
}

// ParseFoodCategory validates an explicit category name.
func ParseFoodCategory(s string) (FoodCategory, error) {
	c := FoodCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidFoodType
	}
	return c, nil
}

// Valid reports whether c is one of the five categories.
func (c FoodCategory) Valid() bool {
	_, ok := CaloriesPerGram[c]
	return ok
}

// Glyph returns the display symbol tied to the category.
func (c FoodCategory) Glyph() string {
	return foodGlyphs[c]
}

// EstimateCalories returns round(grams * factor) for the category.
func EstimateCalories(grams float64, category FoodCategory) int {
	return int(math.Round(grams * CaloriesPerGram[category]))
}
