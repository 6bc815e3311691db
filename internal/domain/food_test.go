package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeFood(t *testing.T) {
	tests := []struct {
		description string
		expected    FoodCategory
	}{
		{"pollo", FoodProteins},
		{"Pollo a la plancha", FoodProteins},
		{"sandwich de pollo con pan", FoodCarbohydrates},
		{"arroz con leche", FoodCarbohydrates},
		{"ensalada de lechuga y tomate", FoodVegetables},
		{"pollo con ensalada", FoodProteins},
		{"huevo duro", FoodEggs},
		{"Eggplant parmesan", FoodVegetables},
		{"queso fresco", FoodDairy},
		{"yogur natural", FoodDairy},
		{"lentejas", FoodCarbohydrates},
		{"", FoodCarbohydrates},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeFood(tt.description))
		})
	}
}

func TestCategorizeWithCustomRules(t *testing.T) {
	rules := []CategoryRule{
		{Category: FoodDairy, Keywords: []string{"kefir"}},
		{Category: FoodProteins, Keywords: []string{"tofu"}},
	}
	assert.Equal(t, FoodDairy, categorizeWith(rules, "Kefir with tofu"))
	assert.Equal(t, FoodProteins, categorizeWith(rules, "tofu"))
	assert.Equal(t, DefaultFoodCategory, categorizeWith(rules, "apple"))
}

func TestFoodCategoryRuleOrder(t *testing.T) {
	assert.Equal(t, []FoodCategory{FoodCarbohydrates, FoodProteins, FoodVegetables, FoodEggs, FoodDairy}, FoodCategories())
	for _, rule := range FoodCategoryRules {
		assert.NotEmpty(t, rule.Keywords, rule.Category)
		assert.NotEmpty(t, rule.Category.Glyph(), rule.Category)
	}
}

func TestEstimateCalories(t *testing.T) {
	assert.Equal(t, 130, EstimateCalories(100, FoodCarbohydrates))
	assert.Equal(t, 225, EstimateCalories(150, FoodProteins))
	assert.Equal(t, 60, EstimateCalories(200, FoodVegetables))
	assert.Equal(t, 75, EstimateCalories(50, FoodEggs))
	assert.Equal(t, 250, EstimateCalories(250, FoodDairy))
	assert.Equal(t, 2, EstimateCalories(1.5, FoodCarbohydrates))
}

func TestParseFoodCategory(t *testing.T) {
	c, err := ParseFoodCategory(" Dairy ")
	require.NoError(t, err)
	assert.Equal(t, FoodDairy, c)

	_, err = ParseFoodCategory("sweets")
	assert.ErrorIs(t, err, ErrInvalidFoodType)
	assert.Equal(t, "Invalid food type", ErrInvalidFoodType.Message)
}
