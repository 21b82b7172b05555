package costing

import (
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

func line(name string, grams, pricePerGram float64) domain.RecipeLine {
	return domain.RecipeLine{IngredientName: name, Grams: grams, PricePerGram: pricePerGram}
}

func kgIngredient(name string, qtyKg, pricePerKg float64) domain.Ingredient {
	return domain.Ingredient{Name: name, QuantityAvailable: qtyKg, Unit: domain.UnitKg, PricePerUnit: pricePerKg, Quality: 4}
}

func vendor(id, name string, ings ...domain.Ingredient) domain.Vendor {
	return domain.Vendor{ID: id, Name: name, Ingredients: ings}
}

// dayPack is a weekly SKU with only a Monday recipe.
func dayPack() domain.SKU {
	return domain.SKU{
		ID:                "sku-day",
		Name:              "Day Pack",
		Type:              domain.SKUTypeWeekly,
		TargetWeightGrams: 8,
		Recipes: map[domain.Weekday][]domain.RecipeLine{
			domain.Monday: {line("Almonds", 5, 0.5), line("Cashews", 3, 0.7)},
		},
	}
}

// fullWeek is a complete weekly SKU with the same two-line recipe every day.
func fullWeek() domain.SKU {
	sku := domain.SKU{
		ID:                "sku-week",
		Name:              "Full Week",
		Type:              domain.SKUTypeWeekly,
		TargetWeightGrams: 30,
		Recipes:           map[domain.Weekday][]domain.RecipeLine{},
	}
	for _, d := range domain.Weekdays {
		sku.Recipes[d] = []domain.RecipeLine{line("Almonds", 20, 0.6), line("Dates", 10, 0.25)}
	}
	return sku
}

func trailMix() domain.SKU {
	return domain.SKU{
		ID:           "sku-mix",
		Name:         "Trail Mix 500g",
		Type:         domain.SKUTypeSingle,
		UnitWeightKg: 0.5,
		Ingredients: []domain.RecipeLine{
			line("Almonds", 200, 0.6),
			line("Raisins", 300, 0.2),
		},
	}
}

func abcTraders() domain.Vendor {
	return vendor("v-abc", "ABC Traders",
		kgIngredient("Almonds", 500, 600),
		kgIngredient("Cashews", 200, 800),
	)
}
