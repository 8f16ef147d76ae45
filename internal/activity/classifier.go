package activity

import (
	"strings"

	"github.com/rshade/ecotrack/internal/emissions"
)

// CategoryKeywords pairs a category with the keyword substrings that select it.
type CategoryKeywords struct {
	Category emissions.Category
	Keywords []string
}

// ClassificationRules lists categories in priority order. Classification
// stops at the first category with any matching keyword, even if a later
// category matches more keywords. Several keywords overlap on purpose
// ("shopping" is a food keyword, "laptop" is energy and shopping) and the
// order decides them.
//
//nolint:gochecknoglobals // Fixed rule table, read-only.
var ClassificationRules = []CategoryKeywords{
	{
		Category: emissions.CategoryTransport,
		Keywords: []string{
			"drove", "drive", "driving", "car", "uber", "lyft", "taxi", "bus", "train", "subway", "metro",
			"flight", "flew", "airplane", "plane", "walk", "walked", "bike", "biked", "cycling", "motorcycle",
			"commute", "travel", "trip", "miles", "km", "distance", "rode", "scooter",
		},
	},
	{
		Category: emissions.CategoryFood,
		Keywords: []string{
			"ate", "eat", "eating", "breakfast", "lunch", "dinner", "snack", "meal", "food", "drink", "drank",
			"coffee", "tea", "burger", "pizza", "salad", "chicken", "beef", "pork", "fish", "vegetarian",
			"vegan", "restaurant", "cooked", "cooking", "groceries", "shopping",
		},
	},
	{
		Category: emissions.CategoryEnergy,
		Keywords: []string{
			"electricity", "power", "heating", "cooling", "ac", "air conditioning", "heater", "lights", "tv",
			"computer", "laptop", "gaming", "charged", "charging", "kwh", "thermostat", "energy", "bill",
		},
	},
	{
		Category: emissions.CategoryShopping,
		Keywords: []string{
			"bought", "buy", "shopping", "purchased", "store", "online", "amazon", "clothes", "clothing",
			"shoes", "electronics", "phone", "laptop", "gadget", "item", "product", "retail", "mall",
		},
	},
	{
		Category: emissions.CategoryWaste,
		Keywords: []string{
			"threw away", "garbage", "trash", "recycled", "recycling", "composted", "waste", "disposed",
			"bin", "landfill", "paper", "plastic", "bottles", "bags", "food waste",
		},
	},
}

// Classify returns the first category in ClassificationRules with a keyword
// contained in the lowercased text, or emissions.CategoryGeneral.
func Classify(text string) emissions.Category {
	category, _ := ClassifyWithKeyword(text)
	return category
}

// ClassifyWithKeyword is Classify that also reports the keyword that decided
// the category. The keyword is empty for CategoryGeneral.
func ClassifyWithKeyword(text string) (emissions.Category, string) {
	lower := strings.ToLower(text)
	for _, rule := range ClassificationRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category, kw
			}
		}
	}
	return emissions.CategoryGeneral, ""
}
