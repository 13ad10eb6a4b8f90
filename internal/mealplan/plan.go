// Package mealplan turns a structured multi-day plan into console text
// and a durable markdown document.
package mealplan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Meal is one dish slot within a day.
type Meal struct {
	Type       string `json:"meal_type"`
	RecipeName string `json:"recipe_name"`
}

// Day is one labeled day of a plan.
type Day struct {
	Name  string `json:"day_name"`
	Meals []Meal `json:"meals"`
}

// Plan is a titled, ordered multi-day meal plan.
type Plan struct {
	Title string `json:"title"`
	Days  []Day  `json:"days"`
}

// Recipe is the enriched detail fetched for a plan entry.
type Recipe struct {
	Name        string   `json:"name"`
	MealType    string   `json:"meal_type,omitempty"`
	Diet        string   `json:"diet,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Steps       string   `json:"steps,omitempty"`
}

// Canonical meal-type order. Types outside this list are accepted and
// rendered after it, in the order they were encountered.
var mealOrder = []string{"snídaně", "oběd", "večeře", "svačina"}

var mealIcons = map[string]string{
	"snídaně": "🥐",
	"oběd":    "🍽️",
	"večeře":  "🌙",
	"svačina": "🍪",
}

const defaultMealIcon = "🍽️"

func mealIcon(mealType string) string {
	if icon, ok := mealIcons[mealType]; ok {
		return icon
	}
	return defaultMealIcon
}

// mealLine groups every recipe of one meal type within a day.
type mealLine struct {
	Type    string
	Recipes []string
}

// orderedMeals groups a day's meals by type: canonical types first in
// canonical order, then unknown types in encounter order.
func orderedMeals(day Day) []mealLine {
	byType := make(map[string][]string)
	var encounter []string
	for _, meal := range day.Meals {
		if _, seen := byType[meal.Type]; !seen {
			encounter = append(encounter, meal.Type)
		}
		byType[meal.Type] = append(byType[meal.Type], meal.RecipeName)
	}

	canonical := make(map[string]bool, len(mealOrder))
	var lines []mealLine
	for _, mealType := range mealOrder {
		canonical[mealType] = true
		if recipes, ok := byType[mealType]; ok {
			lines = append(lines, mealLine{Type: mealType, Recipes: recipes})
		}
	}
	for _, mealType := range encounter {
		if !canonical[mealType] {
			lines = append(lines, mealLine{Type: mealType, Recipes: byType[mealType]})
		}
	}

	return lines
}

// recipeNames returns the distinct recipe names referenced anywhere in
// the plan, in encounter order.
func (p Plan) recipeNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, day := range p.Days {
		for _, meal := range day.Meals {
			if meal.RecipeName == "" || seen[meal.RecipeName] {
				continue
			}
			seen[meal.RecipeName] = true
			names = append(names, meal.RecipeName)
		}
	}
	return names
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// dayCountWord returns the Czech count word for days: 1 den, 2-4 dny,
// otherwise dní.
func dayCountWord(n int) string {
	switch {
	case n == 1:
		return "den"
	case n >= 2 && n <= 4:
		return "dny"
	default:
		return "dní"
	}
}

func joinRecipes(recipes []string) string {
	return strings.Join(recipes, ", ")
}
