package functions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rohbot/rohbot/internal/agent"
	"github.com/rohbot/rohbot/internal/mcp"
	"github.com/rohbot/rohbot/internal/mealplan"
)

// NewRecipeLookup adapts the MCP client's name search into the
// renderer's lookup capability. At most the first match is used when
// the service returns several.
func NewRecipeLookup(client *mcp.Client) mealplan.LookupFunc {
	return func(ctx context.Context, name string) (*mealplan.Recipe, error) {
		recipes, err := client.SearchRecipeDetails(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(recipes) == 0 {
			return nil, nil
		}

		r := recipes[0]
		return &mealplan.Recipe{
			Name:        r.Name,
			MealType:    r.MealType,
			Diet:        r.Diet,
			Ingredients: r.Ingredients,
			Steps:       r.Steps,
		}, nil
	}
}

func CreateMealPlanFunctionDeclaration(renderer *mealplan.Renderer) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:        "create_meal_plan",
		Description: "Create a structured meal plan for multiple days, save it as a document and add its ingredients to the shopping list. Use this tool after composing a meal plan for several days ahead.",
		ParametersSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "Title of the meal plan, e.g. 'Vegetariánský jídelníček na 3 dny'",
				},
				"days": map[string]any{
					"type":        "array",
					"description": "Ordered list of days",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"day_name": map[string]any{
								"type":        "string",
								"description": "Label of the day, e.g. 'Den 1'",
							},
							"meals": map[string]any{
								"type": "array",
								"items": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"meal_type": map[string]any{
											"type":        "string",
											"description": "Meal type: 'snídaně', 'oběd', 'večeře' or 'svačina'",
										},
										"recipe_name": map[string]any{
											"type":        "string",
											"description": "Name of the recipe for this meal",
										},
									},
									"required": []string{"meal_type", "recipe_name"},
								},
							},
						},
						"required": []string{"day_name", "meals"},
					},
				},
			},
			"required": []string{"title", "days"},
		},
		ResponseSchema: textResultSchema,
		FunctionCall: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			plan, err := decodePlan(args)
			if err != nil {
				return textResult("Error creating meal plan: " + err.Error()), nil
			}

			return textResult(renderer.Create(ctx, plan)), nil
		},
	}
}

func decodePlan(args map[string]any) (mealplan.Plan, error) {
	data, err := json.Marshal(args)
	if err != nil {
		return mealplan.Plan{}, fmt.Errorf("encode arguments: %w", err)
	}

	var plan mealplan.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return mealplan.Plan{}, fmt.Errorf("decode arguments: %w", err)
	}

	if plan.Title == "" {
		return mealplan.Plan{}, fmt.Errorf("the title argument is required")
	}
	if len(plan.Days) == 0 {
		return mealplan.Plan{}, fmt.Errorf("the days argument must contain at least one day")
	}

	return plan, nil
}
