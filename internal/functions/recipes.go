package functions

import (
	"context"

	"github.com/rohbot/rohbot/internal/agent"
	"github.com/rohbot/rohbot/internal/mcp"
)

func CreateSearchRecipesFunctionDeclaration(client *mcp.Client) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:        "search_recipes",
		Description: "Search for recipes by diet, meal type, or name. Parameters can be combined. Useful when you want to find recipes by specific criteria. If no recipes are found, you can use the get_all_recipes tool.",
		ParametersSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"diet": map[string]any{
					"type":        "string",
					"description": "Filter recipes by diet or food category. Options: 'bez laktozy', 'bezlepkové', 'high-protein', 'low-carb', 'masité', 'tučné', 'vegan', 'vegetarian'",
				},
				"meal_type": map[string]any{
					"type":        "string",
					"description": "Filter recipes by meal type. Options: 'desert', 'dochucovadlo', 'hlavní chod', 'polévka', 'pomazánka', 'předkrm', 'příloha', 'salát', 'snídaně'",
				},
				"name": map[string]any{
					"type":        "string",
					"description": "Search recipes by name (partial match)",
				},
			},
		},
		ResponseSchema: textResultSchema,
		FunctionCall: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			filter := mcp.SearchFilter{
				Diet:     stringArg(args, "diet"),
				MealType: stringArg(args, "meal_type"),
				Name:     stringArg(args, "name"),
			}

			result, err := client.SearchRecipes(ctx, filter)
			if err != nil {
				return textResult("Error searching recipes: " + err.Error()), nil
			}

			return textResult(result), nil
		},
	}
}

func CreateGetAllRecipesFunctionDeclaration(client *mcp.Client) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:           "get_all_recipes",
		Description:    "Returns a list of all available recipes in the database. The recipe list is quite long, so use this tool only if you don't find any recipes through the search_recipes tool.",
		ResponseSchema: textResultSchema,
		FunctionCall: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			result, err := client.GetAllRecipes(ctx)
			if err != nil {
				return textResult("Error getting recipes: " + err.Error()), nil
			}

			return textResult(result), nil
		},
	}
}
