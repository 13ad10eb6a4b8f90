package functions

import (
	"context"

	"github.com/rohbot/rohbot/internal/agent"
	"github.com/rohbot/rohbot/internal/mcp"
)

var ingredientsParametersSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"ingredients": map[string]any{
			"type":        "array",
			"description": "Array of ingredient names to add/remove from shopping list",
			"items":       map[string]any{"type": "string"},
		},
	},
	"required": []string{"ingredients"},
}

func CreateAddIngredientsFunctionDeclaration(client *mcp.Client) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:             "add_ingredients_to_shopping_list",
		Description:      "Add multiple ingredients to the shopping list. Useful when planning meals or when users want to add specific items.",
		ParametersSchema: ingredientsParametersSchema,
		ResponseSchema:   textResultSchema,
		FunctionCall: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			ingredients := stringSliceArg(args, "ingredients")
			if len(ingredients) == 0 {
				return textResult("Error adding ingredients: the ingredients list is empty"), nil
			}

			result, err := client.AddIngredients(ctx, ingredients)
			if err != nil {
				return textResult("Error adding ingredients: " + err.Error()), nil
			}

			return textResult(result), nil
		},
	}
}

func CreateRemoveIngredientsFunctionDeclaration(client *mcp.Client) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:             "remove_ingredients_from_shopping_list",
		Description:      "Remove specific ingredients from the shopping list. Ingredients not in the list will be ignored. Useful for editing the shopping list or when the user decides not to want some items.",
		ParametersSchema: ingredientsParametersSchema,
		ResponseSchema:   textResultSchema,
		FunctionCall: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			ingredients := stringSliceArg(args, "ingredients")
			if len(ingredients) == 0 {
				return textResult("Error removing ingredients: the ingredients list is empty"), nil
			}

			result, err := client.RemoveIngredients(ctx, ingredients)
			if err != nil {
				return textResult("Error removing ingredients: " + err.Error()), nil
			}

			return textResult(result), nil
		},
	}
}

func CreateGetShoppingListFunctionDeclaration(client *mcp.Client) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:           "get_shopping_list",
		Description:    "Returns the content of the current shopping list with all items.",
		ResponseSchema: textResultSchema,
		FunctionCall: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			result, err := client.GetShoppingList(ctx)
			if err != nil {
				return textResult("Error getting shopping list: " + err.Error()), nil
			}

			return textResult(result), nil
		},
	}
}

func CreateClearShoppingListFunctionDeclaration(client *mcp.Client) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:           "clear_shopping_list",
		Description:    "Remove all items from the shopping list. Use when the user wants to start over or has completed shopping.",
		ResponseSchema: textResultSchema,
		FunctionCall: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			result, err := client.ClearShoppingList(ctx)
			if err != nil {
				return textResult("Error clearing shopping list: " + err.Error()), nil
			}

			return textResult(result), nil
		},
	}
}
