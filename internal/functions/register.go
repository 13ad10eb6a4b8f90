package functions

import (
	"github.com/rohbot/rohbot/internal/agent"
	"github.com/rohbot/rohbot/internal/mcp"
	"github.com/rohbot/rohbot/internal/mealplan"
	"github.com/rohbot/rohbot/internal/plans"
)

// RegisterAll wires the full tool set onto the agent: recipe search,
// shopping-list management, meal-plan creation and saved-plan search.
// plansDir is both where new plans are written and where the plan
// search looks.
func RegisterAll(a *agent.Agent, client *mcp.Client, plansDir string) error {
	renderer := mealplan.NewRenderer(NewRecipeLookup(client), client, plansDir)
	index := plans.NewIndex(plansDir)

	declarations := []*agent.FunctionDeclaration{
		CreateSearchRecipesFunctionDeclaration(client),
		CreateGetAllRecipesFunctionDeclaration(client),
		CreateAddIngredientsFunctionDeclaration(client),
		CreateRemoveIngredientsFunctionDeclaration(client),
		CreateGetShoppingListFunctionDeclaration(client),
		CreateClearShoppingListFunctionDeclaration(client),
		CreateMealPlanFunctionDeclaration(renderer),
		CreatePlanSearchFunctionDeclaration(index),
	}

	for _, declaration := range declarations {
		if err := a.AddFunctionCall(declaration); err != nil {
			return err
		}
	}

	return nil
}
