package functions

import (
	"context"
	"fmt"
	"strings"

	"github.com/rohbot/rohbot/internal/agent"
	"github.com/rohbot/rohbot/internal/plans"
)

func CreatePlanSearchFunctionDeclaration(index *plans.Index) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:        "search_meal_plans",
		Description: "Searches previously saved meal-plan documents. Use this when the user asks about a plan that was created earlier, e.g. what was planned for a given day.",
		ParametersSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query describing what to look for in saved meal plans",
				},
			},
			"required": []string{"query"},
		},
		ResponseSchema: textResultSchema,
		FunctionCall: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			query := stringArg(args, "query")
			if query == "" {
				return textResult("Error searching meal plans: the query argument is required"), nil
			}

			results, err := index.Search(query, 3)
			if err != nil {
				return textResult("Error searching meal plans: " + err.Error()), nil
			}

			if len(results) == 0 {
				return textResult("Žádné uložené jídelníčky nebyly nalezeny."), nil
			}

			var sb strings.Builder
			for _, result := range results {
				fmt.Fprintf(&sb, "--- %s ---\n%s\n\n", result.Filename, result.Text)
			}
			return textResult(strings.TrimSpace(sb.String())), nil
		},
	}
}
