package functions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rohbot/rohbot/internal/mcp"
)

func resultText(t *testing.T, result map[string]any) string {
	t.Helper()
	text, ok := result["result"].(string)
	if !ok {
		t.Fatalf("Expected textual result, got %v", result)
	}
	return text
}

func failingClient(t *testing.T) *mcp.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	return mcp.NewClient(server.URL)
}

func TestToolErrorsBecomeResultText(t *testing.T) {
	client := failingClient(t)

	tests := []struct {
		name       string
		decl       func() (string, func(context.Context, map[string]any) (map[string]any, error))
		args       map[string]any
		wantPrefix string
	}{
		{
			name: "search_recipes",
			decl: func() (string, func(context.Context, map[string]any) (map[string]any, error)) {
				d := CreateSearchRecipesFunctionDeclaration(client)
				return d.Name, d.FunctionCall
			},
			args:       map[string]any{"diet": "vegan"},
			wantPrefix: "Error searching recipes: ",
		},
		{
			name: "get_all_recipes",
			decl: func() (string, func(context.Context, map[string]any) (map[string]any, error)) {
				d := CreateGetAllRecipesFunctionDeclaration(client)
				return d.Name, d.FunctionCall
			},
			wantPrefix: "Error getting recipes: ",
		},
		{
			name: "add_ingredients",
			decl: func() (string, func(context.Context, map[string]any) (map[string]any, error)) {
				d := CreateAddIngredientsFunctionDeclaration(client)
				return d.Name, d.FunctionCall
			},
			args:       map[string]any{"ingredients": []any{"mrkev"}},
			wantPrefix: "Error adding ingredients: ",
		},
		{
			name: "remove_ingredients",
			decl: func() (string, func(context.Context, map[string]any) (map[string]any, error)) {
				d := CreateRemoveIngredientsFunctionDeclaration(client)
				return d.Name, d.FunctionCall
			},
			args:       map[string]any{"ingredients": []any{"mrkev"}},
			wantPrefix: "Error removing ingredients: ",
		},
		{
			name: "get_shopping_list",
			decl: func() (string, func(context.Context, map[string]any) (map[string]any, error)) {
				d := CreateGetShoppingListFunctionDeclaration(client)
				return d.Name, d.FunctionCall
			},
			wantPrefix: "Error getting shopping list: ",
		},
		{
			name: "clear_shopping_list",
			decl: func() (string, func(context.Context, map[string]any) (map[string]any, error)) {
				d := CreateClearShoppingListFunctionDeclaration(client)
				return d.Name, d.FunctionCall
			},
			wantPrefix: "Error clearing shopping list: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, call := tt.decl()
			result, err := call(context.Background(), tt.args)
			if err != nil {
				t.Fatalf("Tool call must never return an error, got %v", err)
			}
			if text := resultText(t, result); !strings.HasPrefix(text, tt.wantPrefix) {
				t.Errorf("Expected result starting with %q, got %q", tt.wantPrefix, text)
			}
		})
	}
}

func TestSearchRecipesForwardsFilters(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"recipes":[]}`))
	}))
	defer server.Close()

	decl := CreateSearchRecipesFunctionDeclaration(mcp.NewClient(server.URL))
	result, err := decl.FunctionCall(context.Background(), map[string]any{
		"diet":      "vegetarian",
		"meal_type": "polévka",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotPath != "/search_recipes" {
		t.Errorf("Expected request to /search_recipes, got %q", gotPath)
	}
	if got := gotQuery["diet"]; len(got) != 1 || got[0] != "vegetarian" {
		t.Errorf("Expected diet filter forwarded, got %v", gotQuery)
	}
	if got := gotQuery["meal_type"]; len(got) != 1 || got[0] != "polévka" {
		t.Errorf("Expected meal_type filter forwarded, got %v", gotQuery)
	}
	if _, present := gotQuery["name"]; present {
		t.Errorf("Empty name filter must not be forwarded, got %v", gotQuery)
	}

	if text := resultText(t, result); !strings.Contains(text, "recipes") {
		t.Errorf("Expected service response passed through, got %q", text)
	}
}

func TestAddIngredientsSendsPayload(t *testing.T) {
	var gotBody map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Decode request body: %v", err)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	decl := CreateAddIngredientsFunctionDeclaration(mcp.NewClient(server.URL))
	result, err := decl.FunctionCall(context.Background(), map[string]any{
		"ingredients": []any{"mrkev", "cibule"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{"mrkev", "cibule"}
	got := gotBody["ingredients"]
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expected ingredients %v sent, got %v", want, got)
	}

	if text := resultText(t, result); !strings.Contains(text, "ok") {
		t.Errorf("Expected service response passed through, got %q", text)
	}
}

func TestEmptyIngredientListIsRejectedLocally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("No request expected for an empty ingredient list")
	}))
	defer server.Close()
	client := mcp.NewClient(server.URL)

	addDecl := CreateAddIngredientsFunctionDeclaration(client)
	result, err := addDecl.FunctionCall(context.Background(), map[string]any{"ingredients": []any{}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text := resultText(t, result); text != "Error adding ingredients: the ingredients list is empty" {
		t.Errorf("Unexpected result %q", text)
	}

	removeDecl := CreateRemoveIngredientsFunctionDeclaration(client)
	result, err = removeDecl.FunctionCall(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text := resultText(t, result); text != "Error removing ingredients: the ingredients list is empty" {
		t.Errorf("Unexpected result %q", text)
	}
}

func TestDecodePlanValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantErr string
	}{
		{
			name:    "missing title",
			args:    map[string]any{"days": []any{map[string]any{"day_name": "Den 1"}}},
			wantErr: "title",
		},
		{
			name:    "missing days",
			args:    map[string]any{"title": "Plán"},
			wantErr: "days",
		},
		{
			name:    "malformed days",
			args:    map[string]any{"title": "Plán", "days": "pondělí"},
			wantErr: "decode arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodePlan(tt.args)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDecodePlanRoundTrip(t *testing.T) {
	plan, err := decodePlan(map[string]any{
		"title": "Jídelníček na 2 dny",
		"days": []any{
			map[string]any{
				"day_name": "Den 1",
				"meals": []any{
					map[string]any{"meal_type": "oběd", "recipe_name": "Guláš"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if plan.Title != "Jídelníček na 2 dny" {
		t.Errorf("Unexpected title %q", plan.Title)
	}
	if len(plan.Days) != 1 || plan.Days[0].Name != "Den 1" {
		t.Fatalf("Unexpected days %+v", plan.Days)
	}
	meals := plan.Days[0].Meals
	if len(meals) != 1 || meals[0].Type != "oběd" || meals[0].RecipeName != "Guláš" {
		t.Errorf("Unexpected meals %+v", meals)
	}
}

func TestRecipeLookupUsesFirstMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"recipes":[
			{"name":"Guláš","ingredients":["hovězí"],"steps":"Vařit."},
			{"name":"Guláš segedínský","ingredients":["vepřové"],"steps":"Dusit."}
		]}`))
	}))
	defer server.Close()

	lookup := NewRecipeLookup(mcp.NewClient(server.URL))
	recipe, err := lookup(context.Background(), "Guláš")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if recipe == nil || recipe.Name != "Guláš" {
		t.Fatalf("Expected first match, got %+v", recipe)
	}
}

func TestRecipeLookupMissIsNilNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"recipes":[]}`))
	}))
	defer server.Close()

	lookup := NewRecipeLookup(mcp.NewClient(server.URL))
	recipe, err := lookup(context.Background(), "Neexistující")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if recipe != nil {
		t.Errorf("Expected nil recipe for a miss, got %+v", recipe)
	}
}
