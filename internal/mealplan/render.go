package mealplan

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LookupFunc fetches detail for one recipe name. Returning nil, nil
// means the service knows no such recipe.
type LookupFunc func(ctx context.Context, name string) (*Recipe, error)

// IngredientAdder pushes ingredients onto the remote shopping list.
type IngredientAdder interface {
	AddIngredients(ctx context.Context, ingredients []string) (string, error)
}

// Renderer builds the console summary and the persisted document for a
// plan. Enrichment is best effort per recipe: one missing recipe never
// blocks the rest of the plan.
type Renderer struct {
	lookup   LookupFunc
	shopping IngredientAdder
	dir      string
	now      func() time.Time
}

func NewRenderer(lookup LookupFunc, shopping IngredientAdder, dir string) *Renderer {
	return &Renderer{
		lookup:   lookup,
		shopping: shopping,
		dir:      dir,
		now:      time.Now,
	}
}

// enrichment is the outcome of looking up every recipe the plan
// references, preserving plan encounter order.
type enrichment struct {
	found       []*Recipe
	ingredients []string
	missing     []string
}

// Create renders the plan. It always returns the console summary, even
// when recipe lookups, document persistence or the shopping-list update
// fail along the way.
func (r *Renderer) Create(ctx context.Context, plan Plan) string {
	enriched := r.fetchDetails(ctx, plan.recipeNames())

	document := buildDocument(plan, enriched, r.now())
	savedPath := r.saveDocument(document)
	shoppingNote := r.updateShoppingList(ctx, enriched.ingredients)

	return buildConsoleOutput(plan, savedPath, enriched, shoppingNote)
}

// fetchDetails looks up every referenced recipe. Lookup failures and
// misses are recorded as missing instead of failing the plan. A found
// recipe must carry at least one ingredient to count as real detail.
func (r *Renderer) fetchDetails(ctx context.Context, names []string) enrichment {
	var e enrichment
	seen := make(map[string]bool)

	for _, name := range names {
		recipe, err := r.lookup(ctx, name)
		if err != nil {
			log.Printf("mealplan: lookup %q: %v", name, err)
			e.missing = append(e.missing, name)
			continue
		}
		if recipe == nil || len(recipe.Ingredients) == 0 {
			log.Printf("mealplan: recipe %q not found", name)
			e.missing = append(e.missing, name)
			continue
		}

		e.found = append(e.found, recipe)
		for _, ingredient := range recipe.Ingredients {
			if !seen[ingredient] {
				seen[ingredient] = true
				e.ingredients = append(e.ingredients, ingredient)
			}
		}
	}

	return e
}

func buildDocument(plan Plan, enriched enrichment, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", plan.Title)
	fmt.Fprintf(&sb, "*Počet dní: %d*\n\n", len(plan.Days))

	for _, day := range plan.Days {
		fmt.Fprintf(&sb, "🗓️ **%s:**\n", day.Name)
		for _, line := range orderedMeals(day) {
			fmt.Fprintf(&sb, "  • %s %s: %s\n", mealIcon(line.Type), capitalize(line.Type), joinRecipes(line.Recipes))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
	sb.WriteString("## Recepty\n\n")

	for _, recipe := range enriched.found {
		fmt.Fprintf(&sb, "### %s\n\n", recipe.Name)

		sb.WriteString("**Ingredience:**\n")
		for _, ingredient := range recipe.Ingredients {
			fmt.Fprintf(&sb, "- %s\n", ingredient)
		}
		sb.WriteString("\n")

		if recipe.Steps != "" {
			fmt.Fprintf(&sb, "**Postup:**\n%s\n\n", recipe.Steps)
		}
	}

	if len(enriched.missing) > 0 {
		fmt.Fprintf(&sb, "*Recepty nenalezené v databázi: %s*\n\n", strings.Join(enriched.missing, ", "))
	}

	sb.WriteString("---\n\n")
	sb.WriteString("## Shrnutí\n\n")
	fmt.Fprintf(&sb, "- **Celkem receptů:** %d\n", len(enriched.found))
	fmt.Fprintf(&sb, "- **Celkem ingrediencí:** %d\n", len(enriched.ingredients))
	fmt.Fprintf(&sb, "- **Doba trvání:** %d %s\n\n", len(plan.Days), dayCountWord(len(plan.Days)))
	fmt.Fprintf(&sb, "*Jídelníček vytvořen: %s*\n", now.Format("2.1.2006 15:04:05"))

	return sb.String()
}

// saveDocument writes the document under the plans directory, named by
// timestamp. Persistence failures are logged, never propagated: the
// console rendering is returned regardless.
func (r *Renderer) saveDocument(document string) string {
	if r.dir == "" {
		return ""
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		log.Printf("mealplan: create plans directory %q: %v", r.dir, err)
		return ""
	}

	filename := fmt.Sprintf("jidelnicek_%s.md", r.now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(r.dir, filename)
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		log.Printf("mealplan: save plan %q: %v", path, err)
		return ""
	}

	return path
}

func (r *Renderer) updateShoppingList(ctx context.Context, ingredients []string) string {
	if r.shopping == nil || len(ingredients) == 0 {
		return ""
	}

	if _, err := r.shopping.AddIngredients(ctx, ingredients); err != nil {
		return fmt.Sprintf("\n\n⚠️ Nepodařilo se přidat ingredience na nákupní seznam: %v", err)
	}

	return fmt.Sprintf("\n\n🛒 NÁKUPNÍ SEZNAM AKTUALIZOVÁN:\nPřidáno %d ingrediencí na nákupní seznam.", len(ingredients))
}

func buildConsoleOutput(plan Plan, savedPath string, enriched enrichment, shoppingNote string) string {
	var sb strings.Builder

	sb.WriteString("🎉 JÍDELNÍČEK ÚSPĚŠNĚ VYTVOŘEN!\n\n")
	fmt.Fprintf(&sb, "📅 %s\n", plan.Title)
	if savedPath != "" {
		fmt.Fprintf(&sb, "📁 Soubor: %s\n", savedPath)
	}
	sb.WriteString("📊 Statistiky:\n")
	fmt.Fprintf(&sb, "   • Doba: %d %s\n", len(plan.Days), dayCountWord(len(plan.Days)))
	fmt.Fprintf(&sb, "   • Recepty: %d\n", len(enriched.found))
	fmt.Fprintf(&sb, "   • Ingredience: %d\n", len(enriched.ingredients))
	if len(enriched.missing) > 0 {
		fmt.Fprintf(&sb, "   • Nenalezené recepty: %s\n", strings.Join(enriched.missing, ", "))
	}

	sb.WriteString("\n🗓️ PŘEHLED JÍDELNÍČKU:\n")
	for _, day := range plan.Days {
		fmt.Fprintf(&sb, "%s:\n", day.Name)
		for _, line := range orderedMeals(day) {
			fmt.Fprintf(&sb, "  %s %s: %s\n", mealIcon(line.Type), capitalize(line.Type), joinRecipes(line.Recipes))
		}
		sb.WriteString("\n")
	}

	if savedPath != "" {
		fmt.Fprintf(&sb, "💾 Kompletní jídelníček s recepty a postupy byl uložen do souboru %s", savedPath)
	} else {
		sb.WriteString("⚠️ Jídelníček se nepodařilo uložit do souboru.")
	}

	sb.WriteString(shoppingNote)

	return sb.String()
}
