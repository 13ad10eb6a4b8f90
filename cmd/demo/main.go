// Command demo runs a single hardcoded turn against the assistant and
// prints the streamed result, as a quick end-to-end check.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rohbot/rohbot/assets"
	"github.com/rohbot/rohbot/internal/agent"
	"github.com/rohbot/rohbot/internal/config"
	"github.com/rohbot/rohbot/internal/functions"
	"github.com/rohbot/rohbot/internal/mcp"
	"github.com/rohbot/rohbot/internal/repository"
	"google.golang.org/genai"
)

const demoPrompt = "Chci abys mi vytvořil jídelníček na 3 dny dopředu. Vytvoř mi i dokument s tímto plánem. Jsem vegetarián."

func main() {
	cfg := config.Load()

	ctx := context.Background()

	fmt.Println("🤖 RohBot Demo")
	fmt.Println("=====================================")
	fmt.Println()

	mcpClient := mcp.NewClient(cfg.MCPBaseURL)
	fmt.Printf("🔍 Checking MCP server at %s...\n", cfg.MCPBaseURL)
	count, err := mcpClient.HealthCheck(ctx)
	if err != nil {
		fmt.Printf("❌ MCP server is not available: %v\n", err)
		fmt.Println("💡 Make sure the MCP server is running and accessible.")
		os.Exit(1)
	}
	fmt.Printf("✅ MCP server is healthy! Found %d recipes.\n\n", count)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Printf("❌ Fatal error: %v\n", err)
		os.Exit(1)
	}

	completer := agent.NewGenAICompleter(client, cfg.Model, assets.SystemInstruction)
	a := agent.NewWithRepo(completer, repository.NewMemorySessionRepository())
	a.SetMaxTurns(cfg.MaxTurns)

	if err := functions.RegisterAll(a, mcpClient, cfg.PlansDir); err != nil {
		fmt.Printf("❌ Fatal error: %v\n", err)
		os.Exit(1)
	}

	streaming := false
	a.OnEvent = func(event agent.Event) {
		switch event.Kind {
		case agent.EventText:
			fmt.Print(event.Text)
			streaming = true
		case agent.EventToolStart:
			if streaming {
				fmt.Println()
				streaming = false
			}
			fmt.Printf("🔧 Volám nástroj %s...\n", event.Tool)
		case agent.EventToolEnd:
			fmt.Printf("✅ Nástroj %s dokončen\n", event.Tool)
		}
	}

	fmt.Println("Tohle je malé demo RohBota (Rohlík asistent pro plánování jídelníčku a správu nákupního seznamu)")
	fmt.Println()
	fmt.Printf("User: %s\n", demoPrompt)
	fmt.Print("\n🤔 Přemýšlím... \n")

	answer, err := a.Send(ctx, "demo", demoPrompt)
	if err != nil {
		fmt.Printf("\n❌ Chyba při zpracování dotazu: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n\n🍽️ Agent Response:\n%s\n", answer)
	fmt.Println("\n🎯 Chceš použít tohoto agenta interaktivně? Spusť program bez argumentů.")
}
