package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/rohbot/rohbot/assets"
	"github.com/rohbot/rohbot/internal/agent"
	"github.com/rohbot/rohbot/internal/cli"
	"github.com/rohbot/rohbot/internal/config"
	"github.com/rohbot/rohbot/internal/functions"
	"github.com/rohbot/rohbot/internal/mcp"
	"github.com/rohbot/rohbot/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/genai"
)

func main() {
	verbose := flag.Bool("v", false, "enable verbose per-tool-call tracing")
	flag.Parse()

	cfg := config.Load()
	if *verbose {
		cfg.Verbose = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

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

	var repo repository.SessionRepository = repository.NewMemorySessionRepository()
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			fmt.Printf("❌ Fatal error: mongodb connect: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Printf("mongodb disconnect: %v", err)
			}
		}()

		repo = repository.NewMongoSessionRepository(mongoClient.Database(cfg.MongoDB), "sessions")
	}

	completer := agent.NewGenAICompleter(client, cfg.Model, assets.SystemInstruction)
	a := agent.NewWithRepo(completer, repo)
	a.SetMaxTurns(cfg.MaxTurns)

	if cfg.Verbose {
		a.OnEvent = func(event agent.Event) {
			switch event.Kind {
			case agent.EventToolStart:
				fmt.Printf("🔧 Volám nástroj %s...\n", event.Tool)
			case agent.EventToolEnd:
				fmt.Printf("✅ Nástroj %s dokončen\n", event.Tool)
			}
		}
	}

	if err := functions.RegisterAll(a, mcpClient, cfg.PlansDir); err != nil {
		fmt.Printf("❌ Fatal error: %v\n", err)
		os.Exit(1)
	}

	session := &cli.Session{
		Agent:     a,
		Shopping:  mcpClient,
		In:        os.Stdin,
		Out:       os.Stdout,
		SessionID: "interactive",
	}

	// The REPL blocks on stdin, which an interrupt does not unblock;
	// run it aside so Ctrl+C still gets the goodbye and the best-effort
	// shopping-list cleanup, even mid-turn.
	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		fmt.Println(cli.GoodbyeMessage)
		session.CleanShoppingList(context.Background())
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Printf("❌ Fatal error: %v\n", err)
			os.Exit(1)
		}
	}
}
