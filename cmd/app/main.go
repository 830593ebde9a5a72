package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"nodetours/cmd/fx/agentfx"
	"nodetours/cmd/fx/apisfx"
	"nodetours/cmd/fx/llmfx"
	"nodetours/internal/api/controllers"
	"nodetours/internal/config"
	"nodetours/internal/services"
	"nodetours/pkg/cache"
	"nodetours/pkg/llm"
	"nodetours/pkg/middleware"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "nodetours",
		Short: "NoDetours: Personalized Travel Planner Agent",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "Path to config file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			Run: func(cmd *cobra.Command, args []string) {
				runServer()
			},
		},
		&cobra.Command{
			Use:   "chat",
			Short: "Run the interactive planner in the terminal",
			Run: func(cmd *cobra.Command, args []string) {
				runChat()
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadEnvironment() (*config.Config, *slog.Logger) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg, logger
}

func runServer() {
	cfg, logger := loadEnvironment()

	app := fx.New(
		fx.Supply(cfg, logger),
		llmfx.Module,
		apisfx.Module,
		agentfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, client llm.CompletionClient) {
	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting NoDetours web app at http://%s", addr)
				if err := engine.Run(addr); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return client.Close()
		},
	})
}

func ProvideRouter(planController *controllers.PlanController, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, planController, cfg.AuthSecret())

	return r
}

func RegisterRoutes(r *gin.Engine, planController *controllers.PlanController, authSecret string) {
	api := r.Group("/api")
	api.GET("/health", planController.Health)

	api.Use(middleware.BearerAuthMiddleware(authSecret))
	api.POST("/plan", planController.CreatePlan)
	api.GET("/history", planController.GetHistory)
}

func runChat() {
	cfg, logger := loadEnvironment()

	client, err := llmfx.ProvideCompletionClient(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	defer client.Close()

	store, err := cache.NewStore(cfg.Cache.Dir, logger)
	if err != nil {
		log.Fatalf("Failed to initialize scrape cache: %v", err)
	}
	agent := services.NewAgentService(
		services.NewGuardService(client, logger),
		services.NewFeatureService(client, logger),
		services.NewQueryService(client, logger),
		services.NewContextService(
			apisfx.ProvideSearchAPI(logger),
			apisfx.ProvideScrapeAPI(cfg, store, logger),
			apisfx.ProvideWeatherAPI(cfg, logger),
			apisfx.ProvideMapsAPI(cfg, logger),
			logger,
		),
		services.NewOutputService(client, logger),
		cfg.History.MaxTurns,
		logger,
	)

	fmt.Println("Welcome to NoDetours Travel Planner!")
	fmt.Println("Tell me about your travel plans, and I'll help you create the perfect itinerary.")
	fmt.Println("Type 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		userInput := scanner.Text()

		switch strings.ToLower(strings.TrimSpace(userInput)) {
		case "exit", "quit", "bye":
			fmt.Println("\nThank you for using NoDetours Travel Planner. Happy travels!")
			return
		}

		output, err := agent.CreatePlan(context.Background(), userInput)
		if err != nil {
			fmt.Printf("\nSorry, I can't help with that: %v\n\n", err)
			continue
		}

		fmt.Println("\n--- Your Travel Itinerary ---")
		fmt.Println()
		fmt.Println(output.Itinerary)

		fmt.Println("\n--- Packing Recommendations ---")
		fmt.Println()
		fmt.Println(output.PackingList)

		fmt.Println("\n--- Budget Estimate ---")
		fmt.Println()
		fmt.Println(output.EstimatedBudget)
		fmt.Println()
	}
}
