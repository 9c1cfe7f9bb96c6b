package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/shoots/internal/common/clock"
	"github.com/KirkDiggler/shoots/internal/common/uuid"
	"github.com/KirkDiggler/shoots/internal/config"
	"github.com/KirkDiggler/shoots/internal/dice"
	"github.com/KirkDiggler/shoots/internal/handlers/discord"
	"github.com/KirkDiggler/shoots/internal/handlers/web"
	"github.com/KirkDiggler/shoots/internal/repositories/scoreboard"
	gameService "github.com/KirkDiggler/shoots/internal/services/game"
	"github.com/KirkDiggler/shoots/internal/services/messaging"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	scoreboardRepo, err := scoreboard.NewRedis(&scoreboard.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create scoreboard repository: %v", err)
	}

	diceRoller := dice.New(&dice.Config{Seed: cfg.DiceSeed})
	systemClock := &clock.DefaultClock{}

	gameSvc, err := gameService.New(&gameService.Config{
		BoardSize:         cfg.Board.Size,
		RowLength:         cfg.Board.RowLength,
		AutomaticInterval: cfg.AutomaticInterval,
		ScoreboardRepo:    scoreboardRepo,
		DiceRoller:        diceRoller,
		Clock:             systemClock,
		UUIDGenerator:     uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create game service: %v", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		DiceRoller: diceRoller,
	})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	handler, err := web.NewHandler(&web.Config{
		GameService:      gameSvc,
		MessagingService: messagingSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create web handler: %v", err)
	}
	gameSvc.AddListener(handler.Hub())

	// The bot shares the game service so chat and browser see the same games
	var bot *discord.Bot
	if cfg.DiscordToken != "" {
		bot, err = discord.New(&discord.Config{
			Token:            cfg.DiscordToken,
			ApplicationID:    cfg.ApplicationID,
			GuildID:          cfg.GuildID,
			GameService:      gameSvc,
			MessagingService: messagingSvc,
			Clock:            systemClock,
		})
		if err != nil {
			log.Fatalf("Failed to create Discord bot: %v", err)
		}
		gameSvc.AddListener(bot)

		if err := bot.Start(); err != nil {
			log.Fatalf("Failed to start Discord bot: %v", err)
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Router(),
	}

	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error stopping server: %v", err)
	}

	if bot != nil {
		if err := bot.Stop(); err != nil {
			log.Printf("Error stopping bot: %v", err)
		}
	}

	log.Println("Server has been shut down")
}
