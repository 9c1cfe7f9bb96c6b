package web

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/KirkDiggler/shoots/internal/services/game"
	"github.com/KirkDiggler/shoots/internal/services/messaging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler serves the REST and websocket API for browser renderers
type Handler struct {
	gameService game.Service
	hub         *Hub
}

// Config holds the dependencies of the web handler
type Config struct {
	GameService      game.Service
	MessagingService messaging.Service
}

// AutomaticModeRequest sets automatic mode; a missing Enabled toggles it
type AutomaticModeRequest struct {
	Enabled *bool `json:"enabled"`
}

// NewHandler creates the handler and its websocket hub
func NewHandler(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	return &Handler{
		gameService: cfg.GameService,
		hub:         NewHub(cfg.MessagingService),
	}, nil
}

// Hub returns the websocket hub; register it as a game listener
func (h *Handler) Hub() *Hub {
	return h.hub
}

// Router builds the gin engine with every route registered
func (h *Handler) Router() *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := router.Group("/api")
	{
		games := api.Group("/games")
		{
			games.POST("", h.CreateGame)
			games.GET("/:id", h.GetGame)
			games.DELETE("/:id", h.EndGame)
			games.POST("/:id/roll", h.RollDice)
			games.POST("/:id/automatic", h.SetAutomaticMode)
			games.GET("/:id/ws", h.HandleWebSocket)
		}

		api.GET("/scoreboard", h.GetScoreboard)
	}

	return router
}

// CreateGame starts a game that is not bound to a chat channel
func (h *Handler) CreateGame(c *gin.Context) {
	output, err := h.gameService.CreateGame(c.Request.Context(), &game.CreateGameInput{})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, output.Game)
}

// GetGame returns a game snapshot
func (h *Handler) GetGame(c *gin.Context) {
	output, err := h.gameService.GetGame(c.Request.Context(), &game.GetGameInput{
		GameID: c.Param("id"),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, output.Game)
}

// RollDice starts a round and returns at once; clients follow it on the websocket
func (h *Handler) RollDice(c *gin.Context) {
	gameID := c.Param("id")

	output, err := h.gameService.GetGame(c.Request.Context(), &game.GetGameInput{
		GameID: gameID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if output.Game.RoundActive {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Round in progress",
		})
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	go func() {
		rollOutput, err := h.gameService.RollDice(ctx, &game.RollDiceInput{
			GameID: gameID,
		})
		if err != nil {
			log.Printf("Error rolling dice for game %s: %v", gameID, err)
			return
		}
		if !rollOutput.Played {
			log.Printf("Game %s: round already in progress, roll ignored", gameID)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"accepted": true,
	})
}

// SetAutomaticMode sets or toggles automatic mode
func (h *Handler) SetAutomaticMode(c *gin.Context) {
	var req AutomaticModeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	var (
		output *game.SetAutomaticModeOutput
		err    error
	)
	if req.Enabled == nil {
		output, err = h.gameService.ToggleAutomaticMode(c.Request.Context(), &game.ToggleAutomaticModeInput{
			GameID: c.Param("id"),
		})
	} else {
		output, err = h.gameService.SetAutomaticMode(c.Request.Context(), &game.SetAutomaticModeInput{
			GameID:  c.Param("id"),
			Enabled: *req.Enabled,
		})
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"automaticMode": output.AutomaticMode,
		"changed":       output.Changed,
		"game":          output.Game,
	})
}

// EndGame removes a game and disconnects its watchers
func (h *Handler) EndGame(c *gin.Context) {
	gameID := c.Param("id")

	output, err := h.gameService.EndGame(c.Request.Context(), &game.EndGameInput{
		GameID: gameID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.hub.CloseGame(gameID)

	c.JSON(http.StatusOK, output.Game)
}

// GetScoreboard returns the best results overall or for one game
func (h *Handler) GetScoreboard(c *gin.Context) {
	input := &game.GetScoreboardInput{
		GameID: c.Query("gameId"),
	}

	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "limit must be a positive integer",
			})
			return
		}
		input.Limit = n
	}

	output, err := h.gameService.GetScoreboard(c.Request.Context(), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": output.Results,
	})
}

// HandleWebSocket streams a game's events. The first message is a snapshot.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID := c.Param("id")

	if _, err := h.gameService.GetGame(c.Request.Context(), &game.GetGameInput{GameID: gameID}); err != nil {
		respondWithError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := h.hub.Register(gameID, conn)
	defer h.hub.Unregister(client)

	// Snapshot after registering so no event is lost in between
	output, err := h.gameService.GetGame(c.Request.Context(), &game.GetGameInput{GameID: gameID})
	if err != nil {
		log.Printf("Game %s ended before the snapshot was sent: %v", gameID, err)
		return
	}
	h.hub.Send(client, &Message{
		Type:   MessageTypeSnapshot,
		GameID: gameID,
		Game:   output.Game,
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		if msg.Type == "ping" {
			h.hub.Send(client, &Message{
				Type:   MessageTypePong,
				GameID: gameID,
			})
		}
	}
}

func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
	case errors.Is(err, game.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	case errors.Is(err, game.ErrGameAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Game already exists"})
	default:
		log.Printf("Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
