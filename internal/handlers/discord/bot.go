package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/shoots/internal/common/clock"
	"github.com/KirkDiggler/shoots/internal/models"
	"github.com/KirkDiggler/shoots/internal/services/game"
	"github.com/KirkDiggler/shoots/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// DefaultEditInterval is the minimum gap between board edits while a round plays
const DefaultEditInterval = time.Second

// Bot represents the Discord bot instance
type Bot struct {
	session          *discordgo.Session
	commands         map[string]CommandHandler
	commandIDs       map[string]string // Maps command name to command ID
	gameService      game.Service
	messagingService messaging.Service
	clock            clock.Clock
	editInterval     time.Duration
	config           *Config

	// editMessage applies a board edit; replaced in tests
	editMessage func(edit *discordgo.MessageEdit) error

	mu     sync.Mutex
	boards map[string]*boardState
}

// boardState tracks what was last sent for a game's board message
type boardState struct {
	lastEdit     time.Time
	announcement string
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Game service
	GameService game.Service

	// Messaging service for announcements and move logs
	MessagingService messaging.Service

	// Clock used to throttle board edits
	Clock clock.Clock

	// EditInterval defaults to DefaultEditInterval
	EditInterval time.Duration
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	editInterval := cfg.EditInterval
	if editInterval <= 0 {
		editInterval = DefaultEditInterval
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:          session,
		commands:         make(map[string]CommandHandler),
		commandIDs:       make(map[string]string),
		gameService:      cfg.GameService,
		messagingService: cfg.MessagingService,
		clock:            cfg.Clock,
		editInterval:     editInterval,
		config:           cfg,
		boards:           make(map[string]*boardState),
	}

	bot.editMessage = func(edit *discordgo.MessageEdit) error {
		_, err := session.ChannelMessageEditComplex(edit)
		return err
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	shootsCmd := NewShootsCommand(&ShootsCommandConfig{
		GameService:      b.gameService,
		MessagingService: b.messagingService,
		Clock:            b.clock,
		OnGameEnded:      b.forgetBoard,
	})
	if err := b.RegisterCommand(shootsCmd); err != nil {
		return fmt.Errorf("failed to register shoots command: %w", err)
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		} else {
			log.Printf("Successfully deleted command %s (ID: %s)", cmdName, cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord. Commands go to the
// configured guild when there is one, otherwise they are global.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	if b.config.GuildID != "" {
		log.Printf("Registering command %s for guild %s", cmd.GetName(), b.config.GuildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Printf("Registered command: %s with ID: %s", cmd.GetName(), createdCmd.ID)

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// Button IDs
const (
	ButtonRollDice        = "roll_dice"
	ButtonToggleAutomatic = "toggle_automatic"
)

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	}
}

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	switch customID {
	case ButtonRollDice:
		return b.handleRollDiceButton(s, i)
	case ButtonToggleAutomatic:
		return b.handleToggleAutomaticButton(s, i)
	default:
		return fmt.Errorf("unknown component: %s", customID)
	}
}

// handleRollDiceButton starts a round. The round plays in the background and
// the board follows it through game events.
func (b *Bot) handleRollDiceButton(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	existingGame, err := b.gameService.GetGameByChannel(ctx, &game.GetGameByChannelInput{
		ChannelID: i.ChannelID,
	})
	if err != nil {
		return respondWithGameError(ctx, s, i, b.messagingService, err)
	}

	if existingGame.Game.RoundActive {
		return respondWithErrorType(ctx, s, i, b.messagingService, messaging.ErrorTypeRoundActive)
	}

	b.adoptMessage(ctx, existingGame.Game, i)

	if err := AcknowledgeComponent(s, i); err != nil {
		return err
	}

	gameID := existingGame.Game.ID
	go func() {
		output, err := b.gameService.RollDice(context.Background(), &game.RollDiceInput{
			GameID: gameID,
		})
		if err != nil {
			log.Printf("Error rolling dice for game %s: %v", gameID, err)
			return
		}
		if !output.Played {
			log.Printf("Game %s: round already in progress, roll ignored", gameID)
		}
	}()

	return nil
}

// handleToggleAutomaticButton flips automatic mode; the board is redrawn by
// the resulting game event
func (b *Bot) handleToggleAutomaticButton(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	existingGame, err := b.gameService.GetGameByChannel(ctx, &game.GetGameByChannelInput{
		ChannelID: i.ChannelID,
	})
	if err != nil {
		return respondWithGameError(ctx, s, i, b.messagingService, err)
	}

	b.adoptMessage(ctx, existingGame.Game, i)

	if err := AcknowledgeComponent(s, i); err != nil {
		return err
	}

	output, err := b.gameService.ToggleAutomaticMode(ctx, &game.ToggleAutomaticModeInput{
		GameID: existingGame.Game.ID,
	})
	if err != nil {
		log.Printf("Error toggling automatic mode: %v", err)
		return err
	}

	log.Printf("Game %s: automatic mode is now %s", existingGame.Game.ID, onOff(output.AutomaticMode))
	return nil
}

// adoptMessage records the clicked message as the game's board when the
// game does not know its message yet
func (b *Bot) adoptMessage(ctx context.Context, g *models.Game, i *discordgo.InteractionCreate) {
	if g.MessageID != "" || i.Message == nil {
		return
	}

	_, err := b.gameService.UpdateGameMessage(ctx, &game.UpdateGameMessageInput{
		GameID:    g.ID,
		MessageID: i.Message.ID,
	})
	if err != nil {
		log.Printf("Error updating game message ID: %v", err)
	}
}

// OnGameEvent redraws the board message. While a round is active edits are
// limited to one per edit interval; settled states are always sent.
func (b *Bot) OnGameEvent(ctx context.Context, event *models.GameEvent) {
	if event == nil || event.Game == nil {
		return
	}

	if event.Game.ChannelID == "" || event.Game.MessageID == "" {
		return
	}

	announcement, ok := b.nextEdit(event, b.announce(ctx, event))
	if !ok {
		return
	}

	embeds := []*discordgo.MessageEmbed{
		renderGameEmbed(ctx, b.messagingService, event.Game, announcement, b.clock.Now()),
	}
	components := renderGameComponents(event.Game)

	err := b.editMessage(&discordgo.MessageEdit{
		Channel:    event.Game.ChannelID,
		ID:         event.Game.MessageID,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		log.Printf("Error updating game message: %v", err)
	}
}

// nextEdit decides whether an event is drawn and returns the footer to show
func (b *Bot) nextEdit(event *models.GameEvent, announcement string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.boards[event.GameID]
	if !ok {
		state = &boardState{}
		b.boards[event.GameID] = state
	}

	if announcement != "" {
		state.announcement = announcement
	}

	now := b.clock.Now()
	if event.Game.RoundActive && !state.lastEdit.IsZero() && now.Sub(state.lastEdit) < b.editInterval {
		return "", false
	}

	state.lastEdit = now
	return state.announcement, true
}

// announce returns the footer line for events worth calling out
func (b *Bot) announce(ctx context.Context, event *models.GameEvent) string {
	output, err := b.messagingService.GetEventMessage(ctx, &messaging.GetEventMessageInput{
		Event: event,
	})
	if err != nil {
		log.Printf("Error getting announcement for %s: %v", event.Type, err)
		return ""
	}
	return output.Message
}

// forgetBoard drops throttle state for an ended game
func (b *Bot) forgetBoard(gameID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.boards, gameID)
}

// respondWithGameError maps a game service error to a friendly ephemeral reply
func respondWithGameError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, messagingService messaging.Service, err error) error {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return respondWithErrorType(ctx, s, i, messagingService, messaging.ErrorTypeGameNotFound)
	case errors.Is(err, game.ErrGameAlreadyExists):
		return respondWithErrorType(ctx, s, i, messagingService, messaging.ErrorTypeGameExists)
	}

	log.Printf("Game service error: %v", err)
	return respondWithErrorType(ctx, s, i, messagingService, "")
}

func respondWithErrorType(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, messagingService messaging.Service, errorType string) error {
	output, err := messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: errorType,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, "Something went wrong.")
	}

	return RespondWithError(s, i, output.Title, output.Message)
}
