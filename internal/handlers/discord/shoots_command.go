package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/shoots/internal/common/clock"
	"github.com/KirkDiggler/shoots/internal/repositories/scoreboard"
	"github.com/KirkDiggler/shoots/internal/services/game"
	"github.com/KirkDiggler/shoots/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// ShootsCommand handles the /shoots command
type ShootsCommand struct {
	BaseCommand
	gameService      game.Service
	messagingService messaging.Service
	clock            clock.Clock
	onGameEnded      func(gameID string)
}

// ShootsCommandConfig holds the dependencies of the /shoots command
type ShootsCommandConfig struct {
	GameService      game.Service
	MessagingService messaging.Service
	Clock            clock.Clock

	// OnGameEnded is called after a game is ended, if set
	OnGameEnded func(gameID string)
}

// NewShootsCommand creates a new shoots command handler
func NewShootsCommand(cfg *ShootsCommandConfig) *ShootsCommand {
	return &ShootsCommand{
		BaseCommand: BaseCommand{
			Name:        "shoots",
			Description: "Shoots and Ladders board commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Put a new board in this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "scoreboard",
					Description: "Show who reached the finish in the fewest rolls",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "End the game in this channel",
				},
			},
		},
		gameService:      cfg.GameService,
		messagingService: cfg.MessagingService,
		clock:            cfg.Clock,
		onGameEnded:      cfg.OnGameEnded,
	}
}

// Handle processes a Discord interaction for the shoots command
func (c *ShootsCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	switch data.Options[0].Name {
	case "start":
		return c.handleStart(s, i)
	case "scoreboard":
		return c.handleScoreboard(s, i)
	case "end":
		return c.handleEnd(s, i)
	default:
		return errors.New("unknown subcommand")
	}
}

// handleStart creates a game and posts its board
func (c *ShootsCommand) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	createOutput, err := c.gameService.CreateGame(ctx, &game.CreateGameInput{
		ChannelID: i.ChannelID,
	})
	if err != nil {
		return respondWithGameError(ctx, s, i, c.messagingService, err)
	}

	g := createOutput.Game
	embed := renderGameEmbed(ctx, c.messagingService, g, "", c.clock.Now())
	if err := RespondWithBoard(s, i, embed, renderGameComponents(g)); err != nil {
		log.Printf("Error sending board message: %v", err)
		return err
	}

	// The response message becomes the board that game events keep editing
	message, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.Printf("Error fetching board message for game %s: %v", g.ID, err)
		return nil
	}

	_, err = c.gameService.UpdateGameMessage(ctx, &game.UpdateGameMessageInput{
		GameID:    g.ID,
		MessageID: message.ID,
	})
	if err != nil {
		log.Printf("Error updating game message ID: %v", err)
	}

	return nil
}

// handleScoreboard shows the channel's game results and the all-time board
func (c *ShootsCommand) handleScoreboard(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	var embeds []*discordgo.MessageEmbed

	existingGame, err := c.gameService.GetGameByChannel(ctx, &game.GetGameByChannelInput{
		ChannelID: i.ChannelID,
	})
	switch {
	case err == nil:
		gameResults, err := c.gameService.GetScoreboard(ctx, &game.GetScoreboardInput{
			GameID: existingGame.Game.ID,
		})
		if err != nil {
			log.Printf("Error getting game results: %v", err)
			return respondWithGameError(ctx, s, i, c.messagingService, err)
		}
		embeds = append(embeds, renderScoreboardEmbed("🏁 This Game", gameResults.Results))
	case !errors.Is(err, game.ErrGameNotFound):
		return respondWithGameError(ctx, s, i, c.messagingService, err)
	}

	topResults, err := c.gameService.GetScoreboard(ctx, &game.GetScoreboardInput{
		Limit: scoreboard.DefaultLimit,
	})
	if err != nil {
		log.Printf("Error getting scoreboard: %v", err)
		return respondWithGameError(ctx, s, i, c.messagingService, err)
	}
	embeds = append(embeds, renderScoreboardEmbed("🏆 Fewest Rolls", topResults.Results))

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: embeds,
		},
	})
}

// handleEnd stops the channel's game and freezes its board
func (c *ShootsCommand) handleEnd(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	existingGame, err := c.gameService.GetGameByChannel(ctx, &game.GetGameByChannelInput{
		ChannelID: i.ChannelID,
	})
	if err != nil {
		return respondWithGameError(ctx, s, i, c.messagingService, err)
	}

	endOutput, err := c.gameService.EndGame(ctx, &game.EndGameInput{
		GameID: existingGame.Game.ID,
	})
	if err != nil {
		return respondWithGameError(ctx, s, i, c.messagingService, err)
	}

	if c.onGameEnded != nil {
		c.onGameEnded(endOutput.Game.ID)
	}

	if endOutput.Game.MessageID != "" {
		embeds := []*discordgo.MessageEmbed{
			renderGameEmbed(ctx, c.messagingService, endOutput.Game, "Game over", c.clock.Now()),
		}
		components := []discordgo.MessageComponent{}
		_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    endOutput.Game.ChannelID,
			ID:         endOutput.Game.MessageID,
			Embeds:     &embeds,
			Components: &components,
		})
		if err != nil {
			log.Printf("Error freezing board message: %v", err)
		}
	}

	finished := len(endOutput.Game.FinishedPlayers())
	return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Game Ended",
		Description: fmt.Sprintf("%d players reached the finish. Start again with `/shoots start`.", finished),
		Color:       colorFinished,
	})
}
