package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/shoots/internal/dice"
	"github.com/KirkDiggler/shoots/internal/models"
)

// ErrNilDiceRoller is returned when the service has nothing to pick messages with
var ErrNilDiceRoller = errors.New("dice roller cannot be nil")

// ErrNilPlayer is returned when a move log is requested without a player
var ErrNilPlayer = errors.New("player cannot be nil")

// service implements the Service interface
type service struct {
	// Selects a random message variant
	diceRoller dice.Roller
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil || config.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	return &service{
		diceRoller: config.DiceRoller,
	}, nil
}

// GetMoveLogMessage returns a player's move history as display lines
func (s *service) GetMoveLogMessage(ctx context.Context, input *GetMoveLogMessageInput) (*GetMoveLogMessageOutput, error) {
	if input == nil || input.Player == nil {
		return nil, ErrNilPlayer
	}

	moves := input.Player.MoveHistory
	if input.Limit > 0 && len(moves) > input.Limit {
		moves = moves[len(moves)-input.Limit:]
	}

	lines := make([]string, 0, len(moves))
	for _, move := range moves {
		lines = append(lines, FormatMove(move))
	}

	return &GetMoveLogMessageOutput{
		Summary: FormatPlayerSummary(input.Player),
		Lines:   lines,
	}, nil
}

// GetLadderMessage returns an announcement for a ladder jump
func (s *service) GetLadderMessage(ctx context.Context, input *GetLadderMessageInput) (*GetLadderMessageOutput, error) {
	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	climbed := input.To > input.From
	var messages []string

	switch {
	case climbed && tone == ToneNeutral:
		messages = []string{
			fmt.Sprintf("%s climbs a ladder from %d to %d.", input.PlayerName, input.From, input.To),
		}
	case climbed:
		messages = []string{
			fmt.Sprintf("%s found a ladder! Up from %d to %d.", input.PlayerName, input.From, input.To),
			fmt.Sprintf("Going up! %s rides from %d to %d.", input.PlayerName, input.From, input.To),
			fmt.Sprintf("%s skips the queue: %d straight to %d.", input.PlayerName, input.From, input.To),
		}
	case tone == ToneNeutral:
		messages = []string{
			fmt.Sprintf("%s slides down from %d to %d.", input.PlayerName, input.From, input.To),
		}
	case tone == ToneSarcastic:
		messages = []string{
			fmt.Sprintf("Great move, %s. From %d all the way back to %d.", input.PlayerName, input.From, input.To),
			fmt.Sprintf("%s really wanted to see %d again. Back from %d.", input.PlayerName, input.To, input.From),
		}
	default:
		messages = []string{
			fmt.Sprintf("Wheee! %s shoots down from %d to %d.", input.PlayerName, input.From, input.To),
			fmt.Sprintf("%s hit the chute at %d and lands on %d.", input.PlayerName, input.From, input.To),
			fmt.Sprintf("Down you go, %s! %d to %d.", input.PlayerName, input.From, input.To),
		}
	}

	return &GetLadderMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetFinishMessage returns an announcement for a player reaching the last cell
func (s *service) GetFinishMessage(ctx context.Context, input *GetFinishMessageInput) (*GetFinishMessageOutput, error) {
	tone := input.PreferredTone
	if tone == "" {
		tone = ToneCelebration
	}

	var messages []string
	switch tone {
	case ToneNeutral:
		messages = []string{
			fmt.Sprintf("%s finished in %d rolls.", input.PlayerName, input.DiceRolls),
		}
	case ToneSarcastic:
		messages = []string{
			fmt.Sprintf("%s finally made it. Only took %d rolls.", input.PlayerName, input.DiceRolls),
			fmt.Sprintf("Wake everyone up, %s is done after %d rolls.", input.PlayerName, input.DiceRolls),
		}
	default:
		messages = []string{
			fmt.Sprintf("🎉 %s reached the top in %d rolls!", input.PlayerName, input.DiceRolls),
			fmt.Sprintf("🏁 %s crosses the finish after %d rolls!", input.PlayerName, input.DiceRolls),
			fmt.Sprintf("🏆 %d rolls and %s is home!", input.DiceRolls, input.PlayerName),
		}
	}

	return &GetFinishMessageOutput{
		Title:   fmt.Sprintf("%s finished!", input.PlayerName),
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetSpawnMessage returns an announcement for a player joining the board
func (s *service) GetSpawnMessage(ctx context.Context, input *GetSpawnMessageInput) (*GetSpawnMessageOutput, error) {
	messages := []string{
		fmt.Sprintf("%s steps onto the board.", input.PlayerName),
		fmt.Sprintf("A new challenger appears: %s!", input.PlayerName),
		fmt.Sprintf("%s takes the empty start square.", input.PlayerName),
	}

	return &GetSpawnMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetEventMessage announces ladder jumps, finishes and spawns
func (s *service) GetEventMessage(ctx context.Context, input *GetEventMessageInput) (*GetEventMessageOutput, error) {
	if input == nil || input.Event == nil || input.Event.Game == nil {
		return &GetEventMessageOutput{}, nil
	}

	event := input.Event
	player := event.Game.GetPlayer(event.PlayerID)
	if player == nil {
		return &GetEventMessageOutput{}, nil
	}

	switch event.Type {
	case models.EventLadderTaken:
		if len(player.MoveHistory) == 0 {
			return &GetEventMessageOutput{}, nil
		}
		jump := player.MoveHistory[len(player.MoveHistory)-1]
		output, err := s.GetLadderMessage(ctx, &GetLadderMessageInput{
			PlayerName: player.Name,
			From:       jump.From,
			To:         jump.To,
		})
		if err != nil {
			return nil, err
		}
		return &GetEventMessageOutput{Message: output.Message}, nil
	case models.EventPlayerFinished:
		output, err := s.GetFinishMessage(ctx, &GetFinishMessageInput{
			PlayerName: player.Name,
			DiceRolls:  player.DiceRolls,
		})
		if err != nil {
			return nil, err
		}
		return &GetEventMessageOutput{Message: output.Message}, nil
	case models.EventPlayerSpawned:
		output, err := s.GetSpawnMessage(ctx, &GetSpawnMessageInput{
			PlayerName: player.Name,
		})
		if err != nil {
			return nil, err
		}
		return &GetEventMessageOutput{Message: output.Message}, nil
	}

	return &GetEventMessageOutput{}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	switch input.ErrorType {
	case ErrorTypeGameNotFound:
		return &GetErrorMessageOutput{
			Title:   "No Game Here",
			Message: "There is no game in this channel. Start one with `/shoots start`.",
		}, nil
	case ErrorTypeGameExists:
		return &GetErrorMessageOutput{
			Title:   "Game Already Running",
			Message: "This channel already has a board. End it with `/shoots end` first.",
		}, nil
	case ErrorTypeRoundActive:
		return &GetErrorMessageOutput{
			Title: "Hold On",
			Message: s.pick([]string{
				"The dice are still rolling. Wait for the round to settle.",
				"Patience! Everyone has to finish moving first.",
			}),
		}, nil
	default:
		return &GetErrorMessageOutput{
			Title:   "Error",
			Message: "Something went wrong. Try again in a moment.",
		}, nil
	}
}

// pick returns a random entry of messages
func (s *service) pick(messages []string) string {
	if len(messages) == 1 {
		return messages[0]
	}
	return messages[s.diceRoller.Roll(len(messages))-1]
}
