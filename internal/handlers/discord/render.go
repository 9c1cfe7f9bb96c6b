package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KirkDiggler/shoots/internal/board"
	"github.com/KirkDiggler/shoots/internal/models"
	"github.com/KirkDiggler/shoots/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

const (
	colorPlaying  = 0x00ff00
	colorRolling  = 0xffcc00
	colorError    = 0xff0000
	colorFinished = 0x3399ff

	// Discord rejects embed fields longer than this
	maxFieldLength = 1024

	// recentMoves is how many move log lines are shown per player
	recentMoves = 3
)

// playerTokens are assigned by player ID; the first player is always red
var playerTokens = []string{"🔴", "🔵", "🟢", "🟡", "🟣", "🟠", "🟤", "⚪", "⚫"}

var markerEmoji = map[board.MarkerKind]string{
	board.MarkerClimbStart: "↗️",
	board.MarkerFallStart:  "↘️",
	board.MarkerClimbEnd:   "⤴️",
	board.MarkerFallEnd:    "⤵️",
}

func playerToken(player *models.Player) string {
	return playerTokens[(player.ID-1)%len(playerTokens)]
}

// renderBoard draws the board as an emoji grid, top row first
func renderBoard(game *models.Game) string {
	cfg := board.Config{Size: game.BoardSize, RowLength: game.RowLength}

	// first unfinished player on a cell gets drawn
	occupants := make(map[int]*models.Player)
	for _, player := range game.Players {
		if player.Finished {
			continue
		}
		if _, taken := occupants[player.Position]; !taken {
			occupants[player.Position] = player
		}
	}

	var sb strings.Builder
	for _, row := range cfg.Layout() {
		for _, position := range row {
			sb.WriteString(renderCell(game, occupants, position))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderCell(game *models.Game, occupants map[int]*models.Player, position int) string {
	if player, ok := occupants[position]; ok {
		return playerToken(player)
	}

	if position == game.BoardSize {
		return "🏁"
	}

	if symbol, ok := markerEmoji[board.MarkerFor(game.Ladders, position).Kind]; ok {
		return symbol
	}

	return "⬜"
}

// renderDice shows the current die face
func renderDice(game *models.Game) string {
	if game.DiceFace == 0 {
		return "🎲 -"
	}

	face := messaging.DiceEmoji(game.DiceFace)
	if game.IsRolling {
		return "🎲 " + face + " rolling..."
	}
	return "🎲 " + face
}

// renderGameEmbed builds the board message for a game snapshot
func renderGameEmbed(ctx context.Context, messagingService messaging.Service, game *models.Game, announcement string, now time.Time) *discordgo.MessageEmbed {
	color := colorPlaying
	if game.IsRolling {
		color = colorRolling
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Dice",
			Value:  renderDice(game),
			Inline: true,
		},
		{
			Name:   "Automatic Mode",
			Value:  onOff(game.AutomaticMode),
			Inline: true,
		},
	}

	var playing []string
	for _, player := range game.ActivePlayers() {
		moveLog, err := messagingService.GetMoveLogMessage(ctx, &messaging.GetMoveLogMessageInput{
			Player: player,
			Limit:  recentMoves,
		})
		if err != nil {
			log.Printf("Error building move log for %s: %v", player.Name, err)
			continue
		}

		entry := playerToken(player) + " " + moveLog.Summary
		if len(moveLog.Lines) > 0 {
			entry += "\n```\n" + strings.Join(moveLog.Lines, "\n") + "\n```"
		}
		playing = append(playing, entry)
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  "Playing",
		Value: truncate(joinOrDash(playing, "\n")),
	})

	var finished []string
	for _, player := range game.FinishedPlayers() {
		finished = append(finished, playerToken(player)+" "+messaging.FormatPlayerSummary(player))
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  "Games",
		Value: truncate(joinOrDash(finished, "\n")),
	})

	ladders := make([]string, 0, len(game.Ladders))
	for _, ladder := range game.Ladders {
		ladders = append(ladders, messaging.FormatLadder(ladder))
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  "Ladders",
		Value: truncate(joinOrDash(ladders, ", ")),
	})

	embed := &discordgo.MessageEmbed{
		Title:       "Shoots and Ladders",
		Description: renderBoard(game),
		Color:       color,
		Fields:      fields,
		Timestamp:   now.Format(time.RFC3339),
	}

	if announcement != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: announcement,
		}
	}

	return embed
}

// renderGameComponents returns the Roll and Automatic buttons
func renderGameComponents(game *models.Game) []discordgo.MessageComponent {
	rollButton := discordgo.Button{
		Label:    "Roll Dice",
		Style:    discordgo.SuccessButton,
		CustomID: ButtonRollDice,
		Disabled: game.RoundActive,
		Emoji: &discordgo.ComponentEmoji{
			Name: "🎲",
		},
	}

	automaticLabel := "Turn ON Automatic Mode"
	automaticStyle := discordgo.PrimaryButton
	if game.AutomaticMode {
		automaticLabel = "Turn OFF Automatic Mode"
		automaticStyle = discordgo.SecondaryButton
	}

	automaticButton := discordgo.Button{
		Label:    automaticLabel,
		Style:    automaticStyle,
		CustomID: ButtonToggleAutomatic,
		Emoji: &discordgo.ComponentEmoji{
			Name: "🔁",
		},
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{rollButton, automaticButton},
		},
	}
}

// renderScoreboardEmbed lists finished players, fewest rolls first
func renderScoreboardEmbed(title string, results []*models.Result) *discordgo.MessageEmbed {
	if len(results) == 0 {
		return &discordgo.MessageEmbed{
			Title:       title,
			Description: "Nobody has reached the finish yet.",
			Color:       colorFinished,
		}
	}

	var sb strings.Builder
	for i, result := range results {
		medal := fmt.Sprintf("%d.", i+1)
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}
		fmt.Fprintf(&sb, "%s **%s** - %d rolls\n", medal, result.PlayerName, result.DiceRolls)
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: sb.String(),
		Color:       colorFinished,
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "ON"
	}
	return "OFF"
}

func joinOrDash(lines []string, sep string) string {
	if len(lines) == 0 {
		return "-"
	}
	return strings.Join(lines, sep)
}

func truncate(value string) string {
	if len(value) <= maxFieldLength {
		return value
	}

	cut := maxFieldLength - 3
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut] + "..."
}
