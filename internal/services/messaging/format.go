package messaging

import (
	"fmt"
	"strconv"

	"github.com/KirkDiggler/shoots/internal/models"
)

var diceEmoji = []string{"", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣"}

// PadPosition right-aligns a position to three characters. 100 is left as is.
func PadPosition(position int) string {
	if position == 100 {
		return strconv.Itoa(position)
	}
	return fmt.Sprintf("%3d", position)
}

// DiceEmoji returns the keycap emoji for a die face, or the plain number
// for faces without one
func DiceEmoji(face int) string {
	if face > 0 && face < len(diceEmoji) {
		return diceEmoji[face]
	}
	return strconv.Itoa(face)
}

// FormatMove renders one move log line, e.g. "3:  12 ->  16 🎲4️⃣"
func FormatMove(move *models.Move) string {
	line := fmt.Sprintf("%d: %s -> %s ", move.MoveNumber, PadPosition(move.From), PadPosition(move.To))
	if move.Dice > 0 {
		line += "🎲" + DiceEmoji(move.Dice)
	}
	return line + string(move.MoveType)
}

// FormatLadder renders a ladder as "start -> end"
func FormatLadder(ladder *models.Ladder) string {
	return fmt.Sprintf("%d -> %d", ladder.Start, ladder.End)
}

// FormatPlayerSummary renders the scoreboard line for a player
func FormatPlayerSummary(player *models.Player) string {
	return fmt.Sprintf("Name: %s, Dice Rolls: %d", player.Name, player.DiceRolls)
}
