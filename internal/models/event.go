package models

// EventType identifies an observable change of a game
type EventType string

const (
	EventRollStarted          EventType = "roll_started"
	EventDiceRevealed         EventType = "dice_revealed"
	EventRollSettled          EventType = "roll_settled"
	EventPlayerStepped        EventType = "player_stepped"
	EventMoveRecorded         EventType = "move_recorded"
	EventLadderTaken          EventType = "ladder_taken"
	EventPlayerFinished       EventType = "player_finished"
	EventPlayerSpawned        EventType = "player_spawned"
	EventRoundSettled         EventType = "round_settled"
	EventAutomaticModeChanged EventType = "automatic_mode_changed"
)

// GameEvent carries a snapshot taken right after the change it describes
type GameEvent struct {
	Type EventType `json:"type"`

	GameID string `json:"gameId"`

	// PlayerID is zero when the event is not about one player
	PlayerID int `json:"playerId,omitempty"`

	Game *Game `json:"game"`
}
