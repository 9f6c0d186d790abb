package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

const (
	actionSubscribe = "game:subscribe"
	actionTurn      = "game:turn"
	actionUpdate    = "game:update"
	actionError     = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type subscribeRequest struct {
	GameID string `json:"game_id"`
}

type turnRequest struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	X        *int   `json:"x"`
	Y        *int   `json:"y"`
}

type ResponsePayload struct {
	Game  *entity.Game `json:"game,omitempty"`
	Move  *entity.Move `json:"move,omitempty"`
	Error string       `json:"error,omitempty"`
}

func encode(action string, payload ResponsePayload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: action, Payload: body})
}
