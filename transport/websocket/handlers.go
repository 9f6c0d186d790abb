package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	errBadPayload = errors.New("invalid payload")
	errInternal   = errors.New("internal error")
)

// handleSubscribe - starts pushing updates of the game to c and answers with its current state.
func (that *Server) handleSubscribe(ctx context.Context, c *client, msg *Message) error {
	var req subscribeRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil || req.GameID == "" {
		return fmt.Errorf("%w: game_id is required", errBadPayload)
	}

	game, err := that.games.GetGame(ctx, req.GameID)
	if err != nil {
		return err
	}

	that.hub.subscribe(game.ID, c)
	that.reply(c, msg.Action, ResponsePayload{Game: game})

	return nil
}

// handleTurn - submits a move. Subscribers learn about it through the game:update broadcast.
func (that *Server) handleTurn(ctx context.Context, c *client, msg *Message) error {
	var req turnRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil || req.GameID == "" || req.PlayerID == "" || req.X == nil || req.Y == nil {
		return fmt.Errorf("%w: game_id, player_id, x and y are required", errBadPayload)
	}

	result, err := that.games.SubmitMove(ctx, req.GameID, req.PlayerID, *req.X, *req.Y)
	if err != nil {
		return err
	}

	that.reply(c, msg.Action, ResponsePayload{Game: result.Game, Move: result.Move})

	return nil
}
