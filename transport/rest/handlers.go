package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/usecase"
)

type gameService interface {
	CreatePlayer(ctx context.Context, username string) (*entity.Player, error)
	GetPlayer(ctx context.Context, id string) (*entity.Player, error)

	CreateGame(ctx context.Context, playerXID, playerOID string) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, username string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	ListGames(ctx context.Context, limit int) ([]*entity.Game, error)
	GetHistory(ctx context.Context, gameID string) (*usecase.History, error)

	SubmitMove(ctx context.Context, gameID, playerID string, x, y int) (*usecase.MoveResult, error)
}

type createPlayerRequest struct {
	Username string `json:"username"`
}

type createGameRequest struct {
	PlayerXID string `json:"player_x_id"`
	PlayerOID string `json:"player_o_id"`
}

type joinGameRequest struct {
	Username string `json:"username"`
}

type submitMoveRequest struct {
	PlayerID string `json:"player_id"`
	X        *int   `json:"x"`
	Y        *int   `json:"y"`
}

func (that *Server) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	player, err := that.games.CreatePlayer(r.Context(), req.Username)
	if err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	writeJSON(w, http.StatusCreated, player)
}

func (that *Server) getPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := that.games.GetPlayer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	writeJSON(w, http.StatusOK, player)
}

func (that *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	if req.PlayerXID == "" {
		writeError(w, that.requestLogger(r), fmt.Errorf("%w: player_x_id is required", errBadRequest))
		return
	}

	game, err := that.games.CreateGame(r.Context(), req.PlayerXID, req.PlayerOID)
	if err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *Server) listGames(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, that.requestLogger(r), fmt.Errorf("%w: limit must be an integer", errBadRequest))
			return
		}
		limit = parsed
	}

	games, err := that.games.ListGames(r.Context(), limit)
	if err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	writeJSON(w, http.StatusOK, games)
}

func (that *Server) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) joinGame(w http.ResponseWriter, r *http.Request) {
	var req joinGameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	game, err := that.games.JoinGame(r.Context(), mux.Vars(r)["id"], req.Username)
	if err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) submitMove(w http.ResponseWriter, r *http.Request) {
	var req submitMoveRequest
	if err := decode(r, &req); err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	if req.PlayerID == "" || req.X == nil || req.Y == nil {
		writeError(w, that.requestLogger(r), fmt.Errorf("%w: player_id, x and y are required", errBadRequest))
		return
	}

	result, err := that.games.SubmitMove(r.Context(), mux.Vars(r)["id"], req.PlayerID, *req.X, *req.Y)
	if err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (that *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	history, err := that.games.GetHistory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, that.requestLogger(r), err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s", errBadRequest, err.Error())
	}

	return nil
}
