package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

var errUnknownAction = errors.New("unknown action")

type gameService interface {
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	SubmitMove(ctx context.Context, gameID, playerID string, x, y int) (*usecase.MoveResult, error)
}

type handlerFunc func(ctx context.Context, c *client, message *Message) error

type Server struct {
	logger   *slog.Logger
	games    gameService
	hub      *hub
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

// New - builds the server. allowedOrigin "*" accepts any origin, empty accepts same-origin requests only.
func New(logger *slog.Logger, games gameService, allowedOrigin string) *Server {
	logger = logger.With("component", "websocket")

	server := &Server{
		logger: logger,
		games:  games,
		hub:    newHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigin),
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionSubscribe] = server.handleSubscribe
	server.handlers[actionTurn] = server.handleTurn

	return server
}

// Publish - forwards a game update to the game's subscribers. Register it with GameManager.OnUpdate.
func (that *Server) Publish(update usecase.Update) {
	that.hub.publish(update)
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server and closes every connection once ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
	srv.RegisterOnShutdown(that.hub.closeAll)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection and serves it until the peer leaves.
func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS", "remote_addr", r.RemoteAddr)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(log, conn)
	that.hub.register(c)
	defer that.hub.unregister(c)

	log.Info("WebSocket connection established")

	go c.writePump()
	c.readPump(func(data []byte) {
		that.handleMessage(r.Context(), c, data)
	})

	log.Info("WebSocket connection closed")
}

// handleMessage - dispatches one message; failures are answered to the sender only.
func (that *Server) handleMessage(ctx context.Context, c *client, data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		that.reply(c, actionError, ResponsePayload{Error: "malformed message"})
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		that.reply(c, message.Action, ResponsePayload{Error: fmt.Sprintf("%s: %q", errUnknownAction, message.Action)})
		return
	}

	if err := handler(ctx, c, &message); err != nil {
		if !usecase.IsRejection(err) && !errors.Is(err, errBadPayload) {
			that.logger.Error("error processing message", "action", message.Action, "error", err)
			err = errInternal
		}
		that.reply(c, message.Action, ResponsePayload{Error: err.Error()})
	}
}

func (that *Server) reply(c *client, action string, payload ResponsePayload) {
	data, err := encode(action, payload)
	if err != nil {
		that.logger.Error("failed to encode reply", "action", action, "error", err)
		return
	}

	c.enqueue(data)
}

func checkOrigin(allowed string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		switch {
		case allowed == "*", origin == "":
			return true
		case allowed != "":
			return origin == allowed
		default:
			return origin == "http://"+r.Host || origin == "https://"+r.Host
		}
	}
}
