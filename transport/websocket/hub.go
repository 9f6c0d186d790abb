package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-api/internal/usecase"
)

// hub tracks which clients watch which game.
type hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	games   map[string]map[*client]struct{}
	clients map[*client]struct{}
}

func newHub(logger *slog.Logger) *hub {
	return &hub{
		logger:  logger,
		games:   make(map[string]map[*client]struct{}),
		clients: make(map[*client]struct{}),
	}
}

func (that *hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c] = struct{}{}
}

func (that *hub) subscribe(gameID string, c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	subscribers, ok := that.games[gameID]
	if !ok {
		subscribers = make(map[*client]struct{})
		that.games[gameID] = subscribers
	}
	subscribers[c] = struct{}{}
}

// unregister - drops c from every game it watched and stops its writer.
func (that *hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for gameID, subscribers := range that.games {
		delete(subscribers, c)
		if len(subscribers) == 0 {
			delete(that.games, gameID)
		}
	}

	delete(that.clients, c)
	c.close()
}

func (that *hub) subscribers(gameID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.games[gameID])
}

// publish - pushes a game:update to every subscriber of the updated game.
func (that *hub) publish(update usecase.Update) {
	data, err := encode(actionUpdate, ResponsePayload{Game: update.Game, Move: update.Move})
	if err != nil {
		that.logger.Error("failed to encode update", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for c := range that.games[update.Game.ID] {
		c.enqueue(data)
	}
}

func (that *hub) closeAll() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for c := range that.clients {
		c.close()
	}
}
