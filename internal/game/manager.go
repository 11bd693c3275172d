package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phorb/eggsplode-server/internal/catalog"
	"go.uber.org/zap"
)

// Manager manages the set of live games.
type Manager struct {
	games   map[string]*Game
	mu      sync.RWMutex
	catalog *catalog.Catalog
	sink    PresentationSink
	logger  *zap.Logger
}

// NewManager creates a new game manager.
func NewManager(cat *catalog.Catalog, sink PresentationSink, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		games:   make(map[string]*Game),
		catalog: cat,
		sink:    sink,
		logger:  logger,
	}
}

// CreateGame creates a new game in the lobby state.
func (m *Manager) CreateGame(rules Rules) *Game {
	m.mu.Lock()
	defer m.mu.Unlock()

	g := NewGame(uuid.New().String(), m.catalog, rules, m.sink, m.logger)
	m.games[g.ID] = g

	m.logger.Info("game created",
		zap.String("game_id", g.ID),
		zap.Strings("expansions", rules.Expansions),
	)
	return g
}

// GetGame retrieves a game by ID.
func (m *Manager) GetGame(gameID string) (*Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.games[gameID]
	return g, ok
}

// RemoveGame removes a game from the registry.
func (m *Manager) RemoveGame(gameID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.games, gameID)

	m.logger.Info("game removed", zap.String("game_id", gameID))
}

// GetAllGames returns all registered games.
func (m *Manager) GetAllGames() []*Game {
	m.mu.RLock()
	defer m.mu.RUnlock()

	games := make([]*Game, 0, len(m.games))
	for _, g := range m.games {
		games = append(games, g)
	}
	return games
}

// GetActiveGameCount returns the count of games that have not ended.
func (m *Manager) GetActiveGameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, g := range m.games {
		if g.CurrentState() != StateEnded {
			count++
		}
	}
	return count
}

// CheckTimeouts drives the timeout defaults of every live game and sweeps
// ended games out of the registry. Hosts call this from a ticker.
func (m *Manager) CheckTimeouts(now time.Time) {
	for _, g := range m.GetAllGames() {
		g.CheckTimeouts(now)
		if g.CurrentState() == StateEnded {
			m.RemoveGame(g.ID)
		}
	}
}
