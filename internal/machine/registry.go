package machine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/retroenv/retrogolib/set"
)

// ErrUnknownGame is returned when a game name is not registered.
var ErrUnknownGame = errors.New("unknown game")

// Registry holds all known games by name.
type Registry struct {
	games map[string]*GameInfo
	names set.Set[string]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		games: make(map[string]*GameInfo),
		names: set.New[string](),
	}
}

// Register adds games to the registry. Names must be unique and parents
// must be registered before their clones.
func (r *Registry) Register(games ...*GameInfo) error {
	for _, game := range games {
		if game.Name == "" {
			return errors.New("game without name")
		}
		if game.Config == nil {
			return fmt.Errorf("game '%s' has no configuration", game.Name)
		}
		if r.names.Contains(game.Name) {
			return fmt.Errorf("game '%s' registered twice", game.Name)
		}
		if game.IsClone() && !r.names.Contains(game.Parent) {
			return fmt.Errorf("game '%s' references unknown parent '%s'", game.Name, game.Parent)
		}

		r.names.Add(game.Name)
		r.games[game.Name] = game
	}
	return nil
}

// Lookup returns the game with the given name.
func (r *Registry) Lookup(name string) (*GameInfo, error) {
	game, ok := r.games[name]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownGame, name)
	}
	return game, nil
}

// Games returns all registered games sorted by name.
func (r *Registry) Games() []*GameInfo {
	games := make([]*GameInfo, 0, len(r.games))
	for _, game := range r.games {
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].Name < games[j].Name
	})
	return games
}

// Clones returns the clones of a parent set sorted by name.
func (r *Registry) Clones(parent string) []*GameInfo {
	var clones []*GameInfo
	for _, game := range r.Games() {
		if game.Parent == parent {
			clones = append(clones, game)
		}
	}
	return clones
}
