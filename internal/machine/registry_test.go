package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func registryGame(name, parent string) *GameInfo {
	return &GameInfo{
		Name:   name,
		Parent: parent,
		Config: func(*Machine) error { return nil },
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.Register(
		registryGame("motrshow", ""),
		registryGame("motrshowa", "motrshow"),
		registryGame("dakar", ""),
	))

	game, err := r.Lookup("motrshowa")
	assert.NoError(t, err)
	assert.True(t, game.IsClone())

	games := r.Games()
	assert.Len(t, games, 3)
	assert.Equal(t, "dakar", games[0].Name)

	clones := r.Clones("motrshow")
	assert.Len(t, clones, 1)
	assert.Equal(t, "motrshowa", clones[0].Name)

	_, err = r.Lookup("pacman")
	assert.True(t, errors.Is(err, ErrUnknownGame))
}

func TestRegistryErrors(t *testing.T) {
	tests := []struct {
		name  string
		games []*GameInfo
		err   string
	}{
		{name: "duplicate", games: []*GameInfo{registryGame("dakar", ""), registryGame("dakar", "")}, err: "registered twice"},
		{name: "unknown parent", games: []*GameInfo{registryGame("motrshowa", "motrshow")}, err: "unknown parent"},
		{name: "no name", games: []*GameInfo{registryGame("", "")}, err: "without name"},
		{name: "no config", games: []*GameInfo{{Name: "dakar"}}, err: "no configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			assert.ErrorContains(t, r.Register(tt.games...), tt.err)
		})
	}
}
