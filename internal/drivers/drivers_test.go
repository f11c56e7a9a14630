package drivers

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRegistry(t *testing.T) {
	r, err := Registry()
	assert.NoError(t, err)

	var names []string
	for _, game := range r.Games() {
		names = append(names, game.Name)
	}
	assert.Equal(t, []string{
		"dakar", "macattck", "mks100", "motrshow", "motrshowa", "s10", "s220", "wcup90",
	}, names)

	game, err := r.Lookup("wcup90")
	assert.NoError(t, err)
	assert.Equal(t, 1990, game.Year)
	assert.Equal(t, "Mr Game", game.Manufacturer)
}
