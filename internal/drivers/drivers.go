// Package drivers lists all machine drivers of the module.
package drivers

import (
	"fmt"

	"github.com/retroenv/retrodrivers/internal/drivers/mrgame"
	"github.com/retroenv/retrodrivers/internal/drivers/rolands10"
	"github.com/retroenv/retrodrivers/internal/machine"
)

// Registry returns a registry containing every supported game and system.
func Registry() (*machine.Registry, error) {
	r := machine.NewRegistry()
	if err := r.Register(mrgame.Games()...); err != nil {
		return nil, fmt.Errorf("registering mrgame drivers: %w", err)
	}
	if err := r.Register(rolands10.Systems()...); err != nil {
		return nil, fmt.Errorf("registering roland s10 drivers: %w", err)
	}
	return r, nil
}
