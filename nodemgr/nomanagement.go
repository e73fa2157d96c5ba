package nodemgr

import "github.com/asabr-go/asabr/bundle"

// NoManagement is the permissive default: every rx/tx gate always succeeds,
// and there is no processing hook. It is the node-manager equivalent of
// lvlath's zero-configuration default Graph — a sensible baseline callers
// override only when a node actually has a resource constraint worth
// modeling.
type NoManagement struct{}

// DryRunRx always permits reception.
func (NoManagement) DryRunRx(start, end bundle.Date, b *bundle.Bundle) bool { return true }

// ScheduleRx is a no-op: NoManagement tracks no state.
func (NoManagement) ScheduleRx(start, end bundle.Date, b *bundle.Bundle) {}

// DryRunTx always permits transmission.
func (NoManagement) DryRunTx(waitingSince, start, end bundle.Date, b *bundle.Bundle) bool {
	return true
}

// ScheduleTx is a no-op: NoManagement tracks no state.
func (NoManagement) ScheduleTx(waitingSince, start, end bundle.Date, b *bundle.Bundle) {}
