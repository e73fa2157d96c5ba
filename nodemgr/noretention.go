package nodemgr

import "github.com/asabr-go/asabr/bundle"

// NoRetention gates transmission on how long a bundle has waited at the
// node: DryRunTx succeeds only if start-waitingSince < MaxProcTime. It
// otherwise behaves like NoManagement (reception is always permitted; this
// manager models a node that cannot hold bundles indefinitely waiting for
// the next contact, not one that limits storage volume).
type NoRetention struct {
	NoManagement
	MaxProcTime bundle.Duration
}

// NewNoRetention constructs a NoRetention gate with the given maximum
// dwell time before a queued bundle is considered stale.
func NewNoRetention(maxProcTime bundle.Duration) *NoRetention {
	return &NoRetention{MaxProcTime: maxProcTime}
}

// DryRunTx succeeds only if the bundle has waited less than MaxProcTime.
func (n *NoRetention) DryRunTx(waitingSince, start, end bundle.Date, b *bundle.Bundle) bool {
	return start-waitingSince < n.MaxProcTime
}

// ScheduleTx is a no-op: NoRetention tracks no state beyond the
// caller-supplied waitingSince/start pair already checked by DryRunTx.
func (n *NoRetention) ScheduleTx(waitingSince, start, end bundle.Date, b *bundle.Bundle) {}
