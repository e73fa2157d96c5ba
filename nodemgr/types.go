package nodemgr

import (
	"github.com/asabr-go/asabr/bundle"
)

// Manager gates what may happen at one node: reception, transmission, and
// (optionally, via Processor) processing delay.
type Manager interface {
	// DryRunRx reports whether a bundle may be received during [start,end)
	// without mutating persistent state.
	DryRunRx(start, end bundle.Date, b *bundle.Bundle) bool

	// ScheduleRx commits a reception already approved by DryRunRx with
	// identical arguments.
	ScheduleRx(start, end bundle.Date, b *bundle.Bundle)

	// DryRunTx reports whether a bundle queued since waitingSince may begin
	// transmission during [start,end).
	DryRunTx(waitingSince, start, end bundle.Date, b *bundle.Bundle) bool

	// ScheduleTx commits a transmission already approved by DryRunTx with
	// identical arguments.
	ScheduleTx(waitingSince, start, end bundle.Date, b *bundle.Bundle)
}

// Processor is implemented by node managers with a processing hook that may
// delay, and may clone-and-shrink, a bundle before it is handed to the next
// contact. Pathfinding must call b.Clone() before mutating; DryRunProcess
// must never mutate the caller's bundle.
type Processor interface {
	// DryRunProcess returns the earliest time transmission may begin after
	// processing at, and the (possibly cloned-and-modified) bundle to carry
	// forward. The returned bundle must be a clone when it differs from b.
	DryRunProcess(at bundle.Date, b *bundle.Bundle) (bundle.Date, *bundle.Bundle)

	// ScheduleProcess commits a processing step already approved by
	// DryRunProcess with identical arguments.
	ScheduleProcess(at bundle.Date, b *bundle.Bundle) (bundle.Date, *bundle.Bundle)
}
