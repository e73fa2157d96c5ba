package nodemgr

import "github.com/asabr-go/asabr/bundle"

// compressionRatio is the fixed shrink factor Compressing applies to
// eligible bundles: 3/4 of original size.
const compressionRatio = 0.75

// Compressing is a processing-hook node manager: bundles at or below
// MaxPriority are cloned and shrunk to 3/4 their original size, modeling a
// store-and-forward node that recompresses low-priority traffic before
// relaying it; the earliest transmission time is delayed by ProcDelay to
// account for the compression work itself. Higher-priority bundles pass
// through unchanged, still delayed by ProcDelay.
type Compressing struct {
	NoManagement
	MaxPriority bundle.Priority
	ProcDelay   bundle.Duration
}

// NewCompressing constructs a Compressing manager that shrinks bundles at
// priority <= maxPriority and delays every bundle by procDelay.
func NewCompressing(maxPriority bundle.Priority, procDelay bundle.Duration) *Compressing {
	return &Compressing{MaxPriority: maxPriority, ProcDelay: procDelay}
}

func (c *Compressing) process(at bundle.Date, b *bundle.Bundle) (bundle.Date, *bundle.Bundle) {
	out := b
	if b.Priority <= c.MaxPriority {
		out = b.Clone()
		out.Size = bundle.Volume(float64(out.Size) * compressionRatio)
	}

	return at + c.ProcDelay, out
}

// DryRunProcess reports the earliest transmission time and the
// (possibly shrunk) bundle, without mutating b.
func (c *Compressing) DryRunProcess(at bundle.Date, b *bundle.Bundle) (bundle.Date, *bundle.Bundle) {
	return c.process(at, b)
}

// ScheduleProcess commits a processing step already approved by
// DryRunProcess with identical arguments. Compressing has no persistent
// state beyond the bundle clone itself, so this simply repeats the
// computation.
func (c *Compressing) ScheduleProcess(at bundle.Date, b *bundle.Bundle) (bundle.Date, *bundle.Bundle) {
	return c.process(at, b)
}
