package cpparse

import (
	"fmt"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/contactmgr"
	"github.com/asabr-go/asabr/nodemgr"
)

// Contact manager markers.
const (
	MarkerEVL   = "EVL"
	MarkerETO   = "ETO"
	MarkerQD    = "QD"
	MarkerPEVL  = "PEVL"
	MarkerPQD   = "PQD"
	MarkerPBEVL = "PBEVL"
	MarkerPBQD  = "PBQD"
	MarkerSEG   = "SEG"
)

// Node manager markers.
const (
	MarkerNoManagement = "NOMGMT"
	MarkerNoRetention  = "NORETAIN"
	MarkerCompressing  = "COMPRESS"
)

func rateDelay(tok *Tokenizer) (float64, bundle.Duration, error) {
	rate, err := tok.NextFloat()
	if err != nil {
		return 0, 0, fmt.Errorf("rate: %w", err)
	}

	delay, err := tok.NextFloat()
	if err != nil {
		return 0, 0, fmt.Errorf("delay: %w", err)
	}

	return rate, bundle.Duration(delay), nil
}

// priorityBudget reads the three priority-budgeted variant's budget
// tokens, mapped to priorities 0, 1, 2 in order — the format names them
// budget_1..budget_3 without specifying which priority each belongs to;
// this registry resolves that by position, lowest priority first.
func priorityBudget(tok *Tokenizer) (contactmgr.Budget, error) {
	bd := make(contactmgr.Budget, 3)
	for p := bundle.Priority(0); p < 3; p++ {
		v, err := tok.NextFloat()
		if err != nil {
			return nil, fmt.Errorf("budget_%d: %w", p+1, err)
		}
		bd[p] = bundle.Volume(v)
	}

	return bd, nil
}

func segmentationFactory(tok *Tokenizer) (contactmgr.Manager, error) {
	nRates, err := tok.NextInt()
	if err != nil {
		return nil, fmt.Errorf("rate interval count: %w", err)
	}

	rates := make([]contactmgr.RateSpec, nRates)
	for i := range rates {
		s, err := tok.NextFloat()
		if err != nil {
			return nil, fmt.Errorf("rate[%d].start: %w", i, err)
		}
		e, err := tok.NextFloat()
		if err != nil {
			return nil, fmt.Errorf("rate[%d].end: %w", i, err)
		}
		r, err := tok.NextFloat()
		if err != nil {
			return nil, fmt.Errorf("rate[%d].rate: %w", i, err)
		}
		rates[i] = contactmgr.RateSpec{Start: bundle.Date(s), End: bundle.Date(e), Rate: r}
	}

	nDelays, err := tok.NextInt()
	if err != nil {
		return nil, fmt.Errorf("delay interval count: %w", err)
	}

	delays := make([]contactmgr.DelaySpec, nDelays)
	for i := range delays {
		s, err := tok.NextFloat()
		if err != nil {
			return nil, fmt.Errorf("delay[%d].start: %w", i, err)
		}
		e, err := tok.NextFloat()
		if err != nil {
			return nil, fmt.Errorf("delay[%d].end: %w", i, err)
		}
		d, err := tok.NextFloat()
		if err != nil {
			return nil, fmt.Errorf("delay[%d].delay: %w", i, err)
		}
		delays[i] = contactmgr.DelaySpec{Start: bundle.Date(s), End: bundle.Date(e), Delay: bundle.Duration(d)}
	}

	return contactmgr.NewSegmentationManager(rates, delays), nil
}

// DefaultRegistry covers every concrete manager this module ships.
func DefaultRegistry() Registry {
	return Registry{
		Contact: map[string]ContactFactory{
			MarkerEVL: func(tok *Tokenizer) (contactmgr.Manager, error) {
				rate, delay, err := rateDelay(tok)
				if err != nil {
					return nil, err
				}
				return contactmgr.NewEVLManager(rate, delay), nil
			},
			MarkerETO: func(tok *Tokenizer) (contactmgr.Manager, error) {
				rate, delay, err := rateDelay(tok)
				if err != nil {
					return nil, err
				}
				initQ, err := tok.NextFloat()
				if err != nil {
					return nil, fmt.Errorf("initial queue: %w", err)
				}
				maxQ, err := tok.NextFloat()
				if err != nil {
					return nil, fmt.Errorf("max queue: %w", err)
				}
				return contactmgr.NewETOManager(rate, delay, bundle.Volume(initQ), bundle.Volume(maxQ)), nil
			},
			MarkerQD: func(tok *Tokenizer) (contactmgr.Manager, error) {
				rate, delay, err := rateDelay(tok)
				if err != nil {
					return nil, err
				}
				return contactmgr.NewQDManager(rate, delay), nil
			},
			MarkerPEVL: func(tok *Tokenizer) (contactmgr.Manager, error) {
				rate, delay, err := rateDelay(tok)
				if err != nil {
					return nil, err
				}
				return contactmgr.NewPEVLManager(rate, delay), nil
			},
			MarkerPQD: func(tok *Tokenizer) (contactmgr.Manager, error) {
				rate, delay, err := rateDelay(tok)
				if err != nil {
					return nil, err
				}
				return contactmgr.NewPQDManager(rate, delay), nil
			},
			MarkerPBEVL: func(tok *Tokenizer) (contactmgr.Manager, error) {
				rate, delay, err := rateDelay(tok)
				if err != nil {
					return nil, err
				}
				bd, err := priorityBudget(tok)
				if err != nil {
					return nil, err
				}
				return contactmgr.NewPBEVLManager(rate, delay, bd), nil
			},
			MarkerPBQD: func(tok *Tokenizer) (contactmgr.Manager, error) {
				rate, delay, err := rateDelay(tok)
				if err != nil {
					return nil, err
				}
				bd, err := priorityBudget(tok)
				if err != nil {
					return nil, err
				}
				return contactmgr.NewPBQDManager(rate, delay, bd), nil
			},
			MarkerSEG: segmentationFactory,
		},
		Node: map[string]NodeFactory{
			MarkerNoManagement: func(tok *Tokenizer) (nodemgr.Manager, error) {
				return nodemgr.NoManagement{}, nil
			},
			MarkerNoRetention: func(tok *Tokenizer) (nodemgr.Manager, error) {
				maxProc, err := tok.NextFloat()
				if err != nil {
					return nil, fmt.Errorf("max proc time: %w", err)
				}
				return nodemgr.NewNoRetention(bundle.Duration(maxProc)), nil
			},
			MarkerCompressing: func(tok *Tokenizer) (nodemgr.Manager, error) {
				maxPriority, err := tok.NextInt()
				if err != nil {
					return nil, fmt.Errorf("max priority: %w", err)
				}
				procDelay, err := tok.NextFloat()
				if err != nil {
					return nil, fmt.Errorf("proc delay: %w", err)
				}
				return nodemgr.NewCompressing(bundle.Priority(maxPriority), bundle.Duration(procDelay)), nil
			},
		},
	}
}
