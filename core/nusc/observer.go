package nusc

import "time"

// Observer receives build and query measurements. core/metrics provides the
// Prometheus implementation.
type Observer interface {
	ObserveStage(stage string, d time.Duration)
	ObserveTable(table string, rows int)
	ObserveLookup(table, outcome string)
}

// Lookup outcomes reported to an Observer.
const (
	OutcomeHit         = "hit"
	OutcomeMiss        = "miss"
	OutcomeMalformed   = "malformed"
	OutcomeUnavailable = "unavailable"
	OutcomeUnknown     = "unknown_table"
)

type nopObserver struct{}

func (nopObserver) ObserveStage(string, time.Duration) {}
func (nopObserver) ObserveTable(string, int)           {}
func (nopObserver) ObserveLookup(string, string)       {}
