package models

// Status classifies the outcome of one adapter invocation.
type Status int

const (
	// StatusOK means the adapter collected live data without incident.
	StatusOK Status = iota
	// StatusDegraded means a failure occurred after some items were
	// collected; Items holds the partial set.
	StatusDegraded
	// StatusUnavailable means no live data was collected; Items holds the
	// synthetic fallback set (or nothing, for sources without fallback).
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	default:
		return "unavailable"
	}
}

// Result is the total outcome of one source adapter call. Adapters never
// return errors; every failure is folded into a Status plus a Reason the
// pipeline surfaces as a warning.
type Result struct {
	Platform Platform
	Status   Status
	Items    []TextItem
	Reason   string
}

// ResultOK wraps a fully successful adapter run.
func ResultOK(p Platform, items []TextItem) Result {
	return Result{Platform: p, Status: StatusOK, Items: items}
}

// ResultDegraded wraps a partial adapter run: items gathered before the
// failure plus the human-readable reason.
func ResultDegraded(p Platform, items []TextItem, reason string) Result {
	return Result{Platform: p, Status: StatusDegraded, Items: items, Reason: reason}
}

// ResultUnavailable wraps a run that produced no live data.
func ResultUnavailable(p Platform, items []TextItem, reason string) Result {
	return Result{Platform: p, Status: StatusUnavailable, Items: items, Reason: reason}
}
