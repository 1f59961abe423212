package analytics

import (
	"strings"

	"funnelpulse/internal/events"
)

// FunnelStep holds unique-session counts and drop-off percentages for one
// step of the fixed funnel.
type FunnelStep struct {
	StepName        string  `json:"step_name"`
	Sessions        int64   `json:"sessions"`
	PctFromPrevious float64 `json:"pct_from_previous"`
	PctFromStart    float64 `json:"pct_from_start"`
}

// ComputeFunnel counts the distinct sessions reaching each funnel step, in
// step order. Sessions are counted once per step regardless of how many
// matching events they produced. Percentages follow the drop-off
// conventions: the first step's pct_from_previous is 100 by definition, and
// a zero-session predecessor yields 0 rather than a division error.
func ComputeFunnel(evs []events.Event) []FunnelStep {
	stepIndex := make(map[string]int, len(events.FunnelSteps))
	for i, name := range events.FunnelSteps {
		stepIndex[name] = i
	}

	sessionSets := make([]map[string]struct{}, len(events.FunnelSteps))
	for i := range sessionSets {
		sessionSets[i] = make(map[string]struct{})
	}

	for _, e := range evs {
		idx, ok := stepIndex[e.EventName]
		if !ok {
			continue // outside the step vocabulary
		}
		sessionSets[idx][e.SessionID] = struct{}{}
	}

	steps := make([]FunnelStep, len(events.FunnelSteps))
	firstCount := int64(len(sessionSets[0]))
	for i, name := range events.FunnelSteps {
		count := int64(len(sessionSets[i]))

		fromPrevious := float64(100)
		if i > 0 {
			fromPrevious = pct(count, int64(len(sessionSets[i-1])))
		}

		steps[i] = FunnelStep{
			StepName:        strings.ReplaceAll(name, "_", " "),
			Sessions:        count,
			PctFromPrevious: fromPrevious,
			PctFromStart:    pct(count, firstCount),
		}
	}
	return steps
}
