package analytics

import (
	"sort"

	"funnelpulse/internal/events"
)

// VariantResult holds the per-arm metrics of one experiment. Conversions are
// purchase events, not purchasing sessions, so conversion_rate can exceed
// 100 when sessions purchase repeatedly. Revenue is in cents.
type VariantResult struct {
	Variant           string  `json:"variant"`
	Sessions          int64   `json:"sessions"`
	Conversions       int64   `json:"conversions"`
	ConversionRate    float64 `json:"conversion_rate"`
	Revenue           int64   `json:"revenue"`
	RevenuePerSession float64 `json:"revenue_per_session"`
}

// ExperimentReport groups both variant results of one experiment with the
// derived comparison. Winner is the variant with the strictly higher
// conversion rate, empty on a tie. Lift is the relative change of B over A
// in percent; it is nil when A's rate is 0 and the ratio is undefined.
type ExperimentReport struct {
	ExperimentID   string          `json:"experiment_id"`
	ExperimentName string          `json:"experiment_name"`
	Results        []VariantResult `json:"results"`
	Winner         string          `json:"winner"`
	Lift           *float64        `json:"lift"`
}

type variantAccumulator struct {
	sessions    map[string]struct{}
	conversions int64
	revenue     int64
}

type experimentAccumulator struct {
	name string
	arms map[string]*variantAccumulator
}

// ComputeABTests groups events by experiment and partitions each experiment
// into the two fixed arms A and B. Both arms always appear in the output,
// zero-valued when empty. Events with a variant outside {A, B} are excluded
// from arm metrics. The first experiment_name seen for an id wins as the
// display name. Output is sorted by experiment_id.
func ComputeABTests(evs []events.Event) []ExperimentReport {
	experiments := make(map[string]*experimentAccumulator)

	for _, e := range evs {
		if e.ExperimentID == "" {
			continue
		}
		exp, ok := experiments[e.ExperimentID]
		if !ok {
			exp = &experimentAccumulator{
				name: e.ExperimentName,
				arms: map[string]*variantAccumulator{
					events.VariantA: {sessions: make(map[string]struct{})},
					events.VariantB: {sessions: make(map[string]struct{})},
				},
			}
			experiments[e.ExperimentID] = exp
		}

		arm, ok := exp.arms[e.Variant]
		if !ok {
			continue // undefined variant values stay out of both arms
		}
		arm.sessions[e.SessionID] = struct{}{}
		if e.EventName == events.EventPurchase {
			arm.conversions++
			arm.revenue += e.Value
		}
	}

	ids := make([]string, 0, len(experiments))
	for id := range experiments {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	reports := make([]ExperimentReport, 0, len(ids))
	for _, id := range ids {
		exp := experiments[id]
		resultA := buildVariantResult(events.VariantA, exp.arms[events.VariantA])
		resultB := buildVariantResult(events.VariantB, exp.arms[events.VariantB])

		reports = append(reports, ExperimentReport{
			ExperimentID:   id,
			ExperimentName: exp.name,
			Results:        []VariantResult{resultA, resultB},
			Winner:         pickWinner(resultA, resultB),
			Lift:           computeLift(resultA.ConversionRate, resultB.ConversionRate),
		})
	}
	return reports
}

func buildVariantResult(variant string, acc *variantAccumulator) VariantResult {
	sessions := int64(len(acc.sessions))
	return VariantResult{
		Variant:           variant,
		Sessions:          sessions,
		Conversions:       acc.conversions,
		ConversionRate:    pct(acc.conversions, sessions),
		Revenue:           acc.revenue,
		RevenuePerSession: ratio(acc.revenue, sessions),
	}
}

func pickWinner(a, b VariantResult) string {
	switch {
	case a.ConversionRate > b.ConversionRate:
		return a.Variant
	case b.ConversionRate > a.ConversionRate:
		return b.Variant
	default:
		return ""
	}
}

// computeLift returns the relative conversion-rate change of B over A in
// percent, or nil when the baseline rate is 0.
func computeLift(rateA, rateB float64) *float64 {
	if rateA == 0 {
		return nil
	}
	lift := (rateB - rateA) / rateA * 100
	return &lift
}
