package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnelpulse/internal/analytics"
	"funnelpulse/internal/events"
	"funnelpulse/internal/testsupport"
)

func TestComputeABTestsEmptyInput(t *testing.T) {
	assert.Empty(t, analytics.ComputeABTests(nil))
}

func TestComputeABTestsBothArmsAlwaysPresent(t *testing.T) {
	// Only variant A has traffic; B must still be reported, zero-valued.
	evs := []events.Event{
		testsupport.BuildExperimentEvent("s1", events.EventPageView, "2025-03-10T10:00:00Z", "exp-1", events.VariantA),
	}

	reports := analytics.ComputeABTests(evs)
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Results, 2)

	assert.Equal(t, events.VariantA, reports[0].Results[0].Variant)
	assert.Equal(t, int64(1), reports[0].Results[0].Sessions)
	assert.Equal(t, events.VariantB, reports[0].Results[1].Variant)
	assert.Zero(t, reports[0].Results[1].Sessions)
	assert.Zero(t, reports[0].Results[1].ConversionRate)
}

func TestComputeABTestsWinnerAndLift(t *testing.T) {
	evs := []events.Event{
		// A: 2 sessions, 1 purchase -> 50% rate
		testsupport.BuildExperimentEvent("a1", events.EventPageView, "2025-03-10T10:00:00Z", "exp-1", events.VariantA),
		testsupport.BuildExperimentEvent("a2", events.EventPageView, "2025-03-10T10:01:00Z", "exp-1", events.VariantA),
		purchaseInExperiment("a1", "2025-03-10T10:05:00Z", "exp-1", events.VariantA, 5000),
		// B: 2 sessions, 2 purchases -> 100% rate
		testsupport.BuildExperimentEvent("b1", events.EventPageView, "2025-03-10T10:02:00Z", "exp-1", events.VariantB),
		testsupport.BuildExperimentEvent("b2", events.EventPageView, "2025-03-10T10:03:00Z", "exp-1", events.VariantB),
		purchaseInExperiment("b1", "2025-03-10T10:06:00Z", "exp-1", events.VariantB, 3000),
		purchaseInExperiment("b2", "2025-03-10T10:07:00Z", "exp-1", events.VariantB, 2000),
	}

	reports := analytics.ComputeABTests(evs)
	require.Len(t, reports, 1)
	report := reports[0]

	assert.Equal(t, "exp-1", report.ExperimentID)
	assert.Equal(t, events.VariantB, report.Winner)

	require.NotNil(t, report.Lift)
	// (100 - 50) / 50 * 100
	assert.InDelta(t, 100.0, *report.Lift, 1e-9)

	a, b := report.Results[0], report.Results[1]
	assert.Equal(t, float64(50), a.ConversionRate)
	assert.Equal(t, int64(5000), a.Revenue)
	assert.InDelta(t, 2500.0, a.RevenuePerSession, 1e-9)
	assert.Equal(t, float64(100), b.ConversionRate)
	assert.Equal(t, int64(5000), b.Revenue)
}

func TestComputeABTestsLiftUndefinedAtZeroBaseline(t *testing.T) {
	evs := []events.Event{
		testsupport.BuildExperimentEvent("a1", events.EventPageView, "2025-03-10T10:00:00Z", "exp-1", events.VariantA),
		testsupport.BuildExperimentEvent("b1", events.EventPageView, "2025-03-10T10:01:00Z", "exp-1", events.VariantB),
		purchaseInExperiment("b1", "2025-03-10T10:05:00Z", "exp-1", events.VariantB, 1000),
	}

	reports := analytics.ComputeABTests(evs)
	require.Len(t, reports, 1)

	assert.Equal(t, events.VariantB, reports[0].Winner)
	assert.Nil(t, reports[0].Lift)
}

func TestComputeABTestsTieHasNoWinner(t *testing.T) {
	evs := []events.Event{
		testsupport.BuildExperimentEvent("a1", events.EventPageView, "2025-03-10T10:00:00Z", "exp-1", events.VariantA),
		purchaseInExperiment("a1", "2025-03-10T10:05:00Z", "exp-1", events.VariantA, 1000),
		testsupport.BuildExperimentEvent("b1", events.EventPageView, "2025-03-10T10:01:00Z", "exp-1", events.VariantB),
		purchaseInExperiment("b1", "2025-03-10T10:06:00Z", "exp-1", events.VariantB, 1000),
	}

	reports := analytics.ComputeABTests(evs)
	require.Len(t, reports, 1)

	assert.Equal(t, "", reports[0].Winner)
	require.NotNil(t, reports[0].Lift)
	assert.Zero(t, *reports[0].Lift)
}

func TestComputeABTestsConversionRateCanExceedHundred(t *testing.T) {
	// One session purchasing twice: 2 conversions over 1 session.
	evs := []events.Event{
		testsupport.BuildExperimentEvent("a1", events.EventPageView, "2025-03-10T10:00:00Z", "exp-1", events.VariantA),
		purchaseInExperiment("a1", "2025-03-10T10:05:00Z", "exp-1", events.VariantA, 1000),
		purchaseInExperiment("a1", "2025-03-10T10:06:00Z", "exp-1", events.VariantA, 1000),
	}

	reports := analytics.ComputeABTests(evs)
	require.Len(t, reports, 1)

	assert.Equal(t, float64(200), reports[0].Results[0].ConversionRate)
}

func TestComputeABTestsExcludesUnassignedAndUnknownVariants(t *testing.T) {
	noExperiment := testsupport.BuildEvent("s1", events.EventPageView, "2025-03-10T10:00:00Z")
	unknownVariant := testsupport.BuildExperimentEvent("s2", events.EventPageView, "2025-03-10T10:01:00Z", "exp-1", "C")
	assigned := testsupport.BuildExperimentEvent("s3", events.EventPageView, "2025-03-10T10:02:00Z", "exp-1", events.VariantA)

	reports := analytics.ComputeABTests([]events.Event{noExperiment, unknownVariant, assigned})
	require.Len(t, reports, 1)

	assert.Equal(t, int64(1), reports[0].Results[0].Sessions)
	assert.Zero(t, reports[0].Results[1].Sessions)
}

func TestComputeABTestsSortedByExperimentID(t *testing.T) {
	evs := []events.Event{
		testsupport.BuildExperimentEvent("s1", events.EventPageView, "2025-03-10T10:00:00Z", "exp-zeta", events.VariantA),
		testsupport.BuildExperimentEvent("s2", events.EventPageView, "2025-03-10T10:01:00Z", "exp-alpha", events.VariantB),
	}

	reports := analytics.ComputeABTests(evs)
	require.Len(t, reports, 2)
	assert.Equal(t, "exp-alpha", reports[0].ExperimentID)
	assert.Equal(t, "exp-zeta", reports[1].ExperimentID)
}

func purchaseInExperiment(sessionID, timestamp, experimentID, variant string, value int64) events.Event {
	e := testsupport.BuildExperimentEvent(sessionID, events.EventPurchase, timestamp, experimentID, variant)
	e.Value = value
	return e
}
