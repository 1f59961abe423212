package seeder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnelpulse/internal/analytics"
	"funnelpulse/internal/events"
	"funnelpulse/internal/seeder"
	"funnelpulse/internal/testsupport"
)

func testConfig(sessions int) seeder.GeneratorConfig {
	cfg := seeder.DefaultGeneratorConfig(sessions)
	cfg.Seed = 42
	cfg.StartTime = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return cfg
}

func TestGenerateSessionsDeterministic(t *testing.T) {
	first := seeder.GenerateSessions(testConfig(50))
	second := seeder.GenerateSessions(testConfig(50))

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].SessionID, second[i].SessionID)
		assert.Equal(t, first[i].EventName, second[i].EventName)
		assert.Equal(t, first[i].Timestamp, second[i].Timestamp)
	}
}

func TestGenerateSessionsAttributesFixedPerSession(t *testing.T) {
	generated := seeder.GenerateSessions(testConfig(200))

	type attrs struct {
		device, channel, variant, experimentID, userID string
	}
	bySession := make(map[string]attrs)

	for _, e := range generated {
		got := attrs{e.Device, e.Channel, e.Variant, e.ExperimentID, e.UserID}
		if prev, seen := bySession[e.SessionID]; seen {
			assert.Equal(t, prev, got, "session %s changed attributes mid-stream", e.SessionID)
		} else {
			bySession[e.SessionID] = got
		}
	}

	assert.Len(t, bySession, 200)
}

func TestGenerateSessionsMonotonicProgression(t *testing.T) {
	generated := seeder.GenerateSessions(testConfig(500))

	stepRank := map[string]int{
		events.EventPageView:      0,
		events.EventAddToCart:     1,
		events.EventBeginCheckout: 2,
		events.EventPurchase:      3,
	}

	lastRank := make(map[string]int)
	lastTime := make(map[string]string)

	for _, e := range generated {
		rank, ok := stepRank[e.EventName]
		require.True(t, ok, "unexpected event name %q", e.EventName)

		if prev, seen := lastRank[e.SessionID]; seen {
			assert.Equal(t, prev+1, rank, "session %s skipped a step", e.SessionID)
			assert.Less(t, lastTime[e.SessionID], e.Timestamp, "session %s went back in time", e.SessionID)
		} else {
			assert.Equal(t, 0, rank, "session %s did not start with page_view", e.SessionID)
		}
		lastRank[e.SessionID] = rank
		lastTime[e.SessionID] = e.Timestamp
	}
}

func TestGenerateSessionsPurchaseValuesInRange(t *testing.T) {
	cfg := testConfig(500)
	generated := seeder.GenerateSessions(cfg)

	var purchases int
	for _, e := range generated {
		if e.EventName != events.EventPurchase {
			assert.Zero(t, e.Value)
			continue
		}
		purchases++
		assert.GreaterOrEqual(t, e.Value, cfg.MinPurchaseCents)
		assert.Less(t, e.Value, cfg.MaxPurchaseCents)
	}
	assert.Positive(t, purchases)
}

func TestGenerateSessionsDropOffRatesWithinTolerance(t *testing.T) {
	// Statistical property over a large sample: observed step-to-step
	// pass-through should land within ±10% of the configured rates.
	cfg := testConfig(5000)
	generated := seeder.GenerateSessions(cfg)

	steps := analytics.ComputeFunnel(generated)
	require.Len(t, steps, 4)
	assert.Equal(t, int64(5000), steps[0].Sessions)

	assert.InDelta(t, cfg.CartRate, float64(steps[1].Sessions)/float64(steps[0].Sessions), 0.10*cfg.CartRate+0.02)
	assert.InDelta(t, cfg.CheckoutRate, float64(steps[2].Sessions)/float64(steps[1].Sessions), 0.10*cfg.CheckoutRate+0.02)

	// Purchase rate is blended across arms, B carries the uplift.
	blended := cfg.PurchaseRate + cfg.VariantBUplift/2
	assert.InDelta(t, blended, float64(steps[3].Sessions)/float64(steps[2].Sessions), 0.10*blended+0.02)
}

func TestGenerateSessionsVariantBUplift(t *testing.T) {
	cfg := testConfig(8000)
	cfg.VariantBUplift = 0.15
	generated := seeder.GenerateSessions(cfg)

	reports := analytics.ComputeABTests(generated)
	require.NotEmpty(t, reports)

	// Aggregate both experiments; B should convert visibly better than A.
	var purchasesA, purchasesB, sessionsA, sessionsB int64
	for _, report := range reports {
		sessionsA += report.Results[0].Sessions
		purchasesA += report.Results[0].Conversions
		sessionsB += report.Results[1].Sessions
		purchasesB += report.Results[1].Conversions
	}
	require.Positive(t, sessionsA)
	require.Positive(t, sessionsB)

	rateA := float64(purchasesA) / float64(sessionsA)
	rateB := float64(purchasesB) / float64(sessionsB)
	assert.Greater(t, rateB, rateA)
}

func TestSeederRunReplacesExistingEvents(t *testing.T) {
	dbManager, logger := testsupport.SetupTestDBManager(t)
	db := dbManager.GetConnection()

	stale := []events.Event{
		testsupport.BuildEvent("old-session", events.EventPageView, "2020-01-01T00:00:00Z"),
	}
	require.NoError(t, events.InsertBatch(db, stale))

	s := seeder.NewSeeder(dbManager, logger, 50)
	require.NoError(t, s.Run(context.Background()))

	count, err := events.Count(db)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, int64(50))

	loaded, err := events.LoadAll(db)
	require.NoError(t, err)
	for _, e := range loaded {
		assert.NotEqual(t, "old-session", e.SessionID)
	}
}
