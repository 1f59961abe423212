// Package seeder generates internally consistent synthetic event traffic
// for demos and statistical tests. Sessions walk the funnel in order and
// drop off with configurable probabilities, so aggregate counts land near
// the configured rates over large samples.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/karloscodes/cartridge"

	"funnelpulse/internal/events"
)

// GeneratorConfig tunes the synthetic traffic shape. Probabilities are the
// chance a session advances from one funnel step to the next.
type GeneratorConfig struct {
	Sessions         int
	Days             int
	CartRate         float64
	CheckoutRate     float64
	PurchaseRate     float64
	VariantBUplift   float64
	MinPurchaseCents int64
	MaxPurchaseCents int64
	Seed             uint64
	StartTime        time.Time
}

// DefaultGeneratorConfig returns the demo traffic shape: a gentle funnel
// with a slight conversion uplift on variant B.
func DefaultGeneratorConfig(sessions int) GeneratorConfig {
	return GeneratorConfig{
		Sessions:         sessions,
		Days:             30,
		CartRate:         0.42,
		CheckoutRate:     0.55,
		PurchaseRate:     0.65,
		VariantBUplift:   0.08,
		MinPurchaseCents: 1500,
		MaxPurchaseCents: 24900,
		Seed:             uint64(time.Now().UnixNano()),
		StartTime:        time.Now().UTC().AddDate(0, 0, -30),
	}
}

type experiment struct {
	id   string
	name string
}

var experiments = []experiment{
	{id: "exp-checkout-cta", name: "Checkout CTA Copy"},
	{id: "exp-free-shipping", name: "Free Shipping Banner"},
}

var deviceWeights = []struct {
	device string
	weight int
}{
	{events.DeviceMobile, 52},
	{events.DeviceDesktop, 38},
	{events.DeviceTablet, 10},
}

var channelWeights = []struct {
	channel string
	weight  int
}{
	{events.ChannelOrganic, 34},
	{events.ChannelPaidSearch, 26},
	{events.ChannelSocial, 18},
	{events.ChannelEmail, 12},
	{events.ChannelDirect, 10},
}

// GenerateSessions produces the full synthetic event set. The same seed
// yields the same events. Session attributes (device, channel, variant,
// experiment) are chosen once at session creation and repeated on every
// event of the session; timestamps within a session advance by 10 to 110
// seconds per step.
func GenerateSessions(cfg GeneratorConfig) []events.Event {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	start := cfg.StartTime
	if start.IsZero() {
		start = time.Now().UTC().AddDate(0, 0, -cfg.Days)
	}
	daySpan := cfg.Days
	if daySpan < 1 {
		daySpan = 1
	}

	generated := make([]events.Event, 0, cfg.Sessions*2)
	for i := 0; i < cfg.Sessions; i++ {
		sessionID := fmt.Sprintf("sess-%s", uuid.NewString())
		userID := fmt.Sprintf("user-%s", uuid.NewString())
		device := weightedDevice(rng)
		channel := weightedChannel(rng)

		exp := experiments[rng.IntN(len(experiments))]
		variant := events.VariantA
		if rng.Float64() < 0.5 {
			variant = events.VariantB
		}

		// Spread session starts uniformly over the generated window.
		at := start.Add(time.Duration(rng.Int64N(int64(daySpan)*24*60*60)) * time.Second)

		emit := func(name string) {
			generated = append(generated, events.Event{
				EventID:        uuid.NewString(),
				Timestamp:      at.UTC().Format(time.RFC3339),
				SessionID:      sessionID,
				UserID:         userID,
				EventName:      name,
				Variant:        variant,
				Device:         device,
				Channel:        channel,
				ExperimentID:   exp.id,
				ExperimentName: exp.name,
			})
			at = at.Add(time.Duration(10+rng.IntN(100)) * time.Second)
		}

		emit(events.EventPageView)

		if rng.Float64() >= cfg.CartRate {
			continue
		}
		emit(events.EventAddToCart)

		if rng.Float64() >= cfg.CheckoutRate {
			continue
		}
		emit(events.EventBeginCheckout)

		purchaseRate := cfg.PurchaseRate
		if variant == events.VariantB {
			purchaseRate += cfg.VariantBUplift
		}
		if rng.Float64() >= purchaseRate {
			continue
		}

		value := cfg.MinPurchaseCents
		if cfg.MaxPurchaseCents > cfg.MinPurchaseCents {
			value += rng.Int64N(cfg.MaxPurchaseCents - cfg.MinPurchaseCents)
		}
		generated = append(generated, events.Event{
			EventID:        uuid.NewString(),
			Timestamp:      at.UTC().Format(time.RFC3339),
			SessionID:      sessionID,
			UserID:         userID,
			EventName:      events.EventPurchase,
			Variant:        variant,
			Device:         device,
			Channel:        channel,
			ExperimentID:   exp.id,
			ExperimentName: exp.name,
			Value:          value,
		})
	}
	return generated
}

func weightedDevice(rng *rand.Rand) string {
	n := rng.IntN(100)
	for _, w := range deviceWeights {
		if n < w.weight {
			return w.device
		}
		n -= w.weight
	}
	return events.DeviceDesktop
}

func weightedChannel(rng *rand.Rand) string {
	n := rng.IntN(100)
	for _, w := range channelWeights {
		if n < w.weight {
			return w.channel
		}
		n -= w.weight
	}
	return events.ChannelDirect
}

// Seeder replaces the events table with freshly generated synthetic traffic.
type Seeder struct {
	DBManager    cartridge.DBManager
	Logger       *slog.Logger
	SessionCount int
}

// NewSeeder creates a new seeder instance
func NewSeeder(dbManager cartridge.DBManager, logger *slog.Logger, sessionCount int) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		DBManager:    dbManager,
		Logger:       logger,
		SessionCount: sessionCount,
	}
}

// Run wipes the events table and inserts a freshly generated data set.
func (s *Seeder) Run(ctx context.Context) error {
	start := time.Now()
	s.Logger.Info("Seeding synthetic sessions...", slog.Int("sessions", s.SessionCount))

	if err := ctx.Err(); err != nil {
		return err
	}

	db := s.DBManager.GetConnection()

	generated := GenerateSessions(DefaultGeneratorConfig(s.SessionCount))

	if err := events.DeleteAll(db); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}
	if err := events.InsertBatch(db, generated); err != nil {
		return fmt.Errorf("failed to insert events: %w", err)
	}

	s.Logger.Info("Seeding completed successfully",
		slog.Int("events", len(generated)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
