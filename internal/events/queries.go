package events

import (
	"fmt"

	"gorm.io/gorm"
)

const insertBatchSize = 500

// LoadAll retrieves the full event collection ordered by timestamp.
// This is the snapshot-load query; everything downstream works on the
// returned slice in memory.
func LoadAll(db *gorm.DB) ([]Event, error) {
	var evs []Event
	if err := db.Model(&Event{}).Order("timestamp ASC, event_id ASC").Find(&evs).Error; err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	return evs, nil
}

// Count returns the total number of stored events.
func Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Event{}).Count(&count).Error
	return count, err
}

// InsertBatch persists a batch of events.
func InsertBatch(db *gorm.DB, evs []Event) error {
	if len(evs) == 0 {
		return nil
	}
	if err := db.CreateInBatches(evs, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert events: %w", err)
	}
	return nil
}

// DeleteAll removes every stored event. Used by the seeder before a reseed.
func DeleteAll(db *gorm.DB) error {
	if err := db.Exec("DELETE FROM events").Error; err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	return nil
}
