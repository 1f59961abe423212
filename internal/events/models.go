package events

// Event represents a single user-interaction fact in the event log.
//
// Timestamp is a UTC RFC3339 string. Storing it as text keeps lexicographic
// order identical to chronological order, which every aggregator relies on
// for date comparison and day truncation. All session-level attributes
// (UserID, Variant, Device, Channel, ExperimentID, ExperimentName) are fixed
// at session creation and shared by every event of the session.
type Event struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	EventID        string `gorm:"uniqueIndex;size:36;not null" json:"event_id"`
	Timestamp      string `gorm:"index;size:20;not null" json:"timestamp"`
	SessionID      string `gorm:"index;not null" json:"session_id"`
	UserID         string `gorm:"index" json:"user_id"`
	EventName      string `gorm:"index;not null" json:"event_name"`
	Variant        string `gorm:"size:8" json:"variant"`
	Device         string `gorm:"size:16" json:"device"`
	Channel        string `gorm:"size:16" json:"channel"`
	ExperimentID   string `gorm:"index" json:"experiment_id"`
	ExperimentName string `json:"experiment_name"`
	Value          int64  `json:"value"`
}

// Date returns the UTC calendar date portion of the event timestamp
// (the 10-character "2006-01-02" prefix). Empty for malformed timestamps.
func (e Event) Date() string {
	if len(e.Timestamp) < dateLen {
		return ""
	}
	return e.Timestamp[:dateLen]
}

const dateLen = len("2006-01-02")
