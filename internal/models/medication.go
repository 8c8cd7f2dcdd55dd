package models

import "time"

// Effectiveness records whether a dose helped. The ordinal values are part of
// the interchange format and must not be reordered.
type Effectiveness int

const (
	Effective          Effectiveness = 0
	Ineffective        Effectiveness = 1
	EffectivenessUnset Effectiveness = 2
)

func (effectiveness Effectiveness) Valid() bool {
	return effectiveness >= Effective && effectiveness <= EffectivenessUnset
}

// MedicationDose is a single intake logged on a day. It is owned by exactly
// one DailyRecord and its lifecycle is independent of any Attack.
type MedicationDose struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Dose          string        `json:"dose"`
	Amount        int           `json:"amount"`
	Type          string        `json:"type"`
	Effectiveness Effectiveness `json:"effectiveness"`
	Time          time.Time     `json:"time"`
}

// MedicationHistoryItem is a long-running medication course, kept separately
// from daily records and keyed by its own opaque id.
type MedicationHistoryItem struct {
	RowID     uint       `gorm:"primaryKey;column:row_id" json:"-"`
	ItemID    string     `gorm:"uniqueIndex;not null" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Dose      string     `json:"dose"`
	Amount    int        `json:"amount"`
	Type      string     `json:"type"`
	StartDate time.Time  `gorm:"type:date" json:"start_date"`
	StopDate  *time.Time `gorm:"type:date" json:"stop_date"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}
