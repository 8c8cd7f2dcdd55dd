package models

import "time"

// Default activity band colors, one per ActivityRank.
const (
	DefaultColorNone = "#9E9E9E"
	DefaultColorBad  = "#E53935"
	DefaultColorOK   = "#FBC02D"
	DefaultColorGood = "#43A047"
)

// AppSettings is the per-install settings singleton: user-defined
// vocabularies, display colors, the day-boundary policy for open attacks and
// the date of the last successfully completed session.
type AppSettings struct {
	ID                    uint          `gorm:"primaryKey" json:"-"`
	CustomHeadacheTypes   []string      `gorm:"serializer:json" json:"custom_headache_types"`
	CustomSymptoms        []string      `gorm:"serializer:json" json:"custom_symptoms"`
	CustomAuras           []string      `gorm:"serializer:json" json:"custom_auras"`
	CustomMedicationTypes []string      `gorm:"serializer:json" json:"custom_medication_types"`
	CustomSideEffects     []string      `gorm:"serializer:json" json:"custom_side_effects"`
	ColorNone             string        `gorm:"not null;default:''" json:"color_none"`
	ColorBad              string        `gorm:"not null;default:''" json:"color_bad"`
	ColorOK               string        `gorm:"not null;default:''" json:"color_ok"`
	ColorGood             string        `gorm:"not null;default:''" json:"color_good"`
	AttacksEndWithDay     bool          `gorm:"not null;default:false" json:"attacks_end_with_day"`
	DefaultEffectiveness  Effectiveness `gorm:"not null;default:2" json:"default_effectiveness"`
	LastSessionDate       *time.Time    `gorm:"type:date" json:"last_session_date"`
	AccessPasswordHash    string        `json:"-"`
	CreatedAt             time.Time     `json:"-"`
	UpdatedAt             time.Time     `json:"-"`
}

// NewDefaultSettings returns the settings row created on first run.
func NewDefaultSettings() AppSettings {
	return AppSettings{
		ID:                    1,
		CustomHeadacheTypes:   []string{},
		CustomSymptoms:        []string{},
		CustomAuras:           []string{},
		CustomMedicationTypes: []string{},
		CustomSideEffects:     []string{},
		ColorNone:             DefaultColorNone,
		ColorBad:              DefaultColorBad,
		ColorOK:               DefaultColorOK,
		ColorGood:             DefaultColorGood,
		AttacksEndWithDay:     false,
		DefaultEffectiveness:  EffectivenessUnset,
	}
}
