package services

import (
	"time"

	"github.com/aurelog/aurelog/internal/models"
)

// Interchange schema for day-history export/import. Timestamps travel as
// Unix epoch seconds, rank/side/effectiveness fields as their ordinal
// integers.

type DayHistoryEntry struct {
	Date        string                `json:"date"`
	Diet        int                   `json:"diet"`
	Exercise    int                   `json:"exercise"`
	Relax       int                   `json:"relax"`
	Sleep       int                   `json:"sleep"`
	Water       int                   `json:"water"`
	Notes       string                `json:"notes"`
	Attacks     []AttackHistoryEntry  `json:"attacks"`
	Medications []MedicationDoseEntry `json:"medications"`
}

type AttackHistoryEntry struct {
	ID            string   `json:"id"`
	HeadacheType  string   `json:"headacheType"`
	PainLevel     float64  `json:"painLevel"`
	Pressing      bool     `json:"pressing"`
	PressingSide  int      `json:"pressingSide"`
	Pulsating     bool     `json:"pulsating"`
	PulsatingSide int      `json:"pulsatingSide"`
	Auras         []string `json:"auras"`
	Symptoms      []string `json:"symptoms"`
	StartTime     int64    `json:"startTime"`
	StopTime      *int64   `json:"stopTime"`
}

type MedicationDoseEntry struct {
	ID        string  `json:"id"`
	Amount    int     `json:"amount"`
	Dose      *string `json:"dose"`
	Effective int     `json:"effective"`
	Time      int64   `json:"time"`
	Name      *string `json:"name"`
	Type      string  `json:"type"`
}

// Medication-history interchange: flat records keyed by id, with start/stop
// dates instead of a single timestamp.
type MedicationHistoryEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Dose      *string `json:"dose"`
	Amount    int     `json:"amount"`
	Type      string  `json:"type"`
	StartDate int64   `json:"startDate"`
	StopDate  *int64  `json:"stopDate"`
}

func dayHistoryEntryFromRecord(record models.DailyRecord, location *time.Location) DayHistoryEntry {
	attacks := make([]AttackHistoryEntry, 0, len(record.Attacks))
	for _, attack := range record.Attacks {
		attacks = append(attacks, attackHistoryEntry(attack))
	}

	medications := make([]MedicationDoseEntry, 0, len(record.Medications))
	for _, dose := range record.Medications {
		medications = append(medications, medicationDoseEntry(dose))
	}

	return DayHistoryEntry{
		Date:        DayKey(DateAtLocation(record.Date, location)),
		Diet:        int(record.Diet),
		Exercise:    int(record.Exercise),
		Relax:       int(record.Relaxation),
		Sleep:       int(record.Sleep),
		Water:       int(record.Water),
		Notes:       record.Notes,
		Attacks:     attacks,
		Medications: medications,
	}
}

func attackHistoryEntry(attack models.Attack) AttackHistoryEntry {
	var stop *int64
	if attack.StopTime != nil {
		seconds := attack.StopTime.Unix()
		stop = &seconds
	}
	return AttackHistoryEntry{
		ID:            attack.ID,
		HeadacheType:  attack.HeadacheType,
		PainLevel:     attack.PainLevel,
		Pressing:      attack.Pressing,
		PressingSide:  int(attack.PressingSide),
		Pulsating:     attack.Pulsating,
		PulsatingSide: int(attack.PulsatingSide),
		Auras:         normalizeTags(attack.Auras),
		Symptoms:      normalizeTags(attack.Symptoms),
		StartTime:     attack.StartTime.Unix(),
		StopTime:      stop,
	}
}

func medicationDoseEntry(dose models.MedicationDose) MedicationDoseEntry {
	return MedicationDoseEntry{
		ID:        dose.ID,
		Amount:    dose.Amount,
		Dose:      optionalString(dose.Dose),
		Effective: int(dose.Effectiveness),
		Time:      dose.Time.Unix(),
		Name:      optionalString(dose.Name),
		Type:      dose.Type,
	}
}

func medicationHistoryEntryFromItem(item models.MedicationHistoryItem) MedicationHistoryEntry {
	var stop *int64
	if item.StopDate != nil {
		seconds := item.StopDate.Unix()
		stop = &seconds
	}
	return MedicationHistoryEntry{
		ID:        item.ItemID,
		Name:      item.Name,
		Dose:      optionalString(item.Dose),
		Amount:    item.Amount,
		Type:      item.Type,
		StartDate: item.StartDate.Unix(),
		StopDate:  stop,
	}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func epochToTime(seconds int64, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return time.Unix(seconds, 0).In(location)
}
