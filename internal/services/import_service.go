package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aurelog/aurelog/internal/models"
	"github.com/google/uuid"
)

var (
	ErrMalformedPayload      = errors.New("malformed import payload")
	ErrUnknownConflictPolicy = errors.New("unknown conflict policy")
)

// ConflictPolicy selects how imported records are reconciled with records
// already in the store.
type ConflictPolicy int

const (
	// PolicyReplaceAll deletes every existing record before inserting the
	// payload in full.
	PolicyReplaceAll ConflictPolicy = iota
	// PolicyMergeOverwrite replaces the existing record when the payload
	// carries the same key (last-writer-wins).
	PolicyMergeOverwrite
	// PolicyMergeKeepExisting skips payload records whose key already exists.
	PolicyMergeKeepExisting
)

func ParseConflictPolicy(raw string) (ConflictPolicy, error) {
	switch raw {
	case "replace-all":
		return PolicyReplaceAll, nil
	case "merge-overwrite", "":
		return PolicyMergeOverwrite, nil
	case "merge-keep-existing":
		return PolicyMergeKeepExisting, nil
	default:
		return PolicyMergeOverwrite, fmt.Errorf("%w: %q", ErrUnknownConflictPolicy, raw)
	}
}

// ImportRejection describes one payload record that failed validation and
// was skipped as a whole.
type ImportRejection struct {
	Record string `json:"record"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (rejection ImportRejection) String() string {
	return fmt.Sprintf("%s: %s: %s", rejection.Record, rejection.Field, rejection.Reason)
}

type ImportSummary struct {
	Imported   int               `json:"imported"`
	Skipped    int               `json:"skipped"`
	Rejected   int               `json:"rejected"`
	Rejections []ImportRejection `json:"rejections"`
}

// MedicationHistoryRepository is the persistence port for long-running
// medication courses.
type MedicationHistoryRepository interface {
	List() ([]models.MedicationHistoryItem, error)
	FindByItemID(itemID string) (models.MedicationHistoryItem, bool, error)
	Create(item *models.MedicationHistoryItem) error
	Save(item *models.MedicationHistoryItem) error
	DeleteByItemID(itemID string) error
	DeleteAll() error
}

// ImportService reconciles externally supplied JSON history into the store.
// Validation is per-record: a record failing a required-field check is
// rejected whole and reported while the rest of the payload continues.
type ImportService struct {
	records  DailyRecordRepository
	history  MedicationHistoryRepository
	location *time.Location
}

func NewImportService(records DailyRecordRepository, history MedicationHistoryRepository, location *time.Location) *ImportService {
	if location == nil {
		location = time.UTC
	}
	return &ImportService{records: records, history: history, location: location}
}

// ImportDailyHistory decodes a day-history payload and merges it into the
// store under the chosen conflict policy.
func (service *ImportService) ImportDailyHistory(payload []byte, policy ConflictPolicy) (ImportSummary, error) {
	var rawRecords []json.RawMessage
	if err := json.Unmarshal(payload, &rawRecords); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	summary := ImportSummary{Rejections: []ImportRejection{}}
	valid := make([]models.DailyRecord, 0, len(rawRecords))
	for index, raw := range rawRecords {
		record, rejection := service.decodeDayRecord(raw, index)
		if rejection != nil {
			summary.Rejections = append(summary.Rejections, *rejection)
			continue
		}
		valid = append(valid, record)
	}
	summary.Rejected = len(summary.Rejections)

	if policy == PolicyReplaceAll {
		if err := service.records.DeleteAll(); err != nil {
			return summary, err
		}
	}

	for _, record := range valid {
		dayStart, dayEnd := DayRange(record.Date, service.location)
		_, exists, err := service.records.FindByDayRange(dayStart, dayEnd)
		if err != nil {
			return summary, err
		}

		if exists {
			if policy == PolicyMergeKeepExisting {
				summary.Skipped++
				continue
			}
			if err := service.records.DeleteByDayRange(dayStart, dayEnd); err != nil {
				return summary, err
			}
		}

		if err := service.records.Create(&record); err != nil {
			return summary, err
		}
		summary.Imported++
	}

	return summary, nil
}

// ImportMedicationHistory mirrors the daily flow for medication-history
// items, keyed by item id instead of date.
func (service *ImportService) ImportMedicationHistory(payload []byte, policy ConflictPolicy) (ImportSummary, error) {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(payload, &rawItems); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	summary := ImportSummary{Rejections: []ImportRejection{}}
	valid := make([]models.MedicationHistoryItem, 0, len(rawItems))
	for index, raw := range rawItems {
		item, rejection := service.decodeHistoryItem(raw, index)
		if rejection != nil {
			summary.Rejections = append(summary.Rejections, *rejection)
			continue
		}
		valid = append(valid, item)
	}
	summary.Rejected = len(summary.Rejections)

	if policy == PolicyReplaceAll {
		if err := service.history.DeleteAll(); err != nil {
			return summary, err
		}
	}

	for _, item := range valid {
		_, exists, err := service.history.FindByItemID(item.ItemID)
		if err != nil {
			return summary, err
		}

		if exists {
			if policy == PolicyMergeKeepExisting {
				summary.Skipped++
				continue
			}
			if err := service.history.DeleteByItemID(item.ItemID); err != nil {
				return summary, err
			}
		}

		if err := service.history.Create(&item); err != nil {
			return summary, err
		}
		summary.Imported++
	}

	return summary, nil
}

type dayRecordWire struct {
	Date        *string              `json:"date"`
	Diet        *int                 `json:"diet"`
	Exercise    *int                 `json:"exercise"`
	Relax       *int                 `json:"relax"`
	Sleep       *int                 `json:"sleep"`
	Water       *int                 `json:"water"`
	Notes       *string              `json:"notes"`
	Attacks     []attackWire         `json:"attacks"`
	Medications []medicationDoseWire `json:"medications"`
}

type attackWire struct {
	ID            *string  `json:"id"`
	HeadacheType  *string  `json:"headacheType"`
	PainLevel     *float64 `json:"painLevel"`
	Pressing      *bool    `json:"pressing"`
	PressingSide  *int     `json:"pressingSide"`
	Pulsating     *bool    `json:"pulsating"`
	PulsatingSide *int     `json:"pulsatingSide"`
	Auras         []string `json:"auras"`
	Symptoms      []string `json:"symptoms"`
	StartTime     *int64   `json:"startTime"`
	StopTime      *int64   `json:"stopTime"`
}

type medicationDoseWire struct {
	ID        *string `json:"id"`
	Amount    *int    `json:"amount"`
	Dose      *string `json:"dose"`
	Effective *int    `json:"effective"`
	Time      *int64  `json:"time"`
	Name      *string `json:"name"`
	Type      *string `json:"type"`
}

type medicationHistoryWire struct {
	ID        *string `json:"id"`
	Name      *string `json:"name"`
	Dose      *string `json:"dose"`
	Amount    *int    `json:"amount"`
	Type      *string `json:"type"`
	StartDate *int64  `json:"startDate"`
	StopDate  *int64  `json:"stopDate"`
}

func (service *ImportService) decodeDayRecord(raw json.RawMessage, index int) (models.DailyRecord, *ImportRejection) {
	wire := dayRecordWire{}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.DailyRecord{}, rejectDecodeError(recordLabel("", index), err)
	}

	label := recordLabel(stringOrEmpty(wire.Date), index)
	if wire.Date == nil {
		return models.DailyRecord{}, reject(label, "date", "missing")
	}
	day, err := ParseDayKey(*wire.Date, service.location)
	if err != nil {
		return models.DailyRecord{}, reject(label, "date", "invalid")
	}
	if wire.Notes == nil {
		return models.DailyRecord{}, reject(label, "notes", "missing")
	}

	ranks := map[string]*int{
		"water":    wire.Water,
		"diet":     wire.Diet,
		"sleep":    wire.Sleep,
		"exercise": wire.Exercise,
		"relax":    wire.Relax,
	}
	for _, field := range []string{"water", "diet", "sleep", "exercise", "relax"} {
		value := ranks[field]
		if value == nil {
			return models.DailyRecord{}, reject(label, field, "missing")
		}
		if !models.ActivityRank(*value).Valid() {
			return models.DailyRecord{}, reject(label, field, "invalid")
		}
	}

	record := models.DailyRecord{
		Date:        DateAtLocation(day, service.location),
		Water:       models.ActivityRank(*wire.Water),
		Diet:        models.ActivityRank(*wire.Diet),
		Sleep:       models.ActivityRank(*wire.Sleep),
		Exercise:    models.ActivityRank(*wire.Exercise),
		Relaxation:  models.ActivityRank(*wire.Relax),
		Notes:       *wire.Notes,
		Attacks:     []models.Attack{},
		Medications: []models.MedicationDose{},
	}

	for attackIndex, attack := range wire.Attacks {
		decoded, rejection := service.decodeAttack(attack, label, attackIndex)
		if rejection != nil {
			return models.DailyRecord{}, rejection
		}
		record.Attacks = append(record.Attacks, decoded)
	}

	for doseIndex, dose := range wire.Medications {
		decoded, rejection := service.decodeDose(dose, label, doseIndex)
		if rejection != nil {
			return models.DailyRecord{}, rejection
		}
		record.Medications = append(record.Medications, decoded)
	}

	return record, nil
}

func (service *ImportService) decodeAttack(wire attackWire, label string, index int) (models.Attack, *ImportRejection) {
	field := func(name string) string { return fmt.Sprintf("attacks[%d].%s", index, name) }

	if wire.PainLevel == nil {
		return models.Attack{}, reject(label, field("painLevel"), "missing")
	}
	if *wire.PainLevel < models.MinPainLevel || *wire.PainLevel > models.MaxPainLevel {
		return models.Attack{}, reject(label, field("painLevel"), "invalid")
	}
	if wire.Pressing == nil {
		return models.Attack{}, reject(label, field("pressing"), "missing")
	}
	if wire.Pulsating == nil {
		return models.Attack{}, reject(label, field("pulsating"), "missing")
	}
	pressingSide, rejection := decodeSide(wire.PressingSide, label, field("pressingSide"))
	if rejection != nil {
		return models.Attack{}, rejection
	}
	pulsatingSide, rejection := decodeSide(wire.PulsatingSide, label, field("pulsatingSide"))
	if rejection != nil {
		return models.Attack{}, rejection
	}
	if wire.StartTime == nil {
		return models.Attack{}, reject(label, field("startTime"), "missing")
	}

	start := epochToTime(*wire.StartTime, service.location)
	var stop *time.Time
	if wire.StopTime != nil {
		value := epochToTime(*wire.StopTime, service.location)
		if value.Before(start) {
			return models.Attack{}, reject(label, field("stopTime"), "invalid")
		}
		stop = &value
	}

	id := stringOrEmpty(wire.ID)
	if id == "" {
		id = uuid.NewString()
	}

	return models.Attack{
		ID:            id,
		HeadacheType:  stringOrEmpty(wire.HeadacheType),
		PainLevel:     *wire.PainLevel,
		Pressing:      *wire.Pressing,
		PressingSide:  pressingSide,
		Pulsating:     *wire.Pulsating,
		PulsatingSide: pulsatingSide,
		Symptoms:      normalizeTags(wire.Symptoms),
		Auras:         normalizeTags(wire.Auras),
		StartTime:     start,
		StopTime:      stop,
	}, nil
}

func (service *ImportService) decodeDose(wire medicationDoseWire, label string, index int) (models.MedicationDose, *ImportRejection) {
	field := func(name string) string { return fmt.Sprintf("medications[%d].%s", index, name) }

	if wire.Amount == nil {
		return models.MedicationDose{}, reject(label, field("amount"), "missing")
	}
	if wire.Effective == nil {
		return models.MedicationDose{}, reject(label, field("effective"), "missing")
	}
	effectiveness := models.Effectiveness(*wire.Effective)
	if !effectiveness.Valid() {
		return models.MedicationDose{}, reject(label, field("effective"), "invalid")
	}
	if wire.Time == nil {
		return models.MedicationDose{}, reject(label, field("time"), "missing")
	}
	if wire.Type == nil {
		return models.MedicationDose{}, reject(label, field("type"), "missing")
	}

	id := stringOrEmpty(wire.ID)
	if id == "" {
		id = uuid.NewString()
	}

	return models.MedicationDose{
		ID:            id,
		Name:          stringOrEmpty(wire.Name),
		Dose:          stringOrEmpty(wire.Dose),
		Amount:        *wire.Amount,
		Type:          *wire.Type,
		Effectiveness: effectiveness,
		Time:          epochToTime(*wire.Time, service.location),
	}, nil
}

func (service *ImportService) decodeHistoryItem(raw json.RawMessage, index int) (models.MedicationHistoryItem, *ImportRejection) {
	wire := medicationHistoryWire{}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.MedicationHistoryItem{}, rejectDecodeError(recordLabel("", index), err)
	}

	label := recordLabel(stringOrEmpty(wire.ID), index)
	if wire.Name == nil {
		return models.MedicationHistoryItem{}, reject(label, "name", "missing")
	}
	if wire.Amount == nil {
		return models.MedicationHistoryItem{}, reject(label, "amount", "missing")
	}
	if wire.StartDate == nil {
		return models.MedicationHistoryItem{}, reject(label, "startDate", "missing")
	}

	start := DateAtLocation(epochToTime(*wire.StartDate, service.location), service.location)
	var stop *time.Time
	if wire.StopDate != nil {
		value := DateAtLocation(epochToTime(*wire.StopDate, service.location), service.location)
		if value.Before(start) {
			return models.MedicationHistoryItem{}, reject(label, "stopDate", "invalid")
		}
		stop = &value
	}

	itemID := stringOrEmpty(wire.ID)
	if itemID == "" {
		itemID = uuid.NewString()
	}

	return models.MedicationHistoryItem{
		ItemID:    itemID,
		Name:      *wire.Name,
		Dose:      stringOrEmpty(wire.Dose),
		Amount:    *wire.Amount,
		Type:      stringOrEmpty(wire.Type),
		StartDate: start,
		StopDate:  stop,
	}, nil
}

func decodeSide(value *int, label string, field string) (models.PainSide, *ImportRejection) {
	if value == nil {
		return models.SideNone, reject(label, field, "missing")
	}
	side := models.PainSide(*value)
	if !side.Valid() {
		return models.SideNone, reject(label, field, "invalid")
	}
	return side, nil
}

func recordLabel(key string, index int) string {
	if key != "" {
		return key
	}
	return fmt.Sprintf("record %d", index)
}

func reject(record string, field string, reason string) *ImportRejection {
	return &ImportRejection{Record: record, Field: field, Reason: reason}
}

func rejectDecodeError(record string, err error) *ImportRejection {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return reject(record, typeErr.Field, "invalid")
	}
	return reject(record, "-", "malformed")
}
