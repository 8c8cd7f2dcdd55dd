package services

import (
	"errors"
	"time"

	"github.com/aurelog/aurelog/internal/models"
	"github.com/google/uuid"
)

const MaxDayNotesLength = 4000

var (
	ErrInvalidActivityRank   = errors.New("invalid activity rank")
	ErrInvalidPainLevel      = errors.New("invalid pain level")
	ErrInvalidPainSide       = errors.New("invalid pain side")
	ErrAttackStartMissing    = errors.New("attack start time missing")
	ErrAttackStopBeforeStart = errors.New("attack stop before start")
	ErrOpenAttackExists      = errors.New("record already has an open attack")
	ErrAttackNotFound        = errors.New("attack not found")
	ErrInvalidEffectiveness  = errors.New("invalid effectiveness")
	ErrMedicationNotFound    = errors.New("medication dose not found")
)

// DailyRecordRepository is the persistence port the engines require for
// day-indexed records. internal/db provides the sqlite-backed implementation.
type DailyRecordRepository interface {
	ListAll() ([]models.DailyRecord, error)
	ListRange(fromStart *time.Time, toEnd *time.Time) ([]models.DailyRecord, error)
	FindByDayRange(dayStart time.Time, dayEnd time.Time) (models.DailyRecord, bool, error)
	Create(record *models.DailyRecord) error
	Save(record *models.DailyRecord) error
	DeleteByDayRange(dayStart time.Time, dayEnd time.Time) error
	DeleteAll() error
	CountRecords() (int64, error)
}

type DayInfoInput struct {
	Water      models.ActivityRank
	Diet       models.ActivityRank
	Sleep      models.ActivityRank
	Exercise   models.ActivityRank
	Relaxation models.ActivityRank
	Notes      string
}

type RecordService struct {
	records  DailyRecordRepository
	location *time.Location
}

func NewRecordService(records DailyRecordRepository, location *time.Location) *RecordService {
	if location == nil {
		location = time.UTC
	}
	return &RecordService{records: records, location: location}
}

// FetchRecordByDate returns the stored record for the day, or an empty
// unsaved record carrying the normalized date when none exists.
func (service *RecordService) FetchRecordByDate(day time.Time) (models.DailyRecord, error) {
	dayStart, dayEnd := DayRange(day, service.location)
	record, found, err := service.records.FindByDayRange(dayStart, dayEnd)
	if err != nil {
		return models.DailyRecord{}, err
	}
	if !found {
		return emptyRecordForDay(dayStart), nil
	}
	return record, nil
}

// EnsureRecord fetches the record for the day, creating it lazily when the
// day has no record yet.
func (service *RecordService) EnsureRecord(day time.Time) (models.DailyRecord, error) {
	record, err := service.FetchRecordByDate(day)
	if err != nil {
		return models.DailyRecord{}, err
	}
	if record.ID != 0 {
		return record, nil
	}
	if err := service.records.Create(&record); err != nil {
		return models.DailyRecord{}, err
	}
	return record, nil
}

func (service *RecordService) ListRange(from *time.Time, to *time.Time) ([]models.DailyRecord, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start, _ := DayRange(*from, service.location)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to, service.location)
		toEnd = &end
	}
	return service.records.ListRange(fromStart, toEnd)
}

func (service *RecordService) ListAll() ([]models.DailyRecord, error) {
	return service.records.ListAll()
}

// UpsertDayInfo updates the activity ratings and notes of the day, creating
// the record when absent.
func (service *RecordService) UpsertDayInfo(day time.Time, input DayInfoInput) (models.DailyRecord, error) {
	for _, rank := range []models.ActivityRank{input.Water, input.Diet, input.Sleep, input.Exercise, input.Relaxation} {
		if !rank.Valid() {
			return models.DailyRecord{}, ErrInvalidActivityRank
		}
	}

	record, err := service.FetchRecordByDate(day)
	if err != nil {
		return models.DailyRecord{}, err
	}

	record.Water = input.Water
	record.Diet = input.Diet
	record.Sleep = input.Sleep
	record.Exercise = input.Exercise
	record.Relaxation = input.Relaxation
	record.Notes = trimNotes(input.Notes)

	if err := service.saveOrCreate(&record); err != nil {
		return models.DailyRecord{}, err
	}
	return record, nil
}

func (service *RecordService) DeleteDay(day time.Time) error {
	dayStart, dayEnd := DayRange(day, service.location)
	return service.records.DeleteByDayRange(dayStart, dayEnd)
}

// AddAttack appends an attack to the day's record, assigning a fresh id. At
// most one open attack may exist per record; that invariant is enforced here,
// at write time.
func (service *RecordService) AddAttack(day time.Time, attack models.Attack) (models.Attack, error) {
	if err := validateAttack(attack); err != nil {
		return models.Attack{}, err
	}

	record, err := service.FetchRecordByDate(day)
	if err != nil {
		return models.Attack{}, err
	}
	if _, hasOpen := record.OpenAttack(); hasOpen && attack.IsOpen() {
		return models.Attack{}, ErrOpenAttackExists
	}

	attack.ID = uuid.NewString()
	attack.Symptoms = normalizeTags(attack.Symptoms)
	attack.Auras = normalizeTags(attack.Auras)
	record.Attacks = append(record.Attacks, attack)

	if err := service.saveOrCreate(&record); err != nil {
		return models.Attack{}, err
	}
	return attack, nil
}

// UpdateAttack replaces the stored attack with the same id.
func (service *RecordService) UpdateAttack(day time.Time, attack models.Attack) (models.Attack, error) {
	if err := validateAttack(attack); err != nil {
		return models.Attack{}, err
	}

	record, err := service.FetchRecordByDate(day)
	if err != nil {
		return models.Attack{}, err
	}

	index := attackIndex(record.Attacks, attack.ID)
	if index < 0 {
		return models.Attack{}, ErrAttackNotFound
	}
	if attack.IsOpen() {
		if open, hasOpen := record.OpenAttack(); hasOpen && open.ID != attack.ID {
			return models.Attack{}, ErrOpenAttackExists
		}
	}

	attack.Symptoms = normalizeTags(attack.Symptoms)
	attack.Auras = normalizeTags(attack.Auras)
	record.Attacks[index] = attack

	if err := service.records.Save(&record); err != nil {
		return models.Attack{}, err
	}
	return attack, nil
}

// StopAttack closes an open attack at the given time.
func (service *RecordService) StopAttack(day time.Time, attackID string, stopTime time.Time) (models.Attack, error) {
	record, err := service.FetchRecordByDate(day)
	if err != nil {
		return models.Attack{}, err
	}

	index := attackIndex(record.Attacks, attackID)
	if index < 0 {
		return models.Attack{}, ErrAttackNotFound
	}
	if stopTime.Before(record.Attacks[index].StartTime) {
		return models.Attack{}, ErrAttackStopBeforeStart
	}

	record.Attacks[index].StopTime = &stopTime
	if err := service.records.Save(&record); err != nil {
		return models.Attack{}, err
	}
	return record.Attacks[index], nil
}

func (service *RecordService) DeleteAttack(day time.Time, attackID string) error {
	record, err := service.FetchRecordByDate(day)
	if err != nil {
		return err
	}

	index := attackIndex(record.Attacks, attackID)
	if index < 0 {
		return ErrAttackNotFound
	}

	record.Attacks = append(record.Attacks[:index], record.Attacks[index+1:]...)
	return service.records.Save(&record)
}

// AddMedication appends a dose to the day's record, assigning a fresh id.
func (service *RecordService) AddMedication(day time.Time, dose models.MedicationDose) (models.MedicationDose, error) {
	if !dose.Effectiveness.Valid() {
		return models.MedicationDose{}, ErrInvalidEffectiveness
	}

	record, err := service.FetchRecordByDate(day)
	if err != nil {
		return models.MedicationDose{}, err
	}

	dose.ID = uuid.NewString()
	record.Medications = append(record.Medications, dose)

	if err := service.saveOrCreate(&record); err != nil {
		return models.MedicationDose{}, err
	}
	return dose, nil
}

func (service *RecordService) UpdateMedication(day time.Time, dose models.MedicationDose) (models.MedicationDose, error) {
	if !dose.Effectiveness.Valid() {
		return models.MedicationDose{}, ErrInvalidEffectiveness
	}

	record, err := service.FetchRecordByDate(day)
	if err != nil {
		return models.MedicationDose{}, err
	}

	index := medicationIndex(record.Medications, dose.ID)
	if index < 0 {
		return models.MedicationDose{}, ErrMedicationNotFound
	}

	record.Medications[index] = dose
	if err := service.records.Save(&record); err != nil {
		return models.MedicationDose{}, err
	}
	return dose, nil
}

func (service *RecordService) DeleteMedication(day time.Time, doseID string) error {
	record, err := service.FetchRecordByDate(day)
	if err != nil {
		return err
	}

	index := medicationIndex(record.Medications, doseID)
	if index < 0 {
		return ErrMedicationNotFound
	}

	record.Medications = append(record.Medications[:index], record.Medications[index+1:]...)
	return service.records.Save(&record)
}

func (service *RecordService) saveOrCreate(record *models.DailyRecord) error {
	if record.ID == 0 {
		return service.records.Create(record)
	}
	return service.records.Save(record)
}

func validateAttack(attack models.Attack) error {
	if attack.StartTime.IsZero() {
		return ErrAttackStartMissing
	}
	if attack.PainLevel < models.MinPainLevel || attack.PainLevel > models.MaxPainLevel {
		return ErrInvalidPainLevel
	}
	if !attack.PressingSide.Valid() || !attack.PulsatingSide.Valid() {
		return ErrInvalidPainSide
	}
	if attack.StopTime != nil && attack.StopTime.Before(attack.StartTime) {
		return ErrAttackStopBeforeStart
	}
	return nil
}

func attackIndex(attacks []models.Attack, attackID string) int {
	for index, attack := range attacks {
		if attack.ID == attackID {
			return index
		}
	}
	return -1
}

func medicationIndex(doses []models.MedicationDose, doseID string) int {
	for index, dose := range doses {
		if dose.ID == doseID {
			return index
		}
	}
	return -1
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func trimNotes(value string) string {
	if len(value) <= MaxDayNotesLength {
		return value
	}
	return value[:MaxDayNotesLength]
}

func emptyRecordForDay(dayStart time.Time) models.DailyRecord {
	return models.DailyRecord{
		Date:        dayStart,
		Attacks:     []models.Attack{},
		Medications: []models.MedicationDose{},
	}
}
