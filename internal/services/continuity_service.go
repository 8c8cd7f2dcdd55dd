package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/aurelog/aurelog/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrClockRollback is a fatal configuration error: the supplied "today"
	// is before the stored last session date. It is never auto-corrected.
	ErrClockRollback       = errors.New("clock rollback detected")
	ErrSettingsUnavailable = errors.New("settings unavailable")
)

// SettingsRepository is the persistence port for the settings singleton.
type SettingsRepository interface {
	Load() (models.AppSettings, error)
	Save(settings *models.AppSettings) error
}

// ContinuityService reconciles the gap between the last completed session
// and today: an attack left open on a previous day is either closed at that
// day's boundary or cloned forward day-by-day, depending on the
// AttacksEndWithDay policy.
type ContinuityService struct {
	records  DailyRecordRepository
	settings SettingsRepository
	location *time.Location
}

func NewContinuityService(records DailyRecordRepository, settings SettingsRepository, location *time.Location) *ContinuityService {
	if location == nil {
		location = time.UTC
	}
	return &ContinuityService{records: records, settings: settings, location: location}
}

// Reconcile runs one session-start reconciliation. It ensures today's record
// exists, resolves any attack left open at the last session date and finally
// advances the stored last session date to today; advancing last is what
// makes a re-run with the same today a no-op.
func (service *ContinuityService) Reconcile(today time.Time) error {
	settings, err := service.settings.Load()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsUnavailable, err)
	}

	today = DateAtLocation(today, service.location)

	if settings.LastSessionDate == nil {
		// First run: just bring today's record into existence.
		if _, err := service.fetchOrCreateRecord(today); err != nil {
			return err
		}
		return service.advanceSession(&settings, today)
	}

	lastSession := DateAtLocation(*settings.LastSessionDate, service.location)
	if today.Before(lastSession) {
		return fmt.Errorf("%w: last session %s is after today %s",
			ErrClockRollback, DayKey(lastSession), DayKey(today))
	}

	if SameCalendarDay(lastSession, today) {
		if _, err := service.fetchOrCreateRecord(today); err != nil {
			return err
		}
		return service.advanceSession(&settings, today)
	}

	lastRecord, found, err := service.findRecord(lastSession)
	if err != nil {
		return err
	}

	var openAttack models.Attack
	hasOpen := false
	if found {
		openAttack, hasOpen = lastRecord.OpenAttack()
	}

	if hasOpen {
		// Clones are persisted before the origin attack is closed, so an
		// interrupted backfill still finds its carry source on retry.
		if !settings.AttacksEndWithDay {
			if err := service.carryAttackForward(openAttack, lastSession, today); err != nil {
				return err
			}
		}
		if err := service.closeAttackAtDayEnd(&lastRecord, openAttack.ID, lastSession); err != nil {
			return err
		}
	}

	if _, err := service.fetchOrCreateRecord(today); err != nil {
		return err
	}
	return service.advanceSession(&settings, today)
}

// carryAttackForward creates one cloned attack per calendar day strictly
// after lastSession up to and including today. Every clone spans the full
// day except today's, which stays open. Re-running over days that already
// hold their clone is a no-op.
func (service *ContinuityService) carryAttackForward(original models.Attack, lastSession time.Time, today time.Time) error {
	for day := lastSession.AddDate(0, 0, 1); !day.After(today); day = day.AddDate(0, 0, 1) {
		record, err := service.fetchOrCreateRecord(day)
		if err != nil {
			return err
		}
		if hasCarriedClone(record, original, day) {
			continue
		}

		clone := cloneAttackForDay(original, day, SameCalendarDay(day, today), service.location)
		record.Attacks = append(record.Attacks, clone)
		if err := service.records.Save(&record); err != nil {
			return err
		}
	}
	return nil
}

func (service *ContinuityService) closeAttackAtDayEnd(record *models.DailyRecord, attackID string, day time.Time) error {
	index := attackIndex(record.Attacks, attackID)
	if index < 0 {
		return ErrAttackNotFound
	}
	stop := EndOfDay(day, service.location)
	record.Attacks[index].StopTime = &stop
	return service.records.Save(record)
}

func (service *ContinuityService) advanceSession(settings *models.AppSettings, today time.Time) error {
	settings.LastSessionDate = &today
	return service.settings.Save(settings)
}

func (service *ContinuityService) findRecord(day time.Time) (models.DailyRecord, bool, error) {
	dayStart, dayEnd := DayRange(day, service.location)
	return service.records.FindByDayRange(dayStart, dayEnd)
}

func (service *ContinuityService) fetchOrCreateRecord(day time.Time) (models.DailyRecord, error) {
	record, found, err := service.findRecord(day)
	if err != nil {
		return models.DailyRecord{}, err
	}
	if found {
		return record, nil
	}

	record = emptyRecordForDay(DateAtLocation(day, service.location))
	if err := service.records.Create(&record); err != nil {
		return models.DailyRecord{}, err
	}
	return record, nil
}

func cloneAttackForDay(original models.Attack, day time.Time, isToday bool, location *time.Location) models.Attack {
	clone := original
	clone.ID = uuid.NewString()
	clone.StartTime = DateAtLocation(day, location)
	clone.StopTime = nil
	if !isToday {
		stop := EndOfDay(day, location)
		clone.StopTime = &stop
	}
	clone.Symptoms = append([]string{}, original.Symptoms...)
	clone.Auras = append([]string{}, original.Auras...)
	return clone
}

// hasCarriedClone reports whether the record already holds the forward clone
// of the original attack: same headache type, starting at midnight of that
// day. This keeps the day-by-day backfill idempotent on retry.
func hasCarriedClone(record models.DailyRecord, original models.Attack, day time.Time) bool {
	for _, attack := range record.Attacks {
		if attack.HeadacheType == original.HeadacheType && SameCalendarDay(attack.StartTime, day) &&
			attack.StartTime.Hour() == 0 && attack.StartTime.Minute() == 0 && attack.StartTime.Second() == 0 {
			return true
		}
	}
	return false
}
