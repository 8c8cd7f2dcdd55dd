package services

import (
	"errors"
	"testing"
	"time"

	"github.com/aurelog/aurelog/internal/models"
)

func openAttackAt(t *testing.T, day string, hour int) models.Attack {
	t.Helper()
	start := mustParseDay(t, day).Add(time.Duration(hour) * time.Hour)
	return models.Attack{
		ID:           "attack-original",
		HeadacheType: "migraine",
		PainLevel:    6,
		Pressing:     true,
		PressingSide: models.SideBoth,
		Symptoms:     []string{"nausea"},
		StartTime:    start,
	}
}

func seedOpenAttack(t *testing.T, store *memoryRecordStore, settings *memorySettingsStore, day string) {
	t.Helper()
	record := emptyRecordForDay(mustParseDay(t, day))
	record.Attacks = append(record.Attacks, openAttackAt(t, day, 8))
	if err := store.Create(&record); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	loaded, _ := settings.Load()
	lastSession := mustParseDay(t, day)
	loaded.LastSessionDate = &lastSession
	if err := settings.Save(&loaded); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
}

func recordForDay(t *testing.T, store *memoryRecordStore, day string) models.DailyRecord {
	t.Helper()
	record, found := store.records[day]
	if !found {
		t.Fatalf("no record for %s", day)
	}
	return record
}

func TestReconcileFirstRunCreatesTodayRecord(t *testing.T) {
	store := newMemoryRecordStore()
	settings := newMemorySettingsStore()
	service := NewContinuityService(store, settings, time.UTC)

	today := mustParseDay(t, "2024-01-04")
	if err := service.Reconcile(today); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if count, _ := store.CountRecords(); count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}
	recordForDay(t, store, "2024-01-04")

	saved, _ := settings.Load()
	if saved.LastSessionDate == nil || !SameCalendarDay(*saved.LastSessionDate, today) {
		t.Fatalf("last session date not advanced: %v", saved.LastSessionDate)
	}
}

func TestReconcileCarriesOpenAttackForward(t *testing.T) {
	store := newMemoryRecordStore()
	settings := newMemorySettingsStore()
	service := NewContinuityService(store, settings, time.UTC)
	seedOpenAttack(t, store, settings, "2024-01-01")

	if err := service.Reconcile(mustParseDay(t, "2024-01-04")); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if count, _ := store.CountRecords(); count != 4 {
		t.Fatalf("expected 4 records, got %d", count)
	}

	origin := recordForDay(t, store, "2024-01-01")
	if origin.Attacks[0].StopTime == nil {
		t.Fatal("original attack still open")
	}
	wantStop := mustParseDay(t, "2024-01-01").Add(24*time.Hour - time.Second)
	if !origin.Attacks[0].StopTime.Equal(wantStop) {
		t.Fatalf("original stop = %v, want %v", origin.Attacks[0].StopTime, wantStop)
	}

	for _, day := range []string{"2024-01-02", "2024-01-03"} {
		record := recordForDay(t, store, day)
		if len(record.Attacks) != 1 {
			t.Fatalf("day %s: expected 1 clone, got %d", day, len(record.Attacks))
		}
		clone := record.Attacks[0]
		if clone.ID == "attack-original" {
			t.Fatalf("day %s: clone reused the original id", day)
		}
		if clone.HeadacheType != "migraine" || clone.PainLevel != 6 {
			t.Fatalf("day %s: clone lost attack fields: %+v", day, clone)
		}
		if !clone.StartTime.Equal(mustParseDay(t, day)) {
			t.Fatalf("day %s: clone start = %v", day, clone.StartTime)
		}
		if clone.StopTime == nil || !clone.StopTime.Equal(mustParseDay(t, day).Add(24*time.Hour-time.Second)) {
			t.Fatalf("day %s: clone stop = %v", day, clone.StopTime)
		}
	}

	today := recordForDay(t, store, "2024-01-04")
	if len(today.Attacks) != 1 {
		t.Fatalf("today: expected 1 clone, got %d", len(today.Attacks))
	}
	if !today.Attacks[0].IsOpen() {
		t.Fatal("today's clone should stay open")
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	store := newMemoryRecordStore()
	settings := newMemorySettingsStore()
	service := NewContinuityService(store, settings, time.UTC)
	seedOpenAttack(t, store, settings, "2024-01-01")

	today := mustParseDay(t, "2024-01-04")
	if err := service.Reconcile(today); err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}
	if err := service.Reconcile(today); err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}

	if count, _ := store.CountRecords(); count != 4 {
		t.Fatalf("expected 4 records after re-run, got %d", count)
	}
	for _, day := range []string{"2024-01-02", "2024-01-03", "2024-01-04"} {
		record := recordForDay(t, store, day)
		if len(record.Attacks) != 1 {
			t.Fatalf("day %s: expected 1 attack after re-run, got %d", day, len(record.Attacks))
		}
	}
}

// failingRecordStore rejects the first Create for one configured day, then
// behaves like the memory store again.
type failingRecordStore struct {
	*memoryRecordStore
	failCreateFor string
}

func (store *failingRecordStore) Create(record *models.DailyRecord) error {
	if DayKey(record.Date) == store.failCreateFor {
		store.failCreateFor = ""
		return errors.New("write failed")
	}
	return store.memoryRecordStore.Create(record)
}

func TestReconcileResumesCarryAfterFailedCloneWrite(t *testing.T) {
	store := &failingRecordStore{memoryRecordStore: newMemoryRecordStore(), failCreateFor: "2024-01-03"}
	settings := newMemorySettingsStore()
	service := NewContinuityService(store, settings, time.UTC)
	seedOpenAttack(t, store.memoryRecordStore, settings, "2024-01-01")

	today := mustParseDay(t, "2024-01-04")
	if err := service.Reconcile(today); err == nil {
		t.Fatal("expected first Reconcile to fail on the injected write error")
	}

	interrupted, _ := settings.Load()
	if interrupted.LastSessionDate == nil || !SameCalendarDay(*interrupted.LastSessionDate, mustParseDay(t, "2024-01-01")) {
		t.Fatalf("failed run must not advance last session date, got %v", interrupted.LastSessionDate)
	}
	origin := recordForDay(t, store.memoryRecordStore, "2024-01-01")
	if !origin.Attacks[0].IsOpen() {
		t.Fatal("failed run must leave the carry source open")
	}

	if err := service.Reconcile(today); err != nil {
		t.Fatalf("retry Reconcile: %v", err)
	}

	if count, _ := store.CountRecords(); count != 4 {
		t.Fatalf("expected 4 records after retry, got %d", count)
	}
	origin = recordForDay(t, store.memoryRecordStore, "2024-01-01")
	if origin.Attacks[0].IsOpen() {
		t.Fatal("retry did not close the original attack")
	}
	for _, day := range []string{"2024-01-02", "2024-01-03"} {
		record := recordForDay(t, store.memoryRecordStore, day)
		if len(record.Attacks) != 1 {
			t.Fatalf("day %s: expected 1 clone after retry, got %d", day, len(record.Attacks))
		}
		if record.Attacks[0].IsOpen() {
			t.Fatalf("day %s: gap clone left open", day)
		}
	}
	todayRecord := recordForDay(t, store.memoryRecordStore, "2024-01-04")
	if len(todayRecord.Attacks) != 1 || !todayRecord.Attacks[0].IsOpen() {
		t.Fatalf("today should hold one open clone after retry, got %+v", todayRecord.Attacks)
	}

	advanced, _ := settings.Load()
	if advanced.LastSessionDate == nil || !SameCalendarDay(*advanced.LastSessionDate, today) {
		t.Fatalf("retry did not advance last session date: %v", advanced.LastSessionDate)
	}
}

func TestReconcileEndsAttackWithDayWhenPolicySet(t *testing.T) {
	store := newMemoryRecordStore()
	settings := newMemorySettingsStore()
	service := NewContinuityService(store, settings, time.UTC)
	seedOpenAttack(t, store, settings, "2024-01-01")

	loaded, _ := settings.Load()
	loaded.AttacksEndWithDay = true
	if err := settings.Save(&loaded); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	if err := service.Reconcile(mustParseDay(t, "2024-01-04")); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if count, _ := store.CountRecords(); count != 2 {
		t.Fatalf("expected origin and today only, got %d records", count)
	}
	origin := recordForDay(t, store, "2024-01-01")
	if origin.Attacks[0].IsOpen() {
		t.Fatal("original attack not closed")
	}
	today := recordForDay(t, store, "2024-01-04")
	if len(today.Attacks) != 0 {
		t.Fatalf("today should carry no clone, got %d attacks", len(today.Attacks))
	}
}

func TestReconcileSameDayOnlyEnsuresRecord(t *testing.T) {
	store := newMemoryRecordStore()
	settings := newMemorySettingsStore()
	service := NewContinuityService(store, settings, time.UTC)
	seedOpenAttack(t, store, settings, "2024-01-01")

	if err := service.Reconcile(mustParseDay(t, "2024-01-01").Add(15 * time.Hour)); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	origin := recordForDay(t, store, "2024-01-01")
	if !origin.Attacks[0].IsOpen() {
		t.Fatal("same-day reconcile must not close the open attack")
	}
	if count, _ := store.CountRecords(); count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}
}

func TestReconcileRejectsClockRollback(t *testing.T) {
	store := newMemoryRecordStore()
	settings := newMemorySettingsStore()
	service := NewContinuityService(store, settings, time.UTC)
	seedOpenAttack(t, store, settings, "2024-01-05")

	err := service.Reconcile(mustParseDay(t, "2024-01-04"))
	if !errors.Is(err, ErrClockRollback) {
		t.Fatalf("expected ErrClockRollback, got %v", err)
	}
	if count, _ := store.CountRecords(); count != 1 {
		t.Fatalf("rollback must not touch records, got %d", count)
	}
}

func TestReconcileNoOpenAttackJustAdvances(t *testing.T) {
	store := newMemoryRecordStore()
	settings := newMemorySettingsStore()
	service := NewContinuityService(store, settings, time.UTC)

	record := emptyRecordForDay(mustParseDay(t, "2024-01-01"))
	closed := openAttackAt(t, "2024-01-01", 8)
	stop := closed.StartTime.Add(2 * time.Hour)
	closed.StopTime = &stop
	record.Attacks = append(record.Attacks, closed)
	if err := store.Create(&record); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	loaded, _ := settings.Load()
	lastSession := mustParseDay(t, "2024-01-01")
	loaded.LastSessionDate = &lastSession
	if err := settings.Save(&loaded); err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	if err := service.Reconcile(mustParseDay(t, "2024-01-04")); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if count, _ := store.CountRecords(); count != 2 {
		t.Fatalf("expected origin and today only, got %d", count)
	}
	if record := recordForDay(t, store, "2024-01-04"); len(record.Attacks) != 0 {
		t.Fatalf("closed attacks must not be carried, got %d", len(record.Attacks))
	}
}
