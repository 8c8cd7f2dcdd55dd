package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aurelog/aurelog/internal/models"
)

func newRecordFixture() (*RecordService, *memoryRecordStore) {
	store := newMemoryRecordStore()
	return NewRecordService(store, time.UTC), store
}

func validAttack(t *testing.T, day string) models.Attack {
	t.Helper()
	return models.Attack{
		HeadacheType: "migraine",
		PainLevel:    5,
		Pressing:     true,
		PressingSide: models.SideOne,
		StartTime:    mustParseDay(t, day).Add(9 * time.Hour),
	}
}

func TestFetchRecordByDateReturnsEmptyUnsavedRecord(t *testing.T) {
	service, store := newRecordFixture()

	record, err := service.FetchRecordByDate(mustParseDay(t, "2024-01-01").Add(13 * time.Hour))
	if err != nil {
		t.Fatalf("FetchRecordByDate: %v", err)
	}
	if record.ID != 0 {
		t.Fatalf("absent day must not be persisted, got id %d", record.ID)
	}
	if !record.Date.Equal(mustParseDay(t, "2024-01-01")) {
		t.Fatalf("date not normalized to midnight: %v", record.Date)
	}
	if count, _ := store.CountRecords(); count != 0 {
		t.Fatalf("fetch must not create records, store holds %d", count)
	}
}

func TestEnsureRecordCreatesLazily(t *testing.T) {
	service, store := newRecordFixture()

	first, err := service.EnsureRecord(mustParseDay(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("EnsureRecord: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("record not persisted")
	}

	second, err := service.EnsureRecord(mustParseDay(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("EnsureRecord again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second call created a new record: %d vs %d", second.ID, first.ID)
	}
	if count, _ := store.CountRecords(); count != 1 {
		t.Fatalf("store holds %d records, want 1", count)
	}
}

func TestUpsertDayInfo(t *testing.T) {
	service, _ := newRecordFixture()
	day := mustParseDay(t, "2024-01-01")

	record, err := service.UpsertDayInfo(day, DayInfoInput{
		Water: models.RankGood,
		Sleep: models.RankBad,
		Notes: "slept badly",
	})
	if err != nil {
		t.Fatalf("UpsertDayInfo: %v", err)
	}
	if record.Water != models.RankGood || record.Sleep != models.RankBad || record.Notes != "slept badly" {
		t.Fatalf("record = %+v", record)
	}

	if _, err := service.UpsertDayInfo(day, DayInfoInput{Water: models.ActivityRank(9)}); !errors.Is(err, ErrInvalidActivityRank) {
		t.Fatalf("expected ErrInvalidActivityRank, got %v", err)
	}
}

func TestUpsertDayInfoTrimsOversizedNotes(t *testing.T) {
	service, _ := newRecordFixture()

	record, err := service.UpsertDayInfo(mustParseDay(t, "2024-01-01"), DayInfoInput{
		Notes: strings.Repeat("x", MaxDayNotesLength+100),
	})
	if err != nil {
		t.Fatalf("UpsertDayInfo: %v", err)
	}
	if len(record.Notes) != MaxDayNotesLength {
		t.Fatalf("notes length = %d, want %d", len(record.Notes), MaxDayNotesLength)
	}
}

func TestAddAttackEnforcesSingleOpenAttack(t *testing.T) {
	service, _ := newRecordFixture()
	day := mustParseDay(t, "2024-01-01")

	added, err := service.AddAttack(day, validAttack(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("AddAttack: %v", err)
	}
	if added.ID == "" {
		t.Fatal("attack id not assigned")
	}

	if _, err := service.AddAttack(day, validAttack(t, "2024-01-01")); !errors.Is(err, ErrOpenAttackExists) {
		t.Fatalf("expected ErrOpenAttackExists, got %v", err)
	}

	// A second closed attack on the same day is fine.
	closed := validAttack(t, "2024-01-01")
	stop := closed.StartTime.Add(time.Hour)
	closed.StopTime = &stop
	if _, err := service.AddAttack(day, closed); err != nil {
		t.Fatalf("AddAttack closed: %v", err)
	}
}

func TestAddAttackValidation(t *testing.T) {
	service, _ := newRecordFixture()
	day := mustParseDay(t, "2024-01-01")

	cases := []struct {
		name    string
		mutate  func(attack *models.Attack)
		wantErr error
	}{
		{
			name:    "missing start",
			mutate:  func(attack *models.Attack) { attack.StartTime = time.Time{} },
			wantErr: ErrAttackStartMissing,
		},
		{
			name:    "pain level above range",
			mutate:  func(attack *models.Attack) { attack.PainLevel = 10.5 },
			wantErr: ErrInvalidPainLevel,
		},
		{
			name:    "pain level below range",
			mutate:  func(attack *models.Attack) { attack.PainLevel = -1 },
			wantErr: ErrInvalidPainLevel,
		},
		{
			name:    "bad side ordinal",
			mutate:  func(attack *models.Attack) { attack.PressingSide = models.PainSide(5) },
			wantErr: ErrInvalidPainSide,
		},
		{
			name: "stop before start",
			mutate: func(attack *models.Attack) {
				stop := attack.StartTime.Add(-time.Hour)
				attack.StopTime = &stop
			},
			wantErr: ErrAttackStopBeforeStart,
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			attack := validAttack(t, "2024-01-01")
			testCase.mutate(&attack)
			if _, err := service.AddAttack(day, attack); !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected %v, got %v", testCase.wantErr, err)
			}
		})
	}
}

func TestStopAttack(t *testing.T) {
	service, _ := newRecordFixture()
	day := mustParseDay(t, "2024-01-01")

	added, err := service.AddAttack(day, validAttack(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("AddAttack: %v", err)
	}

	if _, err := service.StopAttack(day, added.ID, added.StartTime.Add(-time.Minute)); !errors.Is(err, ErrAttackStopBeforeStart) {
		t.Fatalf("expected ErrAttackStopBeforeStart, got %v", err)
	}

	stopped, err := service.StopAttack(day, added.ID, added.StartTime.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("StopAttack: %v", err)
	}
	if stopped.IsOpen() {
		t.Fatal("attack still open after stop")
	}

	if _, err := service.StopAttack(day, "no-such-id", added.StartTime); !errors.Is(err, ErrAttackNotFound) {
		t.Fatalf("expected ErrAttackNotFound, got %v", err)
	}
}

func TestUpdateAttackKeepsOpenInvariant(t *testing.T) {
	service, _ := newRecordFixture()
	day := mustParseDay(t, "2024-01-01")

	open, err := service.AddAttack(day, validAttack(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("AddAttack: %v", err)
	}
	closed := validAttack(t, "2024-01-01")
	stop := closed.StartTime.Add(time.Hour)
	closed.StopTime = &stop
	closedStored, err := service.AddAttack(day, closed)
	if err != nil {
		t.Fatalf("AddAttack closed: %v", err)
	}

	// Reopening the closed attack while another is open must fail.
	reopened := closedStored
	reopened.StopTime = nil
	if _, err := service.UpdateAttack(day, reopened); !errors.Is(err, ErrOpenAttackExists) {
		t.Fatalf("expected ErrOpenAttackExists, got %v", err)
	}

	// Updating the open attack itself is allowed.
	open.PainLevel = 8
	updated, err := service.UpdateAttack(day, open)
	if err != nil {
		t.Fatalf("UpdateAttack: %v", err)
	}
	if updated.PainLevel != 8 {
		t.Fatalf("pain level = %v, want 8", updated.PainLevel)
	}
}

func TestDeleteAttack(t *testing.T) {
	service, store := newRecordFixture()
	day := mustParseDay(t, "2024-01-01")

	added, err := service.AddAttack(day, validAttack(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("AddAttack: %v", err)
	}

	if err := service.DeleteAttack(day, added.ID); err != nil {
		t.Fatalf("DeleteAttack: %v", err)
	}
	if record := recordForDay(t, store, "2024-01-01"); len(record.Attacks) != 0 {
		t.Fatalf("attack not removed: %+v", record.Attacks)
	}
	if err := service.DeleteAttack(day, added.ID); !errors.Is(err, ErrAttackNotFound) {
		t.Fatalf("expected ErrAttackNotFound, got %v", err)
	}
}

func TestMedicationLifecycle(t *testing.T) {
	service, store := newRecordFixture()
	day := mustParseDay(t, "2024-01-01")

	dose := models.MedicationDose{
		Name:          "Ibuprofen",
		Dose:          "400mg",
		Amount:        1,
		Type:          "analgesic",
		Effectiveness: models.EffectivenessUnset,
		Time:          day.Add(10 * time.Hour),
	}
	added, err := service.AddMedication(day, dose)
	if err != nil {
		t.Fatalf("AddMedication: %v", err)
	}
	if added.ID == "" {
		t.Fatal("dose id not assigned")
	}

	added.Effectiveness = models.Effective
	if _, err := service.UpdateMedication(day, added); err != nil {
		t.Fatalf("UpdateMedication: %v", err)
	}
	if record := recordForDay(t, store, "2024-01-01"); record.Medications[0].Effectiveness != models.Effective {
		t.Fatalf("dose not updated: %+v", record.Medications[0])
	}

	if err := service.DeleteMedication(day, added.ID); err != nil {
		t.Fatalf("DeleteMedication: %v", err)
	}
	if err := service.DeleteMedication(day, added.ID); !errors.Is(err, ErrMedicationNotFound) {
		t.Fatalf("expected ErrMedicationNotFound, got %v", err)
	}

	bad := dose
	bad.Effectiveness = models.Effectiveness(9)
	if _, err := service.AddMedication(day, bad); !errors.Is(err, ErrInvalidEffectiveness) {
		t.Fatalf("expected ErrInvalidEffectiveness, got %v", err)
	}
}

func TestDeleteDay(t *testing.T) {
	service, store := newRecordFixture()
	day := mustParseDay(t, "2024-01-01")

	if _, err := service.EnsureRecord(day); err != nil {
		t.Fatalf("EnsureRecord: %v", err)
	}
	if err := service.DeleteDay(day); err != nil {
		t.Fatalf("DeleteDay: %v", err)
	}
	if count, _ := store.CountRecords(); count != 0 {
		t.Fatalf("store holds %d records after delete", count)
	}
}
