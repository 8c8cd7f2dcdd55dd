package services

import (
	"sort"
	"time"

	"github.com/aurelog/aurelog/internal/models"
)

type memoryRecordStore struct {
	records map[string]models.DailyRecord
	nextID  uint
}

func newMemoryRecordStore() *memoryRecordStore {
	return &memoryRecordStore{records: make(map[string]models.DailyRecord), nextID: 1}
}

func (store *memoryRecordStore) ListAll() ([]models.DailyRecord, error) {
	records := make([]models.DailyRecord, 0, len(store.records))
	for _, record := range store.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

func (store *memoryRecordStore) ListRange(fromStart *time.Time, toEnd *time.Time) ([]models.DailyRecord, error) {
	all, _ := store.ListAll()
	records := make([]models.DailyRecord, 0, len(all))
	for _, record := range all {
		if fromStart != nil && record.Date.Before(*fromStart) {
			continue
		}
		if toEnd != nil && !record.Date.Before(*toEnd) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (store *memoryRecordStore) FindByDayRange(dayStart time.Time, dayEnd time.Time) (models.DailyRecord, bool, error) {
	for _, record := range store.records {
		if !record.Date.Before(dayStart) && record.Date.Before(dayEnd) {
			return record, true, nil
		}
	}
	return models.DailyRecord{}, false, nil
}

func (store *memoryRecordStore) Create(record *models.DailyRecord) error {
	record.ID = store.nextID
	store.nextID++
	store.records[DayKey(record.Date)] = *record
	return nil
}

func (store *memoryRecordStore) Save(record *models.DailyRecord) error {
	store.records[DayKey(record.Date)] = *record
	return nil
}

func (store *memoryRecordStore) DeleteByDayRange(dayStart time.Time, dayEnd time.Time) error {
	for key, record := range store.records {
		if !record.Date.Before(dayStart) && record.Date.Before(dayEnd) {
			delete(store.records, key)
		}
	}
	return nil
}

func (store *memoryRecordStore) DeleteAll() error {
	store.records = make(map[string]models.DailyRecord)
	return nil
}

func (store *memoryRecordStore) CountRecords() (int64, error) {
	return int64(len(store.records)), nil
}

type memorySettingsStore struct {
	settings models.AppSettings
	loaded   bool
	saves    int
}

func newMemorySettingsStore() *memorySettingsStore {
	return &memorySettingsStore{}
}

func (store *memorySettingsStore) Load() (models.AppSettings, error) {
	if !store.loaded {
		store.settings = models.NewDefaultSettings()
		store.loaded = true
	}
	return store.settings, nil
}

func (store *memorySettingsStore) Save(settings *models.AppSettings) error {
	store.settings = *settings
	store.loaded = true
	store.saves++
	return nil
}

type memoryHistoryStore struct {
	items  []models.MedicationHistoryItem
	nextID uint
}

func newMemoryHistoryStore() *memoryHistoryStore {
	return &memoryHistoryStore{nextID: 1}
}

func (store *memoryHistoryStore) List() ([]models.MedicationHistoryItem, error) {
	items := make([]models.MedicationHistoryItem, len(store.items))
	copy(items, store.items)
	return items, nil
}

func (store *memoryHistoryStore) FindByItemID(itemID string) (models.MedicationHistoryItem, bool, error) {
	for _, item := range store.items {
		if item.ItemID == itemID {
			return item, true, nil
		}
	}
	return models.MedicationHistoryItem{}, false, nil
}

func (store *memoryHistoryStore) Create(item *models.MedicationHistoryItem) error {
	item.RowID = store.nextID
	store.nextID++
	store.items = append(store.items, *item)
	return nil
}

func (store *memoryHistoryStore) Save(item *models.MedicationHistoryItem) error {
	for index := range store.items {
		if store.items[index].ItemID == item.ItemID {
			store.items[index] = *item
			return nil
		}
	}
	store.items = append(store.items, *item)
	return nil
}

func (store *memoryHistoryStore) DeleteByItemID(itemID string) error {
	filtered := store.items[:0]
	for _, item := range store.items {
		if item.ItemID != itemID {
			filtered = append(filtered, item)
		}
	}
	store.items = filtered
	return nil
}

func (store *memoryHistoryStore) DeleteAll() error {
	store.items = nil
	return nil
}

func mustParseDay(t interface{ Fatalf(string, ...any) }, raw string) time.Time {
	parsed, err := time.ParseInLocation(DayKeyLayout, raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}
