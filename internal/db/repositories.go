package db

import "gorm.io/gorm"

type Repositories struct {
	DailyRecords      *DailyRecordRepository
	Settings          *SettingsRepository
	MedicationHistory *MedicationHistoryRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		DailyRecords:      NewDailyRecordRepository(database),
		Settings:          NewSettingsRepository(database),
		MedicationHistory: NewMedicationHistoryRepository(database),
	}
}
