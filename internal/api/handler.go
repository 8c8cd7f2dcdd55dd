package api

import (
	"sync"
	"time"

	"github.com/aurelog/aurelog/internal/db"
	"github.com/aurelog/aurelog/internal/services"
)

type Handler struct {
	records    *services.RecordService
	continuity *services.ContinuityService
	stats      *services.StatsService
	importer   *services.ImportService
	exporter   *services.ExportService
	settings   *services.SettingsService
	history    *services.MedicationHistoryService
	secretKey  []byte
	location   *time.Location

	// mutate serializes continuity reconciliations and imports: both may
	// create or delete records for overlapping dates and must not interleave.
	mutate sync.Mutex
}

func NewHandler(repos *db.Repositories, secret string, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		records:    services.NewRecordService(repos.DailyRecords, location),
		continuity: services.NewContinuityService(repos.DailyRecords, repos.Settings, location),
		stats:      services.NewStatsService(repos.DailyRecords, location),
		importer:   services.NewImportService(repos.DailyRecords, repos.MedicationHistory, location),
		exporter:   services.NewExportService(repos.DailyRecords, repos.MedicationHistory, location),
		settings:   services.NewSettingsService(repos.Settings),
		history:    services.NewMedicationHistoryService(repos.MedicationHistory),
		secretKey:  []byte(secret),
		location:   location,
	}
}
