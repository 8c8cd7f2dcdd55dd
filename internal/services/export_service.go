package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/aurelog/aurelog/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Water",
	"Diet",
	"Sleep",
	"Exercise",
	"Relaxation",
	"Attacks",
	"Worst pain",
	"Medications",
	"Notes",
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
}

type ExportCSVRow struct {
	Date        string
	Water       string
	Diet        string
	Sleep       string
	Exercise    string
	Relaxation  string
	Attacks     int
	WorstPain   float64
	Medications []string
	Notes       string
}

// ExportDayReader is the read-only slice of the record store the export
// engine needs.
type ExportDayReader interface {
	ListRange(from *time.Time, to *time.Time) ([]models.DailyRecord, error)
}

type ExportHistoryReader interface {
	List() ([]models.MedicationHistoryItem, error)
}

type ExportService struct {
	days     ExportDayReader
	history  ExportHistoryReader
	location *time.Location
}

func NewExportService(days ExportDayReader, history ExportHistoryReader, location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{days: days, history: history, location: location}
}

func (service *ExportService) loadRange(from *time.Time, to *time.Time) ([]models.DailyRecord, error) {
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
	return service.days.ListRange(fromStart, toEnd)
}

func (service *ExportService) BuildSummary(from *time.Time, to *time.Time) (ExportSummary, error) {
	records, err := service.loadRange(from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(records) == 0 {
		return ExportSummary{}, nil
	}

	first := records[0].Date
	last := records[0].Date
	for _, record := range records[1:] {
		if record.Date.Before(first) {
			first = record.Date
		}
		if record.Date.After(last) {
			last = record.Date
		}
	}

	return ExportSummary{
		TotalEntries: len(records),
		HasData:      true,
		DateFrom:     DayKey(DateAtLocation(first, service.location)),
		DateTo:       DayKey(DateAtLocation(last, service.location)),
	}, nil
}

// BuildDayHistoryEntries produces the interchange payload for the range. The
// output round-trips through ImportDailyHistory.
func (service *ExportService) BuildDayHistoryEntries(from *time.Time, to *time.Time) ([]DayHistoryEntry, error) {
	records, err := service.loadRange(from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]DayHistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, dayHistoryEntryFromRecord(record, service.location))
	}
	return entries, nil
}

func (service *ExportService) BuildMedicationHistoryEntries() ([]MedicationHistoryEntry, error) {
	items, err := service.history.List()
	if err != nil {
		return nil, err
	}

	entries := make([]MedicationHistoryEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, medicationHistoryEntryFromItem(item))
	}
	return entries, nil
}

func (service *ExportService) BuildCSVRows(from *time.Time, to *time.Time) ([]ExportCSVRow, error) {
	records, err := service.loadRange(from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportCSVRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, exportCSVRow(record, service.location))
	}
	return rows, nil
}

func (row ExportCSVRow) Columns() []string {
	return []string{
		row.Date,
		row.Water,
		row.Diet,
		row.Sleep,
		row.Exercise,
		row.Relaxation,
		fmt.Sprintf("%d", row.Attacks),
		formatPainLevel(row.WorstPain, row.Attacks),
		strings.Join(row.Medications, "; "),
		row.Notes,
	}
}

func exportCSVRow(record models.DailyRecord, location *time.Location) ExportCSVRow {
	worst := 0.0
	for _, attack := range record.Attacks {
		if attack.PainLevel > worst {
			worst = attack.PainLevel
		}
	}

	medications := make([]string, 0, len(record.Medications))
	for _, dose := range record.Medications {
		if dose.Name == "" {
			continue
		}
		medications = append(medications, dose.Name)
	}

	return ExportCSVRow{
		Date:        DayKey(DateAtLocation(record.Date, location)),
		Water:       rankLabel(record.Water),
		Diet:        rankLabel(record.Diet),
		Sleep:       rankLabel(record.Sleep),
		Exercise:    rankLabel(record.Exercise),
		Relaxation:  rankLabel(record.Relaxation),
		Attacks:     len(record.Attacks),
		WorstPain:   worst,
		Medications: medications,
		Notes:       record.Notes,
	}
}

func rankLabel(rank models.ActivityRank) string {
	switch rank {
	case models.RankBad:
		return "Bad"
	case models.RankOK:
		return "OK"
	case models.RankGood:
		return "Good"
	default:
		return "None"
	}
}

func formatPainLevel(level float64, attacks int) string {
	if attacks == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", level)
}
