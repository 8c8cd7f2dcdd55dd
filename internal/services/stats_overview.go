package services

import (
	"time"

	"github.com/aurelog/aurelog/internal/models"
)

// StatsDayReader is the read-only slice of the record store the statistics
// facade needs.
type StatsDayReader interface {
	ListRange(from *time.Time, to *time.Time) ([]models.DailyRecord, error)
}

// StatsService loads the records for a window and hands them to the pure
// ComputeStats reduction.
type StatsService struct {
	days     StatsDayReader
	location *time.Location
}

func NewStatsService(days StatsDayReader, location *time.Location) *StatsService {
	if location == nil {
		location = time.UTC
	}
	return &StatsService{days: days, location: location}
}

func (service *StatsService) BuildOverview(startDate time.Time, stopDate time.Time) (Stats, error) {
	fromStart, _ := DayRange(startDate, service.location)
	_, toEnd := DayRange(stopDate, service.location)

	records, err := service.days.ListRange(&fromStart, &toEnd)
	if err != nil {
		return Stats{}, err
	}

	return ComputeStats(records, DateAtLocation(startDate, service.location), DateAtLocation(stopDate, service.location)), nil
}
