package db

import (
	"time"

	"github.com/aurelog/aurelog/internal/models"
	"gorm.io/gorm"
)

type DailyRecordRepository struct {
	database *gorm.DB
}

func NewDailyRecordRepository(database *gorm.DB) *DailyRecordRepository {
	return &DailyRecordRepository{database: database}
}

func (repo *DailyRecordRepository) ListAll() ([]models.DailyRecord, error) {
	records := make([]models.DailyRecord, 0)
	if err := repo.database.Order("date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *DailyRecordRepository) ListRange(fromStart *time.Time, toEnd *time.Time) ([]models.DailyRecord, error) {
	query := repo.database.Model(&models.DailyRecord{})
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	records := make([]models.DailyRecord, 0)
	if err := query.Order("date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *DailyRecordRepository) FindByDayRange(dayStart time.Time, dayEnd time.Time) (models.DailyRecord, bool, error) {
	record := models.DailyRecord{}
	result := repo.database.
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.DailyRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *DailyRecordRepository) Create(record *models.DailyRecord) error {
	return repo.database.Create(record).Error
}

func (repo *DailyRecordRepository) Save(record *models.DailyRecord) error {
	return repo.database.Save(record).Error
}

func (repo *DailyRecordRepository) DeleteByDayRange(dayStart time.Time, dayEnd time.Time) error {
	return repo.database.Where("date >= ? AND date < ?", dayStart, dayEnd).Delete(&models.DailyRecord{}).Error
}

func (repo *DailyRecordRepository) DeleteAll() error {
	return repo.database.Where("1 = 1").Delete(&models.DailyRecord{}).Error
}

func (repo *DailyRecordRepository) CountRecords() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.DailyRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
