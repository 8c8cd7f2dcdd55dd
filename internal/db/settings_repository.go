package db

import (
	"errors"

	"github.com/aurelog/aurelog/internal/models"
	"gorm.io/gorm"
)

const settingsRowID = 1

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

// Load returns the settings singleton, creating the default row on first
// run. Exactly one row with a fixed id ever exists.
func (repo *SettingsRepository) Load() (models.AppSettings, error) {
	settings := models.AppSettings{}
	err := repo.database.First(&settings, settingsRowID).Error
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AppSettings{}, err
	}

	settings = models.NewDefaultSettings()
	if err := repo.database.Create(&settings).Error; err != nil {
		return models.AppSettings{}, err
	}
	return settings, nil
}

func (repo *SettingsRepository) Save(settings *models.AppSettings) error {
	settings.ID = settingsRowID
	return repo.database.Save(settings).Error
}
