package db

import (
	"github.com/aurelog/aurelog/internal/models"
	"gorm.io/gorm"
)

type MedicationHistoryRepository struct {
	database *gorm.DB
}

func NewMedicationHistoryRepository(database *gorm.DB) *MedicationHistoryRepository {
	return &MedicationHistoryRepository{database: database}
}

func (repo *MedicationHistoryRepository) List() ([]models.MedicationHistoryItem, error) {
	items := make([]models.MedicationHistoryItem, 0)
	if err := repo.database.Order("start_date ASC, row_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *MedicationHistoryRepository) FindByItemID(itemID string) (models.MedicationHistoryItem, bool, error) {
	item := models.MedicationHistoryItem{}
	result := repo.database.Where("item_id = ?", itemID).Limit(1).Find(&item)
	if result.Error != nil {
		return models.MedicationHistoryItem{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MedicationHistoryItem{}, false, nil
	}
	return item, true, nil
}

func (repo *MedicationHistoryRepository) Create(item *models.MedicationHistoryItem) error {
	return repo.database.Create(item).Error
}

func (repo *MedicationHistoryRepository) Save(item *models.MedicationHistoryItem) error {
	return repo.database.Save(item).Error
}

func (repo *MedicationHistoryRepository) DeleteByItemID(itemID string) error {
	return repo.database.Where("item_id = ?", itemID).Delete(&models.MedicationHistoryItem{}).Error
}

func (repo *MedicationHistoryRepository) DeleteAll() error {
	return repo.database.Where("1 = 1").Delete(&models.MedicationHistoryItem{}).Error
}
