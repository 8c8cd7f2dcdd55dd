package services

import (
	"errors"
	"strings"

	"github.com/aurelog/aurelog/internal/models"
	"github.com/google/uuid"
)

var (
	ErrHistoryItemNameMissing  = errors.New("medication history name missing")
	ErrHistoryItemNotFound     = errors.New("medication history item not found")
	ErrHistoryStopBeforeStart  = errors.New("medication history stop before start")
	ErrHistoryStartDateMissing = errors.New("medication history start date missing")
)

// MedicationHistoryService manages long-running medication courses, an
// entity independent of daily records.
type MedicationHistoryService struct {
	history MedicationHistoryRepository
}

func NewMedicationHistoryService(history MedicationHistoryRepository) *MedicationHistoryService {
	return &MedicationHistoryService{history: history}
}

func (service *MedicationHistoryService) List() ([]models.MedicationHistoryItem, error) {
	return service.history.List()
}

func (service *MedicationHistoryService) Create(item models.MedicationHistoryItem) (models.MedicationHistoryItem, error) {
	if err := validateHistoryItem(item); err != nil {
		return models.MedicationHistoryItem{}, err
	}

	item.ItemID = uuid.NewString()
	if err := service.history.Create(&item); err != nil {
		return models.MedicationHistoryItem{}, err
	}
	return item, nil
}

func (service *MedicationHistoryService) Update(item models.MedicationHistoryItem) (models.MedicationHistoryItem, error) {
	if err := validateHistoryItem(item); err != nil {
		return models.MedicationHistoryItem{}, err
	}

	stored, found, err := service.history.FindByItemID(item.ItemID)
	if err != nil {
		return models.MedicationHistoryItem{}, err
	}
	if !found {
		return models.MedicationHistoryItem{}, ErrHistoryItemNotFound
	}

	item.RowID = stored.RowID
	item.CreatedAt = stored.CreatedAt
	if err := service.history.Save(&item); err != nil {
		return models.MedicationHistoryItem{}, err
	}
	return item, nil
}

func (service *MedicationHistoryService) Delete(itemID string) error {
	_, found, err := service.history.FindByItemID(itemID)
	if err != nil {
		return err
	}
	if !found {
		return ErrHistoryItemNotFound
	}
	return service.history.DeleteByItemID(itemID)
}

func validateHistoryItem(item models.MedicationHistoryItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return ErrHistoryItemNameMissing
	}
	if item.StartDate.IsZero() {
		return ErrHistoryStartDateMissing
	}
	if item.StopDate != nil && item.StopDate.Before(item.StartDate) {
		return ErrHistoryStopBeforeStart
	}
	return nil
}
