package api

import (
	"time"

	"github.com/aurelog/aurelog/internal/models"
	"github.com/gofiber/fiber/v2"
)

type medicationHistoryPayload struct {
	Name      string     `json:"name"`
	Dose      string     `json:"dose"`
	Amount    int        `json:"amount"`
	Type      string     `json:"type"`
	StartDate time.Time  `json:"start_date"`
	StopDate  *time.Time `json:"stop_date"`
}

func (payload medicationHistoryPayload) toModel(itemID string) models.MedicationHistoryItem {
	return models.MedicationHistoryItem{
		ItemID:    itemID,
		Name:      payload.Name,
		Dose:      payload.Dose,
		Amount:    payload.Amount,
		Type:      payload.Type,
		StartDate: payload.StartDate,
		StopDate:  payload.StopDate,
	}
}

func (handler *Handler) ListMedicationHistory(c *fiber.Ctx) error {
	items, err := handler.history.List()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(items)
}

func (handler *Handler) CreateMedicationHistoryItem(c *fiber.Ctx) error {
	payload := medicationHistoryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := handler.history.Create(payload.toModel(""))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (handler *Handler) UpdateMedicationHistoryItem(c *fiber.Ctx) error {
	payload := medicationHistoryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := handler.history.Update(payload.toModel(c.Params("id")))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(item)
}

func (handler *Handler) DeleteMedicationHistoryItem(c *fiber.Ctx) error {
	if err := handler.history.Delete(c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
