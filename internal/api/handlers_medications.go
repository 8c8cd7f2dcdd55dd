package api

import (
	"time"

	"github.com/aurelog/aurelog/internal/models"
	"github.com/gofiber/fiber/v2"
)

type medicationPayload struct {
	Name          string    `json:"name"`
	Dose          string    `json:"dose"`
	Amount        int       `json:"amount"`
	Type          string    `json:"type"`
	Effectiveness *int      `json:"effectiveness"`
	Time          time.Time `json:"time"`
}

// toModel applies the install's default effectiveness when the payload
// leaves the field unset.
func (payload medicationPayload) toModel(id string, fallback models.Effectiveness) models.MedicationDose {
	effectiveness := fallback
	if payload.Effectiveness != nil {
		effectiveness = models.Effectiveness(*payload.Effectiveness)
	}
	return models.MedicationDose{
		ID:            id,
		Name:          payload.Name,
		Dose:          payload.Dose,
		Amount:        payload.Amount,
		Type:          payload.Type,
		Effectiveness: effectiveness,
		Time:          payload.Time,
	}
}

func (handler *Handler) AddMedication(c *fiber.Ctx) error {
	day, err := handler.parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := medicationPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := handler.settings.LoadSettings()
	if err != nil {
		return serviceError(c, err)
	}

	dose, err := handler.records.AddMedication(day, payload.toModel("", settings.DefaultEffectiveness))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dose)
}

func (handler *Handler) UpdateMedication(c *fiber.Ctx) error {
	day, err := handler.parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := medicationPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := handler.settings.LoadSettings()
	if err != nil {
		return serviceError(c, err)
	}

	dose, err := handler.records.UpdateMedication(day, payload.toModel(c.Params("id"), settings.DefaultEffectiveness))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dose)
}

func (handler *Handler) DeleteMedication(c *fiber.Ctx) error {
	day, err := handler.parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.records.DeleteMedication(day, c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
