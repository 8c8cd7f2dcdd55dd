package api

import (
	"time"

	"github.com/aurelog/aurelog/internal/models"
	"github.com/gofiber/fiber/v2"
)

type attackPayload struct {
	HeadacheType  string     `json:"headache_type"`
	PainLevel     float64    `json:"pain_level"`
	Pressing      bool       `json:"pressing"`
	PressingSide  int        `json:"pressing_side"`
	Pulsating     bool       `json:"pulsating"`
	PulsatingSide int        `json:"pulsating_side"`
	Symptoms      []string   `json:"symptoms"`
	Auras         []string   `json:"auras"`
	StartTime     time.Time  `json:"start_time"`
	StopTime      *time.Time `json:"stop_time"`
}

type stopAttackPayload struct {
	StopTime *time.Time `json:"stop_time"`
}

func (payload attackPayload) toModel(id string) models.Attack {
	return models.Attack{
		ID:            id,
		HeadacheType:  payload.HeadacheType,
		PainLevel:     payload.PainLevel,
		Pressing:      payload.Pressing,
		PressingSide:  models.PainSide(payload.PressingSide),
		Pulsating:     payload.Pulsating,
		PulsatingSide: models.PainSide(payload.PulsatingSide),
		Symptoms:      payload.Symptoms,
		Auras:         payload.Auras,
		StartTime:     payload.StartTime,
		StopTime:      payload.StopTime,
	}
}

func (handler *Handler) AddAttack(c *fiber.Ctx) error {
	day, err := handler.parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := attackPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	attack, err := handler.records.AddAttack(day, payload.toModel(""))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(attack)
}

func (handler *Handler) UpdateAttack(c *fiber.Ctx) error {
	day, err := handler.parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := attackPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	attack, err := handler.records.UpdateAttack(day, payload.toModel(c.Params("id")))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(attack)
}

// StopAttack closes an open attack; a missing stop time means "now".
func (handler *Handler) StopAttack(c *fiber.Ctx) error {
	day, err := handler.parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := stopAttackPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	stopTime := time.Now().In(handler.location)
	if payload.StopTime != nil {
		stopTime = *payload.StopTime
	}

	attack, err := handler.records.StopAttack(day, c.Params("id"), stopTime)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(attack)
}

func (handler *Handler) DeleteAttack(c *fiber.Ctx) error {
	day, err := handler.parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.records.DeleteAttack(day, c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
