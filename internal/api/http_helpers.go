package api

import (
	"errors"
	"time"

	"github.com/aurelog/aurelog/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) parseDayParam(raw string) (time.Time, error) {
	return services.ParseDayKey(raw, handler.location)
}

// serviceError maps engine sentinel errors onto HTTP statuses; anything
// unmatched is a storage failure.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAttackNotFound),
		errors.Is(err, services.ErrMedicationNotFound),
		errors.Is(err, services.ErrHistoryItemNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrOpenAttackExists):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidActivityRank),
		errors.Is(err, services.ErrInvalidPainLevel),
		errors.Is(err, services.ErrInvalidPainSide),
		errors.Is(err, services.ErrInvalidEffectiveness),
		errors.Is(err, services.ErrAttackStartMissing),
		errors.Is(err, services.ErrAttackStopBeforeStart),
		errors.Is(err, services.ErrInvalidBandColor),
		errors.Is(err, services.ErrInvalidVocabularyEntry),
		errors.Is(err, services.ErrHistoryItemNameMissing),
		errors.Is(err, services.ErrHistoryStartDateMissing),
		errors.Is(err, services.ErrHistoryStopBeforeStart),
		errors.Is(err, services.ErrAccessPasswordTooShort),
		errors.Is(err, services.ErrMalformedPayload),
		errors.Is(err, services.ErrUnknownConflictPolicy):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrClockRollback):
		// Fatal configuration error, surfaced unmodified.
		return apiError(c, fiber.StatusConflict, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, "storage failure")
	}
}
