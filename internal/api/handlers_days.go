package api

import (
	"github.com/aurelog/aurelog/internal/models"
	"github.com/aurelog/aurelog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type dayInfoPayload struct {
	Water      int    `json:"water"`
	Diet       int    `json:"diet"`
	Sleep      int    `json:"sleep"`
	Exercise   int    `json:"exercise"`
	Relaxation int    `json:"relaxation"`
	Notes      string `json:"notes"`
}

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	records, err := handler.records.ListRange(from, to)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(records)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	day, err := handler.parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	record, err := handler.records.FetchRecordByDate(day)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) UpsertDayInfo(c *fiber.Ctx) error {
	day, err := handler.parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := dayInfoPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record, err := handler.records.UpsertDayInfo(day, services.DayInfoInput{
		Water:      models.ActivityRank(payload.Water),
		Diet:       models.ActivityRank(payload.Diet),
		Sleep:      models.ActivityRank(payload.Sleep),
		Exercise:   models.ActivityRank(payload.Exercise),
		Relaxation: models.ActivityRank(payload.Relaxation),
		Notes:      payload.Notes,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	day, err := handler.parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.records.DeleteDay(day); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
