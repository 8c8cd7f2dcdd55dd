package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type sessionStartPayload struct {
	Today string `json:"today"`
}

// StartSession runs one continuity reconciliation. The caller may supply
// "today" explicitly; otherwise the server clock decides. Reconciliations
// and imports are mutually exclusive.
func (handler *Handler) StartSession(c *fiber.Ctx) error {
	payload := sessionStartPayload{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	today := time.Now().In(handler.location)
	if payload.Today != "" {
		parsed, err := handler.parseDayParam(payload.Today)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid today date")
		}
		today = parsed
	}

	handler.mutate.Lock()
	defer handler.mutate.Unlock()

	if err := handler.continuity.Reconcile(today); err != nil {
		return serviceError(c, err)
	}

	record, err := handler.records.FetchRecordByDate(today)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(record)
}
