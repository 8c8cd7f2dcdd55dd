package api

import (
	"encoding/csv"
	"strings"
	"time"

	"github.com/aurelog/aurelog/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ImportDays(c *fiber.Ctx) error {
	policy, err := services.ParseConflictPolicy(c.Query("policy"))
	if err != nil {
		return serviceError(c, err)
	}

	handler.mutate.Lock()
	defer handler.mutate.Unlock()

	summary, err := handler.importer.ImportDailyHistory(c.Body(), policy)
	if err != nil {
		return serviceError(c, err)
	}

	// An import that leaves today without a record must be followed by a
	// continuity reconciliation before the app resumes.
	today := time.Now().In(handler.location)
	record, err := handler.records.FetchRecordByDate(today)
	if err != nil {
		return serviceError(c, err)
	}
	if record.ID == 0 {
		if err := handler.continuity.Reconcile(today); err != nil {
			return serviceError(c, err)
		}
	}

	return c.JSON(summary)
}

func (handler *Handler) ImportMedicationHistory(c *fiber.Ctx) error {
	policy, err := services.ParseConflictPolicy(c.Query("policy"))
	if err != nil {
		return serviceError(c, err)
	}

	handler.mutate.Lock()
	defer handler.mutate.Unlock()

	summary, err := handler.importer.ImportMedicationHistory(c.Body(), policy)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	summary, err := handler.exporter.BuildSummary(from, to)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	entries, err := handler.exporter.BuildDayHistoryEntries(from, to)
	if err != nil {
		return serviceError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="aurelog-history.json"`)
	return c.JSON(entries)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	rows, err := handler.exporter.BuildCSVRows(from, to)
	if err != nil {
		return serviceError(c, err)
	}

	builder := &strings.Builder{}
	writer := csv.NewWriter(builder)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to render csv")
	}
	for _, row := range rows {
		if err := writer.Write(row.Columns()); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to render csv")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to render csv")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="aurelog-history.csv"`)
	return c.SendString(builder.String())
}

func (handler *Handler) ExportMedicationHistory(c *fiber.Ctx) error {
	entries, err := handler.exporter.BuildMedicationHistoryEntries()
	if err != nil {
		return serviceError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="aurelog-medications.json"`)
	return c.JSON(entries)
}
