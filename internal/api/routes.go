package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)

	session := api.Group("/session", handler.AuthRequired)
	session.Post("/start", handler.StartSession)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	days.Post("/:date", handler.UpsertDayInfo)
	days.Delete("/:date", handler.DeleteDay)

	days.Post("/:date/attacks", handler.AddAttack)
	days.Put("/:date/attacks/:id", handler.UpdateAttack)
	days.Post("/:date/attacks/:id/stop", handler.StopAttack)
	days.Delete("/:date/attacks/:id", handler.DeleteAttack)

	days.Post("/:date/medications", handler.AddMedication)
	days.Put("/:date/medications/:id", handler.UpdateMedication)
	days.Delete("/:date/medications/:id", handler.DeleteMedication)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("/overview", handler.GetStatsOverview)

	transfer := api.Group("/import", handler.AuthRequired)
	transfer.Post("/days", handler.ImportDays)
	transfer.Post("/medications", handler.ImportMedicationHistory)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/medications", handler.ExportMedicationHistory)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Put("/vocabularies", handler.UpdateVocabularies)
	settings.Put("/colors", handler.UpdateBandColors)
	settings.Put("/policy", handler.UpdatePolicy)
	settings.Post("/access-password", handler.SetAccessPassword)

	history := api.Group("/medication-history", handler.AuthRequired)
	history.Get("", handler.ListMedicationHistory)
	history.Post("", handler.CreateMedicationHistoryItem)
	history.Put("/:id", handler.UpdateMedicationHistoryItem)
	history.Delete("/:id", handler.DeleteMedicationHistoryItem)
}
