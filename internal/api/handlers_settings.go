package api

import (
	"github.com/aurelog/aurelog/internal/models"
	"github.com/aurelog/aurelog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type vocabulariesPayload struct {
	HeadacheTypes   []string `json:"headache_types"`
	Symptoms        []string `json:"symptoms"`
	Auras           []string `json:"auras"`
	MedicationTypes []string `json:"medication_types"`
	SideEffects     []string `json:"side_effects"`
}

type bandColorsPayload struct {
	None string `json:"none"`
	Bad  string `json:"bad"`
	OK   string `json:"ok"`
	Good string `json:"good"`
}

type policyPayload struct {
	AttacksEndWithDay    bool `json:"attacks_end_with_day"`
	DefaultEffectiveness int  `json:"default_effectiveness"`
}

type accessPasswordPayload struct {
	Password string `json:"password"`
}

type settingsView struct {
	models.AppSettings
	HeadacheTypes   []string `json:"headache_types"`
	Symptoms        []string `json:"symptoms"`
	Auras           []string `json:"auras"`
	MedicationTypes []string `json:"medication_types"`
	Guarded         bool     `json:"guarded"`
}

func (handler *Handler) settingsResponse(settings models.AppSettings) settingsView {
	return settingsView{
		AppSettings:     settings,
		HeadacheTypes:   handler.settings.HeadacheTypes(settings),
		Symptoms:        handler.settings.Symptoms(settings),
		Auras:           handler.settings.Auras(settings),
		MedicationTypes: handler.settings.MedicationTypes(settings),
		Guarded:         settings.AccessPasswordHash != "",
	}
}

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.settings.LoadSettings()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(handler.settingsResponse(settings))
}

func (handler *Handler) UpdateVocabularies(c *fiber.Ctx) error {
	payload := vocabulariesPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := handler.settings.UpdateVocabularies(services.VocabularyUpdate{
		HeadacheTypes:   payload.HeadacheTypes,
		Symptoms:        payload.Symptoms,
		Auras:           payload.Auras,
		MedicationTypes: payload.MedicationTypes,
		SideEffects:     payload.SideEffects,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(handler.settingsResponse(settings))
}

func (handler *Handler) UpdateBandColors(c *fiber.Ctx) error {
	payload := bandColorsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := handler.settings.UpdateBandColors(services.BandColorsUpdate{
		None: payload.None,
		Bad:  payload.Bad,
		OK:   payload.OK,
		Good: payload.Good,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(handler.settingsResponse(settings))
}

func (handler *Handler) UpdatePolicy(c *fiber.Ctx) error {
	payload := policyPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := handler.settings.UpdatePolicy(services.PolicyUpdate{
		AttacksEndWithDay:    payload.AttacksEndWithDay,
		DefaultEffectiveness: models.Effectiveness(payload.DefaultEffectiveness),
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(handler.settingsResponse(settings))
}

func (handler *Handler) SetAccessPassword(c *fiber.Ctx) error {
	payload := accessPasswordPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := handler.settings.SetAccessPassword(payload.Password); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
