package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aurelog/aurelog/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidBandColor       = errors.New("invalid band color")
	ErrInvalidVocabularyEntry = errors.New("invalid vocabulary entry")
	ErrAccessPasswordMissing  = errors.New("access password missing")
	ErrAccessPasswordInvalid  = errors.New("access password invalid")
	ErrAccessPasswordTooShort = errors.New("access password too short")
	ErrSettingsPersistFailed  = errors.New("persist settings failed")
)

const (
	maxVocabularyEntryLength = 80
	minAccessPasswordLength  = 8
)

var hexBandColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type VocabularyUpdate struct {
	HeadacheTypes   []string
	Symptoms        []string
	Auras           []string
	MedicationTypes []string
	SideEffects     []string
}

type BandColorsUpdate struct {
	None string
	Bad  string
	OK   string
	Good string
}

type PolicyUpdate struct {
	AttacksEndWithDay    bool
	DefaultEffectiveness models.Effectiveness
}

type SettingsService struct {
	settings SettingsRepository
}

func NewSettingsService(settings SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

func (service *SettingsService) LoadSettings() (models.AppSettings, error) {
	return service.settings.Load()
}

// HeadacheTypes returns the built-in vocabulary extended with the user's
// custom entries. The engines treat tags as opaque strings; validation
// against these lists is a UI concern.
func (service *SettingsService) HeadacheTypes(settings models.AppSettings) []string {
	return models.MergeVocabulary(models.DefaultBuiltinHeadacheTypes(), settings.CustomHeadacheTypes)
}

func (service *SettingsService) Symptoms(settings models.AppSettings) []string {
	return models.MergeVocabulary(models.DefaultBuiltinSymptoms(), settings.CustomSymptoms)
}

func (service *SettingsService) Auras(settings models.AppSettings) []string {
	return models.MergeVocabulary(models.DefaultBuiltinAuras(), settings.CustomAuras)
}

func (service *SettingsService) MedicationTypes(settings models.AppSettings) []string {
	return models.MergeVocabulary(models.DefaultBuiltinMedicationTypes(), settings.CustomMedicationTypes)
}

func (service *SettingsService) UpdateVocabularies(update VocabularyUpdate) (models.AppSettings, error) {
	for _, list := range [][]string{update.HeadacheTypes, update.Symptoms, update.Auras, update.MedicationTypes, update.SideEffects} {
		for _, entry := range list {
			trimmed := strings.TrimSpace(entry)
			if trimmed == "" || len(trimmed) > maxVocabularyEntryLength {
				return models.AppSettings{}, ErrInvalidVocabularyEntry
			}
		}
	}

	settings, err := service.settings.Load()
	if err != nil {
		return models.AppSettings{}, err
	}

	settings.CustomHeadacheTypes = cleanVocabulary(update.HeadacheTypes)
	settings.CustomSymptoms = cleanVocabulary(update.Symptoms)
	settings.CustomAuras = cleanVocabulary(update.Auras)
	settings.CustomMedicationTypes = cleanVocabulary(update.MedicationTypes)
	settings.CustomSideEffects = cleanVocabulary(update.SideEffects)

	if err := service.settings.Save(&settings); err != nil {
		return models.AppSettings{}, fmt.Errorf("%w: %v", ErrSettingsPersistFailed, err)
	}
	return settings, nil
}

func (service *SettingsService) UpdateBandColors(update BandColorsUpdate) (models.AppSettings, error) {
	for _, color := range []string{update.None, update.Bad, update.OK, update.Good} {
		if !hexBandColorPattern.MatchString(strings.TrimSpace(color)) {
			return models.AppSettings{}, ErrInvalidBandColor
		}
	}

	settings, err := service.settings.Load()
	if err != nil {
		return models.AppSettings{}, err
	}

	settings.ColorNone = strings.TrimSpace(update.None)
	settings.ColorBad = strings.TrimSpace(update.Bad)
	settings.ColorOK = strings.TrimSpace(update.OK)
	settings.ColorGood = strings.TrimSpace(update.Good)

	if err := service.settings.Save(&settings); err != nil {
		return models.AppSettings{}, fmt.Errorf("%w: %v", ErrSettingsPersistFailed, err)
	}
	return settings, nil
}

func (service *SettingsService) UpdatePolicy(update PolicyUpdate) (models.AppSettings, error) {
	if !update.DefaultEffectiveness.Valid() {
		return models.AppSettings{}, ErrInvalidEffectiveness
	}

	settings, err := service.settings.Load()
	if err != nil {
		return models.AppSettings{}, err
	}

	settings.AttacksEndWithDay = update.AttacksEndWithDay
	settings.DefaultEffectiveness = update.DefaultEffectiveness

	if err := service.settings.Save(&settings); err != nil {
		return models.AppSettings{}, fmt.Errorf("%w: %v", ErrSettingsPersistFailed, err)
	}
	return settings, nil
}

// SetAccessPassword stores a bcrypt hash of the password guarding the API.
// An empty password clears the guard.
func (service *SettingsService) SetAccessPassword(raw string) error {
	password := strings.TrimSpace(raw)

	settings, err := service.settings.Load()
	if err != nil {
		return err
	}

	if password == "" {
		settings.AccessPasswordHash = ""
		return service.settings.Save(&settings)
	}
	if len(password) < minAccessPasswordLength {
		return ErrAccessPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	settings.AccessPasswordHash = string(hash)
	return service.settings.Save(&settings)
}

func (service *SettingsService) VerifyAccessPassword(passwordHash string, raw string) error {
	password := strings.TrimSpace(raw)
	if password == "" {
		return ErrAccessPasswordMissing
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return ErrAccessPasswordInvalid
	}
	return nil
}

func cleanVocabulary(entries []string) []string {
	cleaned := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		if _, duplicate := seen[trimmed]; duplicate {
			continue
		}
		seen[trimmed] = struct{}{}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}
