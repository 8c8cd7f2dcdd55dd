package api

import (
	"github.com/aurelog/aurelog/internal/services"
	"github.com/gofiber/fiber/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type activityBucketsView struct {
	Water      services.RankBuckets `json:"water"`
	Diet       services.RankBuckets `json:"diet"`
	Sleep      services.RankBuckets `json:"sleep"`
	Exercise   services.RankBuckets `json:"exercise"`
	Relaxation services.RankBuckets `json:"relaxation"`
}

type statsOverviewView struct {
	DaysTracked              int                                       `json:"days_tracked"`
	DaysWithAttack           int                                       `json:"days_with_attack"`
	NumberOfAttacks          int                                       `json:"number_of_attacks"`
	AttacksWithAura          int                                       `json:"attacks_with_aura"`
	AveragePainLevel         float64                                   `json:"average_pain_level"`
	PercentWithAttack        int                                       `json:"percent_with_attack"`
	AllTypesOfHeadache       *orderedmap.OrderedMap[string, int]       `json:"all_types_of_headache"`
	SymptomsByHeadache       *orderedmap.OrderedMap[string, []string]  `json:"symptoms_by_headache"`
	AllAuras                 *orderedmap.OrderedMap[string, int]       `json:"all_auras"`
	DaysByMedicationType     *orderedmap.OrderedMap[string, int]       `json:"days_by_medication_type"`
	MedicationNamesByType    *orderedmap.OrderedMap[string, []string]  `json:"medication_names_by_type"`
	MostCommonTypeOfHeadache string                                    `json:"most_common_type_of_headache"`
	ActivityBuckets          activityBucketsView                       `json:"activity_buckets"`
}

func statsOverview(stats services.Stats) statsOverviewView {
	return statsOverviewView{
		DaysTracked:              stats.DaysTracked,
		DaysWithAttack:           stats.DaysWithAttack,
		NumberOfAttacks:          stats.NumberOfAttacks,
		AttacksWithAura:          stats.AttacksWithAura,
		AveragePainLevel:         stats.AveragePainLevel,
		PercentWithAttack:        stats.PercentWithAttack,
		AllTypesOfHeadache:       stats.AllTypesOfHeadache,
		SymptomsByHeadache:       stats.SymptomsByHeadache,
		AllAuras:                 stats.AllAuras,
		DaysByMedicationType:     stats.DaysByMedicationType,
		MedicationNamesByType:    stats.MedicationNamesByType,
		MostCommonTypeOfHeadache: stats.MostCommonTypeOfHeadache,
		ActivityBuckets: activityBucketsView{
			Water:      stats.ActivityBuckets.Water,
			Diet:       stats.ActivityBuckets.Diet,
			Sleep:      stats.ActivityBuckets.Sleep,
			Exercise:   stats.ActivityBuckets.Exercise,
			Relaxation: stats.ActivityBuckets.Relaxation,
		},
	}
}

func (handler *Handler) GetStatsOverview(c *fiber.Ctx) error {
	from, err := handler.parseDayParam(c.Query("from"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := handler.parseDayParam(c.Query("to"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}
	if to.Before(from) {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	stats, err := handler.stats.BuildOverview(from, to)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(statsOverview(stats))
}
