package services

import (
	"math"
	"sort"
	"time"

	"github.com/aurelog/aurelog/internal/models"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RankBuckets counts days per activity rank, indexed by the rank ordinal.
type RankBuckets [models.ActivityRankCount]int

func (buckets RankBuckets) Total() int {
	total := 0
	for _, count := range buckets {
		total += count
	}
	return total
}

// ActivityBuckets holds one per-rank bucket array per lifestyle axis.
type ActivityBuckets struct {
	Water      RankBuckets
	Diet       RankBuckets
	Sleep      RankBuckets
	Exercise   RankBuckets
	Relaxation RankBuckets
}

// Stats is the aggregate snapshot over a set of daily records. Grouped
// tallies preserve first-seen-key order except DaysByMedicationType, which
// is sorted descending by key as a final step.
type Stats struct {
	DaysTracked              int
	DaysWithAttack           int
	NumberOfAttacks          int
	AttacksWithAura          int
	AveragePainLevel         float64
	PercentWithAttack        int
	AllTypesOfHeadache       *orderedmap.OrderedMap[string, int]
	SymptomsByHeadache       *orderedmap.OrderedMap[string, []string]
	AllAuras                 *orderedmap.OrderedMap[string, int]
	DaysByMedicationType     *orderedmap.OrderedMap[string, int]
	MedicationNamesByType    *orderedmap.OrderedMap[string, []string]
	MostCommonTypeOfHeadache string
	ActivityBuckets          ActivityBuckets
}

// ComputeStats reduces the supplied records plus an explicit [startDate,
// stopDate] window into a Stats snapshot. The caller decides which records
// are in range; the window itself is only walked for the activity bucket
// pass, which must visit every calendar day, not only days with data.
// Records with no attacks still count toward DaysTracked.
func ComputeStats(records []models.DailyRecord, startDate time.Time, stopDate time.Time) Stats {
	stats := Stats{
		DaysTracked:           len(records),
		AllTypesOfHeadache:    orderedmap.New[string, int](),
		SymptomsByHeadache:    orderedmap.New[string, []string](),
		AllAuras:              orderedmap.New[string, int](),
		DaysByMedicationType:  orderedmap.New[string, int](),
		MedicationNamesByType: orderedmap.New[string, []string](),
	}

	painLevelDaySum := 0.0
	for _, record := range records {
		if record.HasAttack() {
			stats.DaysWithAttack++
			painLevelDaySum += meanPainLevel(record.Attacks)
		}

		for _, attack := range record.Attacks {
			stats.NumberOfAttacks++
			if attack.HasAura() {
				stats.AttacksWithAura++
			}
			tallyAttack(&stats, attack)
		}

		tallyMedications(&stats, record.Medications)
	}

	if stats.DaysWithAttack > 0 {
		stats.AveragePainLevel = painLevelDaySum / float64(stats.DaysWithAttack)
	}
	if stats.DaysTracked > 0 {
		stats.PercentWithAttack = int(math.Round(100 * float64(stats.DaysWithAttack) / float64(stats.DaysTracked)))
	}

	stats.DaysByMedicationType = sortTallyByKeyDescending(stats.DaysByMedicationType)
	stats.MostCommonTypeOfHeadache = mostCommonKey(stats.AllTypesOfHeadache)
	stats.ActivityBuckets = bucketActivityRanks(records, startDate, stopDate)

	return stats
}

func tallyAttack(stats *Stats, attack models.Attack) {
	headacheType := attack.HeadacheType
	count, _ := stats.AllTypesOfHeadache.Get(headacheType)
	stats.AllTypesOfHeadache.Set(headacheType, count+1)

	symptoms, _ := stats.SymptomsByHeadache.Get(headacheType)
	stats.SymptomsByHeadache.Set(headacheType, appendUnseen(symptoms, attack.Symptoms))

	for _, aura := range attack.Auras {
		auraCount, _ := stats.AllAuras.Get(aura)
		stats.AllAuras.Set(aura, auraCount+1)
	}
}

// tallyMedications counts each medication type once per day regardless of
// how many doses of that type the day holds.
func tallyMedications(stats *Stats, doses []models.MedicationDose) {
	typesSeenToday := make(map[string]struct{}, len(doses))
	for _, dose := range doses {
		if _, seen := typesSeenToday[dose.Type]; !seen {
			typesSeenToday[dose.Type] = struct{}{}
			dayCount, _ := stats.DaysByMedicationType.Get(dose.Type)
			stats.DaysByMedicationType.Set(dose.Type, dayCount+1)
		}

		if dose.Name == "" {
			continue
		}
		names, _ := stats.MedicationNamesByType.Get(dose.Type)
		stats.MedicationNamesByType.Set(dose.Type, appendUnseen(names, []string{dose.Name}))
	}
}

// bucketActivityRanks walks every calendar day in the window inclusive. Days
// without a stored record contribute to no bucket; they are not "none" days.
func bucketActivityRanks(records []models.DailyRecord, startDate time.Time, stopDate time.Time) ActivityBuckets {
	buckets := ActivityBuckets{}
	if startDate.IsZero() || stopDate.IsZero() || stopDate.Before(startDate) {
		return buckets
	}

	recordsByDay := make(map[string]models.DailyRecord, len(records))
	for _, record := range records {
		recordsByDay[DayKey(record.Date)] = record
	}

	start := DateAtLocation(startDate, startDate.Location())
	stop := DateAtLocation(stopDate, stopDate.Location())
	for day := start; !day.After(stop); day = day.AddDate(0, 0, 1) {
		record, exists := recordsByDay[DayKey(day)]
		if !exists {
			continue
		}
		incrementBucket(&buckets.Water, record.Water)
		incrementBucket(&buckets.Diet, record.Diet)
		incrementBucket(&buckets.Sleep, record.Sleep)
		incrementBucket(&buckets.Exercise, record.Exercise)
		incrementBucket(&buckets.Relaxation, record.Relaxation)
	}
	return buckets
}

func incrementBucket(buckets *RankBuckets, rank models.ActivityRank) {
	if !rank.Valid() {
		return
	}
	buckets[rank]++
}

func meanPainLevel(attacks []models.Attack) float64 {
	if len(attacks) == 0 {
		return 0
	}
	total := 0.0
	for _, attack := range attacks {
		total += attack.PainLevel
	}
	return total / float64(len(attacks))
}

// mostCommonKey returns the key with the highest count; ties keep the first
// encountered key.
func mostCommonKey(tally *orderedmap.OrderedMap[string, int]) string {
	best := ""
	bestCount := 0
	for pair := tally.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value > bestCount {
			best = pair.Key
			bestCount = pair.Value
		}
	}
	return best
}

func sortTallyByKeyDescending(tally *orderedmap.OrderedMap[string, int]) *orderedmap.OrderedMap[string, int] {
	keys := make([]string, 0, tally.Len())
	for pair := tally.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	sorted := orderedmap.New[string, int]()
	for _, key := range keys {
		count, _ := tally.Get(key)
		sorted.Set(key, count)
	}
	return sorted
}

func appendUnseen(existing []string, candidates []string) []string {
	for _, candidate := range candidates {
		seen := false
		for _, value := range existing {
			if value == candidate {
				seen = true
				break
			}
		}
		if !seen {
			existing = append(existing, candidate)
		}
	}
	return existing
}
