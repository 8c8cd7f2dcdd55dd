package models

import "time"

// ActivityRank is a qualitative rating for one lifestyle axis on one day.
// The ordinal values are part of the interchange format and must not be
// reordered.
type ActivityRank int

const (
	RankNone ActivityRank = 0
	RankBad  ActivityRank = 1
	RankOK   ActivityRank = 2
	RankGood ActivityRank = 3
)

// ActivityRankCount is the number of distinct ranks, used to size per-rank
// bucket arrays.
const ActivityRankCount = 4

func (rank ActivityRank) Valid() bool {
	return rank >= RankNone && rank <= RankGood
}

// DailyRecord aggregates everything logged for one calendar date. There is at
// most one record per date; attacks and medication doses are owned by the
// record and stored inline.
type DailyRecord struct {
	ID          uint             `gorm:"primaryKey" json:"-"`
	Date        time.Time        `gorm:"type:date;not null;uniqueIndex" json:"date"`
	Water       ActivityRank     `gorm:"not null;default:0" json:"water"`
	Diet        ActivityRank     `gorm:"not null;default:0" json:"diet"`
	Sleep       ActivityRank     `gorm:"not null;default:0" json:"sleep"`
	Exercise    ActivityRank     `gorm:"not null;default:0" json:"exercise"`
	Relaxation  ActivityRank     `gorm:"not null;default:0" json:"relaxation"`
	Notes       string           `json:"notes"`
	Attacks     []Attack         `gorm:"serializer:json" json:"attacks"`
	Medications []MedicationDose `gorm:"serializer:json" json:"medications"`
	CreatedAt   time.Time        `json:"-"`
	UpdatedAt   time.Time        `json:"-"`
}

// OpenAttack returns the attack without a stop time, if any. Write paths
// keep the invariant that at most one attack per record is open.
func (record DailyRecord) OpenAttack() (Attack, bool) {
	for _, attack := range record.Attacks {
		if attack.IsOpen() {
			return attack, true
		}
	}
	return Attack{}, false
}

func (record DailyRecord) HasAttack() bool {
	return len(record.Attacks) > 0
}
