package models

import "time"

// PainSide encodes where a pain quality is felt. The ordinal values are part
// of the interchange format and must not be reordered.
type PainSide int

const (
	SideNone PainSide = 0
	SideOne  PainSide = 1
	SideBoth PainSide = 2
)

func (side PainSide) Valid() bool {
	return side >= SideNone && side <= SideBoth
}

const (
	MinPainLevel = 0
	MaxPainLevel = 10
)

// Attack is a single logged pain episode. It is owned by exactly one
// DailyRecord and identified by an opaque id assigned at creation.
// A nil StopTime means the attack is still ongoing.
type Attack struct {
	ID            string     `json:"id"`
	HeadacheType  string     `json:"headache_type"`
	PainLevel     float64    `json:"pain_level"`
	Pressing      bool       `json:"pressing"`
	PressingSide  PainSide   `json:"pressing_side"`
	Pulsating     bool       `json:"pulsating"`
	PulsatingSide PainSide   `json:"pulsating_side"`
	Symptoms      []string   `json:"symptoms"`
	Auras         []string   `json:"auras"`
	StartTime     time.Time  `json:"start_time"`
	StopTime      *time.Time `json:"stop_time"`
}

func (attack Attack) IsOpen() bool {
	return attack.StopTime == nil
}

func (attack Attack) HasAura() bool {
	return len(attack.Auras) > 0
}
