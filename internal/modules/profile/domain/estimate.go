package domain

import (
	"math"
	"strings"
	"time"
	"unicode"
)

// RuleVersion stamps every recommendation. Bump it whenever presets, the
// keyword table, or the adjustment rules change.
const RuleVersion = "2025.2"

type Purpose string

const (
	PurposeExpress  Purpose = "express"
	PurposeMonetize Purpose = "monetize"
	PurposeFun      Purpose = "fun"
	PurposeSkill    Purpose = "skill"
	PurposeCustom   Purpose = "custom"
)

var Purposes = []Purpose{PurposeExpress, PurposeMonetize, PurposeFun, PurposeSkill, PurposeCustom}

type Feasibility string

const (
	FeasibilityBusy   Feasibility = "busy"
	FeasibilityNormal Feasibility = "normal"
	FeasibilityFree   Feasibility = "free"
)

type HintUnit string

const (
	HintWords   HintUnit = "words"
	HintMinutes HintUnit = "minutes"
)

type Answers struct {
	Purpose     Purpose     `json:"purpose"`
	Outcome     string      `json:"outcome"`
	Feasibility Feasibility `json:"feasibility"`
	Hint        int         `json:"hint,omitempty"`
	HintUnit    HintUnit    `json:"hint_unit,omitempty"`
}

type Recommendation struct {
	SessionMinutes  int       `json:"session_minutes"`
	TargetWords     int       `json:"target_words"`
	SessionsPerWeek int       `json:"sessions_per_week"`
	RuleVersion     string    `json:"rule_version"`
	CalculatedAt    time.Time `json:"calculated_at"`
}

type preset struct {
	minutes   float64
	words     float64
	frequency float64
}

var presets = map[Purpose]preset{
	PurposeExpress:  {minutes: 20, words: 300, frequency: 4},
	PurposeMonetize: {minutes: 45, words: 1000, frequency: 5},
	PurposeFun:      {minutes: 20, words: 250, frequency: 3},
	PurposeSkill:    {minutes: 30, words: 500, frequency: 4},
	PurposeCustom:   {minutes: 25, words: 400, frequency: 3},
}

var ambitionKeywords = map[string]int{
	"novel":        2,
	"book":         2,
	"publish":      2,
	"published":    2,
	"manuscript":   2,
	"career":       2,
	"professional": 2,
	"bestseller":   2,
	"blog":         1,
	"story":        1,
	"stories":      1,
	"essay":        1,
	"essays":       1,
	"journal":      1,
	"habit":        1,
	"improve":      1,
	"regularly":    1,
	"consistent":   1,
}

const (
	minSessionMinutes = 10
	maxSessionMinutes = 90
	minTargetWords    = 100
	maxTargetWords    = 3000
	minFrequency      = 1
	maxFrequency      = 7
	busyFloor         = 2
)

// AmbitionLevel returns the highest keyword level found in outcome, 0..2.
func AmbitionLevel(outcome string) int {
	level := 0
	words := strings.FieldsFunc(strings.ToLower(outcome), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if l, ok := ambitionKeywords[w]; ok && l > level {
			level = l
		}
	}
	return level
}

// Estimate maps questionnaire answers to a recommendation. Unknown purposes
// use the custom preset.
func Estimate(answers Answers, now time.Time) Recommendation {
	p, ok := presets[answers.Purpose]
	if !ok {
		p = presets[PurposeCustom]
	}

	ambition := float64(AmbitionLevel(answers.Outcome))
	scale := 1 + 0.2*ambition
	minutes := p.minutes * scale
	words := p.words * scale
	frequency := p.frequency + ambition

	switch answers.Feasibility {
	case FeasibilityBusy:
		frequency = math.Max(busyFloor, frequency-1)
	case FeasibilityFree:
		frequency++
	}

	if answers.Hint > 0 {
		switch answers.HintUnit {
		case HintMinutes:
			minutes = float64(answers.Hint)
		default:
			words = float64(answers.Hint)
		}
	}

	return Recommendation{
		SessionMinutes:  clamp(int(math.Round(minutes)), minSessionMinutes, maxSessionMinutes),
		TargetWords:     clamp(int(math.Round(words)), minTargetWords, maxTargetWords),
		SessionsPerWeek: clamp(int(math.Round(frequency)), minFrequency, maxFrequency),
		RuleVersion:     RuleVersion,
		CalculatedAt:    now,
	}
}

// IsStale reports whether r was produced by an older rule set.
func IsStale(r Recommendation) bool {
	return r.RuleVersion != RuleVersion
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
