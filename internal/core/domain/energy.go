package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidSex           = errors.New("invalid sex (must be male or female)")
	ErrInvalidBodyMetrics   = errors.New("weight, height and age must be positive")
	ErrInvalidActivityLevel = errors.New("invalid activity level")
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// Multiplier returns the TDEE factor for the level.
func (l ActivityLevel) Multiplier() (float64, bool) {
	m, ok := activityMultipliers[l]
	return m, ok
}

type EnergyProfile struct {
	Sex           Sex           `json:"sex"`
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	AgeYears      int           `json:"age_years"`
	ActivityLevel ActivityLevel `json:"activity_level"`
}

type EnergyEstimate struct {
	BMR  int `json:"bmr_kcal"`
	TDEE int `json:"tdee_kcal"`
}

func (p *EnergyProfile) Normalize() {
	p.Sex = Sex(strings.ToLower(strings.TrimSpace(string(p.Sex))))
	p.ActivityLevel = ActivityLevel(strings.ToLower(strings.TrimSpace(string(p.ActivityLevel))))
	if p.ActivityLevel == "" {
		p.ActivityLevel = ActivitySedentary
	}
}

func (p EnergyProfile) Validate() error {
	if p.Sex != SexMale && p.Sex != SexFemale {
		return ErrInvalidSex
	}
	if p.WeightKg <= 0 || p.HeightCm <= 0 || p.AgeYears <= 0 {
		return ErrInvalidBodyMetrics
	}
	if _, ok := p.ActivityLevel.Multiplier(); !ok {
		return ErrInvalidActivityLevel
	}
	return nil
}
