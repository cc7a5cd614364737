package progress

import (
	"math"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

// BMR uses the Mifflin-St Jeor equation. The profile must be valid.
func BMR(p domain.EnergyProfile) float64 {
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.AgeYears)
	if p.Sex == domain.SexMale {
		return base + 5
	}
	return base - 161
}

func TDEE(bmr float64, level domain.ActivityLevel) float64 {
	m, ok := level.Multiplier()
	if !ok {
		m, _ = domain.ActivitySedentary.Multiplier()
	}
	return bmr * m
}

func EstimateEnergy(p domain.EnergyProfile) (domain.EnergyEstimate, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return domain.EnergyEstimate{}, err
	}

	bmr := BMR(p)
	return domain.EnergyEstimate{
		BMR:  int(math.Round(bmr)),
		TDEE: int(math.Round(TDEE(bmr, p.ActivityLevel))),
	}, nil
}
