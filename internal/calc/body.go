// ABOUTME: Body composition and energy formulas (BMI, BMR, TDEE, deficit).
// ABOUTME: Pure functions with explicit zero guards; all rounding is half-up.
package calc

import (
	"math"

	"github.com/harperreed/fitdiary/internal/models"
)

// KcalPerKg is the energy equivalent of one kilogram of body fat.
const KcalPerKg = 7700

var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary: 1.2,
	models.ActivityLight:     1.375,
	models.ActivityModerate:  1.55,
	models.ActivityActive:    1.725,
	models.ActivityExtra:     1.9,
}

// BMI returns weight / (height in metres)². Returns 0 when either input is not positive.
func BMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	h := heightCm / 100
	return weightKg / (h * h)
}

// BMIStatus classifies a BMI value.
func BMIStatus(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 24:
		return "normal"
	case bmi < 28:
		return "overweight"
	default:
		return "obese"
	}
}

// BMR is the revised Harris-Benedict basal metabolic rate. Only "male" selects
// the male constants. Returns 0 when weight, height or age is missing.
func BMR(weightKg, heightCm float64, ageYears int, sex string) int {
	if weightKg <= 0 || heightCm <= 0 || ageYears <= 0 {
		return 0
	}
	age := float64(ageYears)
	if sex == models.SexMale {
		return Round(88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age)
	}
	return Round(447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age)
}

// ActivityMultiplier returns the TDEE factor for level; unknown levels are sedentary.
func ActivityMultiplier(level models.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[models.ActivitySedentary]
}

// TDEE scales a BMR by the activity multiplier.
func TDEE(bmr int, level models.ActivityLevel) int {
	return Round(float64(bmr) * ActivityMultiplier(level))
}

// CalorieDeficitPerDay is the daily deficit needed to go from current to target in weeks.
// Callers must guard weeks > 0.
func CalorieDeficitPerDay(currentKg, targetKg, weeks float64) int {
	return Round((currentKg - targetKg) * KcalPerKg / (weeks * 7))
}

// Round rounds half-up, so 2.5 becomes 3 and -2.5 becomes -2.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// RoundTo rounds x half-up to the given number of decimal places.
func RoundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(x*p+0.5) / p
}
