// ABOUTME: Plausibility ranges for body measurements.
// ABOUTME: Profile and health sample inputs are checked against these bounds.
package calc

// ValidWeight reports whether kg is within 30..300.
func ValidWeight(kg float64) bool { return kg >= 30 && kg <= 300 }

// ValidHeight reports whether cm is within 100..250.
func ValidHeight(cm float64) bool { return cm >= 100 && cm <= 250 }

// ValidAge reports whether years is within 10..100.
func ValidAge(years int) bool { return years >= 10 && years <= 100 }
