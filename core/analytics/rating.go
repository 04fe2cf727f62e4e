package analytics

// SafetyRating bands a safety score.
func SafetyRating(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Good"
	case score >= 70:
		return "Fair"
	default:
		return "Poor"
	}
}

// EcoRating bands an eco score.
func EcoRating(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Good"
	case score >= 70:
		return "Average"
	default:
		return "Needs Improvement"
	}
}
