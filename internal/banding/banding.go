// Package banding maps scores to the qualitative tiers used in messaging.
// Inputs are expected to be range-checked already; nothing is clamped here.
package banding

type Band string

const (
	Strong   Band = "strong"
	Moderate Band = "moderate"
	Poor     Band = "poor"
	Low      Band = "low"
)

// ATS classifies an overall ATS score on the 0-10 scale.
func ATS(score float64) Band {
	switch {
	case score >= 7:
		return Strong
	case score >= 5:
		return Moderate
	default:
		return Poor
	}
}

// JobMatch classifies a 0-100 job match percentage.
func JobMatch(percentage float64) Band {
	switch {
	case percentage >= 70:
		return Strong
	case percentage >= 50:
		return Moderate
	default:
		return Low
	}
}

// ATSMessage is the short explanation shown next to an ATS band.
func ATSMessage(b Band) string {
	switch b {
	case Strong:
		return "Your resume is well optimized for applicant tracking systems."
	case Moderate:
		return "Your resume should pass most applicant tracking systems, but there is room to improve."
	default:
		return "Applicant tracking systems may struggle with your resume. Review the suggestions."
	}
}

// JobMatchMessage is the short explanation shown next to a job match band.
func JobMatchMessage(b Band) string {
	switch b {
	case Strong:
		return "Strong match for this position."
	case Moderate:
		return "Moderate match. Consider highlighting the missing skills."
	default:
		return "Low match. This role needs skills your resume does not show yet."
	}
}
