package dashboard

import "github.com/abhisek/careerlens/internal/api"

const (
	maxDetails       = 3
	maxMissingSkills = 3
	maxCerts         = 2
)

// TopMatches trims a prediction's details for display: at most three
// roles, each with at most three missing skills and two certifications.
func TopMatches(p api.Prediction) []api.RoleMatch {
	details := p.Data.Details
	if len(details) > maxDetails {
		details = details[:maxDetails]
	}
	out := make([]api.RoleMatch, len(details))
	for i, d := range details {
		d.MissingSkills = head(d.MissingSkills, maxMissingSkills)
		d.RecommendedCerts = head(d.RecommendedCerts, maxCerts)
		out[i] = d
	}
	return out
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
