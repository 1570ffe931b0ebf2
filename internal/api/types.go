package api

import "time"

// User is an account as returned by the backend or decoded from a token.
type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsStaff    bool      `json:"is_staff"`
	DateJoined time.Time `json:"date_joined"`
}

// Education is one entry of the academic history.
type Education struct {
	Degree         string `json:"degree" yaml:"degree"`
	Specialization string `json:"specialization" yaml:"specialization"`
	Institution    string `json:"institution" yaml:"institution"`
	CGPA           string `json:"cgpa" yaml:"cgpa"`
	Year           string `json:"year" yaml:"year"`
}

// Certificate is one earned certification.
type Certificate struct {
	Name   string `json:"name" yaml:"name"`
	Issuer string `json:"issuer" yaml:"issuer"`
	Year   string `json:"year,omitempty" yaml:"year,omitempty"`
}

// AcademicInfo is the composite academic object. It is only ever written
// as a whole.
type AcademicInfo struct {
	GPA          string        `json:"gpa" yaml:"gpa"`
	Major        string        `json:"major" yaml:"major"`
	Education    []Education   `json:"education" yaml:"education"`
	Certificates []Certificate `json:"certificates" yaml:"certificates"`
	Skills       []string      `json:"skills" yaml:"skills"`
}

// Profile is the payload of profile/.
type Profile struct {
	Username     string       `json:"username,omitempty"`
	Email        string       `json:"email,omitempty"`
	AcademicInfo AcademicInfo `json:"academic_info"`
}

// RoleMatch is one ranked career suggestion.
type RoleMatch struct {
	Role             string   `json:"role"`
	MatchScore       float64  `json:"match_score"`
	Justification    string   `json:"justification"`
	MissingSkills    []string `json:"missing_skills"`
	RecommendedCerts []string `json:"recommended_certs"`
}

// PredictionData is the stored body of a prediction.
type PredictionData struct {
	Input         map[string]any `json:"input,omitempty"`
	Result        string         `json:"result"`
	TopPrediction string         `json:"top_prediction,omitempty"`
	Details       []RoleMatch    `json:"details,omitempty"`
}

// TopRole returns the best available role name: result, then
// top_prediction, then the first detail, then "Unknown".
func (d PredictionData) TopRole() string {
	switch {
	case d.Result != "":
		return d.Result
	case d.TopPrediction != "":
		return d.TopPrediction
	case len(d.Details) > 0 && d.Details[0].Role != "":
		return d.Details[0].Role
	default:
		return "Unknown"
	}
}

// Prediction is one history record.
type Prediction struct {
	ID           int64          `json:"id"`
	Username     string         `json:"username"`
	Timestamp    time.Time      `json:"timestamp"`
	Data         PredictionData `json:"prediction_data"`
	Rating       *int           `json:"rating"`
	FeedbackText string         `json:"feedback_text"`
	IsFlagged    bool           `json:"is_flagged"`
	Correction   string         `json:"correction"`
}

// HasFeedback reports whether the user left a rating or a comment.
func (p Prediction) HasFeedback() bool {
	return p.Rating != nil || p.FeedbackText != ""
}

// PredictResult is the response of predict/.
type PredictResult struct {
	Prediction    string      `json:"prediction"`
	TopPrediction string      `json:"top_prediction"`
	Predictions   []RoleMatch `json:"predictions"`
	HistoryID     int64       `json:"history_id"`
}

// FeedbackPatch is the user's rating of a prediction.
type FeedbackPatch struct {
	Rating       int    `json:"rating"`
	FeedbackText string `json:"feedback_text"`
}

// FlagPatch is the admin moderation update of a prediction. Both fields
// are always sent together.
type FlagPatch struct {
	IsFlagged  bool   `json:"is_flagged"`
	Correction string `json:"correction"`
}

// AdminStats are the console counters.
type AdminStats struct {
	TotalUsers         int `json:"total_users"`
	TotalPredictions   int `json:"total_predictions"`
	FlaggedPredictions int `json:"flagged_predictions"`
}

// RetrainInput configures a retrain request. File is a local CSV path.
type RetrainInput struct {
	File            string
	IncludeFeedback bool
}

// RoleCount is one bar of the global role distribution.
type RoleCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DegreeTrend lists the most common roles for a degree.
type DegreeTrend struct {
	Degree   string `json:"degree"`
	TopRoles []struct {
		Role  string `json:"role"`
		Count int    `json:"count"`
	} `json:"top_roles"`
}

// InsightContext names what the personalized section was computed for.
type InsightContext struct {
	Specialization string `json:"specialization"`
	Degree         string `json:"degree"`
}

// DemandPoint is one year of the market trend.
type DemandPoint struct {
	Year   int     `json:"year"`
	Demand float64 `json:"demand"`
	Growth string  `json:"growth,omitempty"`
}

// FieldComparison compares salary and demand across related fields.
type FieldComparison struct {
	Name   string  `json:"name"`
	Salary float64 `json:"salary"`
	Demand float64 `json:"demand"`
	IsUser bool    `json:"is_user,omitempty"`
}

// CareerPath is one suggested progression.
type CareerPath struct {
	Title  string `json:"title"`
	Roles  string `json:"roles"`
	Growth string `json:"growth"`
}

// SkillGap compares market need (A) with the user's level (B).
type SkillGap struct {
	Subject  string  `json:"subject"`
	A        float64 `json:"A"`
	B        float64 `json:"B"`
	FullMark float64 `json:"fullMark"`
}

// Outlook is the forward-looking verdict.
type Outlook struct {
	Verdict       string   `json:"verdict"`
	Summary       string   `json:"summary"`
	ImpactFactors []string `json:"impact_factors"`
}

// Personalized is the per-user market analysis. When generation fails the
// backend returns only Error.
type Personalized struct {
	Error          string            `json:"error,omitempty"`
	Context        *InsightContext   `json:"context,omitempty"`
	MarketOverview []DemandPoint     `json:"market_overview,omitempty"`
	Comparison     []FieldComparison `json:"comparison,omitempty"`
	CareerPaths    []CareerPath      `json:"career_paths,omitempty"`
	SkillGap       []SkillGap        `json:"skill_gap,omitempty"`
	FutureOutlook  *Outlook          `json:"future_outlook,omitempty"`
}

// Available reports whether the personalized section carries data.
func (p *Personalized) Available() bool {
	return p != nil && p.Error == "" && p.Context != nil
}

// Insights is the response of insights/.
type Insights struct {
	RoleDistribution []RoleCount   `json:"role_distribution"`
	DegreeTrends     []DegreeTrend `json:"degree_trends"`
	Personalized     *Personalized `json:"personalized"`
}

// TokenPair is the response of login/ and google/.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user,omitempty"`
}

// RegisterInput is the body of register/.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
