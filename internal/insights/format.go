// Package insights formats the market insights payload for display. The
// backend computes everything; this package only scales and labels.
package insights

import (
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/careerlens/internal/api"
)

const (
	// SalaryCap is the salary at which the comparison bar is full (20 LPA).
	SalaryCap = 2_000_000

	NoInsightsTitle   = "No Insights Available"
	NoInsightsMessage = "Please update your profile to see personalized market trends."
)

// Available reports whether the payload has a personalized section.
func Available(in *api.Insights) bool {
	return in != nil && in.Personalized.Available()
}

// FormatINR renders a rupee amount with Indian digit grouping: the last
// three digits, then groups of two (₹12,34,567).
func FormatINR(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return sign + "₹" + strings.Join(groups, ",") + "," + tail
}

// SalaryPercent is the comparison bar fill, capped at 100.
func SalaryPercent(salary float64) float64 {
	return clampPercent(salary / SalaryCap * 100)
}

// DemandPercent is the demand bar fill; demand is already a score out of 100.
func DemandPercent(demand float64) float64 {
	return clampPercent(demand)
}

// SkillPercent is the user's level relative to the market need.
func SkillPercent(g api.SkillGap) float64 {
	full := g.FullMark
	if full <= 0 {
		full = 1
	}
	return clampPercent(g.B / full * 100)
}

// MarketPercent is the market need relative to the full mark.
func MarketPercent(g api.SkillGap) float64 {
	full := g.FullMark
	if full <= 0 {
		full = 1
	}
	return clampPercent(g.A / full * 100)
}

// TrendPercents scales yearly demand against the peak year.
func TrendPercents(points []api.DemandPoint) []float64 {
	peak := 0.0
	for _, p := range points {
		peak = math.Max(peak, p.Demand)
	}
	out := make([]float64, len(points))
	if peak <= 0 {
		return out
	}
	for i, p := range points {
		out[i] = clampPercent(p.Demand / peak * 100)
	}
	return out
}

// Bar draws a horizontal bar of width cells filled to pct.
func Bar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(clampPercent(pct) / 100 * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// IsRising reports whether the outlook verdict gets the highlight style.
func IsRising(o *api.Outlook) bool {
	return o != nil && o.Verdict == "Rising"
}

// IsHighGrowth reports whether a career path gets the highlight style.
func IsHighGrowth(p api.CareerPath) bool {
	return p.Growth == "High Growth"
}

// PathDescription falls back to the user's specialization when a path has
// no role progression.
func PathDescription(p api.CareerPath, ctx *api.InsightContext) string {
	if p.Roles != "" {
		return p.Roles
	}
	if ctx != nil && ctx.Specialization != "" {
		return "Aligned with your " + ctx.Specialization + " background."
	}
	return ""
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
