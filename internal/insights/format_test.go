package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/careerlens/internal/api"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{450000, "₹4,50,000"},
		{585000, "₹5,85,000"},
		{1234567, "₹12,34,567"},
		{123456789, "₹12,34,56,789"},
		{450000.6, "₹4,50,001"},
		{-2500, "-₹2,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatINR(tt.in), "FormatINR(%v)", tt.in)
	}
}

func TestSalaryPercentCapped(t *testing.T) {
	assert.InDelta(t, 22.5, SalaryPercent(450000), 0.001)
	assert.Equal(t, 100.0, SalaryPercent(2_000_000))
	assert.Equal(t, 100.0, SalaryPercent(3_500_000))
	assert.Equal(t, 0.0, SalaryPercent(-1))
}

func TestDemandAndSkillPercent(t *testing.T) {
	assert.Equal(t, 85.0, DemandPercent(85))
	assert.Equal(t, 100.0, DemandPercent(140))

	g := api.SkillGap{Subject: "Python", A: 1, B: 0.2, FullMark: 1}
	assert.InDelta(t, 20.0, SkillPercent(g), 0.001)
	assert.Equal(t, 100.0, MarketPercent(g))
	assert.InDelta(t, 20.0, SkillPercent(api.SkillGap{B: 0.2}), 0.001, "missing full mark treated as 1")
}

func TestTrendPercents(t *testing.T) {
	pts := []api.DemandPoint{{Year: 2024, Demand: 500}, {Year: 2025, Demand: 1000}, {Year: 2026, Demand: 750}}
	assert.Equal(t, []float64{50, 100, 75}, TrendPercents(pts))
	assert.Equal(t, []float64{0}, TrendPercents([]api.DemandPoint{{Demand: 0}}))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", Bar(50, 10))
	assert.Equal(t, "██████████", Bar(250, 10))
	assert.Equal(t, "░░░░", Bar(0, 4))
	assert.Equal(t, "", Bar(50, 0))
}

func TestAvailable(t *testing.T) {
	assert.False(t, Available(nil))
	assert.False(t, Available(&api.Insights{}))
	assert.False(t, Available(&api.Insights{Personalized: &api.Personalized{Error: "Could not generate"}}))
	assert.False(t, Available(&api.Insights{Personalized: &api.Personalized{}}))
	assert.True(t, Available(&api.Insights{Personalized: &api.Personalized{Context: &api.InsightContext{Specialization: "CSE"}}}))
}

func TestLabels(t *testing.T) {
	assert.True(t, IsRising(&api.Outlook{Verdict: "Rising"}))
	assert.False(t, IsRising(&api.Outlook{Verdict: "Stable"}))
	assert.False(t, IsRising(nil))
	assert.True(t, IsHighGrowth(api.CareerPath{Growth: "High Growth"}))

	ctx := &api.InsightContext{Specialization: "ECE"}
	assert.Equal(t, "Intern → Lead", PathDescription(api.CareerPath{Roles: "Intern → Lead"}, ctx))
	assert.Equal(t, "Aligned with your ECE background.", PathDescription(api.CareerPath{}, ctx))
}
