package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/insights"
)

const barWidth = 24

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show personalized market insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		if err := e.requireUser(); err != nil {
			return err
		}

		in, err := e.client.Insights(ctxOf(cmd))
		if err != nil {
			return fmt.Errorf("load insights: %s", api.Message(err))
		}

		w := cmdOut(cmd)
		if !insights.Available(in) {
			fmt.Fprintln(w, bold(insights.NoInsightsTitle))
			fmt.Fprintln(w, insights.NoInsightsMessage)
			return nil
		}
		printInsights(w, in.Personalized)
		return nil
	},
}

func printInsights(w io.Writer, p *api.Personalized) {
	if p.Context != nil {
		fmt.Fprintf(w, "Market outlook for %s\n", bold(p.Context.Specialization))
	}

	if o := p.FutureOutlook; o != nil {
		verdict := o.Verdict
		if insights.IsRising(o) {
			verdict = green(verdict)
		}
		heading(w, "Future Outlook")
		fmt.Fprintf(w, "%s  %s\n", verdict, o.Summary)
		for _, f := range o.ImpactFactors {
			fmt.Fprintln(w, "  • "+f)
		}
	}

	if len(p.MarketOverview) > 0 {
		heading(w, "Market Demand Trend")
		for i, pct := range insights.TrendPercents(p.MarketOverview) {
			pt := p.MarketOverview[i]
			fmt.Fprintf(w, "%d  %s %.0f %s\n", pt.Year, cyan(insights.Bar(pct, barWidth)), pt.Demand, gray(pt.Growth))
		}
	}

	if len(p.Comparison) > 0 {
		heading(w, "Salary & Demand Comparison")
		for _, c := range p.Comparison {
			name := c.Name
			if c.IsUser {
				name = bold(name + " (you)")
			}
			fmt.Fprintln(w, name)
			fmt.Fprintf(w, "  salary  %s %s\n", yellow(insights.Bar(insights.SalaryPercent(c.Salary), barWidth)), insights.FormatINR(c.Salary))
			fmt.Fprintf(w, "  demand  %s %.0f\n", cyan(insights.Bar(insights.DemandPercent(c.Demand), barWidth)), c.Demand)
		}
	}

	if len(p.SkillGap) > 0 {
		heading(w, "Skill Gap")
		for _, g := range p.SkillGap {
			fmt.Fprintf(w, "%-20s you    %s %3.0f%%\n", g.Subject, green(insights.Bar(insights.SkillPercent(g), barWidth)), insights.SkillPercent(g))
			fmt.Fprintf(w, "%-20s market %s %3.0f%%\n", "", gray(insights.Bar(insights.MarketPercent(g), barWidth)), insights.MarketPercent(g))
		}
	}

	if len(p.CareerPaths) > 0 {
		heading(w, "Career Paths")
		for _, cp := range p.CareerPaths {
			growth := cp.Growth
			if insights.IsHighGrowth(cp) {
				growth = green(growth)
			}
			fmt.Fprintf(w, "%s  %s\n", bold(cp.Title), growth)
			if d := insights.PathDescription(cp, p.Context); d != "" {
				fmt.Fprintln(w, "  "+d)
			}
		}
	}
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold(title))
}
