package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/abramin/Victus-sub005/internal/analysis"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// FormatChart formats the metabolic chart: a per-day table of weight,
// adaptive TDEE and formula TDEE, with the fitted trend underneath.
func FormatChart(resp *contract.ChartResponse) string {
	var b strings.Builder

	headers := []string{"DATE", "WEIGHT", "ADAPTIVE", "FORMULA", "CONF"}
	rows := make([][]string, 0, len(resp.Points))

	for _, p := range resp.Points {
		weight := Dim("--")
		if p.WeightKg != nil {
			weight = StyleFg.Render(FormatKg(*p.WeightKg))
		}
		adaptive := Dim("--")
		if p.EstimatedTDEE != nil {
			adaptive = Bold(FormatKcal(*p.EstimatedTDEE))
		}
		conf := Dim("--")
		if p.Confidence != nil {
			conf = Dim(fmt.Sprintf("%.0f%%", *p.Confidence*100))
		}
		rows = append(rows, []string{
			Dim(p.Date),
			weight,
			adaptive,
			StyleFg.Render(FormatKcal(p.FormulaTDEE)),
			conf,
		})
	}

	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")

	if resp.Trend.Status == string(analysis.TrendFitted) {
		b.WriteString(Dim("Weight trend ") + Bold(fmt.Sprintf("%+.2f kg/week", resp.Trend.SlopePerWeek)))
		b.WriteString(Dim(fmt.Sprintf("  (r²=%.2f over %dd)", resp.Trend.R2, resp.Trend.Days)) + "\n")
	} else {
		b.WriteString(Dim("Weight trend: not enough data in this range.") + "\n")
	}

	return RenderBox(fmt.Sprintf("Metabolic %s → %s", resp.From, resp.To), b.String())
}

// FormatNotification formats an active drift notification.
func FormatNotification(v contract.NotificationView) string {
	var b strings.Builder

	b.WriteString(DriftBadge(domain.DriftDirection(v.Direction)) + "\n\n")
	b.WriteString(StyleFg.Render(v.Message) + "\n\n")
	b.WriteString(Dim("Magnitude ") + Bold(fmt.Sprintf("~%.0f kcal/day", v.MagnitudeKcal)) + "\n")
	b.WriteString(Dim("Since     "))
	if parsed, err := time.Parse("2006-01-02", v.OnsetDate); err == nil {
		b.WriteString(StyleFg.Render(v.OnsetDate) + Dim(" ("+RelativeDate(parsed)+")"))
	} else {
		b.WriteString(StyleFg.Render(v.OnsetDate))
	}
	b.WriteString("\n\n")
	b.WriteString(Dim("Dismiss with `victus tdee dismiss`.") + "\n")

	return RenderBox("Metabolic drift", b.String())
}

// FormatLoad formats the training-load picture: a sparkline of the recent
// series plus acute/chronic aggregates and the zone verdict.
func FormatLoad(resp *contract.LoadResponse) string {
	var b strings.Builder

	values := make([]float64, 0, len(resp.Days))
	for _, d := range resp.Days {
		values = append(values, d.Load)
	}

	if len(resp.Days) > 0 {
		b.WriteString(Dim(resp.Days[0].Date) + " ")
		b.WriteString(Sparkline(values, StyleBlue))
		b.WriteString(" " + Dim(resp.Days[len(resp.Days)-1].Date))
		b.WriteString("\n\n")
	}

	b.WriteString(Dim("Acute (7d)    ") + Bold(fmt.Sprintf("%.0f", resp.AcuteLoad)) + "\n")
	b.WriteString(Dim("Chronic (28d) ") + StyleFg.Render(fmt.Sprintf("%.0f", resp.ChronicLoad)) + "\n")
	b.WriteString(Dim("ACR           ") + Bold(fmt.Sprintf("%.2f", resp.ACR)))
	b.WriteString("  " + ZoneIndicator(domain.LoadZone(resp.Zone)) + "\n")

	if resp.OverloadedToday {
		b.WriteString("\n" + StyleRed.Render("⚠ Today's load spikes well above your chronic baseline.") + "\n")
	}

	return RenderBox("Training load", b.String())
}
