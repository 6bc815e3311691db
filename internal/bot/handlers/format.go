package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/analysis"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

func statusIcon(s domain.Status) string {
	switch s {
	case domain.StatusNormal:
		return "🟢"
	case domain.StatusWarning:
		return "🟡"
	default:
		return "🔴"
	}
}

func priorityIcon(p analysis.Priority) string {
	switch p {
	case analysis.PriorityHigh:
		return "❗"
	case analysis.PriorityMedium:
		return "⚠️"
	default:
		return "💡"
	}
}

func directionIcon(d analysis.Direction) string {
	switch d {
	case analysis.DirectionIncreasing:
		return "↗️"
	case analysis.DirectionDecreasing:
		return "↘️"
	case analysis.DirectionStable:
		return "➡️"
	default:
		return "❔"
	}
}

func formatRange(r domain.LimitRange) string {
	return fmt.Sprintf("%g-%g", r.Min, r.Max)
}

func contextLabel(ctx domain.GlucoseContext, customRange string) string {
	switch ctx {
	case domain.ContextPostPrandial:
		return "after a meal"
	case domain.ContextCustom:
		return customRange
	default:
		return "fasting"
	}
}

// FormatGlucoseRecorded confirms a stored glucose reading.
func FormatGlucoseRecorded(m *domain.GlucoseMeasurement) string {
	return fmt.Sprintf("✅ Glucose %g mg/dL (%s) saved\n%s Status: %s, your range is %s mg/dL",
		m.Value, contextLabel(m.Context, m.CustomRange), statusIcon(m.Status), m.Status, formatRange(m.Limits))
}

// FormatPressureRecorded confirms a stored blood pressure reading.
func FormatPressureRecorded(m *domain.PressureMeasurement) string {
	return fmt.Sprintf("✅ Blood pressure %s mmHg saved\n%s Status: %s\n🏷️ Category: %s",
		m.Reading(), statusIcon(m.Status), m.Status, strings.ReplaceAll(string(m.Category), "_", " "))
}

// FormatFoodRecorded confirms a stored food entry.
func FormatFoodRecorded(f *domain.FoodEntry) string {
	return fmt.Sprintf("✅ %s %s, %g g saved\n🔥 About %d kcal (%s)",
		f.Glyph, f.Description, f.QuantityG, f.Calories(), f.Category)
}

// FormatSummary renders a period summary.
func FormatSummary(s *analysis.Summary, days int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Summary for %s, last %d day(s)\n\n", s.UserName, days)
	fmt.Fprintf(&b, "🏅 Health score: %d/100 (%s)\n\n", s.HealthScore, s.OverallStatus)

	g := s.Glucose
	if g.Total == 0 {
		b.WriteString("🩸 Glucose: no readings\n")
	} else {
		fmt.Fprintf(&b, "🩸 Glucose: %d readings, average %g mg/dL (min %g, max %g)\n", g.Total, g.Average, g.Min, g.Max)
		fmt.Fprintf(&b, "   🟢 %g%%  🟡 %g%%  🔴 %g%%\n", g.NormalPct, g.WarningPct, g.CriticalPct)
	}

	p := s.Pressure
	if p.Total == 0 {
		b.WriteString("💓 Pressure: no readings\n")
	} else {
		fmt.Fprintf(&b, "💓 Pressure: %d readings, average %g/%g mmHg\n", p.Total, p.Systolic.Average, p.Diastolic.Average)
		fmt.Fprintf(&b, "   🟢 %g%%  🟡 %g%%  🔴 %g%%\n", p.NormalPct, p.WarningPct, p.CriticalPct)
	}

	n := s.Nutrition
	fmt.Fprintf(&b, "🍽️ Food: %d entries, %d kcal\n", n.EntryCount, n.TotalCalories)
	for _, c := range domain.FoodCategories() {
		if t, ok := n.ByCategory[c]; ok && t.Entries > 0 {
			fmt.Fprintf(&b, "   %s %s: %d kcal\n", c.Glyph(), c, t.Calories)
		}
	}

	if len(s.Alerts) > 0 {
		b.WriteString("\n🚨 Critical readings:\n")
		for _, a := range s.Alerts {
			fmt.Fprintf(&b, "• %s %s\n", a.Timestamp, a.Reading)
		}
	}

	if len(s.Recommendations) > 0 {
		b.WriteString("\n📝 Recommendations:\n")
		for _, r := range s.Recommendations {
			fmt.Fprintf(&b, "%s %s\n", priorityIcon(r.Priority), r.Message)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTrends renders the glucose and pressure trends together.
func FormatTrends(g *analysis.GlucoseTrend, p *analysis.PressureTrend, days int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📈 Trends, last %d day(s)\n\n", days)

	fmt.Fprintf(&b, "🩸 Glucose %s %s", directionIcon(g.Direction), g.Direction)
	if g.Direction != analysis.DirectionInsufficientData {
		fmt.Fprintf(&b, " (%g → %g mg/dL, volatility %g)", g.FirstAverage, g.SecondAverage, g.Volatility)
	}
	fmt.Fprintf(&b, "\n%s\n\n", g.Recommendation)

	fmt.Fprintf(&b, "💓 Systolic %s %s, diastolic %s %s\n",
		directionIcon(p.Systolic.Direction), p.Systolic.Direction,
		directionIcon(p.Diastolic.Direction), p.Diastolic.Direction)
	b.WriteString(p.Recommendation)
	return b.String()
}

// FormatDaily renders one line per day.
func FormatDaily(days []analysis.DaySummary) string {
	if len(days) == 0 {
		return "No records in this period."
	}
	var b strings.Builder
	b.WriteString("🗓️ Daily breakdown\n")
	for _, d := range days {
		fmt.Fprintf(&b, "\n%s  score %d\n", d.Date, d.HealthScore)
		if d.Glucose.Total > 0 {
			fmt.Fprintf(&b, "   🩸 %d, avg %g mg/dL\n", d.Glucose.Total, d.Glucose.Average)
		}
		if d.Pressure.Total > 0 {
			fmt.Fprintf(&b, "   💓 %d, avg %g/%g\n", d.Pressure.Total, d.Pressure.Systolic.Average, d.Pressure.Diastolic.Average)
		}
		if d.FoodEntries > 0 {
			fmt.Fprintf(&b, "   🍽️ %d, %d kcal\n", d.FoodEntries, d.Calories)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatLimits lists the personalized limits and daily targets.
func FormatLimits(p *domain.UserProfile) string {
	var b strings.Builder
	b.WriteString("⚙️ Your limits\n\n")
	fmt.Fprintf(&b, "🩸 Fasting: %s mg/dL\n", formatRange(p.GlucoseLimits.Fasting))
	fmt.Fprintf(&b, "🩸 After a meal: %s mg/dL\n", formatRange(p.GlucoseLimits.PostPrandial))
	for _, c := range p.GlucoseLimits.Custom {
		fmt.Fprintf(&b, "🩸 %s: %s mg/dL\n", c.Name, formatRange(c.LimitRange))
	}
	fmt.Fprintf(&b, "💓 Systolic: %s mmHg\n", formatRange(p.PressureLimits.Systolic))
	fmt.Fprintf(&b, "💓 Diastolic: %s mmHg\n", formatRange(p.PressureLimits.Diastolic))
	fmt.Fprintf(&b, "\n🎯 Per day: %d glucose, %d pressure, %d meals\n",
		p.Frequency.GlucosePerDay, p.Frequency.PressurePerDay, p.Frequency.FoodPerDay)
	b.WriteString("\nChange them with /setglucose, /setpressure, /addrange, /removerange or /frequency.")
	return b.String()
}

// FormatProfile renders the personal data of a profile.
func FormatProfile(p *domain.UserProfile, now time.Time) string {
	conditions := "none"
	if len(p.Conditions) > 0 {
		conditions = strings.Join(p.Conditions, ", ")
	}
	return fmt.Sprintf("👤 %s\n🎂 %d years\n⚖️ %g kg, %g cm, BMI %g\n🩺 Conditions: %s",
		p.Name, p.Age(now), p.WeightKg, p.HeightCm, p.BMI(), conditions)
}
