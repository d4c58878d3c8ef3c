package visualization

import (
	"fmt"
	"strings"
	"time"

	"github.com/vykaz/internal/fund"
	"github.com/vykaz/internal/holiday"
)

type Visualizer struct{}

func New() *Visualizer {
	return &Visualizer{}
}

// MonthView is the data one chart needs: worked hours per ISO date plus the
// month's aggregate numbers.
type MonthView struct {
	Year       int
	Month      time.Month
	DayHours   map[string]float64
	TotalHours float64
	FundHours  float64
	Calendar   *holiday.Calendar
}

// GenerateMonthSVG renders one bar per calendar day. Weekends and public
// holidays get a shaded background, and a dashed line marks the standard
// daily hours.
func (v *Visualizer) GenerateMonthSVG(view *MonthView) string {
	width := 900
	height := 360
	padding := 50
	maxHours := 12.0

	first := time.Date(view.Year, view.Month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	barWidth := float64(width-2*padding) / float64(daysInMonth)

	var shading strings.Builder
	var bars strings.Builder
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(view.Year, view.Month, day, 0, 0, 0, 0, time.UTC)
		key := holiday.ISODate(date)
		x := float64(padding) + float64(day-1)*barWidth

		if !fund.IsWorkday(date, view.Calendar) {
			shade := "#ECEFF1"
			if view.Calendar.Contains(key) {
				shade = "#FFF3E0"
			}
			shading.WriteString(fmt.Sprintf(`<rect x="%.0f" y="%d" width="%.0f" height="%d" fill="%s"/>
    `, x, padding, barWidth, height-2*padding, shade))
		}

		h := view.DayHours[key]
		if h <= 0 {
			continue
		}
		barHeight := (h / maxHours) * float64(height-2*padding)
		if barHeight > float64(height-2*padding) {
			barHeight = float64(height - 2*padding)
		}
		y := float64(height) - float64(padding) - barHeight

		color := "#4CAF50"
		if h > fund.StandardDailyHours {
			color = "#FF9800"
		}
		if view.Calendar.Contains(key) {
			color = "#F44336"
		}

		bars.WriteString(fmt.Sprintf(`<rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="%s" rx="2"/>
    <text x="%.0f" y="%d" text-anchor="middle" font-size="9" fill="#333">%.1f</text>`,
			x+2, y, barWidth-4, barHeight, color,
			x+barWidth/2, int(y)-4, h))
	}

	fundLineY := float64(height) - float64(padding) - (fund.StandardDailyHours/maxHours)*float64(height-2*padding)

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">
  <defs>
    <linearGradient id="bgGrad" x1="0%%" y1="0%%" x2="0%%" y2="100%%">
      <stop offset="0%%" style="stop-color:#f5f7fa"/>
      <stop offset="100%%" style="stop-color:#e4e8ec"/>
    </linearGradient>
  </defs>
  <rect width="%d" height="%d" fill="url(#bgGrad)" rx="10"/>
  <text x="%d" y="30" text-anchor="middle" font-size="18" font-weight="bold" fill="#2c3e50">Měsíční přehled</text>
  <text x="%d" y="48" text-anchor="middle" font-size="12" fill="#7f8c8d">%04d-%02d | Vykázáno: %.1fh | Fond: %.1fh</text>

  <!-- Weekend and holiday shading -->
  %s

  <!-- Standard day line -->
  <line x1="%d" y1="%.0f" x2="%d" y2="%.0f" stroke="#E74C3C" stroke-width="1.5" stroke-dasharray="5,5"/>
  <text x="%d" y="%.0f" font-size="9" fill="#E74C3C">%dh</text>

  <!-- Bars -->
  %s

  <!-- Day labels -->
  %s

  <!-- Grid lines -->
  %s
</svg>`,
		width, height, width, height,
		width, height,
		width/2,
		width/2, view.Year, int(view.Month), view.TotalHours, view.FundHours,
		shading.String(),
		padding, fundLineY, width-padding, fundLineY,
		width-padding+5, fundLineY+3, int(fund.StandardDailyHours),
		bars.String(),
		v.generateDayLabels(daysInMonth, float64(padding), barWidth, float64(height-padding)),
		v.generateGridLines(maxHours, height, padding, width),
	)
}

func (v *Visualizer) generateDayLabels(daysInMonth int, padding float64, barWidth float64, y float64) string {
	var labels strings.Builder
	for day := 1; day <= daysInMonth; day++ {
		if day != 1 && day%5 != 0 {
			continue
		}
		x := padding + float64(day-1)*barWidth + barWidth/2
		labels.WriteString(fmt.Sprintf(`<text x="%.0f" y="%d" text-anchor="middle" font-size="10" fill="#7f8c8d">%d</text>`,
			x, int(y)+18, day))
	}
	return labels.String()
}

func (v *Visualizer) generateGridLines(maxHours float64, height int, padding int, width int) string {
	var lines strings.Builder
	for i := 1; i <= 4; i++ {
		y := float64(height) - float64(padding) - (float64(i)/4.0)*float64(height-2*padding)
		lines.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.0f" x2="%d" y2="%.0f" stroke="#E0E0E0"/>`,
			padding, y, width-padding, y))
	}
	return lines.String()
}
