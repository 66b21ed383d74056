// Package timetable renders a weekly schedule as a PNG grid, one column
// per weekday with slot cards positioned by their start and end times.
package timetable

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/schedule"
)

const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 100
	leftLabelsWidth = 80
	dayPaddingX     = 8
	minSlotHeight   = 10.0
	slotRadius      = 6.0
	shadowOffset    = 3.0
	hourPaddingTop  = 1
	hourPaddingBot  = 1
	minutesPerHour  = 60
)

var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 95}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	slotFillColor   = color.RGBA{133, 193, 85, 220}
	slotTextColor   = color.RGBA{20, 24, 28, 230}
	slotShadowColor = color.RGBA{0, 0, 0, 20}
)

type hourRange struct {
	start int
	end   int
	total int
}

// RenderWeek draws the weekly grid for one batch or faculty. The column of
// the current weekday is highlighted. The vertical axis spans only the
// hours that actually carry classes, padded by one hour on each side.
func RenderWeek(title string, days [model.DaysInWeek][]schedule.Candidate, current model.Weekday) ([]byte, error) {
	hours := calculateHourRange(days)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth) / model.DaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, title)
	drawHourLabels(dc, hours, cellHeight)

	for day := 0; day < model.DaysInWeek; day++ {
		x := float64(leftLabelsWidth + day*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, day, model.Weekday(day) == current)
		drawDayHeader(dc, model.Weekday(day), x, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, c := range days[day] {
			drawSlot(dc, c, x, y, dayWidth, hours, cellHeight)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

func calculateHourRange(days [model.DaysInWeek][]schedule.Candidate) hourRange {
	minHour := 24
	maxHour := 0

	for day := range days {
		for _, c := range days[day] {
			startH := int(c.Slot.StartTime) / minutesPerHour
			endH := int(c.Slot.EndTime) / minutesPerHour
			if int(c.Slot.EndTime)%minutesPerHour > 0 {
				endH++
			}
			if startH < minHour {
				minHour = startH
			}
			if endH > maxHour {
				maxHour = endH
			}
		}
	}

	if minHour == 24 {
		minHour = 0
		maxHour = 23
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{start: startHour, end: endHour, total: endHour - startHour + 1}
}

func drawHeader(dc *gg.Context, title string) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, imageWidth/2, float64(headerHeight)/4, 0.5, 0.5)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for hIdx := 0; hIdx < hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		label := fmt.Sprintf("%02d:00", hours.start+hIdx)
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, day int, isCurrent bool) {
	switch {
	case isCurrent:
		dc.SetColor(todayBgColor)
	case day%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, day model.Weekday, x float64, dayWidth int) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(day.String(), x+float64(dayWidth)/2, float64(headerHeight)*0.7, 0.5, 0.5)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

func drawSlot(dc *gg.Context, c schedule.Candidate, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour := float64(c.Slot.StartTime) / minutesPerHour
	endHour := float64(c.Slot.EndTime) / minutesPerHour

	slotY := y + (startHour-float64(hours.start))*cellHeight
	slotHeight := (endHour - startHour) * cellHeight
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotRadius)
	dc.Fill()

	dc.SetColor(slotFillColor)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotRadius)
	dc.Fill()

	dc.SetColor(darken(slotFillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotRadius)
	dc.Stroke()

	dc.SetColor(slotTextColor)
	txtX := x + float64(dayPaddingX) + 8
	txtY := slotY + 16
	header := fmt.Sprintf("%s - %s", c.Slot.StartTime, c.Slot.EndTime)
	dc.DrawStringAnchored(header, txtX, txtY, 0, 0)

	if slotHeight > 30 {
		label := truncate(c.Slot.Title, 24)
		dc.DrawStringAnchored(label, txtX, txtY+14, 0, 0)
	}
	if slotHeight > 46 && c.FacultyName != "" {
		dc.DrawStringAnchored(truncate(c.FacultyName, 24), txtX, txtY+28, 0, 0)
	}
}

func darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
