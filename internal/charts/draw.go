package charts

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

var (
	black     = color.NRGBA{0x22, 0x22, 0x22, 0xff}
	gridColor = color.NRGBA{0x00, 0x00, 0x00, 0x26}
	white     = color.NRGBA{0xff, 0xff, 0xff, 0xff}

	skyBlue    = color.NRGBA{0x87, 0xce, 0xeb, 0xff}
	lightBlue  = color.NRGBA{0xad, 0xd8, 0xe6, 0xff}
	lightCoral = color.NRGBA{0xf0, 0x80, 0x80, 0xff}
	lightGreen = color.NRGBA{0x90, 0xee, 0x90, 0xff}
	purple     = color.NRGBA{0x80, 0x00, 0x80, 0xff}
	red        = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	orange     = color.NRGBA{0xff, 0xa5, 0x00, 0xff}
	yellow     = color.NRGBA{0xff, 0xff, 0x00, 0xff}
	green      = color.NRGBA{0x00, 0x80, 0x00, 0xff}
	blue       = color.NRGBA{0x00, 0x00, 0xff, 0xff}

	genderPalette = []color.NRGBA{{0x1f, 0x77, 0xb4, 0xff}, {0xff, 0x7f, 0x0e, 0xff}, {0x2c, 0xa0, 0x2c, 0xff}}
	piePalette    = []color.NRGBA{lightCoral, lightBlue, lightGreen}
)

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(a * 255))
	return c
}

// frame is the plotting rectangle inside the margins, in pixels.
type frame struct {
	x0, y0, x1, y1 float64
}

func (f frame) width() float64  { return f.x1 - f.x0 }
func (f frame) height() float64 { return f.y1 - f.y0 }

// axis maps data values onto one pixel dimension.
type axis struct {
	min, max float64
	ticks    []float64
}

func (a axis) scale(v, from, to float64) float64 {
	if a.max == a.min {
		return from
	}
	return from + (v-a.min)/(a.max-a.min)*(to-from)
}

// niceAxis returns an axis covering [lo, hi] with round tick values.
func niceAxis(lo, hi float64, target int) axis {
	if hi <= lo {
		hi = lo + 1
	}
	step := niceStep((hi - lo) / float64(target))
	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step
	var ticks []float64
	for v := start; v <= end+step/2; v += step {
		ticks = append(ticks, math.Round(v/step)*step)
	}
	return axis{min: start, max: end, ticks: ticks}
}

// niceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	f := raw / exp
	switch {
	case f <= 1:
		return exp
	case f <= 2:
		return 2 * exp
	case f <= 2.5:
		return 2.5 * exp
	case f <= 5:
		return 5 * exp
	default:
		return 10 * exp
	}
}

func tickLabel(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}

// canvas prepares a white image with a centered title and returns the plot frame.
func (r *Renderer) canvas(w, h int, title string) (*gg.Context, frame) {
	dc := gg.NewContext(w, h)
	dc.SetColor(white)
	dc.Clear()
	dc.SetFontFace(r.fonts.title)
	dc.SetColor(black)
	dc.DrawStringAnchored(title, float64(w)/2, 36*r.scale, 0.5, 0.5)
	return dc, frame{
		x0: 95 * r.scale,
		y0: 70 * r.scale,
		x1: float64(w) - 40*r.scale,
		y1: float64(h) - 95*r.scale,
	}
}

// yAxis draws horizontal grid lines with labels and the axis title.
func (r *Renderer) yAxis(dc *gg.Context, f frame, ax axis, title string) {
	dc.SetFontFace(r.fonts.small)
	dc.SetLineWidth(1)
	for _, t := range ax.ticks {
		y := ax.scale(t, f.y1, f.y0)
		dc.SetColor(gridColor)
		dc.DrawLine(f.x0, y, f.x1, y)
		dc.Stroke()
		dc.SetColor(black)
		dc.DrawStringAnchored(tickLabel(t), f.x0-8*r.scale, y, 1, 0.5)
	}
	dc.SetFontFace(r.fonts.label)
	dc.Push()
	dc.RotateAbout(-math.Pi/2, 22*r.scale, (f.y0+f.y1)/2)
	dc.DrawStringAnchored(title, 22*r.scale, (f.y0+f.y1)/2, 0.5, 0.5)
	dc.Pop()
	r.frameBorder(dc, f)
}

// xAxis draws vertical grid lines with labels and the axis title.
func (r *Renderer) xAxis(dc *gg.Context, f frame, ax axis, title string) {
	dc.SetFontFace(r.fonts.small)
	dc.SetLineWidth(1)
	for _, t := range ax.ticks {
		x := ax.scale(t, f.x0, f.x1)
		dc.SetColor(gridColor)
		dc.DrawLine(x, f.y0, x, f.y1)
		dc.Stroke()
		dc.SetColor(black)
		dc.DrawStringAnchored(tickLabel(t), x, f.y1+14*r.scale, 0.5, 0.5)
	}
	r.xTitle(dc, f, title)
}

func (r *Renderer) xTitle(dc *gg.Context, f frame, title string) {
	dc.SetFontFace(r.fonts.label)
	dc.SetColor(black)
	dc.DrawStringAnchored(title, (f.x0+f.x1)/2, f.y1+65*r.scale, 0.5, 0.5)
}

func (r *Renderer) frameBorder(dc *gg.Context, f frame) {
	dc.SetColor(black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(f.x0, f.y0, f.width(), f.height())
	dc.Stroke()
}

// bar is one column of a bar chart.
type bar struct {
	label string
	value float64
	color color.NRGBA
	text  string // annotation above the bar
}

// bars draws a vertical bar chart. Rotated labels are tilted 45 degrees.
func (r *Renderer) bars(dc *gg.Context, f frame, items []bar, yTitle, xTitle string, rotated bool) {
	top := 0.0
	for _, b := range items {
		top = math.Max(top, b.value)
	}
	ax := niceAxis(0, top*1.1, 6)
	r.yAxis(dc, f, ax, yTitle)

	slot := f.width() / float64(max(len(items), 1))
	for i, b := range items {
		cx := f.x0 + slot*(float64(i)+0.5)
		bw := slot * 0.7
		y := ax.scale(b.value, f.y1, f.y0)
		dc.SetColor(withAlpha(b.color, 0.7))
		dc.DrawRectangle(cx-bw/2, y, bw, f.y1-y)
		dc.Fill()

		dc.SetColor(black)
		if b.text != "" {
			dc.SetFontFace(r.fonts.small)
			dc.DrawStringAnchored(b.text, cx, y-10*r.scale, 0.5, 0.5)
		}
		dc.SetFontFace(r.fonts.label)
		if rotated {
			lx, ly := cx, f.y1+12*r.scale
			dc.Push()
			dc.RotateAbout(-math.Pi/4, lx, ly)
			dc.DrawStringAnchored(b.label, lx, ly, 1, 0.5)
			dc.Pop()
		} else {
			dc.DrawStringAnchored(b.label, cx, f.y1+18*r.scale, 0.5, 0.5)
		}
	}
	r.xTitle(dc, f, xTitle)
}

// slice is one wedge of a pie chart.
type slice struct {
	label string
	value float64
	color color.NRGBA
}

// pie draws wedges counterclockwise from twelve o'clock with percentage labels.
func (r *Renderer) pie(dc *gg.Context, cx, cy, radius float64, items []slice) {
	total := 0.0
	for _, s := range items {
		total += s.value
	}
	if total <= 0 {
		return
	}
	angle := -math.Pi / 2
	for _, s := range items {
		sweep := s.value / total * 2 * math.Pi
		end := angle - sweep

		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, angle, end)
		dc.ClosePath()
		dc.SetColor(s.color)
		dc.FillPreserve()
		dc.SetColor(white)
		dc.SetLineWidth(2)
		dc.Stroke()

		mid := angle - sweep/2
		dc.SetColor(black)
		dc.SetFontFace(r.fonts.label)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f%%", s.value/total*100), cx+0.6*radius*math.Cos(mid), cy+0.6*radius*math.Sin(mid), 0.5, 0.5)
		dc.DrawStringAnchored(s.label, cx+1.12*radius*math.Cos(mid), cy+1.12*radius*math.Sin(mid), 0.5-0.5*math.Cos(mid), 0.5)
		angle = end
	}
}

// legend draws colored swatches in the top-right corner of the frame.
func (r *Renderer) legend(dc *gg.Context, f frame, labels []string, colors []color.NRGBA) {
	dc.SetFontFace(r.fonts.small)
	x := f.x1 - 120*r.scale
	y := f.y0 + 12*r.scale
	for i, l := range labels {
		dc.SetColor(withAlpha(colors[i%len(colors)], 0.7))
		dc.DrawRectangle(x, y+float64(i)*20*r.scale, 14*r.scale, 12*r.scale)
		dc.Fill()
		dc.SetColor(black)
		dc.DrawStringAnchored(l, x+22*r.scale, y+float64(i)*20*r.scale+6*r.scale, 0, 0.5)
	}
}
