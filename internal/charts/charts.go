// Package charts renders the PNG figures embedded in the reports.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/swisscx/customer-insights/internal/domain"
	"github.com/swisscx/customer-insights/pkg/stats"
)

// ErrUnknownChart is returned when a chart name is not one of ChartFiles.
var ErrUnknownChart = errors.New("unknown chart")

// Chart file names written by RenderAll.
const (
	AgeDistribution          = "age_distribution.png"
	SpendingByCity           = "spending_by_city.png"
	SubscriptionDistribution = "subscription_distribution.png"
	SpendingSatisfaction     = "spending_satisfaction.png"
	SpendingSegments         = "spending_segments.png"
	AcquisitionSources       = "acquisition_sources.png"
	DeviceDistribution       = "device_distribution.png"
	PerformanceMetrics       = "performance_metrics.png"
)

// ChartFiles lists every chart in rendering order.
var ChartFiles = []string{
	AgeDistribution,
	SpendingByCity,
	SubscriptionDistribution,
	SpendingSatisfaction,
	SpendingSegments,
	AcquisitionSources,
	DeviceDistribution,
	PerformanceMetrics,
}

// Size returns the pixel dimensions of a chart at scale 1.
func Size(name string) (int, int, bool) {
	switch name {
	case AgeDistribution, SpendingSatisfaction, SpendingSegments, AcquisitionSources:
		return 1000, 600, true
	case SpendingByCity:
		return 1200, 600, true
	case SubscriptionDistribution, DeviceDistribution:
		return 800, 800, true
	case PerformanceMetrics:
		return 1200, 800, true
	}
	return 0, 0, false
}

const histogramBins = 20

// Logger is the minimal logging surface the renderer reports through.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}

// Options configures a Renderer
type Options struct {
	// Scale multiplies every pixel dimension; zero means 1.
	Scale float64
	// FontPath optionally replaces the embedded Go Regular face.
	FontPath string
	Logger   Logger
}

// Renderer draws charts from a dataset and its analysis
type Renderer struct {
	scale  float64
	fonts  *fontSet
	logger Logger
}

// NewRenderer loads the fonts and returns a ready renderer.
func NewRenderer(opts Options) (*Renderer, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	fonts, err := loadFonts(opts.FontPath, scale)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	return &Renderer{scale: scale, fonts: fonts, logger: logger}, nil
}

func (r *Renderer) size(name string) (int, int) {
	w, h, _ := Size(name)
	return int(math.Round(float64(w) * r.scale)), int(math.Round(float64(h) * r.scale))
}

// Render draws the named chart as PNG into w.
func (r *Renderer) Render(name string, ds *domain.Dataset, an *domain.Analysis, w io.Writer) error {
	if _, _, ok := Size(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
	if ds.Len() == 0 || an == nil {
		return fmt.Errorf("chart %s: a non-empty dataset and its analysis are required", name)
	}
	var dc *gg.Context
	switch name {
	case AgeDistribution:
		dc = r.ageDistribution(ds)
	case SpendingByCity:
		dc = r.spendingByCity(an)
	case SubscriptionDistribution:
		dc = r.distributionPie(name, an, domain.ColSubscriptionType, "Subscription Types")
	case SpendingSatisfaction:
		dc = r.spendingSatisfaction(ds, an)
	case SpendingSegments:
		dc = r.spendingSegments(an)
	case AcquisitionSources:
		dc = r.acquisitionSources(an)
	case DeviceDistribution:
		dc = r.distributionPie(name, an, domain.ColDeviceType, "Device Usage")
	case PerformanceMetrics:
		dc = r.performanceMetrics(an)
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return nil
}

// RenderAll writes every chart into dir and returns the written paths.
func (r *Renderer) RenderAll(ds *domain.Dataset, an *domain.Analysis, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}
	paths := make([]string, 0, len(ChartFiles))
	for _, name := range ChartFiles {
		path := filepath.Join(dir, name)
		if err := r.renderFile(name, ds, an, path); err != nil {
			return paths, err
		}
		r.logger.Debugf("charts: wrote %s", path)
		paths = append(paths, path)
	}
	r.logger.Infof("charts: %d charts written to %s", len(paths), dir)
	return paths, nil
}

func (r *Renderer) renderFile(name string, ds *domain.Dataset, an *domain.Analysis, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.Render(name, ds, an, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func (r *Renderer) ageDistribution(ds *domain.Dataset) *gg.Context {
	w, h := r.size(AgeDistribution)
	dc, f := r.canvas(w, h, "Age Distribution by Gender")

	ages := ds.Ages()
	lo, hi := stats.Min(ages), stats.Max(ages)
	if hi <= lo {
		hi = lo + 1
	}
	width := (hi - lo) / histogramBins

	counts := make([][]int, len(domain.Genders))
	top := 0
	for g, gender := range domain.Genders {
		counts[g] = make([]int, histogramBins)
		for _, rec := range ds.Records {
			if rec.Gender != gender {
				continue
			}
			bin := int((float64(rec.Age) - lo) / width)
			bin = stats.ClampInt(bin, 0, histogramBins-1)
			counts[g][bin]++
			top = max(top, counts[g][bin])
		}
	}

	ax := niceAxis(0, float64(top)*1.1, 6)
	xa := niceAxis(lo, hi, 8)
	xa.ticks = trimTicks(xa.ticks, lo, hi)
	xa.min, xa.max = lo, hi
	r.yAxis(dc, f, ax, "Number of Customers")
	r.xAxis(dc, f, xa, "Age")

	for g := range domain.Genders {
		dc.SetColor(withAlpha(genderPalette[g], 0.7))
		for bin, c := range counts[g] {
			if c == 0 {
				continue
			}
			x0 := xa.scale(lo+float64(bin)*width, f.x0, f.x1)
			x1 := xa.scale(lo+float64(bin+1)*width, f.x0, f.x1)
			y := ax.scale(float64(c), f.y1, f.y0)
			dc.DrawRectangle(x0, y, x1-x0, f.y1-y)
			dc.Fill()
		}
	}
	labels := make([]string, len(domain.Genders))
	for i, g := range domain.Genders {
		labels[i] = string(g)
	}
	r.legend(dc, f, labels, genderPalette)
	return dc
}

func trimTicks(ticks []float64, lo, hi float64) []float64 {
	out := ticks[:0]
	for _, t := range ticks {
		if t >= lo && t <= hi {
			out = append(out, t)
		}
	}
	return out
}

func (r *Renderer) spendingByCity(an *domain.Analysis) *gg.Context {
	w, h := r.size(SpendingByCity)
	dc, f := r.canvas(w, h, "Average Spend by City")
	items := make([]bar, len(an.SpendByCity))
	for i, g := range an.SpendByCity {
		v := g.Mean.InexactFloat64()
		items[i] = bar{label: g.Group, value: v, color: skyBlue, text: fmt.Sprintf("%.0f", v)}
	}
	r.bars(dc, f, items, "Average Spend (CHF)", "City", true)
	return dc
}

func (r *Renderer) distributionPie(name string, an *domain.Analysis, column, title string) *gg.Context {
	w, h := r.size(name)
	dc, _ := r.canvas(w, h, title)
	d, _ := an.Distribution(column)
	items := make([]slice, len(d.Shares))
	for i, s := range d.Shares {
		items[i] = slice{label: s.Label, value: float64(s.Count), color: piePalette[i%len(piePalette)]}
	}
	r.pie(dc, float64(w)/2, float64(h)/2+20*r.scale, math.Min(float64(w), float64(h))*0.33, items)
	return dc
}

func (r *Renderer) spendingSatisfaction(ds *domain.Dataset, an *domain.Analysis) *gg.Context {
	w, h := r.size(SpendingSatisfaction)
	dc, f := r.canvas(w, h, "Spend vs Satisfaction")

	scores, spend := ds.Satisfaction()
	xa := niceAxis(0, 10, 10)
	top := 1.0
	if len(spend) > 0 {
		top = math.Max(stats.Max(spend), 1)
	}
	ya := niceAxis(0, top, 6)
	r.yAxis(dc, f, ya, "Total Spend (CHF)")
	r.xAxis(dc, f, xa, "Satisfaction Score")

	dc.SetColor(withAlpha(purple, 0.6))
	for i := range scores {
		dc.DrawCircle(xa.scale(scores[i], f.x0, f.x1), ya.scale(spend[i], f.y1, f.y0), 3*r.scale)
		dc.Fill()
	}

	t := an.SpendSatisfaction
	if t.Points >= 2 {
		dc.Push()
		dc.DrawRectangle(f.x0, f.y0, f.width(), f.height())
		dc.Clip()
		dc.SetColor(withAlpha(red, 0.8))
		dc.SetLineWidth(2 * r.scale)
		dc.SetDash(10*r.scale, 6*r.scale)
		dc.DrawLine(f.x0, ya.scale(t.At(xa.min), f.y1, f.y0), f.x1, ya.scale(t.At(xa.max), f.y1, f.y0))
		dc.Stroke()
		dc.Pop()
		dc.ResetClip()
		dc.SetDash()
	}
	return dc
}

var segmentPalette = []color.NRGBA{red, orange, yellow, green}

func (r *Renderer) spendingSegments(an *domain.Analysis) *gg.Context {
	w, h := r.size(SpendingSegments)
	dc, f := r.canvas(w, h, "Customer Spend Segments")
	items := make([]bar, len(an.SpendSegments.Shares))
	for i, s := range an.SpendSegments.Shares {
		items[i] = bar{label: s.Label, value: float64(s.Count), color: segmentPalette[i%len(segmentPalette)], text: fmt.Sprintf("%d", s.Count)}
	}
	r.bars(dc, f, items, "Number of Customers", "Segment", false)
	return dc
}

func (r *Renderer) acquisitionSources(an *domain.Analysis) *gg.Context {
	w, h := r.size(AcquisitionSources)
	dc, f := r.canvas(w, h, "Acquisition Sources")
	d, _ := an.Distribution(domain.ColAcquisitionSource)
	items := make([]bar, len(d.Shares))
	for i, s := range d.Shares {
		items[i] = bar{label: s.Label, value: float64(s.Count), color: lightBlue, text: fmt.Sprintf("%d", s.Count)}
	}
	r.bars(dc, f, items, "Number of Customers", "Source", true)
	return dc
}

func (r *Renderer) performanceMetrics(an *domain.Analysis) *gg.Context {
	w, h := r.size(PerformanceMetrics)
	dc, f := r.canvas(w, h, "Key Performance Metrics")
	s := an.Summary
	items := []bar{
		{label: "Average CLV (CHF)", value: s.AverageCLV.InexactFloat64(), color: green},
		{label: "Satisfaction", value: s.AverageSatisfaction, color: blue},
		{label: "Tenure (days)", value: s.AverageTenureDays, color: orange},
		{label: "Bounce Rate (%)", value: s.AverageBounceRate, color: red},
	}
	for i := range items {
		items[i].text = fmt.Sprintf("%.1f", items[i].value)
	}
	r.bars(dc, f, items, "Value", "Metric", false)
	return dc
}
