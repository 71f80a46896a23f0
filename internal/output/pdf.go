package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/swisscx/customer-insights/internal/domain"
)

// ErrUnknownDocument is returned for PDF kinds other than DocumentKinds.
var ErrUnknownDocument = errors.New("unknown document kind")

// PDF document kinds.
const (
	DocumentBusiness     = "business"
	DocumentPresentation = "presentation"
)

// DocumentKinds lists the supported PDF kinds.
var DocumentKinds = []string{DocumentBusiness, DocumentPresentation}

// DocumentFile returns the file name a document kind is written to.
func DocumentFile(kind string) (string, error) {
	switch kind {
	case DocumentBusiness:
		return "customer_analysis_business.pdf", nil
	case DocumentPresentation:
		return "customer_analysis_presentation.pdf", nil
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownDocument, kind, strings.Join(DocumentKinds, ", "))
}

// PDFWriter renders reports as PDF documents. Presentation charts are read
// from ChartDir; missing chart files are skipped with a warning.
type PDFWriter struct {
	ChartDir string
	logger   Logger
}

// NewPDFWriter creates a writer reading charts from chartDir. A nil logger
// discards all messages.
func NewPDFWriter(chartDir string, l Logger) *PDFWriter {
	if l == nil {
		l = nopLogger{}
	}
	return &PDFWriter{ChartDir: chartDir, logger: l}
}

// Write renders the report as a PDF document of the given kind.
func (pw *PDFWriter) Write(report *domain.Report, kind string, w io.Writer) error {
	if _, err := DocumentFile(kind); err != nil {
		return err
	}
	if report == nil || report.Analysis == nil {
		return fmt.Errorf("report has no analysis")
	}
	doc := newDocument(report, pw.logger)
	switch kind {
	case DocumentBusiness:
		writeBusiness(doc, report)
	case DocumentPresentation:
		writePresentation(doc, report, pw.ChartDir)
	}
	if err := doc.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write %s document: %w", kind, err)
	}
	return nil
}

// WriteFile writes the document into dir and returns its path. A failed
// render leaves no file behind.
func (pw *PDFWriter) WriteFile(report *domain.Report, kind, dir string) (string, error) {
	name, err := DocumentFile(kind)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := pw.Write(report, kind, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	pw.logger.Debugf("output: wrote %s", path)
	return path, nil
}

type rgb struct{ r, g, b int }

var (
	colorTitle    = rgb{0x2c, 0x3e, 0x50}
	colorSubtitle = rgb{0x34, 0x49, 0x5e}
	colorBlue     = rgb{0x34, 0x98, 0xdb}
	colorRed      = rgb{0xe7, 0x4c, 0x3c}
	colorBeige    = rgb{0xf5, 0xf5, 0xdc}
	colorGrey     = rgb{0xd3, 0xd3, 0xd3}
)

// document wraps fpdf with the text styles shared by both layouts.
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	log Logger
}

func newDocument(report *domain.Report, log Logger) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle("Customer Behaviour Analysis - Switzerland", true)
	pdf.SetAuthor("customer-insights", true)
	pdf.SetCreationDate(report.GeneratedAt)
	pdf.SetModificationDate(report.GeneratedAt)
	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), log: log}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	return d
}

func (d *document) textColor(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }

func (d *document) title(text string) {
	d.pdf.SetFont("Helvetica", "B", 22)
	d.textColor(colorTitle)
	d.pdf.MultiCell(0, 11, d.tr(text), "", "C", false)
	d.pdf.Ln(8)
}

func (d *document) subtitle(text string) {
	d.pdf.SetFont("Helvetica", "B", 15)
	d.textColor(colorSubtitle)
	d.pdf.Ln(3)
	d.pdf.MultiCell(0, 8, d.tr(text), "", "L", false)
	d.pdf.Ln(2)
}

func (d *document) paragraph(text string) {
	d.pdf.SetFont("Helvetica", "", 11)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.MultiCell(0, 6, d.tr(text), "", "L", false)
	d.pdf.Ln(3)
}

func (d *document) centered(text string, size float64) {
	d.pdf.SetFont("Helvetica", "", size)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.MultiCell(0, size*0.6, d.tr(text), "", "C", false)
}

func (d *document) bullets(items []string) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.textColor(colorTitle)
	left, _, _, _ := d.pdf.GetMargins()
	for _, it := range items {
		d.pdf.SetX(left + 7)
		d.pdf.MultiCell(0, 5.5, d.tr("• "+it), "", "L", false)
		d.pdf.Ln(1)
	}
	d.pdf.Ln(2)
}

// table draws a grid with a colored header row and equal column widths.
func (d *document) table(header []string, rows [][]string, head, body rgb) {
	pageW, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(header))

	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.SetFillColor(head.r, head.g, head.b)
	d.pdf.SetTextColor(255, 255, 255)
	for _, h := range header {
		d.pdf.CellFormat(colW, 9, d.tr(h), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetFillColor(body.r, body.g, body.b)
	d.pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		for _, cell := range row {
			d.pdf.CellFormat(colW, 8, d.tr(cell), "1", 0, "C", true, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(6)
}

// image embeds a chart scaled to width mm, keeping the aspect ratio.
// It reports false when the file is missing.
func (d *document) image(path string, width float64) bool {
	if _, err := os.Stat(path); err != nil {
		d.log.Warnf("output: chart %s not found, skipping", path)
		return false
	}
	pageW, _ := d.pdf.GetPageSize()
	d.pdf.ImageOptions(path, (pageW-width)/2, 0, width, 0, true, fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}, 0, "")
	d.pdf.Ln(4)
	return true
}

func generatedOn(report *domain.Report) string {
	return report.GeneratedAt.Format("02 January 2006")
}
