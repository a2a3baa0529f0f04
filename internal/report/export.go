package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/config"

	"github.com/jung-kurt/gofpdf"
)

// ErrExportInProgress is returned when an export is requested for a
// panel that is already being captured.
var ErrExportInProgress = errors.New("report export already in progress")

// ElementKind distinguishes report content from interactive controls
type ElementKind string

const (
	ElementSection ElementKind = "section"
	ElementControl ElementKind = "control"
)

// PanelElement is one element of a rendered report panel. Controls
// flagged PrintHide are hidden for the duration of a capture and
// restored to their prior display state afterwards.
type PanelElement struct {
	Kind      ElementKind
	Label     string
	Section   *PanelSection
	PrintHide bool
	Hidden    bool
}

// PanelSection is a titled table of report content
type PanelSection struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Panel is a rendered report panel ready for capture
type Panel struct {
	Title    string
	Elements []*PanelElement
}

// AddSection appends a content section to the panel
func (p *Panel) AddSection(title string, columns []string, rows [][]string) {
	p.Elements = append(p.Elements, &PanelElement{
		Kind:    ElementSection,
		Section: &PanelSection{Title: title, Columns: columns, Rows: rows},
	})
}

// AddControl appends an interactive control. Controls are flagged
// PrintHide so they never appear in a capture.
func (p *Panel) AddControl(label string) {
	p.Elements = append(p.Elements, &PanelElement{
		Kind:      ElementControl,
		Label:     label,
		PrintHide: true,
	})
}

// Exporter captures report panels into paginated PDF documents. One
// exporter guards one panel: while a capture is running, further
// export requests against it are rejected. The generating flag is
// process-local and not shared across panels.
type Exporter struct {
	shop       config.ShopConfig
	generating int32
	now        func() time.Time
	render     func(pdf *gofpdf.Fpdf, panel *Panel) error
}

// NewExporter creates an Exporter stamping documents with the given
// shop identity.
func NewExporter(shop config.ShopConfig) *Exporter {
	e := &Exporter{shop: shop, now: time.Now}
	e.render = e.renderPanel
	return e
}

// Generating reports whether a capture is currently running
func (e *Exporter) Generating() bool {
	return atomic.LoadInt32(&e.generating) == 1
}

// ExportFileName builds the download name for a report type, e.g.
// "Performance Report" on 2026-08-31 becomes
// "performance_report_2026-08-31.pdf".
func ExportFileName(reportType string, at time.Time) string {
	name := strings.ToLower(strings.TrimSpace(reportType))
	name = strings.ReplaceAll(name, " ", "_")
	if !strings.HasSuffix(name, "_report") {
		name += "_report"
	}
	return fmt.Sprintf("%s_%s.pdf", name, at.Format("2006-01-02"))
}

// Export captures the panel into a PDF and returns the document bytes
// together with the download file name. A failed capture returns no
// bytes at all, never a truncated document.
func (e *Exporter) Export(panel *Panel, reportType string) ([]byte, string, error) {
	if !atomic.CompareAndSwapInt32(&e.generating, 0, 1) {
		return nil, "", ErrExportInProgress
	}
	defer atomic.StoreInt32(&e.generating, 0)

	// Hide interactive controls for the capture and restore their
	// prior display state no matter how the capture ends.
	hidden := make([]*PanelElement, 0, len(panel.Elements))
	for _, el := range panel.Elements {
		if el.PrintHide && !el.Hidden {
			el.Hidden = true
			hidden = append(hidden, el)
		}
	}
	defer func() {
		for _, el := range hidden {
			el.Hidden = false
		}
	}()

	now := e.now()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(panel.Title, false)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, 25)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 7, e.shop.Name, "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, e.shop.Address, "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, "Tel: "+e.shop.Phone, "", 1, "C", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, panel.Title, "B", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, "Generated on "+now.Format("2006-01-02 15:04:05"), "", 1, "R", false, 0, "")
		pdf.Ln(3)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-20)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, e.shop.Name+" - Computerized Repair Management System", "T", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	if err := e.render(pdf, panel); err != nil {
		return nil, "", fmt.Errorf("render report panel: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("write report document: %w", err)
	}
	return buf.Bytes(), ExportFileName(reportType, now), nil
}

// renderPanel writes the visible panel elements into the document,
// relying on the auto page break for pagination.
func (e *Exporter) renderPanel(pdf *gofpdf.Fpdf, panel *Panel) error {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	for _, el := range panel.Elements {
		if el.Hidden {
			continue
		}
		switch el.Kind {
		case ElementControl:
			// A control left visible is captured as its label
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(0, 6, "[ "+el.Label+" ]", "", 1, "L", false, 0, "")
			pdf.Ln(2)
		case ElementSection:
			sec := el.Section
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 7, sec.Title, "", 1, "L", false, 0, "")

			colWidth := usable
			if len(sec.Columns) > 0 {
				colWidth = usable / float64(len(sec.Columns))
				pdf.SetFont("Helvetica", "B", 9)
				pdf.SetFillColor(230, 230, 230)
				for _, col := range sec.Columns {
					pdf.CellFormat(colWidth, 6, col, "1", 0, "L", true, 0, "")
				}
				pdf.Ln(-1)
			}

			pdf.SetFont("Helvetica", "", 9)
			for _, row := range sec.Rows {
				for _, cell := range row {
					pdf.CellFormat(colWidth, 6, cell, "1", 0, "L", false, 0, "")
				}
				pdf.Ln(-1)
			}
			pdf.Ln(4)
		}
		if pdf.Err() {
			return pdf.Error()
		}
	}
	return nil
}
