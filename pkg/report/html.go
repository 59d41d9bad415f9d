package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/devicelab-dev/reportview/pkg/viewer"
)

// Text diffs above either limit start collapsed.
const (
	largeDiffLines = 100
	largeDiffBytes = 1000
)

// Slider settings of the image widget.
const (
	zoomMin   = viewer.DefaultZoomMin
	zoomMax   = viewer.DefaultZoomMax
	zoomStep  = viewer.DefaultZoomStep
	zoomValue = viewer.DefaultZoom
	blendStep = 0.01
)

// HTMLConfig contains configuration for HTML report generation.
type HTMLConfig struct {
	OutputPath  string // Path to write the HTML file
	Title       string // Report title (default: manifest title, then "Test Report")
	EmbedAssets bool   // Embed image files as data URLs (portable, larger)
	AssetDir    string // Directory image paths are relative to
}

// GenerateHTML writes the report for m to cfg.OutputPath.
func GenerateHTML(m *Manifest, cfg HTMLConfig) error {
	if cfg.OutputPath == "" {
		return fmt.Errorf("missing output path")
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	html, err := RenderHTML(m, cfg)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	if err := atomicWrite(cfg.OutputPath, []byte(html)); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

// RenderHTML renders the report document for m.
func RenderHTML(m *Manifest, cfg HTMLConfig) (string, error) {
	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, buildHTMLData(m, cfg)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HTMLData contains all data needed for the HTML template.
type HTMLData struct {
	Title       string
	GeneratedAt string
	Style       template.CSS
	Formats     []viewer.Format
	Modes       []viewer.ImageMode
	Tests       []TestHTMLData
}

// TestHTMLData is one report section.
type TestHTMLData struct {
	Index int
	Name  string
	Files []FileHTMLData
}

// FileHTMLData is one output-format tab of a report.
type FileHTMLData struct {
	Index  int
	Output viewer.Format
	Active bool
	Left   string // Header label for the reference
	Right  string // Header label for the actual output
	Both   bool   // Text and image diff: render a kind selector
	Text   *TextHTMLData
	Image  *ImageHTMLData
}

// TextHTMLData is a rendered text diff table.
type TextHTMLData struct {
	Large bool
	Rows  []RowHTMLData
}

// RowHTMLData pairs the left and right cell of a diff row.
type RowHTMLData struct {
	Left  CellHTMLData
	Right CellHTMLData
}

// CellHTMLData is one side of a diff row.
type CellHTMLData struct {
	Gap   bool
	Kind  LineKind
	Nr    string
	Spans []SpanHTMLData
}

// SpanHTMLData is a text run; Tag is "del", "ins" or empty.
type SpanHTMLData struct {
	Tag  string
	Text string
}

// ImageHTMLData is one image comparison widget.
type ImageHTMLData struct {
	Index     int
	Left      template.URL
	Right     template.URL
	PDF       bool
	Modes     []viewer.ImageMode
	ZoomMin   float64
	ZoomMax   float64
	ZoomStep  float64
	ZoomValue float64
	BlendStep float64
}

func buildHTMLData(m *Manifest, cfg HTMLConfig) HTMLData {
	title := cfg.Title
	if title == "" {
		title = m.Title
	}
	if title == "" {
		title = "Test Report"
	}

	data := HTMLData{
		Title:       title,
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Style:       template.CSS(reportStyle),
		Formats:     viewer.Formats,
		Modes:       viewer.ImageModes,
	}

	images := 0
	for ti, t := range m.Tests {
		test := TestHTMLData{Index: ti, Name: t.Name}
		for fi, f := range t.Files {
			file := FileHTMLData{
				Index:  fi,
				Output: f.Output,
				Active: fi == 0,
				Left:   fileLabel(f.Left),
				Right:  fileLabel(f.Right),
				Both:   f.Text != nil && f.Image != nil,
			}
			if f.Text != nil {
				file.Text = buildTextDiff(f.Text)
			}
			if f.Image != nil {
				file.Image = &ImageHTMLData{
					Index:     images,
					Left:      imageURL(f.Image.Left, cfg),
					Right:     imageURL(f.Image.Right, cfg),
					PDF:       f.Output == viewer.FormatPDF,
					Modes:     viewer.ImageModes,
					ZoomMin:   zoomMin,
					ZoomMax:   zoomMax,
					ZoomStep:  zoomStep,
					ZoomValue: zoomValue,
					BlendStep: blendStep,
				}
				images++
			}
			test.Files = append(test.Files, file)
		}
		data.Tests = append(data.Tests, test)
	}
	return data
}

func buildTextDiff(d *TextDiff) *TextHTMLData {
	n := len(d.Left)
	if len(d.Right) > n {
		n = len(d.Right)
	}
	out := &TextHTMLData{Large: isLargeText(d.Left) || isLargeText(d.Right)}
	for i := 0; i < n; i++ {
		var l, r Line
		if i < len(d.Left) {
			l = d.Left[i]
		}
		if i < len(d.Right) {
			r = d.Right[i]
		}
		out.Rows = append(out.Rows, RowHTMLData{Left: buildCell(l), Right: buildCell(r)})
	}
	end := CellHTMLData{Kind: LineEnd}
	out.Rows = append(out.Rows, RowHTMLData{Left: end, Right: end})
	return out
}

func buildCell(l Line) CellHTMLData {
	kind := l.kind()
	cell := CellHTMLData{Gap: kind == LineGap, Kind: kind}
	if l.Nr != 0 {
		cell.Nr = strconv.Itoa(l.Nr)
	}
	for _, s := range l.spans() {
		tag := ""
		if s.Emph && kind == LineDel {
			tag = "del"
		} else if s.Emph && kind == LineAdd {
			tag = "ins"
		}
		cell.Spans = append(cell.Spans, SpanHTMLData{Tag: tag, Text: s.Text})
	}
	return cell
}

func isLargeText(lines []Line) bool {
	if len(lines) > largeDiffLines {
		return true
	}
	size := 0
	for _, l := range lines {
		for _, s := range l.spans() {
			size += len(s.Text)
		}
	}
	return size > largeDiffBytes
}

func fileLabel(f *File) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", f.Path, formatSize(f.Size))
}

func formatSize(size *int64) string {
	if size == nil {
		return "missing"
	}
	const unit = 1024
	b := *size
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// imageURL returns src as a URL the template may emit. With EmbedAssets,
// file paths are inlined as data URLs; unreadable files keep their path.
func imageURL(src string, cfg HTMLConfig) template.URL {
	if strings.HasPrefix(src, "data:") || !cfg.EmbedAssets || src == "" {
		return template.URL(src) //#nosec G203 -- data URLs and paths come from the manifest
	}
	path := src
	if cfg.AssetDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cfg.AssetDir, path)
	}
	if data := loadAsBase64(path); data != "" {
		return template.URL(data) //#nosec G203 -- produced by loadAsBase64
	}
	return template.URL(src) //#nosec G203
}

func loadAsBase64(path string) string {
	data, err := os.ReadFile(path) //#nosec G304 -- asset referenced by the manifest
	if err != nil {
		return ""
	}
	mimeType := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mimeType = "image/jpeg"
	case ".svg":
		mimeType = "image/svg+xml"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
