package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// DefaultTitle heads every report page.
const DefaultTitle = "Financial Statement Report"

// FileStem is the suggested file name of an exported report, without extension.
const FileStem = "financial_report"

// Header is the metadata printed above the transaction table.
type Header struct {
	Title       string
	Owner       string
	GeneratedAt time.Time
}

func (h Header) title() string {
	if h.Title == "" {
		return DefaultTitle
	}
	return h.Title
}

// Renderer writes a report document in one format.
type Renderer interface {
	Render(w io.Writer, h Header, t Table) error
	MIMEType() string
	Extension() string
}

// Artifact is a rendered report ready to be downloaded or written to disk.
type Artifact struct {
	Data     []byte
	MIMEType string
	Filename string
}

// Export renders txns, in the order given, with r.
func Export(r Renderer, h Header, txns []model.Transaction) (Artifact, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, h, BuildTable(txns)); err != nil {
		return Artifact{}, fmt.Errorf("rendering %s report: %w", r.Extension(), err)
	}
	return Artifact{
		Data:     buf.Bytes(),
		MIMEType: r.MIMEType(),
		Filename: FileStem + "." + r.Extension(),
	}, nil
}

// RendererFor returns the renderer for a format name: pdf, text or csv.
func RendererFor(format string) (Renderer, error) {
	switch format {
	case "pdf", "":
		return NewPDFRenderer(), nil
	case "text", "txt":
		return TextRenderer{}, nil
	case "csv":
		return CSVRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}
