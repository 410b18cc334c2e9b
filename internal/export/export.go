// Package export writes snapshots of the task collection and reads them
// back for import.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"tasklist/internal/service"
	"tasklist/internal/view"
)

// Format is a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatPDF:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format: %s", s)
}

// FormatForPath guesses the format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot tell format of %s", path)
	}
	return ParseFormat(ext)
}

// Encode renders tasks in format f.
func Encode(f Format, tasks []service.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	switch f {
	case FormatJSON:
		b, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(tasks)
	case FormatPDF:
		return encodePDF(tasks)
	}
	return nil, fmt.Errorf("unknown format: %s", f)
}

// Decode parses a JSON or YAML snapshot. Records are normalized.
func Decode(f Format, data []byte) ([]service.Task, error) {
	var tasks []service.Task
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("cannot import format: %s", f)
	}

	for i, t := range tasks {
		tasks[i] = service.NewTask(t.Title, t.Priority)
		if tasks[i].Title == "" {
			return nil, fmt.Errorf("record %d: empty taskTitle", i+1)
		}
	}
	return tasks, nil
}

// WriteFile writes data to path atomically.
func WriteFile(path string, data []byte) error {
	return atomic.WriteFile(path, bytes.NewReader(data))
}

func encodePDF(tasks []service.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(120, 7, "Title", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, "Priority", "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, t := range tasks {
		row := view.NewRow(t)
		pdf.CellFormat(120, 6, tr(row.Title), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, tr(row.Priority), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
