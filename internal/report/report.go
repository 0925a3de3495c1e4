// Package report writes the batch result table.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"voice-fraud-go/internal/types"
)

// Header is the stable column order of every report.
var Header = []string{"audio_file", "transcript", "label", "confidence", "reason"}

// Write overwrites path with one row per record. The writer is chosen by
// extension: .xlsx gets a workbook, everything else comma-separated values.
func Write(path string, records []types.ResultRecord) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSX(path, records)
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records []types.ResultRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.AudioFile, r.Transcript, r.Label, formatConfidence(r.Confidence), r.Reason}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path string, records []types.ResultRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for rowIdx, r := range records {
		values := []interface{}{r.AudioFile, r.Transcript, r.Label, r.Confidence, r.Reason}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f.SaveAs(path)
}

func formatConfidence(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
