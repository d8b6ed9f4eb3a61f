package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zhaobenny/tputplot/internal/model"
)

// Export writes the aggregated series to path. The format follows the
// extension: .json, .csv or .xlsx.
func Export(path string, series []model.Series) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return exportJSON(path, series)
	case ".csv":
		return exportCSV(path, series)
	case ".xlsx":
		return exportXLSX(path, series)
	default:
		return fmt.Errorf("unsupported export format %q", ext)
	}
}

func exportJSON(path string, series []model.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := PrintJSON(file, series); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// exportCSV writes one row per point, tagged with the run label
func exportCSV(path string, series []model.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	w.Write([]string{"label", "update_count", "throughput"})
	for _, s := range series {
		for i := range s.UpdateCounts {
			w.Write([]string{
				s.Label,
				strconv.FormatInt(s.UpdateCounts[i], 10),
				strconv.FormatInt(s.Throughputs[i], 10),
			})
		}
	}
	w.Flush()

	if err := w.Error(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// exportXLSX writes one sheet per run
func exportXLSX(path string, series []model.Series) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range series {
		sheet := fmt.Sprintf("Run %d", i+1)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Label", s.Label}); err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, "A2", &[]interface{}{"Number of Updates", "Throughput"}); err != nil {
			return err
		}
		for j := range s.UpdateCounts {
			cell, err := excelize.CoordinatesToCellName(1, j+3)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &[]interface{}{s.UpdateCounts[j], s.Throughputs[j]}); err != nil {
				return err
			}
		}
	}

	if len(series) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
		f.SetActiveSheet(0)
	}

	return f.SaveAs(path)
}
