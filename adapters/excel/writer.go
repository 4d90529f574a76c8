package excel

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"

	"csvexplorer/domain/dataset"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// WriteCSV serializes the table as UTF-8 CSV without an index column.
// Non-null cells are written as the text they were loaded from and nulls as
// empty fields, so loading the output again yields the same table.
func WriteCSV(w io.Writer, t *dataset.Table) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)

	if err := writeRecord(bw, cw, t.ColumnNames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, t.NumColumns())
	for i := 0; i < t.NumRows(); i++ {
		for j, cell := range t.Row(i) {
			if cell.Null {
				record[j] = ""
			} else {
				record[j] = cell.Raw
			}
		}
		if err := writeRecord(bw, cw, record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// writeRecord quotes a lone empty field explicitly; encoding/csv would emit a
// blank line, which readers skip, silently dropping the row.
func writeRecord(bw *bufio.Writer, cw *csv.Writer, record []string) error {
	if len(record) == 1 && record[0] == "" {
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
		_, err := bw.WriteString("\"\"\n")
		return err
	}
	return cw.Write(record)
}

// WriteXLSX writes the table to the first sheet of a new workbook. Finite
// numbers become numeric cells; everything else keeps its loaded text.
func WriteXLSX(w io.Writer, t *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	header := make([]interface{}, t.NumColumns())
	for j, name := range t.ColumnNames() {
		header[j] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	columns := t.Columns()
	for i := 0; i < t.NumRows(); i++ {
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			cell := col.Cell(i)
			switch {
			case cell.Null:
				row[j] = nil
			case col.Kind().IsNumeric() && !math.IsInf(cell.Num, 0):
				row[j] = cell.Num
			default:
				row[j] = cell.Raw
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(axis, row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	_, err = f.WriteTo(w)
	return err
}
