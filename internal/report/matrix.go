package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/skill-matrix/internal/skills"
)

// MatrixSheet is the worksheet holding the skill matrix.
const MatrixSheet = "Skill Matrix"

func matrixWorkbook(m *skills.Matrix) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), MatrixSheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	set := func(col, row int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(MatrixSheet, cell, value)
	}

	rows, columns := m.Rows(), m.Columns()

	if err := set(1, 1, "Candidate"); err != nil {
		f.Close()
		return nil, err
	}
	for j, col := range columns {
		if err := set(j+2, 1, col); err != nil {
			f.Close()
			return nil, err
		}
	}

	for i, row := range rows {
		if err := set(1, i+2, row); err != nil {
			f.Close()
			return nil, err
		}
		for j := range columns {
			if err := set(j+2, i+2, m.At(i, j)); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	lastCol, err := excelize.CoordinatesToCellName(len(columns)+1, 1)
	if err != nil {
		f.Close()
		return nil, err
	}
	lastRow, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(MatrixSheet, "A1", lastCol, bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(MatrixSheet, "A1", lastRow, bold); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// SaveMatrix writes the matrix to an XLSX workbook at path. The first row holds
// the skill names and the first column the candidate identities.
func SaveMatrix(path string, m *skills.Matrix) error {
	f, err := matrixWorkbook(m)
	if err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}
	defer f.Close()

	return f.SaveAs(path)
}

// WriteMatrix streams the workbook to w.
func WriteMatrix(w io.Writer, m *skills.Matrix) error {
	f, err := matrixWorkbook(m)
	if err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}
	defer f.Close()

	return f.Write(w)
}
