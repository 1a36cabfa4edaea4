package skills

import "fmt"

// Matrix is a dense candidate x skill table of occurrence counts.
type Matrix struct {
	rows    []string
	columns []string

	counts   [][]int
	rowIndex map[string]int
	colIndex map[string]int
}

func newMatrix(rows, columns []string) *Matrix {
	m := &Matrix{
		rows:     append([]string(nil), rows...),
		columns:  append([]string(nil), columns...),
		counts:   make([][]int, len(rows)),
		rowIndex: make(map[string]int, len(rows)),
		colIndex: make(map[string]int, len(columns)),
	}
	for i, row := range m.rows {
		m.counts[i] = make([]int, len(columns))
		m.rowIndex[row] = i
	}
	for j, col := range m.columns {
		m.colIndex[col] = j
	}
	return m
}

// BuildMatrix counts every skill token of every candidate against the
// vocabulary. A token missing from the vocabulary means the vocabulary was
// built from different data and is reported as ErrUnknownSkill.
func BuildMatrix(candidates []Candidate, vocabulary []string) (*Matrix, error) {
	ids := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCandidate, c.ID)
		}
		seen[c.ID] = struct{}{}
		ids = append(ids, c.ID)
	}

	m := newMatrix(ids, vocabulary)
	for i, c := range candidates {
		for _, skill := range Tokens(c.Skills) {
			j, ok := m.colIndex[skill]
			if !ok {
				return nil, fmt.Errorf("%w: candidate %q has %q", ErrUnknownSkill, c.ID, skill)
			}
			m.counts[i][j]++
		}
	}

	return m, nil
}

// WithTotals returns a copy of the matrix extended with a TOTAL column of row
// sums and a TOTAL row of column sums. The corner cell is the grand total.
func (m *Matrix) WithTotals() (*Matrix, error) {
	for _, row := range m.rows {
		if row == Total {
			return nil, fmt.Errorf("%w: candidate %q", ErrNameCollision, row)
		}
	}
	for _, col := range m.columns {
		if col == Total {
			return nil, fmt.Errorf("%w: skill %q", ErrNameCollision, col)
		}
	}

	rows := append(append([]string(nil), m.rows...), Total)
	cols := append(append([]string(nil), m.columns...), Total)
	out := newMatrix(rows, cols)

	last := len(m.rows)
	for i := range m.rows {
		for j := range m.columns {
			v := m.counts[i][j]
			out.counts[i][j] = v
			out.counts[i][len(m.columns)] += v
			out.counts[last][j] += v
			out.counts[last][len(m.columns)] += v
		}
	}

	return out, nil
}

// Rows returns a copy of the row labels.
func (m *Matrix) Rows() []string {
	return append([]string(nil), m.rows...)
}

// Columns returns a copy of the column labels.
func (m *Matrix) Columns() []string {
	return append([]string(nil), m.columns...)
}

// At returns the count at the given position.
func (m *Matrix) At(row, col int) int {
	return m.counts[row][col]
}

// Count returns the count for a candidate and skill. The second value is false
// when either key is not part of the matrix.
func (m *Matrix) Count(row, col string) (int, bool) {
	i, ok := m.rowIndex[row]
	if !ok {
		return 0, false
	}
	j, ok := m.colIndex[col]
	if !ok {
		return 0, false
	}
	return m.counts[i][j], true
}

// HasTotals reports whether the matrix was produced by WithTotals.
func (m *Matrix) HasTotals() bool {
	return len(m.rows) > 0 && m.rows[len(m.rows)-1] == Total &&
		len(m.columns) > 0 && m.columns[len(m.columns)-1] == Total
}

// Sum adds up every cell that is not part of a TOTAL row or column.
func (m *Matrix) Sum() int {
	sum := 0
	for i, row := range m.rows {
		if row == Total {
			continue
		}
		for j, col := range m.columns {
			if col == Total {
				continue
			}
			sum += m.counts[i][j]
		}
	}
	return sum
}

// RowTotal returns the sum of a row. On a matrix with totals it reads the
// TOTAL column, so RowTotal(Total) is the grand total.
func (m *Matrix) RowTotal(row string) (int, bool) {
	i, ok := m.rowIndex[row]
	if !ok {
		return 0, false
	}
	if m.HasTotals() {
		return m.counts[i][len(m.columns)-1], true
	}
	sum := 0
	for _, v := range m.counts[i] {
		sum += v
	}
	return sum, true
}

// ColumnTotal returns the sum of a column. On a matrix with totals it reads
// the TOTAL row.
func (m *Matrix) ColumnTotal(col string) (int, bool) {
	j, ok := m.colIndex[col]
	if !ok {
		return 0, false
	}
	if m.HasTotals() {
		return m.counts[len(m.rows)-1][j], true
	}
	sum := 0
	for i := range m.rows {
		sum += m.counts[i][j]
	}
	return sum, true
}
