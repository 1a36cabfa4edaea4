// Package report writes the aggregated skill data to CSV, XLSX, PNG and text.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spigell/skill-matrix/internal/skills"
)

var candidatesHeader = []string{"Candidate", "Name", "Email", "Phone", "Skills"}

// WriteCandidatesCSV writes one row per candidate with the skills joined into
// a single column.
func WriteCandidatesCSV(w io.Writer, candidates []skills.Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(candidatesHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, c := range candidates {
		record := []string{c.ID, c.Name, c.Email, c.Phone, c.JoinedSkills()}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row for %q: %w", c.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
