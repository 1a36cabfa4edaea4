package resume

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/spigell/skill-matrix/internal/skills"
)

type Candidates struct {
	Items []skills.Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) IDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		ids = append(ids, candidate.ID)
	}
	return ids
}

// SortByID orders candidates by identity so aggregation output does not depend
// on parsing order.
func (c *Candidates) SortByID() {
	sort.SliceStable(c.Items, func(i, j int) bool {
		return c.Items[i].ID < c.Items[j].ID
	})
}

func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportBySkill groups candidate identities by skill.
func (c *Candidates) ReportBySkill() map[string][]string {
	report := make(map[string][]string)
	for _, candidate := range c.Items {
		seen := make(map[string]struct{})
		for _, skill := range skills.Tokens(candidate.Skills) {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			report[skill] = append(report[skill], candidate.ID)
		}
	}
	return report
}
