// Package skills aggregates per-candidate skill lists into a vocabulary,
// a candidate x skill incidence matrix with totals and a frequency ranking.
package skills

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// Total labels the synthetic row and column holding sums.
	Total = "TOTAL"
	// Separator splits skills that arrive as a single joined string.
	Separator = ","
	// JoinSeparator is used when skills are rendered as one string.
	JoinSeparator = ", "
)

var (
	ErrUnknownSkill       = errors.New("skill is not in the vocabulary")
	ErrNameCollision      = errors.New("name collides with the " + Total + " label")
	ErrDuplicateCandidate = errors.New("duplicate candidate identity")
)

// Candidate is the parsed data of a single resume. ID is the source file name
// and is unique within a run.
type Candidate struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Phone  string   `json:"phone"`
	Skills []string `json:"skills"`
}

// JoinedSkills renders the skills the way they appear in the CSV report.
func (c Candidate) JoinedSkills() string {
	return strings.Join(Tokens(c.Skills), JoinSeparator)
}

// Tokens normalizes a skill list: joined entries are split on Separator,
// every token is trimmed and empty tokens are dropped. Duplicates are kept.
func Tokens(entries []string) []string {
	tokens := make([]string, 0, len(entries))
	for _, entry := range entries {
		for _, token := range strings.Split(entry, Separator) {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Vocabulary returns the distinct skills of all lists. The result is sorted
// case-insensitively with the original casing kept; equal folded names fall
// back to a plain byte comparison so the order never depends on input order.
func Vocabulary(lists [][]string) []string {
	seen := make(map[string]struct{})
	vocabulary := make([]string, 0)

	for _, list := range lists {
		for _, skill := range Tokens(list) {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			vocabulary = append(vocabulary, skill)
		}
	}

	sort.Slice(vocabulary, func(i, j int) bool {
		a, b := strings.ToLower(vocabulary[i]), strings.ToLower(vocabulary[j])
		if a != b {
			return a < b
		}
		return vocabulary[i] < vocabulary[j]
	})

	return vocabulary
}

// Report is the outcome of Aggregate.
type Report struct {
	Vocabulary []string
	// Matrix already carries the TOTAL row and column.
	Matrix  *Matrix
	Ranking Ranking
}

// Aggregate runs the whole aggregation over a complete batch. Candidates are
// used in the given order, so callers that parse in parallel must sort them
// first. Nothing is returned when the batch is inconsistent.
func Aggregate(candidates []Candidate) (*Report, error) {
	if err := validateIdentities(candidates); err != nil {
		return nil, err
	}

	lists := make([][]string, 0, len(candidates))
	occurrences := make([]string, 0)
	for _, c := range candidates {
		lists = append(lists, c.Skills)
		occurrences = append(occurrences, Tokens(c.Skills)...)
	}

	vocabulary := Vocabulary(lists)

	matrix, err := BuildMatrix(candidates, vocabulary)
	if err != nil {
		return nil, err
	}

	withTotals, err := matrix.WithTotals()
	if err != nil {
		return nil, err
	}

	return &Report{
		Vocabulary: vocabulary,
		Matrix:     withTotals,
		Ranking:    Rank(occurrences),
	}, nil
}

func validateIdentities(candidates []Candidate) error {
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if c.ID == Total {
			return fmt.Errorf("%w: candidate %q", ErrNameCollision, c.ID)
		}
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateCandidate, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
