package skills

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultTopK is the size of the ranking shown in reports and charts.
const DefaultTopK = 20

// SkillCount is a single ranking entry.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// Ranking is ordered by count descending, ties by first occurrence.
type Ranking []SkillCount

// Rank counts the occurrences of every distinct skill. Blank entries are
// skipped. Skills with equal counts keep the order in which they were first
// seen.
func Rank(occurrences []string) Ranking {
	index := make(map[string]int)
	ranking := make(Ranking, 0)

	for _, skill := range occurrences {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		if i, ok := index[skill]; ok {
			ranking[i].Count++
			continue
		}
		index[skill] = len(ranking)
		ranking = append(ranking, SkillCount{Skill: skill, Count: 1})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})

	return ranking
}

// Top returns at most k leading entries. Non-positive k means DefaultTopK.
func (r Ranking) Top(k int) Ranking {
	if k <= 0 {
		k = DefaultTopK
	}
	if len(r) <= k {
		return r
	}
	return r[:k]
}

// Lines renders every entry as "<skill>: <count>".
func (r Ranking) Lines() []string {
	lines := make([]string, 0, len(r))
	for _, entry := range r {
		lines = append(lines, fmt.Sprintf("%s: %d", entry.Skill, entry.Count))
	}
	return lines
}

// Labels and Values split the ranking for chart rendering.
func (r Ranking) Labels() []string {
	labels := make([]string, 0, len(r))
	for _, entry := range r {
		labels = append(labels, entry.Skill)
	}
	return labels
}

func (r Ranking) Values() []float64 {
	values := make([]float64, 0, len(r))
	for _, entry := range r {
		values = append(values, float64(entry.Count))
	}
	return values
}
