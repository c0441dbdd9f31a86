package incident

// Stats holds aggregate counts over the full record collection. Enum
// values with zero occurrences are absent from the maps, not present
// with a zero count.
type Stats struct {
	Total    int              `json:"total"`
	Severity map[Severity]int `json:"severity"`
	Category map[Category]int `json:"category"`
	Status   map[Status]int   `json:"status"`
}

// ComputeStats produces frequency tables for severity, category, and
// status in a single pass. Read-only; records are never mutated.
func ComputeStats(records []*Incident) *Stats {
	s := &Stats{
		Total:    len(records),
		Severity: make(map[Severity]int),
		Category: make(map[Category]int),
		Status:   make(map[Status]int),
	}
	for _, in := range records {
		s.Severity[in.Severity]++
		s.Category[in.Category]++
		s.Status[in.Status]++
	}
	return s
}
