package analysis

import "sort"

// Entry is one ranked group.
type Entry struct {
	Key   string  `yaml:"key" json:"key"`
	Value float64 `yaml:"value" json:"value"`
}

// TopN sums value per key and returns the n largest groups in descending
// order. Ties keep the order in which their keys were first seen. Items
// with an empty key are not ranked.
func TopN[T any](items []T, key func(T) string, value func(T) float64, n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}

	positions := make(map[string]int)
	entries := make([]Entry, 0)
	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		pos, ok := positions[k]
		if !ok {
			pos = len(entries)
			positions[k] = pos
			entries = append(entries, Entry{Key: k})
		}
		entries[pos].Value += value(item)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
