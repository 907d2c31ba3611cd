package filter

// Option is a facet dropdown entry derived from observed record values.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options accumulates the distinct values observed across records, preserving
// first-seen order. The label of the first record carrying a value wins;
// records with an empty value are skipped.
func Options[T any](records []T, value func(T) string, label func(T) string) []Option {
	seen := make(map[string]struct{}, len(records))
	out := make([]Option, 0, len(records))

	for _, record := range records {
		v := value(record)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Option{Value: v, Label: label(record)})
	}
	return out
}
