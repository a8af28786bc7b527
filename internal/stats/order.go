package stats

import "strings"

// CreateOrder arranges present field names according to a preferred
// order. Preferred entries appear first, in the curated order, when they
// are present; reserved pseudo-entries (names ending in "!") are always
// included so printers can attach synthetic labels and separators.
// Present fields the preferred order does not know still surface; they
// are appended at the end in their original order rather than dropped.
func CreateOrder(present []string, preferred []string) []string {
	used := make(map[string]bool, len(preferred))
	ordered := make([]string, 0, len(present)+1)

	for _, name := range preferred {
		if IsReserved(name) {
			ordered = append(ordered, name)
			continue
		}
		for _, p := range present {
			if p == name && !used[p] {
				ordered = append(ordered, name)
				used[name] = true
				break
			}
		}
	}
	for _, name := range present {
		if !used[name] {
			ordered = append(ordered, name)
			used[name] = true
		}
	}
	return ordered
}

// IsReserved reports whether a field name is a reserved pseudo-entry.
func IsReserved(name string) bool {
	return strings.HasSuffix(name, "!")
}
