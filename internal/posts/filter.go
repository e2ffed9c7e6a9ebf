package posts

import "strings"

// Filter returns the records whose title, author or content contains term,
// compared case-insensitively as a plain substring. The result is always a
// new slice built from records in their original order; an empty term keeps
// every record.
func Filter(records []Record, term string) []Record {
	out := make([]Record, 0, len(records))
	needle := strings.ToLower(term)
	for _, r := range records {
		if Matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether r contains the already lower-cased needle.
func Matches(r Record, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title), needle) ||
		strings.Contains(strings.ToLower(r.Author), needle) ||
		strings.Contains(strings.ToLower(r.Content), needle)
}

// FindByID returns the record with the given id from records.
func FindByID(records []Record, id int) (Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
