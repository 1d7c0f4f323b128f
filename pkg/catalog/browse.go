package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment is a piece of text that either matches a search query or not.
type Segment struct {
	Text  string
	Match bool
}

// FilterNames keeps names that contain the query, ignoring case.
// A blank query keeps everything.
func FilterNames(names []string, query string) []string {
	q := strings.TrimSpace(query)
	if q == "" {
		return names
	}
	q = strings.ToLower(q)

	res := make([]string, 0, len(names))
	for _, v := range names {
		if strings.Contains(strings.ToLower(v), q) {
			res = append(res, v)
		}
	}
	return res
}

// Highlight splits text into segments, marking every case-insensitive
// occurrence of query. Matches do not overlap.
func Highlight(text, query string) []Segment {
	if strings.TrimSpace(query) == "" || text == "" {
		return []Segment{{Text: text}}
	}

	tr := []rune(text)
	qr := []rune(query)
	var res []Segment
	start := 0
	i := 0
	for i+len(qr) <= len(tr) {
		if !strings.EqualFold(string(tr[i:i+len(qr)]), query) {
			i++
			continue
		}
		if i > start {
			res = append(res, Segment{Text: string(tr[start:i])})
		}
		res = append(res, Segment{Text: string(tr[i : i+len(qr)]), Match: true})
		i += len(qr)
		start = i
	}
	if start < len(tr) {
		res = append(res, Segment{Text: string(tr[start:])})
	}
	return res
}

// DisplayName turns a key like "caffe_latte" into "Caffe latte".
func DisplayName(raw string) string {
	s := strings.ReplaceAll(raw, "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ImageKey is the image name of a coffee on the server: lower case with
// spaces replaced by underscores.
func ImageKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
