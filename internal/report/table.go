package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Row is a rendered table line.
type Row struct {
	Name    string
	Pass    bool
	Details string
}

// Result returns the Result column text.
func (r Row) Result() string {
	if r.Pass {
		return "✔ Pass"
	}
	return "✖ Fail"
}

// Report is an ordered table of result rows with totals.
type Report struct {
	Rows   []Row
	Total  int
	Passed int
	Failed int
}

// Build orders cases so that every reference row labeled with label follows
// the row of the system under test it shadows, then renders the rows.
func Build(cases []Case, label string) Report {
	ordered := Order(cases, label)

	r := Report{Rows: make([]Row, 0, len(ordered)), Total: len(ordered)}
	for _, c := range ordered {
		row := Row{Name: c.Name, Pass: c.Pass}
		if c.Pass {
			r.Passed++
		} else {
			row.Details = Details(c)
		}
		r.Rows = append(r.Rows, row)
	}
	r.Failed = r.Total - r.Passed
	return r
}

type group struct {
	primary   []Case
	reference []Case
}

// Order groups cases by base name. Groups with a primary row come first in
// order of first appearance, each primary row followed by its reference
// rows; groups with only reference rows follow, also by first appearance.
func Order(cases []Case, label string) []Case {
	suffix := fmt.Sprintf(" (%s)", label)
	prefix := label + ": "

	groups := make(map[string]*group)
	var bases []string
	for _, c := range cases {
		base := c.Name
		base = strings.TrimPrefix(base, prefix)
		base = strings.TrimSuffix(base, suffix)
		g, ok := groups[base]
		if !ok {
			g = &group{}
			groups[base] = g
			bases = append(bases, base)
		}
		if strings.HasSuffix(c.Name, suffix) || strings.HasPrefix(c.Name, prefix) {
			g.reference = append(g.reference, c)
		} else {
			g.primary = append(g.primary, c)
		}
	}

	ordered := make([]Case, 0, len(cases))
	for _, base := range bases {
		if g := groups[base]; len(g.primary) > 0 {
			ordered = append(ordered, g.primary...)
			ordered = append(ordered, g.reference...)
		}
	}
	for _, base := range bases {
		if g := groups[base]; len(g.primary) == 0 {
			ordered = append(ordered, g.reference...)
		}
	}
	return ordered
}

const (
	maxDetails   = 120
	truncatedGot = 80
)

// Details summarizes a failed case: the error message when got carries one,
// otherwise got and want side by side, truncated when long.
func Details(c Case) string {
	if msg, ok := errMessage(c.Got); ok {
		return msg
	}
	got := renderValue(c.Got)
	want := renderValue(c.Want)
	if got != "" && want != "" && len([]rune(got))+len([]rune(want)) < maxDetails {
		return fmt.Sprintf("got=%s want=%s", got, want)
	}
	if r := []rune(got); len(r) > truncatedGot {
		got = string(r[:truncatedGot])
	}
	return fmt.Sprintf("got=%s...", got)
}

func errMessage(raw json.RawMessage) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}
	v, ok := obj["err"]
	if !ok {
		return "", false
	}
	switch s := renderValue(v); s {
	case "", "null", "false", "0":
		return "", false
	default:
		return s, true
	}
}

// renderValue shows strings without quotes and anything else as compact JSON.
func renderValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	if string(raw) == "null" {
		return "null"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
