package oracle

import (
	"fmt"
	"strings"
)

// ExpectationPolicy decides validate cases that carry no py_expect.
type ExpectationPolicy string

const (
	// PolicyTriviallyPass compares the outcome with itself, so the case always passes.
	PolicyTriviallyPass ExpectationPolicy = "trivially-pass"
	// PolicySkip emits no record for the case.
	PolicySkip ExpectationPolicy = "skip"
	// PolicyRequireExplicit fails the case.
	PolicyRequireExplicit ExpectationPolicy = "require-explicit"
)

// MissingExpectationMessage is reported under PolicyRequireExplicit.
const MissingExpectationMessage = "py_expect is required"

// ParsePolicy converts a policy name; the empty string selects the default.
func ParsePolicy(s string) (ExpectationPolicy, error) {
	switch p := ExpectationPolicy(strings.ToLower(s)); p {
	case "":
		return PolicyTriviallyPass, nil
	case PolicyTriviallyPass, PolicySkip, PolicyRequireExplicit:
		return p, nil
	default:
		return "", fmt.Errorf("unknown expectation policy %q (valid: %s, %s, %s)", s, PolicyTriviallyPass, PolicySkip, PolicyRequireExplicit)
	}
}

// Options configures a Verifier.
type Options struct {
	Policy ExpectationPolicy
	Label  string
}

// Verifier turns test cases into records using a reference engine.
type Verifier struct {
	engine Engine
	policy ExpectationPolicy
	label  string
}

// NewVerifier creates a Verifier. Zero-valued options select the defaults.
func NewVerifier(engine Engine, opts Options) *Verifier {
	v := &Verifier{
		engine: engine,
		policy: opts.Policy,
		label:  opts.Label,
	}
	if v.policy == "" {
		v.policy = PolicyTriviallyPass
	}
	if v.label == "" {
		v.label = DefaultLabel
	}
	return v
}

// Engine returns the reference engine.
func (v *Verifier) Engine() Engine {
	return v.engine
}

// Label returns the tag appended to record names.
func (v *Verifier) Label() string {
	return v.label
}

// VerifyValidate checks that c.Pattern compiles as expected. The second
// result is false when the policy skips the case.
//
// A compile error is advisory: the verdict depends only on whether the
// pattern compiled.
func (v *Verifier) VerifyValidate(c ValidateCase) (Record, bool) {
	ok := true
	var msg string
	if _, err := v.engine.Compile(c.Pattern); err != nil {
		ok = false
		msg = err.Error()
	}

	got := Observed(true)
	if !ok {
		got = AdvisoryRejection(msg)
	}
	rec := Record{
		Name: caseName(c.Name, v.label),
		Got:  got,
	}

	if c.PyExpect != nil {
		rec.Want = *c.PyExpect
		rec.Pass = ok == rec.Want
		return rec, true
	}

	switch v.policy {
	case PolicySkip:
		return Record{}, false
	case PolicyRequireExplicit:
		rec.Want = ok
		rec.Pass = false
		rec.Got = AdvisoryRejection(MissingExpectationMessage)
	default:
		rec.Want = ok
		rec.Pass = true
	}
	return rec, true
}

// VerifyMatch searches for c.Pattern in c.Subject. A pattern the engine
// rejects is an equivalence failure regardless of c.Expect.
func (v *Verifier) VerifyMatch(c MatchCase) Record {
	rec := Record{
		Name: caseName(c.Name, v.label),
		Want: c.Expect,
	}

	m, err := v.engine.Compile(c.Pattern)
	if err != nil {
		rec.Got = Rejection(err.Error())
		return rec
	}
	found, err := m.MatchString(c.Subject)
	if err != nil {
		rec.Got = Rejection(err.Error())
		return rec
	}

	rec.Got = Observed(found)
	rec.Pass = found == c.Expect
	return rec
}

// Verify evaluates validate cases then match cases, each in document order.
func (v *Verifier) Verify(doc Document) []Record {
	records := make([]Record, 0, doc.Len())
	for _, c := range doc.Validate {
		if rec, ok := v.VerifyValidate(c); ok {
			records = append(records, rec)
		}
	}
	for _, c := range doc.Match {
		records = append(records, v.VerifyMatch(c))
	}
	return records
}
