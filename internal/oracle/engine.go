package oracle

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Engine names accepted by NewEngine.
const (
	EngineRegexp2 = "regexp2"
	EngineRE2     = "re2"
)

// Mode flags mirrored from the system under test.
const (
	FlagDotAll     = "dotall"
	FlagIgnoreCase = "ignorecase"
	FlagMultiline  = "multiline"
)

// Engine compiles patterns with a fixed set of mode flags.
type Engine interface {
	Name() string
	Compile(pattern string) (Matcher, error)
}

// Matcher reports whether a compiled pattern matches somewhere in subject.
type Matcher interface {
	MatchString(subject string) (bool, error)
}

// Modes is the set of mode flags an engine applies to every pattern.
type Modes struct {
	DotAll     bool
	IgnoreCase bool
	Multiline  bool
}

// DefaultModes applies dot-matches-newline only.
func DefaultModes() Modes {
	return Modes{DotAll: true}
}

// ParseModes converts flag names into Modes. An empty list yields no flags.
func ParseModes(flags []string) (Modes, error) {
	var m Modes
	for _, f := range flags {
		switch strings.ToLower(f) {
		case FlagDotAll:
			m.DotAll = true
		case FlagIgnoreCase:
			m.IgnoreCase = true
		case FlagMultiline:
			m.Multiline = true
		default:
			return Modes{}, fmt.Errorf("unknown mode flag %q (valid: %s, %s, %s)", f, FlagDotAll, FlagIgnoreCase, FlagMultiline)
		}
	}
	return m, nil
}

// NewEngine returns the named engine. timeout bounds a single regexp2 match;
// zero means no bound.
func NewEngine(name string, modes Modes, timeout time.Duration) (Engine, error) {
	switch name {
	case "", EngineRegexp2:
		return NewRegexp2Engine(modes, timeout), nil
	case EngineRE2:
		return NewRE2Engine(modes), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (valid: %s, %s)", name, EngineRegexp2, EngineRE2)
	}
}

// Regexp2Engine is a backtracking engine with Perl-style syntax: lookaround,
// backreferences and possessive constructs compile here but not under RE2.
type Regexp2Engine struct {
	options regexp2.RegexOptions
	timeout time.Duration
}

// NewRegexp2Engine creates a regexp2-backed engine.
func NewRegexp2Engine(modes Modes, timeout time.Duration) *Regexp2Engine {
	opts := regexp2.None
	if modes.DotAll {
		opts |= regexp2.Singleline
	}
	if modes.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if modes.Multiline {
		opts |= regexp2.Multiline
	}
	return &Regexp2Engine{options: opts, timeout: timeout}
}

func (e *Regexp2Engine) Name() string { return EngineRegexp2 }

func (e *Regexp2Engine) Compile(pattern string) (Matcher, error) {
	re, err := regexp2.Compile(pythonSyntax(pattern), e.options)
	if err != nil {
		return nil, err
	}
	if e.timeout > 0 {
		re.MatchTimeout = e.timeout
	}
	return re, nil
}

// pythonSyntax respells Python-only constructs the .NET parser does not
// know: (?P<name>...) groups, (?P=name) backreferences, {,n} quantifiers and
// the absolute end anchor \Z. Character classes are copied untouched.
func pythonSyntax(pattern string) string {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			if pattern[i+1] == 'Z' && !inClass {
				b.WriteString(`\z`)
			} else {
				b.WriteString(pattern[i : i+2])
			}
			i++
			continue
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			b.WriteByte(c)
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				b.WriteByte('^')
				i++
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				b.WriteByte(']')
				i++
			}
			continue
		case strings.HasPrefix(pattern[i:], "(?P<"):
			b.WriteString("(?<")
			i += len("(?P<") - 1
			continue
		case strings.HasPrefix(pattern[i:], "(?P="):
			if end := strings.IndexByte(pattern[i:], ')'); end > len("(?P=") {
				b.WriteString(`\k<` + pattern[i+len("(?P="):i+end] + ">")
				i += end
				continue
			}
		case c == '{' && i+1 < len(pattern) && pattern[i+1] == ',':
			j := i + 2
			for j < len(pattern) && pattern[j] >= '0' && pattern[j] <= '9' {
				j++
			}
			if j > i+2 && j < len(pattern) && pattern[j] == '}' {
				b.WriteString("{0,")
				b.WriteString(pattern[i+2 : j+1])
				i = j
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// RE2Engine wraps the standard library's linear-time engine. Mode flags are
// prepended as an inline group.
type RE2Engine struct {
	prefix string
}

// NewRE2Engine creates a regexp-backed engine.
func NewRE2Engine(modes Modes) *RE2Engine {
	var flags strings.Builder
	if modes.DotAll {
		flags.WriteByte('s')
	}
	if modes.IgnoreCase {
		flags.WriteByte('i')
	}
	if modes.Multiline {
		flags.WriteByte('m')
	}
	var prefix string
	if flags.Len() > 0 {
		prefix = "(?" + flags.String() + ")"
	}
	return &RE2Engine{prefix: prefix}
}

func (e *RE2Engine) Name() string { return EngineRE2 }

func (e *RE2Engine) Compile(pattern string) (Matcher, error) {
	re, err := regexp.Compile(e.prefix + pattern)
	if err != nil {
		return nil, err
	}
	return re2Matcher{re: re}, nil
}

type re2Matcher struct {
	re *regexp.Regexp
}

func (m re2Matcher) MatchString(subject string) (bool, error) {
	return m.re.MatchString(subject), nil
}
