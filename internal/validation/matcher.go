package validation

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/spendlog/internal/ledgererror"

	"github.com/dlclark/regexp2"
)

// DefaultFlags are the flags interactive search compiles with.
const DefaultFlags = "i"

// DefaultMatchTimeout bounds a single match so a catastrophic pattern
// degrades to "no match" instead of blocking the caller.
const DefaultMatchTimeout = 250 * time.Millisecond

// MaxSanitizedLength is the rune limit SanitizeInput truncates to.
const MaxSanitizedLength = 200

// Matcher is a compiled user-supplied search pattern (ECMAScript syntax).
type Matcher struct {
	re    *regexp2.Regexp
	opts  regexp2.RegexOptions
	flags string
}

// CompileRegex compiles pattern with the given flags and returns nil when the
// syntax or the flags are invalid.
func CompileRegex(pattern, flags string) *Matcher {
	m, err := CompilePattern(pattern, flags)
	if err != nil {
		return nil
	}
	return m
}

// CompilePattern is CompileRegex reporting why compilation failed.
// Accepted flags: i (ignore case), m (multiline), s (dot matches newline),
// u (unicode) and g, which is accepted and ignored since every match is global.
func CompilePattern(pattern, flags string) (m *Matcher, err error) {
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u':
			opts |= regexp2.Unicode
		case 'g':
		default:
			return nil, &ledgererror.PatternError{Pattern: pattern, Err: fmt.Errorf("unknown flag %q", f)}
		}
	}

	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = &ledgererror.PatternError{Pattern: pattern, Err: fmt.Errorf("%v", r)}
		}
	}()

	re, cerr := regexp2.Compile(pattern, opts)
	if cerr != nil {
		return nil, &ledgererror.PatternError{Pattern: pattern, Err: cerr}
	}
	re.MatchTimeout = DefaultMatchTimeout
	return &Matcher{re: re, opts: opts, flags: flags}, nil
}

// WithTimeout returns a copy of m whose matches time out after d.
func (m *Matcher) WithTimeout(d time.Duration) *Matcher {
	if m == nil || d <= 0 {
		return m
	}
	re, err := regexp2.Compile(m.re.String(), m.opts)
	if err != nil {
		return m
	}
	re.MatchTimeout = d
	return &Matcher{re: re, opts: m.opts, flags: m.flags}
}

// String returns the pattern source.
func (m *Matcher) String() string {
	if m == nil {
		return ""
	}
	return m.re.String()
}

// Flags returns the flags the matcher was compiled with.
func (m *Matcher) Flags() string {
	if m == nil {
		return ""
	}
	return m.flags
}

// MatchString reports whether s contains a match. A timed-out match counts
// as no match.
func (m *Matcher) MatchString(s string) bool {
	if m == nil {
		return false
	}
	matched, err := m.re.MatchString(s)
	return err == nil && matched
}

// HighlightMatches HTML-escapes text and wraps every non-empty match in
// <mark></mark>. A nil matcher or empty text returns text unchanged. When
// matching fails part way the escaped text is returned without marks.
func HighlightMatches(text string, m *Matcher) string {
	if m == nil || text == "" {
		return text
	}
	escaped := html.EscapeString(text)
	out, err := highlight(escaped, m, func(s string) string { return "<mark>" + s + "</mark>" })
	if err != nil {
		return escaped
	}
	return out
}

// HighlightWith wraps every non-empty match of m in text with wrap, without
// escaping. Terminal renderers use it with a styling function.
func HighlightWith(text string, m *Matcher, wrap func(string) string) string {
	if m == nil || text == "" || wrap == nil {
		return text
	}
	out, err := highlight(text, m, wrap)
	if err != nil {
		return text
	}
	return out
}

func highlight(text string, m *Matcher, wrap func(string) string) (string, error) {
	runes := []rune(text)
	var b strings.Builder
	last := 0

	match, err := m.re.FindRunesMatch(runes)
	for guard := 0; match != nil && guard <= len(runes); guard++ {
		if err != nil {
			return "", err
		}
		if match.Length > 0 {
			b.WriteString(string(runes[last:match.Index]))
			b.WriteString(wrap(string(runes[match.Index : match.Index+match.Length])))
			last = match.Index + match.Length
		}
		match, err = m.re.FindNextMatch(match)
	}
	if err != nil {
		return "", err
	}
	b.WriteString(string(runes[last:]))
	return b.String(), nil
}

// SanitizeInput trims text, strips angle brackets and truncates it to
// MaxSanitizedLength runes.
func SanitizeInput(text string) string {
	text = strings.TrimSpace(text)
	text = strings.NewReplacer("<", "", ">", "").Replace(text)
	if utf8.RuneCountInString(text) > MaxSanitizedLength {
		text = string([]rune(text)[:MaxSanitizedLength])
	}
	return text
}
