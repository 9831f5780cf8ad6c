package router

import (
	"regexp"
	"strings"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/yosida95/uritemplate/v3"
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)*$`)

// Template is a compiled path pattern such as "people/{first}-{last}/overview".
// Each {name} captures one or more characters other than '/'. Literal text
// may hold any character.
type Template struct {
	pattern string
	re      *regexp.Regexp
	names   []string
	parts   []part
}

// part is either literal text or one placeholder with its single-variable
// expansion template.
type part struct {
	literal string
	name    string
	expand  *uritemplate.Template
}

// Compile parses pattern. Unbalanced braces, empty or repeated names,
// and two placeholders without a literal between them are rejected.
func Compile(pattern string) (*Template, error) {
	if pattern == "" {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Template", "Compile", "empty pattern")
	}

	var (
		re       strings.Builder
		names    []string
		parts    []part
		seen     = make(map[string]bool)
		rest     = pattern
		lastWasP bool
	)
	re.WriteString("^")
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		closing := strings.IndexByte(rest, '}')
		if closing >= 0 && (open < 0 || closing < open) {
			return nil, malformed(pattern, "unexpected '}'")
		}
		if open < 0 {
			re.WriteString(regexp.QuoteMeta(rest))
			parts = append(parts, part{literal: rest})
			break
		}
		if open > 0 {
			re.WriteString(regexp.QuoteMeta(rest[:open]))
			parts = append(parts, part{literal: rest[:open]})
			lastWasP = false
		}
		rest = rest[open+1:]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return nil, malformed(pattern, "unclosed '{'")
		}
		name := rest[:end]
		switch {
		case name == "":
			return nil, malformed(pattern, "empty placeholder")
		case !nameRe.MatchString(name):
			return nil, malformed(pattern, "invalid placeholder name "+name)
		case seen[name]:
			return nil, malformed(pattern, "duplicate placeholder "+name)
		case lastWasP:
			return nil, malformed(pattern, "adjacent placeholders before "+name)
		}
		// Names are restricted to varname characters, so this cannot fail.
		expand, err := uritemplate.New("{" + name + "}")
		if err != nil {
			return nil, malformed(pattern, err.Error())
		}
		seen[name] = true
		names = append(names, name)
		parts = append(parts, part{name: name, expand: expand})
		re.WriteString("([^/]+)")
		lastWasP = true
		rest = rest[end+1:]
	}
	re.WriteString("$")

	compiled, err := regexp.Compile(re.String())
	if err != nil {
		return nil, malformed(pattern, err.Error())
	}
	return &Template{pattern: pattern, re: compiled, names: names, parts: parts}, nil
}

func malformed(pattern, detail string) error {
	return errors.Invalidf(errors.ErrInvalidData, "Template", "Compile", "pattern %q: %s", pattern, detail)
}

// Pattern returns the source text.
func (t *Template) Pattern() string { return t.pattern }

// Names returns the placeholder names in order of appearance.
func (t *Template) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Match captures the placeholders of path; ok is false unless the whole path
// matches.
func (t *Template) Match(path string) (map[string]string, bool) {
	m := t.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	captures := make(map[string]string, len(t.names))
	for i, name := range t.names {
		captures[name] = m[i+1]
	}
	return captures, true
}

// Expand substitutes vars into the pattern with RFC 6570 simple string
// expansion, so reserved characters in values are percent-encoded. Literal
// text is copied unchanged. Every placeholder needs a non-empty value.
func (t *Template) Expand(vars map[string]string) (string, error) {
	var out strings.Builder
	for _, p := range t.parts {
		if p.expand == nil {
			out.WriteString(p.literal)
			continue
		}
		v, ok := vars[p.name]
		if !ok || v == "" {
			return "", errors.Invalidf(errors.ErrInvalidData, "Template", "Expand", "missing value for %s in %q", p.name, t.pattern)
		}
		values := uritemplate.Values{}
		values.Set(p.name, uritemplate.String(v))
		s, err := p.expand.Expand(values)
		if err != nil {
			return "", errors.WrapInvalid(err, "Template", "Expand", "expand "+t.pattern)
		}
		out.WriteString(s)
	}
	return out.String(), nil
}
