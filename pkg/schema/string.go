package schema

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var fieldValidator = validator.New()

type letterCase int

const (
	caseNone letterCase = iota
	caseLower
	caseUpper
)

// StringNode validates strings.
type StringNode struct {
	flags      Flags
	allowEmpty bool
	min, max   int
	hasMin     bool
	hasMax     bool
	pattern    *regexp.Regexp
	trim       bool
	email      bool
	uri        bool
	uuid       bool
	letterCase letterCase
}

// String returns a string node that accepts the empty string.
func String() StringNode {
	return StringNode{allowEmpty: true}
}

func (n StringNode) Kind() Kind   { return KindString }
func (n StringNode) Flags() Flags { return n.flags }

func (n StringNode) withFlags(f Flags) Node {
	n.flags = f
	return n
}

// AllowEmpty toggles acceptance of "". An allowed empty string skips every
// other string constraint.
func (n StringNode) AllowEmpty(allow bool) StringNode {
	n.allowEmpty = allow
	return n
}

// Min sets the minimum length in characters.
func (n StringNode) Min(length int) StringNode {
	n.min, n.hasMin = length, true
	return n
}

// Max sets the maximum length in characters.
func (n StringNode) Max(length int) StringNode {
	n.max, n.hasMax = length, true
	return n
}

func (n StringNode) Pattern(re *regexp.Regexp) StringNode {
	n.pattern = re
	return n
}

// Trim removes surrounding whitespace before any check.
func (n StringNode) Trim() StringNode {
	n.trim = true
	return n
}

func (n StringNode) Email() StringNode {
	n.email = true
	return n
}

func (n StringNode) URI() StringNode {
	n.uri = true
	return n
}

func (n StringNode) UUID() StringNode {
	n.uuid = true
	return n
}

// Lowercase converts the value to lower case.
func (n StringNode) Lowercase() StringNode {
	n.letterCase = caseLower
	return n
}

// Uppercase converts the value to upper case.
func (n StringNode) Uppercase() StringNode {
	n.letterCase = caseUpper
	return n
}

func (n StringNode) check(value any, st *state) any {
	s, ok := value.(string)
	if !ok {
		st.fail(n.flags, "string.base", value, nil, "must be a string")
		return value
	}

	if n.trim {
		s = strings.TrimSpace(s)
	}
	switch n.letterCase {
	case caseLower:
		s = cases.Lower(language.Und).String(s)
	case caseUpper:
		s = cases.Upper(language.Und).String(s)
	}

	if s == "" {
		if !n.allowEmpty {
			st.fail(n.flags, "string.empty", value, nil, "is not allowed to be empty")
		}
		return s
	}

	length := utf8.RuneCountInString(s)
	if n.hasMin && length < n.min {
		st.fail(n.flags, "string.min", value, map[string]any{"limit": n.min},
			"length must be at least %d characters long", n.min)
	}
	if n.hasMax && length > n.max {
		st.fail(n.flags, "string.max", value, map[string]any{"limit": n.max},
			"length must be less than or equal to %d characters long", n.max)
	}
	if n.pattern != nil && !n.pattern.MatchString(s) {
		st.fail(n.flags, "string.pattern.base", value, map[string]any{"regex": n.pattern.String()},
			"with value %q fails to match the required pattern: /%s/", s, n.pattern.String())
	}
	if n.email && fieldValidator.Var(s, "email") != nil {
		st.fail(n.flags, "string.email", value, nil, "must be a valid email")
	}
	if n.uri && fieldValidator.Var(s, "uri") != nil {
		st.fail(n.flags, "string.uri", value, nil, "must be a valid uri")
	}
	if n.uuid {
		if _, err := uuid.Parse(s); err != nil {
			st.fail(n.flags, "string.guid", value, nil, "must be a valid GUID")
		}
	}
	return s
}
