package schema

import (
	"regexp"
	"strings"
	"time"
)

var (
	// utcDatePattern requires a full timestamp ending in a literal Z.
	utcDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{1,9})?Z$`)
	// zonedDatePattern accepts a bare date or a timestamp with a numeric offset.
	zonedDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d{1,9})?[+-]\d{2}:\d{2})?$`)
)

const (
	dateOnlyLayout = "2006-01-02"
	// zonedLayout always writes a numeric offset, never "Z".
	zonedLayout = "2006-01-02T15:04:05.999999999-07:00"
)

// DateNode validates ISO 8601 date strings.
type DateNode struct {
	flags   Flags
	utc     bool
	convert bool
}

// DateString returns a node for zoned date strings, kept as strings.
func DateString() DateNode {
	return DateNode{}
}

func (n DateNode) Kind() Kind   { return KindDate }
func (n DateNode) Flags() Flags { return n.flags }

func (n DateNode) withFlags(f Flags) Node {
	n.flags = f
	return n
}

// UTC switches between the UTC-only and the zoned format.
func (n DateNode) UTC(utc bool) DateNode {
	n.utc = utc
	return n
}

// Convert makes the node output time.Time.
func (n DateNode) Convert(convert bool) DateNode {
	n.convert = convert
	return n
}

func (n DateNode) pattern() *regexp.Regexp {
	if n.utc {
		return utcDatePattern
	}
	return zonedDatePattern
}

func (n DateNode) check(value any, st *state) any {
	switch v := value.(type) {
	case time.Time:
		if n.convert {
			return v
		}
		if n.utc {
			return v.UTC().Format(time.RFC3339Nano)
		}
		return v.Format(zonedLayout)
	case string:
		if !n.pattern().MatchString(v) {
			if n.utc {
				st.fail(n.flags, "date.format", value, map[string]any{"format": "utc"},
					"must be a valid ISO 8601 date string in UTC (YYYY-MM-DDThh:mm:ssZ)")
			} else {
				st.fail(n.flags, "date.format", value, map[string]any{"format": "zoned"},
					"must be a valid ISO 8601 date string with time zone offset (YYYY-MM-DDThh:mm:ss±hh:mm)")
			}
			return value
		}
		t, err := parseDate(v)
		if err != nil {
			st.fail(n.flags, "date.base", value, nil, "must be a valid calendar date")
			return value
		}
		if n.convert {
			return t
		}
		return v
	}
	st.fail(n.flags, "date.base", value, nil, "must be a valid date string")
	return value
}

func parseDate(s string) (time.Time, error) {
	if strings.Contains(s, "T") {
		return time.Parse(time.RFC3339Nano, s)
	}
	return time.Parse(dateOnlyLayout, s)
}
