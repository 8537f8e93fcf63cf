// Package validation implements the declarative request-body validator.
//
// A Schema is an ordered list of per-field rule sets, declared once next to
// the route that uses it and never mutated afterwards. Validation walks the
// schema in declaration order, accumulates every violation across all
// fields in a single pass, and only then decides pass/fail. The one local
// short-circuit is per field: when a required field is absent, further
// rules for that field are skipped (checking the type of a missing value is
// noise), but validation of the remaining fields continues.
//
// Violations stay structured (field + message) inside this package; the
// HTTP gate in internal/http/middleware flattens them into a single
// Validation failure at the wire boundary.
//
// The validator is a pure function of its inputs: it never mutates the
// payload or the schema, performs no I/O, and is safe for concurrent use.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Type names the runtime type a field value must conform to.
type Type string

const (
	// TypeEmail requires a string matching the email-shape pattern
	// (local@domain.tld).
	TypeEmail Type = "email"
	// TypeString requires a JSON string.
	TypeString Type = "string"
	// TypeNumber requires a JSON number that is not NaN.
	TypeNumber Type = "number"
)

// emailRE is the email-shape pattern: something@something.something with no
// whitespace or extra @. Intentionally permissive; deliverability checks do
// not belong in payload validation.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rule is the per-field rule set. Zero values disable a check, except Min
// and Max which are pointers so that a zero bound remains expressible.
type Rule struct {
	// Required rejects absent or empty values.
	Required bool
	// Type constrains the runtime type (email|string|number).
	Type Type
	// MinLength / MaxLength bound string length in runes.
	MinLength int
	MaxLength int
	// Min / Max bound numeric values. Pointers: a zero bound is valid.
	Min *float64
	Max *float64
	// Pattern must match the string value when set.
	Pattern *regexp.Regexp
	// Enum restricts the value to a fixed set of literals.
	Enum []string
}

// Field pairs a payload key with its rule set. Schemas are slices rather
// than maps so that violation ordering is deterministic.
type Field struct {
	Name string
	Rule Rule
}

// Schema is the ordered rule declaration for one request-body shape.
type Schema []Field

// Violation describes a single rule breach for a single field.
type Violation struct {
	Field   string
	Message string
}

// Messages returns the violation messages in order.
func Messages(vs []Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Message
	}
	return out
}

// Join flattens violations into the wire-format message, semicolon-joined.
func Join(vs []Violation) string {
	return strings.Join(Messages(vs), "; ")
}

// Validate checks payload against the schema and returns every violation
// found, in schema declaration order. An empty result means the payload
// passed. Fields present in the payload but absent from the schema are
// ignored.
func (s Schema) Validate(payload map[string]any) []Violation {
	var out []Violation
	add := func(field, format string, args ...any) {
		out = append(out, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	for _, f := range s {
		value, present := payload[f.Name]
		rule := f.Rule

		// Absent or empty ("", 0, false, null all count as absent, matching
		// the historical wire contract).
		if !present || isEmpty(value) {
			if rule.Required {
				add(f.Name, "%s is required", f.Name)
			}
			continue
		}

		str, isStr := value.(string)
		num, isNum := value.(float64)

		switch rule.Type {
		case TypeEmail:
			if !isStr || !emailRE.MatchString(str) {
				add(f.Name, "%s must be a valid email", f.Name)
			}
		case TypeNumber:
			if !isNum || math.IsNaN(num) {
				add(f.Name, "%s must be a number", f.Name)
			}
		case TypeString:
			if !isStr {
				add(f.Name, "%s must be a string", f.Name)
			}
		}

		// Length bounds apply to strings only.
		if isStr {
			n := utf8.RuneCountInString(str)
			if rule.MinLength > 0 && n < rule.MinLength {
				add(f.Name, "%s must be at least %d characters", f.Name, rule.MinLength)
			}
			if rule.MaxLength > 0 && n > rule.MaxLength {
				add(f.Name, "%s must not exceed %d characters", f.Name, rule.MaxLength)
			}
		}

		// Numeric bounds apply to numbers only.
		if isNum {
			if rule.Min != nil && num < *rule.Min {
				add(f.Name, "%s must be at least %s", f.Name, trimFloat(*rule.Min))
			}
			if rule.Max != nil && num > *rule.Max {
				add(f.Name, "%s must not exceed %s", f.Name, trimFloat(*rule.Max))
			}
		}

		if rule.Pattern != nil && (!isStr || !rule.Pattern.MatchString(str)) {
			add(f.Name, "%s format is invalid", f.Name)
		}

		if len(rule.Enum) > 0 && (!isStr || !contains(rule.Enum, str)) {
			add(f.Name, "%s must be one of: %s", f.Name, strings.Join(rule.Enum, ", "))
		}
	}
	return out
}

// isEmpty reports whether a decoded JSON value counts as absent: nil, the
// empty string, numeric zero, or false.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return t == 0
	case bool:
		return !t
	default:
		return false
	}
}

// trimFloat formats a bound without a trailing ".0" for whole numbers, so
// messages read "at least 2" rather than "at least 2.000000".
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
