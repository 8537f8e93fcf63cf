package validation

import (
	"reflect"
	"regexp"
	"testing"
)

func f64(v float64) *float64 { return &v }

func userSchema() Schema {
	return Schema{
		{Name: "email", Rule: Rule{Required: true, Type: TypeEmail}},
		{Name: "name", Rule: Rule{Required: true, Type: TypeString, MinLength: 2, MaxLength: 100}},
	}
}

func TestValidate_AllViolationsAccumulated(t *testing.T) {
	got := userSchema().Validate(map[string]any{
		"email": "not-an-email",
		"name":  "A",
	})
	want := []string{
		"email must be a valid email",
		"name must be at least 2 characters",
	}
	if !reflect.DeepEqual(Messages(got), want) {
		t.Fatalf("violations = %v, want %v", Messages(got), want)
	}
	if j := Join(got); j != "email must be a valid email; name must be at least 2 characters" {
		t.Fatalf("joined = %q", j)
	}
}

func TestValidate_RequiredShortCircuitsPerField(t *testing.T) {
	// email is both required and typed; only the required message may appear.
	got := userSchema().Validate(map[string]any{"name": "Bob"})
	want := []string{"email is required"}
	if !reflect.DeepEqual(Messages(got), want) {
		t.Fatalf("violations = %v, want %v", Messages(got), want)
	}
}

func TestValidate_EmptySchemaAlwaysPasses(t *testing.T) {
	payloads := []map[string]any{
		nil,
		{},
		{"anything": "goes", "n": 42.0},
	}
	for _, p := range payloads {
		if got := (Schema{}).Validate(p); len(got) != 0 {
			t.Fatalf("empty schema produced violations for %v: %v", p, got)
		}
	}
}

func TestValidate_OptionalAbsentFieldSkipped(t *testing.T) {
	s := Schema{
		{Name: "name", Rule: Rule{Type: TypeString, MinLength: 2}},
	}
	if got := s.Validate(map[string]any{}); len(got) != 0 {
		t.Fatalf("optional absent field produced violations: %v", got)
	}
	// Empty string counts as absent for an optional field too.
	if got := s.Validate(map[string]any{"name": ""}); len(got) != 0 {
		t.Fatalf("optional empty field produced violations: %v", got)
	}
}

func TestValidate_FieldAccumulatesMultipleRuleBreaches(t *testing.T) {
	s := Schema{
		{Name: "code", Rule: Rule{
			Type:      TypeString,
			MinLength: 4,
			Pattern:   regexp.MustCompile(`^[A-Z]+$`),
			Enum:      []string{"ABCD", "EFGH"},
		}},
	}
	got := s.Validate(map[string]any{"code": "ab"})
	want := []string{
		"code must be at least 4 characters",
		"code format is invalid",
		"code must be one of: ABCD, EFGH",
	}
	if !reflect.DeepEqual(Messages(got), want) {
		t.Fatalf("violations = %v, want %v", Messages(got), want)
	}
}

func TestValidate_TypeChecks(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		value   any
		want    []string
	}{
		{"email_ok", Rule{Type: TypeEmail}, "a@b.co", nil},
		{"email_missing_tld", Rule{Type: TypeEmail}, "a@b", []string{"v must be a valid email"}},
		{"email_whitespace", Rule{Type: TypeEmail}, "a @b.co", []string{"v must be a valid email"}},
		{"email_not_string", Rule{Type: TypeEmail}, 3.0, []string{"v must be a valid email"}},
		{"number_ok", Rule{Type: TypeNumber}, 12.5, nil},
		{"number_string", Rule{Type: TypeNumber}, "12", []string{"v must be a number"}},
		{"string_ok", Rule{Type: TypeString}, "hi", nil},
		{"string_number", Rule{Type: TypeString}, 1.0, []string{"v must be a string"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Schema{{Name: "v", Rule: tc.rule}}
			got := Messages(s.Validate(map[string]any{"v": tc.value}))
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("violations = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidate_NumericBounds(t *testing.T) {
	s := Schema{
		{Name: "age", Rule: Rule{Type: TypeNumber, Min: f64(18), Max: f64(120)}},
	}
	if got := s.Validate(map[string]any{"age": 17.0}); Join(got) != "age must be at least 18" {
		t.Fatalf("min violation = %q", Join(got))
	}
	if got := s.Validate(map[string]any{"age": 140.0}); Join(got) != "age must not exceed 120" {
		t.Fatalf("max violation = %q", Join(got))
	}
	if got := s.Validate(map[string]any{"age": 30.0}); len(got) != 0 {
		t.Fatalf("in-range value produced violations: %v", got)
	}
}

func TestValidate_ZeroBoundStillChecked(t *testing.T) {
	// Min = 0 must remain an active bound (pointer semantics).
	s := Schema{
		{Name: "delta", Rule: Rule{Type: TypeNumber, Min: f64(0)}},
	}
	got := s.Validate(map[string]any{"delta": -1.0})
	if Join(got) != "delta must be at least 0" {
		t.Fatalf("violation = %q", Join(got))
	}
}

func TestValidate_MaxLength(t *testing.T) {
	s := Schema{
		{Name: "name", Rule: Rule{Type: TypeString, MaxLength: 3}},
	}
	got := s.Validate(map[string]any{"name": "toolong"})
	if Join(got) != "name must not exceed 3 characters" {
		t.Fatalf("violation = %q", Join(got))
	}
}

func TestValidate_DoesNotMutateInputs(t *testing.T) {
	s := userSchema()
	payload := map[string]any{"email": "x@y.zz", "name": "Jo"}
	_ = s.Validate(payload)
	if len(payload) != 2 || payload["email"] != "x@y.zz" || payload["name"] != "Jo" {
		t.Fatalf("payload mutated: %v", payload)
	}
}

func TestValidate_DeterministicOrdering(t *testing.T) {
	s := Schema{
		{Name: "a", Rule: Rule{Required: true}},
		{Name: "b", Rule: Rule{Required: true}},
		{Name: "c", Rule: Rule{Required: true}},
	}
	want := []string{"a is required", "b is required", "c is required"}
	for i := 0; i < 20; i++ {
		got := Messages(s.Validate(map[string]any{}))
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: violations = %v, want %v", i, got, want)
		}
	}
}
