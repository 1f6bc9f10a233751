package validator

import (
	"errors"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidYearMonth(t *testing.T) {
	cases := []struct {
		input string
		year  int
		month int
		ok    bool
	}{
		{"202401", 2024, 1, true},
		{"202412", 2024, 12, true},
		{"202413", 0, 0, false},
		{"202400", 0, 0, false},
		{"2024-1", 0, 0, false},
		{"20241", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, c := range cases {
		y, m, ok := IsValidYearMonth(c.input)
		if ok != c.ok || y != c.year || m != c.month {
			t.Errorf("IsValidYearMonth(%q) = (%d, %d, %v), want (%d, %d, %v)", c.input, y, m, ok, c.year, c.month, c.ok)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	var err error = ValidationErrors{
		{Field: "year", Message: "required"},
		{Field: "month", Message: "out of range"},
	}
	if err.Error() != "year: required; month: out of range" {
		t.Errorf("Error() = %q", err.Error())
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatal("errors.As should match ValidationErrors")
	}
	m := verrs.ToMap()
	if m["month"] != "out of range" {
		t.Errorf("ToMap()[month] = %q", m["month"])
	}

	single := Single("employee_id", "is required")
	if len(single) != 1 || single[0].Field != "employee_id" {
		t.Errorf("Single() = %+v", single)
	}
}
