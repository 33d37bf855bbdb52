package xpath

import (
	"math"
	"testing"
)

func TestObjectToBoolCoercions(t *testing.T) {
	cases := []struct {
		obj  Object
		want bool
	}{
		{NodeSet(nil), false},
		{StringObject(""), false},
		{StringObject("x"), true},
		{NumberObject(0), false},
		{NumberObject(math.NaN()), false},
		{NumberObject(-1), true},
		{BoolObject(false), false},
	}
	for _, c := range cases {
		if got := c.obj.ToBool(); got != c.want {
			t.Errorf("ToBool(%+v) = %v, want %v", c.obj, got, c.want)
		}
	}
}

func TestObjectToNumberFromString(t *testing.T) {
	if n := StringObject("  42  ").ToNumber(); n != 42 {
		t.Errorf("got %v, want 42", n)
	}
	if n := StringObject("abc").ToNumber(); !math.IsNaN(n) {
		t.Errorf("got %v, want NaN", n)
	}
}

func TestObjectToStringFormatsNumbers(t *testing.T) {
	if s := NumberObject(4).ToString(); s != "4" {
		t.Errorf("got %q, want %q", s, "4")
	}
	if s := NumberObject(math.Inf(1)).ToString(); s != "Infinity" {
		t.Errorf("got %q, want Infinity", s)
	}
	if s := NumberObject(math.NaN()).ToString(); s != "NaN" {
		t.Errorf("got %q, want NaN", s)
	}
}

func TestFormatNumberNoExponentialNotation(t *testing.T) {
	got := formatNumber(123456789)
	if got != "123456789" {
		t.Errorf("got %q, want %q", got, "123456789")
	}
	if got := formatNumber(-0.0); got != "0" {
		t.Errorf("negative zero: got %q, want %q", got, "0")
	}
}
