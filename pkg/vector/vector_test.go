package vector

import (
	"encoding/json"
	"testing"
)

func TestArithmetic(t *testing.T) {
	a := New(6, -4)
	b := New(2, 3)

	tests := []struct {
		name string
		got  Vec2
		want Vec2
	}{
		{name: "add", got: a.Add(b), want: New(8, -1)},
		{name: "sub", got: a.Sub(b), want: New(4, -7)},
		{name: "mul", got: a.Mul(b), want: New(12, -12)},
		{name: "div", got: a.Div(b), want: New(3, -4.0/3.0)},
		{name: "mod", got: a.Mod(b), want: New(0, -1)},
		{name: "pow", got: New(2, 3).Pow(New(3, 2)), want: New(8, 9)},
		{name: "scale", got: a.Scale(2), want: New(12, -8)},
		{name: "splat broadcast", got: a.Add(Splat(1)), want: New(7, -3)},
		{name: "neg", got: a.Neg(), want: New(-6, 4)},
		{name: "swap", got: a.Swap(), want: New(-4, 6)},
		{name: "max", got: a.Max(b), want: New(6, 3)},
		{name: "min", got: a.Min(b), want: New(2, -4)},
		{name: "round", got: New(1.5, -2.5).Round(), want: New(2, -3)},
		{name: "floor", got: New(1.7, -1.2).Floor(), want: New(1, -2)},
		{name: "ceil", got: New(1.2, -1.7).Ceil(), want: New(2, -1)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if !tc.got.Equal(tc.want) {
				t.Errorf("mismatch:\nwant: %v\n got: %v", tc.want, tc.got)
			}
		})
	}
}

func TestComparisons(t *testing.T) {
	if !New(1, 2).Less(New(3, 4)) {
		t.Errorf("expected both components smaller to report less")
	}
	if New(1, 5).Less(New(3, 4)) {
		t.Errorf("expected less to require both components")
	}
	if !New(3, 4).Greater(New(1, 2)) {
		t.Errorf("expected both components larger to report greater")
	}
	if New(3, 1).Greater(New(1, 2)) {
		t.Errorf("expected greater to require both components")
	}
	if !(Vec2{}).IsZero() {
		t.Errorf("expected the zero value to be the origin")
	}
	if New(0, 0.1).IsZero() {
		t.Errorf("expected a nonzero component to defeat IsZero")
	}
}

func TestString(t *testing.T) {
	if got := New(1.5, -2).String(); got != "x=1.5, y=-2" {
		t.Errorf("unexpected rendering: %q", got)
	}
}

func TestJSON(t *testing.T) {
	raw, err := json.Marshal(New(1.5, -2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != "[1.5,-2]" {
		t.Errorf("unexpected encoding: %s", raw)
	}

	var v Vec2
	if err := json.Unmarshal([]byte("[3,4.5]"), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Equal(New(3, 4.5)) {
		t.Errorf("unexpected value: %v", v)
	}

	if err := json.Unmarshal([]byte("[1,2,3]"), &v); err == nil {
		t.Fatalf("expected an error for a three element array")
	}
	if err := json.Unmarshal([]byte(`"1,2"`), &v); err == nil {
		t.Fatalf("expected an error for a non-array value")
	}
}
