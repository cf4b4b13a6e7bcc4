package hydrate

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizePrimitives(t *testing.T) {
	cases := []struct {
		name   string
		input  any
		expect any
	}{
		{name: "nil", input: nil, expect: nil},
		{name: "bool", input: true, expect: true},
		{name: "int", input: 42, expect: json.Number("42")},
		{name: "float", input: 2.5, expect: json.Number("2.5")},
		{name: "string", input: "hello", expect: "hello"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(tc.expect, got) {
				t.Errorf("normalized value mismatch:\nwant: %#v\n got: %#v", tc.expect, got)
			}
		})
	}
}

func TestNormalizeStruct(t *testing.T) {
	type window struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Title  string `json:"title"`
	}

	got, err := Normalize(window{Width: 800, Height: 600, Title: "main"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tree, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", got)
	}
	if tree["width"] != json.Number("800") {
		t.Errorf("expected width literal 800, got %#v", tree["width"])
	}
	if tree["title"] != "main" {
		t.Errorf("expected title main, got %#v", tree["title"])
	}
}

func TestNormalizeRejectsUnmarshalable(t *testing.T) {
	if _, err := Normalize(make(chan int)); err == nil {
		t.Fatalf("expected error for channel input")
	}
}

func TestNormalizeKeepsIntegerLiterals(t *testing.T) {
	got, err := Normalize(map[string]any{"count": int64(9007199254740993)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tree := got.(map[string]any)
	if tree["count"] != json.Number("9007199254740993") {
		t.Errorf("expected literal to survive beyond float64 precision, got %#v", tree["count"])
	}
}
