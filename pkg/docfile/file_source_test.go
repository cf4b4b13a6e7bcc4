package docfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-jsondata/document"
	"github.com/goliatone/go-jsondata/pkg/docfile"
)

func TestFileSourceWriteFormatsDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	doc, err := document.Decode([]byte(`{"b": 1, "a": {"c": "<tag>"}, "j": "日本語"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	source := docfile.NewFileSource()
	if err := source.Write(path, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{
    "a": {
        "c": "<tag>"
    },
    "b": 1,
    "j": "日本語"
}
`
	if string(raw) != want {
		t.Errorf("formatting mismatch:\nwant: %q\n got: %q", want, string(raw))
	}
}

func TestFileSourceWriteCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "settings.json")

	source := docfile.NewFileSource()
	if err := source.Write(path, document.Object(nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !source.Exists(path) {
		t.Errorf("expected document to exist after writing through missing directories")
	}
}

func TestFileSourceHTMLEscaping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "escaped.json")

	doc, err := document.Decode([]byte(`{"a": "<tag>"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	source := docfile.NewFileSource(docfile.WithHTMLEscaping(true))
	if err := source.Write(path, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "{\n    \"a\": \"\\u003ctag\\u003e\"\n}\n"
	if string(raw) != want {
		t.Errorf("expected HTML-escaped output:\nwant: %q\n got: %q", want, string(raw))
	}
}

func TestFileSourceWriteIsByteStable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stable.json")

	doc, err := document.Decode([]byte(`{"counter": 3, "flags": {"on": true}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	source := docfile.NewFileSource()
	if err := source.Write(path, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := source.Write(path, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("expected repeated writes to produce identical bytes:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestFileSourceReadWrapsIOFailures(t *testing.T) {
	dir := t.TempDir()

	_, ok, err := docfile.NewFileSource().Read(dir)
	if ok {
		t.Errorf("expected ok=false when the path is not a readable file")
	}
	if err == nil {
		t.Fatalf("expected an error when reading a directory")
	}
	var parseErr *docfile.ParseError
	if errors.As(err, &parseErr) {
		t.Errorf("expected an IO failure, not a parse failure: %v", err)
	}
}

func TestFileSourceExists(t *testing.T) {
	dir := t.TempDir()

	source := docfile.NewFileSource()
	if source.Exists(dir) {
		t.Errorf("expected Exists to reject directories")
	}
	if source.Exists(filepath.Join(dir, "missing.json")) {
		t.Errorf("expected Exists to reject missing paths")
	}
}

func TestFormat(t *testing.T) {
	doc, err := document.Decode([]byte(`{"b": [1, 2], "a": null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := docfile.Format(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{
    "a": null,
    "b": [
        1,
        2
    ]
}`
	if got != want {
		t.Errorf("format mismatch:\nwant: %q\n got: %q", want, got)
	}
}

func TestFormatCustomIndent(t *testing.T) {
	doc, err := document.Decode([]byte(`{"a": 1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := docfile.Format(doc, docfile.WithIndent("  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "{\n  \"a\": 1\n}"
	if got != want {
		t.Errorf("format mismatch:\nwant: %q\n got: %q", want, got)
	}
}
