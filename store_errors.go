package jsondata

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-jsondata/document"
)

// ErrSaveRefused marks a save rejected because the backing document never
// loaded cleanly. Fix the document and call Load before saving again.
var ErrSaveRefused = errors.New("save refused: document never loaded cleanly")

// StoreError captures operation metadata alongside the originating error.
type StoreError struct {
	Op   string
	Path string
	Keys string
	Err  error
}

func (e *StoreError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("jsondata: %s %s keys=%s: %v", e.Op, describePath(e.Path), e.Keys, e.Err)
}

func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describePath(path string) string {
	if path == "" {
		return "path=<empty>"
	}
	return fmt.Sprintf("path=%q", path)
}

func wrapStoreError(op, path string, keys document.Path, err error) error {
	if err == nil {
		return nil
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		if storeErr.Op == "" {
			storeErr.Op = op
		}
		if storeErr.Path == "" {
			storeErr.Path = path
		}
		if storeErr.Keys == "" {
			storeErr.Keys = keys.String()
		}
		return storeErr
	}

	return &StoreError{
		Op:   op,
		Path: path,
		Keys: keys.String(),
		Err:  err,
	}
}
