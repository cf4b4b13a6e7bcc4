// Package ident provides compact identifier encodings: hex and UUID values
// shortened to unpadded base64url for URLs and filenames, plus a JAN/EAN-13
// check digit calculator.
package ident

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CompactHex encodes a hex string as unpadded base64url. Odd-length input
// is zero-padded on the left first, so the expansion may gain a leading
// zero digit.
func CompactHex(hexStr string) (string, error) {
	if len(hexStr)%2 == 1 {
		hexStr = "0" + hexStr
	}
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return "", fmt.Errorf("ident: decode hex: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// ExpandHex reverses CompactHex, returning uppercase hex.
func ExpandHex(compact string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(compact)
	if err != nil {
		return "", fmt.Errorf("ident: decode base64: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(raw)), nil
}

// Compact encodes a UUID as 22 base64url characters.
func Compact(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// Expand reverses Compact.
func Expand(compact string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(compact)
	if err != nil {
		return uuid.Nil, fmt.Errorf("ident: decode base64: %w", err)
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("ident: expand uuid: %w", err)
	}
	return id, nil
}

// CheckDigit computes the JAN/EAN-13 check digit over the first 12 digits
// of code. code must hold 12 or 13 digits; a present 13th digit is ignored
// so existing codes can be verified against the result.
func CheckDigit(code string) (int, error) {
	if len(code) != 12 && len(code) != 13 {
		return 0, fmt.Errorf("ident: check digit needs 12 or 13 digits, got %d", len(code))
	}
	var evenSum, oddSum int
	for i, r := range code[:12] {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("ident: check digit input must be numeric, got %q", code)
		}
		d := int(r - '0')
		if (i+1)%2 == 0 {
			evenSum += d
		} else {
			oddSum += d
		}
	}
	return (10 - (evenSum*3+oddSum)%10) % 10, nil
}
