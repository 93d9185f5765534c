// Package input turns the textual byte dumps people paste from logs and
// debuggers into raw bytes.
package input

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/guileen/keyguess/errors"
)

// Notation is the textual form a byte string was written in.
type Notation string

const (
	NotationRust Notation = "rust" // [1, 2, 3]
	NotationGo   Notation = "go"   // [1 2 3]
	NotationHex  Notation = "hex"  // 010203
)

// Notations lists every notation in the order Parse tries them.
var Notations = []Notation{NotationRust, NotationGo, NotationHex}

// ParseHex decodes a hex string.
func ParseHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCodeInvalidInput, "ParseHex", "invalid hex encoded")
	}
	return b, nil
}

// ParseGoPrint decodes the output of fmt.Print on a []byte, such as
// "[104 105]". Brackets are optional.
func ParseGoPrint(s string) ([]byte, error) {
	body := unbracket(s)
	return parseDecimals(strings.Fields(body), "ParseGoPrint", "invalid go print encoded")
}

// ParseRustPrint decodes a debug-printed byte vector such as "[104, 105]".
// Brackets are optional.
func ParseRustPrint(s string) ([]byte, error) {
	body := unbracket(s)
	if strings.TrimSpace(body) == "" {
		return []byte{}, nil
	}
	parts := strings.Split(body, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parseDecimals(parts, "ParseRustPrint", "invalid rust print encoded")
}

// ParseAs decodes s in the given notation.
func ParseAs(n Notation, s string) ([]byte, error) {
	switch n {
	case NotationRust:
		return ParseRustPrint(s)
	case NotationGo:
		return ParseGoPrint(s)
	case NotationHex:
		return ParseHex(s)
	default:
		return nil, errors.Errorf(errors.ErrCodeValidation, "unknown notation %q", string(n))
	}
}

// Parse tries each notation in turn and returns the first that succeeds.
func Parse(s string) ([]byte, error) {
	b, _, err := Detect(s)
	return b, err
}

// Detect is Parse that also reports which notation matched.
func Detect(s string) ([]byte, Notation, error) {
	s = strings.TrimSpace(s)
	failures := make([]string, 0, len(Notations))
	for _, n := range Notations {
		b, err := ParseAs(n, s)
		if err == nil {
			return b, n, nil
		}
		failures = append(failures, err.Error())
	}
	return nil, "", errors.Errorf(errors.ErrCodeInvalidInput,
		"cannot parse input %q: %s", s, strings.Join(failures, "; "))
}

func unbracket(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	return strings.TrimSuffix(s, "]")
}

func parseDecimals(parts []string, op, msg string) ([]byte, error) {
	out := make([]byte, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrCodeInvalidInput, op, "%s", msg)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
