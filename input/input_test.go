package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guileen/keyguess/errors"
)

var rowKey = []byte{116, 128, 0, 0, 0, 0, 0, 0, 53, 95, 114, 128, 0, 0, 0, 0, 0, 0, 1}

func TestParseGoPrint(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"68 66 58 49", "DB:1"},
		{"[84 97 98 108 101 58 53 51]", "Table:53"},
		{"  [104  105]\n", "hi"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			b, err := ParseGoPrint(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(b))
		})
	}

	_, err := ParseGoPrint("1, 2")
	assert.True(t, errors.IsInvalidInput(err))
	_, err = ParseGoPrint("256")
	assert.True(t, errors.IsInvalidInput(err))
}

func TestParseRustPrint(t *testing.T) {
	b, err := ParseRustPrint("[116, 128, 0, 0, 0, 0, 0, 0, 53, 95, 114, 128, 0, 0, 0, 0, 0, 0, 1]")
	require.NoError(t, err)
	assert.Equal(t, rowKey, b)

	b, err = ParseRustPrint("1,2 ,3")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	b, err = ParseRustPrint("[]")
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = ParseRustPrint("[1 2]")
	assert.True(t, errors.IsInvalidInput(err))
	_, err = ParseRustPrint("1,,2")
	assert.True(t, errors.IsInvalidInput(err))
}

func TestParseHex(t *testing.T) {
	b, err := ParseHex("7480000000000000355f728000000000000001")
	require.NoError(t, err)
	assert.Equal(t, rowKey, b)

	_, err = ParseHex("abc")
	assert.True(t, errors.IsInvalidInput(err))
}

func TestDetect(t *testing.T) {
	cases := []struct {
		in       string
		want     []byte
		notation Notation
	}{
		{"[1, 2, 3]", []byte{1, 2, 3}, NotationRust},
		{"[1 2 3]", []byte{1, 2, 3}, NotationGo},
		{"7480000000000000355f728000000000000001", rowKey, NotationHex},
		// a lone decimal is read as rust before hex
		{"12", []byte{12}, NotationRust},
		{"  0a0b  ", []byte{10, 11}, NotationHex},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			b, n, err := Detect(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, b)
			assert.Equal(t, tc.notation, n)
		})
	}
}

func TestParseFailureNamesEveryNotation(t *testing.T) {
	_, err := Parse("not bytes")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "rust")
	assert.Contains(t, err.Error(), "go print")
	assert.Contains(t, err.Error(), "hex")
}

func TestParseAsUnknownNotation(t *testing.T) {
	_, err := ParseAs(Notation("base64"), "AA==")
	assert.True(t, errors.IsValidationError(err))
}
