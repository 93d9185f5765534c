package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/errors"
	"github.com/guileen/keyguess/input"
	"github.com/guileen/keyguess/logger"
	"github.com/guileen/keyguess/mvcc"
	"github.com/guileen/keyguess/protocol/api"
	"github.com/guileen/keyguess/storage"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := logger.L()
	t.Cleanup(func() { logger.SetLogger(prev) })

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestEncodeCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		hex  string
	}{
		{"memcomparable", []string{"encode", "memcomparable", "[1, 2, 3]"}, "010203000000000000fa"},
		{"memcomparable empty", []string{"encode", "memcomparable", "[]"}, "0000000000000000f7"},
		{"varint", []string{"encode", "varint", "300"}, "ac02"},
		{"varint hex literal", []string{"encode", "varint", "0x80"}, "8001"},
		{"endian big", []string{"encode", "endian", "258"}, "0000000000000102"},
		{"endian little", []string{"encode", "endian", "258", "--order", "little"}, "0201000000000000"},
		{"record", []string{"record", "encode", "53", "1"}, "7480000000000000355f728000000000000001"},
		{"write", []string{"write", "encode", "--short-value", "[0]"}, "5000760100"},
		{"write fence", []string{"write", "encode", "--type", "D", "--start-ts", "7", "--overlapped-rollback", "--gc-fence", "9"}, "44075246" + "0000000000000009"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			resp := decode[api.BytesResponse](t, out)
			assert.Equal(t, tt.hex, resp.Output.Hex)
		})
	}
}

func TestEncodeReportsNotation(t *testing.T) {
	out, err := run(t, "encode", "memcomparable", "[1 2 3]")
	require.NoError(t, err)
	assert.Equal(t, "go", decode[api.BytesResponse](t, out).Notation)
}

func TestDecodeCommands(t *testing.T) {
	out, err := run(t, "decode", "memcomparable", "010203000000000000fa")
	require.NoError(t, err)
	assert.Equal(t, api.ByteArray{1, 2, 3}, decode[api.BytesResponse](t, out).Output.Decimal)

	out, err = run(t, "decode", "varint", "ac02")
	require.NoError(t, err)
	vr := decode[api.VarintDecodeResponse](t, out)
	assert.Equal(t, uint64(300), vr.Value)
	assert.Equal(t, 2, vr.Width)

	out, err = run(t, "decode", "endian", "[2, 1, 0, 0, 0, 0, 0, 0]", "--order", "little")
	require.NoError(t, err)
	assert.Equal(t, uint64(258), decode[api.EndianDecodeResponse](t, out).Value)
}

func TestDecodeErrorsCarryCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"bad group", []string{"decode", "memcomparable", "[1, 2]"}, errors.ErrCodeMalformedEncoding},
		{"short endian", []string{"decode", "endian", "[1, 2]"}, errors.ErrCodeTruncatedInput},
		{"bad record", []string{"record", "parse", "[1, 2, 3]"}, errors.ErrCodeInvalidRecordFormat},
		{"bad write", []string{"write", "parse", "[88, 0]"}, errors.ErrCodeUnknownWriteType},
		{"bad input", []string{"guess", "zz"}, errors.ErrCodeInvalidInput},
		{"bad order", []string{"encode", "endian", "1", "--order", "middle"}, errors.ErrCodeValidation},
		{"bad integer", []string{"encode", "varint", "lots"}, errors.ErrCodeValidation},
		{"bad type", []string{"write", "encode", "--type", "Commit"}, errors.ErrCodeUnknownWriteType},
		{"bad output", []string{"-o", "yaml", "guess", "00"}, errors.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.Code(err))
		})
	}
}

func TestRecordParseText(t *testing.T) {
	out, err := run(t, "-o", "text", "record", "parse", "[116, 128, 0, 0, 0, 0, 0, 0, 53, 95, 114, 128, 0, 0, 0, 0, 0, 0, 1]")
	require.NoError(t, err)
	assert.Contains(t, out, "table_id: 53")
	assert.Contains(t, out, "row_id:   1")
}

func TestWriteParse(t *testing.T) {
	out, err := run(t, "write", "parse", "[80, 0, 118, 1, 0]", "--trace")
	require.NoError(t, err)

	resp := decode[api.WriteParseResponse](t, out)
	require.NotNil(t, resp.Write)
	assert.Equal(t, mvcc.WriteTypePut, resp.Write.WriteType)
	assert.Equal(t, []byte{0}, resp.Write.ShortValue())
	require.NotEmpty(t, resp.Spans)
	assert.Equal(t, mvcc.FieldWriteType, resp.Spans[0].Field)
	assert.Zero(t, resp.Unparsed)

	out, err = run(t, "write", "parse", "[80, 0]")
	require.NoError(t, err)
	assert.Empty(t, decode[api.WriteParseResponse](t, out).Spans)
}

func TestGuess(t *testing.T) {
	out, err := run(t, "guess", "7480000000000000355f728000000000000001")
	require.NoError(t, err)
	var report struct {
		Record struct {
			OK     bool          `json:"ok"`
			Record *codec.Record `json:"record"`
		} `json:"record"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Record.OK)
	assert.Equal(t, &codec.Record{TableID: 53, RowID: 1}, report.Record.Record)

	out, err = run(t, "-o", "text", "guess", "7480000000000000355f728000000000000001")
	require.NoError(t, err)
	assert.Contains(t, out, "record:        t53_r1")

	out, err = run(t, "-o", "text", "guess", "7480000000000000355f728000000000000001dead")
	require.NoError(t, err)
	assert.Contains(t, out, "record:        t53_r1 (2 trailing bytes)")
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(storage.TestPebbleConfig(dir))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, codec.EncodeRecord(codec.Record{TableID: 53, RowID: 1}), []byte{80, 0}))
	require.NoError(t, store.Put(ctx, codec.EncodeRecord(codec.Record{TableID: 54, RowID: 1}), []byte{80, 0}))
	require.NoError(t, store.Close())

	out, err := run(t, "scan", "--data-dir", dir, "--limit", "10")
	require.NoError(t, err)
	assert.Equal(t, 2, decode[api.ScanResponse](t, out).Count)

	out, err = run(t, "scan", "--data-dir", dir, "--prefix", "[116, 128, 0, 0, 0, 0, 0, 0, 54]")
	require.NoError(t, err)
	resp := decode[api.ScanResponse](t, out)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "748000000000000036", resp.Entries[0].Key[:18])
	assert.True(t, resp.Entries[0].KeyReport.Record.OK)
}

func TestScanExamplePrefixSelectsRowKeys(t *testing.T) {
	m := regexp.MustCompile(`--prefix "([^"]+)"`).FindStringSubmatch(newScanCmd(&app{}).Example)
	require.Len(t, m, 2)

	prefix, err := input.Parse(m[1])
	require.NoError(t, err)
	assert.Equal(t, []byte{byte(codec.KeyTypeTable)}, prefix)
}
