package rsaattack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestJSONParser(t *testing.T) {
	path := writeFixture(t, "set.json", `[
  {"n": "3233", "e": 17, "c": "0xae6"},
  {"n": 3233, "e": "7", "c": 1317}
]`)

	set, err := (&JSONParser{}).ParseCiphertexts(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3233), set.N.Int64())
	require.Len(t, set.Ciphertexts, 2)
	assert.Equal(t, int64(17), set.Ciphertexts[0].E.Int64())
	assert.Equal(t, int64(2790), set.Ciphertexts[0].C.Int64())
	assert.Equal(t, int64(7), set.Ciphertexts[1].E.Int64())
	assert.Equal(t, int64(1317), set.Ciphertexts[1].C.Int64())
}

func TestJSONParserCustomFields(t *testing.T) {
	path := writeFixture(t, "set.json", `[
  {"modulus": "3233", "exponent": 17, "ciphertext": 2790},
  {"modulus": "3233", "exponent": 7, "ciphertext": 1317}
]`)

	p := &JSONParser{NField: "modulus", EField: "exponent", CField: "ciphertext"}
	set, err := p.ParseCiphertexts(path)
	require.NoError(t, err)
	assert.Len(t, set.Ciphertexts, 2)
}

func TestJSONParserErrors(t *testing.T) {
	tests := map[string]string{
		"malformed":        `[{"n": 3233`,
		"missing field":    `[{"n": 3233, "e": 17}, {"n": 3233, "e": 7, "c": 1}]`,
		"bad number":       `[{"n": "x", "e": 17, "c": 1}, {"n": 3233, "e": 7, "c": 1}]`,
		"modulus mismatch": `[{"n": 3233, "e": 17, "c": 1}, {"n": 3234, "e": 7, "c": 1}]`,
		"zero exponent":    `[{"n": 3233, "e": 0, "c": 1}, {"n": 3233, "e": 7, "c": 1}]`,
		"single record":    `[{"n": 3233, "e": 17, "c": 1}]`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFixture(t, "set.json", content)
			_, err := (&JSONParser{}).ParseCiphertexts(path)
			assert.Error(t, err)
		})
	}

	_, err := (&JSONParser{}).ParseCiphertexts(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCSVParser(t *testing.T) {
	path := writeFixture(t, "set.csv", "c,e,n\n2790, 17, 3233\n0x525, 7, 3233\n")

	set, err := (&CSVParser{}).ParseCiphertexts(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3233), set.N.Int64())
	require.Len(t, set.Ciphertexts, 2)
	assert.Equal(t, int64(1317), set.Ciphertexts[1].C.Int64())
}

func TestCSVParserErrors(t *testing.T) {
	tests := map[string]string{
		"missing column":   "n,e\n3233,17\n3233,7\n",
		"bad number":       "n,e,c\n3233,17,zz\n3233,7,1\n",
		"modulus mismatch": "n,e,c\n3233,17,1\n3234,7,1\n",
		"single record":    "n,e,c\n3233,17,1\n",
		"empty":            "",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFixture(t, "set.csv", content)
			_, err := (&CSVParser{}).ParseCiphertexts(path)
			assert.Error(t, err)
		})
	}
}

func TestClient_RecoverPlaintextFromFile(t *testing.T) {
	path := writeFixture(t, "set.csv", "n,e,c\n3233,17,2790\n3233,7,1317\n")

	result, err := NewClient().WithParser(&CSVParser{}).RecoverPlaintextFromFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(65), result.Message.Int64())
	assert.True(t, result.Verified)

	_, err = NewClient().RecoverPlaintextFromFile(context.Background(), path)
	assert.Error(t, err, "JSON parser on a CSV file")
}
