package cmd

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestScan_Stdin(t *testing.T) {
	kw := writeFile(t, "kw.txt", "he\nshe\nhers\n")
	out, _, err := run(t, strings.NewReader("ushers"), "scan", "-k", kw)
	require.NoError(t, err)
	assert.Equal(t, "-:1-4\tshe\n", out)
}

func TestScan_NoMatch(t *testing.T) {
	kw := writeFile(t, "kw.txt", "needle\n")
	out, _, err := run(t, strings.NewReader("haystack"), "scan", "-k", kw)
	assert.Empty(t, out)
	assert.Equal(t, 1, ExitCode(err))
}

func TestScan_FilesJSON(t *testing.T) {
	kw := writeFile(t, "kw.txt", "he\nshe => pronoun\n")
	a := writeFile(t, "a.txt", "she")
	b := writeFile(t, "b.txt", "the")
	out, _, err := run(t, nil, "scan", "-k", kw, "-m", "all", "--format", "json", a, b)
	require.NoError(t, err)

	var got []matchRecord
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var rec matchRecord
		require.NoError(t, dec.Decode(&rec))
		got = append(got, rec)
	}
	assert.Equal(t, []matchRecord{
		{File: a, Start: 0, End: 3, Value: "pronoun"},
		{File: a, Start: 1, End: 3, Value: "he"},
		{File: b, Start: 1, End: 3, Value: "he"},
	}, got)
}

func TestScan_Msgpack(t *testing.T) {
	kw := writeFile(t, "kw.txt", "cat\n")
	out, _, err := run(t, strings.NewReader("cat concat"), "scan", "-k", kw, "-m", "whole-word", "--format", "msgpack")
	require.NoError(t, err)

	dec := msgpack.NewDecoder(strings.NewReader(out))
	var rec matchRecord
	require.NoError(t, dec.Decode(&rec))
	assert.Equal(t, matchRecord{File: "-", Start: 0, End: 3, Value: "cat"}, rec)
	assert.ErrorIs(t, dec.Decode(&rec), io.EOF)
}

func TestScan_Count(t *testing.T) {
	kw := writeFile(t, "kw.txt", "a\nb\n")
	out, _, err := run(t, strings.NewReader("abaca"), "scan", "-k", kw, "--count")
	require.NoError(t, err)
	assert.Equal(t, "     3  a\n     1  b\n     4  total\n", out)
}

func TestScan_UTF16(t *testing.T) {
	kw := writeFile(t, "kw.txt", "été\n")
	var in bytes.Buffer
	var pair [2]byte
	for _, c := range "l'été" {
		binary.BigEndian.PutUint16(pair[:], uint16(c))
		in.Write(pair[:])
	}
	out, _, err := run(t, &in, "scan", "-k", kw, "--utf16", "be", "-i")
	require.NoError(t, err)
	assert.Equal(t, "-:2-5\tété\n", out)

	_, _, err = run(t, strings.NewReader(""), "scan", "-k", kw, "--utf16", "middle")
	assert.Error(t, err)
}

func TestScan_Config(t *testing.T) {
	kw := writeFile(t, "kw.txt", "Cat\n")
	cfg := writeFile(t, "acmatch.toml", "[match]\nkind = \"all\"\ncase_insensitive = true\n\n[output]\nformat = \"json\"\n\n[extra]\nx = 1\n")
	out, stderr, err := run(t, strings.NewReader("CAT"), "scan", "-k", kw, "-c", cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"file":"-","start":0,"end":3,"value":"Cat"}`, out)
	assert.Contains(t, stderr, "unknown key")

	out, _, err = run(t, strings.NewReader("CAT"), "scan", "-k", kw, "-c", cfg, "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "-:0-3\tCat\n", out)
}

func TestScan_BadFlags(t *testing.T) {
	kw := writeFile(t, "kw.txt", "x\n")
	_, _, err := run(t, strings.NewReader("x"), "scan", "-k", kw, "-m", "fuzzy")
	assert.Error(t, err)

	_, _, err = run(t, strings.NewReader("x"), "scan", "-k", kw, "--format", "xml")
	assert.Error(t, err)

	_, _, err = run(t, strings.NewReader("x"), "scan")
	assert.Error(t, err, "keywords flag is required")

	_, _, err = run(t, nil, "scan", "-k", kw, filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStats(t *testing.T) {
	kw := writeFile(t, "kw.txt", "he\nshe\nhis\nhers\n")
	out, _, err := run(t, nil, "stats", "-k", kw)
	require.NoError(t, err)
	assert.Contains(t, out, "kind:             leftmost-longest\n")
	assert.Contains(t, out, "keywords:         4\n")
	assert.Contains(t, out, "nodes:            10 (")
}

func TestCheck(t *testing.T) {
	kw := writeFile(t, "kw.txt", "ok\n\"as if\"\nok\n")

	out, _, err := run(t, nil, "check", "-k", kw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidKeywords))
	assert.Contains(t, out, "duplicate keyword")
	assert.Contains(t, out, "2 keywords, 1 problems\n")

	out, _, err = run(t, nil, "check", "-k", kw, "-m", "whole-word")
	require.Error(t, err)
	assert.Contains(t, out, "1 keywords, 2 problems\n")

	nested := writeFile(t, "nested.txt", "a\nab\nabc\n")
	out, _, err = run(t, nil, "check", "-k", nested, "-m", "leftmost-shortest")
	require.NoError(t, err)
	assert.Equal(t, "3 keywords, 0 problems\n", out)

	out, _, err = run(t, nil, "check", "-k", kw, "--prefix", "a")
	require.NoError(t, err)
	assert.Equal(t, "2\tas if\tas if\n", out)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, ExitCode(scanExit{1}))
	assert.Equal(t, -1, ExitCode(errors.New("other")))
	assert.Equal(t, -1, ExitCode(nil))
}
