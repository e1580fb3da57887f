package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/storygraph/internal/core/model"
)

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "assets.json")
	out := filepath.Join(dir, "assets.ndjson")
	require.NoError(t, os.WriteFile(in, []byte(`[
  {"ipId": "0xa1", "nftMetadata": {"tokenContract": "0xc1"}},
  {"ipId": "0xa2", "rootIpIds": ["0xa1"]}
]`), 0o644))

	n, err := ConvertFile(in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		`{"ipId":"0xa1","nftMetadata":{"tokenContract":"0xc1"}}`+"\n"+
			`{"ipId":"0xa2","rootIpIds":["0xa1"]}`+"\n",
		string(data))
}

func TestConvertFile_NotAnArray(t *testing.T) {
	in := filepath.Join(t.TempDir(), "assets.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"ipId":"x"}`), 0o644))

	_, err := ConvertFile(in, filepath.Join(t.TempDir(), "out.ndjson"))
	assert.ErrorContains(t, err, "JSON array")
}

func TestMergePages(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("assets-page-2.json", `{"data":{"data":[{"ipId":"c"}]}}`)
	write("assets-page-1.json", `{"data":{"data":[{"ipId":"a"},{"ipId":"b"}]}}`)
	write("notes.txt", `ignored`)

	out := filepath.Join(t.TempDir(), "assets.json")
	n, err := MergePages(dir, out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var merged []map[string]string
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &merged))
	assert.Equal(t, "a", merged[0]["ipId"])
	assert.Equal(t, "c", merged[2]["ipId"])
}

func TestViewCommand(t *testing.T) {
	var lines []string
	for i := 1; i <= 6; i++ {
		lines = append(lines, `{"ipId":"a`+string(rune('0'+i))+`","nftMetadata":{"tokenContract":"0xc1"}}`)
	}
	input := filepath.Join(t.TempDir(), "assets.ndjson")
	require.NoError(t, os.WriteFile(input, []byte(strings.Join(lines, "\n")), 0o644))

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"view", "--mode", "community", "--input", input})
	t.Cleanup(func() { RootCmd.SetOut(nil); RootCmd.SetArgs(nil) })

	require.NoError(t, RootCmd.Execute())

	var v model.View
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	assert.Equal(t, model.ModeCommunity, v.Mode)
	require.Len(t, v.Nodes, 1)
	assert.Equal(t, 6, v.Nodes[0].MemberCount)
}

func TestViewCommand_UnknownMode(t *testing.T) {
	input := filepath.Join(t.TempDir(), "assets.ndjson")
	require.NoError(t, os.WriteFile(input, nil, 0o644))

	RootCmd.SetOut(&bytes.Buffer{})
	RootCmd.SetErr(&bytes.Buffer{})
	RootCmd.SetArgs([]string{"view", "--mode", "radial", "--input", input})
	t.Cleanup(func() { RootCmd.SetOut(nil); RootCmd.SetErr(nil); RootCmd.SetArgs(nil); viewMode = model.ModeCommunity })

	assert.ErrorContains(t, RootCmd.Execute(), "unknown mode")
}
