package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selector-inspector/internal/entity"
)

const fixture = `<html><body>
<h1>Title</h1>
<button data-testid="save">Save</button>
<a href="/docs" id="docs">Docs</a>
<input type="email" aria-label="Email">
</body></html>`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestInferFromStdinJSON(t *testing.T) {
	out, err := execute(t, fixture, "infer", "-", "--format", "json")
	require.NoError(t, err)

	var snap entity.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))

	var selectors []string
	for _, e := range snap.Entries {
		selectors = append(selectors, e.Selector.Text)
	}
	assert.Equal(t, []string{
		`[data-testid="save"]`,
		`#docs`,
		`role=textbox[name="Email"]`,
	}, selectors)
}

func TestInferFromFileWithTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	out, err := execute(t, "", "infer", path, "--tag", "h1", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: role-name")
	assert.Contains(t, out, "role=heading[name=")
	assert.NotContains(t, out, "data-testid")
}

func TestInferRejectsBadFlags(t *testing.T) {
	_, err := execute(t, fixture, "infer", "-", "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t, fixture, "infer", "-", "--max-depth", "0")
	assert.Error(t, err)

	_, err = execute(t, "", "infer", filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
