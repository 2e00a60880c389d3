package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathreach/analyzer/model"
)

func TestWriteTextNoFindings(t *testing.T) {
	var buf bytes.Buffer
	opts := NewDefaultOptions()
	err := Write(&buf, nil, opts)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no unreachable branches found")
}

func TestWriteTextUnreachable(t *testing.T) {
	var buf bytes.Buffer
	opts := NewDefaultOptions()
	err := Write(&buf, []model.PathNote{{StartLine: 3, EndLine: 5, Reachable: false}}, opts)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "line 3-5: unreachable")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := NewDefaultOptions()
	opts.Format = FormatJSON
	notes := []model.PathNote{{StartLine: 1, EndLine: 2, Reachable: false}}
	err := Write(&buf, notes, opts)
	require.NoError(t, err)

	var decoded []model.PathNote
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, notes, decoded)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	opts := NewDefaultOptions()
	opts.Format = FormatCSV
	notes := []model.PathNote{{StartLine: 1, EndLine: 2, Reachable: false}}
	err := Write(&buf, notes, opts)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "false")
}

func TestWriteSARIF(t *testing.T) {
	var buf bytes.Buffer
	opts := NewDefaultOptions()
	opts.Format = FormatSARIF
	notes := []model.PathNote{{StartLine: 3, EndLine: 5, Reachable: false}}
	err := Write(&buf, notes, opts)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"version\"")
	assert.Contains(t, buf.String(), "unreachable-branch")
}
