package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/docsync/pkg/repos"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"wide", FormatWide, false},
		{"", Format(""), false},
		{"xml", Format(""), true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{Indent: "  "}
	err := f.Format(&buf, map[string]string{"name": "docsync"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"name": "docsync"`)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.Format(&buf, Data{
		Headers: []string{"NAME", "STATUS"},
		Rows:    [][]string{{"sqlite", "ready"}},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "sqlite")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.Format(&buf, []string{"a", "b"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"a"`)
}

func TestViewsToTableData(t *testing.T) {
	views := []repos.View{
		{Name: "sqlite", URL: "https://github.com/sqlite/sqlite", Status: repos.TaskSuccess, DocStatus: repos.Documented},
	}

	data := ViewsToTableData(views, false)
	require.Len(t, data.Rows, 1)
	assert.Len(t, data.Rows[0], len(data.Headers))
	assert.Equal(t, "sqlite", data.Rows[0][0])

	wide := ViewsToTableData(views, true)
	assert.Len(t, wide.Rows[0], len(wide.Headers))
	assert.Contains(t, wide.Headers, "BRANCH")
}
