package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/service"
)

var sample = []service.Task{
	{Title: "a", Priority: "low"},
	{Title: "write report", Priority: "high"},
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yml": FormatYAML, "yaml": FormatYAML, "pdf": FormatPDF} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("csv")
	assert.EqualError(t, err, "unknown format: csv")

	f, err := FormatForPath("/tmp/tasks.yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = FormatForPath("/tmp/tasks")
	assert.Error(t, err)
}

func TestEncodeJSON(t *testing.T) {
	b, err := Encode(FormatJSON, sample[:1])
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"taskTitle\": \"a\",\n    \"taskPriority\": \"low\"\n  }\n]\n", string(b))

	b, err = Encode(FormatJSON, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))
}

func TestEncodeDecode(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			b, err := Encode(f, sample)
			require.NoError(t, err)

			got, err := Decode(f, b)
			require.NoError(t, err)
			assert.Equal(t, sample, got)
		})
	}
}

func TestDecode_Normalizes(t *testing.T) {
	got, err := Decode(FormatYAML, []byte("- taskTitle: Write Report\n  taskPriority: HIGH\n"))
	require.NoError(t, err)
	assert.Equal(t, []service.Task{{Title: "write report", Priority: "high"}}, got)

	_, err = Decode(FormatJSON, []byte(`[{"taskTitle": " ", "taskPriority": "low"}]`))
	assert.EqualError(t, err, "record 1: empty taskTitle")

	_, err = Decode(FormatPDF, nil)
	assert.Error(t, err)
}

func TestEncodePDF(t *testing.T) {
	b, err := Encode(FormatPDF, sample)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, WriteFile(path, []byte("one")))
	require.NoError(t, WriteFile(path, []byte("two")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))
}
