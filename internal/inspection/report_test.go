package inspection

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	agg := NewAggregate()
	agg.Add([]Problem{
		{
			File:        `file://$USER_HOME$/project\lib\a.dart`,
			Line:        10,
			Category:    CatNullSafety,
			Priority:    PriorityHigh,
			Severity:    SevWarning,
			ClassID:     "NullableProblems",
			Description: "Value may be null",
			Language:    "Dart",
			Hints:       []string{"Add a null check"},
		},
		{
			File:     "lib/b.dart",
			Line:     5,
			Category: CatAndroidLint,
			Priority: PriorityMedium,
			Severity: SevWarning,
			ClassID:  "AndroidLintUnusedResources",
			Language: "XML",
		},
	})
	agg.FilesAnalyzed = 2
	agg.Sort()

	path := filepath.Join(t.TempDir(), "report.xml")
	scanDate := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, WriteReport(agg, "test-project", path, scanDate))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)

	assert.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, s, `<project-errors version="1.0">`)
	assert.Contains(t, s, "<scan-date>2025-09-01T12:00:00Z</scan-date>")
	assert.Contains(t, s, "<project-name>test-project</project-name>")
	assert.Contains(t, s, "<total-errors>2</total-errors>")
	assert.Contains(t, s, "<files-analyzed>2</files-analyzed>")

	// severity summary uses lowercased element names
	assert.Contains(t, s, "<warning>2</warning>")
	assert.Contains(t, s, `<category name="android-lint">1</category>`)
	assert.Contains(t, s, `<category name="null-safety">1</category>`)

	// ids follow the final sort order
	assert.Contains(t, s, `id="ERR-NULL-SAFETY-0000"`)
	assert.Contains(t, s, `id="ERR-ANDROID-LINT-0001"`)

	// home placeholder and backslashes are normalized
	assert.Contains(t, s, "<file>~/project/lib/a.dart</file>")
	assert.NotContains(t, s, "$USER_HOME$")

	assert.Contains(t, s, "<hint>Add a null check</hint>")
}

func TestWriteReportEmpty(t *testing.T) {
	agg := NewAggregate()
	path := filepath.Join(t.TempDir(), "report.xml")
	require.NoError(t, WriteReport(agg, "empty", path, time.Now()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<total-errors>0</total-errors>")
}

func TestWriteReportUnwritablePath(t *testing.T) {
	agg := NewAggregate()
	err := WriteReport(agg, "p", filepath.Join(t.TempDir(), "missing", "report.xml"), time.Now())
	assert.Error(t, err)
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`file://$USER_HOME$/p/lib/a.dart`, "~/p/lib/a.dart"},
		{`C:\Users\frank\p\a.dart`, "C:/Users/frank/p/a.dart"},
		{"lib/a.dart", "lib/a.dart"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanPath(tt.in))
	}
}
