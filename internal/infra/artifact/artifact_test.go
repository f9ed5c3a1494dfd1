package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupCredentialsRolls(t *testing.T) {
	dir := t.TempDir()
	creds := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(creds, []byte(`{"first": true}`), 0600))

	first, err := BackupCredentials(creds)
	require.NoError(t, err)
	assert.Equal(t, creds+".bak", first)

	require.NoError(t, os.WriteFile(creds, []byte(`{"second": true}`), 0600))
	second, err := BackupCredentials(creds)
	require.NoError(t, err)

	content, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(content), "second")

	// Only one backup file ever exists.
	matches, err := filepath.Glob(filepath.Join(dir, "*.bak"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestBackupCredentialsMissingSource(t *testing.T) {
	_, err := BackupCredentials(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestExportCSVRolls(t *testing.T) {
	dir := t.TempDir()
	table := [][]string{
		{"Day", "Date", "Video Title", "Video URL", "Alice"},
		{"Day 1", "2025-03-03", "Lesson 1", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", ""},
		{"Weekend", "2025-03-08", "Revision / Code / Notes", "", ""},
	}

	first, err := ExportCSV(dir, table)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(first), "schedule_export_"))

	content, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Lesson 1")
	assert.Contains(t, string(content), "Revision / Code / Notes")

	second, err := ExportCSV(dir, table)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "schedule_export_*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, second, matches[0])
}

func TestSendLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "send.log")
	log := NewSendLog(path)
	log.now = func() time.Time { return time.Date(2025, time.March, 20, 9, 0, 0, 0, time.UTC) }

	require.NoError(t, log.Append("Alice", "SENT"))
	require.NoError(t, log.Append("Bob", "FAILED (authentication)"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2025-03-20T09:00:00Z\tAlice\tSENT", lines[0])
	assert.Equal(t, "2025-03-20T09:00:00Z\tBob\tFAILED (authentication)", lines[1])
}
