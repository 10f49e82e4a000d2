package revision

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records calls and returns a canned response.
type mockExecutor struct {
	out   string
	err   error
	calls []string
}

func (m *mockExecutor) Output(dir, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, dir+": "+name+" "+strings.Join(args, " "))
	if m.err != nil {
		return nil, m.err
	}
	return []byte(m.out), nil
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 4, 15, 0, 0, 0, time.UTC)
}

func TestStamp(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantDate string
		wantLog  []string
	}{
		{
			name:     "git date",
			exec:     &mockExecutor{out: "2025-11-30\n"},
			wantDate: "2025-11-30",
			wantLog:  []string{"Updated date: 2025-11-30"},
		},
		{
			name:     "git missing falls back to today",
			exec:     &mockExecutor{err: errors.New(`exec: "git": executable file not found in $PATH`)},
			wantDate: "2026-03-04",
			wantLog:  []string{"Error:", "executable file not found", "Using fallback date: 2026-03-04"},
		},
		{
			name:     "no commits falls back to today",
			exec:     &mockExecutor{out: "  \n"},
			wantDate: "2026-03-04",
			wantLog:  []string{"empty date", "Using fallback date: 2026-03-04"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			s := &Stamper{exec: tt.exec, now: fixedClock}
			var log bytes.Buffer

			date, err := s.Stamp(dir, "", &log)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, date)

			data, err := os.ReadFile(filepath.Join(dir, DefaultOutput))
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, string(data), "stamp file holds the bare date")

			for _, want := range tt.wantLog {
				assert.Contains(t, log.String(), want)
			}
		})
	}
}

func TestStampRunsGitInDir(t *testing.T) {
	dir := t.TempDir()
	exec := &mockExecutor{out: "2024-01-02"}
	s := &Stamper{exec: exec, now: fixedClock}

	_, err := s.Stamp(dir, "out/date.tex", &bytes.Buffer{})
	require.Error(t, err, "parent directory of the stamp file does not exist")

	require.Len(t, exec.calls, 1)
	assert.Equal(t, dir+": git log -1 --format=%cd --date=format:%Y-%m-%d", exec.calls[0])
}

func TestStampAbsoluteOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stamp.tex")
	s := &Stamper{exec: &mockExecutor{out: "2024-01-02"}, now: fixedClock}

	date, err := s.Stamp(t.TempDir(), out, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", date)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", string(data))
}
