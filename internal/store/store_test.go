package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cvdata/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index", "cv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func testRecord() *types.Record {
	rec := types.NewRecord()
	rec.Publications.Journals = []types.Publication{
		{Type: "article", Key: "j2", Title: "Second", Journal: "IEEE Access", Year: "2024", ImpactFactor: "3.9"},
		{Type: "article", Key: "j1", Title: "First", Journal: "IEEE/ACM ToN", Year: "2023"},
	}
	rec.Publications.Conferences = []types.Publication{
		{Type: "inproceedings", Key: "c1", Title: "Conf", BookTitle: "Proc. INFOCOM", Year: "2022"},
	}
	rec.Publications.EarlyAccess = []types.Publication{
		{Type: "article", Key: "e1", Title: "Early", Keywords: "Early Access"},
	}
	return rec
}

func TestIngestAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	summary, err := s.Ingest(ctx, testRecord(), "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total())
	assert.Equal(t, 2, summary.Categories[types.CategoryJournals])

	journals, err := s.Publications(ctx, types.CategoryJournals)
	require.NoError(t, err)
	require.Len(t, journals, 2)
	assert.Equal(t, "j2", journals[0].Key, "source order is kept")
	assert.Equal(t, "IEEE Access", journals[0].Venue)
	assert.Equal(t, "3.9", journals[0].ImpactFactor)

	conferences, err := s.Publications(ctx, types.CategoryConferences)
	require.NoError(t, err)
	require.Len(t, conferences, 1)
	assert.Equal(t, "Proc. INFOCOM", conferences[0].Venue)

	all, err := s.Publications(ctx, "")
	require.NoError(t, err)
	keys := make([]string, len(all))
	for i, r := range all {
		keys[i] = r.Key
	}
	assert.Equal(t, []string{"e1", "j2", "j1", "c1"}, keys)
}

func TestIngestReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Ingest(ctx, testRecord(), "r1")
	require.NoError(t, err)

	rec := types.NewRecord()
	rec.Publications.Journals = []types.Publication{{Type: "article", Key: "only"}}
	summary, err := s.Ingest(ctx, rec, "r2")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total())

	all, err := s.Publications(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "only", all[0].Key)

	rev, builtAt, err := s.LastBuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r2", rev)
	assert.Equal(t, 2026, builtAt.Year())
}

func TestLastBuildEmpty(t *testing.T) {
	s := openTestStore(t)

	_, _, err := s.LastBuild(context.Background())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
