package dao

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"saarthi/saarthi/sources/psql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func setupTestDAO(t *testing.T) *TranscriptDAO {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := psql.Open(context.Background(), sqlite.Open(dsn))
	require.NoError(t, err)
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(db.Close)
	return NewTranscriptDAO(db.DB)
}

func TestSaveTurn_ListsInOrderAndCounts(t *testing.T) {
	d := setupTestDAO(t)
	ctx := context.Background()

	for i, role := range []string{"user", "assistant", "user", "assistant"} {
		_, err := d.SaveTurn(ctx, "s1", role, fmt.Sprintf("turn %d", i))
		require.NoError(t, err)
	}
	_, err := d.SaveTurn(ctx, "s2", "user", "other")
	require.NoError(t, err)

	turns, err := d.ListTurnsBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 4)
	for i, turn := range turns {
		assert.Equal(t, fmt.Sprintf("turn %d", i), turn.Content)
	}

	recs, err := d.ListRecentSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	byID := map[string]int{}
	for _, r := range recs {
		byID[r.SessionID] = r.Turns
	}
	assert.Equal(t, map[string]int{"s1": 4, "s2": 1}, byID)
}

func TestUpsertSessionRecord(t *testing.T) {
	d := setupTestDAO(t)
	ctx := context.Background()

	rec, err := d.UpsertSessionRecord(ctx, "s1", "user", "hello")
	require.NoError(t, err)
	assert.Zero(t, rec.Turns)

	rec, err = d.UpsertSessionRecord(ctx, "s1", "assistant", "namaste")
	require.NoError(t, err)
	assert.Equal(t, "namaste", rec.LastMessage)
	assert.Equal(t, "assistant", rec.LastMessageRole)
}

func TestArchiveTurn_ConcurrentSameSessionKeepsEveryCount(t *testing.T) {
	d := setupTestDAO(t)
	ctx := context.Background()
	const n = 25

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, d.ArchiveTurn(ctx, "busy", "user", fmt.Sprintf("turn %d", i)))
		}(i)
	}
	wg.Wait()

	turns, err := d.ListTurnsBySession(ctx, "busy")
	require.NoError(t, err)
	assert.Len(t, turns, n)

	recs, err := d.ListRecentSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, n, recs[0].Turns)
}

func TestUpsertSessionRecord_KeepsTurnCount(t *testing.T) {
	d := setupTestDAO(t)
	ctx := context.Background()
	require.NoError(t, d.ArchiveTurn(ctx, "s1", "user", "hi"))
	require.NoError(t, d.ArchiveTurn(ctx, "s1", "assistant", "namaste"))

	rec, err := d.UpsertSessionRecord(ctx, "s1", "user", "thanks")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Turns)
	assert.Equal(t, "thanks", rec.LastMessage)
}

func TestListRecentSessions_NewestFirstAndLimited(t *testing.T) {
	d := setupTestDAO(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, d.ArchiveTurn(ctx, id, "user", "hi"))
		time.Sleep(5 * time.Millisecond)
	}
	recs, err := d.ListRecentSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].SessionID)
	assert.Equal(t, "b", recs[1].SessionID)
}

func TestDeleteSession(t *testing.T) {
	d := setupTestDAO(t)
	ctx := context.Background()
	require.NoError(t, d.ArchiveTurn(ctx, "s1", "user", "hi"))
	require.NoError(t, d.DeleteSession(ctx, "s1"))

	turns, err := d.ListTurnsBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
	recs, err := d.ListRecentSessions(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
