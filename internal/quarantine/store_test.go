package quarantine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attr-mapper/internal/record"
)

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 123456000, time.UTC)

func openMemoryStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open("", true, WithClock(func() time.Time { return fixedTime }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open("", true)
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.False(t, s.IsClosed())
	require.NoError(t, s.Close())
	assert.True(t, s.IsClosed())

	// Closing twice is harmless.
	assert.NoError(t, s.Close())
}

func TestOpen_FileSystem(t *testing.T) {
	dir := t.TempDir() + "/quarantine"
	ctx := context.Background()

	s, err := Open(dir, false)
	require.NoError(t, err)

	_, err = s.Put(ctx, &record.Record{Topic: "t", Value: "x"}, "bad shape")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(dir, false)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpen_RequiresDir(t *testing.T) {
	_, err := Open("", false)
	assert.Error(t, err)
}

func TestPutAndGet(t *testing.T) {
	s := openMemoryStore(t)
	ctx := context.Background()

	rec := &record.Record{
		Topic:     "logs",
		Partition: 2,
		Offset:    41,
		Key:       "k1",
		Value:     []any{"not", "a", "map"},
	}

	id, err := s.Put(ctx, rec, "record value is not a mapping")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	entry, err := s.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, &Entry{
		ID:            1,
		Topic:         "logs",
		Partition:     2,
		Offset:        41,
		Key:           "k1",
		Reason:        "record value is not a mapping",
		Payload:       []byte(`["not","a","map"]`),
		QuarantinedAt: fixedTime,
	}, entry)
}

func TestGetNotFound(t *testing.T) {
	s := openMemoryStore(t)

	_, err := s.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutNilRecord(t *testing.T) {
	s := openMemoryStore(t)

	_, err := s.Put(context.Background(), nil, "x")
	assert.ErrorIs(t, err, ErrNilRecord)
}

func TestListOrderAndLimit(t *testing.T) {
	s := openMemoryStore(t)
	ctx := context.Background()

	for i := range 5 {
		_, err := s.Put(ctx, &record.Record{Topic: "t", Offset: int64(i), Value: nil}, "nil value")
		require.NoError(t, err)
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)

	for i, e := range all {
		assert.Equal(t, uint64(i+1), e.ID)
		assert.Equal(t, int64(i), e.Offset)
		assert.Equal(t, []byte("null"), e.Payload)
	}

	some, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, uint64(2), some[1].ID)
}

func TestDeleteAndPurge(t *testing.T) {
	s := openMemoryStore(t)
	ctx := context.Background()

	for range 3 {
		_, err := s.Put(ctx, &record.Record{Value: "x"}, "r")
		require.NoError(t, err)
	}

	require.NoError(t, s.Delete(ctx, 2))
	assert.ErrorIs(t, s.Delete(ctx, 2), ErrNotFound)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	removed, err := s.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	count, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	removed, err = s.Purge(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestClosedStore(t *testing.T) {
	s, err := Open("", true)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Put(context.Background(), &record.Record{}, "x")
	assert.ErrorIs(t, err, ErrStoreClosed)

	_, err = s.List(context.Background(), 0)
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestCanceledContext(t *testing.T) {
	s := openMemoryStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Put(ctx, &record.Record{}, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
