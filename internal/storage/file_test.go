package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/moveup/internal"
)

func sample(id string, metricID int, value float64, start time.Time) *internal.RawSample {
	return &internal.RawSample{
		ID:        id,
		MetricID:  metricID,
		Value:     value,
		Source:    internal.SourcePlatform,
		StartTime: start,
		EndTime:   start,
	}
}

func TestFileSampleStorage_SaveAndQueryWindow(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "samples.json")
	store, err := NewFileSampleStorage(path, internal.NewNopLogger())
	require.NoError(t, err)
	defer store.Close()

	now := time.Now()
	require.NoError(t, store.SaveSample(ctx, sample("s1", 1, 100, now.Add(-3*time.Hour))))
	require.NoError(t, store.SaveSample(ctx, sample("s2", 1, 200, now.Add(-1*time.Hour))))
	require.NoError(t, store.SaveSample(ctx, sample("s3", 1, 300, now.Add(-30*time.Hour))))
	require.NoError(t, store.SaveSample(ctx, sample("s4", 2, 50, now.Add(-1*time.Hour))))

	got, err := store.QuerySamples(ctx, 1, now.Add(-24*time.Hour), now)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	// Descending by start time.
	assert.Equal(t, "s2", got[0].ID)
	assert.Equal(t, "s1", got[1].ID)
}

func TestFileSampleStorage_EndIsExclusive(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "samples.json")
	store, err := NewFileSampleStorage(path, internal.NewNopLogger())
	require.NoError(t, err)
	defer store.Close()

	cut := time.Now().Truncate(time.Second)
	require.NoError(t, store.SaveSample(ctx, sample("on-boundary", 1, 1, cut)))
	require.NoError(t, store.SaveSample(ctx, sample("inside", 1, 2, cut.Add(-time.Minute))))

	got, err := store.QuerySamples(ctx, 1, cut.Add(-time.Hour), cut)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "inside", got[0].ID)
}

func TestFileSampleStorage_ResavingSameIDReplacesReading(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "samples.json")
	store, err := NewFileSampleStorage(path, internal.NewNopLogger())
	require.NoError(t, err)
	defer store.Close()

	now := time.Now()
	require.NoError(t, store.SaveSample(ctx, sample("s1", 1, 100, now.Add(-2*time.Hour))))
	require.NoError(t, store.SaveSample(ctx, sample("s1", 1, 150, now.Add(-time.Hour))))

	got, err := store.QuerySamples(ctx, 1, now.Add(-24*time.Hour), now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 150.0, got[0].Value)
}

func TestFileSampleStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "samples.json")
	store, err := NewFileSampleStorage(path, internal.NewNopLogger())
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, store.SaveSample(ctx, sample("s1", 3, 62, now.Add(-time.Hour))))
	require.NoError(t, store.Close())

	reopened, err := NewFileSampleStorage(path, internal.NewNopLogger())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.QuerySamples(ctx, 3, now.Add(-2*time.Hour), now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 62.0, got[0].Value)
}

func TestFileSessionStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileSessionStorage(path, internal.NewNopLogger())

	// Nothing persisted yet.
	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.NoError(t, store.Save(ctx, &internal.Session{UserID: "u1", WalletAddress: "0xabc"}))
	sess, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "0xabc", sess.WalletAddress)

	require.NoError(t, store.Clear(ctx))
	sess, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestFileSessionStorage_PartialIdentityIsNotASession(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileSessionStorage(path, internal.NewNopLogger())

	require.NoError(t, store.Save(ctx, &internal.Session{UserID: "u1"}))
	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}
