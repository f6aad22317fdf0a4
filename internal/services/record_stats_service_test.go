package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStatsAreCachedUntilRecordsChange(t *testing.T) {
	f := newRecordFixture(t)
	statsRepo := &fakeStatsRepo{records: f.repo}
	stats := NewRecordStatsService(statsRepo, f.cache, 0)
	ctx := context.Background()

	record := createLondonRecord(t, f)

	got, err := stats.GetRecordStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalRecords)
	assert.Equal(t, int64(1), got.RecordsByLocation["London"])

	got, err = stats.GetRecordStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalRecords)
	assert.Equal(t, 1, statsRepo.queries)

	require.NoError(t, f.svc.DeleteRecord(ctx, record.ID))

	got, err = stats.GetRecordStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.TotalRecords)
	assert.Equal(t, 2, statsRepo.queries)
}

func TestRecordStatsWithoutCache(t *testing.T) {
	statsRepo := &fakeStatsRepo{records: newFakeRecordRepo()}
	stats := NewRecordStatsService(statsRepo, nil, 0)

	for i := 0; i < 2; i++ {
		_, err := stats.GetRecordStats(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, statsRepo.queries)
}
