package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sathyasree11/Crowd-count-using-video-analytics/database"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/models"
)

func TestAppendBatchGrowsHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCountRepository(db)

	require.NoError(t, repo.AppendBatch([]models.ZoneCount{
		{VideoID: 1, ZoneID: "z1", TS: 100.5, Label: "Door", Current: 3, Peak: 5},
	}))
	require.NoError(t, repo.AppendBatch([]models.ZoneCount{
		{VideoID: 1, ZoneID: "z1", TS: 101.5, Label: "Door", Current: 4, Peak: 6},
		{VideoID: 1, ZoneID: "z2", TS: 101.5, Label: "Aisle", Current: 1, Peak: 1},
	}))

	counts, err := repo.ListByVideo(1)
	require.NoError(t, err)
	require.Len(t, counts, 3)

	// earlier samples are untouched by later appends
	assert.Equal(t, 100.5, counts[0].TS)
	assert.Equal(t, 3, counts[0].Current)
	assert.Equal(t, 5, counts[0].Peak)
	assert.Equal(t, "Door", counts[0].Label)
}

func TestAppendBatchTrustsSubmittedPeak(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCountRepository(db)

	// a peak lower than current is stored as-is, not recomputed
	require.NoError(t, repo.AppendBatch([]models.ZoneCount{
		{VideoID: 1, ZoneID: "z1", TS: 1, Current: 9, Peak: 2},
	}))

	counts, err := repo.ListByVideo(1)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, 9, counts[0].Current)
	assert.Equal(t, 2, counts[0].Peak)
}

func TestAppendBatchEmptyIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCountRepository(db)

	require.NoError(t, repo.AppendBatch(nil))

	counts, err := repo.ListByVideo(1)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestCountRepositoryUnavailable(t *testing.T) {
	repo := NewGormCountRepository(nil)

	err := repo.AppendBatch([]models.ZoneCount{{VideoID: 1, ZoneID: "z1"}})
	assert.ErrorIs(t, err, database.ErrUnavailable)
	_, err = repo.ListByVideo(1)
	assert.ErrorIs(t, err, database.ErrUnavailable)
}
