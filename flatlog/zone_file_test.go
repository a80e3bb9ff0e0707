package flatlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestZoneFile(t *testing.T) *JSONZoneFile {
	t.Helper()
	zf, err := NewJSONZoneFile(filepath.Join(t.TempDir(), "zones.json"))
	require.NoError(t, err)
	return zf
}

func TestZoneFileLastWriteWins(t *testing.T) {
	zf := newTestZoneFile(t)

	require.NoError(t, zf.WriteAll([]ZoneRecord{
		{ID: "z1", Label: "Door"},
		{ID: "z2", Label: "Aisle"},
	}))
	require.NoError(t, zf.WriteAll([]ZoneRecord{
		{ID: "z3", Label: "Exit", TopLeft: Point{X: 1, Y: 2}},
	}))

	data, err := zf.ReadRaw()
	require.NoError(t, err)

	var zones []ZoneRecord
	require.NoError(t, json.Unmarshal(data, &zones))
	require.Len(t, zones, 1)
	assert.Equal(t, "z3", zones[0].ID)
	assert.Equal(t, Point{X: 1, Y: 2}, zones[0].TopLeft)
}

func TestZoneFileEmptyListWritesEmptyArray(t *testing.T) {
	zf := newTestZoneFile(t)

	require.NoError(t, zf.WriteAll(nil))

	data, err := zf.ReadRaw()
	require.NoError(t, err)

	var zones []ZoneRecord
	require.NoError(t, json.Unmarshal(data, &zones))
	assert.Empty(t, zones)
}

func TestZoneFileReadRawBeforeFirstWrite(t *testing.T) {
	zf := newTestZoneFile(t)

	_, err := zf.ReadRaw()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
