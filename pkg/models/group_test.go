package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogGroupDecode(t *testing.T) {
	raw := []byte(`{"code":200,"status":"OK","data":{
		"id": 2, "name": "Band of the Hawks", "founded": "2016-04-01",
		"leader": {"id": 9, "name": "griffith"}, "members": [], "lastUpdated": 1600000000
	}}`)

	resp, err := DecodeResponse[CatalogGroup](raw)
	require.NoError(t, err)
	group, err := Unwrap(resp)
	require.NoError(t, err)

	founded, err := group.FoundedDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, time.April, 1, 0, 0, 0, 0, time.UTC), founded)
	assert.Equal(t, "griffith", group.Leader.Name)
	assert.Equal(t, int64(1600000000), group.LastUpdatedAt().Unix())
}

func TestCatalogGroupMissingName(t *testing.T) {
	_, err := DecodeResponse[CatalogGroup]([]byte(`{"code":200,"status":"OK","data":{"id":2}}`))
	require.Error(t, err)

	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	require.Len(t, shapeErr.Problems, 1)
	assert.Equal(t, "data.name", shapeErr.Problems[0].Field)
}

func TestFoundedDateInvalid(t *testing.T) {
	_, err := CatalogGroup{Founded: "April 2016"}.FoundedDate()
	assert.True(t, errors.Is(err, ErrShapeViolation))
}
