package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponseOK(t *testing.T) {
	raw := []byte(`{"code":200,"status":"OK","data":{"id":7,"name":"Action","group":"Genre"}}`)

	resp, err := DecodeResponse[Tag](raw)
	require.NoError(t, err)
	assert.True(t, resp.IsOK())
	assert.Equal(t, 200, resp.StatusCode())

	tag, err := Unwrap(resp)
	require.NoError(t, err)
	assert.Equal(t, 7, tag.ID)
	assert.Equal(t, "Action", tag.Name)
	assert.Equal(t, TagGroupGenre, tag.Group)
}

func TestDecodeResponseFailure(t *testing.T) {
	raw := []byte(`{"code":404,"status":"error","message":"Manga #9 not found"}`)

	resp, err := DecodeResponse[Manga](raw)
	require.NoError(t, err)
	assert.False(t, resp.IsOK())

	failure, ok := resp.(Failure[Manga])
	require.True(t, ok)
	assert.Equal(t, 404, failure.Code)
	assert.Equal(t, "Manga #9 not found", failure.Message)

	_, err = Unwrap(resp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEnvelope))

	var envErr *EnvelopeError
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, 404, envErr.Code)
	assert.Equal(t, "Manga #9 not found", envErr.Message)
}

func TestDecodeResponseEnvelopeRules(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"ok without data", `{"code":200,"status":"OK"}`, "data"},
		{"ok with message", `{"code":200,"status":"OK","data":{"id":1,"name":"a","group":"Genre"},"message":"hi"}`, "message"},
		{"error with data", `{"code":500,"status":"error","message":"boom","data":{}}`, "data"},
		{"error without message", `{"code":500,"status":"error"}`, "message"},
		{"error with null message", `{"code":500,"status":"error","message":null}`, "message"},
		{"unknown status", `{"code":200,"status":"maybe","data":{}}`, "status"},
		{"missing status", `{"code":200,"data":{}}`, "status"},
		{"missing code", `{"status":"OK","data":{}}`, "code"},
		{"code not a number", `{"code":"200","status":"OK","data":{}}`, "code"},
		{"not an object", `[1,2,3]`, ""},
		{"null envelope", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeResponse[Tag]([]byte(tt.raw))
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, ErrShapeViolation))

			var shapeErr *ShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, tt.field, shapeErr.Field)
		})
	}
}

func TestDecodeResponseNullData(t *testing.T) {
	raw := []byte(`{"code":200,"status":"OK","data":null}`)

	t.Run("non-nullable payload", func(t *testing.T) {
		_, err := DecodeResponse[Tag](raw)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrShapeViolation))
	})

	t.Run("pointer payload", func(t *testing.T) {
		resp, err := DecodeResponse[*Tag](raw)
		require.NoError(t, err)
		tag, err := Unwrap(resp)
		require.NoError(t, err)
		assert.Nil(t, tag)
	})

	t.Run("slice payload", func(t *testing.T) {
		resp, err := DecodeResponse[[]Group](raw)
		require.NoError(t, err)
		groups, err := Unwrap(resp)
		require.NoError(t, err)
		assert.Nil(t, groups)
	})

	t.Run("null differs from missing", func(t *testing.T) {
		_, err := DecodeResponse[*Tag]([]byte(`{"code":200,"status":"OK"}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrShapeViolation))
	})
}

func TestDecodeResponsePayloadShape(t *testing.T) {
	decodeChapter := func(raw []byte) error {
		_, err := DecodeResponse[Chapter](raw)
		return err
	}
	decodeTag := func(raw []byte) error {
		_, err := DecodeResponse[Tag](raw)
		return err
	}

	tests := []struct {
		name   string
		decode func([]byte) error
		raw    string
		field  string
	}{
		{
			name:   "chapter status outside the fixed set",
			decode: decodeChapter,
			raw:    `{"code":200,"status":"OK","data":{"id":1,"mangaId":2,"language":"gb","status":"pending"}}`,
			field:  "data.status",
		},
		{
			name:   "tag group outside the fixed set",
			decode: decodeTag,
			raw:    `{"code":200,"status":"OK","data":{"id":1,"name":"Action","group":"Mood"}}`,
			field:  "data.group",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrShapeViolation))

			var shapeErr *ShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, tt.field, shapeErr.Field)
		})
	}
}

func TestDecodeResponseValidation(t *testing.T) {
	raw := []byte(`{"code":200,"status":"OK","data":{"5":{"id":5,"group":"Genre"}}}`)

	_, err := DecodeResponse[Tags](raw)
	require.Error(t, err)

	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	require.Len(t, shapeErr.Problems, 1)
	assert.Equal(t, "data[5].name", shapeErr.Problems[0].Field)
	assert.Equal(t, "is required", shapeErr.Problems[0].Message)
	assert.Empty(t, shapeErr.Field)
}

func TestEnvelopeMarshal(t *testing.T) {
	data, err := json.Marshal(NewOK(200, []int{1, 2}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":200,"status":"OK","data":[1,2]}`, string(data))

	data, err = json.Marshal(NewFailure[Manga](403, "Forbidden"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":403,"status":"error","message":"Forbidden"}`, string(data))

	resp, err := DecodeResponse[[]int](data)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode())
}
