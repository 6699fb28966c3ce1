package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinksUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[SiteCode]string
	}{
		{"object", `{"mal":"12345","al":"30013"}`, map[SiteCode]string{SiteMyAnimeList: "12345", SiteAniList: "30013"}},
		{"empty array", `[]`, map[SiteCode]string{}},
		{"empty array with space", `[ ]`, map[SiteCode]string{}},
		{"null", `null`, map[SiteCode]string{}},
		{"empty object", `{}`, map[SiteCode]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var links Links
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &links))
			assert.Equal(t, len(tt.want), links.Len())
			for site, ref := range tt.want {
				require.NotNil(t, links.Get(site))
				assert.Equal(t, ref, *links.Get(site))
			}
		})
	}
}

func TestLinksUnmarshalRejectsNonEmptyArray(t *testing.T) {
	var links Links
	err := json.Unmarshal([]byte(`["mal"]`), &links)
	assert.True(t, errors.Is(err, ErrShapeViolation))
}

func TestLinksSet(t *testing.T) {
	var links Links
	require.NoError(t, links.Set(SiteRaw, "https://example.jp/raw"))
	require.NotNil(t, links.Raw)
	assert.Equal(t, "https://example.jp/raw", *links.Raw)

	err := links.Set(SiteCode("zz"), "x")
	assert.True(t, errors.Is(err, ErrLookupMiss))
	assert.Nil(t, links.Get(SiteCode("zz")))
	assert.Equal(t, 1, links.Len())
}

func TestMangaDecode(t *testing.T) {
	raw := []byte(`{"code":200,"status":"OK","data":{
		"id": 39,
		"title": "Oshi no Ko",
		"altTitles": ["My Star"],
		"artist": ["Yokoyari Mengo"],
		"author": ["Akasaka Aka"],
		"isHentai": false,
		"lastUploaded": 1700000000,
		"links": [],
		"publication": {"demographic": 3, "language": "jp", "status": 2},
		"rating": {"bayesian": 8.9, "mean": 9.0, "users": 1200},
		"relation": [{"id": 40, "isHentai": false, "title": "Oshi no Ko (Colour)", "type": 10}],
		"tags": [5, 7]
	}}`)

	resp, err := DecodeResponse[Manga](raw)
	require.NoError(t, err)
	manga, err := Unwrap(resp)
	require.NoError(t, err)

	assert.Equal(t, 39, manga.ID)
	assert.Nil(t, manga.LastChapter)
	assert.Equal(t, 0, manga.Links.Len())
	assert.Equal(t, Language("jp"), manga.Publication.Language)
	assert.Equal(t, []int{5, 7}, manga.Tags)
	assert.Equal(t, int64(1700000000), manga.LastUploadedAt().Unix())

	partial := manga.Partial()
	assert.Equal(t, "Oshi no Ko", partial.Name)
	assert.Equal(t, 39, partial.ID)
}

func TestMangaDecodeMissingLanguage(t *testing.T) {
	raw := []byte(`{"code":200,"status":"OK","data":{"id":1,"title":"A","publication":{"demographic":1,"status":1}}}`)

	_, err := DecodeResponse[Manga](raw)
	require.Error(t, err)

	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	require.Len(t, shapeErr.Problems, 1)
	assert.Equal(t, "data.publication.language", shapeErr.Problems[0].Field)
}
