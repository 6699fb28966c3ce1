package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdcatalog/internal/normalize"
	"mdcatalog/pkg/config"
	"mdcatalog/pkg/logger"
	"mdcatalog/pkg/models"
)

type envelope struct {
	Code    int             `json:"code"`
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	logger.SetOutput(io.Discard)

	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.Server.RateLimit = 0
	if mutate != nil {
		mutate(cfg)
	}

	lookup, err := normalize.NewLookup(cfg.Lookup.Languages, cfg.Lookup.Demographics, cfg.Lookup.LinkLabels)
	require.NoError(t, err)
	return NewServer(cfg, normalize.New(lookup))
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

const mangaEnvelope = `{"code":200,"status":"OK","data":{
	"id": 39, "title": "Vinland Saga", "links": {"mal": "642", "amz": "https://amazon.example/vs"},
	"publication": {"demographic": 3, "language": "jp", "status": 3},
	"tags": [5, 7]
}}`

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestNormalizeManga(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := do(t, s, http.MethodPost, "/api/v1/normalize/manga", mangaEnvelope)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.EnvelopeStatusOK, env.Status)

	var formatted models.FormattedManga
	require.NoError(t, json.Unmarshal(env.Data, &formatted))
	assert.Equal(t, "Japanese", formatted.Publication.LanguageName)
	assert.Equal(t, "Cancelled", formatted.Publication.StatusName)
	assert.Equal(t, "Seinen", formatted.Publication.DemographicName)
	assert.Equal(t, []models.Link{
		{Title: "Amazon", URL: "https://amazon.example/vs"},
		{Title: "MyAnimeList", URL: "642"},
	}, formatted.Links)
}

func TestNormalizeRelaysUpstreamError(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := do(t, s, http.MethodPost, "/api/v1/normalize/manga", `{"code":404,"status":"error","message":"Manga #1 not found"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, models.EnvelopeStatusError, env.Status)
	assert.Equal(t, 404, env.Code)
	assert.Equal(t, "Manga #1 not found", env.Message)
}

func TestNormalizeErrors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"malformed json", "/api/v1/normalize/manga", `{"code":`, http.StatusBadRequest},
		{"missing data", "/api/v1/normalize/manga", `{"code":200,"status":"OK"}`, http.StatusUnprocessableEntity},
		{"unknown status code", "/api/v1/normalize/manga", `{"code":200,"status":"OK","data":{"id":1,"title":"x","publication":{"demographic":1,"language":"gb","status":5}}}`, http.StatusUnprocessableEntity},
		{"unknown language", "/api/v1/normalize/chapter", `{"code":200,"status":"OK","data":{"id":1,"mangaId":2,"language":"zz","status":"error"}}`, http.StatusUnprocessableEntity},
		{"bad chapter status", "/api/v1/normalize/chapter", `{"code":200,"status":"OK","data":{"id":1,"mangaId":2,"language":"gb","status":"pending"}}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, models.EnvelopeStatusError, env.Status)
			assert.Equal(t, tt.status, env.Code)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestNormalizeMangaUnknownDemographic(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"code":200,"status":"OK","data":{"id":1,"title":"x","publication":{"demographic":99,"language":"jp","status":1}}}`
	w, env := do(t, s, http.MethodPost, "/api/v1/normalize/manga", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Equal(t, models.EnvelopeStatusError, env.Status)
	assert.Equal(t, `demographic lookup miss: "99"`, env.Message)
}

func TestNormalizeChapter(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"code":200,"status":"OK","data":{
		"id": 100, "mangaId": 39, "language": "gb", "status": "OK",
		"hash": "abc", "pages": ["1.png", "2.png"],
		"server": "https://s1.example.org/data/", "serverFallback": "https://s2.example.org/data/",
		"groups": [{"id": 5, "name": "A"}], "comments": null
	}}`

	w, env := do(t, s, http.MethodPost, "/api/v1/normalize/chapter", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var formatted models.FormattedChapter
	require.NoError(t, json.Unmarshal(env.Data, &formatted))
	assert.Equal(t, []string{"https://s1.example.org/data/abc/1.png", "https://s1.example.org/data/abc/2.png"}, formatted.PageURLs)
	assert.Equal(t, []string{"https://s2.example.org/data/abc/1.png", "https://s2.example.org/data/abc/2.png"}, formatted.FallbackPages)
	assert.Nil(t, formatted.Comments)
}

func TestNormalizeLinks(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := do(t, s, http.MethodPost, "/api/v1/normalize/links", mangaEnvelope)
	require.Equal(t, http.StatusOK, w.Code)

	var links []models.Link
	require.NoError(t, json.Unmarshal(env.Data, &links))
	require.Len(t, links, 2)
	assert.Equal(t, "Amazon", links[0].Title)
}

func TestNormalizeMangaTags(t *testing.T) {
	s := newTestServer(t, nil)

	catalog := `{"code":200,"status":"OK","data":{
		"5": {"id": 5, "name": "Action", "group": "Genre"},
		"7": {"id": 7, "name": "Historical", "group": "Theme"}
	}}`

	w, env := do(t, s, http.MethodPost, "/api/v1/normalize/manga/tags", `{"manga":`+mangaEnvelope+`,"tags":`+catalog+`}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tags []models.Tag
	require.NoError(t, json.Unmarshal(env.Data, &tags))
	require.Len(t, tags, 2)
	assert.Equal(t, "Action", tags[0].Name)
	assert.Equal(t, models.TagGroupTheme, tags[1].Group)

	w, _ = do(t, s, http.MethodPost, "/api/v1/normalize/manga/tags", `{"manga":`+mangaEnvelope+`}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveChapterGroups(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"code":200,"status":"OK","data":{
		"chapters": [
			{"id": 1, "mangaId": 3, "language": "gb", "groups": [5, 7]},
			{"id": 2, "mangaId": 3, "language": "gb", "groups": [7]}
		],
		"groups": [{"id": 7, "name": "B"}, {"id": 5, "name": "A"}]
	}}`

	w, env := do(t, s, http.MethodPost, "/api/v1/normalize/partial-chapters/groups", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resolved []ChapterGroupNames
	require.NoError(t, json.Unmarshal(env.Data, &resolved))
	assert.Equal(t, []ChapterGroupNames{
		{ChapterID: 1, Groups: []string{"A", "B"}},
		{ChapterID: 2, Groups: []string{"B"}},
	}, resolved)

	w, env = do(t, s, http.MethodPost, "/api/v1/normalize/partial-chapters/groups?chapter=2", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &resolved))
	assert.Len(t, resolved, 1)

	w, _ = do(t, s, http.MethodPost, "/api/v1/normalize/partial-chapters/groups?chapter=9", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = do(t, s, http.MethodPost, "/api/v1/normalize/partial-chapters/groups?chapter=abc", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeFollowedUpdates(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"code":200,"status":"OK","data":{
		"chapters": [{"id": 11, "mangaId": 3, "language": "gb", "groups": [5]}],
		"groups": [{"id": 5, "name": "A"}],
		"manga": {"3": {"id": 3, "name": "Dandadan"}}
	}}`

	w, env := do(t, s, http.MethodPost, "/api/v1/normalize/followed-updates", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resolved []models.FollowedChapter
	require.NoError(t, json.Unmarshal(env.Data, &resolved))
	require.Len(t, resolved, 1)
	assert.Equal(t, "Dandadan", resolved[0].Manga.Name)
	assert.Equal(t, []string{"A"}, resolved[0].GroupNames)
}

func TestLabelEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/api/v1/status/3", http.StatusOK, `"label":"Cancelled"`},
		{"/api/v1/status/5", http.StatusUnprocessableEntity, `"status":"error"`},
		{"/api/v1/status/x", http.StatusBadRequest, `"status":"error"`},
		{"/api/v1/demographics/1", http.StatusOK, `"label":"Shounen"`},
		{"/api/v1/languages/gb", http.StatusOK, `"name":"English"`},
		{"/api/v1/languages/zz", http.StatusUnprocessableEntity, `"status":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, _ := do(t, s, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := do(t, s, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.EnvelopeStatusError, env.Status)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 0.001
		cfg.Server.Burst = 1
	})

	w, _ := do(t, s, http.MethodGet, "/api/v1/status/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, s, http.MethodGet, "/api/v1/status/1", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, http.StatusTooManyRequests, env.Code)

	// health is outside the limited group
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status/1", nil)
	req.Header.Set(requestIDHeader, "req-123")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
}
