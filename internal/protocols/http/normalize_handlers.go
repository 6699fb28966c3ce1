package http

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"mdcatalog/pkg/logger"
	"mdcatalog/pkg/models"
)

// ChapterGroupNames is one resolved entry of a partial chapter list
type ChapterGroupNames struct {
	ChapterID int      `json:"chapterId"`
	Groups    []string `json:"groups"`
}

// MangaTagsRequest carries a title envelope and a tag catalog envelope
type MangaTagsRequest struct {
	Manga json.RawMessage `json:"manga"`
	Tags  json.RawMessage `json:"tags"`
}

// normalizeManga formats a title envelope
func (s *Server) normalizeManga(c *gin.Context) {
	manga, ok := bindEnvelope[models.Manga](c)
	if !ok {
		return
	}

	formatted, err := s.normalizer.Manga(manga)
	logger.Conversion("manga", manga.ID, err)
	if err != nil {
		abortWithError(c, err)
		return
	}
	writeOK(c, formatted)
}

// normalizeMangaTags resolves a title's tags against a tag catalog
func (s *Server) normalizeMangaTags(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req MangaTagsRequest
	if err := json.Unmarshal(body, &req); err != nil || req.Manga == nil || req.Tags == nil {
		abortWithError(c, badRequest("body must hold manga and tags envelopes", err))
		return
	}

	manga, err := decodeEnvelope[models.Manga](req.Manga)
	if err != nil {
		abortWithError(c, err)
		return
	}
	catalog, err := decodeEnvelope[models.Tags](req.Tags)
	if err != nil {
		abortWithError(c, err)
		return
	}

	tags, err := s.normalizer.MangaTags(manga, catalog)
	logger.Conversion("manga_tags", manga.ID, err)
	if err != nil {
		abortWithError(c, err)
		return
	}
	writeOK(c, tags)
}

// normalizeChapter formats a chapter envelope
func (s *Server) normalizeChapter(c *gin.Context) {
	chapter, ok := bindEnvelope[models.Chapter](c)
	if !ok {
		return
	}

	formatted, err := s.normalizer.Chapter(chapter)
	logger.Conversion("chapter", chapter.ID, err)
	if err != nil {
		abortWithError(c, err)
		return
	}
	writeOK(c, formatted)
}

// normalizeLinks lists the external links of a title envelope
func (s *Server) normalizeLinks(c *gin.Context) {
	manga, ok := bindEnvelope[models.Manga](c)
	if !ok {
		return
	}
	writeOK(c, s.normalizer.Links(manga.Links))
}

// resolveChapterGroups resolves group names for every chapter of a
// partial chapter list, or for one chapter when ?chapter= is given
func (s *Server) resolveChapterGroups(c *gin.Context) {
	var only int
	if raw := c.Query("chapter"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			abortWithError(c, badRequest("chapter must be a positive integer", err))
			return
		}
		only = id
	}

	list, ok := bindEnvelope[models.PartialChapters](c)
	if !ok {
		return
	}

	out := make([]ChapterGroupNames, 0, len(list.Chapters))
	for _, ch := range list.Chapters {
		if only != 0 && ch.ID != only {
			continue
		}
		names, err := s.normalizer.ChapterGroups(ch, list.Groups)
		if err != nil {
			abortWithError(c, err)
			return
		}
		out = append(out, ChapterGroupNames{ChapterID: ch.ID, Groups: names})
	}

	if only != 0 && len(out) == 0 {
		abortWithError(c, models.NewLookupError(models.TableChapter, strconv.Itoa(only)))
		return
	}
	writeOK(c, out)
}

// normalizeFollowedUpdates resolves a followed-updates feed
func (s *Server) normalizeFollowedUpdates(c *gin.Context) {
	updates, ok := bindEnvelope[models.FollowedUpdates](c)
	if !ok {
		return
	}

	resolved, err := s.normalizer.FollowedUpdates(updates)
	if err != nil {
		abortWithError(c, err)
		return
	}
	writeOK(c, resolved)
}

// getStatusLabel resolves a publication status code
func (s *Server) getStatusLabel(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		abortWithError(c, badRequest("status code must be an integer", err))
		return
	}

	label, err := s.normalizer.StatusLabel(code)
	if err != nil {
		abortWithError(c, err)
		return
	}
	writeOK(c, gin.H{"code": code, "label": label})
}

// getDemographicLabel resolves a demographic code
func (s *Server) getDemographicLabel(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		abortWithError(c, badRequest("demographic code must be an integer", err))
		return
	}

	label, err := s.normalizer.DemographicLabel(code)
	if err != nil {
		abortWithError(c, err)
		return
	}
	writeOK(c, gin.H{"code": code, "label": label})
}

// getLanguageName resolves a language code
func (s *Server) getLanguageName(c *gin.Context) {
	code := models.Language(c.Param("code"))

	name, err := s.normalizer.LanguageName(code)
	if err != nil {
		abortWithError(c, err)
		return
	}
	writeOK(c, gin.H{"code": code, "name": name})
}
