package models

import "time"

// Chapter is a full chapter with its page set
type Chapter struct {
	ID             int           `json:"id" validate:"gt=0"`
	MangaID        int           `json:"mangaId" validate:"gt=0"`
	MangaTitle     string        `json:"mangaTitle"`
	Chapter        string        `json:"chapter"`
	Volume         string        `json:"volume"`
	Title          string        `json:"title"`
	Language       Language      `json:"language" validate:"required"`
	Comments       *int          `json:"comments"` // null when no comment thread exists
	Groups         []Group       `json:"groups" validate:"dive"`
	Hash           string        `json:"hash"`
	Pages          []string      `json:"pages"`
	Server         string        `json:"server"`
	ServerFallback string        `json:"serverFallback"`
	Status         ChapterStatus `json:"status" validate:"required,chapter_status"`
	Timestamp      int64         `json:"timestamp"`
}

// PublishedAt converts the publication timestamp
func (c Chapter) PublishedAt() time.Time {
	return time.Unix(c.Timestamp, 0).UTC()
}

// GroupNames lists the releasing groups in order
func (c Chapter) GroupNames() []string {
	names := make([]string, 0, len(c.Groups))
	for _, g := range c.Groups {
		names = append(names, g.Name)
	}
	return names
}

// PagePath is the server-relative path of one page image
func PagePath(hash, page string) string {
	return hash + "/" + page
}

// PartialChapter is the list-view projection of a chapter
type PartialChapter struct {
	ID         int      `json:"id" validate:"gt=0"`
	MangaID    int      `json:"mangaId" validate:"gt=0"`
	MangaTitle string   `json:"mangaTitle"`
	Chapter    string   `json:"chapter"`
	Volume     *string  `json:"volume,omitempty"`
	Title      string   `json:"title"`
	Language   Language `json:"language" validate:"required"`
	Comments   int      `json:"comments"`
	Groups     []int    `json:"groups"`
	Hash       string   `json:"hash"`
	Timestamp  int64    `json:"timestamp"`
	Uploader   int      `json:"uploader"`
	Views      int      `json:"views"`
}

// PartialChapters pairs a chapter list with the groups it references
type PartialChapters struct {
	Chapters []PartialChapter `json:"chapters" validate:"dive"`
	Groups   []Group          `json:"groups" validate:"dive"`
}

// FormattedChapter is the presentation form of a chapter. PageURLs and
// FallbackPages always have equal length and share relative paths.
type FormattedChapter struct {
	Chapter
	LanguageName  string   `json:"languageName"`
	PageURLs      []string `json:"pageUrls"`
	FallbackPages []string `json:"fallbackPages"`
}
