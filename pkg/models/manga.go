package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Manga is a full catalog title
type Manga struct {
	ID           int              `json:"id" validate:"gt=0"`
	Title        string           `json:"title" validate:"required"`
	AltTitles    []string         `json:"altTitles"`
	Artist       []string         `json:"artist"`
	Author       []string         `json:"author"`
	Description  string           `json:"description"`
	IsHentai     bool             `json:"isHentai"`
	LastChapter  *string          `json:"lastChapter,omitempty"` // absent until the title is finished
	LastVolume   *string          `json:"lastVolume,omitempty"`
	LastUploaded int64            `json:"lastUploaded"`
	Links        Links            `json:"links"`
	MainCover    string           `json:"mainCover"`
	Publication  MangaPublication `json:"publication"`
	Rating       MangaRating      `json:"rating"`
	Relation     []RelatedManga   `json:"relation" validate:"dive"`
	Tags         []int            `json:"tags"`
	Comments     int              `json:"comments"`
	Follows      int              `json:"follows"`
	Views        int              `json:"views"`
}

// Partial projects the title onto its list-view form
func (m Manga) Partial() PartialManga {
	return PartialManga{
		ID:          m.ID,
		Name:        m.Title,
		IsHentai:    m.IsHentai,
		LastChapter: m.LastChapter,
		LastVolume:  m.LastVolume,
		MainCover:   m.MainCover,
	}
}

// LastUploadedAt converts the unix timestamp of the latest upload
func (m Manga) LastUploadedAt() time.Time {
	return time.Unix(m.LastUploaded, 0).UTC()
}

// PartialManga is the list-view projection of a title
type PartialManga struct {
	ID          int     `json:"id" validate:"gt=0"`
	Name        string  `json:"name"`
	IsHentai    bool    `json:"isHentai"`
	LastChapter *string `json:"lastChapter,omitempty"`
	LastVolume  *string `json:"lastVolume,omitempty"`
	MainCover   string  `json:"mainCover"`
}

// MangaRating aggregates user ratings
type MangaRating struct {
	Bayesian float64 `json:"bayesian"`
	Mean     float64 `json:"mean"`
	Users    int     `json:"users"`
}

// MangaPublication holds the publication metadata of a title
type MangaPublication struct {
	Demographic int      `json:"demographic"`
	Language    Language `json:"language" validate:"required"`
	Status      int      `json:"status"` // 1 ongoing, 2 completed, 3 cancelled, 4 hiatus
}

// RelatedManga references another title
type RelatedManga struct {
	ID       int    `json:"id" validate:"gt=0"`
	IsHentai bool   `json:"isHentai"`
	Title    string `json:"title"`
	Type     int    `json:"type"` // 4 spin-off, 8 doujinshi, 10 coloured
}

// RelationType is an entry of the relation type catalog
type RelationType struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	PairID int    `json:"pairId"`
}

// Relations is the relation type catalog keyed by id
type Relations map[string]RelationType

// MangaCover is a per-volume cover
type MangaCover struct {
	URL    string `json:"url" validate:"required"`
	Volume string `json:"volume"`
}

// Links holds one optional reference per known external site
type Links struct {
	Amazon          *string `json:"amz,omitempty"`
	MyAnimeList     *string `json:"mal,omitempty"`
	NovelUpdates    *string `json:"nu,omitempty"`
	BookWalker      *string `json:"bw,omitempty"`
	Raw             *string `json:"raw,omitempty"`
	MangaUpdates    *string `json:"mu,omitempty"`
	EBookJapan      *string `json:"ebj,omitempty"`
	OfficialEnglish *string `json:"engtl,omitempty"`
	CDJapan         *string `json:"cdj,omitempty"`
	Kitsu           *string `json:"kt,omitempty"`
	AnimePlanet     *string `json:"ap,omitempty"`
	AniList         *string `json:"al,omitempty"`
}

// field maps a site code onto its slot
func (l *Links) field(code SiteCode) **string {
	switch code {
	case SiteAmazon:
		return &l.Amazon
	case SiteMyAnimeList:
		return &l.MyAnimeList
	case SiteNovelUpdates:
		return &l.NovelUpdates
	case SiteBookWalker:
		return &l.BookWalker
	case SiteRaw:
		return &l.Raw
	case SiteMangaUpdates:
		return &l.MangaUpdates
	case SiteEBookJapan:
		return &l.EBookJapan
	case SiteOfficialEnglish:
		return &l.OfficialEnglish
	case SiteCDJapan:
		return &l.CDJapan
	case SiteKitsu:
		return &l.Kitsu
	case SiteAnimePlanet:
		return &l.AnimePlanet
	case SiteAniList:
		return &l.AniList
	default:
		return nil
	}
}

// Get returns the reference for a site, nil when absent
func (l Links) Get(code SiteCode) *string {
	slot := l.field(code)
	if slot == nil {
		return nil
	}
	return *slot
}

// Set stores a reference for a site
func (l *Links) Set(code SiteCode, url string) error {
	slot := l.field(code)
	if slot == nil {
		return NewLookupError(TableSiteCode, string(code))
	}
	*slot = &url
	return nil
}

// Len counts the present references
func (l Links) Len() int {
	n := 0
	for _, code := range SiteCodes {
		if l.Get(code) != nil {
			n++
		}
	}
	return n
}

// UnmarshalJSON accepts an object, or an empty array / null for a title
// without links.
func (l *Links) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(bytes.Join(bytes.Fields(trimmed), nil), []byte("[]")) {
		*l = Links{}
		return nil
	}

	type alias Links
	var out alias
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return NewShapeError("links", "must be an object keyed by site code", err)
	}
	*l = Links(out)
	return nil
}

// Link is a labelled external reference
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// FormattedMangaPublication adds display names to the publication metadata
type FormattedMangaPublication struct {
	MangaPublication
	LanguageName    string `json:"languageName"`
	StatusName      string `json:"statusName"`
	DemographicName string `json:"demographicName"`
}

// FormattedManga is the presentation form of a title
type FormattedManga struct {
	Manga
	Links       []Link                    `json:"links"`
	Publication FormattedMangaPublication `json:"publication"`
}
