package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Lookup table names reported by LookupError
const (
	TablePublicationStatus = "publication_status"
	TableDemographic       = "demographic"
	TableRelationKind      = "relation_kind"
	TableLanguage          = "language"
	TableSiteCode          = "site_code"
	TableLinkLabel         = "link_label"
	TableTag               = "tag"
	TableGroup             = "group"
	TableManga             = "manga"
	TableChapter           = "chapter"
)

// Language is a catalog language code (gb, jp, ru, ...)
type Language string

// PublicationStatus represents the numeric publication status of a title
type PublicationStatus int

const (
	StatusOngoing   PublicationStatus = 1
	StatusCompleted PublicationStatus = 2
	StatusCancelled PublicationStatus = 3
	StatusHiatus    PublicationStatus = 4
)

var publicationStatusLabels = map[PublicationStatus]string{
	StatusOngoing:   "Ongoing",
	StatusCompleted: "Completed",
	StatusCancelled: "Cancelled",
	StatusHiatus:    "Hiatus",
}

// ParsePublicationStatus converts a wire status code, rejecting anything outside 1-4
func ParsePublicationStatus(code int) (PublicationStatus, error) {
	status := PublicationStatus(code)
	if _, ok := publicationStatusLabels[status]; !ok {
		return 0, NewLookupError(TablePublicationStatus, strconv.Itoa(code))
	}
	return status, nil
}

// String returns the display label
func (s PublicationStatus) String() string {
	if label, ok := publicationStatusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("PublicationStatus(%d)", int(s))
}

// Demographic is the numeric publication demographic code. Its display
// labels are supplied by configuration.
type Demographic int

// RelationKind represents the relation between two titles
type RelationKind int

const (
	RelationSpinOff   RelationKind = 4
	RelationDoujinshi RelationKind = 8
	RelationColoured  RelationKind = 10
)

var relationKindLabels = map[RelationKind]string{
	RelationSpinOff:   "Spin-off",
	RelationDoujinshi: "Doujinshi",
	RelationColoured:  "Coloured",
}

// ParseRelationKind converts a wire relation type code
func ParseRelationKind(code int) (RelationKind, error) {
	kind := RelationKind(code)
	if _, ok := relationKindLabels[kind]; !ok {
		return 0, NewLookupError(TableRelationKind, strconv.Itoa(code))
	}
	return kind, nil
}

func (k RelationKind) String() string {
	if label, ok := relationKindLabels[k]; ok {
		return label
	}
	return fmt.Sprintf("RelationKind(%d)", int(k))
}

// ChapterStatus tells whether a chapter's pages can be served
type ChapterStatus string

const (
	ChapterAvailable   ChapterStatus = "OK"
	ChapterUnavailable ChapterStatus = "error"
)

// IsValid reports whether s is one of the wire literals
func (s ChapterStatus) IsValid() bool {
	return s == ChapterAvailable || s == ChapterUnavailable
}

func (s *ChapterStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewShapeError("status", "chapter status must be a string", err)
	}
	if !ChapterStatus(raw).IsValid() {
		return NewShapeError("status", fmt.Sprintf("unknown chapter status %q", raw), nil)
	}
	*s = ChapterStatus(raw)
	return nil
}

// TagGroup is the category a tag belongs to
type TagGroup string

const (
	TagGroupFormat  TagGroup = "Format"
	TagGroupGenre   TagGroup = "Genre"
	TagGroupTheme   TagGroup = "Theme"
	TagGroupContent TagGroup = "Content"
)

// TagGroups lists every tag group in display order
var TagGroups = []TagGroup{TagGroupFormat, TagGroupGenre, TagGroupTheme, TagGroupContent}

func (g TagGroup) IsValid() bool {
	switch g {
	case TagGroupFormat, TagGroupGenre, TagGroupTheme, TagGroupContent:
		return true
	default:
		return false
	}
}

func (g *TagGroup) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewShapeError("group", "tag group must be a string", err)
	}
	if !TagGroup(raw).IsValid() {
		return NewShapeError("group", fmt.Sprintf("unknown tag group %q", raw), nil)
	}
	*g = TagGroup(raw)
	return nil
}

// SiteCode identifies an external site in a title's link map
type SiteCode string

const (
	SiteAmazon          SiteCode = "amz"
	SiteMyAnimeList     SiteCode = "mal"
	SiteNovelUpdates    SiteCode = "nu"
	SiteBookWalker      SiteCode = "bw"
	SiteRaw             SiteCode = "raw"
	SiteMangaUpdates    SiteCode = "mu"
	SiteEBookJapan      SiteCode = "ebj"
	SiteOfficialEnglish SiteCode = "engtl"
	SiteCDJapan         SiteCode = "cdj"
	SiteKitsu           SiteCode = "kt"
	SiteAnimePlanet     SiteCode = "ap"
	SiteAniList         SiteCode = "al"
)

// SiteCodes is the fixed order in which links are listed
var SiteCodes = []SiteCode{
	SiteAmazon,
	SiteMyAnimeList,
	SiteNovelUpdates,
	SiteBookWalker,
	SiteRaw,
	SiteMangaUpdates,
	SiteEBookJapan,
	SiteOfficialEnglish,
	SiteCDJapan,
	SiteKitsu,
	SiteAnimePlanet,
	SiteAniList,
}

var siteLabels = map[SiteCode]string{
	SiteAmazon:          "Amazon",
	SiteMyAnimeList:     "MyAnimeList",
	SiteNovelUpdates:    "NovelUpdates",
	SiteBookWalker:      "BookWalker",
	SiteRaw:             "Raw",
	SiteMangaUpdates:    "MangaUpdates",
	SiteEBookJapan:      "eBookJapan",
	SiteOfficialEnglish: "Official English",
	SiteCDJapan:         "CDJapan",
	SiteKitsu:           "Kitsu",
	SiteAnimePlanet:     "Anime-Planet",
	SiteAniList:         "AniList",
}

// ParseSiteCode validates a link key
func ParseSiteCode(code string) (SiteCode, error) {
	site := SiteCode(code)
	if _, ok := siteLabels[site]; !ok {
		return "", NewLookupError(TableSiteCode, code)
	}
	return site, nil
}

// DefaultSiteLabels returns a copy of the built-in site label table
func DefaultSiteLabels() map[SiteCode]string {
	labels := make(map[SiteCode]string, len(siteLabels))
	for code, label := range siteLabels {
		labels[code] = label
	}
	return labels
}
