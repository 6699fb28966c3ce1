package models

import (
	"slices"
	"time"
)

// User is a public account profile
type User struct {
	ID        int    `json:"id" validate:"gt=0"`
	Username  string `json:"username" validate:"required"`
	Avatar    string `json:"avatar"`
	Biography string `json:"biography"`
	Website   string `json:"website"`
	Joined    int64  `json:"joined"`
	LastSeen  int64  `json:"lastSeen"`
	LevelID   int    `json:"levelId"`
	MDAtHome  int    `json:"mdAtHome"`
	Premium   bool   `json:"premium"`
	Uploads   int    `json:"uploads"`
	Views     int    `json:"views"`
}

// JoinedAt converts the registration timestamp
func (u User) JoinedAt() time.Time {
	return time.Unix(u.Joined, 0).UTC()
}

// UserSettings holds account preferences
type UserSettings struct {
	ID                      int      `json:"id" validate:"gt=0"`
	ExcludeTags             []string `json:"excludeTags"`
	HentaiMode              int      `json:"hentaiMode"`
	LatestUpdates           int      `json:"latestUpdates"`
	ShowModeratedPosts      bool     `json:"showModeratedPosts"`
	ShowUnavailableChapters bool     `json:"showUnavailableChapters"`
	ShownChaptersLangs      []string `json:"shownChaptersLangs"`
}

// FollowType is an entry of the follow type catalog (reading, completed, ...)
type FollowType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserManga is a user's reading-list record for one title
type UserManga struct {
	UserID     int    `json:"userId" validate:"gt=0"`
	MangaID    int    `json:"mangaId" validate:"gt=0"`
	FollowType int    `json:"followType"`
	Rating     int    `json:"rating"`
	Chapter    string `json:"chapter"`
	Volume     string `json:"volume"`
}

// UserMangaRating is returned after clearing a rating; rating is always null
type UserMangaRating struct {
	MangaID int  `json:"mangaId" validate:"gt=0"`
	Rating  *int `json:"rating"`
}

// FollowedPartialManga is a followed title with last-read progress
type FollowedPartialManga struct {
	MangaID    int    `json:"mangaId" validate:"gt=0"`
	FollowType int    `json:"followType"`
	Rating     *int   `json:"rating,omitempty"`
	Chapter    string `json:"chapter"`
	Volume     string `json:"volume"`
}

// FollowedUpdates is the feed of new chapters for followed titles
type FollowedUpdates struct {
	Chapters []PartialChapter        `json:"chapters" validate:"dive"`
	Groups   []Group                 `json:"groups" validate:"dive"`
	Manga    map[string]PartialManga `json:"manga"`
}

// FollowedChapter is one resolved entry of a followed-updates feed
type FollowedChapter struct {
	PartialChapter
	Manga        PartialManga `json:"manga"`
	GroupNames   []string     `json:"groupNames"`
	LanguageName string       `json:"languageName"`
}

// ReadState is the tri-state answer of ReadChaptersStatus
type ReadState int

const (
	ReadStateUnknown ReadState = iota
	ReadStateRead
	ReadStateUnread
)

func (s ReadState) String() string {
	switch s {
	case ReadStateRead:
		return "read"
	case ReadStateUnread:
		return "unread"
	default:
		return "unknown"
	}
}

// ReadChaptersStatus reports read markers. A nil list means the API gave
// no information; an empty list means none.
type ReadChaptersStatus struct {
	Read   *[]int `json:"read,omitempty"`
	Unread *[]int `json:"unread,omitempty"`
}

// State reports what is known about one chapter
func (s ReadChaptersStatus) State(chapterID int) ReadState {
	if s.Read != nil && slices.Contains(*s.Read, chapterID) {
		return ReadStateRead
	}
	if s.Unread != nil && slices.Contains(*s.Unread, chapterID) {
		return ReadStateUnread
	}
	return ReadStateUnknown
}
