package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Home is the site-home aggregate
type Home struct {
	Announcement  *Announcement `json:"announcement,omitempty"`
	LatestUpdates LatestUpdates `json:"latest_updates"`
	TopChapters   TopChapters   `json:"top_chapters"`
	TopManga      TopManga      `json:"top_manga"`
}

// Announcement is the optional site banner
type Announcement struct {
	Text string  `json:"text"`
	URL  *string `json:"url,omitempty"`
}

// LatestUpdates holds the global feed and the viewer's follows feed
type LatestUpdates struct {
	All     []HomeUpdate `json:"all" validate:"dive"`
	Follows FollowsFeed  `json:"follows" validate:"required"`
}

// HomeUpdate is one latest-update entry
type HomeUpdate struct {
	ID       int         `json:"id" validate:"gt=0"`
	MangaID  int         `json:"manga_id" validate:"gt=0"`
	Chapter  string      `json:"chapter"`
	Title    string      `json:"title"`
	CoverURL string      `json:"cover_url"`
	Group    GroupMember `json:"group"`
	Uploaded string      `json:"uploaded"`
}

// FollowsFeed is either a list of updates or, when the viewer is not
// signed in, a placeholder string. Branch on IsPlaceholder. The zero value
// is an absent feed, distinct from an empty list.
type FollowsFeed struct {
	placeholder   string
	updates       []HomeUpdate
	isPlaceholder bool
	set           bool
}

// NewFollowsPlaceholder builds the placeholder form
func NewFollowsPlaceholder(text string) FollowsFeed {
	return FollowsFeed{placeholder: text, isPlaceholder: true, set: true}
}

// NewFollowsUpdates builds the list form
func NewFollowsUpdates(updates []HomeUpdate) FollowsFeed {
	return FollowsFeed{updates: updates, set: true}
}

// IsSet reports whether the feed was present on the wire
func (f FollowsFeed) IsSet() bool           { return f.set }
func (f FollowsFeed) IsPlaceholder() bool   { return f.isPlaceholder }
func (f FollowsFeed) Placeholder() string   { return f.placeholder }
func (f FollowsFeed) Updates() []HomeUpdate { return f.updates }

func (f *FollowsFeed) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return NewShapeError("follows", "is empty", nil)
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return NewShapeError("follows", "invalid placeholder string", err)
		}
		*f = NewFollowsPlaceholder(text)
		return nil
	case '[':
		var updates []HomeUpdate
		if err := json.Unmarshal(trimmed, &updates); err != nil {
			return NewShapeError("follows", "invalid update list", err)
		}
		if err := Validate(updates); err != nil {
			return prefixShape(err, "follows")
		}
		*f = NewFollowsUpdates(updates)
		return nil
	default:
		return NewShapeError("follows", fmt.Sprintf("must be a string or a list, got %s", trimmed), nil)
	}
}

func (f FollowsFeed) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	if f.isPlaceholder {
		return json.Marshal(f.placeholder)
	}
	if f.updates == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f.updates)
}

// TopChapterWindow names a top-chapters time window
type TopChapterWindow string

const (
	WindowSixHours TopChapterWindow = "six_hours"
	WindowDay      TopChapterWindow = "day"
	WindowWeek     TopChapterWindow = "week"
)

// TopChapterWindows lists the windows from shortest to longest
var TopChapterWindows = []TopChapterWindow{WindowSixHours, WindowDay, WindowWeek}

// TopChapters buckets the most viewed chapters by time window
type TopChapters struct {
	SixHours []HomeTopChapter `json:"six_hours" validate:"dive"`
	Day      []HomeTopChapter `json:"day" validate:"dive"`
	Week     []HomeTopChapter `json:"week" validate:"dive"`
}

// Window returns one bucket
func (t TopChapters) Window(w TopChapterWindow) ([]HomeTopChapter, error) {
	switch w {
	case WindowSixHours:
		return t.SixHours, nil
	case WindowDay:
		return t.Day, nil
	case WindowWeek:
		return t.Week, nil
	default:
		return nil, NewLookupError("top_chapter_window", string(w))
	}
}

// HomeTopChapter is one top-chapters entry
type HomeTopChapter struct {
	ID       int    `json:"id" validate:"gt=0"`
	MangaID  int    `json:"manga_id" validate:"gt=0"`
	Chapter  string `json:"chapter"`
	Title    string `json:"title"`
	CoverURL string `json:"cover_url"`
	Views    int    `json:"views"`
}

// TopManga buckets the top titles by ranking criterion
type TopManga struct {
	Follows []HomeTopManga `json:"follows" validate:"dive"`
	Rating  []HomeTopManga `json:"rating" validate:"dive"`
}

// HomeTopManga is one top-titles entry
type HomeTopManga struct {
	ID       int     `json:"id" validate:"gt=0"`
	Title    string  `json:"title"`
	CoverURL string  `json:"cover_url"`
	Follows  int     `json:"follows"`
	Rating   float64 `json:"rating"`
	Users    int     `json:"users"`
}
