package models

import "time"

// FoundedLayout is the wire format of CatalogGroup.Founded
const FoundedLayout = "2006-01-02"

// Group is a scanlation group reference
type Group struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required"`
}

// GroupMember identifies a group leader or member
type GroupMember struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CatalogGroup is the full group profile
type CatalogGroup struct {
	Group
	AltNames    string        `json:"altNames"`
	Banner      *string       `json:"banner,omitempty"`
	Description string        `json:"description"`
	Founded     string        `json:"founded"`
	Language    Language      `json:"language"`
	Website     string        `json:"website"`
	Discord     string        `json:"discord"`
	Email       string        `json:"email"`
	IRCChannel  string        `json:"ircChannel"`
	IRCServer   string        `json:"ircServer"`
	IsInactive  bool          `json:"isInactive"`
	IsLocked    bool          `json:"isLocked"`
	Delay       int           `json:"delay"`
	Leader      GroupMember   `json:"leader"`
	Members     []GroupMember `json:"members"`
	LastUpdated int64         `json:"lastUpdated"`
	ThreadID    int           `json:"threadId"`
	ThreadPosts int           `json:"threadPosts"`
	Chapters    int           `json:"chapters"`
	Follows     int           `json:"follows"`
	Likes       int           `json:"likes"`
	Views       int           `json:"views"`
}

// FoundedDate parses the founding date
func (g CatalogGroup) FoundedDate() (time.Time, error) {
	t, err := time.Parse(FoundedLayout, g.Founded)
	if err != nil {
		return time.Time{}, NewShapeError("founded", "must be formatted as YYYY-MM-DD", err)
	}
	return t, nil
}

// LastUpdatedAt converts the last update timestamp
func (g CatalogGroup) LastUpdatedAt() time.Time {
	return time.Unix(g.LastUpdated, 0).UTC()
}
