// Package normalize converts catalog wire records into their formatted,
// presentation-ready forms.
//
// Every conversion is a pure function of its input and the Lookup the
// Normalizer was built with, so one Normalizer can be shared by any number
// of goroutines. Unknown codes are reported as *models.LookupError and never
// replaced by a default.
package normalize

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"mdcatalog/pkg/models"
)

// Normalizer defines the wire to formatted conversions
type Normalizer interface {
	LanguageName(code models.Language) (string, error)
	StatusLabel(code int) (string, error)
	DemographicLabel(code int) (string, error)
	RelationLabel(rel models.RelatedManga) (string, error)
	Links(links models.Links) []models.Link
	LinksFromList(list []models.Link) (models.Links, error)
	Publication(pub models.MangaPublication) (*models.FormattedMangaPublication, error)
	Manga(m models.Manga) (*models.FormattedManga, error)
	MangaTags(m models.Manga, catalog models.Tags) ([]models.Tag, error)
	Chapter(ch models.Chapter) (*models.FormattedChapter, error)
	ChapterGroups(ch models.PartialChapter, groups []models.Group) ([]string, error)
	FollowedUpdates(updates models.FollowedUpdates) ([]models.FollowedChapter, error)
}

type normalizer struct {
	lookup *Lookup
}

// New creates a Normalizer over the given lookup tables
func New(lookup *Lookup) Normalizer {
	return &normalizer{lookup: lookup}
}

// LanguageName resolves a language code to its display name
func (n *normalizer) LanguageName(code models.Language) (string, error) {
	return n.lookup.Language(code)
}

// StatusLabel resolves a publication status code (1-4)
func (n *normalizer) StatusLabel(code int) (string, error) {
	status, err := models.ParsePublicationStatus(code)
	if err != nil {
		return "", err
	}
	return status.String(), nil
}

// DemographicLabel resolves a demographic code through the configured table
func (n *normalizer) DemographicLabel(code int) (string, error) {
	return n.lookup.Demographic(models.Demographic(code))
}

// RelationLabel resolves the relation kind of a related title
func (n *normalizer) RelationLabel(rel models.RelatedManga) (string, error) {
	kind, err := models.ParseRelationKind(rel.Type)
	if err != nil {
		return "", err
	}
	return kind.String(), nil
}

// Links lists the present references in site order
func (n *normalizer) Links(links models.Links) []models.Link {
	out := make([]models.Link, 0, links.Len())
	for _, site := range models.SiteCodes {
		ref := links.Get(site)
		if ref == nil {
			continue
		}
		// every site code has a label: NewLookup starts from the full table
		label, _ := n.lookup.LinkLabel(site)
		out = append(out, models.Link{Title: label, URL: *ref})
	}
	return out
}

// LinksFromList rebuilds the link map from a formatted list
func (n *normalizer) LinksFromList(list []models.Link) (models.Links, error) {
	var links models.Links
	for i, link := range list {
		site, err := n.lookup.SiteCode(link.Title)
		if err != nil {
			return models.Links{}, err
		}
		if links.Get(site) != nil {
			return models.Links{}, models.NewShapeError(fmt.Sprintf("links[%d]", i), fmt.Sprintf("duplicate entry for %s", link.Title), nil)
		}
		if err := links.Set(site, link.URL); err != nil {
			return models.Links{}, err
		}
	}
	return links, nil
}

// Publication adds language, status and demographic names
func (n *normalizer) Publication(pub models.MangaPublication) (*models.FormattedMangaPublication, error) {
	languageName, err := n.LanguageName(pub.Language)
	if err != nil {
		return nil, err
	}
	statusName, err := n.StatusLabel(pub.Status)
	if err != nil {
		return nil, err
	}
	demographicName, err := n.lookup.Demographic(models.Demographic(pub.Demographic))
	if err != nil {
		return nil, err
	}
	return &models.FormattedMangaPublication{
		MangaPublication: pub,
		LanguageName:     languageName,
		StatusName:       statusName,
		DemographicName:  demographicName,
	}, nil
}

// Manga formats a full title
func (n *normalizer) Manga(m models.Manga) (*models.FormattedManga, error) {
	pub, err := n.Publication(m.Publication)
	if err != nil {
		return nil, fmt.Errorf("manga %d: %w", m.ID, err)
	}
	return &models.FormattedManga{
		Manga:       m,
		Links:       n.Links(m.Links),
		Publication: *pub,
	}, nil
}

// MangaTags resolves the title's tag ids against a tag catalog
func (n *normalizer) MangaTags(m models.Manga, catalog models.Tags) ([]models.Tag, error) {
	tags, err := catalog.Resolve(m.Tags)
	if err != nil {
		return nil, fmt.Errorf("manga %d: %w", m.ID, err)
	}
	return tags, nil
}

// Chapter formats a chapter and expands its page list against both servers
func (n *normalizer) Chapter(ch models.Chapter) (*models.FormattedChapter, error) {
	languageName, err := n.LanguageName(ch.Language)
	if err != nil {
		return nil, fmt.Errorf("chapter %d: %w", ch.ID, err)
	}

	out := &models.FormattedChapter{
		Chapter:       ch,
		LanguageName:  languageName,
		PageURLs:      []string{},
		FallbackPages: []string{},
	}
	if ch.Status == models.ChapterUnavailable {
		return out, nil
	}

	if ch.Hash == "" {
		return nil, models.NewShapeError("hash", "is required when status is OK", nil)
	}
	primary, err := PageURLs(ch.Server, ch.Hash, ch.Pages)
	if err != nil {
		return nil, prefixField(err, "server")
	}
	fallback, err := PageURLs(ch.ServerFallback, ch.Hash, ch.Pages)
	if err != nil {
		return nil, prefixField(err, "serverFallback")
	}

	out.PageURLs = primary
	out.FallbackPages = fallback
	return out, nil
}

// PageURLs expands relative page names against a base server URL
func PageURLs(base, hash string, pages []string) ([]string, error) {
	if base == "" {
		return nil, models.NewShapeError("", "is required when status is OK", nil)
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, models.NewShapeError("", fmt.Sprintf("%q is not an absolute http(s) URL", base), err)
	}

	prefix := strings.TrimSuffix(base, "/") + "/"
	urls := make([]string, 0, len(pages))
	for i, page := range pages {
		if page == "" {
			return nil, models.NewShapeError(fmt.Sprintf("pages[%d]", i), "is empty", nil)
		}
		urls = append(urls, prefix+models.PagePath(hash, page))
	}
	return urls, nil
}

// ChapterGroups resolves the chapter's group ids, keeping the chapter's order
func (n *normalizer) ChapterGroups(ch models.PartialChapter, groups []models.Group) ([]string, error) {
	byID := make(map[int]string, len(groups))
	for _, g := range groups {
		byID[g.ID] = g.Name
	}

	names := make([]string, 0, len(ch.Groups))
	for _, id := range ch.Groups {
		name, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("chapter %d: %w", ch.ID, models.NewLookupError(models.TableGroup, strconv.Itoa(id)))
		}
		names = append(names, name)
	}
	return names, nil
}

// FollowedUpdates joins each chapter with its title and group names
func (n *normalizer) FollowedUpdates(updates models.FollowedUpdates) ([]models.FollowedChapter, error) {
	out := make([]models.FollowedChapter, 0, len(updates.Chapters))
	for _, ch := range updates.Chapters {
		manga, ok := updates.Manga[strconv.Itoa(ch.MangaID)]
		if !ok {
			return nil, fmt.Errorf("chapter %d: %w", ch.ID, models.NewLookupError(models.TableManga, strconv.Itoa(ch.MangaID)))
		}
		names, err := n.ChapterGroups(ch, updates.Groups)
		if err != nil {
			return nil, err
		}
		languageName, err := n.LanguageName(ch.Language)
		if err != nil {
			return nil, fmt.Errorf("chapter %d: %w", ch.ID, err)
		}
		out = append(out, models.FollowedChapter{
			PartialChapter: ch,
			Manga:          manga,
			GroupNames:     names,
			LanguageName:   languageName,
		})
	}
	return out, nil
}

func prefixField(err error, field string) error {
	if shapeErr, ok := err.(*models.ShapeError); ok {
		out := *shapeErr
		if out.Field == "" {
			out.Field = field
		} else {
			out.Field = field + "." + out.Field
		}
		return &out
	}
	return err
}
