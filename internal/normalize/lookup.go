package normalize

import (
	"fmt"

	"mdcatalog/pkg/models"
)

// Lookup holds the display tables normalization reads from. Languages and
// demographics come from configuration; link labels start from the built-in
// site table and may be overridden per site code.
type Lookup struct {
	languages    map[models.Language]string
	demographics map[models.Demographic]string
	linkLabels   map[models.SiteCode]string
	linkCodes    map[string]models.SiteCode
}

// NewLookup validates and copies the configured tables. Link label keys must
// be known site codes and labels must stay unique so the table can be read
// in both directions.
func NewLookup(languages map[string]string, demographics map[int]string, linkLabels map[string]string) (*Lookup, error) {
	l := &Lookup{
		languages:    make(map[models.Language]string, len(languages)),
		demographics: make(map[models.Demographic]string, len(demographics)),
		linkLabels:   models.DefaultSiteLabels(),
	}

	for code, name := range languages {
		if name == "" {
			return nil, fmt.Errorf("language %q has an empty display name", code)
		}
		l.languages[models.Language(code)] = name
	}

	for code, label := range demographics {
		if label == "" {
			return nil, fmt.Errorf("demographic %d has an empty label", code)
		}
		l.demographics[models.Demographic(code)] = label
	}

	for code, label := range linkLabels {
		site, err := models.ParseSiteCode(code)
		if err != nil {
			return nil, fmt.Errorf("link label override: %w", err)
		}
		if label == "" {
			return nil, fmt.Errorf("link label for %q is empty", code)
		}
		l.linkLabels[site] = label
	}

	l.linkCodes = make(map[string]models.SiteCode, len(l.linkLabels))
	for site, label := range l.linkLabels {
		if other, dup := l.linkCodes[label]; dup {
			return nil, fmt.Errorf("link label %q is used by both %q and %q", label, other, site)
		}
		l.linkCodes[label] = site
	}

	return l, nil
}

// Language resolves a language code
func (l *Lookup) Language(code models.Language) (string, error) {
	name, ok := l.languages[code]
	if !ok {
		return "", models.NewLookupError(models.TableLanguage, string(code))
	}
	return name, nil
}

// Demographic resolves a demographic code
func (l *Lookup) Demographic(code models.Demographic) (string, error) {
	label, ok := l.demographics[code]
	if !ok {
		return "", models.NewLookupError(models.TableDemographic, fmt.Sprint(int(code)))
	}
	return label, nil
}

// LinkLabel returns the display label of a site
func (l *Lookup) LinkLabel(site models.SiteCode) (string, error) {
	label, ok := l.linkLabels[site]
	if !ok {
		return "", models.NewLookupError(models.TableSiteCode, string(site))
	}
	return label, nil
}

// SiteCode maps a display label back to its site
func (l *Lookup) SiteCode(label string) (models.SiteCode, error) {
	site, ok := l.linkCodes[label]
	if !ok {
		return "", models.NewLookupError(models.TableLinkLabel, label)
	}
	return site, nil
}

// LanguageCount returns the number of known language codes
func (l *Lookup) LanguageCount() int {
	return len(l.languages)
}
