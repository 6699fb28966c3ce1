package models

// SearchResult is one page of title search results
type SearchResult struct {
	Titles      []SearchResultTitle `json:"titles" validate:"dive"`
	CurrentPage *int                `json:"current_page,omitempty"`
	LastPage    *int                `json:"last_page,omitempty"`
}

// Paging reports the page fields; ok is false when either is absent.
// Absence is not interpreted as a single page.
func (r SearchResult) Paging() (current, last int, ok bool) {
	if r.CurrentPage == nil || r.LastPage == nil {
		return 0, 0, false
	}
	return *r.CurrentPage, *r.LastPage, true
}

// SearchResultTitle is one search hit
type SearchResultTitle struct {
	ID          int          `json:"id" validate:"gt=0"`
	Title       string       `json:"title"`
	ImageURL    string       `json:"image_url"`
	Description string       `json:"description"`
	Views       int          `json:"views"`
	Follows     int          `json:"follows"`
	Rating      SearchRating `json:"rating"`
	LangName    string       `json:"lang_name"`
}

// SearchRating is the compact rating of a search hit
type SearchRating struct {
	Value float64 `json:"value"`
	Votes int     `json:"votes"`
}
