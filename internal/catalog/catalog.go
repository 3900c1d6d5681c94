// Package catalog filters and orders publications for the storefront
// listing.  It works on already-fetched rows and never touches the database.
package catalog

import (
	"sort"
	"strings"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/pricing"
)

// Sort keys accepted in Criteria.Sort.  Anything else falls back to the
// default ordering: featured first, then rating descending.
const (
	SortTitle  = "title"
	SortPrice  = "price"
	SortRating = "rating"
	SortIssues = "issues"
	SortCity   = "city"
	SortPoints = "points"
)

// Criteria narrows and orders a listing.  Zero values match everything.
type Criteria struct {
	Search   string
	Type     string // "magazine", "newspaper", "all" or empty
	Category string // category name, "All" or empty
	City     string // applies to newspapers only
	Featured bool
	Sort     string
}

// Filter returns the publications matching c in a deterministic order.  The
// input slice is not modified.  The result is never nil.
func Filter(pubs []model.Publication, c Criteria) []model.Publication {
	out := make([]model.Publication, 0, len(pubs))
	needle := strings.ToLower(strings.TrimSpace(c.Search))
	for _, p := range pubs {
		if !matches(p, c, needle) {
			continue
		}
		out = append(out, p)
	}
	Sort(out, c.Sort)
	return out
}

func matches(p model.Publication, c Criteria, needle string) bool {
	if needle != "" &&
		!strings.Contains(strings.ToLower(p.Title), needle) &&
		!strings.Contains(strings.ToLower(p.Description), needle) {
		return false
	}
	if t := strings.ToLower(c.Type); t != "" && t != "all" && string(p.Type) != t {
		return false
	}
	if c.Category != "" && !strings.EqualFold(c.Category, "all") && p.Category != c.Category {
		return false
	}
	if c.City != "" && !strings.EqualFold(c.City, "all") && p.Type == model.TypeNewspaper {
		if p.City == nil || !strings.EqualFold(*p.City, c.City) {
			return false
		}
	}
	if c.Featured && !p.Featured {
		return false
	}
	return true
}

// Sort orders pubs in place by key.  Ties are broken on id ascending.
func Sort(pubs []model.Publication, key string) {
	less := lessFor(key)
	sort.SliceStable(pubs, func(i, j int) bool {
		a, b := pubs[i], pubs[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID < b.ID
	})
}

func lessFor(key string) func(a, b model.Publication) bool {
	switch strings.ToLower(key) {
	case SortTitle:
		return func(a, b model.Publication) bool { return a.Title < b.Title }
	case SortPrice:
		return func(a, b model.Publication) bool { return a.Price.LessThan(b.Price) }
	case SortRating:
		return func(a, b model.Publication) bool { return a.Rating > b.Rating }
	case SortIssues:
		return func(a, b model.Publication) bool { return intOrZero(a.IssuesPerYear) > intOrZero(b.IssuesPerYear) }
	case SortCity:
		return func(a, b model.Publication) bool { return strOrEmpty(a.City) < strOrEmpty(b.City) }
	case SortPoints:
		return func(a, b model.Publication) bool { return pricing.RewardPoints(a) > pricing.RewardPoints(b) }
	default:
		return func(a, b model.Publication) bool {
			if a.Featured != b.Featured {
				return a.Featured
			}
			return a.Rating > b.Rating
		}
	}
}

// Cities returns the distinct newspaper cities, sorted.
func Cities(pubs []model.Publication) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range pubs {
		if p.Type != model.TypeNewspaper || p.City == nil || *p.City == "" {
			continue
		}
		if !seen[*p.City] {
			seen[*p.City] = true
			out = append(out, *p.City)
		}
	}
	sort.Strings(out)
	return out
}

// Categories returns the distinct categories, sorted.
func Categories(pubs []model.Publication) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range pubs {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
