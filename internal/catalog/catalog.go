// Package catalog aggregates and filters CPV classification strings
// scraped from notice detail pages. A stored string may carry several
// codes back to back ("45233140 Obras de carreteras 45233200 ..."); both
// operations segment it on 8-digit code boundaries.
package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/licitavision/placsp-connector/internal/domain"
)

var codeStartRe = regexp.MustCompile(`\b\d{8}`)

// segments splits a stored classification string into 8-digit-prefixed
// segments: each segment is a code plus its trailing descriptive text up
// to the next code or the end of the string.
func segments(s string) []string {
	locs := codeStartRe.FindAllStringIndex(s, -1)
	if locs == nil {
		return nil
	}

	out := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(s)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		seg := strings.TrimSpace(s[loc[0]:end])
		seg = strings.Trim(seg, "-–— \t\n")
		seg = strings.TrimSpace(seg)
		seg = strings.ReplaceAll(seg, " ,", ",")
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// Codes builds the deduplicated, sorted catalog of every classification
// segment observed across the scraped batch. It fails with
// domain.ErrScrapeRequired when no classification data exists yet.
func Codes(cpvs map[string]string) ([]string, error) {
	if len(cpvs) == 0 {
		return nil, domain.ErrScrapeRequired
	}

	seen := make(map[string]struct{})
	var all []string
	for _, stored := range cpvs {
		for _, seg := range segments(stored) {
			if _, dup := seen[seg]; dup {
				continue
			}
			seen[seg] = struct{}{}
			all = append(all, seg)
		}
	}

	sort.Strings(all)
	return all, nil
}

// Filter returns the URLs whose classification segments intersect the
// caller-supplied selection, together with each URL's full segment list.
func Filter(cpvs map[string]string, selected []string) (map[string][]string, error) {
	if len(cpvs) == 0 {
		return nil, domain.ErrScrapeRequired
	}

	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		s = strings.TrimSpace(s)
		if s != "" {
			want[s] = struct{}{}
		}
	}

	results := make(map[string][]string)
	for url, stored := range cpvs {
		segs := segments(stored)
		for _, seg := range segs {
			if _, ok := want[seg]; ok {
				results[url] = segs
				break
			}
		}
	}
	return results, nil
}
