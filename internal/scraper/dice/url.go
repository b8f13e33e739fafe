package dice

import (
	"net/url"
	"sort"
	"strings"
)

const siteBase = "https://www.dice.com"

// CanonicalJobURL normalizes a job link so that tracking noise in the query
// string cannot make the same posting look new on a later run.
func CanonicalJobURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "/") {
		raw = siteBase + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") ||
			lk == "gclid" || lk == "fbclid" || lk == "msclkid" ||
			lk == "mkt_tok" {
			q.Del(k)
		}
	}

	// Job-detail pages are fully identified by their path.
	if strings.Contains(u.Path, "/job-detail/") {
		u.RawQuery = ""
		u.Path = strings.TrimSuffix(u.Path, "/")
		return u.String()
	}

	// deterministic query
	for k := range q {
		vals := q[k]
		sort.Strings(vals)
		q[k] = vals
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// JobIDFromURL extracts the trailing path segment of a canonical job link.
func JobIDFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	path := strings.TrimSuffix(u.Path, "/")
	idx := strings.LastIndex(path, "/")
	if idx < 0 || idx == len(path)-1 {
		return ""
	}
	return path[idx+1:]
}
