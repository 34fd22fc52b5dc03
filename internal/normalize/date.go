package normalize

import "time"

// dateLayouts are tried in order: ISO-8601 first (the common case), then the
// RFC-822/1123 family used by RSS feeds, then bare dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02",
}

// ParseTime parses a provider timestamp, returning nil when the value is
// absent or matches no known layout. Ambiguity never aborts normalization;
// a nil result simply means the listing carries no post date.
func ParseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// FromUnix converts a Unix-seconds timestamp to a time, treating zero and
// negative values as absent.
func FromUnix(secs int64) *time.Time {
	if secs <= 0 {
		return nil
	}
	t := time.Unix(secs, 0).UTC()
	return &t
}
