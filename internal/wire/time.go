package wire

import "time"

// offsetLayout renders a timestamp as ISO-8601 with a numeric UTC offset
// (e.g. "+00:00") rather than the "Z" RFC3339 uses for UTC, matching the
// wire format the envelope reader/writer round-trip against.
const offsetLayout = "2006-01-02T15:04:05.999999999-07:00"

// fallbackLayouts are tried, in order, after the two RFC3339 variants when
// parsing a timestamp that arrived from a source that never emitted
// through FormatTime.
var fallbackLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a timestamp with offset, tolerating the handful of
// near-RFC3339 shapes carrier payloads are observed to send.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{
		Layout:  offsetLayout,
		Value:   s,
		Message: "cannot parse as an envelope timestamp",
	}
}

// FormatTime renders t as ISO-8601 with a numeric offset, trimming a
// trailing fractional part of all zeroes.
func FormatTime(t time.Time) string {
	return t.Format(offsetLayout)
}
