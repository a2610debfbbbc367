package fields

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"marquee/internal/rawjson"
)

const minYear = 1900

// YearKeys lists the raw fields consulted for the release year, in order.
var YearKeys = []string{"year", "release_year", "release_date", "first_air_date", "aired", "publish_year"}

var (
	fourDigits = regexp.MustCompile(`^\d{4}$`)
	isoPrefix  = regexp.MustCompile(`^(\d{4})-\d{2}-\d{2}`)
	allDigits  = regexp.MustCompile(`^\d+$`)
)

var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// YearParser turns the loose year representations seen upstream into a
// calendar year. Now bounds the accepted range; nil means time.Now.
type YearParser struct {
	Now func() time.Time
}

// ParseYear parses v with the wall clock.
func ParseYear(v any) (int, bool) {
	return YearParser{}.Parse(v)
}

// Year resolves the release year of a raw item with the wall clock.
func Year(raw map[string]any) (int, bool) {
	return YearParser{}.Chain()(raw)
}

// Chain builds the year accessor chain over YearKeys.
func (p YearParser) Chain() Accessor[int] {
	accessors := make([]Accessor[int], 0, len(YearKeys))
	for _, key := range YearKeys {
		accessors = append(accessors, func(raw map[string]any) (int, bool) {
			v, ok := raw[key]
			if !ok {
				return 0, false
			}
			return p.Parse(v)
		})
	}
	return FirstOf(accessors...)
}

func (p YearParser) maxYear() int {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return now().UTC().Year() + 5
}

// Parse accepts a four digit year, an ISO date prefix, a bare integer that is
// either a year or Unix seconds, or any other common date layout. Every
// result must fall in 1900..now+5; anything else is absent.
func (p YearParser) Parse(v any) (int, bool) {
	switch val := v.(type) {
	case json.Number:
		if n, ok := rawjson.Int(val); ok {
			return p.parseInteger(int64(n))
		}
		return p.parseString(val.String())
	case float64, int, int64:
		f, ok := rawjson.Number(val)
		if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt64/2 {
			return 0, false
		}
		return p.parseInteger(int64(f))
	case string:
		return p.parseString(val)
	default:
		return 0, false
	}
}

func (p YearParser) parseString(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if fourDigits.MatchString(s) {
		year, _ := strconv.Atoi(s)
		return p.plausible(year)
	}
	if m := isoPrefix.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		return p.plausible(year)
	}
	if allDigits.MatchString(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return p.parseInteger(n)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return p.plausible(t.Year())
		}
	}
	return 0, false
}

// parseInteger reads values below 10000 as a literal year and anything
// larger as Unix seconds.
func (p YearParser) parseInteger(n int64) (int, bool) {
	if n < 0 {
		return 0, false
	}
	if n < 10000 {
		return p.plausible(int(n))
	}
	return p.plausible(time.Unix(n, 0).UTC().Year())
}

func (p YearParser) plausible(year int) (int, bool) {
	if year < minYear || year > p.maxYear() {
		return 0, false
	}
	return year, true
}
