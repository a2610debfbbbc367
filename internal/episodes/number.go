package episodes

import (
	"regexp"
	"strconv"
	"strings"

	"marquee/internal/textutil"
)

var (
	labelledNumber = regexp.MustCompile(`\b(?:tap|episode|ep|e)\s*[.:#-]?\s*(\d+)`)
	anyNumber      = regexp.MustCompile(`\d+`)
	progressRatio  = regexp.MustCompile(`(\d+)\s*/\s*\d+`)
)

// Number is the result of reading an episode number out of a label. When OK
// is false the label had no digits and Raw holds a short fallback token.
type Number struct {
	Value int
	OK    bool
	Raw   string
}

// ParseNumber reads the episode number from labels such as "Tập 05",
// "Episode 12" or "E3". Digits following a label token win over the first
// digits anywhere in the string.
func ParseNumber(name string) Number {
	folded := textutil.Fold(name)
	if m := labelledNumber.FindStringSubmatch(folded); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return Number{Value: n, OK: true, Raw: m[1]}
		}
	}
	if digits := anyNumber.FindString(folded); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			return Number{Value: n, OK: true, Raw: digits}
		}
	}
	return Number{Raw: fallbackToken(name)}
}

func fallbackToken(name string) string {
	runes := []rune(strings.ToLower(strings.TrimSpace(name)))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

// ParseProgressCount reads how many episodes have aired from a progress
// label. "x/y" yields x; otherwise the episode number is used. Non-positive
// counts are absent.
func ParseProgressCount(progress string) (int, bool) {
	if m := progressRatio.FindStringSubmatch(progress); m != nil {
		n, err := strconv.Atoi(m[1])
		return n, err == nil && n > 0
	}
	num := ParseNumber(progress)
	return num.Value, num.OK && num.Value > 0
}
