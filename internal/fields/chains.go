package fields

import (
	"regexp"
	"strconv"
	"strings"

	"marquee/internal/rawjson"
	"marquee/internal/textutil"
)

const (
	DefaultTitle    = "Không có tiêu đề"
	DefaultQuality  = "HD"
	DefaultLanguage = "Vietsub"

	KindSeries = "series"
	KindSingle = "single"
)

// Fallback chains, one per canonical field. Canonical output names are part
// of each chain so a normalized item fed back in resolves to itself.
var (
	TitleChain         = FirstOf(stringsAt("name", "title", "origin_name")...)
	OriginalTitleChain = FirstOf(stringsAt("origin_name", "originalTitle", "original_title", "original_name")...)
	LanguageChain      = FirstOf(stringsAt("lang", "language")...)
	ProgressChain      = FirstOf(stringsAt("episode_current", "episodeProgress", "current_episode")...)
	IDChain            = FirstOf(stringsAt("_id", "id")...)
	SlugChain          = StringAt("slug")

	QualityChain = StringAt("quality").Where(func(s string) bool {
		_, numeric := rawjson.Number(s)
		return !numeric
	})

	// RatingChain accepts scores in (0, 10]. Upstream sends 0 for "unrated",
	// so a zero falls through to the next source and an all-zero item has no
	// rating.
	RatingChain = FirstOf(
		ratingAt("tmdb", "vote_average"),
		ratingAt("imdb", "rating"),
		ratingAt("vote_average"),
		ratingAt("rating"),
		ratingAt("quality"),
	)

	ImageChain = FirstOf(
		ValueAt("poster_url"),
		ValueAt("thumb_url"),
		ValueAt("imageHighRes"),
		ValueAt("poster_path"),
		ValueAt("poster"),
		ValueAt("image"),
		ValueAt("images"),
		ValueAt("thumbnail"),
		ValueAt("backdrop_path"),
	)

	TotalChain = FirstOf(totalAt("episode_total"), totalAt("episodeTotal"), totalAt("total_episodes"))

	KindChain = FirstOf(stringsAt("type", "kind")...)
)

var firstDigits = regexp.MustCompile(`\d+`)

// ratingAt accepts only scores in (0, 10]; zero means "unrated" upstream.
func ratingAt(path ...string) Accessor[float64] {
	return NumberAt(path...).Where(func(v float64) bool { return v > 0 && v <= 10 })
}

// totalAt reads the first positive integer found in the value at key, so
// "12 Tập" and 12 both resolve to 12.
func totalAt(key string) Accessor[int] {
	return func(raw map[string]any) (int, bool) {
		v, ok := rawjson.Get(raw, key)
		if !ok {
			return 0, false
		}
		if n, ok := rawjson.Int(v); ok {
			return n, n > 0
		}
		s, ok := rawjson.String(v)
		if !ok {
			return 0, false
		}
		match := firstDigits.FindString(s)
		if match == "" {
			return 0, false
		}
		n, err := strconv.Atoi(match)
		if err != nil || n <= 0 {
			return 0, false
		}
		return n, true
	}
}

func Title(raw map[string]any) string { return TitleChain.Or(raw, DefaultTitle) }

func OriginalTitle(raw map[string]any) string { return OriginalTitleChain.Or(raw, "") }

func Quality(raw map[string]any) string { return QualityChain.Or(raw, DefaultQuality) }

func Language(raw map[string]any) string { return LanguageChain.Or(raw, DefaultLanguage) }

// Rating resolves the score through RatingChain; 0 is treated as unrated.
func Rating(raw map[string]any) (float64, bool) { return RatingChain(raw) }

func ImageSource(raw map[string]any) (any, bool) { return ImageChain(raw) }

func EpisodeProgress(raw map[string]any) (string, bool) { return ProgressChain(raw) }

func EpisodeTotal(raw map[string]any) (int, bool) { return TotalChain(raw) }

func ID(raw map[string]any) string { return IDChain.Or(raw, "") }

// Kind reports "single" for an explicit single type or a one-episode total,
// and "series" otherwise.
func Kind(raw map[string]any) string {
	if kind, ok := KindChain(raw); ok && strings.EqualFold(kind, KindSingle) {
		return KindSingle
	}
	if total, ok := TotalChain(raw); ok && total == 1 {
		return KindSingle
	}
	return KindSeries
}

// Slug returns the upstream slug, or one derived from the resolved title when
// the item has none. The placeholder title never yields a slug.
func Slug(raw map[string]any) string {
	if slug, ok := SlugChain(raw); ok {
		return slug
	}
	if title, ok := TitleChain(raw); ok && title != DefaultTitle {
		return textutil.Slugify(title)
	}
	return ""
}
