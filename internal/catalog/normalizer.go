package catalog

import (
	"fmt"
	"log/slog"

	"marquee/internal/config"
	"marquee/internal/envelope"
	"marquee/internal/fields"
	"marquee/internal/imageurl"
	"marquee/internal/logging"
	"marquee/internal/rawjson"
	"marquee/internal/textutil"
)

// Normalizer maps raw upstream items onto Item values.
type Normalizer struct {
	Images          imageurl.Resolver
	Years           fields.YearParser
	DefaultTitle    string
	DefaultQuality  string
	DefaultLanguage string
	Logger          *slog.Logger
}

// NewNormalizer builds a normalizer from the images and catalog sections of
// cfg. A nil cfg uses built-in defaults.
func NewNormalizer(cfg *config.Config, logger *slog.Logger) *Normalizer {
	n := &Normalizer{Logger: logging.NewComponentLogger(logger, "catalog")}
	if cfg != nil {
		n.Images = imageurl.Resolver{
			CDNHost:     cfg.Images.CDNHost,
			CDNBaseURL:  cfg.Images.CDNBaseURL,
			Placeholder: cfg.Images.Placeholder,
			HighQuality: cfg.Images.HighQuality,
			LowQuality:  cfg.Images.LowQuality,
			LowWidth:    cfg.Images.LowWidth,
		}
		n.DefaultTitle = cfg.Catalog.DefaultTitle
		n.DefaultQuality = cfg.Catalog.DefaultQuality
		n.DefaultLanguage = cfg.Catalog.DefaultLanguage
	}
	return n
}

func (n *Normalizer) defaults() (title, quality, language string) {
	title, quality, language = fields.DefaultTitle, fields.DefaultQuality, fields.DefaultLanguage
	if n == nil {
		return
	}
	if n.DefaultTitle != "" {
		title = n.DefaultTitle
	}
	if n.DefaultQuality != "" {
		quality = n.DefaultQuality
	}
	if n.DefaultLanguage != "" {
		language = n.DefaultLanguage
	}
	return
}

func (n *Normalizer) images() imageurl.Resolver {
	if n == nil {
		return imageurl.Default()
	}
	return n.Images
}

// Fallback returns the item used when nothing could be resolved.
func (n *Normalizer) Fallback() Item {
	title, quality, language := n.defaults()
	placeholder := n.images().PlaceholderPair()
	return Item{
		Title:        title,
		ImageLowRes:  placeholder.Low,
		ImageHighRes: placeholder.High,
		Quality:      quality,
		Language:     language,
		Kind:         fields.KindSeries,
	}
}

// Normalize converts one raw item. It never panics; input that is not an
// object, or a resolver failure, yields Fallback.
func (n *Normalizer) Normalize(raw any) (item Item) {
	defer func() {
		if r := recover(); r != nil {
			if n != nil {
				logging.WarnWithContext(n.Logger, "catalog item normalization failed", "normalize_panic",
					logging.String("panic", fmt.Sprint(r)),
					logging.String(logging.FieldErrorHint, "inspect the raw upstream item"),
					logging.String(logging.FieldImpact, "item rendered with default fields"),
				)
			}
			item = n.Fallback()
		}
	}()

	obj, ok := rawjson.Object(raw)
	if !ok {
		return n.Fallback()
	}

	title, quality, language := n.defaults()
	item = Item{
		ID:            fields.ID(obj),
		Title:         fields.TitleChain.Or(obj, title),
		OriginalTitle: fields.OriginalTitle(obj),
		Quality:       fields.QualityChain.Or(obj, quality),
		Language:      fields.LanguageChain.Or(obj, language),
		Kind:          fields.Kind(obj),
	}
	item.Slug, _ = fields.SlugChain(obj)
	if item.Slug == "" && item.Title != title {
		item.Slug = textutil.Slugify(item.Title)
	}

	var years fields.YearParser
	if n != nil {
		years = n.Years
	}
	if year, ok := years.Chain()(obj); ok {
		item.Year = &year
	}
	if rating, ok := fields.Rating(obj); ok {
		item.Rating = &rating
	}
	if progress, ok := fields.EpisodeProgress(obj); ok {
		item.EpisodeProgress = progress
	}
	if total, ok := fields.EpisodeTotal(obj); ok {
		item.EpisodeTotal = &total
	}

	source, _ := fields.ImageSource(obj)
	pair := n.images().Resolve(source)
	item.ImageLowRes = pair.Low
	item.ImageHighRes = pair.High
	return item
}

// NormalizeAll normalizes every element independently.
func (n *Normalizer) NormalizeAll(raw []any) []Item {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, n.Normalize(r))
	}
	return items
}

// Page unwraps a list response body and normalizes its items. Pagination
// falls back to a single page holding every item.
func (n *Normalizer) Page(body any) Page {
	result := envelope.Unwrap(body)
	return Page{
		Items:      n.NormalizeAll(result.Items),
		Pagination: result.PaginationOrDefault(),
	}
}
