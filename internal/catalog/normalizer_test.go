package catalog_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"marquee/internal/catalog"
	"marquee/internal/config"
	"marquee/internal/envelope"
	"marquee/internal/fields"
	"marquee/internal/imageurl"
)

func newNormalizer() *catalog.Normalizer {
	n := catalog.NewNormalizer(nil, nil)
	n.Years = fields.YearParser{Now: func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }}
	return n
}

func decode(t *testing.T, raw string) any {
	t.Helper()
	body, err := envelope.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestPageEndToEnd(t *testing.T) {
	body := decode(t, `{"data":{"data":{"items":[{"name":"Phim A","year":"2019","poster_url":"upload/x.jpg"}]}}}`)
	page := newNormalizer().Page(body)
	if len(page.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(page.Items))
	}
	item := page.Items[0]
	if item.Title != "Phim A" {
		t.Errorf("title = %q", item.Title)
	}
	if item.Year == nil || *item.Year != 2019 {
		t.Errorf("year = %v, want 2019", item.Year)
	}
	if !strings.HasSuffix(item.ImageHighRes, "/upload/x.jpg?quality=80") || !strings.HasPrefix(item.ImageHighRes, "https://phimimg.com/") {
		t.Errorf("imageHighRes = %q", item.ImageHighRes)
	}
	if item.Kind != fields.KindSeries || item.Quality != "HD" || item.Language != "Vietsub" {
		t.Errorf("defaults not applied: %+v", item)
	}
	want := envelope.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 1}
	if page.Pagination != want {
		t.Errorf("pagination = %+v, want %+v", page.Pagination, want)
	}
}

func TestNormalizeFullItem(t *testing.T) {
	raw := decode(t, `{
		"_id": "a1b2",
		"name": "Người Nhện",
		"origin_name": "Spider-Man",
		"slug": "nguoi-nhen",
		"year": 2021,
		"tmdb": {"vote_average": 7.9},
		"quality": "FHD",
		"lang": "Vietsub + Lồng Tiếng",
		"type": "single",
		"episode_current": "Full",
		"episode_total": "1",
		"poster_url": "https://phimimg.com/upload/vod/spider.jpg"
	}`)
	got := newNormalizer().Normalize(raw)
	year, rating, total := 2021, 7.9, 1
	want := catalog.Item{
		ID:              "a1b2",
		Title:           "Người Nhện",
		OriginalTitle:   "Spider-Man",
		ImageLowRes:     "https://phimimg.com/upload/vod/spider.jpg?quality=30&width=200",
		ImageHighRes:    "https://phimimg.com/upload/vod/spider.jpg?quality=80",
		Year:            &year,
		Rating:          &rating,
		Quality:         "FHD",
		Language:        "Vietsub + Lồng Tiếng",
		Kind:            fields.KindSingle,
		EpisodeProgress: "Full",
		EpisodeTotal:    &total,
		Slug:            "nguoi-nhen",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize =\n%+v\nwant\n%+v", got, want)
	}
}

func TestNormalizeMalformedInput(t *testing.T) {
	n := newNormalizer()
	inputs := []any{
		nil,
		"string item",
		42.0,
		[]any{1, 2},
		map[string]any{},
		map[string]any{"name": map[string]any{"vi": "x"}, "year": []any{"2020"}, "poster_url": 12},
		map[string]any{"name": "   ", "images": map[string]any{"tiny": true}, "tmdb": "oops"},
		decode(t, `{"episode_total":{"n":1},"quality":null,"lang":false,"rating":"NaN"}`),
	}
	for _, in := range inputs {
		item := n.Normalize(in)
		if item.Title == "" {
			t.Errorf("Normalize(%#v) produced empty title", in)
		}
		if item.ImageLowRes == "" || item.ImageHighRes == "" {
			t.Errorf("Normalize(%#v) produced empty image pair", in)
		}
		if item.Kind != fields.KindSeries && item.Kind != fields.KindSingle {
			t.Errorf("Normalize(%#v) kind = %q", in, item.Kind)
		}
		if item.Rating != nil && (*item.Rating <= 0 || *item.Rating > 10) {
			t.Errorf("Normalize(%#v) rating = %v", in, *item.Rating)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := newNormalizer()
	raws := []string{
		`{"name":"Phim A","year":"2019","poster_url":"upload/x.jpg"}`,
		`{"title":"Film B","release_date":"2020-05-01","vote_average":"6.4","thumb_url":"http://cdn.example.org/b.png?v=2"}`,
		`{"origin_name":"Only Origin","modified":{"time":"2024-01-01"},"episode_current":"Tập 5","episode_total":"16 Tập"}`,
		`{"id":99,"name":"Đảo Hải Tặc","type":"SINGLE","images":{"large":"//phimimg.com/upload/op.jpg"}}`,
		`{"year":"2040","quality":"8"}`,
		`{}`,
	}
	for _, raw := range raws {
		first := n.Normalize(decode(t, raw))
		encoded, err := json.Marshal(first)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		second := n.Normalize(decode(t, string(encoded)))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("not idempotent for %s:\nfirst  %+v\nsecond %+v", raw, first, second)
		}
	}
}

func TestNormalizeAllIsolatesItems(t *testing.T) {
	items := newNormalizer().NormalizeAll([]any{nil, map[string]any{"name": "Ok"}, "bad"})
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[1].Title != "Ok" {
		t.Fatalf("middle title = %q", items[1].Title)
	}
	if items[0].Title != fields.DefaultTitle || items[2].Title != fields.DefaultTitle {
		t.Fatalf("malformed siblings should take defaults: %+v", items)
	}
}

func TestNormalizerUsesConfiguredDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.DefaultTitle = "Untitled"
	cfg.Catalog.DefaultQuality = "SD"
	cfg.Images.Placeholder = "/static/none.png"
	n := catalog.NewNormalizer(&cfg, nil)

	item := n.Normalize(map[string]any{})
	if item.Title != "Untitled" || item.Quality != "SD" {
		t.Fatalf("configured defaults ignored: %+v", item)
	}
	if item.ImageHighRes != "/static/none.png" || item.ImageLowRes != "/static/none.png" {
		t.Fatalf("placeholder = %q / %q", item.ImageLowRes, item.ImageHighRes)
	}
}

func TestNilNormalizerUsesDefaults(t *testing.T) {
	var n *catalog.Normalizer
	item := n.Normalize(map[string]any{"name": "X"})
	if item.Title != "X" || item.ImageHighRes != imageurl.DefaultPlaceholder {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestPageUnknownShape(t *testing.T) {
	page := newNormalizer().Page(decode(t, `{"status":"error"}`))
	if len(page.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(page.Items))
	}
	if page.Pagination.CurrentPage != 1 || page.Pagination.TotalPages != 1 {
		t.Fatalf("pagination = %+v", page.Pagination)
	}
}
