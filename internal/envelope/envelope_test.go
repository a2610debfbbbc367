package envelope_test

import (
	"testing"

	"marquee/internal/envelope"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	body, err := envelope.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return body
}

func TestUnwrapShapes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		shape envelope.Shape
		count int
	}{
		{"bare array", `[{"slug":"a"},{"slug":"b"}]`, envelope.ShapeArray, 2},
		{"items", `{"items":[{"slug":"a"}]}`, envelope.ShapeItems, 1},
		{"data array", `{"data":[{"slug":"a"},{"slug":"b"},{"slug":"c"}]}`, envelope.ShapeData, 3},
		{"data items", `{"status":"success","data":{"items":[{"slug":"a"}]}}`, envelope.ShapeDataItems, 1},
		{"nested data", `{"data":{"data":[{"slug":"a"},{"slug":"b"}]}}`, envelope.ShapeNested, 2},
		{"nested data items", `{"data":{"data":{"items":[{"slug":"a"}]}}}`, envelope.ShapeNested, 1},
		{"results", `{"results":[{"slug":"a"}],"page":1}`, envelope.ShapeResults, 1},
		{"empty items", `{"items":[]}`, envelope.ShapeItems, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := envelope.Unwrap(decode(t, tt.body))
			if res.Shape != tt.shape {
				t.Fatalf("shape = %v, want %v", res.Shape, tt.shape)
			}
			if len(res.Items) != tt.count {
				t.Fatalf("items = %d, want %d", len(res.Items), tt.count)
			}
		})
	}
}

func TestUnwrapPrefersEarlierShape(t *testing.T) {
	res := envelope.Unwrap(decode(t, `{"items":[{"slug":"a"}],"data":[{"slug":"b"},{"slug":"c"}]}`))
	if res.Shape != envelope.ShapeItems || len(res.Items) != 1 {
		t.Fatalf("got shape %v with %d items, want items with 1", res.Shape, len(res.Items))
	}
}

func TestUnwrapUnknownShape(t *testing.T) {
	for _, raw := range []string{`{"status":false,"msg":"not found"}`, `null`, `"oops"`, `42`, `{"items":"nope"}`, `{"data":null}`} {
		res := envelope.Unwrap(decode(t, raw))
		if res.Items == nil || len(res.Items) != 0 {
			t.Fatalf("%s: expected empty non-nil items, got %#v", raw, res.Items)
		}
		if res.Pagination != nil {
			t.Fatalf("%s: expected no pagination, got %+v", raw, res.Pagination)
		}
		if res.Shape != envelope.ShapeNone {
			t.Fatalf("%s: shape = %v, want none", raw, res.Shape)
		}
	}
}

func TestUnwrapNilBody(t *testing.T) {
	res := envelope.Unwrap(nil)
	if len(res.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(res.Items))
	}
	got := res.PaginationOrDefault()
	want := envelope.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 0}
	if got != want {
		t.Fatalf("pagination = %+v, want %+v", got, want)
	}
}

func TestUnwrapPagination(t *testing.T) {
	tests := []struct {
		name string
		body string
		want envelope.Pagination
	}{
		{
			name: "params pagination with per page",
			body: `{"data":{"items":[{"slug":"a"}],"params":{"pagination":{"totalItems":95,"totalItemsPerPage":24,"currentPage":2}}}}`,
			want: envelope.Pagination{CurrentPage: 2, TotalPages: 4, TotalItems: 95},
		},
		{
			name: "container pagination",
			body: `{"data":{"items":[{"slug":"a"}],"pagination":{"currentPage":1,"totalPages":7,"totalItems":150}}}`,
			want: envelope.Pagination{CurrentPage: 1, TotalPages: 7, TotalItems: 150},
		},
		{
			name: "snake case root pagination",
			body: `{"items":[{"slug":"a"}],"pagination":{"current_page":"3","total_pages":"9","total_items":"200"}}`,
			want: envelope.Pagination{CurrentPage: 3, TotalPages: 9, TotalItems: 200},
		},
		{
			name: "tmdb style",
			body: `{"page":2,"results":[{"id":1}],"total_pages":5,"total_results":99}`,
			want: envelope.Pagination{CurrentPage: 2, TotalPages: 5, TotalItems: 99},
		},
		{
			name: "clamps zero pages",
			body: `{"items":[{"slug":"a"},{"slug":"b"}],"pagination":{"currentPage":0,"totalPages":0}}`,
			want: envelope.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 2},
		},
		{
			name: "nested data pagination",
			body: `{"data":{"data":{"items":[{"slug":"a"}],"params":{"pagination":{"currentPage":1,"totalPages":2,"totalItems":40}}}}}`,
			want: envelope.Pagination{CurrentPage: 1, TotalPages: 2, TotalItems: 40},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := envelope.Unwrap(decode(t, tt.body))
			if res.Pagination == nil {
				t.Fatal("expected pagination")
			}
			if *res.Pagination != tt.want {
				t.Fatalf("pagination = %+v, want %+v", *res.Pagination, tt.want)
			}
		})
	}
}

func TestPaginationOrDefaultWithoutBlock(t *testing.T) {
	res := envelope.Unwrap(decode(t, `[{"slug":"a"},{"slug":"b"},{"slug":"c"}]`))
	if res.Pagination != nil {
		t.Fatalf("unexpected pagination %+v", res.Pagination)
	}
	want := envelope.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 3}
	if got := res.PaginationOrDefault(); got != want {
		t.Fatalf("pagination = %+v, want %+v", got, want)
	}
}

func TestDecodeKeepsLargeNumbers(t *testing.T) {
	body := decode(t, `{"modified":1700000000123}`)
	obj := body.(map[string]any)
	if got := obj["modified"]; got == nil || got.(interface{ String() string }).String() != "1700000000123" {
		t.Fatalf("modified = %#v", got)
	}
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	if _, err := envelope.Decode([]byte(`{"items":`)); err == nil {
		t.Fatal("expected error for truncated body")
	}
}

func TestUnwrapDetail(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantSlug     string
		wantEpisodes bool
	}{
		{"movie with sibling episodes", `{"status":true,"movie":{"slug":"a"},"episodes":[{"server_name":"x"}]}`, "a", true},
		{"data item", `{"data":{"item":{"slug":"b","episodes":[]}}}`, "b", true},
		{"data object", `{"data":{"name":"Film C","slug":"c"}}`, "c", false},
		{"item", `{"item":{"slug":"d"}}`, "d", false},
		{"bare", `{"slug":"e","name":"Film E"}`, "e", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, ok := envelope.UnwrapDetail(decode(t, tt.body))
			if !ok {
				t.Fatal("expected detail")
			}
			if got := detail.Movie["slug"]; got != tt.wantSlug {
				t.Fatalf("slug = %v, want %s", got, tt.wantSlug)
			}
			if (detail.Episodes != nil) != tt.wantEpisodes {
				t.Fatalf("episodes present = %v, want %v", detail.Episodes != nil, tt.wantEpisodes)
			}
		})
	}
}

func TestUnwrapDetailMissing(t *testing.T) {
	for _, raw := range []string{`{"status":false}`, `[]`, `null`, `{"data":{"items":[]}}`} {
		if _, ok := envelope.UnwrapDetail(decode(t, raw)); ok {
			t.Fatalf("%s: expected no detail", raw)
		}
	}
}
