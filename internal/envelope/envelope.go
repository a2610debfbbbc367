package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"

	"marquee/internal/rawjson"
)

// Shape identifies which envelope pattern matched a response body.
type Shape int

const (
	ShapeNone      Shape = iota
	ShapeArray           // body is the list
	ShapeItems           // body.items
	ShapeData            // body.data
	ShapeDataItems       // body.data.items
	ShapeNested          // body.data.data or body.data.data.items
	ShapeResults         // body.results
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeItems:
		return "items"
	case ShapeData:
		return "data"
	case ShapeDataItems:
		return "data.items"
	case ShapeNested:
		return "data.data"
	case ShapeResults:
		return "results"
	default:
		return "none"
	}
}

// Result is the outcome of unwrapping a list response.
type Result struct {
	Items      []any
	Pagination *Pagination
	Shape      Shape
}

// PaginationOrDefault returns the extracted pagination, or {1, 1, len(Items)}
// when the body carried none.
func (r Result) PaginationOrDefault() Pagination {
	if r.Pagination != nil {
		return *r.Pagination
	}
	return Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: len(r.Items)}
}

// extractor returns the item array and the object that directly holds it.
type extractor struct {
	shape Shape
	find  func(body any) ([]any, any, bool)
}

// extractors are tried in order; the first match wins.
var extractors = []extractor{
	{ShapeArray, func(body any) ([]any, any, bool) {
		items, ok := rawjson.Array(body)
		return items, nil, ok
	}},
	{ShapeItems, func(body any) ([]any, any, bool) {
		items, ok := rawjson.ArrayAt(body, "items")
		return items, body, ok
	}},
	{ShapeData, func(body any) ([]any, any, bool) {
		items, ok := rawjson.ArrayAt(body, "data")
		return items, body, ok
	}},
	{ShapeDataItems, func(body any) ([]any, any, bool) {
		container, _ := rawjson.Get(body, "data")
		items, ok := rawjson.ArrayAt(container, "items")
		return items, container, ok
	}},
	{ShapeNested, func(body any) ([]any, any, bool) {
		outer, _ := rawjson.Get(body, "data")
		if items, ok := rawjson.ArrayAt(outer, "data"); ok {
			return items, outer, true
		}
		inner, _ := rawjson.Get(outer, "data")
		items, ok := rawjson.ArrayAt(inner, "items")
		return items, inner, ok
	}},
	{ShapeResults, func(body any) ([]any, any, bool) {
		items, ok := rawjson.ArrayAt(body, "results")
		return items, body, ok
	}},
}

// Unwrap extracts the item list and optional pagination block from a decoded
// response body of any shape. It never fails: an unrecognized body yields an
// empty item list and no pagination.
func Unwrap(body any) Result {
	for _, ex := range extractors {
		items, container, ok := ex.find(body)
		if !ok {
			continue
		}
		return Result{
			Items:      items,
			Pagination: findPagination(body, container, len(items)),
			Shape:      ex.shape,
		}
	}
	return Result{Items: []any{}}
}

// Decode parses a JSON response body, keeping numbers as json.Number so large
// Unix timestamps and identifiers are not rounded.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	return body, nil
}
