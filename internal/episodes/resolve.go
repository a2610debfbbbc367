package episodes

import (
	"fmt"
	"sort"
	"strings"

	"marquee/internal/envelope"
	"marquee/internal/fields"
	"marquee/internal/textutil"
)

// Record is one playable episode. Within a resolved list SequenceNumber and
// Slug are unique and records are ordered by SequenceNumber.
type Record struct {
	DisplayName    string `json:"displayName"`
	SequenceNumber int    `json:"sequenceNumber"`
	Slug           string `json:"slug"`
	PlaybackURL    string `json:"playbackUrl"`
	StreamURL      string `json:"streamUrl,omitempty"`
	Server         string `json:"server,omitempty"`
}

// Options tune a resolution.
type Options struct {
	// RequestedSlug pins the initial episode when it matches a record.
	RequestedSlug string
	// AiredCount caps non-synthesized lists; zero means unknown.
	AiredCount int
}

// Result is a resolved episode list and the episode to start on. Initial is
// nil when there is nothing to play yet.
type Result struct {
	Source   SourceKind `json:"source"`
	Episodes []Record   `json:"episodes"`
	Initial  *Record    `json:"initial"`
}

// candidate is a parsed record before numbering is settled.
type candidate struct {
	record Record
	number Number
}

// Resolve dispatches src to the resolver for its encoding and applies the
// shared ordering, capping and initial selection.
func Resolve(src Source, opts Options) Result {
	var (
		kind       = KindNone
		candidates []candidate
	)
	switch s := src.(type) {
	case StructuredSource:
		kind, candidates = KindStructured, resolveStructured(s)
	case *StructuredSource:
		if s != nil {
			kind, candidates = KindStructured, resolveStructured(*s)
		}
	case DelimitedSource:
		kind, candidates = KindDelimited, resolveDelimited(s)
	case *DelimitedSource:
		if s != nil {
			kind, candidates = KindDelimited, resolveDelimited(*s)
		}
	case SynthesizedSource:
		kind, candidates = KindSynthesized, resolveSynthesized(s)
	case *SynthesizedSource:
		if s != nil {
			kind, candidates = KindSynthesized, resolveSynthesized(*s)
		}
	}

	records := finalize(candidates)
	if kind != KindSynthesized && opts.AiredCount > 0 && len(records) > opts.AiredCount {
		records = records[:opts.AiredCount]
	}
	return Result{
		Source:   kind,
		Episodes: records,
		Initial:  pickInitial(records, opts.RequestedSlug),
	}
}

// ResolveDetail resolves the episodes of an unwrapped movie detail, using
// the movie's progress label as the aired count.
func ResolveDetail(detail envelope.Detail, requestedSlug string) Result {
	opts := Options{RequestedSlug: requestedSlug}
	if progress, ok := fields.EpisodeProgress(detail.Movie); ok {
		if count, ok := ParseProgressCount(progress); ok {
			opts.AiredCount = count
		}
	}
	return Resolve(Detect(detail.Movie, detail.Episodes), opts)
}

func resolveStructured(src StructuredSource) []candidate {
	seen := make(map[string]struct{})
	var out []candidate
	for _, group := range src.Groups {
		for _, ep := range group.Episodes {
			slug := strings.ToLower(strings.TrimSpace(ep.Slug))
			if slug != "" {
				if _, dup := seen[slug]; dup {
					continue
				}
				seen[slug] = struct{}{}
			}
			label := ep.Name
			if label == "" {
				label = ep.Slug
			}
			playback := ep.LinkEmbed
			if playback == "" {
				playback = ep.LinkM3U8
			}
			out = append(out, candidate{
				record: Record{
					DisplayName: strings.TrimSpace(ep.Name),
					Slug:        slug,
					PlaybackURL: playback,
					StreamURL:   ep.LinkM3U8,
					Server:      group.Name,
				},
				number: ParseNumber(label),
			})
		}
	}
	return out
}

func resolveDelimited(src DelimitedSource) []candidate {
	seen := make(map[string]struct{})
	var out []candidate
	for _, line := range strings.Split(src.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		for len(parts) < 3 {
			parts = append(parts, "")
		}
		name := strings.TrimSpace(parts[0])
		slug := strings.ToLower(strings.TrimSpace(parts[1]))
		embed := strings.TrimSpace(parts[2])

		label := name
		if label == "" {
			label = slug
		}
		num := ParseNumber(label)
		key := dedupKey(num, strings.ToLower(label))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, candidate{
			record: Record{DisplayName: name, Slug: slug, PlaybackURL: embed},
			number: num,
		})
	}
	return out
}

func dedupKey(num Number, label string) string {
	if num.OK {
		return fmt.Sprintf("%d|%s", num.Value, label)
	}
	return "?" + num.Raw + "|" + label
}

// maxSynthesized bounds placeholder lists built from a progress label.
const maxSynthesized = 2000

func resolveSynthesized(src SynthesizedSource) []candidate {
	count := min(src.Count, maxSynthesized)
	out := make([]candidate, 0, max(count, 0))
	for i := 1; i <= count; i++ {
		out = append(out, candidate{
			record: Record{
				DisplayName: fmt.Sprintf("Tập %d", i),
				Slug:        fmt.Sprintf("tap-%02d", i),
			},
			number: Number{Value: i, OK: true, Raw: fmt.Sprint(i)},
		})
	}
	return out
}

// finalize numbers unrecognized labels after the highest recognized number,
// drops later records that repeat a number or slug, fills missing names and
// slugs, and sorts.
func finalize(candidates []candidate) []Record {
	highest := 0
	for _, c := range candidates {
		if c.number.OK && c.number.Value > highest {
			highest = c.number.Value
		}
	}

	records := make([]Record, 0, len(candidates))
	numbers := make(map[int]struct{}, len(candidates))
	slugs := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		rec := c.record
		if c.number.OK {
			rec.SequenceNumber = c.number.Value
		} else {
			highest++
			rec.SequenceNumber = highest
		}
		if _, dup := numbers[rec.SequenceNumber]; dup {
			continue
		}
		if rec.Slug == "" {
			rec.Slug = textutil.Slugify(rec.DisplayName)
		}
		if rec.Slug == "" {
			rec.Slug = fmt.Sprintf("tap-%02d", rec.SequenceNumber)
		}
		if _, dup := slugs[rec.Slug]; dup {
			continue
		}
		if rec.DisplayName == "" {
			rec.DisplayName = fmt.Sprintf("Tập %02d", rec.SequenceNumber)
		}
		numbers[rec.SequenceNumber] = struct{}{}
		slugs[rec.Slug] = struct{}{}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SequenceNumber < records[j].SequenceNumber
	})
	return records
}

func pickInitial(records []Record, requested string) *Record {
	if len(records) == 0 {
		return nil
	}
	requested = strings.TrimSpace(requested)
	if requested != "" {
		for i := range records {
			if strings.EqualFold(records[i].Slug, requested) {
				return &records[i]
			}
		}
	}
	return &records[0]
}
