package episodes

import (
	"strings"

	"marquee/internal/fields"
	"marquee/internal/rawjson"
)

// SourceKind names the encoding an episode list arrived in.
type SourceKind string

const (
	KindNone        SourceKind = "none"
	KindStructured  SourceKind = "structured"
	KindDelimited   SourceKind = "delimited"
	KindSynthesized SourceKind = "synthesized"
)

// Source is one of StructuredSource, DelimitedSource or SynthesizedSource.
type Source interface {
	Kind() SourceKind
}

// RawEpisode is one episode object from a server group.
type RawEpisode struct {
	Name      string
	Slug      string
	LinkEmbed string
	LinkM3U8  string
}

// ServerGroup is a named collection of episodes served from one host.
type ServerGroup struct {
	Name     string
	Episodes []RawEpisode
}

// StructuredSource holds per-server episode objects.
type StructuredSource struct {
	Groups []ServerGroup
}

// DelimitedSource holds one "name|slug|embedUrl" line per episode.
type DelimitedSource struct {
	Text string
}

// SynthesizedSource stands in for a title that only reports how many
// episodes exist.
type SynthesizedSource struct {
	Count int
}

func (StructuredSource) Kind() SourceKind  { return KindStructured }
func (DelimitedSource) Kind() SourceKind   { return KindDelimited }
func (SynthesizedSource) Kind() SourceKind { return KindSynthesized }

// groupKeys are the per-group fields that may hold the episode array.
var groupKeys = []string{"server_data", "items", "episodes"}

// delimitedKeys are the movie fields that may hold a delimited episode list.
var delimitedKeys = []string{"episodes", "episode_links", "episode_list"}

// Detect picks the first episode encoding present for a movie. episodes is
// the collection found beside the movie, if any. It returns nil when no
// encoding is present.
func Detect(movie map[string]any, episodes any) Source {
	if episodes == nil {
		episodes = movie["episodes"]
	}
	if src, ok := detectStructured(episodes); ok {
		return src
	}
	if src, ok := detectDelimited(movie, episodes); ok {
		return src
	}
	if progress, ok := fields.EpisodeProgress(movie); ok {
		if count, ok := ParseProgressCount(progress); ok {
			return SynthesizedSource{Count: count}
		}
	}
	return nil
}

func detectStructured(v any) (StructuredSource, bool) {
	var entries []any
	if obj, ok := rawjson.Object(v); ok {
		entries = []any{obj}
	} else if arr, ok := rawjson.Array(v); ok {
		entries = arr
	}

	var src StructuredSource
	var loose ServerGroup
	total := 0
	for _, entry := range entries {
		obj, ok := rawjson.Object(entry)
		if !ok {
			continue
		}
		if list, ok := groupEpisodes(obj); ok {
			group := ServerGroup{Name: firstString(obj, "server_name", "name")}
			for _, e := range list {
				if ep, ok := rawEpisode(e); ok {
					group.Episodes = append(group.Episodes, ep)
				}
			}
			total += len(group.Episodes)
			src.Groups = append(src.Groups, group)
			continue
		}
		if ep, ok := rawEpisode(obj); ok {
			loose.Episodes = append(loose.Episodes, ep)
			total++
		}
	}
	if len(loose.Episodes) > 0 {
		src.Groups = append(src.Groups, loose)
	}
	return src, total > 0
}

func groupEpisodes(obj map[string]any) ([]any, bool) {
	for _, key := range groupKeys {
		if list, ok := rawjson.ArrayAt(obj, key); ok {
			return list, true
		}
	}
	return nil, false
}

func rawEpisode(v any) (RawEpisode, bool) {
	obj, ok := rawjson.Object(v)
	if !ok {
		return RawEpisode{}, false
	}
	ep := RawEpisode{
		Name:      firstString(obj, "name", "title"),
		Slug:      firstString(obj, "slug"),
		LinkEmbed: firstString(obj, "link_embed", "embed_url"),
		LinkM3U8:  firstString(obj, "link_m3u8", "m3u8_url"),
	}
	if ep == (RawEpisode{}) {
		return RawEpisode{}, false
	}
	return ep, true
}

func detectDelimited(movie map[string]any, episodes any) (DelimitedSource, bool) {
	candidates := []any{episodes}
	for _, key := range delimitedKeys {
		candidates = append(candidates, movie[key])
	}
	for _, c := range candidates {
		text, ok := c.(string)
		if ok && strings.TrimSpace(text) != "" {
			return DelimitedSource{Text: text}, true
		}
	}
	return DelimitedSource{}, false
}

func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := rawjson.String(obj[key]); ok {
			return s
		}
	}
	return ""
}
