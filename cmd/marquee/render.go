package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"

	"marquee/internal/api"
	"marquee/internal/catalog"
	"marquee/internal/episodes"
	"marquee/internal/textutil"
)

const (
	ansiBlue   = "\x1b[34m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func sectionHeader(title string, colorize bool) string {
	if colorize {
		return ansiBlue + title + ansiReset
	}
	return title
}

func printListResult(out io.Writer, result api.ListResult, colorize bool) {
	p := result.Pagination
	status := fmt.Sprintf("page %d/%d, %d items", p.CurrentPage, p.TotalPages, p.TotalItems)
	switch {
	case result.Stale && result.StaleSince != nil:
		note := "stale since " + result.StaleSince.Local().Format("2006-01-02 15:04")
		if colorize {
			note = ansiYellow + note + ansiReset
		}
		status += ", " + note
	case result.Cached:
		status += ", cached"
	}
	label := string(result.Kind)
	if result.ID != "" {
		label += " " + result.ID
	}
	fmt.Fprintf(out, "%s (%s)\n", sectionHeader(label, colorize), status)
	if len(result.Items) == 0 {
		fmt.Fprintln(out, "No titles")
		return
	}
	fmt.Fprintln(out, renderItems(result.Items, colorize))
}

func renderItems(items []catalog.Item, colorize bool) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Title,
			intOrDash(item.Year),
			item.Kind,
			item.Quality,
			item.Language,
			progress(item),
			ratingOrDash(item.Rating),
			item.Slug,
		})
	}
	return renderTable(
		[]string{"Title", "Year", "Kind", "Quality", "Language", "Episodes", "Rating", "Slug"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
		colorize,
	)
}

func printTitleView(out io.Writer, view api.TitleView, colorize bool) {
	item := view.Item
	fmt.Fprintln(out, sectionHeader(item.Title, colorize))
	if item.OriginalTitle != "" && item.OriginalTitle != item.Title {
		fmt.Fprintf(out, "Original title: %s\n", item.OriginalTitle)
	}
	fmt.Fprintf(out, "Year:      %s\n", intOrDash(item.Year))
	fmt.Fprintf(out, "Kind:      %s\n", item.Kind)
	fmt.Fprintf(out, "Quality:   %s (%s)\n", item.Quality, item.Language)
	fmt.Fprintf(out, "Rating:    %s\n", ratingOrDash(item.Rating))
	fmt.Fprintf(out, "Poster:    %s\n", item.ImageHighRes)
	printEpisodes(out, view.Episodes, colorize)
}

func printEpisodes(out io.Writer, result episodes.Result, colorize bool) {
	if len(result.Episodes) == 0 {
		fmt.Fprintln(out, "Episodes: none available yet")
		return
	}
	fmt.Fprintf(out, "Episodes: %d (%s)\n", len(result.Episodes), result.Source)
	rows := make([][]string, 0, len(result.Episodes))
	for _, ep := range result.Episodes {
		current := result.Initial != nil && ep.Slug == result.Initial.Slug
		rows = append(rows, []string{
			textutil.Ternary(current, "*", ""),
			strconv.Itoa(ep.SequenceNumber),
			ep.DisplayName,
			ep.Slug,
			ep.Server,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"", "#", "Name", "Slug", "Server"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
		colorize,
	))
	if result.Initial != nil && result.Initial.PlaybackURL != "" {
		fmt.Fprintf(out, "Play: %s\n", result.Initial.PlaybackURL)
	}
}

func progress(item catalog.Item) string {
	switch {
	case item.EpisodeProgress != "" && item.EpisodeTotal != nil:
		return fmt.Sprintf("%s (%d)", item.EpisodeProgress, *item.EpisodeTotal)
	case item.EpisodeProgress != "":
		return item.EpisodeProgress
	case item.EpisodeTotal != nil:
		return strconv.Itoa(*item.EpisodeTotal)
	default:
		return "-"
	}
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func ratingOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func formatAge(d time.Duration) string {
	d = d.Round(time.Second)
	if d < 0 {
		d = 0
	}
	return d.String()
}
