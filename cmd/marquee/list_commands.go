package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/api"
	"marquee/internal/upstream"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var page int
	var limit int

	cmd := &cobra.Command{
		Use:   "list <kind> [id]",
		Short: "Show one page of a catalog list",
		Long: "Show one page of a catalog list.\n\nKinds: category, country, anime, list, latest. " +
			"category, country and list require an id (for example `marquee list country han-quoc`).",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := upstream.ParseKind(args[0])
			if err != nil {
				return err
			}
			if kind == upstream.KindSearch {
				return errors.New("use `marquee search <keyword>` for searches")
			}
			q := upstream.ListQuery{Kind: kind, Page: page, Limit: limit}
			if len(args) > 1 {
				q.ID = strings.TrimSpace(args[1])
			}
			if kind.NeedsID() && q.ID == "" {
				return fmt.Errorf("%s lists require an id", kind)
			}
			return runList(ctx, cmd, q)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "Items per page (defaults to upstream.page_limit)")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search the catalog by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.TrimSpace(strings.Join(args, " "))
			if keyword == "" {
				return errors.New("search keyword is required")
			}
			return runList(ctx, cmd, upstream.ListQuery{Kind: upstream.KindSearch, ID: keyword, Page: page})
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	return cmd
}

func runList(ctx *commandContext, cmd *cobra.Command, q upstream.ListQuery) error {
	if q.Page < 1 {
		return fmt.Errorf("invalid page number: %d", q.Page)
	}
	svc, err := ctx.catalogService()
	if err != nil {
		return err
	}
	result, err := svc.List(requestContext(cmd), q)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", q.Label(), err)
	}
	return emit(ctx, cmd, result, func() error {
		out := cmd.OutOrStdout()
		printListResult(out, result, shouldColorize(out))
		return nil
	})
}

func newHomeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Fetch the home country lists concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.catalogService()
			if err != nil {
				return err
			}
			reqCtx := requestContext(cmd)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			live := api.NewLiveness()
			defer live.Release()

			var onSettled func(api.FanOutResult)
			if !ctx.jsonOutput() {
				onSettled = func(r api.FanOutResult) {
					if r.Err != nil {
						fmt.Fprintf(out, "%s: %v\n", sectionHeader(r.Query.Label(), colorize), r.Err)
						return
					}
					printListResult(out, r.Result, colorize)
				}
			}

			results := svc.Home(reqCtx, live, onSettled)
			if len(results) == 0 {
				if ctx.jsonOutput() {
					return writeJSON(cmd, []homeSection{})
				}
				fmt.Fprintln(out, "No home lists configured (catalog.home_countries is empty)")
				return nil
			}

			failed := 0
			sections := make([]homeSection, 0, len(results))
			for _, r := range results {
				section := homeSection{Query: r.Query.Label()}
				if r.Err != nil {
					failed++
					section.Error = r.Err.Error()
				} else {
					res := r.Result
					section.Result = &res
				}
				sections = append(sections, section)
			}
			if ctx.jsonOutput() {
				if err := writeJSON(cmd, sections); err != nil {
					return err
				}
			}
			if failed == len(results) {
				return fmt.Errorf("all %d home lists failed", failed)
			}
			return nil
		},
	}
}

type homeSection struct {
	Query  string          `json:"query"`
	Result *api.ListResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}
