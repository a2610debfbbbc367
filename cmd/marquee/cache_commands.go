package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"marquee/internal/ttlcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the list cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := ctx.openCache()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if handle == nil {
				if ctx.jsonOutput() {
					return writeJSON(cmd, []ttlcache.EntryInfo{})
				}
				fmt.Fprintln(out, "List cache is disabled")
				return nil
			}
			entries, err := handle.Entries()
			if err != nil {
				return fmt.Errorf("read cache entries: %w", err)
			}
			if entries == nil {
				entries = []ttlcache.EntryInfo{}
			}
			return emit(ctx, cmd, entries, func() error {
				fmt.Fprintf(out, "Backend: %s\n", handle.Backend)
				if handle.Path != "" {
					fmt.Fprintf(out, "Path:    %s\n", handle.Path)
				}
				fmt.Fprintf(out, "TTL:     %s\n", handle.TTL())
				if len(entries) == 0 {
					fmt.Fprintln(out, "Entries: none")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.Key,
						e.WrittenAt.Local().Format("2006-01-02 15:04:05"),
						formatAge(e.Age),
						yesNo(e.Fresh),
						strconv.Itoa(e.Size),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Key", "Written", "Age", "Fresh", "Bytes"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight},
					shouldColorize(out),
				))
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := ctx.openCache()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if handle == nil {
				fmt.Fprintln(out, "List cache is disabled")
				return nil
			}
			entries, err := handle.Entries()
			if err != nil {
				return fmt.Errorf("read cache entries: %w", err)
			}
			if err := handle.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintf(out, "Cleared %d cache entries\n", len(entries))
			return nil
		},
	}
}
