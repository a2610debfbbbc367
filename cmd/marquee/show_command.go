package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/services"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var episode string

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a title with its episode list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := strings.TrimSpace(args[0])
			if slug == "" {
				return errors.New("title slug is required")
			}
			svc, err := ctx.catalogService()
			if err != nil {
				return err
			}
			view, err := svc.Title(requestContext(cmd), slug, strings.TrimSpace(episode))
			if err != nil {
				if errors.Is(err, services.ErrNotFound) {
					return fmt.Errorf("title %q not found", slug)
				}
				return fmt.Errorf("fetch title %s: %w", slug, err)
			}
			return emit(ctx, cmd, view, func() error {
				out := cmd.OutOrStdout()
				printTitleView(out, view, shouldColorize(out))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&episode, "episode", "e", "", "Episode slug to select as the initial episode")
	return cmd
}
