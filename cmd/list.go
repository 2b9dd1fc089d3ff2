package cmd

import (
	"context"
	"fmt"

	"github.com/brogergvhs/mangatown/internal/config"
	"github.com/brogergvhs/mangatown/internal/providers/mangatown"

	"github.com/spf13/cobra"
)

var flagListChapters string

func init() {
	listCmd := &cobra.Command{
		Use:   "list [series name]",
		Short: "List the chapters of a series",
		Example: `  mangatown list "Wakusei No Samidare"
  mangatown list "Wakusei No Samidare" --chapters 0-5,63-`,
		RunE: runList,
	}

	listCmd.Flags().StringVar(&flagListChapters, "chapters", "", "chapter ranges, e.g. 1-10,12,20- (default: all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession(config.Options{})
	if err != nil {
		return err
	}

	q, err := s.query(args, flagListChapters)
	if err != nil {
		return err
	}

	s.log.Debugf("Series page: %s\n", mangatown.BuildSeriesURL(q.Series))

	list, err := s.client.ListChapters(context.Background(), q)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No chapters of %s match %s.\n", q.Series, rangesString(q))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d chapters\n", q.Series, len(list))
	return renderTable(cmd, []string{"CHAPTER", "URL"}, chapterRows(list))
}
