package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grayops-hq/grayctl/pkg/graylog"
)

// NewStreamsCommand creates the streams command group.
func NewStreamsCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streams",
		Short: "Inspect streams configured on the server",
	}

	cmd.AddCommand(
		newStreamsListCommand(globalOpts),
		newStreamsGetCommand(globalOpts),
	)

	return cmd
}

func newStreamsListCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List streams",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd.Context(), globalOpts)
			if err != nil {
				return err
			}
			defer rt.close()

			streams, err := rt.client.Streams(cmd.Context())
			if err != nil {
				return fmt.Errorf("list streams: %w", err)
			}
			if len(streams) == 0 {
				fmt.Println("No streams configured.")
				return nil
			}

			sort.Slice(streams, func(i, j int) bool { return streams[i].Title < streams[j].Title })
			printStreamTable(streams)
			return nil
		},
	}
}

func newStreamsGetCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <stream-id>",
		Short: "Show one stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), globalOpts)
			if err != nil {
				return err
			}
			defer rt.close()

			stream, ok, err := rt.client.Stream(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get stream: %w", err)
			}
			if !ok {
				return fmt.Errorf("stream %q not found", args[0])
			}

			printStreamTable([]graylog.Stream{stream})
			return nil
		},
	}
}

func printStreamTable(streams []graylog.Stream) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDISABLED\tDESCRIPTION")
	for _, s := range streams {
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", s.ID, s.Title, s.Disabled, s.Description)
	}
	w.Flush()
}
