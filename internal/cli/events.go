package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/RoadReport/internal/common"
)

func newEventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List the event categories the service can detect",
		Long: `List the fixed catalog of traffic violation categories. Use the tags
with 'roadreport analyze --events'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			catalog := common.Catalog()

			if getOutputFormat() == "json" {
				data, err := json.MarshalIndent(catalog, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal catalog: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			fmt.Fprintln(out, "Event categories:")
			fmt.Fprintln(out)
			for _, c := range catalog {
				fmt.Fprintf(out, "  %s %-16s %s\n", GetCategoryEmoji(c), c.ID, c.Name)
			}
			return nil
		},
	}
}
