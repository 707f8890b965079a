package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spherical/pdf-stitcher/cmd/pdf-stitcher/ui"
	"github.com/spherical/pdf-stitcher/internal/partition"
)

func newPlanCmd(a *app) *cobra.Command {
	var groups int

	cmd := &cobra.Command{
		Use:   "plan <file.pdf>",
		Short: "Show how pages would be grouped, without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := a.cfg.Stitch.GroupCount
			if cmd.Flags().Changed("groups") {
				count = groups
			}
			if count < 1 {
				return fmt.Errorf("group count must be at least 1, got %d", count)
			}

			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			total := doc.PageCount()
			summary := partition.Summarize(total, count)

			stdout := cmd.OutOrStdout()
			ui.Info(stdout, "%s", a.loc.T(ui.KeyTotalPages, total))
			ui.Info(stdout, "%s", a.loc.T(ui.KeyPlanSummary, summary.Groups, summary.PagesPerGroup))

			rows := make([][]string, 0, summary.Groups)
			for i, g := range partition.Partition(total, count) {
				rows = append(rows, []string{
					a.loc.T(ui.KeyPart, i+1),
					pageRange(g),
					strconv.Itoa(len(g)),
				})
			}
			ui.Table(stdout, []string{"Image", "Pages", "Count"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&groups, "groups", "n", 1, "number of images to plan for")
	return cmd
}

func pageRange(pages []int) string {
	if len(pages) == 1 {
		return strconv.Itoa(pages[0])
	}
	return fmt.Sprintf("%d-%d", pages[0], pages[len(pages)-1])
}
