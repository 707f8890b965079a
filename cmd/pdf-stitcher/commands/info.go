package commands

import (
	"fmt"
	"image"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spherical/pdf-stitcher/cmd/pdf-stitcher/ui"
	"github.com/spherical/pdf-stitcher/internal/domain"
)

// pageSizer is implemented by documents that can report page bounds in points.
type pageSizer interface {
	PageSizes() ([]image.Point, error)
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.pdf>",
		Short: "Show page count and page sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			stdout := cmd.OutOrStdout()
			ui.Section(stdout, args[0])
			ui.KeyValue(stdout, "Pages", strconv.Itoa(doc.PageCount()))

			sizer, ok := doc.(pageSizer)
			if !ok {
				return nil
			}
			sizes, err := sizer.PageSizes()
			if err != nil {
				return err
			}

			high := domain.TierFor(domain.QualityHigh)
			normal := domain.TierFor(domain.QualityNormal)
			rows := make([][]string, len(sizes))
			for i, s := range sizes {
				rows[i] = []string{
					strconv.Itoa(i + 1),
					fmt.Sprintf("%dx%d pt", s.X, s.Y),
					scaled(s, high.Scale),
					scaled(s, normal.Scale),
				}
			}
			ui.Newline(stdout)
			ui.Table(stdout, []string{"Page", "Size", "High", "Normal"}, rows)
			return nil
		},
	}
}

func scaled(p image.Point, scale float64) string {
	return fmt.Sprintf("%dx%d px", int(math.Round(float64(p.X)*scale)), int(math.Round(float64(p.Y)*scale)))
}
