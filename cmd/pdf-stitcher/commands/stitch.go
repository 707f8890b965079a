package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/spherical/pdf-stitcher/cmd/pdf-stitcher/ui"
	"github.com/spherical/pdf-stitcher/internal/domain"
	"github.com/spherical/pdf-stitcher/pkg/stitcher"
)

func newStitchCmd(a *app) *cobra.Command {
	var (
		groups    int
		direction domain.Direction
		quality   domain.Quality
		gap       bool
		border    bool
		outputDir string
		zipOut    bool
		images    bool
	)

	cmd := &cobra.Command{
		Use:   "stitch <file.pdf>",
		Short: "Stitch the pages of a PDF into long images",
		Example: `  pdf-stitcher stitch report.pdf
  pdf-stitcher stitch -n 3 -d horizontal -q normal --gap report.pdf
  pdf-stitcher stitch --zip=false --images -o out/ report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			opts := a.cfg.Stitch
			out := a.cfg.Output

			if flags.Changed("groups") {
				opts.GroupCount = groups
			}
			if flags.Changed("direction") {
				opts.Direction = direction
			}
			if flags.Changed("quality") {
				opts.Quality = quality
			}
			if flags.Changed("gap") {
				opts.Gap = gap
			}
			if flags.Changed("border") {
				opts.Border = border
			}
			if flags.Changed("output") {
				out.Dir = outputDir
			}
			if flags.Changed("zip") {
				out.Archive = zipOut
			}
			if flags.Changed("images") {
				out.WriteImages = images
			}

			if err := opts.Validate(); err != nil {
				return err
			}
			if !out.Archive && !out.WriteImages {
				return fmt.Errorf("nothing to write: enable --zip or --images")
			}

			return a.runStitch(cmd, args[0], opts, out.Dir, out.Archive, out.WriteImages)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&groups, "groups", "n", 1, "number of images to produce (clamped to the page count)")
	flags.VarP(&direction, "direction", "d", "stitching direction: vertical or horizontal")
	flags.VarP(&quality, "quality", "q", "output quality: high (PNG) or normal (JPEG)")
	flags.BoolVar(&gap, "gap", false, "add spacing between pages")
	flags.BoolVar(&border, "border", false, "outline every page")
	flags.StringVarP(&outputDir, "output", "o", ".", "output directory")
	flags.BoolVar(&zipOut, "zip", true, "write <name>-stitched.zip")
	flags.BoolVar(&images, "images", false, "write each image as its own file")

	return cmd
}

func (a *app) runStitch(cmd *cobra.Command, path string, opts domain.Config, dir string, writeZip, writeImages bool) error {
	stdout := cmd.OutOrStdout()
	startTime := time.Now()

	doc, err := a.load(cmd, path)
	if err != nil {
		return err
	}
	defer doc.Close()

	opts = opts.Clamp(doc.PageCount())
	ui.Info(stdout, "%s", a.loc.T(ui.KeyTotalPages, doc.PageCount()))

	client := a.client()
	view := ui.NewStatusView(cmd.ErrOrStderr(), a.loc)
	defer view.Close()

	payloads, err := client.Process(cmd.Context(), doc, opts, view.Handle)
	if err != nil {
		return reported(view, fmt.Errorf("stitch %s: %w", path, err))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.IOError(fmt.Sprintf("create output directory %s", dir), err)
	}

	base := stitcher.BaseName(path)
	var written []string

	if writeImages {
		for i, p := range payloads {
			name := filepath.Join(dir, stitcher.FileName(base, i+1, p))
			if err := os.WriteFile(name, p.Data, 0o644); err != nil {
				return domain.IOError(fmt.Sprintf("write %s", name), err)
			}
			written = append(written, name)
		}
	}

	if writeZip {
		name := filepath.Join(dir, stitcher.BundleName(base))
		if err := writeBundle(client, view, name, base, payloads); err != nil {
			return reported(view, err)
		}
		written = append(written, name)
	}

	for _, name := range written {
		ui.Success(stdout, "%s", a.loc.T(ui.KeySaved, name))
	}
	a.logger.Info().
		Str("input", path).
		Int("images", len(payloads)).
		Dur("elapsed", time.Since(startTime)).
		Msg("Stitch complete")

	return nil
}

// writeBundle packages payloads into name, removing the partial file when
// packaging fails.
func writeBundle(client *stitcher.Client, view *ui.StatusView, name, base string, payloads []stitcher.Payload) error {
	f, err := os.Create(name)
	if err != nil {
		return domain.IOError(fmt.Sprintf("create %s", name), err)
	}

	if err := client.Package(f, base, payloads, view.Handle); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(name)
		return domain.IOError(fmt.Sprintf("close %s", name), err)
	}
	return nil
}
