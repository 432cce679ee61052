package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AndyQiu2234/MergeSpec/internal/render"
)

// overlay <file|folder>...: plot merged spectra together.
func overlayCmd() *cobra.Command {
	var (
		out    string
		title  string
		hidden []string
	)
	cmd := &cobra.Command{
		Use:   "overlay <file|folder>...",
		Short: "Plot previously merged spectra together",
		Long: `Loads merged spectra and renders them in one figure. Folders are read
in natural name order and only .txt, .csv and .dat files are picked up.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			curves := render.NewCurveList()
			for _, arg := range args {
				fi, err := os.Stat(arg)
				if err != nil {
					return err
				}
				if fi.IsDir() {
					added, err := curves.LoadFolder(arg)
					if err != nil {
						return err
					}
					log.Debug().Str("folder", arg).Int("curves", len(added)).Msg("Folder loaded")
					continue
				}
				if _, err := curves.LoadFile(arg); err != nil {
					return err
				}
			}

			for _, label := range hidden {
				found := false
				for _, c := range curves.All() {
					if c.Label == label {
						if err := curves.SetVisible(c.ID, false); err != nil {
							return err
						}
						found = true
					}
				}
				if !found {
					return fmt.Errorf("--hide %s: no curve with that name", label)
				}
			}

			visible := curves.Visible()
			if len(visible) == 0 {
				return fmt.Errorf("nothing to plot")
			}
			if err := render.SavePNG(out, render.Scene{Title: title, Overlays: visible}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "plotted %d curves to %s\n", len(visible), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG file")
	cmd.Flags().StringVar(&title, "title", "Merged spectra", "figure title")
	cmd.Flags().StringArrayVar(&hidden, "hide", nil, "file name of a loaded curve to leave out (repeatable)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
