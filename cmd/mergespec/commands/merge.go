package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/AndyQiu2234/MergeSpec/internal/metrics"
	"github.com/AndyQiu2234/MergeSpec/internal/reference"
	"github.com/AndyQiu2234/MergeSpec/internal/render"
	"github.com/AndyQiu2234/MergeSpec/internal/spectrumio"
)

type mergeOptions struct {
	bands          [merge.NumBands]string
	params         string
	breakpoints    []string
	scales         []string
	autofills      []string
	removeArtifact bool
	reference      string
	out            string
	paramsOut      string
	plot           string
}

// merge: load band files, apply settings, write the merged spectrum.
func mergeCmd() *cobra.Command {
	var o mergeOptions
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Stitch band files into one spectrum",
		Long: `Loads up to five band files (THz, FIR, MIR, NIR, VIS), applies the
parameter file and any individual overrides, and writes the merged,
optionally normalised spectrum as tab-separated frequency/reflectance lines.

Settings are applied in this order: band files, auto-fill, --params,
--breakpoint, --scale, --remove-artifact, --reference.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var pm *metrics.Metrics
			if pushgateway != "" {
				pm = metrics.New(prometheus.NewRegistry())
			}
			runErr := runMerge(cmd, &o, pm)
			if pm != nil {
				ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
				defer cancel()
				if err := pm.Push(ctx, pushgateway, "mergespec"); err != nil {
					log.Warn().Err(err).Msg("Failed to push metrics")
				}
			}
			return runErr
		},
	}

	for _, id := range merge.Bands() {
		name := id.String()
		cmd.Flags().StringVar(&o.bands[id], strings.ToLower(name), "", name+" band file")
	}
	cmd.Flags().StringVar(&o.params, "params", "", "parameter file to apply")
	cmd.Flags().StringArrayVar(&o.breakpoints, "breakpoint", nil, "breakpoint override k=frequency (repeatable)")
	cmd.Flags().StringArrayVar(&o.scales, "scale", nil, "band scale override BAND=offset,multiplier (repeatable)")
	cmd.Flags().StringArrayVar(&o.autofills, "autofill", nil, "synthesise an interior band BAND=order; 1 quadratic, 2 cubic, 3 linear (repeatable)")
	cmd.Flags().BoolVar(&o.removeArtifact, "remove-artifact", false, "remove the VIS detector artifact near 15800 cm^-1")
	cmd.Flags().StringVar(&o.reference, "reference", "", "normalise against a reference mirror (Au or Ag)")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "merged spectrum output file")
	cmd.Flags().StringVar(&o.paramsOut, "params-out", "", "write the applied parameters to this file")
	cmd.Flags().StringVar(&o.plot, "plot", "", "render the merged segments to this PNG file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runMerge(cmd *cobra.Command, o *mergeOptions, pm *metrics.Metrics) error {
	refOpts, err := reference.Options(referenceDir)
	if err != nil {
		return err
	}
	m := merge.New(refOpts...)
	if pm != nil {
		defer pm.Observe(m)()
	}

	for _, id := range merge.Bands() {
		path := o.bands[id]
		if path == "" {
			continue
		}
		freq, refl, err := spectrumio.ReadBandFile(path)
		if err == nil {
			err = m.LoadBand(id, freq, refl, path)
		}
		if err != nil {
			pm.RecordBandLoadFailure(id)
			return err
		}
		log.Debug().Str("band", id.String()).Str("file", path).Int("samples", len(freq)).Msg("Band loaded")
	}

	for _, s := range o.autofills {
		id, order, err := parseAutoFill(s)
		if err != nil {
			return err
		}
		if o.bands[id] != "" {
			return fmt.Errorf("--autofill %s conflicts with --%s", id, strings.ToLower(id.String()))
		}
		available, err := m.SetAutoFill(id, true, order)
		if err != nil {
			return err
		}
		if !available {
			log.Warn().Str("band", id.String()).Msg("Auto-fill needs measured data in both neighbouring bands")
		}
	}

	if o.params != "" {
		f, err := os.Open(o.params)
		if err != nil {
			return fmt.Errorf("failed to open params: %w", err)
		}
		p, err := spectrumio.ParseParams(f, m.Params())
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", o.params, err)
		}
		if err := m.ApplyParams(p); err != nil {
			return err
		}
	}

	for _, s := range o.breakpoints {
		k, v, err := parseBreakpoint(s)
		if err != nil {
			return err
		}
		applied, err := m.SetBreakpoint(k, v)
		if err != nil {
			return err
		}
		if applied != v {
			log.Warn().Int("breakpoint", k).Float64("requested", v).Float64("applied", applied).Msg("Breakpoint clamped")
		}
	}

	for _, s := range o.scales {
		id, offset, multiplier, err := parseScale(s)
		if err != nil {
			return err
		}
		if err := m.SetScale(id, offset, multiplier); err != nil {
			return err
		}
	}

	if o.removeArtifact {
		if err := m.SetArtifactRemoval(true); err != nil {
			return fmt.Errorf("artifact removal: %w", err)
		}
	}
	if err := m.SelectReference(o.reference); err != nil {
		return err
	}

	spectrum, err := m.Export()
	if err == nil && spectrum.Len() == 0 {
		err = fmt.Errorf("no band data to merge")
	}
	pm.RecordExport(m.Reference(), err)
	if err != nil {
		return err
	}

	if err := writeFile(o.out, func(f *os.File) error { return spectrumio.WriteSpectrum(f, spectrum) }); err != nil {
		return err
	}
	if o.paramsOut != "" {
		if err := writeFile(o.paramsOut, func(f *os.File) error { return spectrumio.WriteParams(f, m.Params()) }); err != nil {
			return err
		}
	}
	if o.plot != "" {
		if err := render.SavePNG(o.plot, render.SceneFor(m, nil)); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d samples to %s\n", spectrum.Len(), o.out)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
