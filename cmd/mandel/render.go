package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	mandel "github.com/marben/powmandel"
	"github.com/marben/powmandel/internal/cliconf"
)

type outputFlags struct {
	out   string
	scale int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.out, "out", "o", "mandel.png", "output PNG file")
	cmd.Flags().IntVar(&o.scale, "scale", 1, "integer upscaling factor of the saved image")
}

func renderCmd() *cobra.Command {
	var (
		eval cliconf.Evaluator
		view cliconf.View
		out  outputFlags
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Evaluate a frame locally and save it as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			cfg, err := eval.Config()
			if err != nil {
				return err
			}
			e, err := mandel.New(cfg)
			if err != nil {
				return fmt.Errorf("mandel.New: %w", err)
			}
			req, err := view.Request()
			if err != nil {
				return err
			}

			start := time.Now()
			img, err := e.Image(req.RangeX, req.RangeY, req.Exponent)
			if err != nil {
				return fmt.Errorf("evaluate x %s y %s: %w", req.RangeX, req.RangeY, err)
			}
			log.Printf("evaluated %dx%d at exponent %g in %s", cfg.Width, cfg.Height, req.Exponent, time.Since(start))

			return savePNG(out.out, mandel.Upscale(img, out.scale))
		},
	}
	eval.Register(cmd.Flags(), 768, 768)
	view.Register(cmd.Flags())
	out.register(cmd)
	return cmd
}

func regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List named regions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range cliconf.RegionNames() {
				r := mandel.Regions[name]
				cmd.Printf("%-12s x %s y %s\n", name, r.X(), r.Y())
			}
		},
	}
}
