// mandel renders generalized Mandelbrot frames to PNG, either locally or by
// asking a running frame server.
package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func main() {
	if err := mainCmd().ExecuteContext(context.Background()); err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mandel",
		Short: "Render z = z^p + c escape-time frames",
	}
	cmd.AddCommand(renderCmd(), remoteCmd(), regionsCmd())
	return cmd
}

// savePNG writes img to filename, creating parent directories.
func savePNG(filename string, img image.Image) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Printf("rendered image saved to %q", filename)
	return nil
}
