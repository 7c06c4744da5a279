package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/marben/irpc"
	"github.com/spf13/cobra"

	mandel "github.com/marben/powmandel"
	"github.com/marben/powmandel/internal/cliconf"
	"github.com/marben/powmandel/internal/transport"
)

func remoteCmd() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		view    cliconf.View
		out     outputFlags
	)
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Fetch a frame from a running server and save it as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			req, err := view.Request()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			log.Printf("connecting to frame server at %s...", addr)
			conn, err := transport.Dial(ctx, addr)
			if err != nil {
				return fmt.Errorf("failed to connect to server: %w", err)
			}

			ep := irpc.NewEndpoint(conn)
			defer ep.Close()
			// Generated calls carry no deadline, closing the endpoint aborts them.
			stop := context.AfterFunc(ctx, func() { ep.Close() })
			defer stop()

			client, err := mandel.NewFrameProviderIrpcClient(ep)
			if err != nil {
				return fmt.Errorf("failed to create FrameProvider client: %w", err)
			}

			log.Printf("requesting frame x %s y %s exponent %g", req.RangeX, req.RangeY, req.Exponent)
			img, err := mandel.FrameImage(client.Frame(req))
			if err != nil {
				return fmt.Errorf("client.Frame: %w", err)
			}

			return savePNG(out.out, mandel.Upscale(img, out.scale))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8081", "frame server: tcp host:port or ws:// URL")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "give up after this long")
	view.Register(cmd.Flags())
	out.register(cmd)
	return cmd
}
