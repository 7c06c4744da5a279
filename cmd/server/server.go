package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/marben/irpc"
	"github.com/spf13/cobra"

	mandel "github.com/marben/powmandel"
	"github.com/marben/powmandel/internal/cliconf"
	"github.com/marben/powmandel/internal/transport"
)

const shutdownTimeout = 5 * time.Second

// main is the entry point for the Mandelbrot frame server.
// Clients choose the viewport and exponent, the grid and palette are fixed here.
func main() {
	if err := mainCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

type serverFlags struct {
	port    int
	tcpPort int
	static  string
	origins []string
	eval    cliconf.Evaluator
}

func mainCmd() *cobra.Command {
	var f serverFlags
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve generalized Mandelbrot frames over irpc (tcp and websocket)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			return run(cmd.Context(), f)
		},
	}
	cmd.Flags().IntVar(&f.port, "port", 8080, "http port serving static files and the /ws endpoint")
	cmd.Flags().IntVar(&f.tcpPort, "tcp-port", 8081, "irpc tcp port")
	cmd.Flags().StringVar(&f.static, "static", "./static", "directory with index.html and main.wasm")
	cmd.Flags().StringSliceVar(&f.origins, "origin", nil, "extra origin host patterns allowed on /ws (same origin is always allowed)")
	f.eval.Register(cmd.Flags(), 768, 768)
	return cmd
}

func run(ctx context.Context, f serverFlags) error {
	cfg, err := f.eval.Config()
	if err != nil {
		return err
	}
	evaluator, err := mandel.New(cfg)
	if err != nil {
		return fmt.Errorf("mandel.New: %w", err)
	}
	log.Printf("evaluator: %dx%d, %d iterations, threshold %g, y scale %s, %d workers",
		cfg.Width, cfg.Height, cfg.Iterations, cfg.Threshold, cfg.YScale, max(cfg.Workers, 1))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	irpcServer := newIrpcServer(mandel.Local{Evaluator: evaluator})

	// TCP
	tcpListener, err := net.Listen("tcp", fmt.Sprintf(":%d", f.tcpPort))
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	log.Printf("tcp listening on port: %d", f.tcpPort)

	// WEBSOCKET
	websocketListener, httpServer := webServer(ctx, f.port, f.static, f.origins)

	errCh := make(chan error, 3)
	go func() {
		errCh <- fmt.Errorf("httpServer: %w", httpServer.ListenAndServe())
	}()
	// irpcServer can serve multiple listeners. In this case both tcp and websocket
	go func() {
		errCh <- fmt.Errorf("server.Serve tcp: %w", irpcServer.Serve(tcpListener))
	}()
	go func() {
		errCh <- fmt.Errorf("server.Serve ws: %w", irpcServer.Serve(websocketListener))
	}()

	log.Printf("frame server waiting for tcp and websocket connections")
	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
		log.Printf("shutting down")
	}

	if err := shutdown(httpServer, irpcServer, shutdownTimeout); err != nil {
		runErr = errors.Join(runErr, err)
	}
	return runErr
}

// shutdown stops accepting http connections, waits at most timeout for
// active requests, then closes every irpc endpoint.
func shutdown(httpServer *http.Server, irpcServer *irpc.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := httpServer.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errs = append(errs, fmt.Errorf("httpServer.Shutdown: %w", err))
	}
	if err := irpcServer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("irpcServer.Close: %w", err))
	}
	return errors.Join(errs...)
}

// newIrpcServer exposes p to every connecting client.
func newIrpcServer(p mandel.FrameProvider) *irpc.Server {
	return irpc.NewServer(
		irpc.WithServices(mandel.NewFrameProviderIrpcService(p)),
		irpc.WithOnConnect(func(ep *irpc.Endpoint) {
			log.Printf("got connection from: %s", ep.RemoteAddr())
		}),
	)
}
