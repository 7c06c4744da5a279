//go:build js && wasm

// webclient.go is a WASM client evaluating the generalized Mandelbrot set in the browser.
// It sweeps the exponent upwards by 0.1 every animation frame.
//
//	GOOS=js GOARCH=wasm go build -o static/main.wasm ./cmd/webclient
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" static/

package main

import (
	"fmt"
	"log"
	"syscall/js"
	"time"

	mandel "github.com/marben/powmandel"
)

const (
	iterations = 64
	threshold  = 2
	pxPerUnit  = 256 // canvas pixels per unit of the complex plane

	powerStep = 0.1
)

func main() {
	logScreenf("Starting WASM web client...")

	region := mandel.ClassicView
	width := int((region.Xmax - region.Xmin) * pxPerUnit)
	height := int((region.Ymax - region.Ymin) * pxPerUnit)

	palette, err := mandel.Gradient(mandel.DefaultStops, iterations)
	if err != nil {
		logFatalf("palette: %v", err)
	}
	evaluator, err := mandel.New(mandel.Config{
		Width:      width,
		Height:     height,
		Iterations: iterations,
		Threshold:  threshold,
		Palette:    palette,
	})
	if err != nil {
		logFatalf("mandel.New: %v", err)
	}

	canvas := initCanvas(width, height, "#3a3a6e")
	logScreenf("Canvas initialized to dimensions %dx%d", width, height)

	if err := animate(canvas, evaluator, region); err != nil {
		logFatalf("animate: %v", err)
	}
}

// animate renders one frame per browser animation frame, forever.
func animate(canvas js.Value, e *mandel.Evaluator, region mandel.Region) error {
	next := make(chan struct{}, 1)
	onFrame := js.FuncOf(func(js.Value, []js.Value) any {
		select {
		case next <- struct{}{}:
		default:
		}
		return nil
	})
	defer onFrame.Release()

	for power := 1.0; ; power += powerStep {
		start := time.Now()
		img, err := e.Image(region.X(), region.Y(), power)
		if err != nil {
			return fmt.Errorf("exponent %g: %w", power, err)
		}
		displayImage(canvas, img)
		hudSetf("exponent %.1f, frame took %s", power, time.Since(start).Round(time.Millisecond))

		js.Global().Call("requestAnimationFrame", onFrame)
		<-next
	}
}

// logScreenf appends a formatted message to the log element in the DOM,
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// hudSetf replaces the text of the hud element.
func hudSetf(format string, a ...any) {
	doc := js.Global().Get("document")
	doc.Call("getElementById", "hud").Set("textContent", fmt.Sprintf(format, a...))
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}
