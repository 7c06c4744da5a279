//go:build js && wasm

package main

import (
	"image"
	"syscall/js"
)

// displayImage copies img onto the canvas
func displayImage(canvas js.Value, img *image.RGBA) {
	ctx := canvas.Call("getContext", "2d")

	// The length is width * height * 4 (RGBA)
	jsData := js.Global().Get("Uint8ClampedArray").New(len(img.Pix))
	js.CopyBytesToJS(jsData, img.Pix)

	imageData := js.Global().Get("ImageData").New(jsData, img.Rect.Dx(), img.Rect.Dy())
	ctx.Call("putImageData", imageData, 0, 0)
}

func initCanvas(width, height int, color string) js.Value {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "myCanvas")

	canvas.Set("width", width)
	canvas.Set("height", height)

	ctx := canvas.Call("getContext", "2d")
	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
	return canvas
}
