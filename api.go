package mandel

//go:generate go tool irpc

// FrameProvider renders frames of a fixed grid. The server exposes it to
// remote clients with the irpc generated service and client.
type FrameProvider interface {
	Frame(req FrameRequest) (Frame, error)
}

// FrameRequest asks for one frame of the provider's grid.
type FrameRequest struct {
	RangeX   Range
	RangeY   Range
	Exponent float64
}

// Frame is a rendered frame as RGBA bytes, row-major.
// Code classifies a failed render, see ErrorCode.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
	Code   string
}
