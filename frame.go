package mandel

import (
	"errors"
	"fmt"
	"image"
)

// Error codes carried in Frame.Code. Errors cross the wire as text only,
// the code lets the caller match them with errors.Is again.
const (
	CodeConfiguration      = "configuration"
	CodeDegenerateViewport = "degenerate_viewport"
	CodePaletteIndex       = "palette_index"
)

var codes = map[string]error{
	CodeConfiguration:      ErrConfiguration,
	CodeDegenerateViewport: ErrDegenerateViewport,
	CodePaletteIndex:       ErrPaletteIndex,
}

// ErrorCode classifies err, or returns "" for errors of no known class.
func ErrorCode(err error) string {
	for code, target := range codes {
		if errors.Is(err, target) {
			return code
		}
	}
	return ""
}

// Local serves frames straight from an Evaluator.
type Local struct {
	*Evaluator
}

func (l Local) Frame(req FrameRequest) (Frame, error) {
	data, err := l.Evaluate(req.RangeX, req.RangeY, req.Exponent)
	if err != nil {
		return Frame{Code: ErrorCode(err)}, err
	}
	return Frame{Width: l.Width(), Height: l.Height(), Pix: Pix(data)}, nil
}

var _ FrameProvider = Local{}

// FrameImage converts the results of FrameProvider.Frame into an image.
// Errors that lost their type on the way from a remote provider are wrapped
// into the sentinel named by Frame.Code.
func FrameImage(f Frame, err error) (*image.RGBA, error) {
	if err != nil {
		if target, ok := codes[f.Code]; ok && !errors.Is(err, target) {
			return nil, fmt.Errorf("%w: %v", target, err)
		}
		return nil, err
	}
	if f.Width < 1 || f.Height < 1 || len(f.Pix) != f.Width*f.Height*4 {
		return nil, fmt.Errorf("malformed frame: %d bytes for %dx%d", len(f.Pix), f.Width, f.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	img.Pix = f.Pix
	return img, nil
}
