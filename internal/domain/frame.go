package domain

import (
	"encoding/base64"
	"fmt"
)

// Frame is a single observation snapshot of unsigned 8-bit samples laid out
// row-major as Height × Width × Channels.
type Frame struct {
	// Height is the number of rows
	Height int

	// Width is the number of columns
	Width int

	// Channels is the number of samples per pixel (1 for grayscale, 3 for RGB)
	Channels int

	// Pix holds Height*Width*Channels samples
	Pix []uint8
}

// NewFrame builds a Frame and checks that pix matches the shape.
func NewFrame(height, width, channels int, pix []uint8) (Frame, error) {
	f := Frame{Height: height, Width: width, Channels: channels, Pix: pix}
	if err := f.Validate(); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// Len returns the number of samples the shape calls for.
func (f Frame) Len() int {
	return f.Height * f.Width * f.Channels
}

// Shape returns the frame dimensions as (height, width, channels).
func (f Frame) Shape() [3]int {
	return [3]int{f.Height, f.Width, f.Channels}
}

// Validate reports whether the shape is positive and consistent with Pix.
func (f Frame) Validate() error {
	if f.Height <= 0 || f.Width <= 0 || f.Channels <= 0 {
		return fmt.Errorf("%w: non-positive shape %dx%dx%d", ErrEncoding, f.Height, f.Width, f.Channels)
	}
	if len(f.Pix) != f.Len() {
		return fmt.Errorf("%w: shape %dx%dx%d wants %d samples, got %d",
			ErrEncoding, f.Height, f.Width, f.Channels, f.Len(), len(f.Pix))
	}
	return nil
}

// Equal reports whether two frames have the same shape and samples.
func (f Frame) Equal(other Frame) bool {
	if f.Shape() != other.Shape() || len(f.Pix) != len(other.Pix) {
		return false
	}
	for i := range f.Pix {
		if f.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// RawObservation is an observation as produced by the raw environment, before
// it has been coerced to a Frame. Data is a flat row-major slice of one of the
// numeric element types []uint8, []int8, []int16, []uint16, []int32, []uint32,
// []int, []int64, []uint64, []float32 or []float64.
type RawObservation struct {
	// Shape is (height, width) or (height, width, channels)
	Shape []int

	// Data holds the samples
	Data any
}

// EncodedFrame is the opaque transport form of a Frame.
type EncodedFrame []byte

// String returns the base64 token form of the encoded frame.
func (e EncodedFrame) String() string {
	return base64.StdEncoding.EncodeToString(e)
}

// ParseEncodedFrame turns a token produced by EncodedFrame.String back into
// an EncodedFrame.
func ParseEncodedFrame(token string) (EncodedFrame, error) {
	b, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: bad token: %v", ErrEncoding, err)
	}
	return EncodedFrame(b), nil
}

// Observation is what the adapter hands to the learning loop. Exactly one of
// Frame and Encoded is set: Encoded when string conversion is enabled.
type Observation struct {
	Frame   Frame
	Encoded EncodedFrame
}

// IsEncoded reports whether the observation carries an EncodedFrame.
func (o Observation) IsEncoded() bool {
	return o.Encoded != nil
}
