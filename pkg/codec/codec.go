package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/bft-labs/envtap/internal/domain"
)

const (
	magic = "ETF1"

	// maxDim bounds each dimension of a decoded frame.
	maxDim = 1 << 16

	// maxSamples bounds the sample count of a decoded frame (256 MiB).
	maxSamples = 1 << 28
)

// Codec encodes frames into EncodedFrames and back.
// The zero shape accepts frames of any shape.
type Codec struct {
	shape [3]int
	level int
}

// Option configures a Codec.
type Option func(*Codec)

// WithShape restricts the codec to frames of exactly this shape.
func WithShape(height, width, channels int) Option {
	return func(c *Codec) {
		c.shape = [3]int{height, width, channels}
	}
}

// WithLevel sets the gzip compression level. Out of range values fall back
// to the default level.
func WithLevel(level int) Option {
	return func(c *Codec) {
		c.level = level
	}
}

// New creates a Codec.
func New(opts ...Option) *Codec {
	c := &Codec{level: gzip.DefaultCompression}
	for _, opt := range opts {
		opt(c)
	}
	if c.level < gzip.HuffmanOnly || c.level > gzip.BestCompression {
		c.level = gzip.DefaultCompression
	}
	return c
}

var defaultCodec = New()

// Encode encodes f with a shape-agnostic default codec.
func Encode(f domain.Frame) (domain.EncodedFrame, error) {
	return defaultCodec.Encode(f)
}

// Decode decodes e with a shape-agnostic default codec.
func Decode(e domain.EncodedFrame) (domain.Frame, error) {
	return defaultCodec.Decode(e)
}

// Shape returns the configured shape, or zeros when any shape is accepted.
func (c *Codec) Shape() [3]int {
	return c.shape
}

// Encode turns f into its transport form.
func (c *Codec) Encode(f domain.Frame) (domain.EncodedFrame, error) {
	if err := c.checkShape(f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(magic) + 3*binary.MaxVarintLen64 + 4 + f.Len()/2)
	buf.WriteString(magic)

	var tmp [binary.MaxVarintLen64]byte
	for _, d := range f.Shape() {
		n := binary.PutUvarint(tmp[:], uint64(d))
		buf.Write(tmp[:n])
	}

	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc32.ChecksumIEEE(f.Pix))
	buf.Write(sum[:])

	zw, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	if _, err := zw.Write(f.Pix); err != nil {
		return nil, fmt.Errorf("%w: compress: %v", domain.ErrEncoding, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: compress: %v", domain.ErrEncoding, err)
	}

	return domain.EncodedFrame(buf.Bytes()), nil
}

// Decode restores the frame encoded in e.
func (c *Codec) Decode(e domain.EncodedFrame) (domain.Frame, error) {
	r := bytes.NewReader(e)

	head := make([]byte, len(magic))
	if _, err := io.ReadFull(r, head); err != nil || string(head) != magic {
		return domain.Frame{}, fmt.Errorf("%w: bad magic", domain.ErrEncoding)
	}

	var shape [3]int
	for i := range shape {
		v, err := binary.ReadUvarint(r)
		if err != nil {
			return domain.Frame{}, fmt.Errorf("%w: bad shape: %v", domain.ErrEncoding, err)
		}
		if v == 0 || v > maxDim {
			return domain.Frame{}, fmt.Errorf("%w: dimension %d out of range", domain.ErrEncoding, v)
		}
		shape[i] = int(v)
	}
	n := shape[0] * shape[1] * shape[2]
	if n > maxSamples {
		return domain.Frame{}, fmt.Errorf("%w: frame of %d samples too large", domain.ErrEncoding, n)
	}

	var sum [4]byte
	if _, err := io.ReadFull(r, sum[:]); err != nil {
		return domain.Frame{}, fmt.Errorf("%w: missing checksum", domain.ErrEncoding)
	}

	zr, err := gzip.NewReader(r)
	if err != nil {
		return domain.Frame{}, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	defer zr.Close()

	// Read one sample past the shape so oversized payloads are detected.
	pix, err := io.ReadAll(io.LimitReader(zr, int64(n)+1))
	if err != nil {
		return domain.Frame{}, fmt.Errorf("%w: decompress: %v", domain.ErrEncoding, err)
	}
	if len(pix) != n {
		return domain.Frame{}, fmt.Errorf("%w: shape %dx%dx%d wants %d samples, payload has %d",
			domain.ErrEncoding, shape[0], shape[1], shape[2], n, len(pix))
	}
	if crc32.ChecksumIEEE(pix) != binary.BigEndian.Uint32(sum[:]) {
		return domain.Frame{}, fmt.Errorf("%w: checksum mismatch", domain.ErrEncoding)
	}

	f := domain.Frame{Height: shape[0], Width: shape[1], Channels: shape[2], Pix: pix}
	if err := c.checkShape(f); err != nil {
		return domain.Frame{}, err
	}
	return f, nil
}

func (c *Codec) checkShape(f domain.Frame) error {
	// Same bounds as Decode, so every encodable frame decodes.
	for _, d := range f.Shape() {
		if d > maxDim {
			return fmt.Errorf("%w: dimension %d out of range", domain.ErrEncoding, d)
		}
	}
	if f.Len() > maxSamples {
		return fmt.Errorf("%w: frame of %d samples too large", domain.ErrEncoding, f.Len())
	}
	if err := f.Validate(); err != nil {
		return err
	}
	if c.shape != [3]int{} && f.Shape() != c.shape {
		return fmt.Errorf("%w: frame shape %v, codec expects %v", domain.ErrEncoding, f.Shape(), c.shape)
	}
	return nil
}
