package codec

import (
	"fmt"
	"math"

	"github.com/bft-labs/envtap/internal/domain"
)

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint16 | ~uint32 | ~uint64
}

type float interface {
	~float32 | ~float64
}

// Coerce converts a raw observation into a Frame of unsigned 8-bit samples.
// A two-dimensional shape is treated as a single channel. Samples that are
// not integral values in [0, 255] are rejected rather than truncated.
// The returned frame never aliases raw.Data.
func Coerce(raw domain.RawObservation) (domain.Frame, error) {
	h, w, ch, err := frameShape(raw.Shape)
	if err != nil {
		return domain.Frame{}, err
	}

	var pix []uint8
	switch data := raw.Data.(type) {
	case []uint8:
		pix = append([]uint8(nil), data...)
	case []int8:
		pix, err = fromSigned(data)
	case []int16:
		pix, err = fromSigned(data)
	case []int32:
		pix, err = fromSigned(data)
	case []int:
		pix, err = fromSigned(data)
	case []int64:
		pix, err = fromSigned(data)
	case []uint16:
		pix, err = fromUnsigned(data)
	case []uint32:
		pix, err = fromUnsigned(data)
	case []uint:
		pix, err = fromUnsigned(data)
	case []uint64:
		pix, err = fromUnsigned(data)
	case []float32:
		pix, err = fromFloat(data)
	case []float64:
		pix, err = fromFloat(data)
	case nil:
		return domain.Frame{}, fmt.Errorf("%w: observation has no data", domain.ErrEncoding)
	default:
		return domain.Frame{}, fmt.Errorf("%w: unsupported sample type %T", domain.ErrEncoding, raw.Data)
	}
	if err != nil {
		return domain.Frame{}, err
	}

	return domain.NewFrame(h, w, ch, pix)
}

func frameShape(shape []int) (int, int, int, error) {
	switch len(shape) {
	case 2:
		return shape[0], shape[1], 1, nil
	case 3:
		return shape[0], shape[1], shape[2], nil
	default:
		return 0, 0, 0, fmt.Errorf("%w: observation rank %d, want 2 or 3", domain.ErrEncoding, len(shape))
	}
}

func fromSigned[T signed](data []T) ([]uint8, error) {
	pix := make([]uint8, len(data))
	for i, v := range data {
		if v < 0 || int64(v) > math.MaxUint8 {
			return nil, sampleError(i, v)
		}
		pix[i] = uint8(v)
	}
	return pix, nil
}

func fromUnsigned[T unsigned](data []T) ([]uint8, error) {
	pix := make([]uint8, len(data))
	for i, v := range data {
		if uint64(v) > math.MaxUint8 {
			return nil, sampleError(i, v)
		}
		pix[i] = uint8(v)
	}
	return pix, nil
}

func fromFloat[T float](data []T) ([]uint8, error) {
	pix := make([]uint8, len(data))
	for i, v := range data {
		f := float64(v)
		if math.IsNaN(f) || f < 0 || f > math.MaxUint8 || f != math.Trunc(f) {
			return nil, sampleError(i, v)
		}
		pix[i] = uint8(f)
	}
	return pix, nil
}

func sampleError(i int, v any) error {
	return fmt.Errorf("%w: sample %d = %v is not an unsigned 8-bit value", domain.ErrEncoding, i, v)
}
