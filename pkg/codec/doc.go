// Package codec converts observation frames to and from their transport form.
//
// Every frame an environment produces passes through this package exactly
// once: the raw observation is coerced to unsigned 8-bit samples, and, when
// string conversion is enabled, encoded into an [domain.EncodedFrame]. The
// encoding is deterministic and lossless.
//
// # Usage
//
//	frame, err := codec.Coerce(raw)
//	if err != nil {
//	    return err // wraps domain.ErrEncoding
//	}
//
//	c := codec.New(codec.WithShape(84, 84, 3))
//	enc, err := c.Encode(frame)
//	...
//	back, err := c.Decode(enc) // back.Equal(frame)
//
// # Format
//
// An encoded frame is the magic "ETF1", the shape as three uvarints, the
// IEEE CRC-32 of the samples (big-endian), then a single gzip member holding
// the samples. The gzip header carries no name or modification time, so the
// same frame always yields the same bytes.
package codec
