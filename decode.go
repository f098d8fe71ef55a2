/*
NAME
  decode.go

DESCRIPTION
  decode.go provides the Decoder façade: parsing the header eagerly from
  either a byte slice or a sequential byte source, then driving the opcode
  codec over the payload to reconstruct the pixel stream and write it out
  in the caller's chosen channel order.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package qoi

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// DecodeHeader parses and validates just the 14-byte header from src,
// without reading any payload.
func DecodeHeader(src []byte) (Header, error) {
	return headerFromBytes(src)
}

// RequiredBufLen returns the number of bytes DecodeToBuf needs to write
// a header's image at the given output channel count.
func RequiredBufLen(h Header, outChannels uint8) uint64 {
	return h.Pixels() * uint64(outChannels)
}

// Decoder decodes a QOI stream, either from an in-memory slice or from a
// sequential io.Reader. Construct one with NewDecoder or NewDecoderFromBuf;
// the header is parsed eagerly by the constructor.
type Decoder struct {
	header Header
	src    byteSource
}

// NewDecoderFromBuf constructs a Decoder over an in-memory QOI stream,
// parsing and validating its header immediately.
func NewDecoderFromBuf(src []byte) (*Decoder, error) {
	h, err := headerFromBytes(src)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(src[HeaderSize:])
	logDebug("decoding buffer", "width", h.Width, "height", h.Height, "channels", h.Channels)
	return &Decoder{header: h, src: r}, nil
}

// NewDecoder constructs a Decoder over a sequential byte source, parsing
// and validating its header immediately. The payload is read from src
// through a bufio.Reader, so bytes beyond the end-marker may also be
// consumed from src.
func NewDecoder(src io.Reader) (*Decoder, error) {
	h, err := decodeHeader(src)
	if err != nil {
		return nil, err
	}
	return &Decoder{header: h, src: bufio.NewReader(src)}, nil
}

// Header returns the Decoder's parsed header.
func (d *Decoder) Header() Header { return d.header }

// RequiredBufLen returns the number of bytes DecodeToBuf needs to write
// this Decoder's image at the given output channel count.
func (d *Decoder) RequiredBufLen(outChannels uint8) uint64 {
	return RequiredBufLen(d.header, outChannels)
}

// DecodeToBuf decodes the Decoder's payload into out, writing outChannels
// bytes per pixel (3 for RGB, 4 for RGBA) in row-major order, and returns
// the exact number of bytes written. Any trailing capacity in out beyond
// that is left untouched. No allocation occurs beyond out's existing
// backing array.
func (d *Decoder) DecodeToBuf(out []byte, outChannels uint8) (int, error) {
	if outChannels != 3 && outChannels != 4 {
		return 0, &InvalidChannelsError{Channels: outChannels}
	}
	required := d.RequiredBufLen(outChannels)
	if uint64(len(out)) < required {
		return 0, &OutputBufferTooSmallError{Size: len(out), Required: int(required)}
	}

	st := newDecState()
	n := 0
	npix := d.header.Pixels()
	for i := uint64(0); i < npix; i++ {
		p, err := st.next(d.src)
		if err != nil {
			return n, err
		}
		out[n] = p.r
		out[n+1] = p.g
		out[n+2] = p.b
		n += 3
		if outChannels == 4 {
			out[n] = p.a
			n++
		}
	}

	if err := d.checkEndMarker(); err != nil {
		return n, err
	}
	return n, nil
}

// DecodeToVec decodes the Decoder's payload into a freshly allocated byte
// slice at the given output channel count.
func (d *Decoder) DecodeToVec(outChannels uint8) ([]byte, error) {
	if outChannels != 3 && outChannels != 4 {
		return nil, &InvalidChannelsError{Channels: outChannels}
	}
	out := make([]byte, d.RequiredBufLen(outChannels))
	n, err := d.DecodeToBuf(out, outChannels)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// checkEndMarker reads the 8 bytes following the payload and confirms they
// match the expected end-marker.
func (d *Decoder) checkEndMarker() error {
	var got [8]byte
	if _, err := io.ReadFull(d.src, got[:]); err != nil {
		return errors.Wrap(UnexpectedEOF, "reading end-marker")
	}
	if got != endMarker {
		return ErrInvalidPadding
	}
	return nil
}

// DecodeToVec decodes src (an in-memory QOI stream) at the given output
// channel count (defaulting to the header's own channel count if
// outChannels is 0) and returns the parsed header and the decoded bytes.
func DecodeToVec(src []byte, outChannels uint8) (Header, []byte, error) {
	d, err := NewDecoderFromBuf(src)
	if err != nil {
		return Header{}, nil, err
	}
	if outChannels == 0 {
		outChannels = d.header.Channels
	}
	out, err := d.DecodeToVec(outChannels)
	if err != nil {
		return Header{}, nil, err
	}
	return d.header, out, nil
}

// DecodeToBuf decodes src (an in-memory QOI stream) into dst at the given
// output channel count (defaulting to the header's own channel count if
// outChannels is 0) and returns the number of bytes written.
func DecodeToBuf(src []byte, dst []byte, outChannels uint8) (int, error) {
	d, err := NewDecoderFromBuf(src)
	if err != nil {
		return 0, err
	}
	if outChannels == 0 {
		outChannels = d.header.Channels
	}
	return d.DecodeToBuf(dst, outChannels)
}
