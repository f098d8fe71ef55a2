/*
NAME
  encode.go

DESCRIPTION
  encode.go provides the Encoder façade: resolving raw input layout,
  stride and output channel options, sizing the output buffer, and driving
  the opcode codec over the whole pixel stream to produce a complete QOI
  byte stream.

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
	"errors"
	"io"
)

// endMarker is the 8-byte sentinel appended after the last opcode of every
// QOI stream.
var endMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// ErrInvalidRawLayout is returned when an Encoder is explicitly configured
// with a RawLayout value outside the ten recognised layouts.
var ErrInvalidRawLayout = errors.New("qoi: invalid raw channel layout")

// EncodeMaxLen returns the worst-case encoded size of a width x height
// image with the given output channel count: every pixel costs its tag
// byte plus up to channels payload bytes (the RGBA opcode for 4 channels,
// the RGB opcode for 3), bracketed by the header and end-marker. channels
// is not validated.
func EncodeMaxLen(width, height uint32, channels uint8) uint64 {
	return uint64(HeaderSize) + uint64(width)*uint64(height)*(uint64(channels)+1) + 8
}

// Encoder builds a QOI stream from raw pixel bytes. Construct one with
// NewEncoder, optionally narrow its configuration with the With* methods,
// then call EncodeToVec or EncodeToBuf.
type Encoder struct {
	src           []byte
	width, height uint32

	stride      int
	layout      RawLayout
	layoutSet   bool
	outChannels uint8
	colorspace  ColorSpace
}

// NewEncoder returns an Encoder for a width x height image stored in src.
// Defaults: stride is width*bytesPerPixel(layout); raw layout is inferred
// from len(src) (RGBA if it matches width*height*4, RGB if it matches
// width*height*3); output channels match the layout; colorspace is sRGB.
func NewEncoder(src []byte, width, height uint32) *Encoder {
	return &Encoder{src: src, width: width, height: height, colorspace: SRGB}
}

// WithStride overrides the default row stride (bytes per row of src).
func (e *Encoder) WithStride(stride int) *Encoder {
	e.stride = stride
	return e
}

// WithRawLayout overrides the inferred input channel layout.
func (e *Encoder) WithRawLayout(l RawLayout) *Encoder {
	e.layout = l
	e.layoutSet = true
	return e
}

// WithOutChannels overrides the output channel count (3 or 4).
func (e *Encoder) WithOutChannels(ch uint8) *Encoder {
	e.outChannels = ch
	return e
}

// WithColorspace overrides the colorspace recorded in the header.
func (e *Encoder) WithColorspace(cs ColorSpace) *Encoder {
	e.colorspace = cs
	return e
}

// resolved is the fully validated, defaulted configuration for one encode.
type resolved struct {
	header Header
	stride int
	layout RawLayout
}

// resolve validates and defaults the Encoder's configuration. A
// channel-inference failure (length matches neither w*h*3 nor w*h*4) is
// reported as InvalidImageLength, rather than as a distinct error, since
// there is no layout left to blame it on.
func (e *Encoder) resolve() (resolved, error) {
	layout := e.layout
	if !e.layoutSet {
		wh := uint64(e.width) * uint64(e.height)
		switch uint64(len(e.src)) {
		case wh * 4:
			layout = Rgba
		case wh * 3:
			layout = Rgb
		default:
			return resolved{}, &InvalidImageLengthError{Size: len(e.src), Width: int(e.width), Height: int(e.height)}
		}
	} else if !validLayout(layout) {
		return resolved{}, ErrInvalidRawLayout
	}

	outChannels := e.outChannels
	if outChannels == 0 {
		if layout.hasAlpha() {
			outChannels = 4
		} else {
			outChannels = 3
		}
	}

	h, err := NewHeader(e.width, e.height, outChannels, e.colorspace)
	if err != nil {
		return resolved{}, err
	}

	stride := e.stride
	if stride == 0 {
		stride = rawStride(int(e.width), layout)
	}
	if err := checkRawImage(e.src, int(e.width), int(e.height), stride, layout); err != nil {
		return resolved{}, err
	}

	logDebug("resolved encoder config", "layout", layout, "stride", stride, "outChannels", outChannels)
	return resolved{header: h, stride: stride, layout: layout}, nil
}

// EncodeToVec encodes the Encoder's configured image and returns a freshly
// allocated byte slice holding the complete QOI stream (header, opcodes,
// end-marker).
func (e *Encoder) EncodeToVec() ([]byte, error) {
	r, err := e.resolve()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, EncodeMaxLen(r.header.Width, r.header.Height, r.header.Channels))
	return e.encodeInto(buf, r)
}

// EncodeToBuf encodes the Encoder's configured image into dst, which must
// have a capacity of at least EncodeMaxLen(width, height, outChannels), and
// returns the number of bytes written. No allocation occurs beyond dst's
// existing backing array when that capacity requirement is met.
func (e *Encoder) EncodeToBuf(dst []byte) (int, error) {
	r, err := e.resolve()
	if err != nil {
		return 0, err
	}
	required := EncodeMaxLen(r.header.Width, r.header.Height, r.header.Channels)
	if uint64(cap(dst)) < required {
		return 0, &OutputBufferTooSmallError{Size: len(dst), Required: int(required)}
	}
	out, err := e.encodeInto(dst[:0], r)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

// encodeInto appends the header, every opcode and the end-marker to buf
// and returns it. buf must have zero length and sufficient capacity.
func (e *Encoder) encodeInto(buf []byte, r resolved) ([]byte, error) {
	hb := r.header.encode()
	buf = append(buf, hb[:]...)

	// With 4 output channels each pixel keeps its real alpha (from the input
	// layout, or defaultAlpha when the layout has none). With 3 output
	// channels alpha is discarded: every pixel enters the codec with
	// defaultAlpha, so no RGBA opcode is emitted.
	st := newEncState()
	dropAlpha := r.header.Channels == 3
	forEachPixel(e.src, int(r.header.Width), int(r.header.Height), r.stride, r.layout, func(p pixel) {
		if dropAlpha {
			p.a = defaultAlpha
		}
		buf = st.encode(buf, p)
	})
	buf = st.flush(buf)
	buf = append(buf, endMarker[:]...)
	return buf, nil
}

// EncodeToVec encodes src (a width x height image with raw layout and
// stride inferred or overridden via opts) and returns a freshly allocated
// QOI byte stream.
func EncodeToVec(src []byte, width, height uint32, opts ...EncodeOption) ([]byte, error) {
	e := NewEncoder(src, width, height)
	for _, opt := range opts {
		opt(e)
	}
	return e.EncodeToVec()
}

// EncodeToBuf encodes src into dst as EncodeToVec does, but without
// allocating, provided dst has sufficient capacity. It returns the number
// of bytes written.
func EncodeToBuf(src []byte, width, height uint32, dst []byte, opts ...EncodeOption) (int, error) {
	e := NewEncoder(src, width, height)
	for _, opt := range opts {
		opt(e)
	}
	return e.EncodeToBuf(dst)
}

// EncodeOption configures an Encoder built by EncodeToVec/EncodeToBuf.
type EncodeOption func(*Encoder)

// WithStride is an EncodeOption overriding the default row stride.
func WithStride(stride int) EncodeOption { return func(e *Encoder) { e.WithStride(stride) } }

// WithRawLayout is an EncodeOption overriding the inferred input layout.
func WithRawLayout(l RawLayout) EncodeOption { return func(e *Encoder) { e.WithRawLayout(l) } }

// WithOutChannels is an EncodeOption overriding the output channel count.
func WithOutChannels(ch uint8) EncodeOption { return func(e *Encoder) { e.WithOutChannels(ch) } }

// WithColorspace is an EncodeOption overriding the header's colorspace.
func WithColorspace(cs ColorSpace) EncodeOption { return func(e *Encoder) { e.WithColorspace(cs) } }

// writeEndMarker writes the 8-byte end-marker to w. EncodeToVec and
// EncodeToBuf do not call it; encodeInto appends the end-marker itself.
func writeEndMarker(w io.Writer) error {
	_, err := w.Write(endMarker[:])
	return err
}
