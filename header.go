/*
NAME
  header.go

DESCRIPTION
  header.go implements the fixed 14-byte QOI header: its validation,
  encoding to and decoding from bytes.

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
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// HeaderSize is the fixed size in bytes of an encoded QOI header.
const HeaderSize = 14

// magic is the 4-byte sequence every QOI stream starts with.
var magic = [4]byte{'q', 'o', 'i', 'f'}

// ColorSpace identifies the colour space metadata carried (but never
// interpreted) by a QOI stream.
type ColorSpace uint8

// The two colour spaces a Header may declare.
const (
	SRGB   ColorSpace = 0
	Linear ColorSpace = 1
)

func (c ColorSpace) String() string {
	switch c {
	case SRGB:
		return "sRGB"
	case Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// maxPixels is the reference format's cap on width*height, chosen to keep
// width*height*channels comfortably within a 64-bit unsigned integer.
const maxPixels = 400_000_000

// Header describes the metadata of a QOI image: its dimensions, channel
// count and colour space.
type Header struct {
	Width, Height uint32
	Channels      uint8
	Colorspace    ColorSpace
}

// NewHeader validates width, height, channels and colorspace and returns a
// Header, or an error describing the first invariant violated.
func NewHeader(width, height uint32, channels uint8, colorspace ColorSpace) (Header, error) {
	h := Header{Width: width, Height: height, Channels: channels, Colorspace: colorspace}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// validate checks the header's invariants: width and height are at least
// 1, channels is 3 or 4, colorspace is sRGB or linear, and the pixel count
// does not exceed maxPixels.
func (h Header) validate() error {
	if h.Width == 0 || h.Height == 0 {
		return &InvalidImageDimensionsError{Width: h.Width, Height: h.Height}
	}
	if h.Channels != 3 && h.Channels != 4 {
		return &InvalidChannelsError{Channels: h.Channels}
	}
	if h.Colorspace != SRGB && h.Colorspace != Linear {
		return &InvalidColorSpaceError{ColorSpace: uint8(h.Colorspace)}
	}
	if uint64(h.Width)*uint64(h.Height) > maxPixels {
		return &ImageTooLargeError{Width: h.Width, Height: h.Height}
	}
	return nil
}

// Pixels returns the number of pixels described by the header.
func (h Header) Pixels() uint64 { return uint64(h.Width) * uint64(h.Height) }

// encode writes the 14-byte wire representation of h into a fresh array.
func (h Header) encode() [HeaderSize]byte {
	var b [HeaderSize]byte
	copy(b[0:4], magic[:])
	binary.BigEndian.PutUint32(b[4:8], h.Width)
	binary.BigEndian.PutUint32(b[8:12], h.Height)
	b[12] = h.Channels
	b[13] = uint8(h.Colorspace)
	return b
}

// decodeHeader parses a Header from the next 14 bytes read from r.
func decodeHeader(r io.Reader) (Header, error) {
	var b [HeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, errors.Wrap(UnexpectedEOF, "reading header")
		}
		return Header{}, errors.Wrap(err, "reading header")
	}
	return headerFromBytes(b[:])
}

// headerFromBytes parses a Header from exactly HeaderSize bytes already in
// memory.
func headerFromBytes(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, errors.Wrap(UnexpectedEOF, "reading header")
	}
	if b[0] != magic[0] || b[1] != magic[1] || b[2] != magic[2] || b[3] != magic[3] {
		return Header{}, ErrInvalidMagic
	}
	h := Header{
		Width:      binary.BigEndian.Uint32(b[4:8]),
		Height:     binary.BigEndian.Uint32(b[8:12]),
		Channels:   b[12],
		Colorspace: ColorSpace(b[13]),
	}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}
