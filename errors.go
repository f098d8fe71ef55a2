/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the error taxonomy returned by the QOI codec: sentinel
  values for conditions with no extra state, and field-carrying struct
  errors for everything else.

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
	"fmt"
)

// Sentinel errors that carry no extra state.
var (
	// ErrInvalidMagic is returned when a stream does not start with the
	// "qoif" magic bytes.
	ErrInvalidMagic = errors.New("qoi: invalid magic bytes")

	// UnexpectedEOF is returned when a byte source ends before the declared
	// pixel count, or the header, has been fully read.
	UnexpectedEOF = errors.New("qoi: unexpected end of input")

	// ErrInvalidPadding is returned when a stream's end-marker does not match
	// the expected 8-byte sentinel.
	ErrInvalidPadding = errors.New("qoi: invalid end-marker padding")
)

// InvalidChannelsError is returned when a header's channel count is neither
// 3 nor 4.
type InvalidChannelsError struct {
	Channels uint8
}

func (e *InvalidChannelsError) Error() string {
	return fmt.Sprintf("qoi: invalid channel count %d, want 3 or 4", e.Channels)
}

// InvalidColorSpaceError is returned when a header's colorspace byte is
// neither sRGB (0) nor linear (1).
type InvalidColorSpaceError struct {
	ColorSpace uint8
}

func (e *InvalidColorSpaceError) Error() string {
	return fmt.Sprintf("qoi: invalid colorspace %d, want 0 (sRGB) or 1 (linear)", e.ColorSpace)
}

// InvalidImageDimensionsError is returned when a header's width or height is
// zero.
type InvalidImageDimensionsError struct {
	Width, Height uint32
}

func (e *InvalidImageDimensionsError) Error() string {
	return fmt.Sprintf("qoi: invalid image dimensions %dx%d, both must be >= 1", e.Width, e.Height)
}

// ImageTooLargeError is returned when a header's pixel count exceeds the
// implementation's cap (maxPixels).
type ImageTooLargeError struct {
	Width, Height uint32
}

func (e *ImageTooLargeError) Error() string {
	return fmt.Sprintf("qoi: image %dx%d exceeds the %d pixel limit", e.Width, e.Height, maxPixels)
}

// InvalidImageLengthError is returned when raw input bytes are inconsistent
// with the width, height, bytes-per-pixel and stride supplied to the
// Encoder.
type InvalidImageLengthError struct {
	Size, Width, Height int
}

func (e *InvalidImageLengthError) Error() string {
	return fmt.Sprintf("qoi: input length %d is inconsistent with %dx%d image", e.Size, e.Width, e.Height)
}

// OutputBufferTooSmallError is returned when a caller-supplied output buffer
// cannot hold the required number of bytes.
type OutputBufferTooSmallError struct {
	Size, Required int
}

func (e *OutputBufferTooSmallError) Error() string {
	return fmt.Sprintf("qoi: output buffer has %d bytes, need %d", e.Size, e.Required)
}
