/*
NAME
  channels.go

DESCRIPTION
  channels.go adapts between the caller's raw pixel byte layout (any of the
  ten recognised orderings, with an arbitrary row stride) and the canonical
  4-channel pixel the opcode codec operates on, and back again on decode.

  The ten layouts and their channel permutations follow the reference QOI
  implementation's RawImageData reader tables, rather than a format this
  module invents.

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

import "fmt"

// RawLayout identifies the byte ordering of caller-supplied raw pixel data.
type RawLayout int

// The ten recognised raw layouts.
const (
	Rgb RawLayout = iota
	Rgba
	Bgr
	Bgra
	Argb
	Abgr
	Rgbx
	Xrgb
	Bgrx
	Xbgr
)

func (l RawLayout) String() string {
	switch l {
	case Rgb:
		return "RGB"
	case Rgba:
		return "RGBA"
	case Bgr:
		return "BGR"
	case Bgra:
		return "BGRA"
	case Argb:
		return "ARGB"
	case Abgr:
		return "ABGR"
	case Rgbx:
		return "RGBX"
	case Xrgb:
		return "XRGB"
	case Bgrx:
		return "BGRX"
	case Xbgr:
		return "XBGR"
	default:
		return fmt.Sprintf("RawLayout(%d)", int(l))
	}
}

// bytesPerPixel returns the fixed byte width of one pixel in layout l.
func (l RawLayout) bytesPerPixel() int {
	switch l {
	case Rgb, Bgr:
		return 3
	default:
		return 4
	}
}

// hasAlpha reports whether layout l carries a real alpha channel (as
// opposed to an ignored "X" padding byte, or no fourth byte at all).
func (l RawLayout) hasAlpha() bool {
	switch l {
	case Rgba, Bgra, Argb, Abgr:
		return true
	default:
		return false
	}
}

// readPixel extracts a canonical pixel from a single bytesPerPixel(l)-wide
// chunk of raw bytes, following the permutation for layout l.
func (l RawLayout) readPixel(px []byte) pixel {
	switch l {
	case Rgb:
		return pixel{r: px[0], g: px[1], b: px[2], a: defaultAlpha}
	case Rgba:
		return pixel{r: px[0], g: px[1], b: px[2], a: px[3]}
	case Bgr:
		return pixel{r: px[2], g: px[1], b: px[0], a: defaultAlpha}
	case Bgra:
		return pixel{r: px[2], g: px[1], b: px[0], a: px[3]}
	case Argb:
		return pixel{r: px[1], g: px[2], b: px[3], a: px[0]}
	case Abgr:
		return pixel{r: px[3], g: px[2], b: px[1], a: px[0]}
	case Rgbx:
		return pixel{r: px[0], g: px[1], b: px[2], a: defaultAlpha}
	case Xrgb:
		return pixel{r: px[1], g: px[2], b: px[3], a: defaultAlpha}
	case Bgrx:
		return pixel{r: px[2], g: px[1], b: px[0], a: defaultAlpha}
	case Xbgr:
		return pixel{r: px[3], g: px[2], b: px[1], a: defaultAlpha}
	default:
		panic(fmt.Sprintf("qoi: unknown raw layout %d", int(l)))
	}
}

// validLayout reports whether l is one of the ten recognised layouts.
func validLayout(l RawLayout) bool {
	return l >= Rgb && l <= Xbgr
}

// rawStride returns the minimum valid stride (bytes per row, with no
// padding) for width pixels of layout l.
func rawStride(width int, l RawLayout) int {
	return width * l.bytesPerPixel()
}

// checkRawImage validates the (bytes, width, height, stride, layout) input
// contract for raw image input: stride must be at least one packed row wide, and
// bytes must hold height rows of stride length, the last of which only
// needs to supply a full row's worth of pixels (trailing padding is never
// read).
func checkRawImage(data []byte, width, height, stride int, l RawLayout) error {
	minStride := rawStride(width, l)
	if stride < minStride {
		return &InvalidImageLengthError{Size: len(data), Width: width, Height: height}
	}
	required := stride*(height-1) + minStride
	if len(data) < required {
		return &InvalidImageLengthError{Size: len(data), Width: width, Height: height}
	}
	return nil
}

// forEachPixel calls fn once per pixel of a width x height raw image in
// layout l, laid out in data with the given row stride, in row-major,
// left-to-right order. Row padding beyond width*bytesPerPixel(l) is never
// read. The caller must have already validated the image with
// checkRawImage.
func forEachPixel(data []byte, width, height, stride int, l RawLayout, fn func(pixel)) {
	bpp := l.bytesPerPixel()
	for row := 0; row < height; row++ {
		rowStart := row * stride
		for col := 0; col < width; col++ {
			off := rowStart + col*bpp
			fn(l.readPixel(data[off : off+bpp]))
		}
	}
}
