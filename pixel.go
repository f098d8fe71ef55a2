/*
NAME
  pixel.go

DESCRIPTION
  pixel.go defines the canonical pixel representation used internally by the
  QOI codec, along with the hashing and equality rules the opcode state
  machine relies on.

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

// defaultAlpha is the alpha value a 3-channel pixel is assumed to carry, and
// the value the previous-pixel state is seeded with at the start of a stream.
const defaultAlpha = 255

// pixel is the canonical 4-channel colour the opcode codec operates on.
// Source layouts with only 3 channels are always up-converted to this form
// with alpha held at defaultAlpha before entering the codec; channel
// selection on the way out is the concern of the channel adapter, not of
// pixel itself.
type pixel struct {
	r, g, b, a uint8
}

// startPixel is the previous-pixel value both encoder and decoder are
// initialised with at the start of a stream.
var startPixel = pixel{a: defaultAlpha}

// equal reports whether p and q are byte-equal on all four channels.
func (p pixel) equal(q pixel) bool {
	return p == q
}

// hash returns the running-index slot for p: (r*3 + g*5 + b*7 + a*11) mod 64.
func (p pixel) hash() uint8 {
	return (p.r*3 + p.g*5 + p.b*7 + p.a*11) % 64
}

// diff computes the signed, wraparound-safe channel-wise difference p - q,
// each component folded into the range [-128, 127]. This is the building
// block for both the DIFF and LUMA opcode range tests.
func diff(p, q uint8) int8 {
	return int8(p - q)
}
