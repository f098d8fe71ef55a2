/*
NAME
  codec.go

DESCRIPTION
  codec.go is the QOI opcode state machine: the 64-slot running index, the
  previous-pixel and run-length state, and the functions that translate a
  single canonical pixel to and from its opcode encoding. This is the core
  the Encoder and Decoder façades (encode.go, decode.go) drive over a whole
  pixel stream.

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
	"io"

	"github.com/pkg/errors"
)

// Opcode tags. RGB and RGBA are single full-byte tags; the remaining four
// opcodes are distinguished by their top two bits, which is why the run
// length encoded by the RUN tag is capped at 62 (bit pattern 0x3D), leaving
// 0xFE and 0xFF free for RGB and RGBA.
const (
	tagRGB  = 0xFE
	tagRGBA = 0xFF

	tagMaskIndex = 0x00
	tagMaskDiff  = 0x40
	tagMaskLuma  = 0x80
	tagMaskRun   = 0xC0
	tagMask      = 0xC0

	maxRun = 62
)

// byteSource is what the decoder needs to read a stream: one byte at a
// time for opcode tags, and short fixed-length reads for opcode payloads.
// Both *bytes.Reader (buffer-mode decode) and *bufio.Reader (stream-mode
// decode) satisfy it.
type byteSource interface {
	io.Reader
	io.ByteReader
}

// encState holds the encoder's rolling state across a single stream:
// the running index, the previously emitted pixel, and the pending run
// length between identical pixels.
type encState struct {
	index [64]pixel
	prev  pixel
	run   int
}

func newEncState() *encState {
	return &encState{prev: startPixel}
}

// encode appends the opcode(s) for pixel p to dst. Opcodes are tried in
// order: run-length first, then INDEX, then RGBA if p's alpha differs from
// the previous pixel's, then DIFF, then LUMA, then RGB.
func (s *encState) encode(dst []byte, p pixel) []byte {
	if p.equal(s.prev) {
		s.run++
		if s.run == maxRun {
			dst = append(dst, runByte(s.run))
			s.run = 0
		}
		return dst
	}
	if s.run > 0 {
		dst = append(dst, runByte(s.run))
		s.run = 0
	}

	h := p.hash()
	if s.index[h].equal(p) {
		dst = append(dst, indexByte(h))
		s.prev = p
		return dst
	}
	s.index[h] = p

	if p.a != s.prev.a {
		dst = append(dst, tagRGBA, p.r, p.g, p.b, p.a)
		s.prev = p
		return dst
	}

	dr := diff(p.r, s.prev.r)
	dg := diff(p.g, s.prev.g)
	db := diff(p.b, s.prev.b)
	switch {
	case inDiffRange(dr) && inDiffRange(dg) && inDiffRange(db):
		dst = append(dst, diffByte(dr, dg, db))
	case inLumaGreenRange(dg) && inLumaRBRange(dr-dg) && inLumaRBRange(db-dg):
		b1, b2 := lumaBytes(dg, dr-dg, db-dg)
		dst = append(dst, b1, b2)
	default:
		dst = append(dst, tagRGB, p.r, p.g, p.b)
	}
	s.prev = p
	return dst
}

// flush appends a final RUN opcode for any pending run at the end of the
// pixel stream. It must be called exactly once, after the last pixel.
func (s *encState) flush(dst []byte) []byte {
	if s.run > 0 {
		dst = append(dst, runByte(s.run))
		s.run = 0
	}
	return dst
}

// decState holds the decoder's rolling state across a single stream: the
// running index, the previously emitted pixel, and the number of pixels
// still owed from an in-progress RUN opcode.
type decState struct {
	index        [64]pixel
	prev         pixel
	runRemaining int
}

func newDecState() *decState {
	return &decState{prev: startPixel}
}

// next decodes and returns the next pixel from src, advancing src by
// however many bytes that opcode consumes (zero, for a pixel supplied by a
// still-running RUN opcode).
func (s *decState) next(src byteSource) (pixel, error) {
	if s.runRemaining > 0 {
		s.runRemaining--
		return s.prev, nil
	}

	tag, err := src.ReadByte()
	if err != nil {
		return pixel{}, errors.Wrap(UnexpectedEOF, "reading opcode tag")
	}

	switch tag {
	case tagRGB:
		var buf [3]byte
		if _, err := io.ReadFull(src, buf[:]); err != nil {
			return pixel{}, errors.Wrap(UnexpectedEOF, "reading RGB payload")
		}
		p := pixel{r: buf[0], g: buf[1], b: buf[2], a: s.prev.a}
		s.index[p.hash()] = p
		s.prev = p
		return p, nil

	case tagRGBA:
		var buf [4]byte
		if _, err := io.ReadFull(src, buf[:]); err != nil {
			return pixel{}, errors.Wrap(UnexpectedEOF, "reading RGBA payload")
		}
		p := pixel{r: buf[0], g: buf[1], b: buf[2], a: buf[3]}
		s.index[p.hash()] = p
		s.prev = p
		return p, nil
	}

	switch tag & tagMask {
	case tagMaskIndex:
		p := s.index[tag&0x3F]
		s.prev = p
		return p, nil

	case tagMaskDiff:
		dr := int8((tag>>4)&0x3) - 2
		dg := int8((tag>>2)&0x3) - 2
		db := int8(tag&0x3) - 2
		p := pixel{
			r: s.prev.r + uint8(dr),
			g: s.prev.g + uint8(dg),
			b: s.prev.b + uint8(db),
			a: s.prev.a,
		}
		s.index[p.hash()] = p
		s.prev = p
		return p, nil

	case tagMaskLuma:
		b2, err := src.ReadByte()
		if err != nil {
			return pixel{}, errors.Wrap(UnexpectedEOF, "reading LUMA payload")
		}
		dg := int8(tag&0x3F) - 32
		drdg := int8((b2>>4)&0xF) - 8
		dbdg := int8(b2&0xF) - 8
		p := pixel{
			r: s.prev.r + uint8(dg+drdg),
			g: s.prev.g + uint8(dg),
			b: s.prev.b + uint8(dg+dbdg),
			a: s.prev.a,
		}
		s.index[p.hash()] = p
		s.prev = p
		return p, nil

	default: // tagMaskRun
		run := int(tag&0x3F) + 1
		s.runRemaining = run - 1
		return s.prev, nil
	}
}

// runByte encodes a run length n (1..62) as a RUN opcode byte.
func runByte(n int) byte {
	return tagMaskRun | byte(n-1)
}

// indexByte encodes an index-table slot h (0..63) as an INDEX opcode byte.
func indexByte(h uint8) byte {
	return tagMaskIndex | h
}

// diffByte encodes a DIFF opcode byte from three biased 2-bit deltas.
func diffByte(dr, dg, db int8) byte {
	return tagMaskDiff | byte(dr+2)<<4 | byte(dg+2)<<2 | byte(db+2)
}

// lumaBytes encodes a LUMA opcode's two bytes from the green delta and the
// two green-relative deltas.
func lumaBytes(dg, drdg, dbdg int8) (byte, byte) {
	b1 := tagMaskLuma | byte(dg+32)
	b2 := byte(drdg+8)<<4 | byte(dbdg+8)
	return b1, b2
}

// inDiffRange reports whether d is representable by the DIFF opcode's 2-bit
// biased field, i.e. d is in [-2, 1].
func inDiffRange(d int8) bool { return d >= -2 && d <= 1 }

// inLumaGreenRange reports whether d is representable by the LUMA opcode's
// 6-bit green field, i.e. d is in [-32, 31].
func inLumaGreenRange(d int8) bool { return d >= -32 && d <= 31 }

// inLumaRBRange reports whether d is representable by one of the LUMA
// opcode's two 4-bit red/blue-relative fields, i.e. d is in [-8, 7].
func inLumaRBRange(d int8) bool { return d >= -8 && d <= 7 }
