/*
NAME
  encode_test.go

DESCRIPTION
  encode_test.go contains tests for encode.go, including literal worked
  end-to-end encoding scenarios.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package qoi

import (
	"bytes"
	"testing"
)

// TestScenarioS1 encodes a single transparent-black RGBA pixel and checks
// the exact opcode byte sequence: the index starts zeroed, so slot 0 (the
// hash of (0,0,0,0)) already holds this pixel, and the INDEX check, which
// comes before the alpha check, emits INDEX(0) rather than RGBA.
func TestScenarioS1(t *testing.T) {
	src := []byte{0, 0, 0, 0}
	got, err := EncodeToVec(src, 1, 1, WithRawLayout(Rgba), WithOutChannels(4))
	if err != nil {
		t.Fatalf("EncodeToVec: %v", err)
	}
	h := Header{Width: 1, Height: 1, Channels: 4, Colorspace: SRGB}
	hb := h.encode()
	want := append(append([]byte{}, hb[:]...), 0x00)
	want = append(want, endMarker[:]...)
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}

	hdr, out, err := DecodeToVec(got, 4)
	if err != nil {
		t.Fatalf("DecodeToVec: %v", err)
	}
	if hdr != h {
		t.Errorf("header = %+v, want %+v", hdr, h)
	}
	if !bytes.Equal(out, src) {
		t.Errorf("decoded = % x, want % x", out, src)
	}
}

// TestScenarioS2 encodes three pixels -- two repeats of the initial
// previous pixel followed by a pixel too different for DIFF/LUMA -- and
// checks the literal opcode bytes.
func TestScenarioS2(t *testing.T) {
	src := []byte{
		0, 0, 0, 255,
		0, 0, 0, 255,
		10, 20, 30, 255,
	}
	got, err := EncodeToVec(src, 3, 1, WithRawLayout(Rgba), WithOutChannels(4), WithColorspace(Linear))
	if err != nil {
		t.Fatalf("EncodeToVec: %v", err)
	}
	want := []byte{0xC1, 0xFE, 0x0A, 0x14, 0x1E}
	gotPayload := got[HeaderSize : len(got)-8]
	if !bytes.Equal(gotPayload, want) {
		t.Errorf("payload = % x, want % x", gotPayload, want)
	}

	_, out, err := DecodeToVec(got, 4)
	if err != nil {
		t.Fatalf("DecodeToVec: %v", err)
	}
	wantOut := []byte{0, 0, 0, 255, 0, 0, 0, 255, 10, 20, 30, 255}
	if !bytes.Equal(out, wantOut) {
		t.Errorf("decoded = % x, want % x", out, wantOut)
	}
}

// TestScenarioS4 covers a 2x2 BGR input decoding back to the canonical
// pixel order.
func TestScenarioS4(t *testing.T) {
	src := make([]byte, 12)
	for i := range src {
		src[i] = byte(i)
	}
	enc, err := EncodeToVec(src, 2, 2, WithRawLayout(Bgr))
	if err != nil {
		t.Fatalf("EncodeToVec: %v", err)
	}
	_, out, err := DecodeToVec(enc, 3)
	if err != nil {
		t.Fatalf("DecodeToVec: %v", err)
	}
	want := []byte{2, 1, 0, 5, 4, 3, 8, 7, 6, 11, 10, 9}
	if !bytes.Equal(out, want) {
		t.Errorf("decoded = % x, want % x", out, want)
	}
}

// TestScenarioS5 covers a 2x2 ABGR input decoding back to the canonical
// pixel order.
func TestScenarioS5(t *testing.T) {
	src := make([]byte, 16)
	for i := range src {
		src[i] = byte(i)
	}
	enc, err := EncodeToVec(src, 2, 2, WithRawLayout(Abgr))
	if err != nil {
		t.Fatalf("EncodeToVec: %v", err)
	}
	_, out, err := DecodeToVec(enc, 4)
	if err != nil {
		t.Fatalf("DecodeToVec: %v", err)
	}
	want := []byte{3, 2, 1, 0, 7, 6, 5, 4, 11, 10, 9, 8, 15, 14, 13, 12}
	if !bytes.Equal(out, want) {
		t.Errorf("decoded = % x, want % x", out, want)
	}
}

// TestScenarioS6 covers channel-inference failure: an input length matching
// neither width*height*3 nor width*height*4 is reported as
// InvalidImageLength.
func TestScenarioS6(t *testing.T) {
	src := make([]byte, 12)
	_, err := EncodeToVec(src, 3, 3)
	e, ok := err.(*InvalidImageLengthError)
	if !ok {
		t.Fatalf("expected *InvalidImageLengthError, got %T (%v)", err, err)
	}
	want := &InvalidImageLengthError{Size: 12, Width: 3, Height: 3}
	if *e != *want {
		t.Errorf("got %+v, want %+v", e, want)
	}
}

func TestEncodeMaxLen(t *testing.T) {
	got := EncodeMaxLen(4, 5, 4)
	want := uint64(14 + 4*5*(4+1) + 8)
	if got != want {
		t.Errorf("EncodeMaxLen() = %d, want %d", got, want)
	}
}

// TestSizeBound checks that the encoded length does not exceed
// EncodeMaxLen for input whose alpha changes at every pixel, so that every
// pixel not already in the index costs a 5-byte RGBA opcode.
func TestSizeBound(t *testing.T) {
	const w, h = 16, 16
	src := make([]byte, w*h*4)
	for i := range src {
		src[i] = byte(i * 37)
	}
	enc, err := EncodeToVec(src, w, h, WithRawLayout(Rgba))
	if err != nil {
		t.Fatalf("EncodeToVec: %v", err)
	}
	max := EncodeMaxLen(w, h, 4)
	if uint64(len(enc)) > max {
		t.Errorf("encoded length %d exceeds EncodeMaxLen %d", len(enc), max)
	}
}

// TestEndMarker checks that every stream ends with the 8-byte sentinel.
func TestEndMarker(t *testing.T) {
	src := []byte{1, 2, 3}
	enc, err := EncodeToVec(src, 1, 1, WithRawLayout(Rgb))
	if err != nil {
		t.Fatalf("EncodeToVec: %v", err)
	}
	var got [8]byte
	copy(got[:], enc[len(enc)-8:])
	if got != endMarker {
		t.Errorf("end-marker = % x, want % x", got, endMarker)
	}
}

// TestOutputBufferTooSmall covers the OutputBufferTooSmall failure mode of
// EncodeToBuf.
func TestOutputBufferTooSmall(t *testing.T) {
	src := []byte{1, 2, 3}
	dst := make([]byte, 1)
	_, err := EncodeToBuf(src, 1, 1, dst, WithRawLayout(Rgb))
	if _, ok := err.(*OutputBufferTooSmallError); !ok {
		t.Fatalf("expected *OutputBufferTooSmallError, got %T (%v)", err, err)
	}
}

// TestEncodeToBufNoAllocation checks that EncodeToBuf, given a
// sufficiently sized buffer, writes within it rather than returning a
// different slice.
func TestEncodeToBufNoAllocation(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	dst := make([]byte, EncodeMaxLen(2, 2, 3))
	n, err := EncodeToBuf(src, 2, 2, dst, WithRawLayout(Rgb))
	if err != nil {
		t.Fatalf("EncodeToBuf: %v", err)
	}
	want, err := EncodeToVec(src, 2, 2, WithRawLayout(Rgb))
	if err != nil {
		t.Fatalf("EncodeToVec: %v", err)
	}
	if !bytes.Equal(dst[:n], want) {
		t.Errorf("EncodeToBuf result = % x, want % x", dst[:n], want)
	}
}

// TestReconciliationUpConvert checks that encoding 3-channel input
// to 4-channel output synthesizes alpha 255.
func TestReconciliationUpConvert(t *testing.T) {
	src := []byte{10, 20, 30}
	enc, err := EncodeToVec(src, 1, 1, WithRawLayout(Rgb), WithOutChannels(4))
	if err != nil {
		t.Fatalf("EncodeToVec: %v", err)
	}
	_, out, err := DecodeToVec(enc, 4)
	if err != nil {
		t.Fatalf("DecodeToVec: %v", err)
	}
	want := []byte{10, 20, 30, 255}
	if !bytes.Equal(out, want) {
		t.Errorf("decoded = % x, want % x", out, want)
	}
}

// TestReconciliationDownConvert checks that encoding 4-channel input
// to 3-channel output drops alpha.
func TestReconciliationDownConvert(t *testing.T) {
	src := []byte{10, 20, 30, 128}
	enc, err := EncodeToVec(src, 1, 1, WithRawLayout(Rgba), WithOutChannels(3))
	if err != nil {
		t.Fatalf("EncodeToVec: %v", err)
	}
	_, out, err := DecodeToVec(enc, 3)
	if err != nil {
		t.Fatalf("DecodeToVec: %v", err)
	}
	want := []byte{10, 20, 30}
	if !bytes.Equal(out, want) {
		t.Errorf("decoded = % x, want % x", out, want)
	}
}

// TestLayoutPermutationsAgree checks that encoding the same
// canonical image via any of the ten raw layouts decodes to the same
// canonical image.
func TestLayoutPermutationsAgree(t *testing.T) {
	canonical := []pixel{
		{10, 20, 30, 255},
		{200, 1, 99, 40},
		{0, 0, 0, 255},
		{255, 255, 255, 0},
	}
	canonicalRGBA := make([]byte, 0, len(canonical)*4)
	for _, p := range canonical {
		canonicalRGBA = append(canonicalRGBA, p.r, p.g, p.b, p.a)
	}

	layouts := []RawLayout{Rgb, Rgba, Bgr, Bgra, Argb, Abgr, Rgbx, Xrgb, Bgrx, Xbgr}
	for _, l := range layouts {
		t.Run(l.String(), func(t *testing.T) {
			raw := rawBytesForLayout(canonical, l)
			enc, err := EncodeToVec(raw, 4, 1, WithRawLayout(l), WithOutChannels(4))
			if err != nil {
				t.Fatalf("EncodeToVec: %v", err)
			}
			_, out, err := DecodeToVec(enc, 4)
			if err != nil {
				t.Fatalf("DecodeToVec: %v", err)
			}
			if l.hasAlpha() {
				if !bytes.Equal(out, canonicalRGBA) {
					t.Errorf("decoded = % x, want % x", out, canonicalRGBA)
				}
				return
			}
			// Layouts with no real alpha channel always carry 255 in the
			// canonical view, regardless of what the test fixture's alpha
			// values were.
			wantNoAlpha := make([]byte, 0, len(canonical)*4)
			for _, p := range canonical {
				wantNoAlpha = append(wantNoAlpha, p.r, p.g, p.b, defaultAlpha)
			}
			if !bytes.Equal(out, wantNoAlpha) {
				t.Errorf("decoded = % x, want % x", out, wantNoAlpha)
			}
		})
	}
}

// rawBytesForLayout re-encodes canonical pixels into layout l's raw byte
// order, the inverse of RawLayout.readPixel.
func rawBytesForLayout(canonical []pixel, l RawLayout) []byte {
	out := make([]byte, 0, len(canonical)*l.bytesPerPixel())
	for _, p := range canonical {
		switch l {
		case Rgb:
			out = append(out, p.r, p.g, p.b)
		case Rgba:
			out = append(out, p.r, p.g, p.b, p.a)
		case Bgr:
			out = append(out, p.b, p.g, p.r)
		case Bgra:
			out = append(out, p.b, p.g, p.r, p.a)
		case Argb:
			out = append(out, p.a, p.r, p.g, p.b)
		case Abgr:
			out = append(out, p.a, p.b, p.g, p.r)
		case Rgbx:
			out = append(out, p.r, p.g, p.b, 0)
		case Xrgb:
			out = append(out, 0, p.r, p.g, p.b)
		case Bgrx:
			out = append(out, p.b, p.g, p.r, 0)
		case Xbgr:
			out = append(out, 0, p.b, p.g, p.r)
		}
	}
	return out
}

// TestRoundTrip checks decode(encode(x)) == x across a range of small synthetic images.
func TestRoundTrip(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {3, 1}, {1, 3}, {7, 5}, {16, 16}}
	for _, sz := range sizes {
		for _, ch := range []uint8{3, 4} {
			src := make([]byte, sz.w*sz.h*int(ch))
			for i := range src {
				src[i] = byte((i*73 + i/3) % 256)
			}
			layout := Rgb
			if ch == 4 {
				layout = Rgba
			}
			enc, err := EncodeToVec(src, uint32(sz.w), uint32(sz.h), WithRawLayout(layout), WithOutChannels(ch))
			if err != nil {
				t.Fatalf("%+v ch=%d: EncodeToVec: %v", sz, ch, err)
			}
			_, out, err := DecodeToVec(enc, ch)
			if err != nil {
				t.Fatalf("%+v ch=%d: DecodeToVec: %v", sz, ch, err)
			}
			if !bytes.Equal(out, src) {
				t.Errorf("%+v ch=%d: round trip mismatch", sz, ch)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	a, err := EncodeToVec(src, 2, 2, WithRawLayout(Rgb))
	if err != nil {
		t.Fatalf("EncodeToVec: %v", err)
	}
	b, err := EncodeToVec(src, 2, 2, WithRawLayout(Rgb))
	if err != nil {
		t.Fatalf("EncodeToVec: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encode is not deterministic")
	}
}
