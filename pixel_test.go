/*
NAME
  pixel_test.go

DESCRIPTION
  pixel_test.go contains tests for pixel.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package qoi

import "testing"

func TestPixelHash(t *testing.T) {
	tests := []struct {
		name string
		p    pixel
		want uint8
	}{
		{"black opaque", pixel{0, 0, 0, 255}, 53},
		{"zero", pixel{0, 0, 0, 0}, 0},
		{"start pixel", startPixel, 53},
		{"white opaque", pixel{255, 255, 255, 255}, (255*3 + 255*5 + 255*7 + 255*11) % 64},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.p.hash(); got != test.want {
				t.Errorf("hash() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestPixelEqual(t *testing.T) {
	a := pixel{1, 2, 3, 4}
	b := pixel{1, 2, 3, 4}
	c := pixel{1, 2, 3, 5}
	if !a.equal(b) {
		t.Error("expected a == b")
	}
	if a.equal(c) {
		t.Error("expected a != c")
	}
}

func TestDiffWraparound(t *testing.T) {
	tests := []struct {
		p, q uint8
		want int8
	}{
		{5, 3, 2},
		{3, 5, -2},
		{0, 255, 1},
		{255, 0, -1},
		{0, 0, 0},
	}
	for _, test := range tests {
		if got := diff(test.p, test.q); got != test.want {
			t.Errorf("diff(%d, %d) = %d, want %d", test.p, test.q, got, test.want)
		}
	}
}
