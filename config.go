/*
NAME
  config.go

DESCRIPTION
  config.go provides EncodeOptions, a plain configuration struct for the
  Encoder: exported fields with documented defaults and a Validate method
  that reports every invalid field at once via a MultiError, rather than
  stopping at the first one.

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

// MultiError collects more than one error from a single validation pass.
type MultiError []error

func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("qoi: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}

// EncodeOptions collects the Encoder's configuration: stride, raw input
// layout, output channel count and colorspace. All
// fields are optional; a zero EncodeOptions defaults exactly as NewEncoder
// does on its own.
type EncodeOptions struct {
	// Stride is the number of bytes per row of the input. Zero means
	// width*bytesPerPixel(RawLayout).
	Stride int

	// RawLayout is the input's channel ordering. If RawLayoutSet is false,
	// it is inferred from the input length (see resolve in encode.go).
	RawLayout    RawLayout
	RawLayoutSet bool

	// OutChannels is the number of channels (3 or 4) the encoded header
	// declares. Zero means "match RawLayout".
	OutChannels uint8

	// Colorspace is the colorspace recorded in the header. Defaults to
	// SRGB.
	Colorspace ColorSpace
}

// Validate reports every invalid field of o at once, rather than just the
// first. A zero-value EncodeOptions (all defaults) is always valid.
func (o EncodeOptions) Validate() error {
	var errs MultiError
	if o.Stride < 0 {
		errs = append(errs, fmt.Errorf("qoi: negative stride %d", o.Stride))
	}
	if o.RawLayoutSet && !validLayout(o.RawLayout) {
		errs = append(errs, ErrInvalidRawLayout)
	}
	if o.OutChannels != 0 && o.OutChannels != 3 && o.OutChannels != 4 {
		errs = append(errs, &InvalidChannelsError{Channels: o.OutChannels})
	}
	if o.Colorspace != SRGB && o.Colorspace != Linear {
		errs = append(errs, &InvalidColorSpaceError{ColorSpace: uint8(o.Colorspace)})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// NewEncoderWithOptions returns an Encoder for src configured in one call
// from opts, rather than via the With* chaining methods.
func NewEncoderWithOptions(src []byte, width, height uint32, opts EncodeOptions) (*Encoder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	e := NewEncoder(src, width, height)
	if opts.Stride != 0 {
		e.WithStride(opts.Stride)
	}
	if opts.RawLayoutSet {
		e.WithRawLayout(opts.RawLayout)
	}
	if opts.OutChannels != 0 {
		e.WithOutChannels(opts.OutChannels)
	}
	e.WithColorspace(opts.Colorspace)
	return e, nil
}
