/*
NAME
  doc.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package qoi implements the QOI (Quite OK Image) lossless image codec: a
// byte-oriented, single-pass bitstream whose opcodes are resolved against a
// rolling previous-pixel and a 64-entry recently-seen colour index.
//
// Encode a raw pixel buffer with EncodeToVec/EncodeToBuf or the Encoder
// builder, which accepts any of ten raw channel layouts and an arbitrary
// row stride. Decode a QOI stream with DecodeToVec/DecodeToBuf or the
// Decoder type, which supports both in-memory and streaming byte sources
// and 3- or 4-channel output regardless of the source's own channel count.
package qoi
