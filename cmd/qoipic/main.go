/*
DESCRIPTION
  qoipic converts between QOI and other raster image formats (PNG, BMP)
  on the command line.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package qoipic is a command line tool for converting raster images to and
// from QOI.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/qoi"
	"github.com/ausocean/utils/logging"
)

// Logging configuration, following the revid/rv and looper CLI convention of
// a rotating file log plus stderr.
const (
	logPath      = "qoipic.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

func main() {
	in := flag.String("in", "", "input file path")
	out := flag.String("out", "", "output file path")
	outFormat := flag.String("format", "", "output format when converting from QOI: png or bmp (default: inferred from -out's extension)")
	colorspace := flag.String("colorspace", "srgb", "colorspace recorded in a QOI header: srgb or linear")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: qoipic -in <path> -out <path> [-format png|bmp] [-colorspace srgb|linear]")
		os.Exit(2)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	level := int8(logVerbosity)
	if *verbose {
		level = logging.Debug
	}
	log := logging.New(level, io.MultiWriter(fileLog, os.Stderr), logSuppress)
	qoi.Log = log

	if err := run(*in, *out, *outFormat, *colorspace, log); err != nil {
		log.Fatal("qoipic failed", "error", err.Error())
	}
}

func run(in, out, outFormat, colorspaceFlag string, log logging.Logger) error {
	cs, err := parseColorspace(colorspaceFlag)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(in), ".qoi") {
		return decodeToRaster(in, out, outFormat, log)
	}
	return encodeFromRaster(in, out, cs, log)
}

// encodeFromRaster decodes a PNG or BMP file with the standard
// image.Decode registry, reconciles it to 4-channel RGBA, and encodes it to
// a QOI file at out.
func encodeFromRaster(in, out string, cs qoi.ColorSpace, log logging.Logger) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", in, err)
	}
	log.Debug("decoded raster image", "path", in, "format", format)

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	raw := make([]byte, 0, width*height*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			raw = append(raw, byte(r>>8), byte(g>>8), byte(bl>>8), byte(a>>8))
		}
	}

	enc, err := qoi.EncodeToVec(raw, uint32(width), uint32(height),
		qoi.WithRawLayout(qoi.Rgba), qoi.WithColorspace(cs))
	if err != nil {
		return fmt.Errorf("encoding %s: %w", in, err)
	}

	if err := os.WriteFile(out, enc, 0o644); err != nil {
		return err
	}
	log.Info("wrote QOI file", "path", out, "bytes", len(enc))
	return nil
}

// decodeToRaster decodes a QOI file and re-encodes it as a PNG or BMP file
// at out, so round trips through this tool can be diffed against the
// original raster image.
func decodeToRaster(in, out, format string, log logging.Logger) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	hdr, pix, err := qoi.DecodeToVec(data, 4)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", in, err)
	}
	log.Debug("decoded QOI file", "path", in, "width", hdr.Width, "height", hdr.Height)

	img := image.NewNRGBA(image.Rect(0, 0, int(hdr.Width), int(hdr.Height)))
	copy(img.Pix, pix)

	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	}

	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer w.Close()

	switch format {
	case "bmp":
		err = bmp.Encode(w, img)
	case "png", "":
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return err
	}
	log.Info("wrote raster image", "path", out, "format", format)
	return nil
}

func parseColorspace(s string) (qoi.ColorSpace, error) {
	switch strings.ToLower(s) {
	case "srgb", "":
		return qoi.SRGB, nil
	case "linear":
		return qoi.Linear, nil
	default:
		return 0, fmt.Errorf("unknown colorspace %q, want srgb or linear", s)
	}
}
