// Package sink writes decoded assets to disk: images as PNG or BMP, samples
// as WAV, videos, patterns and palettes verbatim, and a Hex Fiend template
// describing the script layout.
//
// Every writer reports failures as errors.KindEncoderIO carrying the target
// path, so one failing artifact never stops the rest of an extraction.
package sink
