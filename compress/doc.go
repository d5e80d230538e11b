// Package compress provides the optional outer compression layer that can
// wrap a finished tpzip file.
//
// tpzip's own domain-specific encoding (predictive residuals plus
// per-field canonical Huffman coding, in codec) already squeezes most of
// the redundancy out of a trade file. This package exists for the
// remaining byte-level redundancy a general-purpose compressor can still
// find in the packed bit stream — it is an optional second pass, off by
// default, not a substitute for the domain encoding.
//
// # Supported algorithms
//
//   - None: no envelope, the tpzip stream is written as-is
//   - LZ4: fastest decompression, modest ratio
//   - S2: balanced speed and ratio, a Snappy-compatible format
//   - Zstd: best ratio, more CPU
//
// Each algorithm implements Codec, and compress.New looks one up by
// format.EnvelopeKind.
package compress
