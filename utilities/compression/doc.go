// Package compression implements a two-pass Huffman file compressor.
//
// The first pass counts how often each byte value occurs. Those counts are used
// to build a Huffman tree, and the path from the root to each leaf (0 for a left
// edge, 1 for a right edge) becomes that byte's code. The second pass replaces
// every byte of the input with its code, packing the codes together with no
// padding between them.
//
// The code table is stored at the beginning of the compressed stream and is the
// only thing the decoder uses. The tree is never rebuilt from frequencies during
// decompression, so any prefix-free table is accepted.
//
// # Stream format
//
// All integers are big-endian, and bits are packed most significant bit first.
// Nothing is byte-aligned except the start of the stream.
//
//	u32  pair count, 1 to 256
//	repeated pair count times, in ascending symbol order:
//	     u8   symbol
//	     u32  code length in bits, 1 to 255
//	     code bits, first bit first
//	u64  number of symbols in the payload
//	payload: the code of each input byte in order
//	zero bits padding the last byte
//
// An input with only one distinct byte value gets the one-bit code "0", so
// "aaaa" compresses to a header followed by four zero bits.
//
// The symbol count lets the decoder stop at the exact end of the payload. A
// stream that runs out of bits before that is reported as truncated, and one
// with anything other than zero padding after it is rejected as malformed.
//
// Everything is held in memory during an operation: the input is read twice
// but the output is built completely before it's written. This limits the size
// of files that can be handled to the available memory, and rules out using the
// codec on unbounded streams.
package compression
