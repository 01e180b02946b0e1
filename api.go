package squeeze

import "io"

// Method names a compression method selectable from the command line.
type Method string

const MethodHuffman Method = "huffman"

// FileCodec is the interface for compression methods that operate on files by
// path. These are the only entry points a command line or archiver layer needs.
//
// Both operations refuse to overwrite an existing output file, and a failed call
// leaves no output file behind.
type FileCodec interface {
	// CompressFile reads the file at inputPath and writes its compressed form
	// to a new file at outputPath.
	CompressFile(inputPath, outputPath string) error
	// DecompressFile reads a compressed file at inputPath and writes the
	// original bytes to a new file at outputPath.
	DecompressFile(inputPath, outputPath string) error
}

// StreamCodec is the interface for compression methods that operate on streams.
//
// Compression needs to read its input twice, so the input must be seekable. The
// returned int64 is the number of bytes written to the output.
type StreamCodec interface {
	Compress(input io.ReadSeeker, output io.Writer) (int64, error)
	Decompress(input io.Reader, output io.Writer) (int64, error)
}
