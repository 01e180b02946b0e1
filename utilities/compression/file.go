package compression

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/dargueta/squeeze"
)

// HuffmanCodec exposes Huffman coding as a [squeeze.FileCodec] and a
// [squeeze.StreamCodec].
type HuffmanCodec struct{}

var Huffman = HuffmanCodec{}

var _ squeeze.FileCodec = HuffmanCodec{}
var _ squeeze.StreamCodec = HuffmanCodec{}

func (HuffmanCodec) Compress(input io.ReadSeeker, output io.Writer) (int64, error) {
	return Compress(input, output)
}

func (HuffmanCodec) Decompress(input io.Reader, output io.Writer) (int64, error) {
	return Decompress(input, output)
}

func (HuffmanCodec) CompressFile(inputPath, outputPath string) error {
	return CompressFile(inputPath, outputPath)
}

func (HuffmanCodec) DecompressFile(inputPath, outputPath string) error {
	return DecompressFile(inputPath, outputPath)
}

// CompressFile compresses the file at inputPath into a new file at outputPath.
//
// It fails with [squeeze.ErrExists] if outputPath already exists. On failure no
// file is left at outputPath, and an existing file there is never modified.
func CompressFile(inputPath, outputPath string) error {
	return transformFile(inputPath, outputPath, Compress)
}

// DecompressFile decompresses the file at inputPath into a new file at
// outputPath. The same guarantees as [CompressFile] apply.
func DecompressFile(inputPath, outputPath string) error {
	return transformFile(
		inputPath,
		outputPath,
		func(input io.ReadSeeker, output io.Writer) (int64, error) {
			return Decompress(input, output)
		},
	)
}

func transformFile(
	inputPath, outputPath string,
	transform func(io.ReadSeeker, io.Writer) (int64, error),
) error {
	// Fail early instead of doing all the work and then refusing to write it.
	err := ensureAbsent(outputPath)
	if err != nil {
		return err
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		return squeeze.ErrIO.Wrap(err)
	}
	defer inputFile.Close()

	buffer := bytes.Buffer{}
	if _, err = transform(inputFile, &buffer); err != nil {
		return err
	}
	return writeNewFile(outputPath, buffer.Bytes())
}

func ensureAbsent(path string) error {
	_, err := os.Lstat(path)
	if err == nil {
		return squeeze.ErrExists.WithMessage(path)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return squeeze.ErrIO.Wrap(err)
}

// writeNewFile creates a file that must not already exist and writes data to it.
// If anything goes wrong after the file was created, it's removed again.
func writeNewFile(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, squeeze.DefaultOutputMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return squeeze.ErrExists.Wrap(err)
		}
		return squeeze.ErrIO.Wrap(err)
	}

	_, writeErr := file.Write(data)
	closeErr := file.Close()
	if writeErr == nil && closeErr == nil {
		return nil
	}

	if writeErr != nil {
		err = squeeze.ErrIO.Wrap(writeErr)
	}
	err = squeeze.WithCleanupError(err, closeErr)
	return squeeze.WithCleanupError(err, os.Remove(path))
}
