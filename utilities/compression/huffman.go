package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/squeeze"
	"github.com/icza/bitio"
	"github.com/noxer/bytewriter"
	"github.com/xaionaro-go/bytesextra"
)

// decodeChunkSize is how many decoded bytes are collected before being copied
// into the output buffer.
const decodeChunkSize = 4096

// Compress reads the entire input twice, once to count byte frequencies and once
// to encode it, and writes the compressed stream to the output.
//
// The compressed stream is built in memory and written out in one call once
// the input has been fully encoded. The returned int64 gives the number of
// bytes written to the output stream. If an error occurred, the value is
// undefined and should not be used.
func Compress(input io.ReadSeeker, output io.Writer) (int64, error) {
	frequencies, err := CountFrequencies(input)
	if err != nil {
		return 0, err
	}

	tree, err := BuildTree(frequencies)
	if err != nil {
		return 0, err
	}
	table := GenerateCodes(tree)

	// Go back to the beginning of the file to start encoding.
	if _, err = input.Seek(0, io.SeekStart); err != nil {
		return 0, squeeze.ErrIO.Wrap(err)
	}

	buffer := bytes.Buffer{}
	writer := bitio.NewWriter(&buffer)
	header := &Header{Table: table, SymbolCount: frequencies.Total()}
	if err = WriteHeader(writer, header); err != nil {
		return 0, err
	}

	encoder := NewEncoder(table, writer)
	nEncoded, err := io.Copy(encoder, input)
	if err != nil {
		if errors.Is(err, squeeze.ErrInvalidArgument) {
			return 0, squeeze.ErrIO.WithMessage("input changed between passes").Wrap(err)
		}
		return 0, squeeze.ErrIO.Wrap(err)
	}
	if uint64(nEncoded) != frequencies.Total() {
		return 0, squeeze.ErrIO.WithMessage(
			fmt.Sprintf(
				"input changed between passes: counted %d bytes, encoded %d",
				frequencies.Total(),
				nEncoded,
			),
		)
	}

	// Flush the last partial byte, padding it with zeros.
	if err = writer.Close(); err != nil {
		return 0, squeeze.ErrIO.Wrap(err)
	}

	return writeAll(output, buffer.Bytes())
}

// Decompress reads a stream created by [Compress] and writes the original bytes
// to the output.
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// decompressed size). If an error occurred, the value is undefined and should
// not be used.
func Decompress(input io.Reader, output io.Writer) (int64, error) {
	decompressed, err := decompressAll(input)
	if err != nil {
		return 0, err
	}

	return writeAll(output, decompressed)
}

func writeAll(output io.Writer, data []byte) (int64, error) {
	n, err := output.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return int64(n), squeeze.ErrIO.Wrap(err)
	}
	return int64(n), nil
}

func decompressAll(input io.Reader) ([]byte, error) {
	compressed, err := io.ReadAll(input)
	if err != nil {
		return nil, squeeze.ErrIO.Wrap(err)
	}

	reader := bitio.NewReader(bytes.NewReader(compressed))
	header, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	decoder, err := NewDecoder(header.Table, reader)
	if err != nil {
		return nil, err
	}

	// Every symbol takes at least as many bits as the shortest code. If there
	// aren't enough bits left for the declared number of symbols, the payload
	// was cut off. Checking this up front also bounds the allocation below by
	// the size of the input.
	totalBits := uint64(len(compressed)) * 8
	payloadBits := totalBits - header.BitLength()
	maxSymbols := payloadBits / uint64(header.Table.MinCodeLength())
	if header.SymbolCount > maxSymbols {
		return nil, squeeze.ErrTruncatedStream.WithMessage(
			fmt.Sprintf(
				"header declares %d symbols but the payload can hold at most %d",
				header.SymbolCount,
				maxSymbols,
			),
		)
	}

	decompressed := make([]byte, header.SymbolCount)
	sink := bytewriter.New(decompressed)
	chunk := make([]byte, 0, decodeChunkSize)

	for i := uint64(0); i < header.SymbolCount; i++ {
		symbol, err := decoder.ReadSymbol()
		if err != nil {
			return nil, err
		}

		chunk = append(chunk, symbol)
		if len(chunk) == cap(chunk) {
			if _, err = sink.Write(chunk); err != nil {
				return nil, squeeze.ErrIO.Wrap(err)
			}
			chunk = chunk[:0]
		}
	}
	if _, err = sink.Write(chunk); err != nil {
		return nil, squeeze.ErrIO.Wrap(err)
	}

	// Only the padding in the final byte may follow the payload, and it must be
	// all zeros.
	remainingBits := payloadBits - decoder.BitsRead()
	if remainingBits >= 8 {
		return nil, squeeze.ErrMalformedStream.WithMessage(
			fmt.Sprintf("%d bytes of trailing data after the payload", remainingBits/8))
	}
	if remainingBits > 0 {
		padding, err := reader.ReadBits(uint8(remainingBits))
		if err != nil {
			return nil, readError(err, "missing padding")
		}
		if padding != 0 {
			return nil, squeeze.ErrMalformedStream.WithMessage("padding bits aren't zero")
		}
	}
	return decompressed, nil
}

// CompressBytes is a convenience function wrapping [Compress]. It functions
// identically, except it compresses a byte slice and returns the compressed data
// in a new byte slice.
func CompressBytes(data []byte) ([]byte, error) {
	buffer := bytes.Buffer{}
	_, err := Compress(bytesextra.NewReadWriteSeeker(data), &buffer)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// DecompressBytes is a convenience function wrapping [Decompress]. It returns
// the decompressed data in a new byte slice.
func DecompressBytes(compressed []byte) ([]byte, error) {
	return decompressAll(bytes.NewReader(compressed))
}
