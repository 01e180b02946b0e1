package compression

import (
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/squeeze"
	"github.com/icza/bitio"
)

// Field widths of the stream header, in bits. All integers are big-endian.
const (
	pairCountBits   = 32
	symbolBits      = 8
	codeLengthBits  = 32
	symbolCountBits = 64
)

// Header is everything in a compressed stream before the payload: the code
// table, and the number of symbols encoded in the payload.
type Header struct {
	Table       *CodeTable
	SymbolCount uint64
}

// BitLength returns the size of the serialized header in bits.
func (header *Header) BitLength() uint64 {
	total := uint64(pairCountBits + symbolCountBits)
	for _, symbol := range header.Table.Symbols() {
		code, _ := header.Table.Lookup(symbol)
		total += symbolBits + codeLengthBits + uint64(code.Len())
	}
	return total
}

// WriteHeader serializes the header. Code bits are written one at a time, first
// bit first, and symbols in ascending order.
func WriteHeader(w *bitio.Writer, header *Header) error {
	err := w.WriteBits(uint64(header.Table.Len()), pairCountBits)
	if err != nil {
		return squeeze.ErrIO.Wrap(err)
	}

	for _, symbol := range header.Table.Symbols() {
		code, _ := header.Table.Lookup(symbol)
		if err = w.WriteBits(uint64(symbol), symbolBits); err != nil {
			return squeeze.ErrIO.Wrap(err)
		}
		if err = w.WriteBits(uint64(code.Len()), codeLengthBits); err != nil {
			return squeeze.ErrIO.Wrap(err)
		}
		for i := 0; i < code.Len(); i++ {
			if err = w.WriteBool(code.Bit(i)); err != nil {
				return squeeze.ErrIO.Wrap(err)
			}
		}
	}

	if err = w.WriteBits(header.SymbolCount, symbolCountBits); err != nil {
		return squeeze.ErrIO.Wrap(err)
	}
	return nil
}

// ReadHeader reads and validates the header at the beginning of a compressed
// stream. Nothing past the header is read.
func ReadHeader(input io.Reader) (*Header, error) {
	return readHeader(bitio.NewReader(input))
}

func readHeader(r *bitio.Reader) (*Header, error) {
	pairCount, err := r.ReadBits(pairCountBits)
	if err != nil {
		return nil, readError(err, "missing pair count")
	}
	if pairCount == 0 || pairCount > 256 {
		return nil, squeeze.ErrMalformedStream.WithMessage(
			fmt.Sprintf("pair count must be in [1, 256], got %d", pairCount))
	}

	table := &CodeTable{}
	for i := uint64(0); i < pairCount; i++ {
		symbol, err := r.ReadBits(symbolBits)
		if err != nil {
			return nil, readError(err, fmt.Sprintf("pair %d of %d: missing symbol", i, pairCount))
		}
		if _, exists := table.Lookup(byte(symbol)); exists {
			return nil, squeeze.ErrMalformedStream.WithMessage(
				fmt.Sprintf("symbol %#02x appears more than once in the code table", symbol))
		}

		codeLength, err := r.ReadBits(codeLengthBits)
		if err != nil {
			return nil, readError(
				err, fmt.Sprintf("pair %d of %d: missing code length", i, pairCount))
		}
		if codeLength == 0 || codeLength > MaxCodeLength {
			return nil, squeeze.ErrMalformedStream.WithMessage(
				fmt.Sprintf(
					"code length for symbol %#02x must be in [1, %d], got %d",
					symbol,
					MaxCodeLength,
					codeLength,
				),
			)
		}

		bits := make([]bool, codeLength)
		for j := range bits {
			bits[j], err = r.ReadBool()
			if err != nil {
				return nil, readError(
					err,
					fmt.Sprintf("code for symbol %#02x: missing bit %d of %d", symbol, j, codeLength),
				)
			}
		}
		table.Set(byte(symbol), NewCode(bits))
	}

	if err = table.Validate(); err != nil {
		return nil, err
	}

	symbolCount, err := r.ReadBits(symbolCountBits)
	if err != nil {
		return nil, readError(err, "missing symbol count")
	}
	if symbolCount == 0 {
		return nil, squeeze.ErrMalformedStream.WithMessage("symbol count is 0")
	}
	return &Header{Table: table, SymbolCount: symbolCount}, nil
}

// readError converts an error from the bit reader into a stream error. Running
// out of data means the stream was truncated; anything else is an I/O failure.
func readError(err error, context string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return squeeze.ErrTruncatedStream.WithMessage(context)
	}
	return squeeze.ErrIO.Wrap(err)
}
