package compression

import (
	"fmt"

	"github.com/dargueta/squeeze"
	"github.com/icza/bitio"
)

// Encoder writes the codes of bytes to a bit stream, with no padding between
// codes. It does not own the writer; callers must Close it to flush the final
// partial byte.
type Encoder struct {
	w           *bitio.Writer
	table       *CodeTable
	packed      [256]uint64
	bitsWritten uint64
}

func NewEncoder(table *CodeTable, w *bitio.Writer) *Encoder {
	encoder := &Encoder{w: w, table: table}
	for _, symbol := range table.Symbols() {
		code, _ := table.Lookup(symbol)
		if code.Len() > 64 {
			continue
		}
		value := uint64(0)
		for i := 0; i < code.Len(); i++ {
			value <<= 1
			if code.Bit(i) {
				value |= 1
			}
		}
		encoder.packed[symbol] = value
	}
	return encoder
}

// Write implements [io.Writer]. It fails if a byte in p has no code in the
// table.
func (encoder *Encoder) Write(p []byte) (int, error) {
	for n, symbol := range p {
		code, ok := encoder.table.Lookup(symbol)
		if !ok {
			return n, squeeze.ErrInvalidArgument.WithMessage(
				fmt.Sprintf("symbol %#02x has no code", symbol))
		}

		var err error
		if code.Len() <= 64 {
			err = encoder.w.WriteBits(encoder.packed[symbol], uint8(code.Len()))
		} else {
			for i := 0; i < code.Len() && err == nil; i++ {
				err = encoder.w.WriteBool(code.Bit(i))
			}
		}
		if err != nil {
			return n, squeeze.ErrIO.Wrap(err)
		}
		encoder.bitsWritten += uint64(code.Len())
	}
	return len(p), nil
}

// BitsWritten returns the total number of payload bits written so far.
func (encoder *Encoder) BitsWritten() uint64 {
	return encoder.bitsWritten
}

// No node links back to the root, so 0 marks a missing child.
type trieNode struct {
	children [2]int32
	symbol   byte
	leaf     bool
}

// Decoder reads bytes from a bit stream one code at a time.
//
// The codes are loaded into a trie when the decoder is created, so changes to
// the table afterwards don't affect it.
type Decoder struct {
	r        *bitio.Reader
	nodes    []trieNode
	bitsRead uint64
}

// NewDecoder builds a decoder for the codes in table. It fails with
// [squeeze.ErrMalformedStream] if the codes aren't prefix-free.
func NewDecoder(table *CodeTable, r *bitio.Reader) (*Decoder, error) {
	decoder := &Decoder{r: r, nodes: []trieNode{{}}}

	for _, symbol := range table.Symbols() {
		code, _ := table.Lookup(symbol)
		current := int32(0)
		for i := 0; i < code.Len(); i++ {
			if decoder.nodes[current].leaf {
				return nil, squeeze.ErrMalformedStream.WithMessage(
					fmt.Sprintf(
						"code for symbol %#02x has the code for %#02x as a prefix",
						symbol,
						decoder.nodes[current].symbol,
					),
				)
			}

			bit := 0
			if code.Bit(i) {
				bit = 1
			}
			next := decoder.nodes[current].children[bit]
			if next == 0 {
				decoder.nodes = append(decoder.nodes, trieNode{})
				next = int32(len(decoder.nodes) - 1)
				decoder.nodes[current].children[bit] = next
			}
			current = next
		}

		node := &decoder.nodes[current]
		if node.leaf || node.children[0] != 0 || node.children[1] != 0 {
			return nil, squeeze.ErrMalformedStream.WithMessage(
				fmt.Sprintf("code for symbol %#02x is a prefix of another code", symbol))
		}
		node.leaf = true
		node.symbol = symbol
	}
	return decoder, nil
}

// ReadSymbol reads bits until they match a code, and returns that code's
// symbol.
//
// If the stream ends partway through a code the error is
// [squeeze.ErrTruncatedStream]. If the bits read so far can't be the beginning
// of any code, it's [squeeze.ErrMalformedStream].
func (decoder *Decoder) ReadSymbol() (byte, error) {
	current := int32(0)
	for {
		bit, err := decoder.r.ReadBool()
		if err != nil {
			return 0, readError(err, "payload ended in the middle of a code")
		}
		decoder.bitsRead++

		index := 0
		if bit {
			index = 1
		}
		current = decoder.nodes[current].children[index]
		if current == 0 {
			return 0, squeeze.ErrMalformedStream.WithMessage(
				"payload bits don't match any code")
		}
		if decoder.nodes[current].leaf {
			return decoder.nodes[current].symbol, nil
		}
	}
}

// BitsRead returns the total number of payload bits consumed so far.
func (decoder *Decoder) BitsRead() uint64 {
	return decoder.bitsRead
}
