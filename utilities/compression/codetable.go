package compression

import (
	"fmt"
	"strings"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/squeeze"
)

// MaxCodeLength is the longest code a tree over 256 symbols can produce.
const MaxCodeLength = 255

// Code is a sequence of bits assigned to a symbol. Bit 0 is the first bit
// written to the stream, i.e. the edge leaving the root.
type Code struct {
	bits   bitmap.Bitmap
	length int
}

// NewCode creates a code from a sequence of bits, false being 0 and true 1.
func NewCode(bits []bool) Code {
	code := Code{bits: bitmap.New(len(bits)), length: len(bits)}
	for i, bit := range bits {
		code.bits.Set(i, bit)
	}
	return code
}

// ParseCode creates a code from a string of '0' and '1' characters.
func ParseCode(text string) (Code, error) {
	bits := make([]bool, len(text))
	for i, char := range []byte(text) {
		switch char {
		case '0':
		case '1':
			bits[i] = true
		default:
			return Code{}, squeeze.ErrInvalidArgument.WithMessage(
				fmt.Sprintf("invalid character %q at index %d of code %q", char, i, text))
		}
	}
	return NewCode(bits), nil
}

// Len returns the number of bits in the code.
func (code Code) Len() int {
	return code.length
}

// Bit returns the bit at index i, where index 0 is the first bit.
func (code Code) Bit(i int) bool {
	return code.bits.Get(i)
}

// HasPrefix reports whether prefix is equal to the first prefix.Len() bits of
// this code. Every code has itself as a prefix.
func (code Code) HasPrefix(prefix Code) bool {
	if prefix.length > code.length {
		return false
	}
	for i := 0; i < prefix.length; i++ {
		if code.Bit(i) != prefix.Bit(i) {
			return false
		}
	}
	return true
}

func (code Code) Equal(other Code) bool {
	return code.length == other.length && code.HasPrefix(other)
}

func (code Code) String() string {
	var builder strings.Builder
	builder.Grow(code.length)
	for i := 0; i < code.length; i++ {
		if code.Bit(i) {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}
	return builder.String()
}

// CodeTable maps symbols to their codes. The zero value is an empty table.
type CodeTable struct {
	codes [256]Code
	size  int
}

// Set assigns a code to a symbol, replacing any code it already had. Setting an
// empty code removes the symbol from the table.
func (table *CodeTable) Set(symbol byte, code Code) {
	hadCode := table.codes[symbol].length > 0
	hasCode := code.length > 0
	if hasCode && !hadCode {
		table.size++
	} else if hadCode && !hasCode {
		table.size--
	}
	table.codes[symbol] = code
}

// Lookup returns the code for symbol. The boolean is false if the symbol has no
// code.
func (table *CodeTable) Lookup(symbol byte) (Code, bool) {
	code := table.codes[symbol]
	return code, code.length > 0
}

// Len returns the number of symbols that have a code.
func (table *CodeTable) Len() int {
	return table.size
}

// Symbols returns the symbols that have a code, in ascending order.
func (table *CodeTable) Symbols() []byte {
	symbols := make([]byte, 0, table.size)
	for i := range table.codes {
		if table.codes[i].length > 0 {
			symbols = append(symbols, byte(i))
		}
	}
	return symbols
}

// MinCodeLength returns the length of the shortest code in the table, or 0 if
// the table is empty.
func (table *CodeTable) MinCodeLength() int {
	shortest := 0
	for i := range table.codes {
		length := table.codes[i].length
		if length > 0 && (shortest == 0 || length < shortest) {
			shortest = length
		}
	}
	return shortest
}

// WeightedLength returns the number of bits needed to encode an input with the
// given frequencies using this table. Symbols without a code are ignored.
func (table *CodeTable) WeightedLength(frequencies *FrequencyTable) uint64 {
	total := uint64(0)
	for _, symbol := range frequencies.Symbols() {
		total += frequencies.Count(symbol) * uint64(table.codes[symbol].length)
	}
	return total
}

// Validate checks that the table is non-empty, that every code is within
// [1, MaxCodeLength] bits long, and that no code is a prefix of another.
func (table *CodeTable) Validate() error {
	if table.size == 0 {
		return squeeze.ErrMalformedStream.WithMessage("code table is empty")
	}

	symbols := table.Symbols()
	for i, symbol := range symbols {
		code := table.codes[symbol]
		if code.length > MaxCodeLength {
			return squeeze.ErrMalformedStream.WithMessage(
				fmt.Sprintf(
					"code for symbol %#02x is %d bits long, max is %d",
					symbol,
					code.length,
					MaxCodeLength,
				),
			)
		}
		for _, otherSymbol := range symbols[i+1:] {
			other := table.codes[otherSymbol]
			if code.HasPrefix(other) || other.HasPrefix(code) {
				return squeeze.ErrMalformedStream.WithMessage(
					fmt.Sprintf(
						"codes for symbols %#02x (%s) and %#02x (%s) aren't prefix-free",
						symbol,
						code,
						otherSymbol,
						other,
					),
				)
			}
		}
	}
	return nil
}

// SingleSymbolCode is the code assigned when the tree has only one leaf. A
// zero-length code can't be written to the stream, so it gets one bit.
var SingleSymbolCode = NewCode([]bool{false})

type traversalStep struct {
	node  int
	depth int
	bit   bool
}

// GenerateCodes assigns every leaf in the tree the path from the root to it,
// with a left edge being a 0 bit and a right edge a 1 bit.
func GenerateCodes(tree *Tree) *CodeTable {
	table := &CodeTable{}
	root := tree.Node(tree.Root())
	if root.IsLeaf() {
		table.Set(root.Symbol, SingleSymbolCode)
		return table
	}

	// path holds the edges from the root to the node being visited. Nodes are
	// visited in preorder, so by the time a node at depth D is popped, bits
	// [0, D-1) already hold the path to its parent.
	path := bitmap.New(MaxCodeLength)
	stack := []traversalStep{{node: tree.Root()}}

	for len(stack) > 0 {
		step := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if step.depth > 0 {
			path.Set(step.depth-1, step.bit)
		}

		node := tree.Node(step.node)
		if node.IsLeaf() {
			bits := make([]bool, step.depth)
			for i := range bits {
				bits[i] = path.Get(i)
			}
			table.Set(node.Symbol, NewCode(bits))
			continue
		}

		// Push right first so the left subtree is visited first.
		stack = append(
			stack,
			traversalStep{node: node.Right, depth: step.depth + 1, bit: true},
			traversalStep{node: node.Left, depth: step.depth + 1, bit: false},
		)
	}
	return table
}
