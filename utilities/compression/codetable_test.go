package compression_test

import (
	"testing"

	"github.com/dargueta/squeeze"
	c "github.com/dargueta/squeeze/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseCode(t *testing.T, text string) c.Code {
	code, err := c.ParseCode(text)
	require.NoError(t, err)
	return code
}

func codesFor(t *testing.T, counts map[byte]uint64) (*c.CodeTable, *c.FrequencyTable) {
	frequencies := frequenciesFrom(counts)
	tree, err := c.BuildTree(frequencies)
	require.NoError(t, err)
	return c.GenerateCodes(tree), frequencies
}

func assertPrefixFree(t *testing.T, table *c.CodeTable) {
	symbols := table.Symbols()
	for i, a := range symbols {
		codeA, _ := table.Lookup(a)
		for j, b := range symbols {
			if i == j {
				continue
			}
			codeB, _ := table.Lookup(b)
			assert.Falsef(
				t,
				codeB.HasPrefix(codeA),
				"code %s for %#02x is a prefix of %s for %#02x",
				codeA,
				a,
				codeB,
				b,
			)
		}
	}
	assert.NoError(t, table.Validate())
}

func TestCode__Basic(t *testing.T) {
	code := mustParseCode(t, "0110")
	assert.Equal(t, 4, code.Len())
	assert.False(t, code.Bit(0))
	assert.True(t, code.Bit(1))
	assert.True(t, code.Bit(2))
	assert.False(t, code.Bit(3))
	assert.Equal(t, "0110", code.String())

	assert.True(t, code.HasPrefix(mustParseCode(t, "01")))
	assert.True(t, code.HasPrefix(code))
	assert.False(t, code.HasPrefix(mustParseCode(t, "1")))
	assert.False(t, code.HasPrefix(mustParseCode(t, "01101")))
	assert.True(t, code.Equal(c.NewCode([]bool{false, true, true, false})))
	assert.False(t, code.Equal(mustParseCode(t, "011")))
}

func TestParseCode__InvalidCharacter(t *testing.T) {
	_, err := c.ParseCode("01x")
	assert.ErrorIs(t, err, squeeze.ErrInvalidArgument)
}

func TestCodeTable__SetAndRemove(t *testing.T) {
	table := c.CodeTable{}
	table.Set('a', mustParseCode(t, "0"))
	table.Set('b', mustParseCode(t, "1"))
	table.Set('a', mustParseCode(t, "00"))
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 1, table.MinCodeLength())

	table.Set('b', c.Code{})
	assert.Equal(t, 1, table.Len())
	_, ok := table.Lookup('b')
	assert.False(t, ok)
	assert.Equal(t, []byte{'a'}, table.Symbols())
	assert.Equal(t, 2, table.MinCodeLength())
}

func TestCodeTable__ValidateRejectsPrefixes(t *testing.T) {
	table := c.CodeTable{}
	table.Set('a', mustParseCode(t, "10"))
	table.Set('b', mustParseCode(t, "101"))
	assert.ErrorIs(t, table.Validate(), squeeze.ErrMalformedStream)

	table.Set('b', mustParseCode(t, "10"))
	assert.ErrorIs(t, table.Validate(), squeeze.ErrMalformedStream, "duplicate codes accepted")

	table.Set('b', mustParseCode(t, "11"))
	assert.NoError(t, table.Validate())

	assert.ErrorIs(t, (&c.CodeTable{}).Validate(), squeeze.ErrMalformedStream)
}

func TestGenerateCodes__TwoSymbolsGetOneBit(t *testing.T) {
	table, _ := codesFor(t, map[byte]uint64{'a': 2, 'b': 2})
	require.Equal(t, 2, table.Len())

	codeA, ok := table.Lookup('a')
	require.True(t, ok)
	codeB, ok := table.Lookup('b')
	require.True(t, ok)
	assert.Equal(t, 1, codeA.Len())
	assert.Equal(t, 1, codeB.Len())
	assert.NotEqual(t, codeA.String(), codeB.String())
}

func TestGenerateCodes__SingleSymbol(t *testing.T) {
	table, _ := codesFor(t, map[byte]uint64{'a': 4})
	require.Equal(t, 1, table.Len())
	code, ok := table.Lookup('a')
	require.True(t, ok)
	assert.Equal(t, "0", code.String())
}

func TestGenerateCodes__NulGetsACode(t *testing.T) {
	table, _ := codesFor(t, map[byte]uint64{0: 5, 'x': 1, 'y': 1, 'z': 2})
	assert.Equal(t, 4, table.Len())
	_, ok := table.Lookup(0)
	assert.True(t, ok, "NUL byte lost its code")
	assertPrefixFree(t, table)
}

func TestGenerateCodes__Optimal(t *testing.T) {
	tests := []struct {
		Name   string
		Counts map[byte]uint64
	}{
		{"classic", map[byte]uint64{'a': 45, 'b': 13, 'c': 12, 'd': 16, 'e': 9, 'f': 5}},
		{"all equal", map[byte]uint64{1: 7, 2: 7, 3: 7, 4: 7, 5: 7, 6: 7, 7: 7, 8: 7}},
		{"skewed", map[byte]uint64{'x': 1000, 'y': 1, 'z': 1, 0: 1}},
		{"three", map[byte]uint64{'a': 1, 'b': 1, 'c': 2}},
	}

	for _, test := range tests {
		test := test
		t.Run(
			test.Name,
			func(t *testing.T) {
				table, frequencies := codesFor(t, test.Counts)
				assert.Equal(t, len(test.Counts), table.Len())
				assertPrefixFree(t, table)

				weights := make([]uint64, 0, len(test.Counts))
				for _, count := range test.Counts {
					weights = append(weights, count)
				}
				assert.Equal(t, optimalCost(weights), table.WeightedLength(frequencies))
			},
		)
	}
}

func TestGenerateCodes__ClassicLengths(t *testing.T) {
	// The textbook example: the code lengths are unique even though the codes
	// themselves depend on tie-breaking.
	table, _ := codesFor(
		t, map[byte]uint64{'a': 45, 'b': 13, 'c': 12, 'd': 16, 'e': 9, 'f': 5})
	expected := map[byte]int{'a': 1, 'b': 3, 'c': 3, 'd': 3, 'e': 4, 'f': 4}
	for symbol, length := range expected {
		code, ok := table.Lookup(symbol)
		require.True(t, ok)
		assert.Equalf(t, length, code.Len(), "code length for %q is wrong", symbol)
	}
}

func TestGenerateCodes__DeepTree(t *testing.T) {
	// Fibonacci weights give the most lopsided tree possible: one more level for
	// every symbol.
	counts := map[byte]uint64{}
	a, b := uint64(1), uint64(1)
	for i := 0; i < 80; i++ {
		counts[byte(i)] = a
		a, b = b, a+b
	}

	table, frequencies := codesFor(t, counts)
	assert.Equal(t, 80, table.Len())
	assertPrefixFree(t, table)

	longest := 0
	for _, symbol := range table.Symbols() {
		code, _ := table.Lookup(symbol)
		if code.Len() > longest {
			longest = code.Len()
		}
	}
	assert.Equal(t, 79, longest)

	weights := make([]uint64, 0, len(counts))
	for _, count := range counts {
		weights = append(weights, count)
	}
	assert.Equal(t, optimalCost(weights), table.WeightedLength(frequencies))
}
