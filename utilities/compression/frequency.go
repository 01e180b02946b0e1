package compression

import (
	"errors"
	"io"

	"github.com/dargueta/squeeze"
)

// FrequencyTable maps each byte value to the number of times it occurs in an
// input. The zero value is an empty table ready to use.
type FrequencyTable struct {
	counts   [256]uint64
	distinct int
	total    uint64
}

// Add records n more occurrences of symbol.
func (table *FrequencyTable) Add(symbol byte, n uint64) {
	if n == 0 {
		return
	}
	if table.counts[symbol] == 0 {
		table.distinct++
	}
	table.counts[symbol] += n
	table.total += n
}

// Count returns the number of occurrences of symbol.
func (table *FrequencyTable) Count(symbol byte) uint64 {
	return table.counts[symbol]
}

// Distinct returns the number of distinct symbols with a nonzero count.
func (table *FrequencyTable) Distinct() int {
	return table.distinct
}

// Total returns the sum of all counts, i.e. the length of the input.
func (table *FrequencyTable) Total() uint64 {
	return table.total
}

// Symbols returns the symbols with nonzero counts in ascending order.
func (table *FrequencyTable) Symbols() []byte {
	symbols := make([]byte, 0, table.distinct)
	for i, count := range table.counts {
		if count > 0 {
			symbols = append(symbols, byte(i))
		}
	}
	return symbols
}

// CountFrequencies reads input until EOF and returns the number of times each
// byte value occurs in it.
//
// The input is left at EOF. Callers that need to read the data again must seek
// back to the beginning themselves.
func CountFrequencies(input io.Reader) (*FrequencyTable, error) {
	table := &FrequencyTable{}
	grouper := NewRunGrouper(input)

	for {
		run, err := grouper.NextRun()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return table, nil
			}
			return nil, squeeze.ErrIO.Wrap(err)
		}
		table.Add(run.Byte, run.RunLength)
	}
}
