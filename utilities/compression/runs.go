package compression

import (
	"bufio"
	"io"
)

// ByteRun represents a single run of a particular byte value.
type ByteRun struct {
	// Byte is the byte value for this run.
	Byte byte
	// RunLength gives the number of times the byte occurs in the run (not the
	// number of times it's repeated).
	//
	// A valid run will always have this be 1 or greater. A value of 0 indicates
	// either EOF was encountered, or an error occurred.
	RunLength uint64
}

// InvalidRun is returned by [RunGrouper.NextRun] when no run could be read.
var InvalidRun = ByteRun{Byte: 0, RunLength: 0}

// RunGrouper splits a byte stream into maximal runs of identical bytes.
type RunGrouper struct {
	rd *bufio.Reader
}

func NewRunGrouper(rd io.Reader) RunGrouper {
	return RunGrouper{rd: bufio.NewReader(rd)}
}

// NextRun returns a [ByteRun] for the next byte or run of byte values in the
// stream. At the end of the stream it returns [InvalidRun] and io.EOF.
func (grouper RunGrouper) NextRun() (ByteRun, error) {
	firstByte, err := grouper.rd.ReadByte()
	// Bail if any error occurred, including EOF.
	if err != nil {
		return InvalidRun, err
	}

	run := ByteRun{Byte: firstByte, RunLength: 1}
	for {
		currentByte, err := grouper.rd.ReadByte()
		if err == io.EOF {
			// The run ends at the end of the stream. The caller gets EOF on the
			// next call.
			return run, nil
		} else if err != nil {
			return InvalidRun, err
		}

		if currentByte != firstByte {
			// Hit a different byte, back up and return.
			grouper.rd.UnreadByte()
			return run, nil
		}
		run.RunLength++
	}
}
