package testing

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/dargueta/squeeze/utilities/compression"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// SampleText is a paragraph of English prose, which has the skewed byte
// distribution Huffman coding does well on.
const SampleText = `Go is a statically typed, compiled high-level programming language designed at Google by Robert Griesemer, Rob Pike, and Ken Thompson. It is syntactically similar to C, but also has memory safety, garbage collection, structural typing, and CSP-style concurrency. It is often referred to as Golang to avoid ambiguity and because of its former domain name, golang.org, but its proper name is Go.

There are two major implementations: the original, self-hosting compiler toolchain, initially developed inside Google; and a frontend written in C++, called gofrontend, originally a GCC frontend, providing gccgo, a GCC-based Go compiler; later extended to also support LLVM, providing an LLVM-based Go compiler called gollvm.
`

// WriteFixture writes data to a new file in a temporary directory that's removed
// when the test ends, and returns the file's path.
func WriteFixture(t *testing.T, data []byte) string {
	path := filepath.Join(t.TempDir(), "input.bin")
	err := os.WriteFile(path, data, 0o644)
	require.NoError(t, err, "failed to write fixture")
	return path
}

// MissingPath returns the path of a file that doesn't exist, in a temporary
// directory that's removed when the test ends.
func MissingPath(t *testing.T, name string) string {
	path := filepath.Join(t.TempDir(), name)
	_, err := os.Lstat(path)
	require.True(t, os.IsNotExist(err), "%q shouldn't exist", path)
	return path
}

// ReadFixture returns the contents of the file at path.
func ReadFixture(t *testing.T, path string) []byte {
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read %q", path)
	return data
}

// LoadCompressed takes a compressed stream and returns a stream to access the
// decompressed data.
//
//   - Writes to the stream do not affect `compressed`.
//   - The stream's size is fixed to `expectedSize`, which is checked against the
//     decompressed size.
func LoadCompressed(t *testing.T, compressed []byte, expectedSize int) io.ReadWriteSeeker {
	require.Greater(t, len(compressed), 0, "compressed data is empty")

	data, err := compression.DecompressBytes(compressed)
	require.NoError(t, err)
	require.Equal(t, expectedSize, len(data), "decompressed data is wrong size")
	return bytesextra.NewReadWriteSeeker(data)
}

// SkewedBytes returns size pseudorandom bytes in which `dominant` makes up at
// least `share` of the data. The output only depends on the arguments.
func SkewedBytes(size int, dominant byte, share float64, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	data := make([]byte, size)
	dominantCount := int(float64(size)*share + 0.5)
	for i := range data {
		if i < dominantCount {
			data[i] = dominant
		} else {
			data[i] = byte(rng.Intn(256))
		}
	}
	rng.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })
	return data
}

// RandomBytes returns size pseudorandom bytes that only depend on the seed.
func RandomBytes(size int, seed int64) []byte {
	data := make([]byte, size)
	rand.New(rand.NewSource(seed)).Read(data)
	return data
}
