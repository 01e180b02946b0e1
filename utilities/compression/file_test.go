package compression_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dargueta/squeeze"
	sqtest "github.com/dargueta/squeeze/testing"
	c "github.com/dargueta/squeeze/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMissing(t *testing.T, path string) {
	_, err := os.Lstat(path)
	assert.Truef(t, os.IsNotExist(err), "%q shouldn't exist", path)
}

func TestCompressFile__RoundTrip(t *testing.T) {
	original := []byte(sqtest.SampleText)
	inputPath := sqtest.WriteFixture(t, original)
	compressedPath := sqtest.MissingPath(t, "compressed")
	restoredPath := sqtest.MissingPath(t, "restored.txt")

	require.NoError(t, c.CompressFile(inputPath, compressedPath))
	compressed := sqtest.ReadFixture(t, compressedPath)
	assert.NotEmpty(t, compressed)

	require.NoError(t, c.DecompressFile(compressedPath, restoredPath))
	assert.Equal(t, original, sqtest.ReadFixture(t, restoredPath))

	info, err := os.Stat(restoredPath)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
}

func TestCompressFile__CodecInterface(t *testing.T) {
	var codec squeeze.FileCodec = c.Huffman
	original := []byte("aaaa")
	inputPath := sqtest.WriteFixture(t, original)
	compressedPath := sqtest.MissingPath(t, "compressed")
	restoredPath := sqtest.MissingPath(t, "restored")

	require.NoError(t, codec.CompressFile(inputPath, compressedPath))
	require.NoError(t, codec.DecompressFile(compressedPath, restoredPath))
	assert.Equal(t, original, sqtest.ReadFixture(t, restoredPath))
}

func TestCompressFile__OutputExists(t *testing.T) {
	inputPath := sqtest.WriteFixture(t, []byte("abab"))
	existing := []byte("do not touch")
	outputPath := filepath.Join(t.TempDir(), "existing")
	require.NoError(t, os.WriteFile(outputPath, existing, 0o644))

	err := c.CompressFile(inputPath, outputPath)
	assert.ErrorIs(t, err, squeeze.ErrExists)
	assert.ErrorIs(t, err, squeeze.ErrIO)
	assert.Equal(t, existing, sqtest.ReadFixture(t, outputPath), "existing file was modified")

	err = c.DecompressFile(inputPath, outputPath)
	assert.ErrorIs(t, err, squeeze.ErrExists)
	assert.Equal(t, existing, sqtest.ReadFixture(t, outputPath), "existing file was modified")
}

func TestCompressFile__MissingInput(t *testing.T) {
	inputPath := sqtest.MissingPath(t, "nope")
	outputPath := sqtest.MissingPath(t, "out")

	err := c.CompressFile(inputPath, outputPath)
	assert.ErrorIs(t, err, squeeze.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assertMissing(t, outputPath)
}

func TestCompressFile__InputIsDirectory(t *testing.T) {
	outputPath := sqtest.MissingPath(t, "out")
	err := c.CompressFile(t.TempDir(), outputPath)
	assert.ErrorIs(t, err, squeeze.ErrIO)
	assertMissing(t, outputPath)
}

func TestCompressFile__EmptyInput(t *testing.T) {
	inputPath := sqtest.WriteFixture(t, []byte{})
	outputPath := sqtest.MissingPath(t, "out")

	err := c.CompressFile(inputPath, outputPath)
	assert.ErrorIs(t, err, squeeze.ErrEmptyInput)
	assertMissing(t, outputPath)
}

func TestCompressFile__OutputDirectoryMissing(t *testing.T) {
	inputPath := sqtest.WriteFixture(t, []byte("abab"))
	outputPath := filepath.Join(t.TempDir(), "no", "such", "dir", "out")

	err := c.CompressFile(inputPath, outputPath)
	assert.ErrorIs(t, err, squeeze.ErrIO)
	assert.NotErrorIs(t, err, squeeze.ErrExists)
}

func TestDecompressFile__Malformed(t *testing.T) {
	compressed, err := c.CompressBytes([]byte(sqtest.SampleText))
	require.NoError(t, err)

	inputPath := sqtest.WriteFixture(t, compressed[:len(compressed)/2])
	outputPath := sqtest.MissingPath(t, "restored")

	err = c.DecompressFile(inputPath, outputPath)
	assert.ErrorIs(t, err, squeeze.ErrMalformedStream)
	assertMissing(t, outputPath)
}

func TestDecompressFile__NotCompressed(t *testing.T) {
	// Plain text starts with a huge pair count.
	inputPath := sqtest.WriteFixture(t, []byte(sqtest.SampleText))
	outputPath := sqtest.MissingPath(t, "restored")

	err := c.DecompressFile(inputPath, outputPath)
	assert.ErrorIs(t, err, squeeze.ErrMalformedStream)
	assertMissing(t, outputPath)
}
