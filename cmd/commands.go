package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/dargueta/squeeze"
	"github.com/dargueta/squeeze/utilities/compression"
	"github.com/urfave/cli/v2"
)

var methods = map[squeeze.Method]squeeze.FileCodec{
	squeeze.MethodHuffman: compression.Huffman,
}

func selectMethod(context *cli.Context) (squeeze.FileCodec, error) {
	name := squeeze.Method(context.String("method"))
	codec, ok := methods[name]
	if !ok {
		return nil, squeeze.ErrNotSupported.WithMessage(
			fmt.Sprintf("unknown compression method %q", name))
	}
	return codec, nil
}

func pathArguments(context *cli.Context, count int) ([]string, error) {
	if context.NArg() != count {
		return nil, squeeze.ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"expected %d arguments, got %d; usage: %s %s",
				count,
				context.NArg(),
				context.Command.FullName(),
				context.Command.ArgsUsage,
			),
		)
	}
	return context.Args().Slice(), nil
}

func compressFile(context *cli.Context) error {
	return runFileCodec(context, squeeze.FileCodec.CompressFile, "Compressed")
}

func decompressFile(context *cli.Context) error {
	return runFileCodec(context, squeeze.FileCodec.DecompressFile, "Decompressed")
}

func runFileCodec(
	context *cli.Context,
	operation func(squeeze.FileCodec, string, string) error,
	verb string,
) error {
	paths, err := pathArguments(context, 2)
	if err != nil {
		return err
	}
	codec, err := selectMethod(context)
	if err != nil {
		return err
	}

	if err = operation(codec, paths[0], paths[1]); err != nil {
		return err
	}

	if context.Bool("verbose") {
		logSizes(verb, paths[0], paths[1])
	}
	return nil
}

func logSizes(verb, inputPath, outputPath string) {
	inputInfo, errIn := os.Stat(inputPath)
	outputInfo, errOut := os.Stat(outputPath)
	if errIn != nil || errOut != nil {
		return
	}
	log.Printf(
		"%s `%s` (%d bytes) to `%s` (%d bytes).",
		verb,
		inputPath,
		inputInfo.Size(),
		outputPath,
		outputInfo.Size(),
	)
}

func printTable(context *cli.Context) error {
	paths, err := pathArguments(context, 1)
	if err != nil {
		return err
	}

	file, err := os.Open(paths[0])
	if err != nil {
		return squeeze.ErrIO.Wrap(err)
	}
	defer file.Close()

	var table *compression.CodeTable
	var frequencies *compression.FrequencyTable

	if context.Bool("compressed") {
		header, err := compression.ReadHeader(bufio.NewReader(file))
		if err != nil {
			return err
		}
		table = header.Table
	} else {
		frequencies, err = compression.CountFrequencies(file)
		if err != nil {
			return err
		}
		tree, err := compression.BuildTree(frequencies)
		if err != nil {
			return err
		}
		table = compression.GenerateCodes(tree)
	}

	return compression.WriteTableCSV(context.App.Writer, table, frequencies)
}
