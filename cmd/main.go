package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func newApp() *cli.App {
	methodFlag := &cli.StringFlag{
		Name:    "method",
		Aliases: []string{"m"},
		Usage:   "compression method to use",
		Value:   "huffman",
		EnvVars: []string{"SQUEEZE_METHOD"},
	}
	verboseFlag := &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "report file sizes when done",
		EnvVars: []string{"SQUEEZE_VERBOSE"},
	}

	return &cli.App{
		Name:  "squeeze",
		Usage: "Compress and decompress files",
		Flags: []cli.Flag{methodFlag, verboseFlag},
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Aliases:   []string{"c"},
				Usage:     "Compress a file into a new file",
				Action:    compressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
			},
			{
				Name:      "decompress",
				Aliases:   []string{"d"},
				Usage:     "Restore a compressed file into a new file",
				Action:    decompressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
			},
			{
				Name:   "table",
				Usage:  "Print the code table for a file as CSV",
				Action: printTable,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "compressed",
						Usage: "read the table from the header of a compressed file",
					},
				},
				ArgsUsage: "FILE",
			},
		},
	}
}
