// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/ezrec/wbpic/emulator"
	"github.com/ezrec/wbpic/script"
)

func main() {
	var input string
	var output string
	var trace string
	var verbose bool

	flag.StringVar(&input, "s", "-", "Testbench script (.star)")
	flag.StringVar(&output, "o", "-", "Script output")
	flag.StringVar(&trace, "t", "", "Per-tick trace output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	var src io.Reader
	filename := input
	if input == "-" {
		src = os.Stdin
		filename = "<stdin>"
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		src = inf
	}

	var out io.Writer = os.Stdout
	if output != "-" {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		out = ouf
	}

	switch trace {
	case "":
	case "-":
		emu.Trace = os.Stderr
	default:
		tf, err := os.Create(trace)
		if err != nil {
			log.Fatalf("%v: %v", trace, err)
		}
		defer tf.Close()
		emu.Trace = tf
	}

	emu.Reset()

	err := script.Run(emu, filename, src, out)
	if err != nil {
		log.Fatal(err)
	}
}
