// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/regvm/emulator"
)

// defineList collects repeated -D NAME=VALUE options.
type defineList [][2]string

func (dl *defineList) String() string { return "" }
func (dl *defineList) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || len(name) == 0 || len(value) == 0 {
		return errors.New("expected NAME=VALUE")
	}
	*dl = append(*dl, [2]string{name, value})
	return nil
}

func main() {
	var debug bool
	var ticks int
	var defines defineList

	flag.BoolVar(&debug, "d", false, "Trace every instruction")
	flag.IntVar(&ticks, "n", emulator.TICK_LIMIT, "Instruction limit, 0 for none")
	flag.Var(&defines, "D", "Predefine `NAME=VALUE` for $(...) expressions (can be specified multiple times)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [options] FILE\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		atexit.Exit(2)
	}

	var inf io.Reader
	source := flag.Arg(0)
	if source == "-" {
		inf = os.Stdin
	} else {
		file, err := os.Open(source)
		if err != nil {
			log.Fatalf("%v: %v", source, err)
		}
		atexit.Register(func() { file.Close() })
		inf = file
	}

	emu := emulator.NewEmulator()
	emu.Verbose = debug
	emu.MaxTicks = ticks
	for _, define := range defines {
		emu.Tokenizer.Predefine(define[0], define[1])
	}

	var res emulator.Result
	res.Err = emu.Load(inf)
	if res.Err == nil {
		res.Output, res.Err = emu.Run()
	}

	fmt.Println(res.String())

	if !res.Ok() {
		log.Printf("%v: %v: %v", source, res.Fault(), res.Err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
