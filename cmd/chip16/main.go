// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/chip16/cpu"
	"github.com/ezrec/chip16/emulator"
	"github.com/ezrec/chip16/internal"
	"github.com/ezrec/chip16/rom"
	"github.com/ezrec/chip16/translate"
)

func main() {
	var compile string
	var romfile string
	var output string
	var save bool
	var limit uint64
	var verbose bool
	var trace bool
	var defines bool
	var lang string
	var cond string

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&romfile, "r", "", ".c16 ROM file to run")
	flag.StringVar(&output, "o", "", ".c16 ROM file to write from the assembled program")
	flag.BoolVar(&save, "s", false, "Save ROM only, do not execute")
	flag.Uint64Var(&limit, "n", 0, "Maximum cycles to run (0 is unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&trace, "t", false, "Trace each instruction to stderr")
	flag.BoolVar(&defines, "d", false, "List assembler predefines and exit")
	flag.StringVar(&lang, "lang", "", "Message language (BCP 47 tag)")
	flag.StringVar(&cond, "cond", "", "Jx/Cx condition mode: nonzero or flags (default: as assembled, else nonzero)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		err := translate.SetLanguage(lang)
		if err != nil {
			log.Fatalf("%v: %v", lang, err)
		}
	}

	var mode cpu.CondMode
	if len(cond) != 0 {
		var err error
		mode, err = cpu.ParseCondMode(cond)
		if err != nil {
			log.Fatalf("-cond: %v", err)
		}
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if defines {
		for key, value := range internal.IterSeq2Sorted(emu.Defines()) {
			fmt.Printf("%v = %v\n", key, value)
		}
		return
	}

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if len(output) != 0 {
			image, err := rom.New(emu.Program.Binary(), cpu.ARENA_ROM)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			ouf, err := os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			_, err = image.WriteTo(ouf)
			if err == nil {
				err = ouf.Close()
			}
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
		}
	}

	if len(romfile) != 0 {
		inf, err := os.Open(romfile)
		if err != nil {
			log.Fatalf("%v: %v", romfile, err)
		}
		emu.Rom, err = rom.Read(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", romfile, err)
		}
	}

	if save {
		return
	}

	if trace {
		emu.Cpu.Trace = func(pc uint16, text string) {
			fmt.Fprintf(os.Stderr, "%04x: %v\n", pc, text)
		}
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if len(cond) != 0 {
		emu.Cpu.Conditions = mode
	}

	err = emu.Run(limit)
	if errors.Is(err, emulator.ErrCycleLimit) {
		log.Printf("%v", err)
		err = nil
	}
	if err != nil {
		log.Fatal(err)
	}

	if verbose {
		log.Printf("%v", emu.Cpu.String())
	}
}
