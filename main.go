// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/beevik/gochip8/cpu"
	"github.com/beevik/gochip8/host"
	"github.com/retroenv/retrogolib/log"
)

var (
	rom   string
	ips   int
	debug bool
	quiet bool
)

func init() {
	flag.StringVar(&rom, "rom", "", "load a program image before starting")
	flag.IntVar(&ips, "ips", cpu.DefaultInstructionsPerSecond, "instructions executed per second")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.BoolVar(&quiet, "q", false, "log errors only")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: gochip8 [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	logger := createLogger(debug, quiet)

	h := host.New(logger)
	h.SetIPS(ips)

	if rom != "" {
		if err := h.Load(rom); err != nil {
			logger.Fatal(err.Error())
		}
	}

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			logger.Fatal(err.Error())
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	// Run commands interactively.
	h.RunCommands(os.Stdin, os.Stdout, true)
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}
