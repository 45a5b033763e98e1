// Copyright 2026 The jsii-kernel Authors
// SPDX-License-Identifier: Apache-2.0

// Command jsii-kernel runs the kernel-side object store event loop
// (spec.md §5) over stdin/stdout, the transport a cross-runtime child
// process is spawned with.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/yuth/jsii-kernel/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "jsii-kernel: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("jsii-kernel", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to the kernel config file (overrides JSII_KERNEL_CONFIG)")
	showVersion := flags.Bool("version", false, "print version and exit")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Println(version.Info())
		return nil
	}

	return Serve(*configPath)
}
