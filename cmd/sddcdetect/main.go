// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sddc-go/sddc/internal/cabi"
)

func main() {
	flags := flag.NewFlagSet("sddcdetect", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), strings.TrimSpace(`
Usage: sddcdetect [FLAGS]

sddcdetect prints the list of front-end models this driver build
supports, including the Dummy loopback model used for testing without
attached hardware.

Flags:
`,
		))
		flags.PrintDefaults()
	}

	_ = flags.Parse(os.Args[1:])
	if flags.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "too many arguments provided")
		flags.Usage()
		os.Exit(1)
	}

	for _, info := range cabi.Enumerate() {
		fmt.Printf("%v,%v\n", info.Product, info.SerialNumber)
	}
}
