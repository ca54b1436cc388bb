// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"

	"github.com/sddc-go/sddc/helpers/parse"
	"github.com/sddc-go/sddc/helpers/udp"
	"github.com/sddc-go/sddc/internal/cabi"
)

func sddcudp() error {
	flags := flag.NewFlagSet("sddcudp", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), strings.TrimSpace(`
Usage: sddcudp [FLAGS] <tuneHz>

sddcudp opens a front-end device, tunes it to the given frequency, and
streams the decimated I/Q output to the specified UDP target.

Arguments:
  tuneHz
	Tuner RF frequency in Hz. Can be specified with k, K, m, M, g, or G
	suffix to indicate the value is in kHz, MHz, or GHz respectively
	(e.g. 14.074M).

Flags:
`,
		))
		flags.PrintDefaults()
	}

	modelOpt := flags.String("model", "dummy", parse.ModelFlagHelp)
	modeOpt := flags.String("mode", "hf", parse.ModeFlagHelp)
	decOpt := flags.Uint("dec", 1, parse.DecFlagHelp)
	fsOpt := flags.String("fs", "64M", parse.FsFlagHelp)
	idxOpt := flags.Int("idx", 0, parse.DeviceIndexFlagHelp)
	remoteOpt := flags.String("remote", "127.0.0.1:1234", "Target host address or name and UDP port")
	payOpt := flags.Uint("pay", 1400, strings.TrimSpace(`
UDP payload size in bytes. Must be small enough to fit the network MTU
and a multiple of the 8-byte CF32 frame size.`,
	))
	seqOpt := flags.Bool("seq", false, "Insert a 64-bit sequence number at the beginning of each packet")
	bigOpt := flags.Bool("big", false, "Write samples with big-endian byte order")

	_ = flags.Parse(os.Args[1:])
	switch flags.NArg() {
	case 1:
		// good
	case 0:
		flags.Usage()
		return errors.New("missing tune frequency")
	default:
		flags.Usage()
		return errors.New("too many arguments")
	}

	freq, err := parse.ParseTuneFrequency(flags.Arg(0))
	if err != nil {
		return err
	}
	model, err := parse.ParseModelFlag(*modelOpt)
	if err != nil {
		return err
	}
	mode, err := parse.ParseModeFlag(*modeOpt)
	if err != nil {
		return err
	}
	dec, err := parse.ParseDecFlag(*decOpt)
	if err != nil {
		return err
	}
	fs, err := parse.ParseFsFlag(*fsOpt)
	if err != nil {
		return err
	}
	idx, err := parse.ParseDeviceIndexFlag(*idxOpt)
	if err != nil {
		return err
	}

	order := binary.ByteOrder(binary.LittleEndian)
	if *bigOpt {
		order = binary.BigEndian
	}
	write, err := udp.NewIQPacketWriteFn(*payOpt, *seqOpt, order)
	if err != nil {
		return err
	}

	addr, err := net.ResolveUDPAddr("udp", *remoteOpt)
	if err != nil {
		return err
	}
	conn, err := net.DialUDP(addr.Network(), nil, addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("UDP initialized: local=%v remote=%v", conn.LocalAddr(), conn.RemoteAddr())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		if _, ok := <-sig; ok {
			log.Println("signal received; shutting down")
			cancel()
		}
	}()

	h, err := cabi.Open(idx, model, cabi.AttachIQ(func(samples []complex64) {
		if _, err := write(conn, samples); err != nil {
			log.Println(err)
			cancel()
		}
	}))
	if err != nil {
		return err
	}
	defer cabi.Stop(h)

	if err := cabi.SetADCSampleRate(h, fs); err != nil {
		return err
	}
	if err := cabi.SetRFMode(h, mode); err != nil {
		return err
	}
	if err := cabi.SetDecimation(h, dec); err != nil {
		return err
	}
	if err := cabi.SetCenterFrequency(h, freq); err != nil {
		return err
	}
	log.Printf("tuned to %v Hz, mode=%v, dec=%d, fs=%v Hz\n", freq, mode, dec, fs)

	if err := cabi.Start(ctx, h, true); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func main() {
	if err := sddcudp(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
