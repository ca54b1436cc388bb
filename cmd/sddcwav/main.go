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
	"math"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"

	"github.com/sddc-go/sddc/helpers/parse"
	"github.com/sddc-go/sddc/helpers/wav"
	"github.com/sddc-go/sddc/internal/cabi"
)

func sddcwav() error {
	flags := flag.NewFlagSet("sddcwav", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), strings.TrimSpace(`
Usage: sddcwav [FLAGS] <tuneHz> <outFile>

sddcwav opens a front-end device, tunes it to the given frequency, and
records the decimated I/Q output to a 32-bit floating-point WAV file
until interrupted.

Arguments:
  tuneHz    Tuner RF frequency in Hz (e.g. 14.074M).
  outFile   Path of the WAV file to write.

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

	_ = flags.Parse(os.Args[1:])
	if flags.NArg() != 2 {
		flags.Usage()
		return errors.New("expected exactly 2 arguments: tuneHz and outFile")
	}

	freq, err := parse.ParseTuneFrequency(flags.Arg(0))
	if err != nil {
		return err
	}
	outPath := flags.Arg(1)

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

	outRate := uint32(fs / float64(uint(1)<<(dec+1)))
	head, err := wav.NewHeader(outRate, 2, 4, wav.IEEEFloatingPoint, false, 0)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := binary.Write(f, binary.LittleEndian, head); err != nil {
		return err
	}

	var frames uint32
	buf := make([]byte, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		if _, ok := <-sig; ok {
			log.Println("signal received; stopping capture")
			cancel()
		}
	}()

	h, err := cabi.Open(idx, model, cabi.AttachIQ(func(samples []complex64) {
		for _, v := range samples {
			binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(real(v)))
			binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(imag(v)))
			if _, err := f.Write(buf); err != nil {
				log.Println(err)
				cancel()
				return
			}
		}
		atomic.AddUint32(&frames, uint32(len(samples)))
	}))
	if err != nil {
		return err
	}

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
	log.Printf("tuned to %v Hz, mode=%v, dec=%d, fs=%v Hz, recording to %s\n", freq, mode, dec, fs, outPath)

	if err := cabi.Start(ctx, h, true); err != nil {
		return err
	}
	<-ctx.Done()
	cabi.Stop(h)

	head.Update(atomic.LoadUint32(&frames))
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, head); err != nil {
		return err
	}
	log.Printf("wrote %d frames\n", frames)
	return nil
}

func main() {
	if err := sddcwav(); err != nil {
		log.Fatal(err)
	}
}
