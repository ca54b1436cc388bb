// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parse

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sddc-go/sddc/internal/dsp"
	"github.com/sddc-go/sddc/internal/frontend"
)

// FlagSet is the subset of flag.FlagSet needed to register a flag.Value
// directly.
type FlagSet interface {
	Var(value flag.Value, name string, usage string)
}

const DecFlagHelp = `1|2|4|8|16|32|64: Decimation factor
Sets the decimation factor applied after tuning and filtering. This
reduces the effective I/Q output sample rate by the same factor.`

// ParseDecFlag validates a decimation factor and converts it to the
// decimation index (log2) used by the DSP parameter block.
func ParseDecFlag(val uint) (uint8, error) {
	for d := 0; d < dsp.NDecIdx; d++ {
		if val == uint(1)<<uint(d) {
			return uint8(d), nil
		}
	}
	return 0, fmt.Errorf("invalid decimation factor; got %d, want a power of 2 up to %d", val, uint(1)<<uint(dsp.NDecIdx-1))
}

const FsFlagHelp = `FsHz: ADC Sample Rate
ADC sample rate specified in Hz. Can be specified with k, K, m, M, g, or
G suffix to indicate the value is in kHz, MHz, or GHz respectively
(e.g. 64M is equal to 64000000). Valid range and granularity depend on
the front-end model.`

func ParseFsFlag(arg string) (float64, error) {
	return ParseADCSampleRate(arg)
}

const WarmFlagHelp = `seconds: Warmup Time
Run the receiver for the specified number of seconds to warm up and
stabilize performance before capture. During the warmup period, samples
are discarded. The maximum value allowed is 60 seconds.`

func ParseWarmFlag(val uint) (time.Duration, error) {
	const maxWarm = 60 * time.Second
	warm := time.Duration(val) * time.Second
	if warm > maxWarm {
		return 0, fmt.Errorf("invalid warmup duration; got %v, want <= %v", warm, maxWarm)
	}
	return warm, nil
}

const ModelFlagHelp = `hf103|bbrf103|rx888|rx888r2|rx888r3|rx999|lucy|dummy: Front-End Model
Select which front-end adapter to instantiate. "dummy" requires no
hardware and is intended for testing.`

func ParseModelFlag(arg string) (frontend.Model, error) {
	switch strings.ToLower(arg) {
	case "hf103":
		return frontend.HF103, nil
	case "bbrf103":
		return frontend.BBRF103, nil
	case "rx888":
		return frontend.RX888, nil
	case "rx888r2":
		return frontend.RX888R2, nil
	case "rx888r3":
		return frontend.RX888R3, nil
	case "rx999":
		return frontend.RX999, nil
	case "lucy":
		return frontend.Lucy, nil
	case "dummy":
		return frontend.Dummy, nil
	default:
		return 0, fmt.Errorf("invalid front-end model; got %s, want hf103|bbrf103|rx888|rx888r2|rx888r3|rx999|lucy|dummy", arg)
	}
}

const ModeFlagHelp = `hf|vhf: RF Mode
Select the active signal path. Not every model supports a VHF path.`

func ParseModeFlag(arg string) (frontend.Mode, error) {
	switch strings.ToLower(arg) {
	case "hf":
		return frontend.ModeHF, nil
	case "vhf":
		return frontend.ModeVHF, nil
	default:
		return 0, fmt.Errorf("invalid RF mode; got %s, want hf|vhf", arg)
	}
}

const LEDFlagHelp = `yellow|red|blue: Status LED
Select which front-end status LED a bool flag applies to.`

func ParseLEDFlag(arg string) (frontend.LedSelector, error) {
	switch strings.ToLower(arg) {
	case "yellow":
		return frontend.Yellow, nil
	case "red":
		return frontend.Red, nil
	case "blue":
		return frontend.Blue, nil
	default:
		return 0, fmt.Errorf("invalid LED selector; got %s, want yellow|red|blue", arg)
	}
}

const AttnFlagHelp = `step: RF Attenuation Step
Select an RF-attenuation step index. Valid range depends on the
front-end model and active mode.`

const GainFlagHelp = `step: IF Gain Step
Select an IF-gain step index. Valid range depends on the front-end
model and active mode.`

// ParseStepFlag validates a non-negative step index argument shared by
// the RF-attenuation and IF-gain flags; the upper bound is validated
// later against the active front end's step table.
func ParseStepFlag(arg string) (int, error) {
	val, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid step index; %v", err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid step index; got %d, want >= 0", val)
	}
	return val, nil
}

const DeviceIndexFlagHelp = `index: Device Index
Select which enumerated device to open by index, as returned by device
discovery. Defaults to 0, the first device found.`

func ParseDeviceIndexFlag(val int) (int, error) {
	if val < 0 {
		return 0, fmt.Errorf("invalid device index; got %d, want >= 0", val)
	}
	return val, nil
}
