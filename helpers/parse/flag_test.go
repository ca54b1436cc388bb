// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parse

import (
	"testing"

	"github.com/sddc-go/sddc/internal/frontend"
)

func TestParseDecFlag(t *testing.T) {
	specs := []struct {
		val   uint
		valid bool
		want  uint8
	}{
		{1, true, 0},
		{2, true, 1},
		{4, true, 2},
		{64, true, 6},
		{3, false, 0},
		{256, false, 0},
	}
	for i, spec := range specs {
		got, err := ParseDecFlag(spec.val)
		switch {
		case !spec.valid && err == nil:
			t.Errorf("%d: unexpected success", i)
		case spec.valid && err != nil:
			t.Errorf("%d: unexpected error: %v", i, err)
		case spec.valid && got != spec.want:
			t.Errorf("%d: wrong value: got %v, want %v", i, got, spec.want)
		}
	}
}

func TestParseModelFlag(t *testing.T) {
	specs := []struct {
		arg   string
		valid bool
		want  frontend.Model
	}{
		{"rx888", true, frontend.RX888},
		{"RX888R2", true, frontend.RX888R2},
		{"dummy", true, frontend.Dummy},
		{"nonexistent", false, 0},
	}
	for i, spec := range specs {
		got, err := ParseModelFlag(spec.arg)
		switch {
		case !spec.valid && err == nil:
			t.Errorf("%d: unexpected success", i)
		case spec.valid && err != nil:
			t.Errorf("%d: unexpected error: %v", i, err)
		case spec.valid && got != spec.want:
			t.Errorf("%d: wrong value: got %v, want %v", i, got, spec.want)
		}
	}
}

func TestParseModeFlag(t *testing.T) {
	got, err := ParseModeFlag("vhf")
	if err != nil || got != frontend.ModeVHF {
		t.Errorf("got %v, %v; want ModeVHF, nil", got, err)
	}
	if _, err := ParseModeFlag("uhf"); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestParseLEDFlag(t *testing.T) {
	got, err := ParseLEDFlag("blue")
	if err != nil || got != frontend.Blue {
		t.Errorf("got %v, %v; want Blue, nil", got, err)
	}
	if _, err := ParseLEDFlag("green"); err == nil {
		t.Error("expected error for invalid LED selector")
	}
}

func TestParseStepFlag(t *testing.T) {
	if got, err := ParseStepFlag("5"); err != nil || got != 5 {
		t.Errorf("got %v, %v; want 5, nil", got, err)
	}
	if _, err := ParseStepFlag("-1"); err == nil {
		t.Error("expected error for negative step")
	}
	if _, err := ParseStepFlag("abc"); err == nil {
		t.Error("expected error for non-numeric step")
	}
}

func TestParseDeviceIndexFlag(t *testing.T) {
	if got, err := ParseDeviceIndexFlag(0); err != nil || got != 0 {
		t.Errorf("got %v, %v; want 0, nil", got, err)
	}
	if _, err := ParseDeviceIndexFlag(-1); err == nil {
		t.Error("expected error for negative device index")
	}
}
