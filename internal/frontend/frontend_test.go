// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frontend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sddc-go/sddc/internal/sddcerr"
)

func TestNewDummyDefaults(t *testing.T) {
	a := NewDummy()
	require.Equal(t, ModeHF, a.BestMode(10e6))
	require.Greater(t, a.GetADCSampleRate(), 0.0)
}

func TestVHFAttenuationRoutesToVHFTable(t *testing.T) {
	a, err := New(RX888)
	require.NoError(t, err)
	require.NoError(t, a.SetMode(ModeVHF))

	hfSteps := a.RFAttnSteps(ModeHF)
	vhfSteps := a.RFAttnSteps(ModeVHF)
	require.NotEqual(t, hfSteps, vhfSteps, "HF and VHF attenuation tables must differ for RX888")

	require.NoError(t, a.SetRFAttn(ModeVHF, vhfSteps-1))
	require.Error(t, a.SetRFAttn(ModeHF, vhfSteps-1), "VHF-only step index must not validate against the HF table")
}

func TestDummyHasNoVHFPath(t *testing.T) {
	a := NewDummy()
	err := a.SetMode(ModeVHF)
	require.Error(t, err)
	require.True(t, errors.Is(err, sddcerr.Of(sddcerr.NotCompatible)))
}

func TestSetADCSampleRateRejectsUnsupportedRate(t *testing.T) {
	a := NewDummy()
	require.Error(t, a.SetADCSampleRate(999))
	require.NoError(t, a.SetADCSampleRate(2e6))
	require.Equal(t, 2e6, a.GetADCSampleRate())
}

func TestGetterSetterParity(t *testing.T) {
	a := NewDummy()
	require.NoError(t, a.SetADCSampleRate(8e6))
	require.Equal(t, 8e6, a.GetADCSampleRate())

	for _, feature := range []string{FeatureDither, FeatureRand, FeaturePGA, FeatureBiasTHF, FeatureBiasTVHF} {
		require.NoError(t, a.SetBoolFeature(feature, true))
		v, err := a.BoolFeature(feature)
		require.NoError(t, err)
		require.True(t, v)
	}
}

func TestSetLEDValidatesSelector(t *testing.T) {
	a := NewDummy()
	require.NoError(t, a.SetLED(Yellow, true))
	require.NoError(t, a.SetLED(Red, false))
	require.NoError(t, a.SetLED(Blue, true))

	err := a.SetLED(LedSelector(99), true)
	require.Error(t, err)
	require.True(t, errors.Is(err, sddcerr.Of(sddcerr.NotAnLed)))
}

func TestSetLOReadbackCarrier(t *testing.T) {
	a := NewDummy()
	got, err := a.SetLO(ModeHF, 7.1e6)
	require.NoError(t, err)
	require.Equal(t, 7.1e6, got)

	back, err := a.ReadbackCarrier(ModeHF)
	require.NoError(t, err)
	require.Equal(t, 7.1e6, back)
}
