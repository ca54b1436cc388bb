// Copyright 2021 Mark Siner. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package sddc is the top-level package of the sddc-go module, a host-side
driver for a family of wideband direct-sampling SDR front-ends. See
internal/stream for the stream controller, internal/cabi for the
client-facing C ABI shape, and internal/soapyshape for the SDR plugin
ABI shape.
*/
package sddc
