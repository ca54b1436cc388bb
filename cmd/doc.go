// Copyright 2021 Mark Siner. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package cmd contains various command-line applications that implement useful
functionality and provide examples of how to use the sddc-go module.
*/
package cmd
