// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package callback provides channel-based bridges for the stream
// controller's synchronous RealCallback/IQCallback sink callbacks,
// freeing the sink-delivery goroutine quickly to minimize dropped
// blocks, the same role the teacher's callback.StreamChan plays for the
// C-library callback thread.
package callback
