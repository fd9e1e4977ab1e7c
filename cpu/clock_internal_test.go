// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func framesDue(elapsed time.Duration) int64 {
	return int64(elapsed) * TimerFrequency / int64(time.Second)
}

func TestFrameTime(t *testing.T) {
	assert.Equal(t, time.Duration(0), frameTime(0))
	assert.Equal(t, 16666667*time.Nanosecond, frameTime(1))
	assert.Equal(t, time.Second, frameTime(TimerFrequency))

	// Sleeping until frameTime(n) always makes exactly frame n due, so the
	// run loop never wakes early and spins.
	for _, n := range []int64{1, 2, 3, 59, 60, 61, 1000, 216000, 5184000} {
		assert.Equal(t, n, framesDue(frameTime(n)), n)
		assert.Equal(t, n-1, framesDue(frameTime(n)-1), n)
	}
}
