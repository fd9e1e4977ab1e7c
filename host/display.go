// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"io"
	"strings"

	"github.com/beevik/gochip8/cpu"
)

// renderDisplay writes the framebuffer as text, one line per row.
func renderDisplay(w io.Writer, s *cpu.State, on, off string) {
	var b strings.Builder
	b.Grow(cpu.DisplayHeight * (cpu.DisplayWidth*max(len(on), len(off)) + 1))
	for y := 0; y < cpu.DisplayHeight; y++ {
		for x := 0; x < cpu.DisplayWidth; x++ {
			if s.Pixel(x, y) {
				b.WriteString(on)
			} else {
				b.WriteString(off)
			}
		}
		b.WriteByte('\n')
	}
	io.WriteString(w, b.String())
}
