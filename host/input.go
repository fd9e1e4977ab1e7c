// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/beevik/term"
)

// An inputPump reads bytes from a reader on its own goroutine, so the host
// can either block on a command line or poll for keys while the CPU runs.
type inputPump struct {
	c    chan byte
	err  error // valid once c is closed
	done chan struct{}
	once sync.Once
}

func startInput(r io.Reader) *inputPump {
	p := &inputPump{
		c:    make(chan byte, 64),
		done: make(chan struct{}),
	}
	go p.pump(bufio.NewReader(r))
	return p
}

func (p *inputPump) pump(r *bufio.Reader) {
	defer close(p.c)
	for {
		b, err := r.ReadByte()
		if err != nil {
			p.err = err
			return
		}
		select {
		case p.c <- b:
		case <-p.done:
			p.err = io.EOF
			return
		}
	}
}

// stop tells the pump goroutine to exit once its next read returns. Unread
// input is discarded.
func (p *inputPump) stop() {
	p.once.Do(func() { close(p.done) })
}

// readLine blocks until a full line is available. The final line of the
// input need not be terminated by a newline.
func (p *inputPump) readLine() (string, error) {
	var b strings.Builder
	for c := range p.c {
		if c == '\n' {
			return strings.TrimSuffix(b.String(), "\r"), nil
		}
		b.WriteByte(c)
	}
	if b.Len() > 0 {
		return b.String(), nil
	}
	return "", p.err
}

// poll returns the next pending byte without blocking. ok is false when
// nothing is pending.
func (p *inputPump) poll() (b byte, ok bool, err error) {
	select {
	case b, open := <-p.c:
		if !open {
			return 0, false, p.err
		}
		return b, true, nil
	default:
		return 0, false, nil
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
