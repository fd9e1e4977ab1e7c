// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"strconv"
	"strings"
)

var errExprParse = errors.New("expression syntax error")

type resolver interface {
	resolveIdentifier(s string) (int64, error)
}

// An exprParser evaluates the operands typed at the command prompt: sums
// and differences of numbers, character literals and register names.
//
// Numbers are decimal unless prefixed with $ or 0x (hexadecimal), 0b
// (binary) or 0d (decimal). In hex mode unprefixed numbers are
// hexadecimal.
type exprParser struct {
	hexMode bool
}

func newExprParser() *exprParser {
	return &exprParser{}
}

func (p *exprParser) Parse(expr string, r resolver) (int64, error) {
	t := tstring(expr).consumeWhitespace()
	if len(t) == 0 {
		return 0, errExprParse
	}

	var sum int64
	sign := int64(1)
	if t[0] == '-' || t[0] == '+' {
		if t[0] == '-' {
			sign = -1
		}
		t = t.consume(1)
	}

	for {
		v, remain, err := p.parseTerm(t.consumeWhitespace(), r)
		if err != nil {
			return 0, err
		}
		sum += sign * v

		t = remain.consumeWhitespace()
		if len(t) == 0 {
			return sum, nil
		}
		switch t[0] {
		case '+':
			sign = 1
		case '-':
			sign = -1
		default:
			return 0, errExprParse
		}
		t = t.consume(1)
	}
}

func (p *exprParser) parseTerm(t tstring, r resolver) (v int64, remain tstring, err error) {
	if len(t) == 0 {
		return 0, t, errExprParse
	}

	switch c := t[0]; {
	case c == '\'':
		if len(t) < 3 || t[2] != '\'' {
			return 0, t, errExprParse
		}
		return int64(t[1]), t.consume(3), nil

	case c == '$' || decimal(c):
		return p.parseNumber(t)

	case identifier(c):
		id, remain := t.consumeWhile(identifier)
		if p.hexMode && strings.Trim(string(id), "0123456789abcdefABCDEF") == "" {
			return p.parseNumber(t)
		}
		v, err := r.resolveIdentifier(string(id))
		return v, remain, err
	}
	return 0, t, errExprParse
}

func (p *exprParser) parseNumber(t tstring) (v int64, remain tstring, err error) {
	base, fn, num := 10, decimal, t
	if p.hexMode {
		base, fn = 16, hexadecimal
	}

	switch {
	case num[0] == '$':
		base, fn, num = 16, hexadecimal, num.consume(1)
	case len(num) > 2 && num[0] == '0' && (num[1] == 'x' || num[1] == 'b' || num[1] == 'd'):
		switch num[1] {
		case 'x':
			base, fn = 16, hexadecimal
		case 'b':
			base, fn = 2, binary
		case 'd':
			base, fn = 10, decimal
		}
		num = num.consume(2)
	}

	num, remain = num.consumeWhile(fn)
	if num == "" {
		return 0, t, errExprParse
	}

	v, err = strconv.ParseInt(string(num), base, 64)
	if err != nil {
		return 0, t, errExprParse
	}
	return v, remain, nil
}

type tstring string

func (t tstring) consume(n int) tstring {
	return t[n:]
}

func (t tstring) consumeWhitespace() tstring {
	return t.consume(t.scanWhile(whitespace))
}

func (t tstring) scanWhile(fn func(c byte) bool) int {
	i := 0
	for ; i < len(t) && fn(t[i]); i++ {
	}
	return i
}

func (t tstring) consumeWhile(fn func(c byte) bool) (consumed, remain tstring) {
	i := t.scanWhile(fn)
	return t[:i], t[i:]
}

func whitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

func decimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexadecimal(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func binary(c byte) bool {
	return c == '0' || c == '1'
}

func identifier(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '.'
}
