// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type mapResolver map[string]int64

func (m mapResolver) resolveIdentifier(s string) (int64, error) {
	if v, ok := m[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("identifier '%s' not found", s)
}

func TestExprParser(t *testing.T) {
	r := mapResolver{"pc": 0x200, "v3": 7}

	tests := []struct {
		expr    string
		hexMode bool
		want    int64
	}{
		{"10", false, 10},
		{"$1f", false, 0x1f},
		{"0x1F", false, 0x1f},
		{"0b101", false, 5},
		{"0d10", false, 10},
		{"'A'", false, 65},
		{"$200 + 2", false, 0x202},
		{"-1", false, -1},
		{"5 - 7", false, -2},
		{"pc+v3", false, 0x207},
		{"10", true, 0x10},
		{"ab", true, 0xab},
		{"0d10", true, 10},
		{"pc - 1", true, 0x1ff},
	}

	for _, tt := range tests {
		p := newExprParser()
		p.hexMode = tt.hexMode
		v, err := p.Parse(tt.expr, r)
		assert.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, v, tt.expr)
	}
}

func TestExprParserErrors(t *testing.T) {
	r := mapResolver{}
	p := newExprParser()

	for _, expr := range []string{"", "$", "1 *", "'A", "1f", "0b2", "+"} {
		_, err := p.Parse(expr, r)
		assert.Error(t, err, expr)
	}

	_, err := p.Parse("missing", r)
	assert.Error(t, err)
}
