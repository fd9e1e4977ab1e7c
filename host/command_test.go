// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"errors"
	"testing"

	"github.com/beevik/cmd"
	"github.com/retroenv/retrogolib/assert"
)

func TestCommandLookup(t *testing.T) {
	tests := []struct {
		line string
		name string
		args []string
	}{
		{"step in 3", "in", []string{"3"}},
		{"si 3", "in", []string{"3"}},
		{"st ove", "over", []string{}},
		{"reg v0 5", "register", []string{"v0", "5"}},
		{". pc $300", "register", []string{"pc", "$300"}},
		{"dba $300 $7f", "add", []string{"$300", "$7f"}},
		{"m $200", "dump", []string{"$200"}},
		{"kp a", "press", []string{"a"}},
		{"t 4", "tick", []string{"4"}},
	}

	for _, tt := range tests {
		c, args, err := cmds.LookupCommand(tt.line)
		assert.NoError(t, err, tt.line)
		assert.Equal(t, tt.name, c.Name, tt.line)
		assert.Equal(t, len(tt.args), len(args), tt.line)
		for i := range tt.args {
			assert.Equal(t, tt.args[i], args[i], tt.line)
		}
	}
}

func TestCommandLookupSubtree(t *testing.T) {
	n, _, err := cmds.Lookup("step")
	assert.NoError(t, err)
	st, ok := n.(*cmd.Tree)
	assert.True(t, ok)
	assert.Equal(t, "step", st.Name)
	assert.Equal(t, 3, len(st.Commands()))

	_, _, err = cmds.LookupCommand("step")
	assert.True(t, errors.Is(err, cmd.ErrNotFound))
}

func TestCommandLookupErrors(t *testing.T) {
	_, _, err := cmds.Lookup("step o")
	assert.True(t, errors.Is(err, cmd.ErrAmbiguous))

	_, _, err = cmds.Lookup("re")
	assert.True(t, errors.Is(err, cmd.ErrAmbiguous))

	_, _, err = cmds.Lookup("frobnicate")
	assert.True(t, errors.Is(err, cmd.ErrNotFound))

	_, _, err = cmds.Lookup("step sideways")
	assert.True(t, errors.Is(err, cmd.ErrNotFound))
}

func TestCommandShortcuts(t *testing.T) {
	c, _, err := cmds.LookupCommand("step over")
	assert.NoError(t, err)
	assert.Equal(t, []string{"s"}, c.Shortcuts())

	c, _, err = cmds.LookupCommand("register")
	assert.NoError(t, err)
	assert.Equal(t, []string{".", "r"}, c.Shortcuts())

	var b bytes.Buffer
	c.DisplayHelp(&b)
	assert.Contains(t, b.String(), "Usage: register [<name> <value>]")
	assert.Contains(t, b.String(), "Shortcuts: ., r")
}

func TestCommandsHaveHandlers(t *testing.T) {
	var walk func(tree *cmd.Tree)
	walk = func(tree *cmd.Tree) {
		for _, c := range tree.Commands() {
			_, ok := c.Data.(func(*Host, selection) error)
			assert.True(t, ok, c.Name)
			assert.True(t, c.Usage != "", c.Name)
		}
		for _, st := range tree.Subtrees() {
			walk(st)
		}
	}
	walk(cmds)
}
