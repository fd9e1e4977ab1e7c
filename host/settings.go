// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/gochip8/cpu"
	"github.com/beevik/prefixtree/v2"
)

type settings struct {
	IPS             int    `doc:"instructions executed per second when running"`
	HexMode         bool   `doc:"hexadecimal input mode"`
	MemDumpBytes    int    `doc:"default number of memory bytes to dump"`
	DisasmLines     int    `doc:"default number of lines to disassemble"`
	MaxStepLines    int    `doc:"max lines to disassemble when stepping"`
	LiveDisplay     bool   `doc:"redraw the display while running"`
	PixelOn         string `doc:"characters drawn for a lit pixel"`
	PixelOff        string `doc:"characters drawn for an unlit pixel"`
	NextDisasmAddr  uint16 `doc:"address of next disassembly"`
	NextMemDumpAddr uint16 `doc:"address of next memory dump"`
}

func newSettings() *settings {
	return &settings{
		IPS:          cpu.DefaultInstructionsPerSecond,
		MemDumpBytes: 64,
		DisasmLines:  10,
		MaxStepLines: 20,
		LiveDisplay:  true,
		PixelOn:      "██",
		PixelOff:     "  ",
	}
}

// A settingVar describes one configuration variable, a field of the
// settings struct.
type settingVar struct {
	name  string
	field int
	typ   reflect.Type
	doc   string
}

var (
	errSettingType = errors.New("invalid type")

	settingVars     []*settingVar // in declaration order
	settingVarIndex = prefixtree.New[*settingVar]()
)

func init() {
	t := reflect.TypeFor[settings]()
	for i := range t.NumField() {
		f := t.Field(i)
		v := &settingVar{
			name:  f.Name,
			field: i,
			typ:   f.Type,
			doc:   f.Tag.Get("doc"),
		}
		settingVars = append(settingVars, v)
		settingVarIndex.Add(strings.ToLower(f.Name), v)
	}
}

func lookupSetting(key string) (*settingVar, error) {
	v, err := settingVarIndex.FindValue(strings.ToLower(key))
	switch {
	case errors.Is(err, prefixtree.ErrPrefixAmbiguous):
		return nil, fmt.Errorf("setting '%s' is ambiguous", key)
	case err != nil:
		return nil, fmt.Errorf("setting '%s' not found", key)
	}
	return v, nil
}

// Display writes every variable, its value and its description.
func (s *settings) Display(w io.Writer) {
	for _, v := range settingVars {
		fmt.Fprintln(w, s.describe(v))
	}
}

// Describe returns the display line of the variable named by key.
func (s *settings) Describe(key string) (string, error) {
	v, err := lookupSetting(key)
	if err != nil {
		return "", err
	}
	return s.describe(v), nil
}

func (s *settings) describe(v *settingVar) string {
	value := reflect.ValueOf(s).Elem().Field(v.field)

	var str string
	switch v.typ.Kind() {
	case reflect.String:
		str = fmt.Sprintf("%q", value.String())
	case reflect.Uint16:
		str = fmt.Sprintf("$%04X", value.Uint())
	default:
		str = fmt.Sprint(value.Interface())
	}
	return fmt.Sprintf("%-28s (%s)", fmt.Sprintf("    %-16s %s", v.name, str), v.doc)
}

// Kind returns the kind of the variable named by key, or reflect.Invalid if
// there is no such variable.
func (s *settings) Kind(key string) reflect.Kind {
	v, err := lookupSetting(key)
	if err != nil {
		return reflect.Invalid
	}
	return v.typ.Kind()
}

// Set assigns value to the variable named by key. Numbers are converted to
// the variable's type; strings are only assigned to string variables.
func (s *settings) Set(key string, value any) error {
	v, err := lookupSetting(key)
	if err != nil {
		return err
	}

	in := reflect.ValueOf(value)
	isString := in.Kind() == reflect.String
	if isString != (v.typ.Kind() == reflect.String) || !in.CanConvert(v.typ) {
		return errSettingType
	}

	reflect.ValueOf(s).Elem().Field(v.field).Set(in.Convert(v.typ))
	return nil
}
