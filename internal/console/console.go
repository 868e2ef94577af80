// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package console prints the human-readable progress and summary of a run.
//
// A Console owns its output stream through a single writer goroutine.
// Producers hand over whole blocks of lines, so lines written by concurrent
// workers never interleave and a block is never split.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Category selects the colour a line is printed in.
type Category int

const (
	Plain Category = iota
	Success
	Warning
	Failure
	Timing
	ColdRead
	WarmRead
)

// Line is one line of console output.
type Line struct {
	Category Category
	Text     string
}

// Linef builds a Line from a format string.
func Linef(c Category, format string, args ...any) Line {
	return Line{Category: c, Text: fmt.Sprintf(format, args...)}
}

// Blank is an empty separator line.
var Blank = Line{Category: Plain}

type Console struct {
	w       io.Writer
	palette map[Category]*color.Color
	blocks  chan []Line
	done    chan struct{}
}

// New starts a Console writing to w. Colours are emitted only when colorize
// is set. Close must be called to flush pending output.
func New(w io.Writer, colorize bool) *Console {
	c := &Console{
		w:       w,
		palette: newPalette(colorize),
		blocks:  make(chan []Line, 64),
		done:    make(chan struct{}),
	}
	go c.run()
	return c
}

func newPalette(colorize bool) map[Category]*color.Color {
	palette := map[Category]*color.Color{
		Plain:    color.New(color.FgWhite),
		Success:  color.New(color.FgGreen),
		Warning:  color.New(color.FgYellow),
		Failure:  color.New(color.FgRed),
		Timing:   color.New(color.FgCyan),
		ColdRead: color.New(color.FgMagenta),
		WarmRead: color.New(color.FgGreen),
	}
	for _, c := range palette {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return palette
}

func (c *Console) run() {
	defer close(c.done)
	var sb strings.Builder
	for block := range c.blocks {
		sb.Reset()
		for _, l := range block {
			if l.Text == "" {
				sb.WriteByte('\n')
				continue
			}
			sb.WriteString(c.palette[l.Category].Sprint(l.Text))
			sb.WriteByte('\n')
		}
		// A broken stdout is not worth aborting a run over.
		_, _ = io.WriteString(c.w, sb.String())
	}
}

// Print queues lines to be written together.
//
// REQUIRES: Close has not been called.
func (c *Console) Print(lines ...Line) {
	if len(lines) == 0 {
		return
	}
	c.blocks <- lines
}

// Printf queues a single formatted line.
func (c *Console) Printf(cat Category, format string, args ...any) {
	c.Print(Linef(cat, format, args...))
}

// Close flushes every queued block and stops the writer goroutine.
func (c *Console) Close() {
	close(c.blocks)
	<-c.done
}
