package engine

import (
	"fmt"
	"strings"
)

// Result is the unit of output of an engine.
type Result struct {
	Input           string // input symbols this result accounts for
	Output          string // output text
	IsPreviousFinal bool   // all output before this result is final
	IsAppendage     bool   // add to, instead of replace, the non-final output
}

func (r Result) String() string {
	var flags []string
	if r.IsPreviousFinal {
		flags = append(flags, "final")
	}
	if r.IsAppendage {
		flags = append(flags, "append")
	}
	return fmt.Sprintf("%q→%q[%s]", r.Input, r.Output, strings.Join(flags, ","))
}

// Transducer is the capability shared by all engines.
type Transducer interface {
	// Execute consumes a single symbol.
	Execute(symbol rune) []Result
	// ExecuteAll consumes symbols in order. The results equal those of
	// calling Execute for each symbol.
	ExecuteAll(symbols []rune) []Result
	// Reset discards all state. It does not emit results.
	Reset()
}

// --- Display bookkeeping ---------------------------------------------------

// segment is a piece of non-final output as held by the consumer.
type segment struct {
	input    string
	output   string
	composed bool // result of a rule or mapping, not raw symbols
}

// display tracks the non-final output the consumer holds for the current
// composition and turns changes of that output into results.
type display struct {
	shown  []segment
	epoch  uint64 // composition the shown segments belong to
	fresh  bool   // nothing emitted since construction or reset
	sealed bool   // shown output is complete, the next composition starts final
}

func newDisplay() display {
	return display{fresh: true}
}

func (d *display) reset() {
	*d = newDisplay()
}

func (d *display) isFinal(epoch uint64) bool {
	return d.fresh || d.sealed || d.epoch != epoch
}

// publish brings the consumer's view in line with segs, which make up the
// non-final output of composition epoch.
func (d *display) publish(segs []segment, epoch uint64, out []Result) []Result {
	if d.isFinal(epoch) {
		if len(segs) == 0 {
			return out
		}
		for i, s := range segs {
			out = append(out, Result{
				Input:           s.input,
				Output:          s.output,
				IsPreviousFinal: i == 0,
				IsAppendage:     !s.composed,
			})
		}
	} else if extends(d.shown, segs) {
		for _, s := range segs[len(d.shown):] {
			out = append(out, Result{Input: s.input, Output: s.output, IsAppendage: true})
		}
	} else if len(segs) == 0 {
		out = append(out, Result{})
	} else {
		for i, s := range segs {
			out = append(out, Result{Input: s.input, Output: s.output, IsAppendage: i > 0})
		}
	}
	d.shown = append(d.shown[:0], segs...)
	d.epoch = epoch
	d.fresh, d.sealed = false, false
	return out
}

// identity emits text unchanged as a complete composition. If replace is
// set, text replaces the non-final output of epoch, otherwise text follows
// it and finalizes it.
func (d *display) identity(text string, epoch uint64, replace bool, out []Result) []Result {
	final := d.isFinal(epoch) || !replace
	out = append(out, Result{Input: text, Output: text, IsPreviousFinal: final})
	d.shown = append(d.shown[:0], segment{input: text, output: text, composed: true})
	d.epoch = epoch
	d.fresh = false
	d.sealed = true
	return out
}

func extends(shown, segs []segment) bool {
	if len(segs) < len(shown) {
		return false
	}
	for i := range shown {
		if shown[i] != segs[i] {
			return false
		}
	}
	return true
}
