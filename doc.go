/*
Package translit is an incremental transliteration engine.

Text typed in a phonetic input scheme is transliterated into a target
script, one keystroke at a time. Output which may still change with further
keystrokes is kept apart from output which is final:

	factory, err := translit.NewFactory(os.DirFS("/usr/share/translit"), nil)
	...
	t, err := factory.Transliterator("Phonetic", "Hindi")
	...
	lit := t.Transliterate("atreya")
	// lit.FinalizedOutput == "अत्रे", lit.UnfinalizedOutput == "य"

A Transliterator aggregates the results of an engine. Two symbols are
handled by the Transliterator itself: the stop symbol ends the current
composition, and is output only if typed twice in a row. The escape symbol
starts and ends a run of literal input.

An Anteliterator reverses the transliteration, turning script text back into
input text which transliterates to the same script text.

Mappings for a pair of scheme and script consist of a scheme file, a script
file and a rule file. Custom mappings map input directly to output, without
rules. Both are loaded from an fs.FS, see packages scheme and custom.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package translit

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'translit'
func tracer() tracing.Trace {
	return tracing.Select("translit")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
