/*
Package custom parses user defined mappings.

A custom mapping maps input spellings directly to output text, without
rules. A mapping file starts with optional headers, followed by mappings:

	name: Test Latin
	version: 1.0
	stop-char: \
	class-delimiters: { }
	wildcard: *
	using classes

	class consonant {
	    k    क
	    kh   ख
	}

	a              अ
	{consonant}    *्
	{consonant}a   *

A mapping line holds an input and an output separated by white space. Inside
a class definition, mappings define the members of the class. An input
referencing a class in delimiters expands to one mapping for every member of
the class. If the output contains the wildcard, it is replaced by the
output of the member, otherwise every member maps to the same output.

Mappings may be parsed in reverse, to decompose output text back into input
text. Reverse mappings are keyed by the output text read backwards and map
to the input text read backwards, so that they match from the end of a text.
*/
package custom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'translit.custom'
func tracer() tracing.Trace {
	return tracing.Select("translit.custom")
}
