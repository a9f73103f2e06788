/*
Package rules holds the two-stage mapping model of a transliteration.

The first stage is a mapping trie. It is keyed by the characters a user types
in an input scheme and yields candidate semantic tokens (MappingOutput), each
a (type, key) pair with the script text it stands for. A scheme spelling may
stand for more than one token. For example, "a" is an independent vowel at
the start of a syllable and a dependent vowel sign after a consonant.

The second stage is a rule trie. It is keyed by sequences of RuleInput,
which are either a specific token (TYPE/KEY) or a type wildcard (TYPE). Its
values are RuleOutput templates that recompose the tokens of a sequence into
output text.

Rules are created from a Table of mappings and a list of rule lines. Rule
lines are tab separated pairs of templates:

	[CONSONANT][CONSONANT]	[CONSONANT][SIGN/VIRAMA][CONSONANT]

A bare type in brackets is a placeholder. In an output template
[TYPE/KEY] stands for the script text of a mapping and {TYPE/KEY} for its
first scheme spelling.

Rules may be built in forward direction (scheme to script) or in reverse
direction (script to scheme).
*/
package rules

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'translit.rules'
func tracer() tracing.Trace {
	return tracing.Select("translit.rules")
}
