/*
Package scheme loads transliteration mappings from a set of text files.

A mapping directory contains

	Scheme/<name>.scheme    input scheme spellings
	Script/<name>.script    target script code points
	<script>-<scheme>.rule  rules for a pair of script and scheme
	Default.rule            rules for all other pairs

Scheme and script files are tab separated with three columns: a type, a
key and a value. Scheme values are comma separated alternative spellings,
the first being canonical. Script values are comma separated hexadecimal
code points:

	CONSONANT	KHA	kh, K
	CONSONANT	KHA	916

Rule files hold rule lines (see package rules) and directives, which are
processed in order:

	Scheme: <name>, ...   overlay additional scheme files
	Script: <name>, ...   overlay additional script files
	Rule: <name>, ...     include further rule files

Lines starting with "//" or "#" are comments. Later definitions of a
(type, key) pair override earlier ones.

Files are read through an fs.FS, so callers decide where mappings come from
(os.DirFS, embed.FS, testing/fstest.MapFS, ...).
*/
package scheme

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'translit.scheme'
func tracer() tracing.Trace {
	return tracing.Select("translit.scheme")
}
