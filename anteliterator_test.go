package translit

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnteliterate(t *testing.T) {
	a, err := testFactory(t).Anteliterator("Phonetic", "Hindi")
	require.NoError(t, err)
	tests := []struct {
		script string
		want   string
	}{
		{script: "अत्रेय", want: "atrey"},
		{script: "क्कौ", want: "kkau"},
		{script: "कक", want: `k\k`},
		{script: "कि!", want: "ki!"},
		{script: "न\u093C", want: "nZ"},
		{script: "\u0929", want: "nZ"}, // precomposed NNNA
		{script: "ऩि", want: "nZi"},
		{script: "कं", want: "kM"},
		{script: "कॢ", want: "k.lu"},
		{script: "", want: ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, a.Anteliterate(tt.script), "anteliterate %q", tt.script)
	}
}

func TestAnteliterateIsRepeatable(t *testing.T) {
	a, err := testFactory(t).Anteliterator("Phonetic", "Hindi")
	require.NoError(t, err)
	require.Equal(t, a.Anteliterate("अत्रेय"), a.Anteliterate("अत्रेय"))
}

// Random input transliterates to the same script text as the
// anteliteration of its transliteration.
func TestRoundTrip(t *testing.T) {
	f := testFactory(t)
	tr, err := f.Transliterator("Phonetic", "Hindi")
	require.NoError(t, err)
	a, err := f.Anteliterator("Phonetic", "Hindi")
	require.NoError(t, err)
	tokens := []string{
		"k", "kh", "g", "t", "n", "p", "m", "y", "r", "l", "s",
		"a", "aa", "i", "ii", "u", "uu", "e", "o", "ai", "au", ".lu",
		"Z", "M", "~", "!", "(",
	}
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		var b strings.Builder
		for n := 1 + rnd.Intn(6); n > 0; n-- {
			b.WriteString(tokens[rnd.Intn(len(tokens))])
		}
		input := b.String()
		tr.Reset()
		script := tr.Transliterate(input).Output()
		back := a.Anteliterate(script)
		tr.Reset()
		require.Equal(t, script, tr.Transliterate(back).Output(),
			"%q → %q → %q", input, script, back)
	}
}

func TestCustomAnteliterate(t *testing.T) {
	a, err := testFactory(t).CustomAnteliterator("TestLatin")
	require.NoError(t, err)
	require.Equal(t, "kaka", a.Anteliterate("कक"))
	require.Equal(t, "kaukha", a.Anteliterate("कौख"))
	require.Equal(t, "k", a.Anteliterate("क्"))
}
