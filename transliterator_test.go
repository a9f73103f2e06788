package translit

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/npillmayer/translit/config"
)

func testFactory(t *testing.T) *Factory {
	t.Helper()
	conf := config.Default()
	conf.MappingDir = "mapping"
	conf.CustomDir = "custom"
	f, err := NewFactory(os.DirFS("testdata"), conf)
	require.NoError(t, err)
	return f
}

func hindi(t *testing.T) *Transliterator {
	t.Helper()
	tr, err := testFactory(t).Transliterator("Phonetic", "Hindi")
	require.NoError(t, err)
	return tr
}

func TestTransliterate(t *testing.T) {
	tests := []struct {
		input string
		fin   string
		unfin string
	}{
		{input: "atreya", fin: "अत्रे", unfin: "य"},
		{input: "aitareya", fin: "ऐतरे", unfin: "य"},
		{input: "kkau", fin: "", unfin: "क्कौ"},
		{input: "(k)", fin: "(क", unfin: ")"},
	}
	for _, tt := range tests {
		lit := hindi(t).Transliterate(tt.input)
		require.Equal(t, tt.fin, lit.FinalizedOutput, "finalized output of %q", tt.input)
		require.Equal(t, tt.unfin, lit.UnfinalizedOutput, "unfinalized output of %q", tt.input)
		require.Equal(t, tt.input, lit.Input())
	}
}

func TestTransliterateIncrementally(t *testing.T) {
	tr := hindi(t)
	lit := tr.Transliterate("k.l")
	require.Equal(t, "", lit.FinalizedOutput)
	require.Equal(t, "क.l", lit.UnfinalizedOutput)
	lit = tr.Transliterate("u")
	require.Equal(t, "", lit.FinalizedOutput)
	require.Equal(t, "कॢ", lit.UnfinalizedOutput)
	lit = tr.Transliterate("pi")
	require.Equal(t, "कॢ", lit.FinalizedOutput)
	require.Equal(t, "पि", lit.UnfinalizedOutput)
}

func TestStopSymbol(t *testing.T) {
	tr := hindi(t)
	lit := tr.Transliterate(`k\.lu`)
	require.Equal(t, "क", lit.FinalizedOutput)
	require.Equal(t, "ऌ", lit.UnfinalizedOutput)
	lit = tr.Transliterate(`k\\.lu`)
	require.Equal(t, `कऌक\`, lit.FinalizedOutput)
	require.Equal(t, "ऌ", lit.UnfinalizedOutput)
	lit = tr.Transliterate(`\\\`)
	require.Equal(t, `कऌक\ऌ\`, lit.FinalizedOutput)
	require.Equal(t, "", lit.UnfinalizedOutput)
}

func TestStopSeparatesCompositions(t *testing.T) {
	tr := hindi(t)
	require.Equal(t, "क्क", tr.Transliterate("kk").Output())
	tr.Reset()
	require.Equal(t, "कक", tr.Transliterate(`k\k`).Output())
}

func TestEscapeSymbol(t *testing.T) {
	tr := hindi(t)
	lit := tr.Transliterate("`ka`k")
	require.Equal(t, "ka", lit.FinalizedOutput)
	require.Equal(t, "क", lit.UnfinalizedOutput)
	require.Equal(t, "`ka`", lit.FinalizedInput)
	require.Equal(t, "k", lit.UnfinalizedInput)
	tr.Reset()
	require.Equal(t, "`", tr.Transliterate("``").Output(), "an empty escape run outputs the escape symbol")
	tr.Reset()
	require.Equal(t, `\k`, tr.Transliterate("`\\k`").Output(), "the stop symbol is literal input, too")
}

func TestDelete(t *testing.T) {
	tr := hindi(t)
	tr.Transliterate("kk")
	input, output, handled := tr.Delete()
	require.True(t, handled)
	require.Equal(t, "k", input)
	require.Equal(t, "क", output)
	input, output, handled = tr.Delete()
	require.True(t, handled)
	require.Equal(t, "", input)
	require.Equal(t, "", output)
	_, _, handled = tr.Delete()
	require.False(t, handled)
}

func TestDeleteRevisesComposition(t *testing.T) {
	tr := hindi(t)
	tr.Transliterate("kkau")
	input, output, _ := tr.Delete()
	require.Equal(t, "kka", input)
	require.Equal(t, "क्क", output)
	require.Equal(t, "क्कै", tr.Transliterate("i").Output())
}

func TestDeleteKeepsFinalizedOutput(t *testing.T) {
	tr := hindi(t)
	tr.Transliterate("atreya")
	input, output, handled := tr.Delete()
	require.True(t, handled)
	require.Equal(t, "y", input)
	require.Equal(t, "य", output)
	_, _, handled = tr.Delete()
	require.True(t, handled)
	_, _, handled = tr.Delete()
	require.False(t, handled, "finalized input cannot be deleted")
	lit := tr.Transliterate("")
	require.Equal(t, "अत्रे", lit.FinalizedOutput)
	require.Equal(t, "", lit.UnfinalizedOutput)
}

func TestDeleteRestoresSymbolState(t *testing.T) {
	tr := hindi(t)
	require.Equal(t, `क\`, tr.Transliterate(`k\\`).Output())
	_, _, handled := tr.Delete()
	require.True(t, handled)
	require.Equal(t, `क\`, tr.Transliterate(`\`).Output(), "deleted stop symbol leaves the previous one pending")
	tr.Reset()
	tr.Transliterate("`ka")
	input, output, handled := tr.Delete()
	require.True(t, handled)
	require.Equal(t, "", input)
	require.Equal(t, "", output)
	require.Equal(t, "k", tr.Transliterate("`").Output(), "the escape run is still open")
}

func TestReset(t *testing.T) {
	tr := hindi(t)
	tr.Transliterate("atreya")
	lit := tr.Reset()
	require.Equal(t, "अत्रे", lit.FinalizedOutput)
	require.Equal(t, "य", lit.UnfinalizedOutput)
	require.Equal(t, Literated{}, tr.Reset())
	require.Equal(t, Literated{}, tr.Transliterate(""))
	require.Empty(t, tr.Results())
}

func TestSharedTransliterator(t *testing.T) {
	s := NewShared(hindi(t))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Transliterate("k")
		}()
	}
	wg.Wait()
	lit := s.Reset()
	require.Equal(t, "kkkkkkkk", lit.Input())
	_, _, handled := s.Delete()
	require.False(t, handled)
}
