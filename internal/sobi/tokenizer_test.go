package sobi

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeEmptyInput(t *testing.T) {
	blocks, err := Tokenize("empty.sobi", strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestTokenizeIgnoresNonMatchingLines(t *testing.T) {
	input := "SOBI header chatter\n\nnot a block\n"
	blocks, err := Tokenize("chatter.sobi", strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestTokenizeSingleLineBlock(t *testing.T) {
	blocks, err := Tokenize("one.sobi", strings.NewReader("2011S01234 3TITLE TEXT\n"))
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	b := blocks[0]
	assert.Equal(t, "S1234-2011", b.BillID())
	assert.Equal(t, LineTitle, b.Type)
	assert.Equal(t, "TITLE TEXT", b.Data())
	assert.Equal(t, 1, b.StartLine)
	assert.Equal(t, "one.sobi", b.SourceFile)
}

func TestTokenizeCoalescesMultilineBlocks(t *testing.T) {
	input := "2011S01234 3FIRST\n2011S01234 3SECOND\n"
	blocks, err := Tokenize("multi.sobi", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "FIRST\nSECOND", blocks[0].Data())
}

func TestTokenizeSingleLineCodesNeverCoalesce(t *testing.T) {
	// Same-as ('5') is a one-line record: a repeated header is two blocks.
	input := "2011S01234 5Same as A100\n2011S01234 5Same as A200\n"
	blocks, err := Tokenize("sameas.sobi", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "Same as A100", blocks[0].Data())
	assert.Equal(t, "Same as A200", blocks[1].Data())
}

func TestTokenizeSynthesizesLawBeforeSummary(t *testing.T) {
	input := "2011S01234 3TITLE\n2011S01234 CSUMMARY\n"
	blocks, err := Tokenize("law.sobi", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	assert.Equal(t, LineTitle, blocks[0].Type)
	assert.Equal(t, LineLaw, blocks[1].Type)
	assert.Equal(t, "", blocks[1].Data())
	assert.Equal(t, LineSummary, blocks[2].Type)
}

func TestTokenizeNoSyntheticLawAfterLaw(t *testing.T) {
	input := "2011S01234 BEDN LAW\n2011S01234 CSUMMARY\n"
	blocks, err := Tokenize("law.sobi", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, LineLaw, blocks[0].Type)
	assert.Equal(t, LineSummary, blocks[1].Type)
}

func TestTokenizeNormalizesNullBytes(t *testing.T) {
	input := "2011S01234 3TITLE\x00\x00X\n"
	blocks, err := Tokenize("nulls.sobi", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "TITLE  X", blocks[0].Data())
}

func TestTokenizeSample(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "sample.sobi"))
	require.NoError(t, err)
	defer f.Close()

	blocks, err := Tokenize("sample.sobi", f)
	require.NoError(t, err)

	var buf bytes.Buffer
	for _, b := range blocks {
		fmt.Fprintf(&buf, "%d %s %s %q\n", b.StartLine, b.BillID(), b.Type, b.Data())
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "tokenize_sample", buf.Bytes())
}
