package sobi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LineCode identifies the record type of a SOBI block. The set of codes is
// closed; anything outside it is rejected at dispatch time.
type LineCode byte

const (
	LineBillInfo       LineCode = '1'
	LineLawSection     LineCode = '2'
	LineTitle          LineCode = '3'
	LineBillEvent      LineCode = '4'
	LineSameAs         LineCode = '5'
	LineSponsor        LineCode = '6'
	LineCoSponsor      LineCode = '7'
	LineMultiSponsor   LineCode = '8'
	LineProgramInfo    LineCode = '9'
	LineActClause      LineCode = 'A'
	LineLaw            LineCode = 'B'
	LineSummary        LineCode = 'C'
	LineSponsorMemo    LineCode = 'M'
	LineResolutionText LineCode = 'R'
	LineText           LineCode = 'T'
	LineVoteMemo       LineCode = 'V'
)

// Valid reports whether the code is one of the sixteen known record types.
func (c LineCode) Valid() bool {
	switch c {
	case LineBillInfo, LineLawSection, LineTitle, LineBillEvent, LineSameAs,
		LineSponsor, LineCoSponsor, LineMultiSponsor, LineProgramInfo,
		LineActClause, LineLaw, LineSummary, LineSponsorMemo,
		LineResolutionText, LineText, LineVoteMemo:
		return true
	}
	return false
}

// Multiline reports whether consecutive lines with an identical header
// extend a block of this type instead of starting a new one.
//
// Bill info, law section, same-as and program info are strictly one line
// per record. Everything else spans lines. Note that the sponsor code is
// multi-line capable even though a sponsor record is one line: the feed
// repeats the header for consecutive sponsor updates, so the tokenizer
// coalesces them and the applier compensates by working line at a time.
func (c LineCode) Multiline() bool {
	switch c {
	case LineBillInfo, LineLawSection, LineSameAs, LineProgramInfo:
		return false
	}
	return true
}

func (c LineCode) String() string { return string(byte(c)) }

// headerPattern matches the 12 character block header prefix. The remainder
// of the line is the record payload.
var headerPattern = regexp.MustCompile(`^([0-9]{4})([A-Z][0-9]{5})([ A-Z])([1-9A-Z])(.*)$`)

// headerLen is the width of the block header prefix.
const headerLen = 12

// Block is one logical record extracted from a SOBI file. A block may span
// several physical lines; Lines holds the payload of each with the header
// prefix stripped, in file order.
type Block struct {
	SourceFile string
	StartLine  int // 1-based line number of the first header line

	Header     string // full 12 character header prefix
	BillHeader string // header minus the line code (11 characters)

	Year      int    // session year
	PrintNo   string // normalized print number, e.g. "S1892"
	Amendment string // amendment letter, "" for the base bill
	Type      LineCode

	Lines []string
}

// ParseBlock builds a Block from a header-matching line. Returns nil if the
// line does not match the header grammar.
func ParseBlock(sourceFile string, lineNo int, line string) *Block {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	year, _ := strconv.Atoi(m[1])
	return &Block{
		SourceFile: sourceFile,
		StartLine:  lineNo,
		Header:     line[:headerLen],
		BillHeader: line[:headerLen-1],
		Year:       year,
		PrintNo:    normalizePrintNo(m[2]),
		Amendment:  strings.TrimSpace(m[3]),
		Type:       LineCode(m[4][0]),
		Lines:      []string{m[5]},
	}
}

// Extend appends another physical line's payload to the block.
func (b *Block) Extend(line string) {
	b.Lines = append(b.Lines, line[headerLen:])
}

// Data returns the block payload with one entry per physical line.
func (b *Block) Data() string {
	return strings.Join(b.Lines, "\n")
}

// BillID returns the full bill identifier the block targets,
// e.g. "S1892A-2013".
func (b *Block) BillID() string {
	return fmt.Sprintf("%s%s-%d", b.PrintNo, b.Amendment, b.Year)
}

// Location identifies the block's position for log messages.
func (b *Block) Location() string {
	return fmt.Sprintf("%s:%d", b.SourceFile, b.StartLine)
}

func (b *Block) String() string {
	return fmt.Sprintf("Block[%s %s]", b.BillID(), b.Type)
}

// normalizePrintNo strips the zero padding from the numeric part of a print
// number: "S01892" becomes "S1892".
func normalizePrintNo(raw string) string {
	house := raw[:1]
	num := strings.TrimLeft(raw[1:], "0")
	if num == "" {
		num = "0"
	}
	return house + num
}
