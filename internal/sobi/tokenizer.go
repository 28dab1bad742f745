package sobi

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Tokenize splits a SOBI file into logical blocks in file order.
//
// The scan is line oriented. Null bytes are normalized to spaces first so
// that padded lines keep their fixed-width offsets. A synthetic empty line
// is appended to force closure of a trailing block.
//
// One grouping quirk is repaired here: the feed omits the law line ('B')
// when it is blank, but a law block is expected to always precede a summary
// block ('C'). When a summary block directly follows a non-law block for the
// same bill, an empty law block is synthesized in between.
func Tokenize(sourceFile string, r io.Reader) ([]*Block, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", sourceFile, err)
	}
	lines = append(lines, "") // close any trailing block

	var blocks []*Block
	var open *Block

	for i, raw := range lines {
		line := strings.ReplaceAll(raw, "\x00", " ")
		lineNo := i + 1

		next := ParseBlock(sourceFile, lineNo, line)
		switch {
		case next == nil && open == nil:
			// Not every line in the file is SOBI data; skip it.

		case next == nil:
			// A non-matching line always ends the open block.
			blocks = append(blocks, open)
			open = nil

		case open == nil:
			open = next

		case open.Header == next.Header && open.Type.Multiline():
			open.Extend(line)

		default:
			blocks = append(blocks, open)
			if next.BillHeader == open.BillHeader &&
				next.Type == LineSummary && open.Type != LineLaw {
				if law := ParseBlock(sourceFile, lineNo, open.BillHeader+"B"); law != nil {
					blocks = append(blocks, law)
				}
			}
			open = next
		}
	}

	return blocks, nil
}
