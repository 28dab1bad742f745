// Package sobi implements the SOBI change-file format: the filename date
// contract and the tokenizer that splits a raw file into typed, possibly
// multi-line logical blocks.
//
// A SOBI file is a sequence of fixed-width lines. Every data line carries a
// 12 character header prefix:
//
//	2013S01234 A<data...>
//	^^^^           session year (4)
//	    ^^^^^^     print number (house letter + 5 digits)
//	          ^    amendment letter (space for the base bill)
//	           ^   line code (one of 1-9, A, B, C, M, R, T, V)
//
// Lines that do not match the header grammar are either ignored (no block
// open) or terminate the block being built. Consecutive lines with an
// identical header extend the open block when the line code allows it.
package sobi
