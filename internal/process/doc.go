// Package process is the bill-change pipeline: it reads a SOBI change file,
// tokenizes it into blocks, and for each block resolves the target bill,
// applies the field-level change, and publishes the result back to the
// store with cross-version consistency rules applied.
//
// Blocks within one file are applied strictly in tokenizer order. Each block
// is fully resolved, applied and published before the next begins, because
// later blocks may depend on state just written by earlier ones (amendment
// sync, same-as links). Errors are isolated per block: a malformed block is
// logged and skipped, never aborting the rest of the file.
//
// The upstream feed always sends fields in full, so appliers replace their
// target fields completely rather than merging, except for the explicitly
// stateful multi-block fields (votes, full/memo text, action lists).
package process
