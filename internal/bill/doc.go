// Package bill defines the versioned legislative document model: bills and
// their amendment chains, recorded votes, action histories and the people
// attached to them.
//
// A bill is identified by printNo + amendment letter + "-" + session year
// ("S1892A-2013"); the base bill has an empty amendment. All lettered
// variants of a print number form one amendment chain. Exactly one member of
// a chain is active at a time, and the broadcast fields (sponsors, law,
// summary) are kept identical across all published members by the publisher.
package bill
