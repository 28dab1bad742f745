// Package calendar ingests the XML calendar/agenda feed: floor calendars
// and active lists, each carrying supplementals with sections, sequences
// and calendar entries that reference bills.
//
// Unlike the SOBI bill stream this is a plain tree-to-object mapping; the
// only stateful part is the removal action, where a calendar element is
// resent with action="remove" and the most specific sub-document parsed
// from it (supplemental or sequence) must be removed instead of added.
package calendar
