// Package classify groups peripheral instances by group name and assigns
// each group to a display category.
//
// Categories are matched in table order, so an earlier category has priority
// over a later one. A group matches a category when one of the category's
// patterns is a case-insensitive substring of the group name. Groups no
// category claims are reported as uncategorized. Group names are scanned in
// ordinal sort order, which fixes the order of groups within each category.
//
// An Index caches the classification of one dataset. Build a new Index when
// the dataset is reloaded.
package classify
