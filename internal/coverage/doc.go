// Package coverage checks a mapping definition against sample records.
//
// For every attribute it counts the records in which the attribute's path
// resolves. Attributes that never resolve are reported as warnings, with
// near-miss record keys suggested when the path stopped on a missing key.
package coverage
