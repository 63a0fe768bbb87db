// Package match provides fuzzy key matching used to suggest record keys when
// a mapping path does not resolve.
//
// Keys are normalized before comparison so that naming-convention differences
// ("hostName", "host_name", "host-name") compare equal, then ranked by
// normalized Levenshtein similarity.
package match
