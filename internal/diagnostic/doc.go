// Package diagnostic provides structured errors and warnings collected while
// validating an extraction mapping definition.
//
// Key capabilities:
//   - One diagnostic per structural violation, tagged with the attribute it concerns
//   - Stable machine-readable codes for each kind of violation
//   - A combined error so every violation surfaces at once
package diagnostic
