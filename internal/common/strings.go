package common

// UnknownStr is the String() fallback for enum values outside the known range.
const UnknownStr = "unknown"
