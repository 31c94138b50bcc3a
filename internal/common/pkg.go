package common

// UnknownStr is the canonical fallback for String() methods on enums
// that receive an out-of-range value.
const UnknownStr = "unknown"
