package utils

// REVISION is stamped into every API response envelope.
const REVISION = "1.0.0"
