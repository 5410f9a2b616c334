package env

// Prefix is the environment variable prefix for every flag,
// e.g. MXNRATES_START for -start
const Prefix = "MXNRATES"
