// Package observability provides the console logger, the JSONL event log
// that task mutations and persistence failures are recorded in, activity
// metrics derived from that log on demand, and the alert checks shown by
// "today stats".
package observability
