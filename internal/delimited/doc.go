// Package delimited reads and writes the quoted comma-separated text used by
// catalog imports and by the sectioned whole-hierarchy export.
//
// Reading is tolerant: the tokenizer never fails, and short rows are either
// dropped (ModeLenient) or kept for the caller to report (ModeStrict).
package delimited
