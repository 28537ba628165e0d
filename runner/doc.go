// Package runner is the single-invocation execution harness: it runs
// zero or more harness files followed by one target script against a
// fresh realm and reports the outcome as one structured record.
//
// The sequence per invocation is redirect / execute / restore / report:
// standard output is captured at the file-descriptor level while scripts
// run (print writes straight to fd 1), then restored before the JSON
// record is emitted as the process's sole real output.
package runner
