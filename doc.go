// Package libjstest262 is the root of a test262 execution harness: a
// command-line runner plus the host bindings a conformance test expects,
// backed by an embedded JavaScript engine.
//
// # Overview
//
// Running one test means bootstrapping a realm with the $262 host object
// and the print function, running the suite's harness files, running the
// test itself, and reporting the classified outcome as a single JSON
// record. An orchestrator drives many such invocations and aggregates
// the records.
//
// # Basic Usage
//
//	rlm := realm.New()
//	rlm.RunScript("test.js", `print($262.agent.monotonicNow())`)
//
//	// Full invocation: capture output, classify failures
//	res, _ := runner.Run(
//	    runner.WithHarnessFiles("harness/assert.js", "harness/sta.js"),
//	    runner.WithTarget("test/language/types/number/S8.5_A1.js"),
//	)
//	res.Write(os.Stdout)
//
// From the command line:
//
//	test262-runner harness/assert.js harness/sta.js -t test/some-test.js
//
// See the [realm] and [runner] packages for detailed API documentation.
package libjstest262
