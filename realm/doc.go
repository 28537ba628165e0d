// Package realm implements the host environment a test262 test expects
// from any conforming implementation: an isolated global execution
// context with the print function and the $262 object installed.
//
// # Overview
//
// A [Realm] wraps one goja runtime and exposes, per
// https://github.com/tc39/test262/blob/master/INTERPRETING.md:
//
//	print(value)                      write value + "\n" to stdout
//	$262.agent                        timing primitives (single agent)
//	$262.createRealm()                a fresh realm's $262 object
//	$262.detachArrayBuffer(buf, key?) detach with optional key check
//	$262.evalScript(source)           parse-then-run an independent script
//	$262.clearKeptObjects()           flush weak-reference bookkeeping
//	$262.global                       the realm's global object
//	$262.IsHTMLDDA                    the document.all callable quirk
//	$262.gc                           pass-through of a host gc trigger
//
// # Basic Usage
//
//	r := realm.New()
//	v, err := r.RunScript("test.js", src)
//
// # Cross-realm values
//
// goja runtimes do not share heaps, so $262.createRealm returns a bridge:
// a view built in the calling realm whose operations delegate to the
// child. Primitives copy across, functions and objects forward.
//
// # Capability gaps
//
// agent.broadcast, agent.getReport and agent.start require concurrent
// sibling agents and are deliberately unimplemented; they throw when
// called. The outer orchestrator excludes tests that need them.
package realm
