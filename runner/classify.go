package runner

import (
	"github.com/dop251/goja"
	"github.com/dop251/goja/parser"

	"github.com/linusg/libjs-test262/realm"
)

// Classify maps an error returned by the engine to its reportable shape.
// rlm must be the realm the error came from; its pristine intrinsics are
// used so classification never runs guest code.
func Classify(rlm *realm.Realm, err error) *TestError {
	switch e := err.(type) {
	case parser.ErrorList:
		msg := e.Error()
		if len(e) > 0 {
			msg = e[0].Message
		}
		return &TestError{Phase: PhaseParse, Type: "SyntaxError", Details: msg}
	case *parser.Error:
		return &TestError{Phase: PhaseParse, Type: "SyntaxError", Details: e.Message}
	case *goja.CompilerSyntaxError:
		return &TestError{Phase: PhaseParse, Type: "SyntaxError", Details: e.Message}
	case *goja.CompilerReferenceError:
		return &TestError{Phase: PhaseRuntime, Type: "ReferenceError", Details: e.Message}
	case *goja.Exception:
		return classifyThrown(rlm, e.Value())
	}
	return &TestError{Phase: PhaseRuntime, Details: err.Error()}
}

// classifyThrown extracts a best-effort (type, details) pair from a
// thrown value. Only plain data properties are read, so a hostile or
// half-built error object cannot re-enter script while the harness is
// already handling a failure.
//
// The name read is primary; the constructor fallback covers error-like
// objects that expose their class name only through the constructor.
func classifyThrown(rlm *realm.Realm, v goja.Value) *TestError {
	te := &TestError{Phase: PhaseRuntime}

	obj, ok := v.(*goja.Object)
	if !ok {
		te.Details = safeString(rlm, v)
		return te
	}

	if name, ok := rlm.DataProperty(obj, "name"); ok && !goja.IsUndefined(name) {
		te.Type = name.String()
	} else if ctor, ok := rlm.DataProperty(obj, "constructor"); ok {
		if ctorObj, ok := ctor.(*goja.Object); ok {
			if ctorName, ok := rlm.DataProperty(ctorObj, "name"); ok && !goja.IsUndefined(ctorName) {
				te.Type = ctorName.String()
			}
		}
	}

	if msg, ok := rlm.DataProperty(obj, "message"); ok && !goja.IsUndefined(msg) {
		te.Details = msg.String()
	}

	if te.Type == "" {
		te.Type = safeString(rlm, v)
	}
	return te
}

// safeString coerces v to a string while already handling a failure; a
// throwing toString must not take the classifier down with it.
func safeString(rlm *realm.Realm, v goja.Value) string {
	s := "<unprintable value>"
	rlm.Runtime().Try(func() { s = v.String() })
	return s
}
