package realm

import (
	"errors"
	"runtime"

	"github.com/dop251/goja"
	"github.com/dop251/goja/parser"
)

var errNotArrayBuffer = errors.New("not an ArrayBuffer object")

// initHostObject builds the $262 object and its owned graph. Called once
// per Realm, during bootstrap; the object is never replaced afterwards.
func (r *Realm) initHostObject() {
	host := r.vm.NewObject()
	r.agent = r.newAgentObject()

	must(host.Set("createRealm", r.createRealm))
	must(host.Set("detachArrayBuffer", r.detachArrayBuffer))
	must(host.Set("evalScript", r.evalScript))
	must(host.Set("clearKeptObjects", r.clearKeptObjects))

	must(host.Set("agent", r.agent))
	must(host.Set("global", r.vm.GlobalObject()))
	must(host.Set("IsHTMLDDA", r.vm.ToValue(r.dda.call)))

	// Pass through whatever gc trigger the hosting environment already
	// exposes; a plain global read, no script runs here.
	gc := r.vm.GlobalObject().Get("gc")
	if gc == nil {
		gc = goja.Undefined()
	}
	must(host.Set("gc", gc))

	r.host = host
}

// createRealm bootstraps a child realm and returns a view of its $262
// object usable from the calling realm. Engine instances do not share an
// object heap, so the view is a bridge (see bridge.go), not the child's
// own object.
func (r *Realm) createRealm(goja.FunctionCall) goja.Value {
	child := New(WithMode(r.mode), WithStdout(r.stdout), withSharedDDA(r.dda))
	r.children = append(r.children, child)
	return bridge(child, r, child.host)
}

// detachArrayBuffer implements $262.detachArrayBuffer(buffer, key?).
func (r *Realm) detachArrayBuffer(call goja.FunctionCall) goja.Value {
	obj, ok := call.Argument(0).(*goja.Object)
	if !ok {
		panic(r.vm.NewTypeError("detachArrayBuffer called with a non-ArrayBuffer argument"))
	}
	buf, ok := obj.Export().(goja.ArrayBuffer)
	if !ok {
		panic(r.vm.NewTypeError("detachArrayBuffer called with a non-ArrayBuffer argument"))
	}

	recorded, ok := r.detachKeys[obj]
	if !ok {
		recorded = goja.Undefined()
	}
	if !call.Argument(1).SameAs(recorded) {
		panic(r.vm.NewTypeError("detachArrayBuffer called with a mismatched detach key"))
	}

	if buf.Detached() {
		panic(r.vm.NewTypeError("ArrayBuffer is already detached"))
	}
	if !buf.Detach() {
		panic(r.vm.NewTypeError("ArrayBuffer is not detachable"))
	}
	delete(r.detachKeys, obj)
	return goja.Null()
}

// SetDetachKey records the detach key for buf. A later detachArrayBuffer
// call must present the same key (SameValue comparison) or fail.
func (r *Realm) SetDetachKey(buf *goja.Object, key goja.Value) error {
	if _, ok := buf.Export().(goja.ArrayBuffer); !ok {
		return errNotArrayBuffer
	}
	r.detachKeys[buf] = key
	return nil
}

// evalScript implements $262.evalScript(source): parse as an independent
// script, then run against the current realm. Parse failures surface as a
// SyntaxError carrying the first diagnostic; runtime exceptions propagate
// unchanged.
func (r *Realm) evalScript(call goja.FunctionCall) goja.Value {
	src := call.Argument(0).String()
	prg, err := r.Compile("<evalScript>", src)
	if err != nil {
		r.throwSyntaxError(firstDiagnostic(err))
	}
	if _, err := r.vm.RunProgram(prg); err != nil {
		panic(err)
	}
	return goja.Undefined()
}

// clearKeptObjects lets weak-reference targets become observable again.
// The engine keeps no explicit generation counter to advance, so this
// runs a collection cycle instead.
func (r *Realm) clearKeptObjects(goja.FunctionCall) goja.Value {
	runtime.GC()
	return goja.Undefined()
}

// firstDiagnostic extracts the first parser diagnostic's message from a
// compile error.
func firstDiagnostic(err error) string {
	switch e := err.(type) {
	case parser.ErrorList:
		if len(e) > 0 {
			return e[0].Message
		}
	case *parser.Error:
		return e.Message
	case *goja.CompilerSyntaxError:
		return e.Message
	}
	return err.Error()
}
