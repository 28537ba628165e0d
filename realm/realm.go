package realm

import (
	"fmt"
	"io"
	"os"

	"github.com/dop251/goja"
	"github.com/dop251/goja/parser"
)

// Mode selects how source text is turned into an executable program.
type Mode int

const (
	// ModeAST parses with goja/parser and compiles the resulting AST.
	// Parsing and compilation are separate, observable steps.
	ModeAST Mode = iota
	// ModeCompiled uses the engine's one-step compiler.
	ModeCompiled
)

// Realm is an isolated global execution context with the test262 host
// bindings installed: the global print function and the $262 object.
//
// Each Realm owns exactly one goja.Runtime. Realms created through
// $262.createRealm are kept reachable from their parent so that the
// engine never reclaims a realm a script can still address.
type Realm struct {
	vm     *goja.Runtime
	mode   Mode
	stdout io.Writer

	host  *goja.Object // the $262 object
	agent *goja.Object
	dda   *htmlDDA

	detachKeys map[*goja.Object]goja.Value
	children   []*Realm

	// Pristine intrinsics, captured before any guest script runs.
	getOwnDesc  goja.Callable
	getProto    goja.Callable
	thrower     goja.Callable
	syntaxError goja.Value
}

var throwerProgram = goja.MustCompile("thrower.js", `(function (e) { throw e; })`, false)

// New bootstraps a fresh Realm.
func New(opts ...Option) *Realm {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Realm{
		vm:         goja.New(),
		mode:       cfg.mode,
		stdout:     cfg.stdout,
		dda:        cfg.dda,
		detachKeys: make(map[*goja.Object]goja.Value),
	}
	if r.dda == nil {
		r.dda = &htmlDDA{}
	}

	r.snapshotIntrinsics()
	r.initHostObject()

	global := r.vm.GlobalObject()
	// https://github.com/tc39/test262/blob/master/INTERPRETING.md#host-defined-functions
	must(global.DefineDataProperty("print", r.vm.ToValue(r.print), goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_FALSE))
	must(global.DefineDataProperty("$262", r.host, goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_FALSE))

	return r
}

// snapshotIntrinsics captures references the classifier and the host
// object need in their original state. Guest scripts are free to clobber
// the globals afterwards.
func (r *Realm) snapshotIntrinsics() {
	objectCtor := r.vm.Get("Object").ToObject(r.vm)

	getOwnDesc, ok := goja.AssertFunction(objectCtor.Get("getOwnPropertyDescriptor"))
	if !ok {
		panic("realm: Object.getOwnPropertyDescriptor is not a function")
	}
	getProto, ok := goja.AssertFunction(objectCtor.Get("getPrototypeOf"))
	if !ok {
		panic("realm: Object.getPrototypeOf is not a function")
	}
	thrown, err := r.vm.RunProgram(throwerProgram)
	if err != nil {
		panic(fmt.Sprintf("realm: compile thrower: %v", err))
	}
	thrower, ok := goja.AssertFunction(thrown)
	if !ok {
		panic("realm: thrower is not a function")
	}

	r.getOwnDesc = getOwnDesc
	r.getProto = getProto
	r.thrower = thrower
	r.syntaxError = r.vm.Get("SyntaxError")
}

// Runtime exposes the underlying engine instance.
func (r *Realm) Runtime() *goja.Runtime { return r.vm }

// HostObject returns this realm's $262 object.
func (r *Realm) HostObject() *goja.Object { return r.host }

// Compile turns source text into a program without running it. The error,
// if any, is a parse or compile diagnostic and never a runtime exception.
func (r *Realm) Compile(name, src string) (*goja.Program, error) {
	if r.mode == ModeCompiled {
		return goja.Compile(name, src, false)
	}
	prg, err := parser.ParseFile(nil, name, src, 0)
	if err != nil {
		return nil, err
	}
	return goja.CompileAST(prg, false)
}

// RunScript compiles and runs src as an independent program against this
// realm's global environment.
func (r *Realm) RunScript(name, src string) (goja.Value, error) {
	prg, err := r.Compile(name, src)
	if err != nil {
		return nil, err
	}
	return r.vm.RunProgram(prg)
}

// DataProperty reads name from obj or its prototype chain using the
// pristine Object.getOwnPropertyDescriptor, returning the value only for
// plain data properties. Accessors are never invoked: if the nearest
// matching property is an accessor, the read reports absence instead.
func (r *Realm) DataProperty(obj *goja.Object, name string) (goja.Value, bool) {
	key := r.vm.ToValue(name)
	for cur := obj; cur != nil; {
		desc, err := r.getOwnDesc(goja.Undefined(), cur, key)
		if err != nil {
			return nil, false
		}
		if d, ok := desc.(*goja.Object); ok {
			if v := d.Get("value"); v != nil {
				return v, true
			}
			return nil, false
		}
		protoVal, err := r.getProto(goja.Undefined(), cur)
		if err != nil || protoVal == nil || goja.IsNull(protoVal) {
			return nil, false
		}
		next, ok := protoVal.(*goja.Object)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// throwValue throws v inside this realm's runtime by routing it through
// the pristine thrower, so that arbitrary values (not just Error objects)
// surface as ordinary exceptions.
func (r *Realm) throwValue(v goja.Value) {
	_, err := r.thrower(goja.Undefined(), v)
	panic(err)
}

// throwSyntaxError throws a SyntaxError built from the realm's pristine
// constructor.
func (r *Realm) throwSyntaxError(msg string) {
	errObj, err := r.vm.New(r.syntaxError, r.vm.ToValue(msg))
	if err != nil {
		panic(r.vm.NewTypeError("SyntaxError construction failed: %s", msg))
	}
	panic(errObj)
}

func (r *Realm) print(call goja.FunctionCall) goja.Value {
	fmt.Fprintln(r.stdout, call.Argument(0).String())
	return goja.Undefined()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Option configures a Realm at creation time.
type Option func(*config)

type config struct {
	mode   Mode
	stdout io.Writer
	dda    *htmlDDA
}

func defaultConfig() config {
	return config{
		mode:   ModeAST,
		stdout: os.Stdout,
	}
}

// WithMode selects the compilation pipeline.
func WithMode(m Mode) Option {
	return func(c *config) {
		c.mode = m
	}
}

// WithStdout redirects the print function's output. Defaults to the
// process standard output, which is what the execution harness captures.
func WithStdout(w io.Writer) Option {
	return func(c *config) {
		c.stdout = w
	}
}

// withSharedDDA installs an existing IsHTMLDDA host implementation, so
// that realms created via $262.createRealm share the single instance.
func withSharedDDA(d *htmlDDA) Option {
	return func(c *config) {
		c.dda = d
	}
}
