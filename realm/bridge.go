package realm

import "github.com/dop251/goja"

// Engine runtimes own disjoint heaps: a value from one realm must never
// be handed to another realm's vm directly. bridge translates a value
// owned by from into a value usable in to:
//
//   - primitives are copied
//   - functions become natives that delegate into the owning realm
//   - other objects become live forwarding views (dynamic objects)
//
// Exceptions crossing the boundary are translated the same way before
// being rethrown on the caller's side. The forwarders capture the child
// Realm, which keeps it reachable for as long as the caller can address
// it.
func bridge(from, to *Realm, v goja.Value) goja.Value {
	if v == nil || goja.IsUndefined(v) {
		return goja.Undefined()
	}
	if goja.IsNull(v) {
		return goja.Null()
	}

	if sym, ok := v.(*goja.Symbol); ok {
		// Identity is lost; close enough for diagnostics.
		return goja.NewSymbol(sym.String())
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return to.vm.ToValue(v.Export())
	}

	if fn, ok := goja.AssertFunction(v); ok {
		return to.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			args := make([]goja.Value, len(call.Arguments))
			for i, a := range call.Arguments {
				args[i] = bridge(to, from, a)
			}
			res, err := fn(goja.Undefined(), args...)
			if err != nil {
				rethrow(from, to, err)
			}
			return bridge(from, to, res)
		})
	}

	return to.vm.NewDynamicObject(&bridgedObject{from: from, to: to, obj: obj})
}

// rethrow surfaces an error produced in from as an exception in to.
func rethrow(from, to *Realm, err error) {
	if ex, ok := err.(*goja.Exception); ok {
		to.throwValue(bridge(from, to, ex.Value()))
	}
	panic(to.vm.NewGoError(err))
}

// bridgedObject is a live view of a foreign object. Property access is
// forwarded to the owning realm and results are bridged back, so reads
// always observe the foreign object's current state.
type bridgedObject struct {
	from, to *Realm
	obj      *goja.Object
}

func (b *bridgedObject) Get(key string) goja.Value {
	var v goja.Value
	if ex := b.from.vm.Try(func() { v = b.obj.Get(key) }); ex != nil {
		b.to.throwValue(bridge(b.from, b.to, ex.Value()))
	}
	if v == nil {
		return nil
	}
	return bridge(b.from, b.to, v)
}

func (b *bridgedObject) Set(key string, val goja.Value) bool {
	translated := bridge(b.to, b.from, val)
	var err error
	if ex := b.from.vm.Try(func() { err = b.obj.Set(key, translated) }); ex != nil {
		b.to.throwValue(bridge(b.from, b.to, ex.Value()))
	}
	return err == nil
}

func (b *bridgedObject) Has(key string) bool {
	var v goja.Value
	if ex := b.from.vm.Try(func() { v = b.obj.Get(key) }); ex != nil {
		return false
	}
	return v != nil
}

func (b *bridgedObject) Delete(key string) bool {
	var err error
	if ex := b.from.vm.Try(func() { err = b.obj.Delete(key) }); ex != nil {
		return false
	}
	return err == nil
}

func (b *bridgedObject) Keys() []string {
	return b.obj.Keys()
}
