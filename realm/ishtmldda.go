package realm

import "github.com/dop251/goja"

// htmlDDA reproduces the document.all callable quirk the suite probes
// for: calling it with no arguments, or with the empty string, yields
// null; any other call yields undefined. One instance is shared by every
// realm in the process; each realm wraps it in its own function value.
//
// The wrapper produced by goja for a plain Go function has no construct
// behavior, so `new $262.IsHTMLDDA()` fails with a TypeError, which is
// the required contract.
type htmlDDA struct{}

func (*htmlDDA) call(call goja.FunctionCall) goja.Value {
	if len(call.Arguments) == 0 {
		return goja.Null()
	}
	if s, ok := call.Argument(0).Export().(string); ok && s == "" {
		return goja.Null()
	}
	return goja.Undefined()
}
