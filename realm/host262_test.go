package realm_test

import (
	"fmt"
	"testing"

	"github.com/dop251/goja"

	"github.com/linusg/libjs-test262/realm"
)

func TestHostGlobalIsGlobalThis(t *testing.T) {
	r := realm.New()
	if !runBool(t, r, `$262.global === globalThis`) {
		t.Error("$262.global should be the realm's global object")
	}
}

func TestHostGCDefaultsToUndefined(t *testing.T) {
	r := realm.New()
	if got := runString(t, r, `typeof $262.gc`); got != "undefined" {
		t.Errorf("expected undefined, got %q", got)
	}
}

func TestEvalScriptSharesGlobals(t *testing.T) {
	r := realm.New()
	v := run(t, r, `$262.evalScript("var x = 7;"); x;`)
	if v.ToInteger() != 7 {
		t.Errorf("expected 7, got %v", v)
	}
}

func TestEvalScriptSeesEarlierDeclarations(t *testing.T) {
	r := realm.New()
	v := run(t, r, `var base = 40; $262.evalScript("var sum = base + 2;"); sum;`)
	if v.ToInteger() != 42 {
		t.Errorf("expected 42, got %v", v)
	}
}

func TestEvalScriptReturnsUndefined(t *testing.T) {
	r := realm.New()
	if !runBool(t, r, `$262.evalScript("1 + 1") === undefined`) {
		t.Error("evalScript should complete with undefined")
	}
}

func TestEvalScriptParseErrorThrowsSyntaxError(t *testing.T) {
	r := realm.New()
	got := runString(t, r, `
(function () {
	try {
		$262.evalScript("var (");
	} catch (e) {
		return e instanceof SyntaxError ? "syntax" : "other";
	}
	return "no error";
})();
`)
	if got != "syntax" {
		t.Errorf("expected syntax, got %q", got)
	}
}

func TestEvalScriptRethrowsSameValue(t *testing.T) {
	r := realm.New()
	if !runBool(t, r, `
var token = { marker: 1 };
var caught = null;
try {
	$262.evalScript("throw token;");
} catch (e) {
	caught = e;
}
caught === token;
`) {
		t.Error("a runtime exception should propagate with its identity intact")
	}
}

func TestDetachArrayBufferReturnsNull(t *testing.T) {
	r := realm.New()
	v := run(t, r, `$262.detachArrayBuffer(new ArrayBuffer(8))`)
	if !goja.IsNull(v) {
		t.Errorf("expected null, got %v", v)
	}
}

func TestDetachArrayBufferTwiceThrows(t *testing.T) {
	r := realm.New()
	got := runString(t, r, `
var b = new ArrayBuffer(8);
$262.detachArrayBuffer(b);
(function () {
	try {
		$262.detachArrayBuffer(b);
	} catch (e) {
		return e instanceof TypeError ? "type-error" : "other";
	}
	return "no error";
})();
`)
	if got != "type-error" {
		t.Errorf("expected type-error, got %q", got)
	}
}

func TestDetachArrayBufferRejectsNonBuffer(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"plain object", "{}"},
		{"number", "3"},
		{"string", `"buf"`},
		{"missing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := realm.New()
			src := fmt.Sprintf(`
(function () {
	try {
		$262.detachArrayBuffer(%s);
	} catch (e) {
		return e instanceof TypeError ? "type-error" : "other";
	}
	return "no error";
})();
`, tt.arg)
			if got := runString(t, r, src); got != "type-error" {
				t.Errorf("expected type-error, got %q", got)
			}
		})
	}
}

func TestDetachArrayBufferKeyMismatch(t *testing.T) {
	r := realm.New()
	buf := run(t, r, `var b = new ArrayBuffer(8); b;`).(*goja.Object)

	if err := r.SetDetachKey(buf, r.Runtime().ToValue("secret")); err != nil {
		t.Fatalf("SetDetachKey failed: %v", err)
	}

	got := runString(t, r, `
(function () {
	try {
		$262.detachArrayBuffer(b);
	} catch (e) {
		return e instanceof TypeError ? "type-error" : "other";
	}
	return "no error";
})();
`)
	if got != "type-error" {
		t.Errorf("expected type-error without the key, got %q", got)
	}

	v := run(t, r, `$262.detachArrayBuffer(b, "secret")`)
	if !goja.IsNull(v) {
		t.Errorf("expected null with the matching key, got %v", v)
	}
}

func TestSetDetachKeyRejectsNonBuffer(t *testing.T) {
	r := realm.New()
	obj := run(t, r, `({})`).(*goja.Object)

	if err := r.SetDetachKey(obj, goja.Undefined()); err == nil {
		t.Error("expected an error for a non-ArrayBuffer object")
	}
}

func TestClearKeptObjects(t *testing.T) {
	r := realm.New()
	if !runBool(t, r, `$262.clearKeptObjects() === undefined`) {
		t.Error("clearKeptObjects should complete with undefined")
	}
}
