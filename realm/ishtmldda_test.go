package realm_test

import (
	"testing"

	"github.com/dop251/goja"

	"github.com/linusg/libjs-test262/realm"
)

func TestIsHTMLDDACall(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no arguments", `$262.IsHTMLDDA()`, "null"},
		{"empty string", `$262.IsHTMLDDA("")`, "null"},
		{"non-empty string", `$262.IsHTMLDDA("x")`, "undefined"},
		{"number", `$262.IsHTMLDDA(0)`, "undefined"},
		{"object", `$262.IsHTMLDDA({})`, "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := realm.New()
			v := run(t, r, tt.src)
			switch tt.want {
			case "null":
				if !goja.IsNull(v) {
					t.Errorf("expected null, got %v", v)
				}
			case "undefined":
				if !goja.IsUndefined(v) {
					t.Errorf("expected undefined, got %v", v)
				}
			}
		})
	}
}

func TestIsHTMLDDAConstructThrows(t *testing.T) {
	r := realm.New()
	got := runString(t, r, `
(function () {
	try {
		new $262.IsHTMLDDA();
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
