package realm_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/linusg/libjs-test262/realm"
)

func TestAgentMonotonicNowIsNumber(t *testing.T) {
	r := realm.New()
	if got := runString(t, r, `typeof $262.agent.monotonicNow()`); got != "number" {
		t.Errorf("expected number, got %q", got)
	}
}

func TestAgentMonotonicNowNonDecreasing(t *testing.T) {
	r := realm.New()
	if !runBool(t, r, `
var a = $262.agent.monotonicNow();
var b = $262.agent.monotonicNow();
b >= a;
`) {
		t.Error("monotonicNow went backwards")
	}
}

func TestAgentSleepBlocks(t *testing.T) {
	r := realm.New()

	start := time.Now()
	run(t, r, `$262.agent.sleep(50)`)
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("sleep(50) returned after %v", elapsed)
	}
}

func TestAgentSleepIgnoresNonPositive(t *testing.T) {
	r := realm.New()
	if !runBool(t, r, `$262.agent.sleep(0) === undefined && $262.agent.sleep(-5) === undefined`) {
		t.Error("sleep should complete with undefined")
	}
}

func TestAgentCoordinationUnsupported(t *testing.T) {
	for _, name := range []string{"broadcast", "getReport", "start"} {
		t.Run(name, func(t *testing.T) {
			r := realm.New()
			src := fmt.Sprintf(`
(function () {
	try {
		$262.agent.%s();
	} catch (e) {
		return e instanceof TypeError ? "type-error" : "other";
	}
	return "no error";
})();
`, name)
			if got := runString(t, r, src); got != "type-error" {
				t.Errorf("expected type-error, got %q", got)
			}
		})
	}
}
