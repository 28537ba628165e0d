package realm

import (
	"time"

	"github.com/dop251/goja"
)

// agentEpoch anchors monotonicNow. time.Since reads the monotonic clock,
// so timestamps never decrease within a process.
var agentEpoch = time.Now()

// newAgentObject builds the per-realm $262.agent object. The harness
// hosts exactly one agent, so the multi-agent coordination surface
// (broadcast, getReport, start) is installed as explicit failures rather
// than left off entirely; a test that needs siblings dies with a clear
// message instead of a ReferenceError.
func (r *Realm) newAgentObject() *goja.Object {
	agent := r.vm.NewObject()
	must(agent.Set("monotonicNow", r.agentMonotonicNow))
	must(agent.Set("sleep", r.agentSleep))
	must(agent.Set("broadcast", r.agentUnsupported("broadcast")))
	must(agent.Set("getReport", r.agentUnsupported("getReport")))
	must(agent.Set("start", r.agentUnsupported("start")))
	return agent
}

func (r *Realm) agentMonotonicNow(goja.FunctionCall) goja.Value {
	ms := float64(time.Since(agentEpoch)) / float64(time.Millisecond)
	return r.vm.ToValue(ms)
}

// agentSleep blocks the calling thread. The execution model is strictly
// single-threaded and single-agent, so there is nothing else for the
// process to do while the script sleeps.
func (r *Realm) agentSleep(call goja.FunctionCall) goja.Value {
	ms := int32(call.Argument(0).ToInteger())
	if ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
	return goja.Undefined()
}

func (r *Realm) agentUnsupported(name string) func(goja.FunctionCall) goja.Value {
	return func(goja.FunctionCall) goja.Value {
		panic(r.vm.NewTypeError("agent.%s is not supported in a single-agent host", name))
	}
}
