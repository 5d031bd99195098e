// # internal/analysis/trace.go
package analysis

import (
	"fmt"

	"shroud/internal/model"
)

// TraceService resolves, for one instruction in a method body, the indices
// of the instructions that produced its consumed stack arguments.
type TraceService interface {
	TraceArguments(m *model.MethodDef, index int) ([]int, error)
}

// StackTracer is the default TraceService: it replays stack depths
// backward from the instruction, attributing each consumed slot to the
// nearest earlier instruction whose pushes reach down to that slot. It
// assumes a single basic block between producer and consumer, which holds
// for the compiler-emitted registration patterns this pipeline traces;
// anything else reports a failure and the caller falls back to a warning.
type StackTracer struct{}

func (StackTracer) TraceArguments(m *model.MethodDef, index int) ([]int, error) {
	if index < 0 || index >= len(m.Body) {
		return nil, fmt.Errorf("instruction index %d out of range", index)
	}
	need := m.Body[index].Pops()
	if need == 0 {
		return nil, nil
	}

	producers := make([]int, 0, need)
	depth := 0
	for i := index - 1; i >= 0 && len(producers) < need; i-- {
		ins := m.Body[i]
		pushes := ins.Pushes()
		for p := 0; p < pushes && len(producers) < need; p++ {
			if depth > 0 {
				depth--
				continue
			}
			producers = append(producers, i)
		}
		depth += ins.Pops()
	}
	if len(producers) < need {
		return nil, fmt.Errorf("cannot resolve %d stack argument(s)", need-len(producers))
	}
	return producers, nil
}
