package analysis

import (
	"testing"

	"shroud/internal/model"
)

func callTo(params int, hasThis, returns bool) *model.Instruction {
	return &model.Instruction{Op: model.Call, Operand: &model.MemberRef{
		Name:       "Target",
		ParamCount: params,
		HasThis:    hasThis,
		Returns:    returns,
	}}
}

func method(body ...*model.Instruction) *model.MethodDef {
	m := model.NewModule("App")
	t := m.AddType("Ns", "Holder")
	md := t.AddMethod("Run")
	md.Body = body
	return md
}

func TestTraceArguments_DirectProducers(t *testing.T) {
	md := method(
		&model.Instruction{Op: model.Ldstr, Operand: "name"},
		&model.Instruction{Op: model.Ldc, Operand: int64(1)},
		callTo(2, false, false),
	)

	got, err := StackTracer{}.TraceArguments(md, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 0}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("producers = %v, want %v", got, want)
	}
}

func TestTraceArguments_SkipsNestedCall(t *testing.T) {
	// The inner call consumes the ldtoken and pushes its own result, so the
	// outer call's second argument is still the ldstr at index 0.
	md := method(
		&model.Instruction{Op: model.Ldstr, Operand: "Clicked"},
		&model.Instruction{Op: model.Ldtoken, Operand: &model.MemberRef{Name: "Widget"}},
		callTo(1, false, true),
		callTo(2, false, false),
	)

	got, err := StackTracer{}.TraceArguments(md, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Errorf("producers = %v, want [2 0]", got)
	}
}

func TestTraceArguments_DupProducesBothSlots(t *testing.T) {
	md := method(
		&model.Instruction{Op: model.Ldstr, Operand: "x"},
		&model.Instruction{Op: model.Dup},
		callTo(2, false, false),
	)

	got, err := StackTracer{}.TraceArguments(md, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 1 {
		t.Errorf("producers = %v, want [1 1]", got)
	}
}

func TestTraceArguments_ThisSlotCounts(t *testing.T) {
	md := method(
		&model.Instruction{Op: model.Ldarg, Operand: int64(0)},
		&model.Instruction{Op: model.Ldstr, Operand: "name"},
		&model.Instruction{Op: model.Callvirt, Operand: &model.MemberRef{
			Name: "Target", ParamCount: 1, HasThis: true,
		}},
	)

	got, err := StackTracer{}.TraceArguments(md, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 0 {
		t.Errorf("producers = %v, want [1 0]", got)
	}
}

func TestTraceArguments_NoArguments(t *testing.T) {
	md := method(callTo(0, false, false))
	got, err := StackTracer{}.TraceArguments(md, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected no producers, got %v", got)
	}
}

func TestTraceArguments_Failures(t *testing.T) {
	md := method(callTo(1, false, false))
	tracer := StackTracer{}

	if _, err := tracer.TraceArguments(md, 0); err == nil {
		t.Error("underflow must report an error")
	}
	if _, err := tracer.TraceArguments(md, 5); err == nil {
		t.Error("out-of-range index must report an error")
	}
}
