package refs

import (
	"strings"
	"testing"

	"shroud/internal/model"
)

func TestDirectMetadata_ApplyIdempotent(t *testing.T) {
	mr := &model.MemberRef{Name: "Render"}
	r := &Reference{Kind: DirectMetadata, Member: mr}

	if !r.Apply("Render", "a") {
		t.Fatal("first apply should mutate")
	}
	if mr.Name != "a" {
		t.Fatalf("operand not rewritten: %q", mr.Name)
	}
	if r.Apply("Render", "a") {
		t.Error("second apply should be a no-op")
	}
}

func TestAttributeArgument_NamedArg(t *testing.T) {
	na := &model.NamedArg{Name: "Title"}
	r := &Reference{Kind: AttributeArgument, NamedArg: na}

	if !r.Apply("Title", "b") {
		t.Fatal("expected mutation")
	}
	if na.Name != "b" {
		t.Errorf("named arg not rewritten: %q", na.Name)
	}
}

func TestAttributeArgument_TypeValue(t *testing.T) {
	m := model.NewModule("App")
	typ := m.AddType("App", "Widget")
	tv := &model.TypeValue{Sig: model.DefSig{Type: typ}, Serialized: "App.Widget"}
	r := &Reference{Kind: AttributeArgument, TypeValue: tv}

	typ.SetName("a")
	if !r.Apply("Widget", "a") {
		t.Fatal("expected serialized name refresh")
	}
	if tv.Serialized != "App.a" {
		t.Errorf("serialized = %q, want App.a", tv.Serialized)
	}
	if r.Apply("Widget", "a") {
		t.Error("refresh should be a no-op once in sync")
	}
}

func TestMarkupPropertyPath_Apply(t *testing.T) {
	m := model.NewModule("App")
	typ := m.AddType("App.Views", "Widget")
	cell := "(App.Views.Widget.Title)"
	dirty := false
	r := &Reference{
		Kind:    MarkupPropertyPath,
		Cell:    &cell,
		Type:    typ,
		Segment: "Title",
		Dirty:   &dirty,
	}

	if !r.Apply("Widget", "ab") {
		t.Fatal("expected mutation")
	}
	if cell != "(App.Views.ab.Title)" {
		t.Errorf("cell = %q", cell)
	}
	if !dirty {
		t.Error("dirty flag not raised")
	}
	if r.Apply("Widget", "ab") {
		t.Error("no-op detection failed")
	}
}

func TestMarkupPropertyPath_PrefixForm(t *testing.T) {
	m := model.NewModule("App")
	typ := m.AddType("App.Views", "Widget")
	cell := "(v:Widget.Title)"
	r := &Reference{
		Kind:    MarkupPropertyPath,
		Cell:    &cell,
		Type:    typ,
		Segment: "Title",
		Prefix:  "v",
	}

	r.Apply("Widget", "ab")
	if cell != "(v:ab.Title)" {
		t.Errorf("cell = %q", cell)
	}
}

func TestMarkupPropertyPath_PropertyTarget(t *testing.T) {
	m := model.NewModule("App")
	typ := m.AddType("App.Views", "Widget")
	cell := "(App.Views.Widget.Title)"
	r := &Reference{
		Kind:           MarkupPropertyPath,
		Cell:           &cell,
		Type:           typ,
		Segment:        "Title",
		TargetProperty: true,
	}

	r.Apply("Title", "q")
	if cell != "(App.Views.Widget.q)" {
		t.Errorf("cell = %q", cell)
	}
}

func TestMarkupPropertyPath_PropertyCommitsBeforeType(t *testing.T) {
	m := model.NewModule("App")
	typ := m.AddType("App", "Widget")
	cell := "(App.Widget.Title)"
	typeRef := &Reference{Kind: MarkupPropertyPath, Cell: &cell, Type: typ, Segment: "Title"}
	propRef := &Reference{
		Kind: MarkupPropertyPath, Cell: &cell, Type: typ,
		Segment: "Title", TargetProperty: true,
	}

	// The property's rename lands first; the type's later rewrite must keep
	// it instead of restoring the segment captured at registration.
	if !propRef.Apply("Title", "q") {
		t.Fatal("expected property rewrite")
	}
	if !typeRef.Apply("Widget", "z") {
		t.Fatal("expected type rewrite")
	}
	if cell != "(App.z.q)" {
		t.Errorf("cell = %q, want (App.z.q)", cell)
	}
}

func TestMarkupIndexerPath_Apply(t *testing.T) {
	m := model.NewModule("App")
	typ := m.AddType("App.Views", "Widget")
	cell := "[App.Views.Widget]"
	r := &Reference{Kind: MarkupIndexerPath, Cell: &cell, Type: typ}

	if !r.Apply("Widget", "zz") {
		t.Fatal("expected mutation")
	}
	if cell != "[App.Views.zz]" {
		t.Errorf("cell = %q", cell)
	}
}

func TestMarkupString_AcceptAndApply(t *testing.T) {
	ins := &model.Instruction{Op: model.Ldstr, Operand: "/App;component/views/main.xaml"}
	r := &Reference{Kind: MarkupString, Instr: ins, PrefixLen: len("/App;component/")}

	if !r.CanVeto() {
		t.Fatal("markup string references must be able to veto")
	}
	// The site holds the .xaml variant; the document's decoded name is the
	// compiled .baml form.
	if !r.Accept("views/main.baml", "views/ab.baml") {
		t.Fatal("extension variant should be accepted")
	}
	if r.Accept("views/other.baml", "views/ab.baml") {
		t.Error("mismatched path must be refused")
	}

	if !r.Apply("views/main.baml", "views/ab.baml") {
		t.Fatal("expected mutation")
	}
	// The site keeps its own extension.
	if got := ins.Operand.(string); got != "/App;component/views/ab.xaml" {
		t.Errorf("operand = %q", got)
	}
}

func TestDescribe_HashesNames(t *testing.T) {
	mr := &model.MemberRef{Name: "VerySecretName"}
	r := &Reference{Kind: DirectMetadata, Member: mr}

	d := r.Describe()
	if strings.Contains(d, "VerySecretName") {
		t.Errorf("describe leaked the raw name: %q", d)
	}
	if !strings.HasPrefix(d, "metadata:") {
		t.Errorf("describe missing kind tag: %q", d)
	}
	if d != r.Describe() {
		t.Error("describe must be stable")
	}
}

func TestResolveField_DeclaringChain(t *testing.T) {
	m := model.NewModule("App")
	outer := m.AddType("App", "Outer")
	inner := outer.AddNested("Inner")
	f := outer.AddField("flag", model.RefSig{Namespace: "System", Name: "Boolean"})

	got := ResolveField(inner, "flag", model.RefSig{Namespace: "System", Name: "Boolean"})
	if got != f {
		t.Error("field lookup should walk the declaring-type chain")
	}
	if ResolveField(inner, "flag", model.RefSig{Namespace: "System", Name: "Int32"}) != nil {
		t.Error("signature mismatch should not resolve")
	}
}

func TestResolveProperty_BaseChain(t *testing.T) {
	m := model.NewModule("App")
	base := m.AddType("App", "Base")
	derived := m.AddType("App", "Derived")
	derived.BaseType = base
	p := base.AddProperty("Title", model.RefSig{Namespace: "System", Name: "String"})

	got := ResolveProperty(derived, "Title", model.RefSig{Namespace: "System", Name: "String"})
	if got != p {
		t.Error("property lookup should walk the base-type chain")
	}
	if ResolveProperty(derived, "Missing", nil) != nil {
		t.Error("exhausted chain must return nil")
	}
}
