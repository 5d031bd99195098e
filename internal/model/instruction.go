// # internal/model/instruction.go
package model

type OpCode int

const (
	Nop OpCode = iota
	Ldstr
	Ldnull
	Ldc
	Dup
	Pop
	Ldarg
	Ldloc
	Stloc
	Ldsfld
	Stsfld
	Ldtoken
	Call
	Callvirt
	Newobj
	Ret
)

func (op OpCode) String() string {
	switch op {
	case Nop:
		return "nop"
	case Ldstr:
		return "ldstr"
	case Ldnull:
		return "ldnull"
	case Ldc:
		return "ldc"
	case Dup:
		return "dup"
	case Pop:
		return "pop"
	case Ldarg:
		return "ldarg"
	case Ldloc:
		return "ldloc"
	case Stloc:
		return "stloc"
	case Ldsfld:
		return "ldsfld"
	case Stsfld:
		return "stsfld"
	case Ldtoken:
		return "ldtoken"
	case Call:
		return "call"
	case Callvirt:
		return "callvirt"
	case Newobj:
		return "newobj"
	case Ret:
		return "ret"
	}
	return "op?"
}

// Instruction is one element of a method's stack-based instruction stream.
// Operand is a string for Ldstr, a *MemberRef for call/field opcodes, and
// an int64 for Ldc.
type Instruction struct {
	Op      OpCode
	Operand any
}

// String returns the Ldstr operand, or "" if the instruction does not load
// a string literal.
func (i *Instruction) String() (string, bool) {
	if i.Op != Ldstr {
		return "", false
	}
	s, ok := i.Operand.(string)
	return s, ok
}

// MemberRef returns the member operand, or nil.
func (i *Instruction) MemberRef() *MemberRef {
	m, _ := i.Operand.(*MemberRef)
	return m
}

// Pops reports how many stack slots the instruction consumes.
func (i *Instruction) Pops() int {
	switch i.Op {
	case Pop, Stloc, Stsfld, Ret:
		return 1
	case Dup:
		return 1
	case Call, Callvirt, Newobj:
		if m := i.MemberRef(); m != nil {
			n := m.ParamCount
			if i.Op != Newobj && m.HasThis {
				n++
			}
			return n
		}
		return 0
	}
	return 0
}

// Pushes reports how many stack slots the instruction produces.
func (i *Instruction) Pushes() int {
	switch i.Op {
	case Ldstr, Ldnull, Ldc, Ldarg, Ldloc, Ldsfld, Ldtoken:
		return 1
	case Dup:
		return 2
	case Newobj:
		return 1
	case Call, Callvirt:
		if m := i.MemberRef(); m != nil && m.Returns {
			return 1
		}
		return 0
	}
	return 0
}

// MemberRef is a use-site reference to a member, carrying the declaring
// type as a signature. References through a generic instantiation keep the
// open definition in Resolved and the closed form in Declaring.
type MemberRef struct {
	Name       string
	Declaring  TypeSig
	Resolved   Symbol
	HasThis    bool
	ParamCount int
	Returns    bool
	// IsArrayAccessor marks synthesized array pseudo-accessors (Get, Set,
	// Address on array types); they carry no renamable identity.
	IsArrayAccessor bool
}
