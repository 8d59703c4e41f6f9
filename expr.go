package kismetdc

// Expr is one node of the expression IR: the byte offset at which its
// opcode began, paired with its typed kind. Sub-expressions are owned;
// ownership is strictly tree-shaped — no sharing, no cycles. The offset is
// the stable label jumps and branches refer to.
type Expr struct {
	Offset BytecodeOffset
	Kind   ExprKind
}

// ExprKind is implemented by every concrete expression variant. It has no
// methods beyond the marker below — callers type-switch on the concrete
// type, the idiomatic Go rendering of a closed tagged union.
type ExprKind interface {
	isExprKind()
}

type exprKind struct{}

func (exprKind) isExprKind() {}

// ---- Leaves ----

type LocalVariable struct {
	exprKind
	Property PropertyRef
}

type InstanceVariable struct {
	exprKind
	Property PropertyRef
}

type DefaultVariable struct {
	exprKind
	Property PropertyRef
}

type LocalOutVariable struct {
	exprKind
	Property PropertyRef
}

type ClassSparseDataVariable struct {
	exprKind
	Property PropertyRef
}

type PropertyConst struct {
	exprKind
	Property PropertyRef
}

type ObjectConst struct {
	exprKind
	Object ObjectRef
}

type IntConst struct {
	exprKind
	Value int32
}

type Int64Const struct {
	exprKind
	Value int64
}

type UInt64Const struct {
	exprKind
	Value uint64
}

type FloatConst struct {
	exprKind
	Value float32
}

type ByteConst struct {
	exprKind
	Value byte
}

type IntConstByte struct {
	exprKind
	Value byte
}

type StringConst struct {
	exprKind
	Value string
}

type UnicodeStringConst struct {
	exprKind
	Value string
}

type NameConst struct {
	exprKind
	Value Name
}

type VectorConst struct {
	exprKind
	X, Y, Z float32
}

type RotationConst struct {
	exprKind
	Pitch, Yaw, Roll float32
}

// TransformConst holds the ten floats of an FTransform: rotation
// quaternion (4), translation (3), scale (3).
type TransformConst struct {
	exprKind
	Values [10]float32
}

type True struct{ exprKind }
type False struct{ exprKind }
type IntZero struct{ exprKind }
type IntOne struct{ exprKind }
type NoObject struct{ exprKind }
type NoInterface struct{ exprKind }
type Self struct{ exprKind }
type Nothing struct{ exprKind }
type NothingInt32 struct{ exprKind }
type Breakpoint struct{ exprKind }
type Tracepoint struct{ exprKind }
type WireTracepoint struct{ exprKind }
type EndOfScript struct{ exprKind }

type SkipOffsetConst struct {
	exprKind
	Target BytecodeOffset
}

type InstanceDelegate struct {
	exprKind
	Value Name
}

// ---- Assignments ----

// Let and its Let* siblings share one shape: an assignment of Value into
// Variable. The bytecode does not separately encode a property address for
// these opcodes (see DESIGN.md Decision D-Let); Property, when populated,
// is simply the PropertyRef the parser found by inspecting Variable's own
// kind.
type Let struct {
	exprKind
	Property PropertyRef
	Variable Expr
	Value    Expr
}

type LetObj struct {
	exprKind
	Variable Expr
	Value    Expr
}

type LetWeakObjPtr struct {
	exprKind
	Variable Expr
	Value    Expr
}

type LetBool struct {
	exprKind
	Variable Expr
	Value    Expr
}

type LetDelegate struct {
	exprKind
	Variable Expr
	Value    Expr
}

type LetMulticastDelegate struct {
	exprKind
	Variable Expr
	Value    Expr
}

type LetValueOnPersistentFrame struct {
	exprKind
	Variable Expr
	Value    Expr
}

// ---- Control flow ----

type Return struct {
	exprKind
	Sub Expr
}

type Jump struct {
	exprKind
	Target BytecodeOffset
}

type JumpIfNot struct {
	exprKind
	Condition Expr
	Target    BytecodeOffset
}

type ComputedJump struct {
	exprKind
	OffsetExpr Expr
}

// SwitchCase is one arm of a SwitchValue. SkipOffset is the absolute target
// of the next case's start: the parser preserves it but the structurer
// ignores it — arm boundaries are recovered from the expression tree, not
// from skip offsets.
type SwitchCase struct {
	CaseValue  Expr
	SkipOffset BytecodeOffset
	Result     Expr
}

type SwitchValue struct {
	exprKind
	Index     Expr
	Cases     []SwitchCase
	Default   Expr
	EndOffset BytecodeOffset
}

type PushExecutionFlow struct {
	exprKind
	PushOffset BytecodeOffset
}

type PopExecutionFlow struct{ exprKind }

type PopExecutionFlowIfNot struct {
	exprKind
	Condition Expr
}

type Assert struct {
	exprKind
	Line      uint16
	InDebug   bool
	Condition Expr
}

// ---- Call / member ----

type VirtualFunction struct {
	exprKind
	Func FunctionRef
	Args []Expr
}

type FinalFunction struct {
	exprKind
	Func FunctionRef
	Args []Expr
}

type LocalVirtualFunction struct {
	exprKind
	Func FunctionRef
	Args []Expr
}

type LocalFinalFunction struct {
	exprKind
	Func FunctionRef
	Args []Expr
}

type CallMath struct {
	exprKind
	Func FunctionRef
	Args []Expr
}

type Context struct {
	exprKind
	Object     Expr
	SkipOffset BytecodeOffset
	Field      Address
	Inner      Expr
	FailSilent bool
}

type ClassContext struct {
	exprKind
	Object     Expr
	SkipOffset BytecodeOffset
	Field      Address
	Inner      Expr
}

type StructMemberContext struct {
	exprKind
	Property PropertyRef
	Struct   Expr
}

type InterfaceContext struct {
	exprKind
	Value Expr
}

// ---- Casts ----

type DynamicCast struct {
	exprKind
	Class  ClassRef
	Target Expr
}

type MetaCast struct {
	exprKind
	Class  ClassRef
	Target Expr
}

type PrimitiveCast struct {
	exprKind
	CastType byte
	Target   Expr
}

type ObjToInterfaceCast struct {
	exprKind
	Class  ClassRef
	Target Expr
}

type InterfaceToObjCast struct {
	exprKind
	Class  ClassRef
	Target Expr
}

type CrossInterfaceCast struct {
	exprKind
	Class  ClassRef
	Target Expr
}

// ---- Aggregates ----

type ArrayConst struct {
	exprKind
	InnerProperty PropertyRef
	Elements      []Expr
}

type StructConst struct {
	exprKind
	Struct   StructRef
	Elements []Expr
}

type SetConst struct {
	exprKind
	InnerProperty PropertyRef
	Elements      []Expr
}

type MapConst struct {
	exprKind
	KeyProperty   PropertyRef
	ValueProperty PropertyRef
	Elements      []Expr
}

type SetArray struct {
	exprKind
	Target   Expr
	Elements []Expr
}

type SetSet struct {
	exprKind
	Target   Expr
	Elements []Expr
}

type SetMap struct {
	exprKind
	Target   Expr
	Elements []Expr
}

type ArrayGetByRef struct {
	exprKind
	Array Expr
	Index Expr
}

// ---- Text ----

// TextLiteral is the closed union of TextConst payloads.
type TextLiteral interface {
	isTextLiteral()
}

type textLiteral struct{}

func (textLiteral) isTextLiteral() {}

type TextLiteralEmpty struct{ textLiteral }

type TextLiteralLocalized struct {
	textLiteral
	Source    Expr
	Key       Expr
	Namespace Expr
}

type TextLiteralInvariant struct {
	textLiteral
	Source Expr
}

type TextLiteralLiteralString struct {
	textLiteral
	Value Expr
}

type TextLiteralStringTableEntry struct {
	textLiteral
	Table     Expr
	Key       Expr
	SourceStr Expr
}

type TextConst struct {
	exprKind
	Literal TextLiteral
}

// ---- Delegates ----

type BindDelegate struct {
	exprKind
	FunctionName Name
	Delegate     Expr
	Object       Expr
}

type AddMulticastDelegate struct {
	exprKind
	Delegate Expr
	Value    Expr
}

type RemoveMulticastDelegate struct {
	exprKind
	Delegate Expr
	Value    Expr
}

type ClearMulticastDelegate struct {
	exprKind
	Delegate Expr
}

type CallMulticastDelegate struct {
	exprKind
	Func     FunctionRef
	Delegate Expr
	Args     []Expr
}

// ---- Instrumentation ----

type InstrumentationEvent struct {
	exprKind
	EventType byte
}

// ---- Unknown / catch-all ----

// Unknown wraps an opcode byte outside the documented table.
type Unknown struct {
	exprKind
	Byte byte
}
