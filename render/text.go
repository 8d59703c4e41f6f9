package render

import (
	"fmt"
	"strconv"
	"strings"

	"kismetdc"
)

// Text walks a structured tree and renders it as C-like pseudo-code. idx is
// used to resolve property/object/function addresses to display names;
// when nil, bare addresses are printed instead.
func Text(tree *kismetdc.Node, idx *kismetdc.AddressIndex) string {
	r := &renderer{idx: idx}
	var sb strings.Builder
	r.node(&sb, tree, 0)
	return sb.String()
}

type renderer struct {
	idx *kismetdc.AddressIndex
}

func (r *renderer) indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("    ", depth))
}

func (r *renderer) node(sb *strings.Builder, n *kismetdc.Node, depth int) {
	if n == nil {
		return
	}
	switch n.Kind {
	case kismetdc.NodeSeq:
		for _, c := range n.Children {
			r.node(sb, c, depth)
		}
	case kismetdc.NodeIf:
		r.indent(sb, depth)
		fmt.Fprintf(sb, "if (%s) {\n", r.expr(n.Condition))
		r.node(sb, n.Then, depth+1)
		r.indent(sb, depth)
		if n.Else != nil {
			sb.WriteString("} else {\n")
			r.node(sb, n.Else, depth+1)
			r.indent(sb, depth)
		}
		sb.WriteString("}\n")
	case kismetdc.NodeWhile:
		r.indent(sb, depth)
		fmt.Fprintf(sb, "while (%s) {\n", r.expr(n.HeaderCond))
		r.node(sb, n.Body, depth+1)
		r.indent(sb, depth)
		sb.WriteString("}\n")
	case kismetdc.NodeDoWhile:
		r.indent(sb, depth)
		sb.WriteString("do {\n")
		r.node(sb, n.Body, depth+1)
		r.indent(sb, depth)
		if n.HeaderCond.Kind != nil {
			fmt.Fprintf(sb, "} while (%s);\n", r.expr(n.HeaderCond))
		} else {
			sb.WriteString("} while (true);\n")
		}
	case kismetdc.NodeSwitch:
		r.indent(sb, depth)
		fmt.Fprintf(sb, "switch (%s) {\n", r.expr(n.Discriminant))
		for _, arm := range n.Cases {
			r.indent(sb, depth+1)
			fmt.Fprintf(sb, "case %s:\n", r.expr(arm.Value))
			r.node(sb, arm.Body, depth+2)
		}
		r.indent(sb, depth+1)
		sb.WriteString("default:\n")
		r.node(sb, n.Default, depth+2)
		r.indent(sb, depth)
		sb.WriteString("}\n")
	case kismetdc.NodeBreak:
		r.indent(sb, depth)
		sb.WriteString("break;\n")
	case kismetdc.NodeContinue:
		r.indent(sb, depth)
		sb.WriteString("continue;\n")
	case kismetdc.NodeGoto:
		r.indent(sb, depth)
		fmt.Fprintf(sb, "goto block_%d;\n", n.Label)
	case kismetdc.NodeExprStmt:
		r.indent(sb, depth)
		fmt.Fprintf(sb, "%s;\n", r.expr(n.ExprStmt))
	case kismetdc.NodeBlockLeaf:
		r.block(sb, n, depth)
	}
}

// block renders a leaf block's statements. The trailing control-flow
// instruction a terminator was lowered from (Jump, JumpIfNot,
// ComputedJump, PopExecutionFlow[IfNot], EndOfScript) is already expressed
// by the enclosing node shape, so it is not re-emitted as a bare
// statement.
func (r *renderer) block(sb *strings.Builder, n *kismetdc.Node, depth int) {
	if n.Block == nil {
		return
	}
	for _, stmt := range n.Block.Statements {
		switch stmt.Kind.(type) {
		case kismetdc.Jump, kismetdc.JumpIfNot, kismetdc.ComputedJump,
			kismetdc.PopExecutionFlow, kismetdc.PopExecutionFlowIfNot,
			kismetdc.EndOfScript:
			continue
		default:
			r.indent(sb, depth)
			fmt.Fprintf(sb, "%s;\n", r.expr(stmt))
		}
	}
}

// expr renders a single expression as an inline C-like fragment.
func (r *renderer) expr(e kismetdc.Expr) string {
	switch k := e.Kind.(type) {
	case kismetdc.IntConst:
		return strconv.FormatInt(int64(k.Value), 10)
	case kismetdc.Int64Const:
		return strconv.FormatInt(k.Value, 10)
	case kismetdc.UInt64Const:
		return strconv.FormatUint(k.Value, 10)
	case kismetdc.FloatConst:
		return strconv.FormatFloat(float64(k.Value), 'g', -1, 32)
	case kismetdc.ByteConst:
		return strconv.Itoa(int(k.Value))
	case kismetdc.IntConstByte:
		return strconv.Itoa(int(k.Value))
	case kismetdc.StringConst:
		return strconv.Quote(k.Value)
	case kismetdc.UnicodeStringConst:
		return strconv.Quote(k.Value)
	case kismetdc.NameConst:
		return strconv.Quote(k.Value.String())
	case kismetdc.True:
		return "true"
	case kismetdc.False:
		return "false"
	case kismetdc.IntZero:
		return "0"
	case kismetdc.IntOne:
		return "1"
	case kismetdc.NoObject, kismetdc.NoInterface:
		return "nullptr"
	case kismetdc.Self:
		return "this"
	case kismetdc.Nothing, kismetdc.NothingInt32:
		return ""
	case kismetdc.LocalVariable:
		return r.property(k.Property)
	case kismetdc.InstanceVariable:
		return r.property(k.Property)
	case kismetdc.DefaultVariable:
		return r.property(k.Property)
	case kismetdc.LocalOutVariable:
		return r.property(k.Property)
	case kismetdc.ClassSparseDataVariable:
		return r.property(k.Property)
	case kismetdc.PropertyConst:
		return r.property(k.Property)
	case kismetdc.ObjectConst:
		return r.object(k.Object.Addr)
	case kismetdc.Return:
		return "return " + r.expr(k.Sub)
	case kismetdc.Let:
		return fmt.Sprintf("%s = %s", r.expr(k.Variable), r.expr(k.Value))
	case kismetdc.LetObj:
		return fmt.Sprintf("%s = %s", r.expr(k.Variable), r.expr(k.Value))
	case kismetdc.LetWeakObjPtr:
		return fmt.Sprintf("%s = %s", r.expr(k.Variable), r.expr(k.Value))
	case kismetdc.LetBool:
		return fmt.Sprintf("%s = %s", r.expr(k.Variable), r.expr(k.Value))
	case kismetdc.LetDelegate:
		return fmt.Sprintf("%s = %s", r.expr(k.Variable), r.expr(k.Value))
	case kismetdc.LetMulticastDelegate:
		return fmt.Sprintf("%s = %s", r.expr(k.Variable), r.expr(k.Value))
	case kismetdc.LetValueOnPersistentFrame:
		return fmt.Sprintf("%s = %s", r.expr(k.Variable), r.expr(k.Value))
	case kismetdc.CallMath:
		return r.call(k.Func, k.Args)
	case kismetdc.VirtualFunction:
		return r.call(k.Func, k.Args)
	case kismetdc.LocalVirtualFunction:
		return r.call(k.Func, k.Args)
	case kismetdc.FinalFunction:
		return r.call(k.Func, k.Args)
	case kismetdc.LocalFinalFunction:
		return r.call(k.Func, k.Args)
	case kismetdc.Context:
		return fmt.Sprintf("%s->%s", r.expr(k.Object), r.expr(k.Inner))
	case kismetdc.ClassContext:
		return fmt.Sprintf("%s->%s", r.expr(k.Object), r.expr(k.Inner))
	case kismetdc.StructMemberContext:
		return fmt.Sprintf("%s.%s", r.expr(k.Struct), r.property(k.Property))
	case kismetdc.InterfaceContext:
		return r.expr(k.Value)
	case kismetdc.DynamicCast:
		return fmt.Sprintf("Cast<%s>(%s)", r.classRef(k.Class), r.expr(k.Target))
	case kismetdc.MetaCast:
		return fmt.Sprintf("Cast<%s>(%s)", r.classRef(k.Class), r.expr(k.Target))
	case kismetdc.PrimitiveCast:
		return r.expr(k.Target)
	case kismetdc.ObjToInterfaceCast:
		return fmt.Sprintf("Cast<%s>(%s)", r.classRef(k.Class), r.expr(k.Target))
	case kismetdc.InterfaceToObjCast:
		return fmt.Sprintf("Cast<%s>(%s)", r.classRef(k.Class), r.expr(k.Target))
	case kismetdc.CrossInterfaceCast:
		return fmt.Sprintf("Cast<%s>(%s)", r.classRef(k.Class), r.expr(k.Target))
	case kismetdc.ArrayGetByRef:
		return fmt.Sprintf("%s[%s]", r.expr(k.Array), r.expr(k.Index))
	case kismetdc.SetArray:
		return fmt.Sprintf("%s = %s", r.expr(k.Target), r.list("{", "}", k.Elements))
	case kismetdc.SetSet:
		return fmt.Sprintf("%s = %s", r.expr(k.Target), r.list("{", "}", k.Elements))
	case kismetdc.SetMap:
		return fmt.Sprintf("%s = %s", r.expr(k.Target), r.list("{", "}", k.Elements))
	case kismetdc.SkipOffsetConst:
		return k.Target.String()
	case kismetdc.InstanceDelegate:
		return k.Value.String()
	case kismetdc.BindDelegate:
		return fmt.Sprintf("%s.BindDynamic(%s, %s)", r.expr(k.Delegate), r.expr(k.Object), k.FunctionName.String())
	case kismetdc.AddMulticastDelegate:
		return fmt.Sprintf("%s.Add(%s)", r.expr(k.Delegate), r.expr(k.Value))
	case kismetdc.RemoveMulticastDelegate:
		return fmt.Sprintf("%s.Remove(%s)", r.expr(k.Delegate), r.expr(k.Value))
	case kismetdc.ClearMulticastDelegate:
		return fmt.Sprintf("%s.Clear()", r.expr(k.Delegate))
	case kismetdc.CallMulticastDelegate:
		return fmt.Sprintf("%s.Broadcast(%s)", r.expr(k.Delegate), strings.Join(r.exprList(k.Args), ", "))
	case kismetdc.Assert:
		return fmt.Sprintf("assert(%s)", r.expr(k.Condition))
	case kismetdc.SwitchValue:
		return "<switch-value>"
	case kismetdc.ArrayConst:
		return r.list("{", "}", k.Elements)
	case kismetdc.SetConst:
		return r.list("{", "}", k.Elements)
	case kismetdc.MapConst:
		return r.list("{", "}", k.Elements)
	case kismetdc.StructConst:
		return r.list("{", "}", k.Elements)
	case kismetdc.VectorConst:
		return fmt.Sprintf("FVector(%s, %s, %s)", formatFloat(k.X), formatFloat(k.Y), formatFloat(k.Z))
	case kismetdc.RotationConst:
		return fmt.Sprintf("FRotator(%s, %s, %s)", formatFloat(k.Pitch), formatFloat(k.Yaw), formatFloat(k.Roll))
	case kismetdc.TransformConst:
		return "FTransform(...)"
	case kismetdc.TextConst:
		return r.textLiteral(k.Literal)
	case kismetdc.Jump:
		return fmt.Sprintf("goto %s", k.Target)
	case kismetdc.JumpIfNot:
		return fmt.Sprintf("if (!%s) goto %s", r.expr(k.Condition), k.Target)
	case kismetdc.ComputedJump:
		return fmt.Sprintf("goto *%s", r.expr(k.OffsetExpr))
	case kismetdc.PushExecutionFlow:
		return fmt.Sprintf("<push-flow %s>", k.PushOffset)
	case kismetdc.PopExecutionFlow:
		return "<pop-flow>"
	case kismetdc.PopExecutionFlowIfNot:
		return fmt.Sprintf("<pop-flow-if-not %s>", r.expr(k.Condition))
	case kismetdc.InstrumentationEvent:
		return fmt.Sprintf("<instrumentation 0x%02X>", k.EventType)
	case kismetdc.Breakpoint, kismetdc.Tracepoint, kismetdc.WireTracepoint, kismetdc.EndOfScript:
		return ""
	case kismetdc.Unknown:
		return fmt.Sprintf("<unknown-opcode 0x%02X>", k.Byte)
	default:
		return fmt.Sprintf("<%T>", k)
	}
}

func (r *renderer) list(open, close string, elements []kismetdc.Expr) string {
	return open + strings.Join(r.exprList(elements), ", ") + close
}

func (r *renderer) exprList(elements []kismetdc.Expr) []string {
	parts := make([]string, len(elements))
	for i, e := range elements {
		parts[i] = r.expr(e)
	}
	return parts
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func (r *renderer) textLiteral(lit kismetdc.TextLiteral) string {
	switch t := lit.(type) {
	case kismetdc.TextLiteralEmpty:
		return `""`
	case kismetdc.TextLiteralLocalized:
		return fmt.Sprintf("NSLOCTEXT(%s, %s, %s)", r.expr(t.Namespace), r.expr(t.Key), r.expr(t.Source))
	case kismetdc.TextLiteralInvariant:
		return fmt.Sprintf("INVTEXT(%s)", r.expr(t.Source))
	case kismetdc.TextLiteralLiteralString:
		return r.expr(t.Value)
	case kismetdc.TextLiteralStringTableEntry:
		return fmt.Sprintf("LOCTABLE(%s, %s)", r.expr(t.Table), r.expr(t.Key))
	default:
		return fmt.Sprintf("<%T>", t)
	}
}

func (r *renderer) call(fn kismetdc.FunctionRef, args []kismetdc.Expr) string {
	if fn.IsByName() {
		return r.callByName(fn.Name(), args)
	}
	path := r.functionPath(fn.Address())
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = r.expr(a)
	}
	if op, ok := TryOperator(path, parts); ok {
		return op
	}
	return path + "(" + strings.Join(parts, ", ") + ")"
}

func (r *renderer) callByName(name kismetdc.Name, args []kismetdc.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = r.expr(a)
	}
	return name.String() + "(" + strings.Join(parts, ", ") + ")"
}

func (r *renderer) property(p kismetdc.PropertyRef) string {
	if r.idx == nil {
		return p.Addr.String()
	}
	if info, ok := r.idx.ResolveProperty(p.Addr); ok {
		return info.Property.Name
	}
	return p.Addr.String()
}

func (r *renderer) object(addr kismetdc.Address) string {
	if r.idx == nil {
		return addr.String()
	}
	if info, ok := r.idx.ResolveObject(addr); ok {
		return info.ShortName()
	}
	return addr.String()
}

func (r *renderer) classRef(c kismetdc.ClassRef) string {
	return r.object(c.Addr)
}

func (r *renderer) functionPath(addr kismetdc.Address) string {
	if r.idx == nil {
		return addr.String()
	}
	if info, ok := r.idx.ResolveObject(addr); ok {
		return info.Path
	}
	return addr.String()
}
