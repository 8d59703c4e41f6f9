package kismetdc

// Visit walks expr and every sub-expression in pre-order, invoking f on
// each node (expr included). It is the one place in this package that
// knows the shape of every ExprKind variant; offset collection and CFG
// building are built on top of it or of CollectReferencedOffsets below.
// The render package walks expressions with its own type switch.
func Visit(expr Expr, f func(Expr)) {
	f(expr)
	switch k := expr.Kind.(type) {
	case Let:
		Visit(k.Variable, f)
		Visit(k.Value, f)
	case LetObj:
		Visit(k.Variable, f)
		Visit(k.Value, f)
	case LetWeakObjPtr:
		Visit(k.Variable, f)
		Visit(k.Value, f)
	case LetBool:
		Visit(k.Variable, f)
		Visit(k.Value, f)
	case LetDelegate:
		Visit(k.Variable, f)
		Visit(k.Value, f)
	case LetMulticastDelegate:
		Visit(k.Variable, f)
		Visit(k.Value, f)
	case LetValueOnPersistentFrame:
		Visit(k.Variable, f)
		Visit(k.Value, f)
	case Return:
		Visit(k.Sub, f)
	case JumpIfNot:
		Visit(k.Condition, f)
	case ComputedJump:
		Visit(k.OffsetExpr, f)
	case SwitchValue:
		Visit(k.Index, f)
		for _, c := range k.Cases {
			Visit(c.CaseValue, f)
			Visit(c.Result, f)
		}
		Visit(k.Default, f)
	case PopExecutionFlowIfNot:
		Visit(k.Condition, f)
	case Assert:
		Visit(k.Condition, f)
	case VirtualFunction:
		visitAll(k.Args, f)
	case FinalFunction:
		visitAll(k.Args, f)
	case LocalVirtualFunction:
		visitAll(k.Args, f)
	case LocalFinalFunction:
		visitAll(k.Args, f)
	case CallMath:
		visitAll(k.Args, f)
	case Context:
		Visit(k.Object, f)
		Visit(k.Inner, f)
	case ClassContext:
		Visit(k.Object, f)
		Visit(k.Inner, f)
	case StructMemberContext:
		Visit(k.Struct, f)
	case InterfaceContext:
		Visit(k.Value, f)
	case DynamicCast:
		Visit(k.Target, f)
	case MetaCast:
		Visit(k.Target, f)
	case PrimitiveCast:
		Visit(k.Target, f)
	case ObjToInterfaceCast:
		Visit(k.Target, f)
	case InterfaceToObjCast:
		Visit(k.Target, f)
	case CrossInterfaceCast:
		Visit(k.Target, f)
	case ArrayConst:
		visitAll(k.Elements, f)
	case StructConst:
		visitAll(k.Elements, f)
	case SetConst:
		visitAll(k.Elements, f)
	case MapConst:
		visitAll(k.Elements, f)
	case SetArray:
		Visit(k.Target, f)
		visitAll(k.Elements, f)
	case SetSet:
		Visit(k.Target, f)
		visitAll(k.Elements, f)
	case SetMap:
		Visit(k.Target, f)
		visitAll(k.Elements, f)
	case ArrayGetByRef:
		Visit(k.Array, f)
		Visit(k.Index, f)
	case TextConst:
		visitTextLiteral(k.Literal, f)
	case BindDelegate:
		Visit(k.Delegate, f)
		Visit(k.Object, f)
	case AddMulticastDelegate:
		Visit(k.Delegate, f)
		Visit(k.Value, f)
	case RemoveMulticastDelegate:
		Visit(k.Delegate, f)
		Visit(k.Value, f)
	case ClearMulticastDelegate:
		Visit(k.Delegate, f)
	case CallMulticastDelegate:
		Visit(k.Delegate, f)
		visitAll(k.Args, f)
	}
}

func visitAll(exprs []Expr, f func(Expr)) {
	for _, e := range exprs {
		Visit(e, f)
	}
}

func visitTextLiteral(lit TextLiteral, f func(Expr)) {
	switch l := lit.(type) {
	case TextLiteralLocalized:
		Visit(l.Source, f)
		Visit(l.Key, f)
		Visit(l.Namespace, f)
	case TextLiteralInvariant:
		Visit(l.Source, f)
	case TextLiteralLiteralString:
		Visit(l.Value, f)
	case TextLiteralStringTableEntry:
		Visit(l.Table, f)
		Visit(l.Key, f)
		Visit(l.SourceStr, f)
	}
}

// CollectReferencedOffsets gathers the target of every jump-like construct
// across exprs: Jump, JumpIfNot, ComputedJump (which targets a dynamic
// offset expression and so contributes nothing static), PushExecutionFlow,
// SwitchValue.EndOffset, Context/ClassContext.SkipOffset, the implicit
// fall-through after an Assert, and any SkipOffsetConst leaf.
func CollectReferencedOffsets(exprs []Expr) map[BytecodeOffset]struct{} {
	out := map[BytecodeOffset]struct{}{}
	add := func(o BytecodeOffset) { out[o] = struct{}{} }

	for _, top := range exprs {
		Visit(top, func(e Expr) {
			switch k := e.Kind.(type) {
			case Jump:
				add(k.Target)
			case JumpIfNot:
				add(k.Target)
			case PushExecutionFlow:
				add(k.PushOffset)
			case SwitchValue:
				add(k.EndOffset)
			case Context:
				add(k.SkipOffset)
			case ClassContext:
				add(k.SkipOffset)
			case SkipOffsetConst:
				add(k.Target)
			}
		})
	}

	// Assert's implicit fall-through: the offset of the expression
	// following a top-level Assert is itself a referenced (leader) offset.
	for i, top := range exprs {
		if _, ok := top.Kind.(Assert); ok && i+1 < len(exprs) {
			add(exprs[i+1].Offset)
		}
	}
	return out
}
