package kismetdc

// ParseAll consumes script front-to-back, producing one top-level
// expression per outer opcode until the offset reaches the end of the
// script or an EndOfScript opcode is consumed. It fails fast on the first
// error; no partial expressions are returned for the failing top-level
// item.
func ParseAll(script []byte, names map[uint32]string, idx *AddressIndex) ([]Expr, error) {
	p := &parser{r: NewReader(script), names: names, idx: idx}
	var out []Expr
	for p.offset < len(script) {
		e, err := p.parseTop()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		switch e.Kind.(type) {
		case EndOfScript, Unknown:
			return out, nil
		}
	}
	return out, nil
}

type parser struct {
	r      *Reader
	names  map[uint32]string
	idx    *AddressIndex
	offset int
}

// parseTop parses one top-level expression. Unlike parseSub, an Unknown
// opcode here is a normal (if terminal) result, not an error: the parser
// cannot know an Unknown's operand layout, so it simply stops after
// producing it.
func (p *parser) parseTop() (Expr, error) {
	return p.parseOne()
}

// parseSub parses a sub-expression slot. An Unknown opcode here is fatal:
// the caller has no way to know how many bytes it should have consumed.
func (p *parser) parseSub() (Expr, error) {
	e, err := p.parseOne()
	if err != nil {
		return Expr{}, err
	}
	if _, ok := e.Kind.(Unknown); ok {
		return Expr{}, decodeErr(e.Offset, ErrUnknownOpcode)
	}
	return e, nil
}

// parseOne reads the opcode byte at the current offset and dispatches to
// its handler. Every handler records the starting offset of the opcode
// byte before consuming anything.
func (p *parser) parseOne() (Expr, error) {
	start := p.offset
	b, err := p.r.Byte(&p.offset)
	if err != nil {
		return Expr{}, err
	}
	op := Opcode(b)

	if undocumentedOpcodes[op] {
		return Expr{Offset: BytecodeOffset(start), Kind: Unknown{Byte: b}}, nil
	}

	kind, err := p.dispatch(op, start)
	if err != nil {
		return Expr{}, err
	}
	if kind == nil {
		return Expr{Offset: BytecodeOffset(start), Kind: Unknown{Byte: b}}, nil
	}
	return Expr{Offset: BytecodeOffset(start), Kind: kind}, nil
}

// dispatch reads the opcode-specific operands for op. A nil, nil result
// means op was not in the documented table (Unknown).
func (p *parser) dispatch(op Opcode, start int) (ExprKind, error) {
	switch op {
	case OpLocalVariable:
		return p.leafProperty(LocalVariable{})
	case OpInstanceVariable:
		return p.leafProperty(InstanceVariable{})
	case OpDefaultVariable:
		return p.leafProperty(DefaultVariable{})
	case OpLocalOutVariable:
		return p.leafProperty(LocalOutVariable{})
	case OpClassSparseDataVariable:
		return p.leafProperty(ClassSparseDataVariable{})
	case OpPropertyConst:
		return p.leafProperty(PropertyConst{})
	case OpObjectConst:
		addr, err := p.r.Address(&p.offset)
		if err != nil {
			return nil, err
		}
		return ObjectConst{Object: ObjectRef{Addr: addr}}, nil
	case OpIntConst:
		v, err := p.r.Int32(&p.offset)
		if err != nil {
			return nil, err
		}
		return IntConst{Value: v}, nil
	case OpInt64Const:
		v, err := p.r.Uint64(&p.offset)
		if err != nil {
			return nil, err
		}
		return Int64Const{Value: int64(v)}, nil
	case OpUInt64Const:
		v, err := p.r.Uint64(&p.offset)
		if err != nil {
			return nil, err
		}
		return UInt64Const{Value: v}, nil
	case OpFloatConst:
		v, err := p.r.Float32(&p.offset)
		if err != nil {
			return nil, err
		}
		return FloatConst{Value: v}, nil
	case OpByteConst:
		v, err := p.r.Byte(&p.offset)
		if err != nil {
			return nil, err
		}
		return ByteConst{Value: v}, nil
	case OpIntConstByte:
		v, err := p.r.Byte(&p.offset)
		if err != nil {
			return nil, err
		}
		return IntConstByte{Value: v}, nil
	case OpStringConst:
		v, err := p.r.String8(&p.offset)
		if err != nil {
			return nil, err
		}
		return StringConst{Value: v}, nil
	case OpUnicodeStringConst:
		v, err := p.r.String16(&p.offset)
		if err != nil {
			return nil, err
		}
		return UnicodeStringConst{Value: v}, nil
	case OpNameConst:
		n, err := p.r.Name(&p.offset, p.names)
		if err != nil {
			return nil, err
		}
		return NameConst{Value: n}, nil
	case OpVectorConst:
		xs, err := p.floats(3)
		if err != nil {
			return nil, err
		}
		return VectorConst{X: xs[0], Y: xs[1], Z: xs[2]}, nil
	case OpRotationConst:
		xs, err := p.floats(3)
		if err != nil {
			return nil, err
		}
		return RotationConst{Pitch: xs[0], Yaw: xs[1], Roll: xs[2]}, nil
	case OpTransformConst:
		xs, err := p.floats(10)
		if err != nil {
			return nil, err
		}
		var out TransformConst
		copy(out.Values[:], xs)
		return out, nil
	case OpTrue:
		return True{}, nil
	case OpFalse:
		return False{}, nil
	case OpIntZero:
		return IntZero{}, nil
	case OpIntOne:
		return IntOne{}, nil
	case OpNoObject:
		return NoObject{}, nil
	case OpNoInterface:
		return NoInterface{}, nil
	case OpSelf:
		return Self{}, nil
	case OpNothing:
		return Nothing{}, nil
	case OpNothingInt32:
		return NothingInt32{}, nil
	case OpBreakpoint:
		return Breakpoint{}, nil
	case OpTracepoint:
		return Tracepoint{}, nil
	case OpWireTracepoint:
		return WireTracepoint{}, nil
	case OpEndOfScript:
		return EndOfScript{}, nil
	case OpSkipOffsetConst:
		off, err := p.r.SkipCount(&p.offset)
		if err != nil {
			return nil, err
		}
		return SkipOffsetConst{Target: BytecodeOffset(off)}, nil
	case OpInstanceDelegate:
		n, err := p.r.Name(&p.offset, p.names)
		if err != nil {
			return nil, err
		}
		return InstanceDelegate{Value: n}, nil

	case OpLet:
		return p.parseLet()
	case OpLetObj:
		v, val, err := p.variableValue()
		if err != nil {
			return nil, err
		}
		return LetObj{Variable: v, Value: val}, nil
	case OpLetWeakObjPtr:
		v, val, err := p.variableValue()
		if err != nil {
			return nil, err
		}
		return LetWeakObjPtr{Variable: v, Value: val}, nil
	case OpLetBool:
		v, val, err := p.variableValue()
		if err != nil {
			return nil, err
		}
		return LetBool{Variable: v, Value: val}, nil
	case OpLetDelegate:
		v, val, err := p.variableValue()
		if err != nil {
			return nil, err
		}
		return LetDelegate{Variable: v, Value: val}, nil
	case OpLetMulticastDelegate:
		v, val, err := p.variableValue()
		if err != nil {
			return nil, err
		}
		return LetMulticastDelegate{Variable: v, Value: val}, nil
	case OpLetValueOnPersistentFrame:
		v, val, err := p.variableValue()
		if err != nil {
			return nil, err
		}
		return LetValueOnPersistentFrame{Variable: v, Value: val}, nil

	case OpReturn:
		sub, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return Return{Sub: sub}, nil
	case OpJump:
		t, err := p.r.SkipCount(&p.offset)
		if err != nil {
			return nil, err
		}
		return Jump{Target: BytecodeOffset(t)}, nil
	case OpJumpIfNot:
		t, err := p.r.SkipCount(&p.offset)
		if err != nil {
			return nil, err
		}
		cond, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return JumpIfNot{Condition: cond, Target: BytecodeOffset(t)}, nil
	case OpComputedJump:
		e, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return ComputedJump{OffsetExpr: e}, nil
	case OpSwitchValue:
		return p.parseSwitchValue()
	case OpPushExecutionFlow:
		t, err := p.r.SkipCount(&p.offset)
		if err != nil {
			return nil, err
		}
		return PushExecutionFlow{PushOffset: BytecodeOffset(t)}, nil
	case OpPopExecutionFlow:
		return PopExecutionFlow{}, nil
	case OpPopExecutionFlowIfNot:
		cond, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return PopExecutionFlowIfNot{Condition: cond}, nil
	case OpAssert:
		line, err := p.r.Word(&p.offset)
		if err != nil {
			return nil, err
		}
		dbg, err := p.r.Byte(&p.offset)
		if err != nil {
			return nil, err
		}
		cond, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return Assert{Line: line, InDebug: dbg != 0, Condition: cond}, nil

	case OpVirtualFunction:
		n, err := p.r.Name(&p.offset, p.names)
		if err != nil {
			return nil, err
		}
		args, err := p.parseExprListUntil(OpEndFunctionParms)
		if err != nil {
			return nil, err
		}
		return VirtualFunction{Func: FunctionRefByName(n), Args: args}, nil
	case OpLocalVirtualFunction:
		n, err := p.r.Name(&p.offset, p.names)
		if err != nil {
			return nil, err
		}
		args, err := p.parseExprListUntil(OpEndFunctionParms)
		if err != nil {
			return nil, err
		}
		return LocalVirtualFunction{Func: FunctionRefByName(n), Args: args}, nil
	case OpFinalFunction:
		addr, err := p.r.Address(&p.offset)
		if err != nil {
			return nil, err
		}
		args, err := p.parseExprListUntil(OpEndFunctionParms)
		if err != nil {
			return nil, err
		}
		return FinalFunction{Func: FunctionRefByAddress(addr), Args: args}, nil
	case OpLocalFinalFunction:
		addr, err := p.r.Address(&p.offset)
		if err != nil {
			return nil, err
		}
		args, err := p.parseExprListUntil(OpEndFunctionParms)
		if err != nil {
			return nil, err
		}
		return LocalFinalFunction{Func: FunctionRefByAddress(addr), Args: args}, nil
	case OpCallMath:
		addr, err := p.r.Address(&p.offset)
		if err != nil {
			return nil, err
		}
		args, err := p.parseExprListUntil(OpEndFunctionParms)
		if err != nil {
			return nil, err
		}
		return CallMath{Func: FunctionRefByAddress(addr), Args: args}, nil
	case OpCallMulticastDelegate:
		addr, err := p.r.Address(&p.offset)
		if err != nil {
			return nil, err
		}
		delegate, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		args, err := p.parseExprListUntil(OpEndFunctionParms)
		if err != nil {
			return nil, err
		}
		return CallMulticastDelegate{Func: FunctionRefByAddress(addr), Delegate: delegate, Args: args}, nil

	case OpContext, OpContextFailSilent:
		obj, skip, field, inner, err := p.parseContextFields()
		if err != nil {
			return nil, err
		}
		return Context{Object: obj, SkipOffset: skip, Field: field, Inner: inner, FailSilent: op == OpContextFailSilent}, nil
	case OpClassContext:
		obj, skip, field, inner, err := p.parseContextFields()
		if err != nil {
			return nil, err
		}
		return ClassContext{Object: obj, SkipOffset: skip, Field: field, Inner: inner}, nil
	case OpStructMemberContext:
		addr, err := p.r.Address(&p.offset)
		if err != nil {
			return nil, err
		}
		structExpr, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return StructMemberContext{Property: PropertyRef{Addr: addr}, Struct: structExpr}, nil
	case OpInterfaceContext:
		v, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return InterfaceContext{Value: v}, nil

	case OpDynamicCast:
		class, target, err := p.classAndTarget()
		if err != nil {
			return nil, err
		}
		return DynamicCast{Class: class, Target: target}, nil
	case OpMetaCast:
		class, target, err := p.classAndTarget()
		if err != nil {
			return nil, err
		}
		return MetaCast{Class: class, Target: target}, nil
	case OpObjToInterfaceCast:
		class, target, err := p.classAndTarget()
		if err != nil {
			return nil, err
		}
		return ObjToInterfaceCast{Class: class, Target: target}, nil
	case OpInterfaceToObjCast:
		class, target, err := p.classAndTarget()
		if err != nil {
			return nil, err
		}
		return InterfaceToObjCast{Class: class, Target: target}, nil
	case OpCrossInterfaceCast:
		class, target, err := p.classAndTarget()
		if err != nil {
			return nil, err
		}
		return CrossInterfaceCast{Class: class, Target: target}, nil
	case OpPrimitiveCast:
		ct, err := p.r.Byte(&p.offset)
		if err != nil {
			return nil, err
		}
		target, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return PrimitiveCast{CastType: ct, Target: target}, nil

	case OpArrayConst:
		addr, err := p.r.Address(&p.offset)
		if err != nil {
			return nil, err
		}
		if _, err := p.r.Uint32(&p.offset); err != nil { // element count
			return nil, err
		}
		elems, err := p.parseExprListUntil(OpEndArrayConst)
		if err != nil {
			return nil, err
		}
		return ArrayConst{InnerProperty: PropertyRef{Addr: addr}, Elements: elems}, nil
	case OpSetConst:
		addr, err := p.r.Address(&p.offset)
		if err != nil {
			return nil, err
		}
		if _, err := p.r.Uint32(&p.offset); err != nil {
			return nil, err
		}
		elems, err := p.parseExprListUntil(OpEndSetConst)
		if err != nil {
			return nil, err
		}
		return SetConst{InnerProperty: PropertyRef{Addr: addr}, Elements: elems}, nil
	case OpMapConst:
		keyAddr, err := p.r.Address(&p.offset)
		if err != nil {
			return nil, err
		}
		valAddr, err := p.r.Address(&p.offset)
		if err != nil {
			return nil, err
		}
		if _, err := p.r.Uint32(&p.offset); err != nil {
			return nil, err
		}
		elems, err := p.parseExprListUntil(OpEndMapConst)
		if err != nil {
			return nil, err
		}
		return MapConst{KeyProperty: PropertyRef{Addr: keyAddr}, ValueProperty: PropertyRef{Addr: valAddr}, Elements: elems}, nil
	case OpStructConst:
		addr, err := p.r.Address(&p.offset)
		if err != nil {
			return nil, err
		}
		if _, err := p.r.Uint32(&p.offset); err != nil { // serialized size
			return nil, err
		}
		elems, err := p.parseExprListUntil(OpEndStructConst)
		if err != nil {
			return nil, err
		}
		return StructConst{Struct: StructRef{Addr: addr}, Elements: elems}, nil
	case OpSetArray:
		target, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		elems, err := p.parseExprListUntil(OpEndArray)
		if err != nil {
			return nil, err
		}
		return SetArray{Target: target, Elements: elems}, nil
	case OpSetSet:
		target, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		if _, err := p.r.Uint32(&p.offset); err != nil {
			return nil, err
		}
		elems, err := p.parseExprListUntil(OpEndSet)
		if err != nil {
			return nil, err
		}
		return SetSet{Target: target, Elements: elems}, nil
	case OpSetMap:
		target, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		if _, err := p.r.Uint32(&p.offset); err != nil {
			return nil, err
		}
		elems, err := p.parseExprListUntil(OpEndMap)
		if err != nil {
			return nil, err
		}
		return SetMap{Target: target, Elements: elems}, nil
	case OpArrayGetByRef:
		arr, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		idx, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return ArrayGetByRef{Array: arr, Index: idx}, nil

	case OpTextConst:
		return p.parseTextConst()

	case OpBindDelegate:
		n, err := p.r.Name(&p.offset, p.names)
		if err != nil {
			return nil, err
		}
		delegate, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		obj, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return BindDelegate{FunctionName: n, Delegate: delegate, Object: obj}, nil
	case OpAddMulticastDelegate:
		d, v, err := p.variableValue()
		if err != nil {
			return nil, err
		}
		return AddMulticastDelegate{Delegate: d, Value: v}, nil
	case OpRemoveMulticastDelegate:
		d, v, err := p.variableValue()
		if err != nil {
			return nil, err
		}
		return RemoveMulticastDelegate{Delegate: d, Value: v}, nil
	case OpClearMulticastDelegate:
		d, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return ClearMulticastDelegate{Delegate: d}, nil

	case OpInstrumentationEvent:
		b, err := p.r.Byte(&p.offset)
		if err != nil {
			return nil, err
		}
		return InstrumentationEvent{EventType: b}, nil

	case OpEndFunctionParms, OpEndArray, OpEndArrayConst, OpEndStructConst,
		OpEndSet, OpEndSetConst, OpEndMap, OpEndMapConst, OpEndParmValue:
		// These only ever appear as list terminators, consumed by
		// parseExprListUntil; encountering one as a standalone opcode
		// means the stream is malformed.
		return nil, decodeErr(BytecodeOffset(start), ErrMalformedStream)
	}

	return nil, nil // documented-but-unhandled or genuinely unknown byte
}

func (p *parser) floats(n int) ([]float32, error) {
	out := make([]float32, n)
	for i := range out {
		v, err := p.r.Float32(&p.offset)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (p *parser) leafProperty(kind ExprKind) (ExprKind, error) {
	addr, err := p.r.Address(&p.offset)
	if err != nil {
		return nil, err
	}
	ref := PropertyRef{Addr: addr}
	switch kind.(type) {
	case LocalVariable:
		return LocalVariable{Property: ref}, nil
	case InstanceVariable:
		return InstanceVariable{Property: ref}, nil
	case DefaultVariable:
		return DefaultVariable{Property: ref}, nil
	case LocalOutVariable:
		return LocalOutVariable{Property: ref}, nil
	case ClassSparseDataVariable:
		return ClassSparseDataVariable{Property: ref}, nil
	case PropertyConst:
		return PropertyConst{Property: ref}, nil
	}
	return nil, nil
}

// variableValue parses the common {Variable; Value} shape shared by every
// Let* opcode and by AddMulticastDelegate/RemoveMulticastDelegate.
func (p *parser) variableValue() (Expr, Expr, error) {
	v, err := p.parseSub()
	if err != nil {
		return Expr{}, Expr{}, err
	}
	val, err := p.parseSub()
	if err != nil {
		return Expr{}, Expr{}, err
	}
	return v, val, nil
}

// parseLet handles the plain Let opcode. The property reference it carries
// is derived from the variable sub-expression rather than read separately
// (see DESIGN.md Decision D-Let).
func (p *parser) parseLet() (ExprKind, error) {
	variable, value, err := p.variableValue()
	if err != nil {
		return nil, err
	}
	return Let{Property: propertyOf(variable), Variable: variable, Value: value}, nil
}

func propertyOf(e Expr) PropertyRef {
	switch k := e.Kind.(type) {
	case LocalVariable:
		return k.Property
	case InstanceVariable:
		return k.Property
	case DefaultVariable:
		return k.Property
	case LocalOutVariable:
		return k.Property
	case ClassSparseDataVariable:
		return k.Property
	}
	return PropertyRef{}
}

func (p *parser) classAndTarget() (ClassRef, Expr, error) {
	addr, err := p.r.Address(&p.offset)
	if err != nil {
		return ClassRef{}, Expr{}, err
	}
	target, err := p.parseSub()
	if err != nil {
		return ClassRef{}, Expr{}, err
	}
	return ClassRef{Addr: addr}, target, nil
}

// parseContextFields implements the Context/ContextFailSilent/ClassContext
// shared operand layout: object expression, skip_offset (u32), field_ref
// (u64 address), context sub-expression.
func (p *parser) parseContextFields() (obj Expr, skip BytecodeOffset, field Address, inner Expr, err error) {
	obj, err = p.parseSub()
	if err != nil {
		return
	}
	s, err2 := p.r.Uint32(&p.offset)
	if err2 != nil {
		err = err2
		return
	}
	skip = BytecodeOffset(s)
	field, err = p.r.Address(&p.offset)
	if err != nil {
		return
	}
	inner, err = p.parseSub()
	return
}

// parseSwitchValue reads: index expr, u16 case count, i32 end offset, then
// n*(case_value, skip_offset i32, result), then default.
func (p *parser) parseSwitchValue() (ExprKind, error) {
	index, err := p.parseSub()
	if err != nil {
		return nil, err
	}
	n, err := p.r.Word(&p.offset)
	if err != nil {
		return nil, err
	}
	endOffsetRaw, err := p.r.Int32(&p.offset)
	if err != nil {
		return nil, err
	}
	// Each case needs at least 6 bytes (value opcode, i32 skip, result
	// opcode) and the default at least 1.
	if int(n)*6+1 > p.r.Len()-p.offset {
		return nil, decodeErr(BytecodeOffset(p.offset), ErrMalformedStream)
	}
	cases := make([]SwitchCase, 0, n)
	for i := 0; i < int(n); i++ {
		caseValue, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		skip, err := p.r.Int32(&p.offset)
		if err != nil {
			return nil, err
		}
		result, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		cases = append(cases, SwitchCase{CaseValue: caseValue, SkipOffset: BytecodeOffset(skip), Result: result})
	}
	def, err := p.parseSub()
	if err != nil {
		return nil, err
	}
	return SwitchValue{Index: index, Cases: cases, Default: def, EndOffset: BytecodeOffset(endOffsetRaw)}, nil
}

func (p *parser) parseTextConst() (ExprKind, error) {
	tagByte, err := p.r.Byte(&p.offset)
	if err != nil {
		return nil, err
	}
	tag := textLiteralTag(tagByte)
	switch tag {
	case TextEmpty:
		return TextConst{Literal: TextLiteralEmpty{}}, nil
	case TextLocalizedText:
		source, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		key, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		ns, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return TextConst{Literal: TextLiteralLocalized{Source: source, Key: key, Namespace: ns}}, nil
	case TextInvariantText:
		source, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return TextConst{Literal: TextLiteralInvariant{Source: source}}, nil
	case TextLiteralString:
		v, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return TextConst{Literal: TextLiteralLiteralString{Value: v}}, nil
	case TextStringTableEntry:
		table, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		key, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		src, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return TextConst{Literal: TextLiteralStringTableEntry{Table: table, Key: key, SourceStr: src}}, nil
	}
	return TextConst{Literal: TextLiteralEmpty{}}, nil
}

// parseExprListUntil repeatedly parses a sub-expression until it
// encounters one of the given terminator opcodes, which it consumes
// before returning. A stream that ends before any terminator is seen is
// ErrMalformedStream.
func (p *parser) parseExprListUntil(terminators ...Opcode) ([]Expr, error) {
	var out []Expr
	for {
		if p.offset >= p.r.Len() {
			return nil, decodeErr(BytecodeOffset(p.offset), ErrMalformedStream)
		}
		peekOffset := p.offset
		b, err := p.r.Byte(&peekOffset)
		if err != nil {
			return nil, err
		}
		if isTerminator(Opcode(b), terminators) {
			p.offset = peekOffset // consume the sentinel
			return out, nil
		}
		e, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}

func isTerminator(op Opcode, terminators []Opcode) bool {
	for _, t := range terminators {
		if op == t {
			return true
		}
	}
	return false
}
