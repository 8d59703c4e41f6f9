package kismetdc

// PropertyRef is a strongly-typed reference to a property (variable).
type PropertyRef struct {
	Addr Address
}

// ObjectRef is a strongly-typed reference to an object.
type ObjectRef struct {
	Addr Address
}

// StructRef is a strongly-typed reference to a struct type.
type StructRef struct {
	Addr Address
}

// ClassRef is a strongly-typed reference to a class type.
type ClassRef struct {
	Addr Address
}

// FunctionRef is a sum of by-address and by-name function references,
// because some call opcodes (VirtualFunction, FinalFunction) carry an
// address while others (LocalVirtualFunction, LocalFinalFunction) carry a
// Name.
type FunctionRef struct {
	byName bool
	addr   Address
	name   Name
}

// FunctionRefByAddress builds a FunctionRef carrying a resolved address.
func FunctionRefByAddress(addr Address) FunctionRef {
	return FunctionRef{addr: addr}
}

// FunctionRefByName builds a FunctionRef carrying a Name.
func FunctionRefByName(name Name) FunctionRef {
	return FunctionRef{byName: true, name: name}
}

// IsByName reports whether the reference carries a Name instead of an
// Address.
func (f FunctionRef) IsByName() bool { return f.byName }

// Address returns the referenced address; valid only when !IsByName().
func (f FunctionRef) Address() Address { return f.addr }

// Name returns the referenced name; valid only when IsByName().
func (f FunctionRef) Name() Name { return f.name }
