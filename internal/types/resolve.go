package types

// Actual follows alias bindings until it reaches a non-alias type. An unbound
// alias (an unresolved forward reference) is returned as-is. Pure alias cycles
// are rejected by the declaration checker before Actual can run on them.
func Actual(t Type) Type {
	for {
		name, ok := t.(*NameType)
		if !ok || name.Binding == nil {
			return t
		}
		t = name.Binding
	}
}

// Equal compares by the runtime identity of the Actual representatives, with
// one exception: Nil equals any record type, in either position. Two Nils are
// not equal, nor is Nil equal to a non-record.
func Equal(a, b Type) bool {
	aa := Actual(a)
	ab := Actual(b)
	if _, isNil := aa.(*NilType); isNil {
		if _, bothNil := ab.(*NilType); bothNil {
			return false
		}
		_, isRec := ab.(*RecordType)
		return isRec
	}
	if _, isNil := ab.(*NilType); isNil {
		_, isRec := aa.(*RecordType)
		return isRec
	}
	return aa == ab
}

// AssignableTo reports whether a value of source type may initialize or be
// assigned to target: equal types, or Nil into a record.
func AssignableTo(target, source Type) bool {
	if Equal(target, source) {
		return true
	}
	if _, isNil := Actual(source).(*NilType); isNil {
		_, isRec := Actual(target).(*RecordType)
		return isRec
	}
	return false
}

// IsRecord reports whether the Actual type is a record.
func IsRecord(t Type) bool {
	_, ok := Actual(t).(*RecordType)
	return ok
}
