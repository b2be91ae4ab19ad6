package diag

import (
	"fmt"
)

// Code is a stable numeric identifier for a diagnostic.
// The code space is partitioned per phase: lexical 1000s, syntactic 2000s,
// semantic 3000s, translation 4000s.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadEscape           Code = 1004
	LexIntOutOfRange       Code = 1005
	LexBadControlChar      Code = 1006

	// Syntactic
	SynUnexpectedToken Code = 2001
	SynExpectToken     Code = 2002
	SynExpectExpr      Code = 2003
	SynExpectType      Code = 2004
	SynExpectDecl      Code = 2005
	SynBadLValue       Code = 2006

	// Semantic: names and namespaces
	SemaUndefinedVariable Code = 3001
	SemaUndefinedFunction Code = 3002
	SemaUndefinedType     Code = 3003
	SemaNotAVariable      Code = 3004
	SemaNotAFunction      Code = 3005

	// Semantic: type mismatches
	SemaOperandMismatch     Code = 3101
	SemaAssignMismatch      Code = 3102
	SemaConditionNotInt     Code = 3103
	SemaBranchMismatch      Code = 3104
	SemaArgumentMismatch    Code = 3105
	SemaArityMismatch       Code = 3106
	SemaInitializerMismatch Code = 3107
	SemaReturnMismatch      Code = 3108
	SemaNilNeedsRecordType  Code = 3109
	SemaBodyNotUnit         Code = 3110

	// Semantic: structure
	SemaNotARecord    Code = 3201
	SemaNotAnArray    Code = 3202
	SemaNoSuchField   Code = 3203
	SemaFieldMismatch Code = 3204
	SemaIndexNotInt   Code = 3205
	SemaBoundNotInt   Code = 3206

	// Semantic: scoping and batching
	SemaBreakOutsideLoop Code = 3301
	SemaAssignToLoopVar  Code = 3302
	SemaDuplicateName    Code = 3303
	SemaTypeCycle        Code = 3304

	// Translation faults. These indicate compiler bugs, not user errors.
	TransInternal Code = 4001
)

func (c Code) String() string {
	return fmt.Sprintf("T%04d", uint16(c))
}

// Phase reports which pipeline phase owns the code.
func (c Code) Phase() string {
	switch {
	case c >= 1000 && c < 2000:
		return "lex"
	case c >= 2000 && c < 3000:
		return "parse"
	case c >= 3000 && c < 4000:
		return "sema"
	case c >= 4000 && c < 5000:
		return "translate"
	default:
		return "unknown"
	}
}
