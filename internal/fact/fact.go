package fact

import (
	"github.com/shaneholloman/ultimate-bug-scanner/internal/common"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/source"
)

// Kind is the variant tag of a Fact.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAllocationSite
	KindDeallocationSite
	KindThreadSpawnSite
	KindLockAcquire
	KindLockRelease
	KindDestructorDecl
	KindMacroDef
	KindMacroExpansion
	KindAsyncTaskSite
	KindExceptionSite
	KindCopySite
	KindScopeExit
	KindParseError

	// KindTotal is the number of kinds defined.
	KindTotal = int(iota)
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindAllocationSite:
		return "allocation"
	case KindDeallocationSite:
		return "deallocation"
	case KindThreadSpawnSite:
		return "thread-spawn"
	case KindLockAcquire:
		return "lock-acquire"
	case KindLockRelease:
		return "lock-release"
	case KindDestructorDecl:
		return "destructor-decl"
	case KindMacroDef:
		return "macro-def"
	case KindMacroExpansion:
		return "macro-expansion"
	case KindAsyncTaskSite:
		return "async-task"
	case KindExceptionSite:
		return "exception"
	case KindCopySite:
		return "copy"
	case KindScopeExit:
		return "scope-exit"
	case KindParseError:
		return "parse-error"
	default:
		return common.UnknownStr
	}
}

// Fact is one structural observation in a unit. Kind selects which of
// the payload fields are meaningful; everything else stays zero.
type Fact struct {
	Kind Kind
	Span source.Span
	Ctx  FlowContext

	// Handle is the source-level name the fact is about: the allocated
	// or deallocated variable, the mutex, the future handle, the macro
	// name, the destructor's type name.
	Handle string

	// Allocation / deallocation payload.
	Array    bool // new[] / delete[] vs scalar
	Heap     bool // heap allocation (stack buffers carry capacity only)
	Capacity int  // element capacity when statically known, 0 otherwise
	Owned    bool // wrapped in an owning handle (unique_ptr and friends)
	Returned bool // allocation handle escapes via return

	// Thread spawn payload.
	Detached     bool
	Joined       bool
	InfiniteBody bool // unconditional unbounded loop in the spawned body
	HasExit      bool // the loop body has a reachable break/return

	// Lock payload.
	Guarded bool // acquisition via a scope-bound guard object

	// Destructor payload.
	Throws bool // body can raise without locally absorbing it

	// Macro payload.
	FunctionLike   bool
	Params         []string
	Body           string
	BareParams     []string // parameters used unparenthesized in the body
	ReservedShadow bool     // redefines a reserved conditional-compilation symbol

	// Async payload.
	Queried bool // result handle queried (.get/.wait) before scope end

	// Copy payload.
	Bounded   bool // copy primitive takes an explicit capacity bound
	SourceLen int  // literal source length when statically known, -1 otherwise
	DstFact   int  // index of the destination's capacity fact, -1 if unknown

	// Parse error payload.
	Reason string
}

// HasCapacity reports whether an allocation fact carries a usable capacity.
func (f *Fact) HasCapacity() bool {
	return f.Capacity > 0
}
