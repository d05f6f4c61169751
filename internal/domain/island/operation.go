package island

import "fmt"

// OperationKind enumerates the remote actions an island supports
type OperationKind int

const (
	OperationCollect OperationKind = iota
	OperationSupplement
	OperationStart
)

func (k OperationKind) String() string {
	switch k {
	case OperationCollect:
		return "collect"
	case OperationSupplement:
		return "supplement"
	case OperationStart:
		return "start"
	default:
		return fmt.Sprintf("operation(%d)", int(k))
	}
}

// Operation is a closed variant: Collect, Supplement(amount) or Start(flag).
// Build it through the constructors so the payload always matches the kind.
type Operation struct {
	Kind   OperationKind
	Amount int
	Start  bool
}

// Collect builds a collect operation
func Collect() Operation {
	return Operation{Kind: OperationCollect}
}

// Supplement builds a supplement operation spending amount currency units
func Supplement(amount int) Operation {
	return Operation{Kind: OperationSupplement, Amount: amount}
}

// Start builds a start (or stop, with false) operation
func Start(flag bool) Operation {
	return Operation{Kind: OperationStart, Start: flag}
}

func (o Operation) String() string {
	switch o.Kind {
	case OperationSupplement:
		return fmt.Sprintf("supplement(%d)", o.Amount)
	case OperationStart:
		return fmt.Sprintf("start(%t)", o.Start)
	default:
		return o.Kind.String()
	}
}
