package interaction

import "context"

// Kind classifies a notification for display
type Kind int

const (
	KindSuccess Kind = iota
	KindFail
	KindInfo
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFail:
		return "fail"
	default:
		return "info"
	}
}

// Prompter asks the user to confirm an action. It blocks until the user answers.
type Prompter interface {
	Confirm(ctx context.Context, message string) bool
}

// Notifier shows a transient status message. Fire-and-forget.
type Notifier interface {
	Notify(message string, kind Kind)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string, kind Kind)

func (f NotifierFunc) Notify(message string, kind Kind) {
	f(message, kind)
}

// AutoConfirm answers yes to every prompt (used for --yes)
type AutoConfirm struct{}

func (AutoConfirm) Confirm(ctx context.Context, message string) bool {
	return true
}
