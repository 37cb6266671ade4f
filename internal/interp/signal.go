package interp

// signalKind tags how a statement's evaluation terminated (spec.md §4.4,
// §9 "Evaluator control flow"): Normal completion, or one of the two
// control signals that unwind to a catching frame.
type signalKind int

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
)

// signal is the non-error result of executing a statement, passed by
// value (callers test sig.kind): sigNone means keep going,
// sigReturn/sigBreak mean unwind to the nearest function call / while
// loop respectively.
type signal struct {
	kind  signalKind
	value Value // populated for sigReturn
}

var normalSignal = signal{kind: sigNone}

func returnSignal(v Value) signal { return signal{kind: sigReturn, value: v} }
func breakSignal() signal         { return signal{kind: sigBreak} }
