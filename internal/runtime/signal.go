package runtime

import "github.com/solscript/sol/internal/value"

// signalKind is the block-exit signal a block's execution produces.
// Using an explicit sum type returned up the call chain — rather than
// a (retVal Object, ret bool) pair, which can only represent return —
// makes break and continue first-class instead of ad hoc.
type signalKind int

const (
	signalNone signalKind = iota
	signalBreak
	signalContinue
	signalReturn
)

type signal struct {
	kind  signalKind
	value value.Value // set iff kind == signalReturn
}

var noSignal = signal{kind: signalNone}
