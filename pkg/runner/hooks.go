package runner

// ShrinkKind labels the move a shrink step applied to the candidate.
type ShrinkKind string

const (
	// ShrinkDelete removed a transition from the sequence.
	ShrinkDelete ShrinkKind = "delete"
	// ShrinkValue simplified one transition's value in place.
	ShrinkValue ShrinkKind = "value"
	// ShrinkComplicate undid the previous accepted move.
	ShrinkComplicate ShrinkKind = "complicate"
	// ShrinkObserved dropped a suffix the consumer never iterated.
	ShrinkObserved ShrinkKind = "observed"
)

// CaseEvent describes one generated case of a property run.
type CaseEvent struct {
	Seed uint64
	Case int
}

// RejectEvent describes a local rejection during value generation.
type RejectEvent struct {
	Reason string
	Total  int
}

// ShrinkEvent describes one step of the shrink search.
type ShrinkEvent struct {
	Kind ShrinkKind
	// StillFailing is true when the candidate produced by this step
	// reproduces the original failure.
	StillFailing bool
}

// MinimalEvent describes the end of a shrink search.
type MinimalEvent struct {
	Seed    uint64
	Case    int
	Shrinks int
	Size    int
}

// Hooks carries optional observer callbacks for the search lifecycle.
// Any field may be nil. Callbacks run synchronously on the search goroutine.
type Hooks struct {
	OnCaseStart   func(CaseEvent)
	OnCasePass    func(CaseEvent)
	OnCaseFail    func(CaseEvent)
	OnLocalReject func(RejectEvent)
	OnShrinkStep  func(ShrinkEvent)
	OnMinimal     func(MinimalEvent)
}

// EmitCaseStart invokes OnCaseStart if set.
func (h *Hooks) EmitCaseStart(e CaseEvent) {
	if h != nil && h.OnCaseStart != nil {
		h.OnCaseStart(e)
	}
}

// EmitCasePass invokes OnCasePass if set.
func (h *Hooks) EmitCasePass(e CaseEvent) {
	if h != nil && h.OnCasePass != nil {
		h.OnCasePass(e)
	}
}

// EmitCaseFail invokes OnCaseFail if set.
func (h *Hooks) EmitCaseFail(e CaseEvent) {
	if h != nil && h.OnCaseFail != nil {
		h.OnCaseFail(e)
	}
}

// EmitLocalReject invokes OnLocalReject if set.
func (h *Hooks) EmitLocalReject(e RejectEvent) {
	if h != nil && h.OnLocalReject != nil {
		h.OnLocalReject(e)
	}
}

// EmitShrinkStep invokes OnShrinkStep if set.
func (h *Hooks) EmitShrinkStep(e ShrinkEvent) {
	if h != nil && h.OnShrinkStep != nil {
		h.OnShrinkStep(e)
	}
}

// EmitMinimal invokes OnMinimal if set.
func (h *Hooks) EmitMinimal(e MinimalEvent) {
	if h != nil && h.OnMinimal != nil {
		h.OnMinimal(e)
	}
}
