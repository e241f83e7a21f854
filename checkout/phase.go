package checkout

// Phase is where a checkout session stands.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseCartReview        Phase = "cart_review"
	PhaseMethodSelection   Phase = "method_selection"
	PhasePaymentInProgress Phase = "payment_in_progress"
	PhaseSuccess           Phase = "success"
	PhaseCancelled         Phase = "cancelled"
)

var transitions = map[Phase][]Phase{
	PhaseIdle:              {PhaseCartReview},
	PhaseCartReview:        {PhaseIdle, PhaseMethodSelection},
	PhaseMethodSelection:   {PhasePaymentInProgress, PhaseCancelled},
	PhasePaymentInProgress: {PhaseSuccess, PhaseCancelled},
	PhaseSuccess:           {PhaseIdle},
	PhaseCancelled:         {PhaseIdle},
}

// IsTerminal reports whether the phase ends an attempt. Terminal phases are
// transient: the session settles back to Idle immediately.
func (p Phase) IsTerminal() bool {
	return p == PhaseSuccess || p == PhaseCancelled
}

func (p Phase) CanTransitionTo(next Phase) bool {
	for _, allowed := range transitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// cartEditable reports whether the cart may change in this phase. Once a
// method is being chosen the total is frozen.
func (p Phase) cartEditable() bool {
	return p == PhaseIdle || p == PhaseCartReview
}

func (p Phase) String() string {
	return string(p)
}
