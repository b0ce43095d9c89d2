package grounding

// Disambiguation outcome labels reported to the observer.
const (
	DisambOutcomeGrounded   = "grounded"
	DisambOutcomeUngrounded = "ungrounded"
	DisambOutcomeFailed     = "failed"
)

// PipelineObserver receives mapping pipeline events for instrumentation.
// The prometheus metric set satisfies it; the default discards everything.
type PipelineObserver interface {
	// GroundingMapHit fires when a mention text is found in the curated
	// grounding map, sentinel entries included.
	GroundingMapHit()

	// AgentMapHit fires when a mention text is served by the prebuilt
	// agent map.
	AgentMapHit()

	// DisambiguationOutcome fires once per hook run with one of the
	// outcome labels above.
	DisambiguationOutcome(outcome string)
}

type nopObserver struct{}

func (nopObserver) GroundingMapHit()             {}
func (nopObserver) AgentMapHit()                 {}
func (nopObserver) DisambiguationOutcome(string) {}

// NewNopObserver returns an observer that discards all events.
func NewNopObserver() PipelineObserver { return nopObserver{} }

//Personal.AI order the ending
