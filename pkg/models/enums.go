package models

// JobLocation is the location modality of a tracked role.
type JobLocation string

const (
	LocationOnsite JobLocation = "onsite"
	LocationRemote JobLocation = "remote"
	LocationHybrid JobLocation = "hybrid"
)

// Valid reports whether l is a known job location.
func (l JobLocation) Valid() bool {
	switch l {
	case LocationOnsite, LocationRemote, LocationHybrid:
		return true
	}
	return false
}

// PipelineStatus is the coarse stage of an application's progress through a
// hiring process. The zero value is not valid.
type PipelineStatus string

const (
	StatusWillApply  PipelineStatus = "will_apply"
	StatusApplied    PipelineStatus = "applied"
	StatusStage1     PipelineStatus = "stage_1"
	StatusStage2     PipelineStatus = "stage_2"
	StatusStage3Plus PipelineStatus = "stage_3_plus"
	StatusFinalRound PipelineStatus = "final_round"
	StatusOffered    PipelineStatus = "offered"
	StatusResolved   PipelineStatus = "resolved"
)

// stageRank orders the active pipeline stages. Transitions without force must
// move to a strictly later stage; skipping stages is allowed, going back is not.
var stageRank = map[PipelineStatus]int{
	StatusWillApply:  0,
	StatusApplied:    1,
	StatusStage1:     2,
	StatusStage2:     3,
	StatusStage3Plus: 4,
	StatusFinalRound: 5,
	StatusOffered:    6,
	StatusResolved:   7,
}

// Valid reports whether s is a known pipeline status.
func (s PipelineStatus) Valid() bool {
	_, ok := stageRank[s]
	return ok
}

// CanAdvanceTo reports whether an un-forced transition from s to target is
// legal: any stage may resolve at any time, otherwise the target must be a
// strictly later stage in the canonical order.
func (s PipelineStatus) CanAdvanceTo(target PipelineStatus) bool {
	if !s.Valid() || !target.Valid() {
		return false
	}
	if target == StatusResolved {
		return true
	}
	return stageRank[target] > stageRank[s]
}

// ResolutionStatus is the outcome classification of an application,
// orthogonal to its pipeline stage.
type ResolutionStatus string

const (
	ResolutionOngoing       ResolutionStatus = "ongoing"
	ResolutionOnHold        ResolutionStatus = "on_hold"
	ResolutionRejected      ResolutionStatus = "rejected"
	ResolutionGhosted       ResolutionStatus = "ghosted"
	ResolutionOfferAccepted ResolutionStatus = "offer_accepted"
	ResolutionOfferDeclined ResolutionStatus = "offer_declined"
)

// Valid reports whether r is a known resolution status.
func (r ResolutionStatus) Valid() bool {
	switch r {
	case ResolutionOngoing, ResolutionOnHold, ResolutionRejected,
		ResolutionGhosted, ResolutionOfferAccepted, ResolutionOfferDeclined:
		return true
	}
	return false
}

// InterviewType categorizes an interview event.
type InterviewType string

const (
	InterviewBehavioral       InterviewType = "behavioral"
	InterviewFinal            InterviewType = "final"
	InterviewHiringManager    InterviewType = "hiring_manager"
	InterviewOffer            InterviewType = "offer"
	InterviewOfferNegotiation InterviewType = "offer_negotiation"
	InterviewRecruiter        InterviewType = "recruiter"
	InterviewTechnical        InterviewType = "technical"
)

// Valid reports whether t is a known interview type.
func (t InterviewType) Valid() bool {
	switch t {
	case InterviewBehavioral, InterviewFinal, InterviewHiringManager,
		InterviewOffer, InterviewOfferNegotiation, InterviewRecruiter,
		InterviewTechnical:
		return true
	}
	return false
}
