package contract

// NoticeKind identifies an automatic adjustment the system made on the
// user's behalf.
type NoticeKind string

const (
	NoticePhaseExtended       NoticeKind = "PHASE_EXTENDED"
	NoticePhaseShifted        NoticeKind = "PHASE_SHIFTED"
	NoticeProjectEndSynced    NoticeKind = "PROJECT_END_SYNCED"
	NoticeProjectEndExtended  NoticeKind = "PROJECT_END_EXTENDED"
	NoticeProjectEndReverted  NoticeKind = "PROJECT_END_REVERTED"
	NoticeBudgetWarning       NoticeKind = "BUDGET_WARNING"
	NoticeEventSplit          NoticeKind = "EVENT_SPLIT"
	NoticeTrackingAutoStopped NoticeKind = "TRACKING_AUTO_STOPPED"
	// NoticeCannotEstimate flags a scope with hours left but no working day
	// to spread them over. Nothing is adjusted.
	NoticeCannotEstimate NoticeKind = "CANNOT_ESTIMATE"
)

// Notice tells the caller about one automatic adjustment. Notices are
// informational; the mutation that produced them has already been applied.
type Notice struct {
	Kind     NoticeKind
	EntityID string
	Message  string
}

// MutationResult is returned by writes that can trigger automatic
// adjustments or non-blocking warnings.
type MutationResult struct {
	ID      string
	Notices []Notice
}

func (r *MutationResult) Add(kind NoticeKind, entityID, msg string) {
	r.Notices = append(r.Notices, Notice{Kind: kind, EntityID: entityID, Message: msg})
}
