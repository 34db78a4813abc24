package domain

type Priority string

const (
	PriorityA Priority = "A"
	PriorityB Priority = "B"
	PriorityC Priority = "C"
)

// IsTop reports whether the priority is one of the athlete's top tiers (A or B).
func (p Priority) IsTop() bool {
	return p == PriorityA || p == PriorityB
}

type SchoolStatus string

const (
	SchoolInterested SchoolStatus = "interested"
	SchoolContacted  SchoolStatus = "contacted"
	SchoolVisited    SchoolStatus = "visited"
	SchoolOffered    SchoolStatus = "offered"
	SchoolCommitted  SchoolStatus = "committed"
	SchoolDeclined   SchoolStatus = "declined"
)

// IsActivelyRecruiting reports whether a school in this status still needs
// regular contact.
func (s SchoolStatus) IsActivelyRecruiting() bool {
	switch s {
	case SchoolInterested, SchoolContacted, SchoolVisited:
		return true
	}
	return false
}

type Division string

const (
	DivisionD1   Division = "D1"
	DivisionD2   Division = "D2"
	DivisionD3   Division = "D3"
	DivisionNAIA Division = "NAIA"
	DivisionJUCO Division = "JUCO"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

type VideoHealth string

const (
	VideoHealthOK      VideoHealth = "ok"
	VideoHealthBroken  VideoHealth = "broken"
	VideoHealthUnknown VideoHealth = "unknown"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Rank returns the ordinal severity (higher = more urgent). Unknown values rank 0.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 4
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	default:
		return 0
	}
}

type ActionType string

const (
	ActionLogInteraction ActionType = "log_interaction"
	ActionAddVideo       ActionType = "add_video"
	ActionAddSchool      ActionType = "add_school"
	ActionUpdateVideo    ActionType = "update_video"
	ActionUpdateTask     ActionType = "update_task"
)

// TriggerReason identifies what caused a suggestion refresh.
type TriggerReason string

const (
	TriggerProfileChange     TriggerReason = "profile_change"
	TriggerInteractionLogged TriggerReason = "interaction_logged"
	TriggerDailyRefresh      TriggerReason = "daily_refresh"
)

// ValidTriggerReasons is the canonical set of accepted trigger reasons.
var ValidTriggerReasons = map[TriggerReason]bool{
	TriggerProfileChange:     true,
	TriggerInteractionLogged: true,
	TriggerDailyRefresh:      true,
}

// SurfaceLocation is where surfaced suggestions are shown.
type SurfaceLocation string

const (
	LocationDashboard    SurfaceLocation = "dashboard"
	LocationSchoolDetail SurfaceLocation = "school_detail"
)
