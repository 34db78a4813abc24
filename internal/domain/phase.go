package domain

type Phase string

const (
	PhaseFreshman  Phase = "freshman"
	PhaseSophomore Phase = "sophomore"
	PhaseJunior    Phase = "junior"
	PhaseSenior    Phase = "senior"
	PhaseCommitted Phase = "committed"
)

// Milestone task ids that unlock each phase transition. The ids match the
// seeded task catalog.
var (
	FreshmanToSophomore = []string{"create-profile", "academic-plan", "first-highlight-video", "target-school-list"}
	SophomoreToJunior   = []string{"ncaa-eligibility-registration", "skills-video-update", "showcase-plan", "coach-intro-emails"}
	JuniorToSenior      = []string{"unofficial-visits", "standardized-tests", "official-visit-plan", "narrow-school-list"}
)

// NCAARegistrationTaskID is the catalog id of the eligibility center task.
const NCAARegistrationTaskID = "ncaa-eligibility-registration"

// CalculatePhase returns the recruiting phase implied by the completed task ids.
// Tiers are checked from the latest down, so completing only the senior
// milestones yields PhaseSenior without passing through earlier phases.
func CalculatePhase(completedTaskIDs []string, committed bool) Phase {
	if committed {
		return PhaseCommitted
	}

	done := make(map[string]bool, len(completedTaskIDs))
	for _, id := range completedTaskIDs {
		done[id] = true
	}

	switch {
	case allPresent(done, JuniorToSenior):
		return PhaseSenior
	case allPresent(done, SophomoreToJunior):
		return PhaseJunior
	case allPresent(done, FreshmanToSophomore):
		return PhaseSophomore
	default:
		return PhaseFreshman
	}
}

func allPresent(done map[string]bool, ids []string) bool {
	for _, id := range ids {
		if !done[id] {
			return false
		}
	}
	return true
}
