package wizard

// Section identifiers. Declaration order here is the wizard's step order.
const (
	SectionPersonalInfo      = "personalInfo"
	SectionJobDetails        = "jobDetails"
	SectionSkillsPreferences = "skillsPreferences"
	SectionEmergencyContact  = "emergencyContact"
	SectionReview            = "review"
)

// Step is one position in the navigable sequence.
type Step struct {
	Section  string `json:"sectionName"`
	Terminal bool   `json:"terminal"`
}

// ComputeSteps maps the derived flags to the ordered step sequence. It is a
// pure function and is recomputed from scratch whenever flags change; the
// plan is never mutated incrementally.
func ComputeSteps(flags Flags) []Step {
	steps := make([]Step, 0, len(sections)+1)
	for _, def := range sections {
		if def.required == nil || def.required(flags) {
			steps = append(steps, Step{Section: def.name})
		}
	}
	steps = append(steps, Step{Section: SectionReview, Terminal: true})
	return steps
}

func clampIndex(index, total int) int {
	if index < 0 {
		return 0
	}
	if index > total-1 {
		return total - 1
	}
	return index
}
