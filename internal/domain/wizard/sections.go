package wizard

import "onboard/internal/validation"

// sectionDef ties a section identifier to its validator and to the derived
// predicate that controls its presence. Keeping the validator and the
// presence rule on the same descriptor keeps the visible step list and the
// validation schema from drifting apart.
type sectionDef struct {
	name     string
	required func(Flags) bool
	validate func(Record, Flags, Lookups) []validation.Violation
	attach   func(*Record)
	detach   func(*Record)
}

var sections = []sectionDef{
	{
		name: SectionPersonalInfo,
		validate: func(rec Record, _ Flags, _ Lookups) []validation.Violation {
			return validatePersonalInfo(rec.PersonalInfo)
		},
	},
	{
		name: SectionJobDetails,
		validate: func(rec Record, flags Flags, lookups Lookups) []validation.Violation {
			return validateJobDetails(rec.JobDetails, flags, lookups)
		},
	},
	{
		name: SectionSkillsPreferences,
		validate: func(rec Record, _ Flags, lookups Lookups) []validation.Violation {
			return validateSkillsPreferences(rec.SkillsPreferences, rec.JobDetails.Department, lookups)
		},
	},
	{
		name:     SectionEmergencyContact,
		required: func(flags Flags) bool { return flags.RequiresEmergencyContact },
		validate: func(rec Record, _ Flags, _ Lookups) []validation.Violation {
			if rec.EmergencyContact == nil {
				return nil
			}
			return validateEmergencyContact(*rec.EmergencyContact)
		},
		attach: func(rec *Record) {
			if rec.EmergencyContact == nil {
				rec.EmergencyContact = defaultEmergencyContact()
			}
		},
		detach: func(rec *Record) {
			rec.EmergencyContact = nil
		},
	},
}

func sectionByName(name string) (sectionDef, bool) {
	for _, def := range sections {
		if def.name == name {
			return def, true
		}
	}
	return sectionDef{}, false
}

// reconcileSections attaches or detaches conditional sub-records so the
// record shape always matches the current flags. A detached section is
// removed outright, not hidden, so it drops out of validation and assembly.
func reconcileSections(rec *Record, flags Flags) {
	for _, def := range sections {
		if def.required == nil {
			continue
		}
		if def.required(flags) {
			if def.attach != nil {
				def.attach(rec)
			}
		} else if def.detach != nil {
			def.detach(rec)
		}
	}
}

// ValidateSection runs the field rule set for one section. The review
// section validates only the confirmation flag; per-section data rules run
// when their section is part of the current plan.
func ValidateSection(rec Record, section string, flags Flags, lookups Lookups) []validation.Violation {
	if section == SectionReview {
		return validateConfirmation(rec)
	}
	def, ok := sectionByName(section)
	if !ok {
		return nil
	}
	if def.required != nil && !def.required(flags) {
		return nil
	}
	return def.validate(rec, flags, lookups)
}
