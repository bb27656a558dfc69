package wizard

import "time"

// Flags is the output of the derived-field policy. Age is nil while the date
// of birth is absent.
type Flags struct {
	Age                      *int `json:"age"`
	RequiresEmergencyContact bool `json:"requiresEmergencyContact"`
	RequiresManagerApproval  bool `json:"requiresManagerApproval"`
}

// DeriveFlags recomputes the derived flags from the record. Pure function of
// its inputs; callers re-run it after every mutation to a controlling field.
func DeriveFlags(rec Record) Flags {
	return DeriveFlagsAt(rec, time.Now())
}

func DeriveFlagsAt(rec Record, now time.Time) Flags {
	flags := Flags{
		RequiresManagerApproval: rec.SkillsPreferences.RemoteWorkPreference > RemoteApprovalPercent,
	}
	if rec.PersonalInfo.DateOfBirth != nil {
		age := ageAt(*rec.PersonalInfo.DateOfBirth, now)
		flags.Age = &age
		flags.RequiresEmergencyContact = age < GuardianAgeThreshold
	}
	return flags
}

// ageAt is calendar-aware: the year difference drops by one until the
// birthday has passed in the current year.
func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
