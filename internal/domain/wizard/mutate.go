package wizard

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"onboard/internal/validation"
)

// applyField writes one dotted-path field into the record. Paths are typed
// explicitly; an unknown path or a value of the wrong shape is a recoverable
// field error, never a panic.
func applyField(rec *Record, path string, value any) error {
	switch path {
	case "personalInfo.fullName":
		return setString(&rec.PersonalInfo.FullName, path, value)
	case "personalInfo.email":
		return setString(&rec.PersonalInfo.Email, path, value)
	case "personalInfo.phoneNumber":
		return setString(&rec.PersonalInfo.PhoneNumber, path, value)
	case "personalInfo.dateOfBirth":
		return setDate(&rec.PersonalInfo.DateOfBirth, path, value)
	case "personalInfo.profilePicture":
		if value == nil {
			rec.PersonalInfo.ProfilePicture = nil
			return nil
		}
		var ref FileRef
		if err := decodeInto(value, &ref); err != nil {
			return fieldError(path, "must be a file reference with name, size and contentType")
		}
		rec.PersonalInfo.ProfilePicture = &ref
		return nil

	case "jobDetails.department":
		return setString(&rec.JobDetails.Department, path, value)
	case "jobDetails.positionTitle":
		return setString(&rec.JobDetails.PositionTitle, path, value)
	case "jobDetails.startDate":
		return setDate(&rec.JobDetails.StartDate, path, value)
	case "jobDetails.jobType":
		return setString(&rec.JobDetails.JobType, path, value)
	case "jobDetails.salaryExpectation":
		number, ok := asNumber(value)
		if !ok {
			return fieldError(path, "must be a number")
		}
		rec.JobDetails.SalaryExpectation = number
		return nil
	case "jobDetails.manager":
		return setString(&rec.JobDetails.Manager, path, value)
	case "jobDetails.managerApproval":
		if value == nil {
			rec.JobDetails.ManagerApproval = nil
			return nil
		}
		approved, ok := value.(bool)
		if !ok {
			return fieldError(path, "must be true or false")
		}
		rec.JobDetails.ManagerApproval = &approved
		return nil

	case "skillsPreferences.primarySkills":
		var skills []SkillEntry
		if value != nil {
			if err := decodeInto(value, &skills); err != nil {
				return fieldError(path, "must be a list of {skill, experience} entries")
			}
		}
		rec.SkillsPreferences.PrimarySkills = skills
		return nil
	case "skillsPreferences.workingHours.start":
		return setString(&rec.SkillsPreferences.WorkingHours.Start, path, value)
	case "skillsPreferences.workingHours.end":
		return setString(&rec.SkillsPreferences.WorkingHours.End, path, value)
	case "skillsPreferences.remoteWorkPreference":
		number, ok := asNumber(value)
		if !ok || number != math.Trunc(number) {
			return fieldError(path, "must be a whole number")
		}
		rec.SkillsPreferences.RemoteWorkPreference = int(number)
		return nil
	case "skillsPreferences.extraNotes":
		return setString(&rec.SkillsPreferences.ExtraNotes, path, value)

	case "emergencyContact.contactName":
		contact, err := activeEmergencyContact(rec, path)
		if err != nil {
			return err
		}
		return setString(&contact.ContactName, path, value)
	case "emergencyContact.relationship":
		contact, err := activeEmergencyContact(rec, path)
		if err != nil {
			return err
		}
		return setString(&contact.Relationship, path, value)
	case "emergencyContact.phoneNumber":
		contact, err := activeEmergencyContact(rec, path)
		if err != nil {
			return err
		}
		return setString(&contact.PhoneNumber, path, value)
	case "emergencyContact.guardianContact":
		contact, err := activeEmergencyContact(rec, path)
		if err != nil {
			return err
		}
		if value == nil {
			contact.GuardianContact = nil
			return nil
		}
		var guardian GuardianContact
		if err := decodeInto(value, &guardian); err != nil {
			return fieldError(path, "must be a {name, phone} pair")
		}
		contact.GuardianContact = &guardian
		return nil
	case "emergencyContact.guardianContact.name":
		contact, err := activeEmergencyContact(rec, path)
		if err != nil {
			return err
		}
		if contact.GuardianContact == nil {
			contact.GuardianContact = &GuardianContact{}
		}
		return setString(&contact.GuardianContact.Name, path, value)
	case "emergencyContact.guardianContact.phone":
		contact, err := activeEmergencyContact(rec, path)
		if err != nil {
			return err
		}
		if contact.GuardianContact == nil {
			contact.GuardianContact = &GuardianContact{}
		}
		return setString(&contact.GuardianContact.Phone, path, value)

	case "confirmation":
		confirmed, ok := value.(bool)
		if !ok {
			return fieldError(path, "must be true or false")
		}
		rec.Confirmation = confirmed
		return nil
	}

	return fieldError(path, "unknown field path")
}

func activeEmergencyContact(rec *Record, path string) (*EmergencyContact, error) {
	if rec.EmergencyContact == nil {
		return nil, fieldError(path, "emergency contact section is not active")
	}
	return rec.EmergencyContact, nil
}

func setString(dst *string, path string, value any) error {
	if value == nil {
		*dst = ""
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fieldError(path, "must be a string")
	}
	*dst = s
	return nil
}

func setDate(dst **time.Time, path string, value any) error {
	switch v := value.(type) {
	case nil:
		*dst = nil
		return nil
	case time.Time:
		t := v
		*dst = &t
		return nil
	case string:
		if v == "" {
			*dst = nil
			return nil
		}
		parsed, err := validation.ParseDate(v)
		if err != nil {
			return fieldError(path, "must be a valid date in YYYY-MM-DD format")
		}
		*dst = &parsed
		return nil
	}
	return fieldError(path, "must be a date")
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		parsed, err := v.Float64()
		return parsed, err == nil
	}
	return 0, false
}

// decodeInto coerces loosely typed JSON values (map[string]any, []any) into
// their concrete record types via a marshal round trip.
func decodeInto(value, dst any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	return json.Unmarshal(raw, dst)
}
