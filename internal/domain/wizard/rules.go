package wizard

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"onboard/internal/validation"
)

var (
	phonePattern = regexp.MustCompile(`^\+\d{1,3}-\d{3}-\d{3}-\d{4}$`)
	timePattern  = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

const phoneFormatMessage = "Phone number must be in format: +1-123-456-7890"

func validEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndex(value, "@")
	return strings.Contains(value[at+1:], ".")
}

func fullNameTokens(value string) int {
	return len(strings.Fields(strings.TrimSpace(value)))
}

func validatePersonalInfo(info PersonalInfo) []validation.Violation {
	v := validation.NewValidator()

	if v.Required("personalInfo.fullName", info.FullName, "Full name is required") &&
		fullNameTokens(info.FullName) < 2 {
		v.Add("personalInfo.fullName", "Please enter at least first and last name")
	}

	if v.Required("personalInfo.email", info.Email, "Email is required") &&
		!validEmail(info.Email) {
		v.Add("personalInfo.email", "Please enter a valid email address")
	}

	if v.Required("personalInfo.phoneNumber", info.PhoneNumber, phoneFormatMessage) {
		v.Pattern("personalInfo.phoneNumber", info.PhoneNumber, phonePattern, phoneFormatMessage)
	}

	if info.DateOfBirth == nil {
		v.Add("personalInfo.dateOfBirth", "Date of birth is required")
	} else if ageAt(*info.DateOfBirth, time.Now()) < MinimumAge {
		v.Add("personalInfo.dateOfBirth", "You must be at least 18 years old")
	}

	if pic := info.ProfilePicture; pic != nil {
		if pic.Size > MaxProfilePictureBytes {
			v.Add("personalInfo.profilePicture", fmt.Sprintf("Maximum file size is %dMB", MaxProfilePictureBytes/1024/1024))
		}
		accepted := false
		for _, t := range AcceptedImageTypes {
			if pic.ContentType == t {
				accepted = true
				break
			}
		}
		if !accepted {
			v.Add("personalInfo.profilePicture", "Only .jpg, .jpeg, and .png formats are supported")
		}
	}

	return v.Violations()
}

func validateJobDetails(job JobDetails, flags Flags, lookups Lookups) []validation.Violation {
	v := validation.NewValidator()

	departmentOK := v.Enum("jobDetails.department", job.Department, Departments, "Please select a department")

	if len(strings.TrimSpace(job.PositionTitle)) < 3 {
		v.Add("jobDetails.positionTitle", "Position title must be at least 3 characters")
	}

	startDateOK := false
	today := truncateToDay(time.Now())
	if job.StartDate == nil {
		v.Add("jobDetails.startDate", "Start date is required")
	} else {
		start := truncateToDay(*job.StartDate)
		switch {
		case start.Before(today):
			v.Add("jobDetails.startDate", "Start date cannot be in the past")
		case start.After(today.AddDate(0, 0, MaxStartDateOffsetDays)):
			v.Add("jobDetails.startDate", "Start date cannot be more than 90 days in the future")
		default:
			startDateOK = true
		}
	}

	// Cross-field rule: suppressed while the start date itself is invalid so
	// the user is not shown two errors for one field.
	if startDateOK && restrictedDepartment(job.Department) {
		day := job.StartDate.Weekday()
		if day == time.Friday || day == time.Saturday {
			v.Add("jobDetails.startDate", "HR and Finance start dates cannot be on a weekend (Friday or Saturday)")
		}
	}

	v.Enum("jobDetails.jobType", job.JobType, JobTypes, "Please select a job type")

	if job.SalaryExpectation < 1 {
		v.Add("jobDetails.salaryExpectation", "Salary is required")
	}

	if v.Required("jobDetails.manager", job.Manager, "Manager is required") && departmentOK {
		if !managerInDepartment(lookups, job.Department, job.Manager) {
			v.Add("jobDetails.manager", "Manager must belong to the selected department")
		}
	}

	if flags.RequiresManagerApproval && job.ManagerApproval == nil {
		v.Add("jobDetails.managerApproval", "Manager approval is required when remote work preference is above 50%")
	}

	return v.Violations()
}

func restrictedDepartment(department string) bool {
	return department == "HR" || department == "Finance"
}

func managerInDepartment(lookups Lookups, department, managerID string) bool {
	if lookups == nil {
		return true
	}
	for _, m := range lookups.Managers(department) {
		if m.ID == managerID {
			return true
		}
	}
	return false
}

func validateSkillsPreferences(prefs SkillsPreferences, department string, lookups Lookups) []validation.Violation {
	v := validation.NewValidator()

	if len(prefs.PrimarySkills) < MinPrimarySkills {
		v.Add("skillsPreferences.primarySkills", "Please select at least 3 skills")
	}

	catalog := map[string]bool{}
	if lookups != nil {
		for _, skill := range lookups.Skills(department) {
			catalog[skill] = true
		}
	}
	seen := map[string]bool{}
	for i, entry := range prefs.PrimarySkills {
		path := fmt.Sprintf("skillsPreferences.primarySkills[%d].skill", i)
		if entry.Skill == "" {
			v.Add(path, "Skill name is required")
		} else {
			if seen[entry.Skill] {
				v.Add(path, "Skills must be unique")
			}
			seen[entry.Skill] = true
			if lookups != nil && !catalog[entry.Skill] {
				v.Add(path, "Skill is not offered by the selected department")
			}
		}
		expPath := fmt.Sprintf("skillsPreferences.primarySkills[%d].experience", i)
		if entry.Experience < 0 {
			v.Add(expPath, "Experience cannot be negative")
		} else if entry.Experience > 50 {
			v.Add(expPath, "Experience seems too high")
		}
	}

	startOK := v.Pattern("skillsPreferences.workingHours.start", prefs.WorkingHours.Start, timePattern, "Invalid time format")
	endOK := v.Pattern("skillsPreferences.workingHours.end", prefs.WorkingHours.End, timePattern, "Invalid time format")
	// Ordering compares hour components only and is suppressed while either
	// time is malformed.
	if startOK && endOK && hourComponent(prefs.WorkingHours.End) <= hourComponent(prefs.WorkingHours.Start) {
		v.Add("skillsPreferences.workingHours", "End time must be after start time")
	}

	if prefs.RemoteWorkPreference < 0 {
		v.Add("skillsPreferences.remoteWorkPreference", "Minimum is 0%")
	} else if prefs.RemoteWorkPreference > 100 {
		v.Add("skillsPreferences.remoteWorkPreference", "Maximum is 100%")
	}

	if len(prefs.ExtraNotes) > MaxExtraNotesLength {
		v.Add("skillsPreferences.extraNotes", "Notes cannot exceed 500 characters")
	}

	return v.Violations()
}

func hourComponent(value string) int {
	hour := 0
	for _, r := range value {
		if r == ':' {
			break
		}
		hour = hour*10 + int(r-'0')
	}
	return hour
}

func validateEmergencyContact(contact EmergencyContact) []validation.Violation {
	v := validation.NewValidator()

	if v.Required("emergencyContact.contactName", contact.ContactName, "Contact name is required") &&
		fullNameTokens(contact.ContactName) < 2 {
		v.Add("emergencyContact.contactName", "Please enter full name")
	}

	v.Enum("emergencyContact.relationship", contact.Relationship, Relationships, "Please select a relationship")

	if v.Required("emergencyContact.phoneNumber", contact.PhoneNumber, phoneFormatMessage) {
		v.Pattern("emergencyContact.phoneNumber", contact.PhoneNumber, phonePattern, phoneFormatMessage)
	}

	// Guardian details stay optional at every age; when supplied they must be
	// complete.
	if guardian := contact.GuardianContact; guardian != nil {
		v.Required("emergencyContact.guardianContact.name", guardian.Name, "Guardian name is required")
		v.Pattern("emergencyContact.guardianContact.phone", guardian.Phone, phonePattern, phoneFormatMessage)
	}

	return v.Violations()
}

func validateConfirmation(rec Record) []validation.Violation {
	if rec.Confirmation {
		return nil
	}
	return []validation.Violation{{
		FieldPath: "confirmation",
		Message:   "You must confirm that the information is correct",
	}}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
