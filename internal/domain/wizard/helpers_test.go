package wizard

import (
	"context"
	"fmt"
	"time"
)

type stubLookups struct{}

func (stubLookups) Managers(department string) []Manager {
	switch department {
	case "Engineering":
		return []Manager{{ID: "e1", Name: "Alice Johnson"}, {ID: "e2", Name: "Bob Smith"}}
	case "HR":
		return []Manager{{ID: "h1", Name: "Erin Davis"}}
	case "Finance":
		return []Manager{{ID: "f1", Name: "Frank Miller"}}
	}
	return nil
}

func (stubLookups) Skills(department string) []string {
	switch department {
	case "Engineering":
		return []string{"Go", "Python", "JavaScript", "SQL", "Docker"}
	case "HR":
		return []string{"Recruiting", "Onboarding", "Payroll", "Compliance"}
	case "Finance":
		return []string{"Accounting", "Forecasting", "Excel", "Auditing"}
	}
	return nil
}

type stubTransport struct {
	err     error
	release chan struct{}
	calls   int
	last    Record
}

func (s *stubTransport) Submit(_ context.Context, rec Record) error {
	if s.release != nil {
		<-s.release
	}
	s.calls++
	s.last = rec
	return s.err
}

func yearsAgo(years int) time.Time {
	// One extra day back keeps the birthday strictly in the past, so the
	// derived age is stable for the duration of a test run.
	return time.Now().AddDate(-years, 0, -1)
}

func daysAhead(days int) time.Time {
	return time.Now().AddDate(0, 0, days)
}

// nextWeekdayWithin returns the first upcoming date falling on the given
// weekday, at least one day out, well inside the 90 day start window.
func nextWeekdayWithin(day time.Weekday) time.Time {
	date := time.Now().AddDate(0, 0, 1)
	for date.Weekday() != day {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

func validPersonalInfo(ageYears int) PersonalInfo {
	dob := yearsAgo(ageYears)
	return PersonalInfo{
		FullName:    "Jane Doe",
		Email:       "jane.doe@example.com",
		PhoneNumber: "+1-555-123-4567",
		DateOfBirth: &dob,
	}
}

func validJobDetails() JobDetails {
	start := daysAhead(5)
	if start.Weekday() == time.Friday || start.Weekday() == time.Saturday {
		start = start.AddDate(0, 0, 2)
	}
	return JobDetails{
		Department:        "Engineering",
		PositionTitle:     "Backend Engineer",
		StartDate:         &start,
		JobType:           "Full-time",
		SalaryExpectation: 50000,
		Manager:           "e1",
	}
}

func validSkillsPreferences() SkillsPreferences {
	return SkillsPreferences{
		PrimarySkills: []SkillEntry{
			{Skill: "Go", Experience: 3},
			{Skill: "Python", Experience: 2},
			{Skill: "SQL", Experience: 5},
		},
		WorkingHours:         WorkingHours{Start: "09:00", End: "17:00"},
		RemoteWorkPreference: 30,
	}
}

func validRecord(ageYears int) Record {
	rec := Record{
		PersonalInfo:      validPersonalInfo(ageYears),
		JobDetails:        validJobDetails(),
		SkillsPreferences: validSkillsPreferences(),
	}
	flags := DeriveFlags(rec)
	if flags.RequiresEmergencyContact {
		rec.EmergencyContact = &EmergencyContact{
			ContactName:  "John Doe",
			Relationship: "Parent",
			PhoneNumber:  "+1-555-987-6543",
		}
	}
	return rec
}

// advanceTo walks the controller forward until the named section is current.
func advanceTo(c *Controller, section string) error {
	for i := 0; i < 6; i++ {
		if c.CurrentStep().SectionName == section {
			return nil
		}
		if err := c.Next(); err != nil {
			return fmt.Errorf("advancing past %s: %w", c.CurrentStep().SectionName, err)
		}
	}
	return fmt.Errorf("section %s never became current", section)
}

// fillSection mutates the controller's record with valid values for one
// section, the way a user would complete a step.
func fillSection(c *Controller, section string, ageYears int) error {
	type edit struct {
		path  string
		value any
	}
	var edits []edit
	switch section {
	case SectionPersonalInfo:
		info := validPersonalInfo(ageYears)
		edits = []edit{
			{"personalInfo.fullName", info.FullName},
			{"personalInfo.email", info.Email},
			{"personalInfo.phoneNumber", info.PhoneNumber},
			{"personalInfo.dateOfBirth", *info.DateOfBirth},
		}
	case SectionJobDetails:
		job := validJobDetails()
		edits = []edit{
			{"jobDetails.department", job.Department},
			{"jobDetails.positionTitle", job.PositionTitle},
			{"jobDetails.startDate", *job.StartDate},
			{"jobDetails.jobType", job.JobType},
			{"jobDetails.salaryExpectation", job.SalaryExpectation},
			{"jobDetails.manager", job.Manager},
		}
	case SectionSkillsPreferences:
		prefs := validSkillsPreferences()
		edits = []edit{
			{"skillsPreferences.primarySkills", prefs.PrimarySkills},
			{"skillsPreferences.workingHours.start", prefs.WorkingHours.Start},
			{"skillsPreferences.workingHours.end", prefs.WorkingHours.End},
			{"skillsPreferences.remoteWorkPreference", prefs.RemoteWorkPreference},
		}
	case SectionEmergencyContact:
		edits = []edit{
			{"emergencyContact.contactName", "John Doe"},
			{"emergencyContact.relationship", "Parent"},
			{"emergencyContact.phoneNumber", "+1-555-987-6543"},
		}
	}
	for _, e := range edits {
		if err := c.MutateField(e.path, e.value); err != nil {
			return fmt.Errorf("mutate %s: %w", e.path, err)
		}
	}
	return nil
}
