// Package export renders human-readable artifacts from assembled records.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"onboard/internal/domain/wizard"
)

// SummaryPDF renders the assembled onboarding record as a one-page summary
// the new hire can keep.
func SummaryPDF(rec wizard.Record, flags wizard.Flags) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(80, 10, "Employee Onboarding Summary")
	pdf.Ln(12)

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, text)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
	}
	line := func(label, value string) {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s", label, value))
		pdf.Ln(6)
	}

	heading("Personal Information")
	line("Name", rec.PersonalInfo.FullName)
	line("Email", rec.PersonalInfo.Email)
	line("Phone", rec.PersonalInfo.PhoneNumber)
	if rec.PersonalInfo.DateOfBirth != nil {
		line("Date of birth", rec.PersonalInfo.DateOfBirth.Format("2006-01-02"))
	}
	if flags.Age != nil {
		line("Age", fmt.Sprintf("%d", *flags.Age))
	}
	pdf.Ln(3)

	heading("Job Details")
	line("Department", rec.JobDetails.Department)
	line("Position", rec.JobDetails.PositionTitle)
	if rec.JobDetails.StartDate != nil {
		line("Start date", rec.JobDetails.StartDate.Format("2006-01-02"))
	}
	line("Job type", rec.JobDetails.JobType)
	line("Salary expectation", fmt.Sprintf("%.2f (%s)", rec.JobDetails.SalaryExpectation, rec.JobDetails.SalaryBasis()))
	line("Manager", rec.JobDetails.Manager)
	if rec.JobDetails.ManagerApproval != nil {
		line("Remote work approved", fmt.Sprintf("%t", *rec.JobDetails.ManagerApproval))
	}
	pdf.Ln(3)

	heading("Skills & Preferences")
	skills := make([]string, 0, len(rec.SkillsPreferences.PrimarySkills))
	for _, entry := range rec.SkillsPreferences.PrimarySkills {
		skills = append(skills, fmt.Sprintf("%s (%.0fy)", entry.Skill, entry.Experience))
	}
	line("Primary skills", strings.Join(skills, ", "))
	line("Working hours", fmt.Sprintf("%s - %s", rec.SkillsPreferences.WorkingHours.Start, rec.SkillsPreferences.WorkingHours.End))
	line("Remote preference", fmt.Sprintf("%d%%", rec.SkillsPreferences.RemoteWorkPreference))
	if rec.SkillsPreferences.ExtraNotes != "" {
		line("Notes", rec.SkillsPreferences.ExtraNotes)
	}

	if contact := rec.EmergencyContact; contact != nil {
		pdf.Ln(3)
		heading("Emergency Contact")
		line("Name", contact.ContactName)
		line("Relationship", contact.Relationship)
		line("Phone", contact.PhoneNumber)
		if guardian := contact.GuardianContact; guardian != nil {
			line("Guardian", fmt.Sprintf("%s (%s)", guardian.Name, guardian.Phone))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}
