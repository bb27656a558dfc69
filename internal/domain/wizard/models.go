package wizard

import "time"

var Departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance"}

var JobTypes = []string{"Full-time", "Part-time", "Contract"}

var Relationships = []string{"Parent", "Spouse", "Sibling", "Friend", "Other"}

const (
	MaxProfilePictureBytes = 5 * 1024 * 1024
	MaxExtraNotesLength    = 500
	MinPrimarySkills       = 3
	MaxStartDateOffsetDays = 90
	MinimumAge             = 18
	GuardianAgeThreshold   = 21
	RemoteApprovalPercent  = 50
)

var AcceptedImageTypes = []string{"image/jpeg", "image/jpg", "image/png"}

// FileRef is an opaque reference to an uploaded blob. The wizard only keeps
// the declared size and content type for validation; preview rendering is an
// external concern.
type FileRef struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

type PersonalInfo struct {
	FullName       string     `json:"fullName"`
	Email          string     `json:"email"`
	PhoneNumber    string     `json:"phoneNumber"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	ProfilePicture *FileRef   `json:"profilePicture,omitempty"`
}

type JobDetails struct {
	Department        string     `json:"department"`
	PositionTitle     string     `json:"positionTitle"`
	StartDate         *time.Time `json:"startDate,omitempty"`
	JobType           string     `json:"jobType"`
	SalaryExpectation float64    `json:"salaryExpectation"`
	Manager           string     `json:"manager"`
	ManagerApproval   *bool      `json:"managerApproval,omitempty"`
}

// SalaryBasis reports how SalaryExpectation is interpreted for the current
// job type. It never changes the numeric bounds, only the label.
func (j JobDetails) SalaryBasis() string {
	if j.JobType == "Contract" || j.JobType == "Part-time" {
		return "hourly"
	}
	return "annual"
}

type SkillEntry struct {
	Skill      string  `json:"skill"`
	Experience float64 `json:"experience"`
}

type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SkillsPreferences struct {
	PrimarySkills        []SkillEntry `json:"primarySkills"`
	WorkingHours         WorkingHours `json:"workingHours"`
	RemoteWorkPreference int          `json:"remoteWorkPreference"`
	ExtraNotes           string       `json:"extraNotes,omitempty"`
}

type GuardianContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type EmergencyContact struct {
	ContactName     string           `json:"contactName"`
	Relationship    string           `json:"relationship"`
	PhoneNumber     string           `json:"phoneNumber"`
	GuardianContact *GuardianContact `json:"guardianContact,omitempty"`
}

// Record is the top-level aggregate collected by the wizard. EmergencyContact
// is attached only while the derived policy requires it.
type Record struct {
	PersonalInfo      PersonalInfo      `json:"personalInfo"`
	JobDetails        JobDetails        `json:"jobDetails"`
	SkillsPreferences SkillsPreferences `json:"skillsPreferences"`
	EmergencyContact  *EmergencyContact `json:"emergencyContact,omitempty"`
	Confirmation      bool              `json:"confirmation"`
}

func NewRecord() Record {
	return Record{
		JobDetails: JobDetails{
			Department: "Engineering",
			JobType:    "Full-time",
		},
		SkillsPreferences: SkillsPreferences{
			WorkingHours: WorkingHours{Start: "09:00", End: "17:00"},
		},
	}
}

func defaultEmergencyContact() *EmergencyContact {
	return &EmergencyContact{Relationship: "Other"}
}

// Clone returns a deep copy so callers can hand out read-only snapshots.
func (r Record) Clone() Record {
	out := r
	if r.PersonalInfo.DateOfBirth != nil {
		dob := *r.PersonalInfo.DateOfBirth
		out.PersonalInfo.DateOfBirth = &dob
	}
	if r.PersonalInfo.ProfilePicture != nil {
		pic := *r.PersonalInfo.ProfilePicture
		out.PersonalInfo.ProfilePicture = &pic
	}
	if r.JobDetails.StartDate != nil {
		start := *r.JobDetails.StartDate
		out.JobDetails.StartDate = &start
	}
	if r.JobDetails.ManagerApproval != nil {
		approval := *r.JobDetails.ManagerApproval
		out.JobDetails.ManagerApproval = &approval
	}
	if len(r.SkillsPreferences.PrimarySkills) > 0 {
		skills := make([]SkillEntry, len(r.SkillsPreferences.PrimarySkills))
		copy(skills, r.SkillsPreferences.PrimarySkills)
		out.SkillsPreferences.PrimarySkills = skills
	}
	if r.EmergencyContact != nil {
		contact := *r.EmergencyContact
		if r.EmergencyContact.GuardianContact != nil {
			guardian := *r.EmergencyContact.GuardianContact
			contact.GuardianContact = &guardian
		}
		out.EmergencyContact = &contact
	}
	return out
}

// Manager is one entry in the externally supplied manager directory.
type Manager struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Lookups supplies the department-keyed tables the rule set needs. Both
// methods must be pure and side-effect free; implementations back them with
// in-memory snapshots.
type Lookups interface {
	Managers(department string) []Manager
	Skills(department string) []string
}
