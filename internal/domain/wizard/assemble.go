package wizard

// Assemble produces the submittable record: a deep copy with every section
// and conditional field the final flags do not require pruned away.
// Assembling twice from the same inputs yields identical output.
func Assemble(rec Record, flags Flags) Record {
	out := rec.Clone()
	if !flags.RequiresEmergencyContact {
		out.EmergencyContact = nil
	}
	if !flags.RequiresManagerApproval {
		out.JobDetails.ManagerApproval = nil
	}
	return out
}
