package entities

// Diagnosis represents a row in the diagnosis table.
type Diagnosis struct {
	DiagnosisID          int     `json:"diagnosis_id"`
	PatientID            int     `json:"patient_id"`
	DoctorID             *int    `json:"doctor_id"`
	DiagnosisCode        *string `json:"diagnosis_code"`
	DiagnosisDescription *string `json:"diagnosis_description"`
	DiagnosisDate        *string `json:"diagnosis_date"`
}

// DiagnosisCreate carries the client-supplied fields of a new diagnosis.
type DiagnosisCreate struct {
	PatientID            int     `json:"patient_id"`
	DoctorID             *int    `json:"doctor_id"`
	DiagnosisCode        *string `json:"diagnosis_code"`
	DiagnosisDescription *string `json:"diagnosis_description"`
	DiagnosisDate        *string `json:"diagnosis_date"`
}

// Description returns the free-text description, "" when unset.
func (d *Diagnosis) Description() string {
	if d.DiagnosisDescription == nil {
		return ""
	}
	return *d.DiagnosisDescription
}
