package entities

// Requisition represents a row in requisition_form. RequisitionID is a
// string-typed sequence allocated client side; LabID starts null and is
// only set by the explicit assignment operation.
type Requisition struct {
	RequisitionID string  `json:"requisition_id"`
	PatientID     int     `json:"patient_id"`
	LabID         *int    `json:"lab_id"`
	Department    *string `json:"department"`
	TestType      *string `json:"test_type"`
	TestCode      *string `json:"test_code"`
	ClinicalInfo  *string `json:"clinical_info"`
	DateRequested *string `json:"date_requested"`
	Priority      *string `json:"priority"`
	Status        *string `json:"status"`
	ResultDate    *string `json:"result_date"`
	Notes         *string `json:"notes"`
}

// RequisitionCreate carries the fields of a new requisition; the
// identifier is allocated by the server.
type RequisitionCreate struct {
	PatientID     int     `json:"patient_id"`
	LabID         *int    `json:"lab_id"`
	Department    *string `json:"department"`
	TestType      *string `json:"test_type"`
	TestCode      *string `json:"test_code"`
	ClinicalInfo  *string `json:"clinical_info"`
	DateRequested *string `json:"date_requested"`
	Priority      *string `json:"priority"`
	Status        *string `json:"status"`
	ResultDate    *string `json:"result_date"`
	Notes         *string `json:"notes"`
}

// RequisitionUpdate is a partial update over the editable clinical
// fields. Nil fields were not provided and are never diffed.
type RequisitionUpdate struct {
	Department    *string `json:"department"`
	TestType      *string `json:"test_type"`
	TestCode      *string `json:"test_code"`
	ClinicalInfo  *string `json:"clinical_info"`
	DateRequested *string `json:"date_requested"`
	Priority      *string `json:"priority"`
	Status        *string `json:"status"`
	ResultDate    *string `json:"result_date"`
	Notes         *string `json:"notes"`
}

// Fields returns the explicitly provided fields as a candidate set for
// the update reconciler.
func (u *RequisitionUpdate) Fields() Record {
	fields := Record{}
	putString(fields, "department", u.Department)
	putString(fields, "test_type", u.TestType)
	putString(fields, "test_code", u.TestCode)
	putString(fields, "clinical_info", u.ClinicalInfo)
	putString(fields, "date_requested", u.DateRequested)
	putString(fields, "priority", u.Priority)
	putString(fields, "status", u.Status)
	putString(fields, "result_date", u.ResultDate)
	putString(fields, "notes", u.Notes)
	return fields
}

// RequisitionWithLab joins a requisition with its lab's name and plain
// address, when a lab is assigned.
type RequisitionWithLab struct {
	Requisition Requisition `json:"requisition"`
	LabName     *string     `json:"lab_name"`
	LabAddress  *string     `json:"lab_address"`
}
