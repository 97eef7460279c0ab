package entities

// Prescription represents a row in prescription_form. PrescriptionID is
// a string-typed monotonically increasing sequence allocated client
// side. PharmacyID starts null and is only ever set by the explicit
// assignment operation.
type Prescription struct {
	PrescriptionID     string  `json:"prescription_id"`
	PatientID          int     `json:"patient_id"`
	PrescriberID       *string `json:"prescriber_id"`
	MedicationName     *string `json:"medication_name"`
	MedicationStrength *string `json:"medication_strength"`
	MedicationForm     *string `json:"medication_form"`
	DosageInstructions *string `json:"dosage_instructions"`
	Quantity           *int    `json:"quantity"`
	RefillsAllowed     *int    `json:"refills_allowed"`
	DatePrescribed     *string `json:"date_prescribed"`
	ExpiryDate         *string `json:"expiry_date"`
	Status             *string `json:"status"`
	Notes              *string `json:"notes"`
	PharmacyID         *int    `json:"pharmacy_id"`
}

// PrescriptionCreate carries the fields of a new prescription; the
// identifier is allocated by the server, never client-supplied.
type PrescriptionCreate struct {
	PatientID          int     `json:"patient_id"`
	PrescriberID       *string `json:"prescriber_id"`
	MedicationName     *string `json:"medication_name"`
	MedicationStrength *string `json:"medication_strength"`
	MedicationForm     *string `json:"medication_form"`
	DosageInstructions *string `json:"dosage_instructions"`
	Quantity           *int    `json:"quantity"`
	RefillsAllowed     *int    `json:"refills_allowed"`
	DatePrescribed     *string `json:"date_prescribed"`
	ExpiryDate         *string `json:"expiry_date"`
	Status             *string `json:"status"`
	Notes              *string `json:"notes"`
	PharmacyID         *int    `json:"pharmacy_id"`
}

// PrescriptionUpdate is a partial update. Only the clinical fields are
// editable here; the pharmacy foreign key has its own assignment
// operation. Nil fields were not provided and are never diffed.
type PrescriptionUpdate struct {
	PrescriberID       *string `json:"prescriber_id"`
	MedicationName     *string `json:"medication_name"`
	MedicationStrength *string `json:"medication_strength"`
	MedicationForm     *string `json:"medication_form"`
	DosageInstructions *string `json:"dosage_instructions"`
	Quantity           *int    `json:"quantity"`
	RefillsAllowed     *int    `json:"refills_allowed"`
	DatePrescribed     *string `json:"date_prescribed"`
	ExpiryDate         *string `json:"expiry_date"`
	Status             *string `json:"status"`
	Notes              *string `json:"notes"`
}

// Fields returns the explicitly provided fields as a candidate set for
// the update reconciler.
func (u *PrescriptionUpdate) Fields() Record {
	fields := Record{}
	putString(fields, "prescriber_id", u.PrescriberID)
	putString(fields, "medication_name", u.MedicationName)
	putString(fields, "medication_strength", u.MedicationStrength)
	putString(fields, "medication_form", u.MedicationForm)
	putString(fields, "dosage_instructions", u.DosageInstructions)
	putInt(fields, "quantity", u.Quantity)
	putInt(fields, "refills_allowed", u.RefillsAllowed)
	putString(fields, "date_prescribed", u.DatePrescribed)
	putString(fields, "expiry_date", u.ExpiryDate)
	putString(fields, "status", u.Status)
	putString(fields, "notes", u.Notes)
	return fields
}

// PrescriptionWithPharmacy joins a prescription with its pharmacy's
// name and plain address, when a pharmacy is assigned.
type PrescriptionWithPharmacy struct {
	Prescription    Prescription `json:"prescription"`
	PharmacyName    *string      `json:"pharmacy_name"`
	PharmacyAddress *string      `json:"pharmacy_address"`
}

func putString(fields Record, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}

func putInt(fields Record, key string, v *int) {
	if v != nil {
		fields[key] = *v
	}
}
