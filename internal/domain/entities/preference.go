package entities

// Preference types: a patient preference targets either a pharmacy or
// a lab, never both.
const (
	PreferenceTypePharmacy = "pharmacy"
	PreferenceTypeLab      = "lab"
)

// Preference represents a row in patient_preference. Exactly one of
// PharmacyID/LabID is set, matching PreferenceType.
type Preference struct {
	PreferenceID   int     `json:"preference_id"`
	PatientID      int     `json:"patient_id"`
	PreferenceType string  `json:"preference_type"`
	PharmacyID     *int    `json:"pharmacy_id"`
	LabID          *int    `json:"lab_id"`
	Notes          *string `json:"notes"`
}

// PreferenceCreate carries the client-supplied fields of a new
// preference.
type PreferenceCreate struct {
	PatientID      int     `json:"patient_id"`
	PreferenceType string  `json:"preference_type"`
	PharmacyID     *int    `json:"pharmacy_id"`
	LabID          *int    `json:"lab_id"`
	Notes          *string `json:"notes"`
}

// SlimPreference is the trimmed by-patient view: the targeted facility
// id plus the free-text note.
type SlimPreference struct {
	TargetID int     `json:"target_id"`
	Notes    *string `json:"notes"`
}

// PreferredPharmacy is a pharmacy preference enriched with the facility
// record, plain address and distance from the patient. DistanceKm is
// nil when either side lacks usable coordinates.
type PreferredPharmacy struct {
	Pharmacy   Pharmacy `json:"pharmacy"`
	Address    *string  `json:"address"`
	DistanceKm *float64 `json:"distance_km"`
	Notes      *string  `json:"notes"`
}

// PreferredLab is the lab counterpart of PreferredPharmacy.
type PreferredLab struct {
	Lab        Lab      `json:"lab"`
	Address    *string  `json:"address"`
	DistanceKm *float64 `json:"distance_km"`
	Notes      *string  `json:"notes"`
}
