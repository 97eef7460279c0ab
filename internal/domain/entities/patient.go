package entities

// Patient represents a row in patients_registration. ContactInfo is a
// composite address: a plain address optionally followed by
// `||{"lat":..,"lng":..}`.
type Patient struct {
	PatientID            int     `json:"patient_id"`
	Name                 string  `json:"name"`
	DOB                  *string `json:"dob"`
	Gender               *string `json:"gender"`
	ContactInfo          *string `json:"contact_info"`
	PhoneNumber          *string `json:"phone_number"`
	OHIPCode             *string `json:"OHIP_code"`
	PrivateInsuranceName *string `json:"private_insurance_name"`
	PrivateInsuranceID   *string `json:"private_insurance_id"`
	WeightKg             *string `json:"weight_kg"`
	HeightCm             *string `json:"height_cm"`
	FamilyDoctorID       *string `json:"family_doctor_id"`
}

// PatientCreate carries the client-supplied fields of a new patient.
type PatientCreate struct {
	Name                 string  `json:"name"`
	DOB                  *string `json:"dob"`
	Gender               *string `json:"gender"`
	ContactInfo          *string `json:"contact_info"`
	PhoneNumber          *string `json:"phone_number"`
	OHIPCode             *string `json:"OHIP_code"`
	PrivateInsuranceName *string `json:"private_insurance_name"`
	PrivateInsuranceID   *string `json:"private_insurance_id"`
	WeightKg             *string `json:"weight_kg"`
	HeightCm             *string `json:"height_cm"`
	FamilyDoctorID       *string `json:"family_doctor_id"`
}
