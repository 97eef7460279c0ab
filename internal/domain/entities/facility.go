package entities

// Pharmacy represents a row in pharmacy_registration. Address is a
// composite address whose coordinate half is optional.
type Pharmacy struct {
	PharmacyID   int     `json:"pharmacy_id"`
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	PhoneNumber  *string `json:"phone_number"`
	Address      *string `json:"address"`
	LicenseNo    *string `json:"license_no"`
	Status       *string `json:"status"`
	RegisteredOn *string `json:"registered_on"`
}

// Lab represents a row in lab_registration.
type Lab struct {
	LabID        int     `json:"lab_id"`
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	PhoneNumber  *string `json:"phone_number"`
	Address      *string `json:"address"`
	LicenseNo    *string `json:"license_no"`
	Status       *string `json:"status"`
	RegisteredOn *string `json:"registered_on"`
}

// FacilityCreate carries the client-supplied fields of a new pharmacy
// or lab registration.
type FacilityCreate struct {
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	PhoneNumber  *string `json:"phone_number"`
	Address      *string `json:"address"`
	LicenseNo    *string `json:"license_no"`
	Status       *string `json:"status"`
	RegisteredOn *string `json:"registered_on"`
}

// NearbyPharmacy is a pharmacy ranked by distance from a patient, with
// the coordinate half stripped from its address.
type NearbyPharmacy struct {
	PharmacyID  int     `json:"pharmacy_id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	DistanceKm  float64 `json:"distance_km"`
}

// NearbyLab is the lab counterpart of NearbyPharmacy.
type NearbyLab struct {
	LabID       int     `json:"lab_id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	DistanceKm  float64 `json:"distance_km"`
}
