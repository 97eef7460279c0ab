package entities

// Names of the remote tables this backend proxies. The store exposes
// only these, via generic GET/POST/PUT.
const (
	TablePatients      = "patients_registration"
	TableDiagnosis     = "diagnosis"
	TablePreferences   = "patient_preference"
	TablePrescriptions = "prescription_form"
	TableRequisitions  = "requisition_form"
	TablePharmacies    = "pharmacy_registration"
	TableLabs          = "lab_registration"
)
