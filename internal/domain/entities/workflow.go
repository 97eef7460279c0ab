package entities

// GeneratedOrders is the result of the generate-orders workflow: the
// diagnosis the inference step was grounded on plus both created
// records.
type GeneratedOrders struct {
	PatientID    int          `json:"patient_id"`
	Diagnosis    Diagnosis    `json:"diagnosis"`
	Prescription Prescription `json:"prescription"`
	Requisition  Requisition  `json:"requisition"`
}
