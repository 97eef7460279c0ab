package services

import "github.com/clinicbridge/backend/internal/domain/providers"

// Tool names exposed through the workflow registry.
const (
	ToolCreatePrescription   = "create_prescription"
	ToolCreateRequisition    = "create_requisition"
	ToolGenerateOrders       = "generate_orders_from_latest_diagnosis"
	ToolCompletePrescription = "complete_prescription_from_diagnosis"
	ToolCompleteRequisition  = "complete_requisition_from_diagnosis"
)

const orchestratorSystemPrompt = "You are a clinical workflow orchestrator. " +
	"You MUST call the provided tool exactly once with structured JSON arguments. " +
	"Do NOT respond in natural language."

// prescriptionDesignProperties are the clinical fields the inference
// step designs for a new or existing prescription. The pharmacy
// foreign key is deliberately absent: it is never the model's to set.
func prescriptionDesignProperties() map[string]any {
	return map[string]any{
		"medication_name":     map[string]any{"type": "string"},
		"medication_strength": map[string]any{"type": "string"},
		"medication_form":     map[string]any{"type": "string"},
		"dosage_instructions": map[string]any{"type": "string"},
		"quantity":            map[string]any{"type": "integer"},
		"refills_allowed":     map[string]any{"type": "integer"},
		"status":              map[string]any{"type": "string"},
		"notes":               map[string]any{"type": "string"},
	}
}

// requisitionDesignProperties mirror prescriptionDesignProperties for
// requisitions, with the lab foreign key likewise absent.
func requisitionDesignProperties() map[string]any {
	return map[string]any{
		"department":    map[string]any{"type": "string"},
		"test_type":     map[string]any{"type": "string"},
		"test_code":     map[string]any{"type": "string"},
		"clinical_info": map[string]any{"type": "string"},
		"priority":      map[string]any{"type": "string"},
		"status":        map[string]any{"type": "string"},
		"notes":         map[string]any{"type": "string"},
	}
}

func generateOrdersTool() providers.ToolFunction {
	return providers.ToolFunction{
		Name: "design_orders",
		Description: "Design one prescription and one laboratory requisition " +
			"appropriate for the given diagnosis.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prescription": map[string]any{
					"type":       "object",
					"properties": prescriptionDesignProperties(),
					"required": []string{
						"medication_name", "medication_strength", "medication_form",
						"dosage_instructions", "quantity", "refills_allowed", "status", "notes",
					},
				},
				"requisition": map[string]any{
					"type":       "object",
					"properties": requisitionDesignProperties(),
					"required": []string{
						"department", "test_type", "test_code",
						"clinical_info", "priority", "status", "notes",
					},
				},
			},
			"required": []string{"prescription", "requisition"},
		},
	}
}

func completePrescriptionTool() providers.ToolFunction {
	return providers.ToolFunction{
		Name: "complete_prescription",
		Description: "Fill in or refine the clinical fields of an existing " +
			"prescription so it matches the given diagnosis.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": prescriptionDesignProperties(),
			"required": []string{
				"medication_name", "medication_strength", "medication_form",
				"dosage_instructions", "quantity", "refills_allowed", "status", "notes",
			},
		},
	}
}

func completeRequisitionTool() providers.ToolFunction {
	return providers.ToolFunction{
		Name: "complete_requisition",
		Description: "Fill in or refine the clinical fields of an existing " +
			"laboratory requisition so it matches the given diagnosis.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": requisitionDesignProperties(),
			"required": []string{
				"department", "test_type", "test_code",
				"clinical_info", "priority", "status", "notes",
			},
		},
	}
}
