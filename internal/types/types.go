// Package types holds the request and response shapes shared by the API
// handlers.
package types

// LoginRequest carries credentials for session creation.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the session token and the resolved role.
type LoginResponse struct {
	Token       string   `json:"token"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	DisplayName string   `json:"display_name"`
}

// AssessRequest carries one employee's attributes for risk scoring.
// Attribute values may be numeric codes or the human-readable option
// labels; unknown attributes are ignored.
type AssessRequest struct {
	// An empty attribute set is valid; every attribute has a defined
	// default.
	Attributes map[string]interface{} `json:"attributes"`
	Department string                 `json:"department"`
}

// AssessResponse is the scored result for one employee.
type AssessResponse struct {
	WillLeave        bool    `json:"will_leave"`
	StayProbability  float64 `json:"stay_probability"`
	LeaveProbability float64 `json:"leave_probability"`
	RiskLevel        string  `json:"risk_level"`
	Mode             string  `json:"mode"`
	Department       string  `json:"department,omitempty"`
	AssessmentID     string  `json:"assessment_id,omitempty"`
}

// CostRequest asks for a replacement-cost breakdown.
type CostRequest struct {
	AnnualSalary float64            `json:"annual_salary" binding:"required"`
	Region       string             `json:"region"`
	Currency     string             `json:"currency"`
	Overrides    map[string]float64 `json:"overrides"`
}

// SavingsRequest asks for an annual savings projection.
type SavingsRequest struct {
	TotalEmployees       int     `json:"total_employees"`
	AttritionRatePercent float64 `json:"attrition_rate_percent"`
	AverageSalary        float64 `json:"average_salary" binding:"required"`
	ModelAccuracyPercent float64 `json:"model_accuracy_percent"`
	EffectivenessPercent float64 `json:"effectiveness_percent"`
	Region               string  `json:"region"`
	Currency             string  `json:"currency"`
}

// HealthResponse reports service liveness and the active scoring mode.
type HealthResponse struct {
	Status    string `json:"status"`
	Mode      string `json:"mode"`
	ModelType string `json:"model_type"`
	Version   string `json:"version"`
}
