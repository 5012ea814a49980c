// Package profiles ships the preset employee profiles used for quick
// assessments and demos. Static configuration, process lifetime.
package profiles

// Profile is a named, ready-to-assess attribute set. Values use the raw
// option strings of the attribute enumerations so presets go through the
// exact same coding path as manual input.
type Profile struct {
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
	Attributes  map[string]any `json:"attributes"`
}

var presets = []Profile{
	{
		Name:        "high-performer",
		Label:       "High Performer",
		Description: "Senior, satisfied, well compensated",
		Attributes: map[string]any{
			"Age":                     35,
			"Gender":                  "Male",
			"MaritalStatus":           "Married",
			"DistanceFromHome":        5,
			"JobLevel":                "Senior",
			"YearsAtCompany":          8,
			"YearsInCurrentRole":      3,
			"YearsSinceLastPromotion": 1,
			"OverTime":                "No",
			"BusinessTravel":          "Travel_Rarely",
			"MonthlyIncome":           8000,
			"PercentSalaryHike":       18,
			"StockOptionLevel":        "Premium",
			"JobSatisfaction":         "Very High",
			"WorkLifeBalance":         "Better",
			"EnvironmentSatisfaction": "Very High",
			"PerformanceRating":       "Outstanding",
		},
	},
	{
		Name:        "average",
		Label:       "Average Employee",
		Description: "Mid-level, steady tenure, no risk flags",
		Attributes: map[string]any{
			"Age":                     32,
			"Gender":                  "Female",
			"MaritalStatus":           "Married",
			"DistanceFromHome":        7,
			"JobLevel":                "Mid",
			"YearsAtCompany":          5,
			"YearsInCurrentRole":      2,
			"YearsSinceLastPromotion": 2,
			"OverTime":                "No",
			"BusinessTravel":          "Travel_Rarely",
			"MonthlyIncome":           5000,
			"PercentSalaryHike":       13,
			"StockOptionLevel":        "Basic",
			"JobSatisfaction":         "High",
			"WorkLifeBalance":         "Better",
			"EnvironmentSatisfaction": "High",
			"PerformanceRating":       "Excellent",
		},
	},
	{
		Name:        "fresh-graduate",
		Label:       "Fresh Graduate",
		Description: "First year, entry level, long commute",
		Attributes: map[string]any{
			"Age":                     24,
			"Gender":                  "Male",
			"MaritalStatus":           "Single",
			"DistanceFromHome":        15,
			"JobLevel":                "Entry",
			"YearsAtCompany":          1,
			"YearsInCurrentRole":      1,
			"YearsSinceLastPromotion": 0,
			"OverTime":                "Yes",
			"BusinessTravel":          "Non-Travel",
			"MonthlyIncome":           3000,
			"PercentSalaryHike":       11,
			"StockOptionLevel":        "None",
			"JobSatisfaction":         "High",
			"WorkLifeBalance":         "Good",
			"EnvironmentSatisfaction": "High",
			"PerformanceRating":       "Good",
		},
	},
	{
		Name:        "at-risk",
		Label:       "At-Risk Employee",
		Description: "Stalled promotion, heavy travel, low satisfaction",
		Attributes: map[string]any{
			"Age":                     28,
			"Gender":                  "Female",
			"MaritalStatus":           "Single",
			"DistanceFromHome":        25,
			"JobLevel":                "Junior",
			"YearsAtCompany":          3,
			"YearsInCurrentRole":      3,
			"YearsSinceLastPromotion": 3,
			"OverTime":                "Yes",
			"BusinessTravel":          "Travel_Frequently",
			"MonthlyIncome":           3500,
			"PercentSalaryHike":       11,
			"StockOptionLevel":        "None",
			"JobSatisfaction":         "Low",
			"WorkLifeBalance":         "Bad",
			"EnvironmentSatisfaction": "Low",
			"PerformanceRating":       "Good",
		},
	},
}

// All returns every preset profile in display order.
func All() []Profile {
	out := make([]Profile, len(presets))
	copy(out, presets)
	return out
}

// Get looks up a preset by name.
func Get(name string) (Profile, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}
