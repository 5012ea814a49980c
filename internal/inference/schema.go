package inference

// AttributeSet holds one employee's attributes as coded numeric values.
// Categorical attributes carry their enumeration code, numeric attributes
// their raw value. Constructed once per assessment and read-only after.
type AttributeSet map[string]float64

// Attribute names shared between the encoder, the fallback heuristic and
// the HTTP layer.
const (
	AttrAge                     = "Age"
	AttrGender                  = "Gender"
	AttrMaritalStatus           = "MaritalStatus"
	AttrDistanceFromHome        = "DistanceFromHome"
	AttrJobLevel                = "JobLevel"
	AttrYearsAtCompany          = "YearsAtCompany"
	AttrYearsInCurrentRole      = "YearsInCurrentRole"
	AttrYearsSinceLastPromotion = "YearsSinceLastPromotion"
	AttrOverTime                = "OverTime"
	AttrBusinessTravel          = "BusinessTravel"
	AttrMonthlyIncome           = "MonthlyIncome"
	AttrPercentSalaryHike       = "PercentSalaryHike"
	AttrStockOptionLevel        = "StockOptionLevel"
	AttrJobSatisfaction         = "JobSatisfaction"
	AttrWorkLifeBalance         = "WorkLifeBalance"
	AttrEnvironmentSatisfaction = "EnvironmentSatisfaction"
	AttrPerformanceRating       = "PerformanceRating"
)

var attributeCatalog = map[string]struct{}{
	AttrAge: {}, AttrGender: {}, AttrMaritalStatus: {},
	AttrDistanceFromHome: {}, AttrJobLevel: {}, AttrYearsAtCompany: {},
	AttrYearsInCurrentRole: {}, AttrYearsSinceLastPromotion: {},
	AttrOverTime: {}, AttrBusinessTravel: {}, AttrMonthlyIncome: {},
	AttrPercentSalaryHike: {}, AttrStockOptionLevel: {},
	AttrJobSatisfaction: {}, AttrWorkLifeBalance: {},
	AttrEnvironmentSatisfaction: {}, AttrPerformanceRating: {},
}

// KnownAttribute reports whether name is part of the attribute catalog.
func KnownAttribute(name string) bool {
	_, ok := attributeCatalog[name]
	return ok
}

// fourTierSatisfaction is the 1-4 ordinal shared by the satisfaction-style
// attributes.
var fourTierSatisfaction = map[string]float64{
	"Low":       1,
	"Medium":    2,
	"High":      3,
	"Very High": 4,
}

// categoricalCodes is the closed enumeration for each categorical
// attribute. Raw values not listed here code to 0.
var categoricalCodes = map[string]map[string]float64{
	AttrGender: {
		"Female": 0,
		"Male":   1,
	},
	AttrMaritalStatus: {
		"Single":   0,
		"Married":  1,
		"Divorced": 2,
	},
	AttrJobLevel: {
		"Entry":     1,
		"Junior":    2,
		"Mid":       3,
		"Senior":    4,
		"Executive": 5,
	},
	AttrOverTime: {
		"No":  0,
		"Yes": 1,
	},
	AttrBusinessTravel: {
		"Non-Travel":        0,
		"Travel_Rarely":     1,
		"Travel_Frequently": 2,
	},
	AttrStockOptionLevel: {
		"None":     0,
		"Basic":    1,
		"Standard": 2,
		"Premium":  3,
	},
	AttrJobSatisfaction:         fourTierSatisfaction,
	AttrEnvironmentSatisfaction: fourTierSatisfaction,
	AttrWorkLifeBalance: {
		"Bad":    1,
		"Good":   2,
		"Better": 3,
		"Best":   4,
	},
	AttrPerformanceRating: {
		"Low":         1,
		"Good":        2,
		"Excellent":   3,
		"Outstanding": 4,
	},
}

// NewAttributeSet converts a raw attribute map (as decoded from JSON) into
// coded numeric form. Numbers pass through unchanged; strings resolve via
// the closed enumerations, with unknown values coding to 0. Attribute
// names with no enumeration and a non-numeric value are dropped, which the
// encoder later treats as an unset slot.
func NewAttributeSet(raw map[string]any) AttributeSet {
	attrs := make(AttributeSet, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case float64:
			attrs[name] = v
		case int:
			attrs[name] = float64(v)
		case bool:
			if v {
				attrs[name] = 1
			} else {
				attrs[name] = 0
			}
		case string:
			if codes, ok := categoricalCodes[name]; ok {
				attrs[name] = codes[v]
			}
		}
	}
	return attrs
}

// valueOr returns the attribute's value, or def when the attribute is
// absent. The fallback heuristic needs the same defaults the reference
// behavior used for missing satisfaction tiers.
func (a AttributeSet) valueOr(name string, def float64) float64 {
	if v, ok := a[name]; ok {
		return v
	}
	return def
}

// DefaultFeatureNames is the trained schema's slot order, used when no
// feature_names artifact is available (fallback mode never encodes, but
// tests and tooling still want the canonical order).
func DefaultFeatureNames() []string {
	return []string{
		AttrAge,
		AttrMonthlyIncome,
		AttrYearsAtCompany,
		AttrYearsInCurrentRole,
		AttrYearsSinceLastPromotion,
		AttrDistanceFromHome,
		AttrPercentSalaryHike,
		AttrJobLevel,
		AttrStockOptionLevel,
		AttrJobSatisfaction,
		AttrWorkLifeBalance,
		AttrEnvironmentSatisfaction,
		AttrPerformanceRating,
		"Gender_Male",
		"MaritalStatus_Married",
		"MaritalStatus_Single",
		"OverTime_Yes",
		"BusinessTravel_Travel_Frequently",
		"BusinessTravel_Travel_Rarely",
	}
}
