package finance

// Cost component keys, in breakdown order.
const (
	ComponentRecruitment      = "recruitment"
	ComponentTraining         = "training"
	ComponentProductivityLoss = "productivity_loss"
	ComponentSeparation       = "separation"
	ComponentOpportunityCost  = "opportunity_cost"
)

// CostComponent defines one attrition cost component. Multipliers are
// fractions of annual salary; IndustryRange is the plausible band the
// default sits inside.
type CostComponent struct {
	Key                 string     `json:"key"`
	Label               string     `json:"label"`
	Description         string     `json:"description"`
	DefaultMultiplier   float64    `json:"default_multiplier"`
	IndustryRange       [2]float64 `json:"industry_range"`
	IndonesiaMultiplier float64    `json:"indonesia_multiplier"`
}

// defaultComponents is the standardized attrition cost decomposition.
// Static configuration for the process lifetime.
var defaultComponents = []CostComponent{
	{
		Key:                 ComponentRecruitment,
		Label:               "Recruitment & Hiring",
		Description:         "Job posting, screening, interviewing, background checks",
		DefaultMultiplier:   0.20,
		IndustryRange:       [2]float64{0.15, 0.25},
		IndonesiaMultiplier: 0.18,
	},
	{
		Key:                 ComponentTraining,
		Label:               "Training & Onboarding",
		Description:         "New employee training, orientation, materials",
		DefaultMultiplier:   0.15,
		IndustryRange:       [2]float64{0.10, 0.20},
		IndonesiaMultiplier: 0.12,
	},
	{
		Key:                 ComponentProductivityLoss,
		Label:               "Productivity Loss",
		Description:         "Lost productivity during transition period",
		DefaultMultiplier:   0.50,
		IndustryRange:       [2]float64{0.30, 0.70},
		IndonesiaMultiplier: 0.45,
	},
	{
		Key:                 ComponentSeparation,
		Label:               "Separation Costs",
		Description:         "Exit interviews, knowledge transfer, final pay",
		DefaultMultiplier:   0.05,
		IndustryRange:       [2]float64{0.03, 0.08},
		IndonesiaMultiplier: 0.08,
	},
	{
		Key:                 ComponentOpportunityCost,
		Label:               "Opportunity Cost",
		Description:         "Delayed projects, overtime for remaining staff",
		DefaultMultiplier:   0.10,
		IndustryRange:       [2]float64{0.05, 0.15},
		IndonesiaMultiplier: 0.07,
	},
}
