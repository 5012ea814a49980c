package finance

import (
	"fmt"
	"math"
)

// ComponentCost is one component's share of the attrition cost.
type ComponentCost struct {
	Key             string  `json:"key"`
	Label           string  `json:"label"`
	Amount          float64 `json:"amount"`
	PercentOfSalary float64 `json:"percent_of_salary"`
}

// CostBreakdown is the per-employee attrition cost decomposition.
// Immutable once produced.
type CostBreakdown struct {
	Region          string          `json:"region"`
	Currency        string          `json:"currency"`
	AnnualSalary    float64         `json:"annual_salary"`
	Components      []ComponentCost `json:"components"`
	TotalCost       float64         `json:"total_cost"`
	PercentOfSalary float64         `json:"percent_of_salary"`
	// ExchangeRateToIDR is the static conversion rate for the breakdown's
	// currency, 1 when the currency is already IDR or has no table entry.
	ExchangeRateToIDR float64 `json:"exchange_rate_to_idr"`
}

// SavingsProjection is the aggregate financial projection for an
// organization.
type SavingsProjection struct {
	Region               string  `json:"region"`
	Currency             string  `json:"currency"`
	AverageSalary        float64 `json:"average_salary"`
	AnnualAttritionCases int     `json:"annual_attrition_cases"`
	CostPerCase          float64 `json:"cost_per_case"`
	CurrentAnnualCost    float64 `json:"current_annual_cost"`
	PredictedCases       float64 `json:"predicted_cases"`
	PreventedCases       float64 `json:"prevented_cases"`
	AnnualSavings        float64 `json:"annual_savings"`
	// SavingsPercent is 0 when the current annual cost is 0 (zero
	// employees or zero attrition rate), never a division fault.
	SavingsPercent float64            `json:"savings_percent"`
	Conversions    map[string]float64 `json:"conversions,omitempty"`
}

// Calculator computes attrition cost breakdowns and savings projections
// from static configuration tables. All methods are pure functions of
// their inputs plus the read-only tables, so a single Calculator is safe
// for concurrent use.
type Calculator struct {
	components []CostComponent
	regions    map[string]RegionalConfig
	rates      ExchangeRates
}

// NewCalculator builds a calculator with the built-in component, region
// and exchange-rate tables.
func NewCalculator() *Calculator {
	return &Calculator{
		components: defaultComponents,
		regions:    defaultRegions(),
		rates:      DefaultExchangeRates(),
	}
}

// NewCalculatorWithRates builds a calculator with an overridden
// exchange-rate table, for deployments that refresh rates via config.
func NewCalculatorWithRates(rates ExchangeRates) *Calculator {
	c := NewCalculator()
	c.rates = rates
	return c
}

// Region resolves a region code, silently falling back to the GLOBAL
// configuration for unrecognized codes.
func (c *Calculator) Region(code string) RegionalConfig {
	if cfg, ok := c.regions[code]; ok {
		return cfg
	}
	return c.regions[RegionGlobal]
}

// Regions lists all configured regions.
func (c *Calculator) Regions() []RegionalConfig {
	out := make([]RegionalConfig, 0, len(c.regions))
	for _, code := range []string{RegionGlobal, RegionIndonesia} {
		out = append(out, c.regions[code])
	}
	return out
}

// Components returns the cost component definitions in breakdown order.
func (c *Calculator) Components() []CostComponent { return c.components }

// Rates returns the static exchange-rate table.
func (c *Calculator) Rates() ExchangeRates { return c.rates }

// resolveMultipliers applies the precedence: explicit override beats
// region defaults beats global defaults. Overrides missing a component
// fall back to that component's default.
func (c *Calculator) resolveMultipliers(cfg RegionalConfig, overrides map[string]float64) map[string]float64 {
	multipliers := make(map[string]float64, len(c.components))
	for _, comp := range c.components {
		switch {
		case overrides != nil:
			if m, ok := overrides[comp.Key]; ok {
				multipliers[comp.Key] = m
			} else {
				multipliers[comp.Key] = comp.DefaultMultiplier
			}
		case cfg.Code == RegionIndonesia:
			multipliers[comp.Key] = comp.IndonesiaMultiplier
		default:
			multipliers[comp.Key] = comp.DefaultMultiplier
		}
	}
	return multipliers
}

// AttritionCost computes the per-employee cost breakdown for an annual
// salary in the given region. currency, when non-empty, overrides the
// display currency; overrides, when non-nil, take precedence over the
// regional multiplier defaults. A nonpositive salary is a caller
// contract violation and is rejected.
func (c *Calculator) AttritionCost(annualSalary float64, region, currency string, overrides map[string]float64) (*CostBreakdown, error) {
	if annualSalary <= 0 {
		return nil, fmt.Errorf("annual salary must be positive, got %v", annualSalary)
	}

	cfg := c.Region(region)
	baseCurrency := cfg.Currency
	if currency != "" {
		baseCurrency = currency
	}

	multipliers := c.resolveMultipliers(cfg, overrides)

	breakdown := &CostBreakdown{
		Region:       cfg.Code,
		Currency:     baseCurrency,
		AnnualSalary: annualSalary,
		Components:   make([]ComponentCost, 0, len(c.components)),
	}

	for _, comp := range c.components {
		cost := annualSalary * multipliers[comp.Key]

		// Statutory obligations are additive on top of the base
		// separation multiplier, not a replacement.
		if cfg.Benefits != nil && comp.Key == ComponentSeparation {
			b := cfg.Benefits
			cost += annualSalary * b.SeveranceMultiplier / 12
			cost += annualSalary * b.ThirteenthMonthRate
			cost += annualSalary * b.SocialInsuranceRate
		}

		breakdown.Components = append(breakdown.Components, ComponentCost{
			Key:             comp.Key,
			Label:           comp.Label,
			Amount:          cost,
			PercentOfSalary: cost / annualSalary * 100,
		})
		breakdown.TotalCost += cost
	}

	breakdown.PercentOfSalary = breakdown.TotalCost / annualSalary * 100
	breakdown.ExchangeRateToIDR = c.rateToIDR(baseCurrency)

	return breakdown, nil
}

func (c *Calculator) rateToIDR(currency string) float64 {
	switch currency {
	case "USD":
		return c.rates.USDToIDR
	case "EUR":
		return c.rates.EURToIDR
	default:
		return 1
	}
}

// AnnualSavings projects the yearly savings from attrition prediction.
// attritionRatePercent, accuracyPercent and effectivenessPercent are
// percentages (16 means 16%).
func (c *Calculator) AnnualSavings(totalEmployees int, attritionRatePercent, avgSalary, accuracyPercent, effectivenessPercent float64, region, currency string) (*SavingsProjection, error) {
	if totalEmployees < 0 {
		return nil, fmt.Errorf("total employees must not be negative, got %d", totalEmployees)
	}
	if attritionRatePercent < 0 || attritionRatePercent > 100 {
		return nil, fmt.Errorf("attrition rate must be between 0 and 100, got %v", attritionRatePercent)
	}

	cfg := c.Region(region)
	baseCurrency := cfg.Currency
	if currency != "" {
		baseCurrency = currency
	}

	cost, err := c.AttritionCost(avgSalary, region, baseCurrency, nil)
	if err != nil {
		return nil, err
	}
	costPerCase := cost.TotalCost

	annualCases := int(math.Floor(float64(totalEmployees) * attritionRatePercent / 100))
	currentAnnualCost := float64(annualCases) * costPerCase
	predictedCases := float64(annualCases) * accuracyPercent / 100
	preventedCases := predictedCases * effectivenessPercent / 100
	annualSavings := preventedCases * costPerCase

	savingsPercent := 0.0
	if currentAnnualCost > 0 {
		savingsPercent = annualSavings / currentAnnualCost * 100
	}

	projection := &SavingsProjection{
		Region:               cfg.Code,
		Currency:             baseCurrency,
		AverageSalary:        avgSalary,
		AnnualAttritionCases: annualCases,
		CostPerCase:          costPerCase,
		CurrentAnnualCost:    currentAnnualCost,
		PredictedCases:       predictedCases,
		PreventedCases:       preventedCases,
		AnnualSavings:        annualSavings,
		SavingsPercent:       savingsPercent,
	}

	switch baseCurrency {
	case "IDR":
		projection.Conversions = map[string]float64{"USD": annualSavings * c.rates.IDRToUSD()}
	case "USD":
		projection.Conversions = map[string]float64{"IDR": annualSavings * c.rates.USDToIDR}
	}

	return projection, nil
}
