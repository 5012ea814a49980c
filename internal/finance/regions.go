package finance

// Region codes with dedicated configurations. Unrecognized codes fall
// back to RegionGlobal.
const (
	RegionGlobal    = "GLOBAL"
	RegionIndonesia = "INDONESIA"
)

// StatutoryBenefits captures region-mandated obligations added to the
// separation cost component.
type StatutoryBenefits struct {
	// ThirteenthMonthRate is the mandatory 13th-month bonus (THR) as a
	// fraction of annual salary.
	ThirteenthMonthRate float64 `json:"thirteenth_month_rate" yaml:"thirteenth_month_rate"`
	// SocialInsuranceRate is the mandatory social-insurance contribution
	// (Jamsostek) as a fraction of annual salary.
	SocialInsuranceRate float64 `json:"social_insurance_rate" yaml:"social_insurance_rate"`
	// SeveranceMultiplier is applied as salary x multiplier / 12.
	SeveranceMultiplier float64 `json:"severance_multiplier" yaml:"severance_multiplier"`
}

// RegionalConfig describes one market: its currency, representative
// salary bands by seniority tier and any statutory benefit obligations.
type RegionalConfig struct {
	Code        string             `json:"code"`
	Currency    string             `json:"currency"`
	Label       string             `json:"label"`
	SalaryBands map[string]float64 `json:"salary_bands"`
	Benefits    *StatutoryBenefits `json:"benefits,omitempty"`
}

// ExchangeRates is the static conversion table. Rates are configuration
// data refreshed only by redeployment; AsOf marks how stale they are.
type ExchangeRates struct {
	USDToIDR float64 `json:"usd_to_idr" yaml:"usd_to_idr"`
	EURToIDR float64 `json:"eur_to_idr" yaml:"eur_to_idr"`
	AsOf     string  `json:"as_of" yaml:"as_of"`
}

// IDRToUSD is the inverse spot rate.
func (r ExchangeRates) IDRToUSD() float64 {
	if r.USDToIDR == 0 {
		return 0
	}
	return 1 / r.USDToIDR
}

// DefaultExchangeRates returns the built-in rate table.
func DefaultExchangeRates() ExchangeRates {
	return ExchangeRates{
		USDToIDR: 15750,
		EURToIDR: 17200,
		AsOf:     "2024-12-01",
	}
}

func defaultRegions() map[string]RegionalConfig {
	return map[string]RegionalConfig{
		RegionGlobal: {
			Code:     RegionGlobal,
			Currency: "USD",
			Label:    "Global/US Market",
			SalaryBands: map[string]float64{
				"entry":     35000,
				"mid":       65000,
				"senior":    95000,
				"executive": 150000,
			},
		},
		RegionIndonesia: {
			Code:     RegionIndonesia,
			Currency: "IDR",
			Label:    "Indonesia Market",
			SalaryBands: map[string]float64{
				"entry":     60000000,
				"mid":       120000000,
				"senior":    240000000,
				"executive": 480000000,
			},
			Benefits: &StatutoryBenefits{
				ThirteenthMonthRate: 0.083,
				SocialInsuranceRate: 0.054,
				SeveranceMultiplier: 2.0,
			},
		},
	}
}
