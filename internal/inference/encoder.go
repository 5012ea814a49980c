package inference

// Encode maps an attribute set onto the ordered feature schema. Every
// slot starts at 0; slots whose name matches an attribute take that
// attribute's coded value; the fixed one-hot slots derive from the
// composite categorical attributes. Slots with no mapping rule stay 0 so
// the caller never has to track schema churn. Pure transform, no error
// outcomes.
func Encode(attrs AttributeSet, schema []string) []float64 {
	features := make([]float64, len(schema))

	derived := oneHotSlots(attrs)
	for i, name := range schema {
		if v, ok := attrs[name]; ok {
			features[i] = v
			continue
		}
		if v, ok := derived[name]; ok {
			features[i] = v
		}
	}
	return features
}

// oneHotSlots computes the derived indicator slots from the composite
// categorical attributes. A missing attribute behaves as code 0, so a
// missing MaritalStatus reads as Single, matching the encoding the model
// was trained against.
func oneHotSlots(attrs AttributeSet) map[string]float64 {
	return map[string]float64{
		"Gender_Male":                      indicator(attrs[AttrGender] == 1),
		"MaritalStatus_Married":            indicator(attrs[AttrMaritalStatus] == 1),
		"MaritalStatus_Single":             indicator(attrs[AttrMaritalStatus] == 0),
		"OverTime_Yes":                     indicator(attrs[AttrOverTime] == 1),
		"BusinessTravel_Travel_Frequently": indicator(attrs[AttrBusinessTravel] == 2),
		"BusinessTravel_Travel_Rarely":     indicator(attrs[AttrBusinessTravel] == 1),
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
