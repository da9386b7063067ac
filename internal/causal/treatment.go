package causal

// EncodeTreatment converts an enactment year into a binary indicator
// aligned to the panel's periods: 1 from the enactment period onward,
// 0 before. Once treated, always treated; repeal is not modeled.
func EncodeTreatment(periods []int, enactmentYear int) []float64 {
	treated := make([]float64, len(periods))
	for i, y := range periods {
		if y >= enactmentYear {
			treated[i] = 1
		}
	}
	return treated
}
