package models

// vaccinationProgramme is the fixed treatment reference for broiler batches.
var vaccinationProgramme = []Vaccination{
	{Days: []int{1, 2, 3}, Treatment: "Anti Stress", Products: []string{"COVIT", "NEMOVIT", "NEOXYVITAL"}},
	{Days: []int{9}, Treatment: "Gumboro", Products: []string{"GUMBO-L"}},
	{Days: []int{16}, Treatment: "Rappel Gumboro", Products: []string{"IBDL"}},
	{Days: []int{21}, Treatment: "Rappel Newcastle", Products: []string{"LASOTA"}},
}

// VaccinationProgramme returns a fresh deep copy of the treatment reference so
// each batch tracks completion independently.
func VaccinationProgramme() []Vaccination {
	out := make([]Vaccination, len(vaccinationProgramme))
	for i, v := range vaccinationProgramme {
		out[i] = v.Clone()
	}
	return out
}

// ReferenceWeightGrams maps a batch day to the theoretical broiler weight in
// grams, used to plot real growth against the breed reference curve.
var ReferenceWeightGrams = map[int]float64{
	1: 55, 2: 71, 3: 90, 4: 112, 5: 138, 6: 168, 7: 202, 8: 240, 9: 283, 10: 330,
	11: 382, 12: 440, 13: 503, 14: 570, 15: 639, 16: 711, 17: 786, 18: 864, 19: 945, 20: 1029,
	21: 1116, 22: 1205, 23: 1296, 24: 1390, 25: 1486, 26: 1583, 27: 1682, 28: 1783, 29: 1886, 30: 1989,
	31: 2094, 32: 2200, 33: 2306, 34: 2413, 35: 2521,
}
