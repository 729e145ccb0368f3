package core

import "math"

// Atomic masses (monoisotopic)
const (
	MassH = 1.0078250321
	MassO = 15.9949146221

	// Proton mass for charge calculations
	ProtonMass = 1.00727646688

	// MassWater is added once per peptide on top of its residues.
	MassWater = 2*MassH + MassO

	// MassPrecision is the number of decimals reported masses are rounded to.
	MassPrecision = 5
)

// ResidueMasses holds monoisotopic residue masses (amino acid minus water)
// in search order. J stands for Leu/Ile, which share a mass.
var ResidueMasses = []Monomer{
	{"A", 71.03711},
	{"R", 156.10111},
	{"N", 114.04293},
	{"D", 115.02694},
	{"C", 103.00919},
	{"E", 129.04259},
	{"Q", 128.05858},
	{"G", 57.02146},
	{"H", 137.05891},
	{"J", 113.08406},
	{"K", 128.09496},
	{"M", 131.04049},
	{"F", 147.06841},
	{"P", 97.05276},
	{"S", 87.03203},
	{"T", 101.04768},
	{"W", 186.07931},
	{"Y", 163.06333},
	{"V", 99.06841},
}

// StandardAlphabet returns a fresh alphabet of ResidueMasses.
func StandardAlphabet() *Alphabet {
	return NewAlphabet(ResidueMasses...)
}

// ResidueMassFromPrecursor converts an observed precursor m/z at the given
// charge into the summed residue mass, removing the protons and one water.
func ResidueMassFromPrecursor(mz float64, charge int) float64 {
	neutral := mz*float64(charge) - float64(charge)*ProtonMass
	return neutral - MassWater
}

// RoundFloat rounds a float to n decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
