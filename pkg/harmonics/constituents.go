// Package harmonics holds the NOAA standard constituent catalog and the
// cosine synthesis used to evaluate a harmonic tide model.
package harmonics

// Constituent identifies one periodic component of the tide.
type Constituent struct {
	// Number is the constituent's ordinal slot in the NOAA catalog, 1..37.
	Number int
	Name   string
	// Speed is the angular speed in degrees per hour.
	Speed float64
}

// Standard is the NOAA harmonic constituent catalog in the order the
// CO-OPS services report it. Speeds are degrees per hour.
var Standard = [37]Constituent{
	{1, "M2", 28.9841042},
	{2, "S2", 30.0000000},
	{3, "N2", 28.4397295},
	{4, "K1", 15.0410686},
	{5, "M4", 57.9682084},
	{6, "O1", 13.9430356},
	{7, "M6", 86.9523127},
	{8, "MK3", 44.0251729},
	{9, "S4", 60.0000000},
	{10, "MN4", 57.4238337},
	{11, "NU2", 28.5125831},
	{12, "S6", 90.0000000},
	{13, "MU2", 27.9682084},
	{14, "2N2", 27.8953548},
	{15, "OO1", 16.1391017},
	{16, "LAM2", 29.4556253},
	{17, "S1", 15.0000000},
	{18, "M1", 14.4966939},
	{19, "J1", 15.5854433},
	{20, "MM", 0.5443747},
	{21, "SSA", 0.0821373},
	{22, "SA", 0.0410686},
	{23, "MSF", 1.0158958},
	{24, "MF", 1.0980331},
	{25, "RHO", 13.4715145},
	{26, "Q1", 13.3986609},
	{27, "T2", 29.9589333},
	{28, "R2", 30.0410667},
	{29, "2Q1", 12.8542862},
	{30, "P1", 14.9589314},
	{31, "2SM2", 31.0158958},
	{32, "M3", 43.4761563},
	{33, "L2", 29.5284789},
	{34, "2MK3", 42.9271398},
	{35, "K2", 30.0821373},
	{36, "M8", 115.9364169},
	{37, "MS4", 58.9841042},
}

// Z0 is the distinguished zero frequency term. It never oscillates, so
// its amplitude is a constant vertical offset on the whole prediction.
var Z0 = Constituent{Number: 0, Name: "Z0", Speed: 0}
