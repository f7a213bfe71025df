package calculator

import (
	"math"

	"cellheat/battery"
)

// ActivationOverpotential 活化过电位，V
//
//	eta = 2RT/F · asinh( I / (2·J0·I1C) )
//
// 结果限制在 [0, 0.5] V。
func ActivationOverpotential(p *battery.Parameters, current, temp float64) (float64, error) {
	if err := checkTemperature(temp); err != nil {
		return 0, err
	}

	argument := current / (2.0 * ExchangeCurrentDensity * p.OneCCurrent())
	eta := 2.0 * GasConstant * temp / Faraday * math.Asinh(argument)

	return clamp(eta, MinActivationOverpotential, MaxActivationOverpotential), nil
}

// NaN 会被压到下限
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		return hi
	}
	if v >= lo {
		return v
	}
	return lo
}
