package calculator

import (
	"math"

	"cellheat/battery"
)

// MixPower 混合项（浓度梯度松弛）产热功率，W
//
// t <= 0 时尚未形成梯度，返回 0。该项不做截断。
func MixPower(p *battery.Parameters, current, time, temp float64) (float64, error) {
	if err := checkTemperature(temp); err != nil {
		return 0, err
	}
	if time <= 0 {
		return 0, nil
	}

	tau := p.TimeConstant()
	dQcell := p.TotalCharge() // C
	dQcellTau := dQcell / tau // A

	socRate := current / dQcell             // 1/s
	timeFactor := 1.0 - math.Exp(-time/tau) // 一阶扩散平衡，t→∞ 时趋于 1

	gradientIntegral := socRate * timeFactor * GradientAverageFactor // 1/s

	qmix := dQcellTau * p.OcvSocDerivative() * gradientIntegral // A·V/s·s = W

	// Arrhenius 温度修正，低于参考温度时减小
	return qmix * TemperatureFactor(temp), nil
}

// TemperatureFactor exp(-Ea/R · (1/T - 1/Tref))
func TemperatureFactor(temp float64) float64 {
	return math.Exp(-DiffusionActivation * (1.0/temp - 1.0/ReferenceTemperature))
}
