package calculator

import (
	"fmt"
	"math"

	"cellheat/battery"
)

// Source 热源回调：输入单元温度 K 和当前仿真时间 s
type Source interface {
	Evaluate(temp, time float64) (HeatResult, error)
}

// CellQuery 一次回调的输入
type CellQuery struct {
	Temperature float64 // K
	Time        float64 // s
}

// HeatResult 体积热源密度及其线性化项
type HeatResult struct {
	Density    float64 // W/m³，>= 0
	Derivative float64 // W/(m³·K)
	Breakdown  PowerBreakdown
}

// PowerBreakdown 各产热分量，W
type PowerBreakdown struct {
	Current           float64 // A
	ActivationVoltage float64 // V
	Ohmic             float64
	Activation        float64
	Entropic          float64
	Mix               float64
	Total             float64 // 未截断
}

// HeatSource 汇总欧姆、活化、熵变和混合项。无内部状态，可并发调用。
type HeatSource struct {
	params *battery.Parameters
	load   LoadModel
}

// NewHeatSource load 为 nil 时使用恒流放电
func NewHeatSource(params *battery.Parameters, load LoadModel) *HeatSource {
	if load == nil {
		load = NewConstantCurrent(params)
	}
	return &HeatSource{
		params: params,
		load:   load,
	}
}

func (h *HeatSource) Parameters() *battery.Parameters {
	return h.params
}

func (h *HeatSource) Evaluate(temp, time float64) (HeatResult, error) {
	if err := checkTemperature(temp); err != nil {
		return HeatResult{}, err
	}
	if math.IsNaN(time) {
		return HeatResult{}, fmt.Errorf("%w: time is NaN", ErrInvalidInput)
	}

	current := h.load.Current(time)

	// 1. 欧姆损失
	powerOhmic := current * current * h.params.InternalResistance()

	// 2. 活化过电位
	eta, err := ActivationOverpotential(h.params, current, temp)
	if err != nil {
		return HeatResult{}, err
	}
	powerActivation := current * eta

	// 3. 熵变，熵系数一般为负
	powerEntropic := current * temp * h.params.EntropyCoeff()

	// 4. 混合项
	powerMix, err := MixPower(h.params, current, time, temp)
	if err != nil {
		return HeatResult{}, err
	}

	total := powerOhmic + powerActivation + powerEntropic + powerMix

	volume := h.params.Volume()
	density := total / volume
	// 净热源不作为热汇处理
	if density < 0 {
		density = 0
	}

	return HeatResult{
		Density: density,
		// 只线性化熵变项
		Derivative: current * h.params.EntropyCoeff() / volume,
		Breakdown: PowerBreakdown{
			Current:           current,
			ActivationVoltage: eta,
			Ohmic:             powerOhmic,
			Activation:        powerActivation,
			Entropic:          powerEntropic,
			Mix:               powerMix,
			Total:             total,
		},
	}, nil
}
