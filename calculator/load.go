package calculator

import "cellheat/battery"

// LoadModel 给出 t 时刻的放电电流，A
type LoadModel interface {
	Current(t float64) float64
}

// ConstantCurrent 恒流放电，I = C倍率 × 容量
type ConstantCurrent struct {
	amps float64
}

func NewConstantCurrent(p *battery.Parameters) ConstantCurrent {
	return ConstantCurrent{amps: p.CRate() * p.Capacity()}
}

func (c ConstantCurrent) Current(float64) float64 {
	return c.amps
}

// LoadFunc 任意随时间变化的电流
type LoadFunc func(t float64) float64

func (f LoadFunc) Current(t float64) float64 {
	return f(t)
}
