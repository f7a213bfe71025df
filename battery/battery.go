package battery

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

// 圆柱形锂离子电池的物性参数 + 几何尺寸

var ErrInvalidParameter = errors.New("battery: invalid parameter")

// CellCfg 电池参数配置，构造 Parameters 的输入
type CellCfg struct {
	Capacity           float64 // 容量 A·h
	NominalVoltage     float64 // 标称电压 V，仅作记录
	CRate              float64 // 放电倍率
	InternalResistance float64 // 内阻 Ω
	EntropyCoeff       float64 // 熵系数 V/K
	TimeConstant       float64 // 扩散时间常数 τ s
	OcvSocDerivative   float64 // ∂U_OCV/∂SOC V
	Radius             float64 // 半径 m
	Height             float64 // 高度 m
}

// DefaultCellCfg 18650 级电池，2C 放电
func DefaultCellCfg() CellCfg {
	return CellCfg{
		Capacity:           3.2,
		NominalVoltage:     3.6,
		CRate:              2.0,
		InternalResistance: 0.045,
		EntropyCoeff:       -0.4e-3,
		TimeConstant:       3600.0,
		OcvSocDerivative:   1.0,
		Radius:             0.009,
		Height:             0.065,
	}
}

// Parameters 构造后只读，可在多个 goroutine 间共享
type Parameters struct {
	cfg    CellCfg
	volume float64 // m³
}

func NewParameters(cfg CellCfg) (*Parameters, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"Capacity", cfg.Capacity},
		{"NominalVoltage", cfg.NominalVoltage},
		{"CRate", cfg.CRate},
		{"InternalResistance", cfg.InternalResistance},
		{"EntropyCoeff", cfg.EntropyCoeff},
		{"TimeConstant", cfg.TimeConstant},
		{"OcvSocDerivative", cfg.OcvSocDerivative},
		{"Radius", cfg.Radius},
		{"Height", cfg.Height},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return nil, fmt.Errorf("%w: %s = %v", ErrInvalidParameter, f.name, f.value)
		}
	}

	// 半径、高度、容量、时间常数必须为正
	switch {
	case cfg.Radius <= 0:
		return nil, fmt.Errorf("%w: Radius = %v, must be > 0", ErrInvalidParameter, cfg.Radius)
	case cfg.Height <= 0:
		return nil, fmt.Errorf("%w: Height = %v, must be > 0", ErrInvalidParameter, cfg.Height)
	case cfg.Capacity <= 0:
		return nil, fmt.Errorf("%w: Capacity = %v, must be > 0", ErrInvalidParameter, cfg.Capacity)
	case cfg.TimeConstant <= 0:
		return nil, fmt.Errorf("%w: TimeConstant = %v, must be > 0", ErrInvalidParameter, cfg.TimeConstant)
	}

	p := &Parameters{
		cfg:    cfg,
		volume: math.Pi * cfg.Radius * cfg.Radius * cfg.Height,
	}
	// 极小的半径/高度可能下溢
	if p.volume <= 0 {
		return nil, fmt.Errorf("%w: volume underflow (r = %v, h = %v)", ErrInvalidParameter, cfg.Radius, cfg.Height)
	}

	log.WithFields(log.Fields{
		"Capacity":           cfg.Capacity,
		"NominalVoltage":     cfg.NominalVoltage,
		"CRate":              cfg.CRate,
		"InternalResistance": cfg.InternalResistance,
		"EntropyCoeff":       cfg.EntropyCoeff,
		"TimeConstant":       cfg.TimeConstant,
		"OcvSocDerivative":   cfg.OcvSocDerivative,
		"Volume":             p.volume,
	}).Debug("设置电池参数")
	return p, nil
}

// Cfg 返回构造参数的副本
func (p *Parameters) Cfg() CellCfg { return p.cfg }

func (p *Parameters) Capacity() float64 { return p.cfg.Capacity }
func (p *Parameters) NominalVoltage() float64 { return p.cfg.NominalVoltage }
func (p *Parameters) CRate() float64 { return p.cfg.CRate }
func (p *Parameters) InternalResistance() float64 { return p.cfg.InternalResistance }
func (p *Parameters) EntropyCoeff() float64 { return p.cfg.EntropyCoeff }
func (p *Parameters) TimeConstant() float64 { return p.cfg.TimeConstant }
func (p *Parameters) OcvSocDerivative() float64 { return p.cfg.OcvSocDerivative }
func (p *Parameters) Radius() float64 { return p.cfg.Radius }
func (p *Parameters) Height() float64 { return p.cfg.Height }

// Volume 电池体积 π·r²·h，m³
func (p *Parameters) Volume() float64 { return p.volume }

// OneCCurrent 1C 电流，数值上等于以 A 计的容量
func (p *Parameters) OneCCurrent() float64 { return p.cfg.Capacity }

// TotalCharge 电池总电量，C
func (p *Parameters) TotalCharge() float64 { return p.cfg.Capacity * 3600.0 }
