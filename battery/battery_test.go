package battery

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParameters_Default(t *testing.T) {
	p, err := NewParameters(DefaultCellCfg())
	require.NoError(t, err)

	assert.InEpsilon(t, 1.654048532e-5, p.Volume(), 1e-9)
	assert.Equal(t, 3.2, p.Capacity())
	assert.Equal(t, 3.2, p.OneCCurrent())
	assert.Equal(t, 3.2*3600.0, p.TotalCharge())
	assert.Equal(t, DefaultCellCfg(), p.Cfg())
}

func TestNewParameters_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *CellCfg)
	}{
		{"zero radius", func(c *CellCfg) { c.Radius = 0 }},
		{"negative radius", func(c *CellCfg) { c.Radius = -0.009 }},
		{"zero height", func(c *CellCfg) { c.Height = 0 }},
		{"zero capacity", func(c *CellCfg) { c.Capacity = 0 }},
		{"negative capacity", func(c *CellCfg) { c.Capacity = -1 }},
		{"zero time constant", func(c *CellCfg) { c.TimeConstant = 0 }},
		{"nan resistance", func(c *CellCfg) { c.InternalResistance = math.NaN() }},
		{"inf entropy", func(c *CellCfg) { c.EntropyCoeff = math.Inf(-1) }},
		{"volume underflow", func(c *CellCfg) { c.Radius = 1e-200; c.Height = 1e-200 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCellCfg()
			tt.modify(&cfg)
			p, err := NewParameters(cfg)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestParameters_CfgIsCopy(t *testing.T) {
	p, err := NewParameters(DefaultCellCfg())
	require.NoError(t, err)

	cfg := p.Cfg()
	cfg.Radius = 1
	assert.Equal(t, 0.009, p.Radius())
}

// 负熵系数、零倍率都是合法配置
func TestNewParameters_SignedFields(t *testing.T) {
	cfg := DefaultCellCfg()
	cfg.EntropyCoeff = 0.2e-3
	cfg.CRate = 0
	p, err := NewParameters(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.2e-3, p.EntropyCoeff())
	assert.Equal(t, 0.0, p.CRate())
}
