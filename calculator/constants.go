package calculator

const (
	GasConstant = 8.314   // J/(mol·K)
	Faraday     = 96485.0 // C/mol

	ExchangeCurrentDensity = 0.5 // J0，交换电流密度的近似值

	// 活化过电位的安全上下限，非物理推导值
	MaxActivationOverpotential = 0.5 // V
	MinActivationOverpotential = 0.0 // V

	ReferenceTemperature = 298.15 // K
	DiffusionActivation  = 1500.0 // K，Arrhenius 修正系数 Ea/R

	// 颗粒内部线性浓度分布的空间平均
	GradientAverageFactor = 1.0 / 3.0
)
