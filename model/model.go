package model

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 消息类型
const (
	TypeParams    = "params"
	TypeEvaluate  = "evaluate"
	TypeSweep     = "sweep"
	TypeEvaluated = "evaluated"
	TypeSwept     = "swept"
	TypeError     = "error"
)

// 电池参数
type Params struct {
	Capacity           float64 `json:"capacity"`
	NominalVoltage     float64 `json:"nominal_voltage"`
	CRate              float64 `json:"c_rate"`
	InternalResistance float64 `json:"internal_resistance"`
	EntropyCoeff       float64 `json:"entropy_coeff"`
	TimeConstant       float64 `json:"time_constant"`
	OcvSocDerivative   float64 `json:"ocv_soc_derivative"`
	Radius             float64 `json:"radius"`
	Height             float64 `json:"height"`
	Volume             float64 `json:"volume"`
	Current            float64 `json:"current"`
}

// 单元格输入
type Cell struct {
	Temperature float64 `json:"temperature"`
	Time        float64 `json:"time"`
}

type EvaluateReq struct {
	Cells []Cell `json:"cells"`
}

// 单元格计算结果，Error 非空时其余字段无意义
type CellResult struct {
	Density    float64 `json:"density"`
	Derivative float64 `json:"derivative"`
	Current    float64 `json:"current"`
	Ohmic      float64 `json:"ohmic"`
	Activation float64 `json:"activation"`
	Entropic   float64 `json:"entropic"`
	Mix        float64 `json:"mix"`
	Total      float64 `json:"total"`
	Error      string  `json:"error,omitempty"`
}

type EvaluateResp struct {
	Results     []CellResult `json:"results"`
	PeakDensity float64      `json:"peak_density"`
	ElapsedMs   int64        `json:"elapsed_ms"`
}

// 固定温度下的时间扫描
type SweepReq struct {
	Temperature float64 `json:"temperature"`
	TimeEnd     float64 `json:"time_end"`
	TimeStep    float64 `json:"time_step"`
}

type SweepResp struct {
	Times   []float64    `json:"times"`
	Results []CellResult `json:"results"`
}
