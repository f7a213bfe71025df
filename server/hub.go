package server

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"cellheat/battery"
	"cellheat/calculator"
	"cellheat/model"
)

// 单次请求的最大单元数 / 采样点数
const maxBatchCells = 100000

// Hub 每个 websocket 连接一个
type Hub struct {
	conn   *websocket.Conn
	params *battery.Parameters
	batch  *calculator.BatchEvaluator
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
}

func NewHub(conn *websocket.Conn, params *battery.Parameters, batch *calculator.BatchEvaluator) *Hub {
	return &Hub{
		conn:   conn,
		params: params,
		batch:  batch,
		msg:    make(chan model.Msg, 10),
		reply:  make(chan model.Msg, 10),
	}
}

// readLoop 连接断开后关闭请求通道
func (h *Hub) readLoop() {
	defer close(h.msg)
	for {
		var msg model.Msg
		if err := h.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("err: ", err)
			}
			return
		}
		h.msg <- msg
	}
}

func (h *Hub) handleRequest() {
	defer close(h.reply)
	for msg := range h.msg {
		h.reply <- h.handle(msg)
	}
}

func (h *Hub) handleResponse() {
	for reply := range h.reply {
		if err := h.conn.WriteJSON(&reply); err != nil {
			log.Println("err: ", err)
		}
	}
}

func (h *Hub) handle(msg model.Msg) model.Msg {
	var (
		content interface{}
		typ     string
		err     error
	)
	switch msg.Type {
	case model.TypeParams:
		typ, content = model.TypeParams, h.paramsMsg()
	case model.TypeEvaluate:
		typ = model.TypeEvaluated
		content, err = h.evaluate(msg.Content)
	case model.TypeSweep:
		typ = model.TypeSwept
		content, err = h.sweep(msg.Content)
	default:
		err = fmt.Errorf("no such type: %q", msg.Type)
	}
	if err != nil {
		log.WithField("type", msg.Type).Warn(err)
		return model.Msg{Type: model.TypeError, Content: err.Error()}
	}

	data, err := json.Marshal(content)
	if err != nil {
		return model.Msg{Type: model.TypeError, Content: err.Error()}
	}
	return model.Msg{Type: typ, Content: string(data)}
}

func (h *Hub) paramsMsg() model.Params {
	p := h.params
	return model.Params{
		Capacity:           p.Capacity(),
		NominalVoltage:     p.NominalVoltage(),
		CRate:              p.CRate(),
		InternalResistance: p.InternalResistance(),
		EntropyCoeff:       p.EntropyCoeff(),
		TimeConstant:       p.TimeConstant(),
		OcvSocDerivative:   p.OcvSocDerivative(),
		Radius:             p.Radius(),
		Height:             p.Height(),
		Volume:             p.Volume(),
		Current:            calculator.NewConstantCurrent(p).Current(0),
	}
}

func (h *Hub) evaluate(content string) (model.EvaluateResp, error) {
	var req model.EvaluateReq
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return model.EvaluateResp{}, fmt.Errorf("evaluate: %w", err)
	}
	if len(req.Cells) > maxBatchCells {
		return model.EvaluateResp{}, fmt.Errorf("evaluate: %d cells exceeds limit %d", len(req.Cells), maxBatchCells)
	}

	queries := make([]calculator.CellQuery, len(req.Cells))
	for i, c := range req.Cells {
		queries[i] = calculator.CellQuery{Temperature: c.Temperature, Time: c.Time}
	}
	results, elapsed := h.batch.Evaluate(queries)

	return model.EvaluateResp{
		Results:     buildResults(results),
		PeakDensity: calculator.PeakDensity(results),
		ElapsedMs:   elapsed.Milliseconds(),
	}, nil
}

func (h *Hub) sweep(content string) (model.SweepResp, error) {
	var req model.SweepReq
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return model.SweepResp{}, fmt.Errorf("sweep: %w", err)
	}
	if !(req.TimeStep > 0) || !(req.TimeEnd >= 0) {
		return model.SweepResp{}, fmt.Errorf("sweep: invalid time range end=%v step=%v", req.TimeEnd, req.TimeStep)
	}
	steps := math.Floor(req.TimeEnd / req.TimeStep)
	if steps >= maxBatchCells {
		return model.SweepResp{}, fmt.Errorf("sweep: %v samples exceeds limit %d", steps+1, maxBatchCells)
	}
	n := int(steps) + 1

	times := make([]float64, n)
	queries := make([]calculator.CellQuery, n)
	for i := range queries {
		times[i] = float64(i) * req.TimeStep
		queries[i] = calculator.CellQuery{Temperature: req.Temperature, Time: times[i]}
	}
	results, _ := h.batch.Evaluate(queries)

	return model.SweepResp{
		Times:   times,
		Results: buildResults(results),
	}, nil
}

func buildResults(results []calculator.CellResult) []model.CellResult {
	out := make([]model.CellResult, len(results))
	for i, r := range results {
		if r.Err != nil {
			out[i] = model.CellResult{Error: r.Err.Error()}
			continue
		}
		b := r.Breakdown
		out[i] = model.CellResult{
			Density:    r.Density,
			Derivative: r.Derivative,
			Current:    b.Current,
			Ohmic:      b.Ohmic,
			Activation: b.Activation,
			Entropic:   b.Entropic,
			Mix:        b.Mix,
			Total:      b.Total,
		}
	}
	return out
}
