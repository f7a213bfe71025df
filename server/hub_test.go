package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellheat/battery"
	"cellheat/calculator"
	"cellheat/model"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	p, err := battery.NewParameters(battery.DefaultCellCfg())
	require.NoError(t, err)
	source := calculator.NewHeatSource(p, nil)
	batch := calculator.NewBatchEvaluator(source, 2)
	t.Cleanup(batch.Stop)
	return NewHub(nil, p, batch)
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestHub_Params(t *testing.T) {
	h := newTestHub(t)

	reply := h.handle(model.Msg{Type: model.TypeParams})
	require.Equal(t, model.TypeParams, reply.Type)

	var params model.Params
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &params))
	assert.Equal(t, 3.2, params.Capacity)
	assert.InDelta(t, 6.4, params.Current, 1e-12)
	assert.InEpsilon(t, 1.654048532e-5, params.Volume, 1e-9)
}

func TestHub_Evaluate(t *testing.T) {
	h := newTestHub(t)

	req := model.EvaluateReq{Cells: []model.Cell{
		{Temperature: 298.15, Time: 0},
		{Temperature: -1, Time: 0},
	}}
	reply := h.handle(model.Msg{Type: model.TypeEvaluate, Content: mustJSON(t, req)})
	require.Equal(t, model.TypeEvaluated, reply.Type)

	var resp model.EvaluateResp
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &resp))
	require.Len(t, resp.Results, 2)
	assert.InEpsilon(t, 93991.9468573223, resp.Results[0].Density, 1e-9)
	assert.Empty(t, resp.Results[0].Error)
	assert.Contains(t, resp.Results[1].Error, "invalid input")
	assert.Equal(t, resp.Results[0].Density, resp.PeakDensity)
}

func TestHub_Sweep(t *testing.T) {
	h := newTestHub(t)

	req := model.SweepReq{Temperature: 298.15, TimeEnd: 3600, TimeStep: 600}
	reply := h.handle(model.Msg{Type: model.TypeSweep, Content: mustJSON(t, req)})
	require.Equal(t, model.TypeSwept, reply.Type)

	var resp model.SweepResp
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &resp))
	require.Len(t, resp.Times, 7)
	require.Len(t, resp.Results, 7)
	assert.Equal(t, 0.0, resp.Results[0].Mix)
	for i := 1; i < len(resp.Results); i++ {
		assert.Greater(t, resp.Results[i].Mix, resp.Results[i-1].Mix)
	}
}

func TestHub_BadRequests(t *testing.T) {
	h := newTestHub(t)

	tests := []model.Msg{
		{Type: "unknown"},
		{Type: model.TypeEvaluate, Content: "{"},
		{Type: model.TypeSweep, Content: `{"temperature":300,"time_end":10,"time_step":0}`},
		{Type: model.TypeSweep, Content: `{"temperature":300,"time_end":-1,"time_step":1}`},
		{Type: model.TypeSweep, Content: `{"temperature":300,"time_end":1e12,"time_step":1}`},
	}
	for _, msg := range tests {
		reply := h.handle(msg)
		assert.Equal(t, model.TypeError, reply.Type, msg)
		assert.NotEmpty(t, reply.Content)
	}
}

func TestHub_EvaluateTooManyCells(t *testing.T) {
	h := newTestHub(t)

	req := model.EvaluateReq{Cells: make([]model.Cell, maxBatchCells+1)}
	reply := h.handle(model.Msg{Type: model.TypeEvaluate, Content: mustJSON(t, req)})
	assert.Equal(t, model.TypeError, reply.Type)
	assert.Contains(t, reply.Content, "exceeds limit")

	req.Cells = req.Cells[:2]
	for i := range req.Cells {
		req.Cells[i] = model.Cell{Temperature: 300, Time: 10}
	}
	reply = h.handle(model.Msg{Type: model.TypeEvaluate, Content: mustJSON(t, req)})
	assert.Equal(t, model.TypeEvaluated, reply.Type)
}

func TestServer_Websocket(t *testing.T) {
	h := newTestHub(t)
	s := NewServer("", websocket.Upgrader{}, h.params, h.batch)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	req := model.EvaluateReq{Cells: []model.Cell{{Temperature: 298.15, Time: 3600}}}
	require.NoError(t, conn.WriteJSON(model.Msg{Type: model.TypeEvaluate, Content: mustJSON(t, req)}))

	var reply model.Msg
	require.NoError(t, conn.ReadJSON(&reply))
	require.Equal(t, model.TypeEvaluated, reply.Type)

	var resp model.EvaluateResp
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &resp))
	require.Len(t, resp.Results, 1)
	assert.InEpsilon(t, 94014.59371160221, resp.Results[0].Density, 1e-9)

	require.NoError(t, conn.WriteJSON(model.Msg{Type: "nope"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, model.TypeError, reply.Type)
}
