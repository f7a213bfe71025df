package calculator

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// 宿主求解器按区域分解并行调用热源，这里用固定数量的 worker 模拟同样的调用方式

// CellResult 单个单元的计算结果，Err 非空时 HeatResult 无意义
type CellResult struct {
	HeatResult
	Err error
}

type task struct {
	start   int
	end     int
	queries []CellQuery
	results []CellResult
	wg      *sync.WaitGroup
}

// BatchEvaluator 基于切片的任务分配
type BatchEvaluator struct {
	source       Source
	workers      int
	dispatchChan chan task

	stopOnce sync.Once
}

func NewBatchEvaluator(source Source, workers int) *BatchEvaluator {
	if workers <= 0 {
		workers = 1
	}
	e := &BatchEvaluator{
		source:       source,
		workers:      workers,
		dispatchChan: make(chan task, 50),
	}
	e.run()
	return e
}

func (e *BatchEvaluator) Workers() int {
	return e.workers
}

func (e *BatchEvaluator) run() {
	for i := 0; i < e.workers; i++ {
		go func() {
			for t := range e.dispatchChan {
				for j := t.start; j < t.end; j++ {
					q := t.queries[j]
					res, err := e.source.Evaluate(q.Temperature, q.Time)
					t.results[j] = CellResult{HeatResult: res, Err: err}
				}
				t.wg.Done()
			}
		}()
	}
}

// Evaluate 阻塞直到所有单元计算完成，各 worker 写入互不重叠的结果区间
func (e *BatchEvaluator) Evaluate(queries []CellQuery) ([]CellResult, time.Duration) {
	start := time.Now()
	results := make([]CellResult, len(queries))
	if len(queries) == 0 {
		return results, time.Since(start)
	}

	var wg sync.WaitGroup
	for _, r := range splitTasks(len(queries), e.workers) {
		wg.Add(1)
		e.dispatchChan <- task{start: r[0], end: r[1], queries: queries, results: results, wg: &wg}
	}
	wg.Wait()

	elapsed := time.Since(start)
	log.WithFields(log.Fields{
		"cells":   len(queries),
		"workers": e.workers,
		"elapsed": elapsed,
	}).Debug("批量计算完成")
	return results, elapsed
}

// Stop 之后不能再调用 Evaluate
func (e *BatchEvaluator) Stop() {
	e.stopOnce.Do(func() {
		close(e.dispatchChan)
	})
}

// splitTasks 每个 worker 分两段，余数逐个分配
func splitTasks(total, workers int) [][2]int {
	taskLen, remainder := total/workers, total%workers
	ranges := make([][2]int, 0, workers*2+remainder)

	start := 0
	if taskLen == 1 {
		for start < total-remainder {
			ranges = append(ranges, [2]int{start, start + 1})
			start++
		}
	} else if taskLen > 1 {
		half1, half2 := taskLen/2, taskLen/2
		if taskLen%2 == 1 {
			half2++
		}
		for start < total-remainder {
			ranges = append(ranges, [2]int{start, start + half1})
			start += half1
			ranges = append(ranges, [2]int{start, start + half2})
			start += half2
		}
	}

	for i := 0; i < remainder; i++ {
		ranges = append(ranges, [2]int{start, start + 1})
		start++
	}
	return ranges
}

// PeakDensity 成功计算单元中的最大热源密度，没有成功单元时返回 0
func PeakDensity(results []CellResult) float64 {
	densities := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			densities = append(densities, r.Density)
		}
	}
	if len(densities) == 0 {
		return 0
	}
	return floats.Max(densities)
}
