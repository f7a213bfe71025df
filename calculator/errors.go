package calculator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput 单元格输入非法，例如温度 <= 0 K
var ErrInvalidInput = errors.New("calculator: invalid input")

// 温度必须为有限正数，K
func checkTemperature(temp float64) error {
	if !(temp > 0) || math.IsInf(temp, 1) {
		return fmt.Errorf("%w: temperature = %v K, must be finite and > 0", ErrInvalidInput, temp)
	}
	return nil
}
