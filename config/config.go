package config

import (
	"fmt"

	"gopkg.in/ini.v1"

	"cellheat/battery"
)

type Config struct {
	Battery battery.CellCfg

	Workers int // 批量计算的 worker 数

	Addr     string
	LogLevel string
}

// Load 读取 ini 配置，缺失的键使用默认值
func Load(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("配置文件读取错误，请检查文件路径 %s: %w", path, err)
	}
	return loadCfg(file), nil
}

// LoadDefault 不读取文件，全部使用默认值
func LoadDefault() *Config {
	return loadCfg(ini.Empty())
}

func loadCfg(file *ini.File) *Config {
	def := battery.DefaultCellCfg()
	bat := file.Section("battery")
	return &Config{
		Battery: battery.CellCfg{
			Capacity:           bat.Key("Capacity").MustFloat64(def.Capacity),
			NominalVoltage:     bat.Key("NominalVoltage").MustFloat64(def.NominalVoltage),
			CRate:              bat.Key("CRate").MustFloat64(def.CRate),
			InternalResistance: bat.Key("InternalResistance").MustFloat64(def.InternalResistance),
			EntropyCoeff:       bat.Key("EntropyCoeff").MustFloat64(def.EntropyCoeff),
			TimeConstant:       bat.Key("TimeConstant").MustFloat64(def.TimeConstant),
			OcvSocDerivative:   bat.Key("OcvSocDerivative").MustFloat64(def.OcvSocDerivative),
			Radius:             bat.Key("Radius").MustFloat64(def.Radius),
			Height:             bat.Key("Height").MustFloat64(def.Height),
		},
		Workers:  file.Section("calculator").Key("Workers").MustInt(4),
		Addr:     file.Section("server").Key("Addr").MustString(":9000"),
		LogLevel: file.Section("log").Key("Level").MustString("info"),
	}
}
