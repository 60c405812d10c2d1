package config

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const DefaultPath = "conf/config.ini"

type Config struct {
	Server Server
	Chart  Chart
	Render Render
}

type Server struct {
	Addr            string
	ReadBufferSize  int
	WriteBufferSize int
}

// 前端 Plotly 图表配置
type Chart struct {
	Width       int
	Height      int
	ContourSize float64
	FontSize    float64
}

// PNG 图片配置，尺寸单位英寸
type Render struct {
	Width    float64
	Height   float64
	DPI      int
	FontSize float64
}

// Load reads the ini file at path. A missing or unreadable file is logged
// and the built-in defaults are returned instead.
func Load(path string) *Config {
	file, err := ini.Load(path)
	if err != nil {
		log.WithField("path", path).Warn("配置文件读取错误，使用默认配置: ", err)
		file = ini.Empty()
	}
	return loadCfg(file)
}

func Default() *Config {
	return loadCfg(ini.Empty())
}

func loadCfg(file *ini.File) *Config {
	server := file.Section("server")
	chart := file.Section("chart")
	render := file.Section("render")
	return &Config{
		Server: Server{
			Addr:            server.Key("Addr").MustString(":9000"),
			ReadBufferSize:  server.Key("ReadBufferSize").MustInt(1024),
			WriteBufferSize: server.Key("WriteBufferSize").MustInt(1024),
		},
		Chart: Chart{
			Width:       chart.Key("Width").MustInt(700),
			Height:      chart.Key("Height").MustInt(500),
			ContourSize: chart.Key("ContourSize").MustFloat64(0.05),
			FontSize:    chart.Key("FontSize").MustFloat64(16),
		},
		Render: Render{
			Width:    render.Key("Width").MustFloat64(12),
			Height:   render.Key("Height").MustFloat64(8),
			DPI:      render.Key("DPI").MustInt(100),
			FontSize: render.Key("FontSize").MustFloat64(20),
		},
	}
}
