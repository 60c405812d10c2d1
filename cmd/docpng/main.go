package main

import (
	"bufio"
	"docchart/calculator"
	"docchart/config"
	"docchart/model"
	"docchart/render"
	"flag"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

func main() {
	var p model.Params
	flag.Float64Var(&p.RopMin, "rop-min", 0, "minimum rate of penetration (ft/hr)")
	flag.Float64Var(&p.RopMax, "rop-max", 300, "maximum rate of penetration (ft/hr)")
	flag.Float64Var(&p.RpmMin, "rpm-min", 0, "minimum rotary speed (RPM)")
	flag.Float64Var(&p.RpmMax, "rpm-max", 300, "maximum rotary speed (RPM)")
	flag.Float64Var(&p.DocValue, "doc-value", 0.15, "target depth of cut (in/rev)")
	flag.StringVar(&p.TextAboveLine, "text-above", "", "callout text for the engaged region")
	flag.StringVar(&p.TextBelowLine, "text-below", "", "callout text for the not engaged region")
	flag.Float64Var(&p.FontSize, "font-size", 0, "font size, 0 uses the config value")
	cfgPath := flag.String("config", config.DefaultPath, "path of the ini config file")
	out := flag.String("o", "doc_chart.png", "output png file")
	flag.Parse()

	cfg := config.Load(*cfgPath)
	g := calculator.Compute(p)
	printSummary(p, g)

	if err := writePng(*out, p, g, render.OptionsFrom(cfg.Render)); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	pterm.Success.Printf("chart written to %s\n", *out)
}

func printSummary(p model.Params, g *calculator.Grid) {
	pterm.DefaultSection.Println("DOC grid")
	last := model.Intervals
	data := pterm.TableData{
		{"", "min", "max"},
		{"RPM", f(g.RPM[0]), f(g.RPM[last])},
		{"ROP (ft/hr)", f(g.ROP[0]), f(g.ROP[last])},
		{"DOC (in/rev)", f(floats.Min(g.DOC.RawMatrix().Data)), f(g.MaxDoc)},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		log.Warn("render table: ", err)
	}
	pterm.Info.Printf("colorscale stop %s for DOC %s\n", f(g.Stop(p.DocValue)), f(p.DocValue))
}

func f(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

func writePng(path string, p model.Params, g *calculator.Grid, opts render.Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}

	bw := bufio.NewWriter(file)
	if err := render.PNG(bw, p, g, opts); err != nil {
		file.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("cannot write png: %w", err)
	}
	return file.Close()
}
