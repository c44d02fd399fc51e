package web

import (
	"bytes"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/conceptmap"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ingest"
)

// lineChart renders the selected numeric columns against the row index as
// a standalone HTML document.
func lineChart(tbl *ingest.Table, columns []string) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "CSV Visualization", Width: "100%", Height: "420px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	x := make([]string, len(tbl.Rows))
	for i := range x {
		x[i] = strconv.Itoa(i)
	}
	line.SetXAxis(x)

	for _, col := range columns {
		values, err := tbl.Series(col)
		if err != nil {
			return "", err
		}
		data := make([]opts.LineData, len(values))
		for i, v := range values {
			if math.IsNaN(v) {
				data[i] = opts.LineData{Value: "-"}
				continue
			}
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(col, data)
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// graphChart renders a concept map as a force-directed node-link diagram.
func graphChart(g *conceptmap.Graph) (string, error) {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Concept Map", Width: "100%", Height: "520px"}),
	)

	var nodes []opts.GraphNode
	for _, n := range g.Nodes() {
		node := opts.GraphNode{Name: n.Label, SymbolSize: 40}
		if n.Center {
			node.SymbolSize = 70
		}
		node.ItemStyle = &opts.ItemStyle{Color: "lightblue"}
		nodes = append(nodes, node)
	}

	var links []opts.GraphLink
	for _, e := range g.Edges() {
		links = append(links, opts.GraphLink{Source: e.From, Target: e.To})
	}

	graph.AddSeries(g.Topic, nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout: "force",
			Roam:   opts.Bool(true),
			Force:  &opts.GraphForce{Repulsion: 800, EdgeLength: 120},
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "inside"}),
	)

	var buf bytes.Buffer
	if err := graph.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
