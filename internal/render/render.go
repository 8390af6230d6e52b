package render

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"vibechart/internal/chartconfig"
)

// ErrEmptyDataset means no row had both an x and a y value.
var ErrEmptyDataset = errors.New("render: no plottable rows")

const (
	maxSeries      = 12
	fallbackColor = "#7dd3fc"
)

// Dataset is a parsed table. Columns fixes the column order; when empty it is
// taken from the first row's keys in sorted order.
type Dataset struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

type Point struct {
	X     string  `json:"x"`
	Label string  `json:"label"`
	Y     float64 `json:"y"`
}

type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// Frame is the renderer-ready view of a dataset under one configuration.
type Frame struct {
	ChartType string   `json:"chartType"`
	XKey      string   `json:"xKey"`
	YKey      string   `json:"yKey"`
	Labels    []string `json:"labels"`
	Series    []Series `json:"series"`
	SplitBy   string   `json:"splitBy,omitempty"`
	Binned    bool     `json:"binned"`
}

// Prepare drops rows missing x or y, bins them when the configuration asks for
// it, and then splits non-pie charts into series on the first categorical
// column with 2 to 12 distinct values.
func Prepare(ds Dataset, cfg *chartconfig.Config) (*Frame, error) {
	if cfg == nil {
		return nil, fmt.Errorf("render: nil configuration")
	}
	rows := present(ds.Rows, cfg.XKey, cfg.YKey)
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	frame := &Frame{ChartType: cfg.ChartType, XKey: cfg.XKey, YKey: cfg.YKey}
	if size, ok := cfg.Binning.Active(); ok {
		rows = bin(rows, cfg.XKey, cfg.YKey, size, cfg.Binning.Method)
		frame.Binned = true
	}

	var formatter *chartconfig.Formatter
	if cfg.AxisLabels != nil && cfg.AxisLabels.XLabels != nil {
		formatter = cfg.AxisLabels.XLabels.Formatter
	}
	labelIndex := map[string]int{}
	for _, r := range rows {
		x := text(r[cfg.XKey])
		if _, ok := labelIndex[x]; !ok {
			labelIndex[x] = len(frame.Labels)
			frame.Labels = append(frame.Labels, formatter.Apply(x, len(frame.Labels)))
		}
	}
	point := func(r map[string]any) (Point, bool) {
		y, ok := number(r[cfg.YKey])
		if !ok {
			return Point{}, false
		}
		x := text(r[cfg.XKey])
		return Point{X: x, Label: frame.Labels[labelIndex[x]], Y: y}, true
	}

	if cfg.ChartType != chartconfig.ChartPie {
		frame.SplitBy = splitColumn(columns(ds, rows), rows, cfg.XKey, cfg.YKey)
	}
	if frame.SplitBy == "" {
		s := Series{Name: cfg.YKey, Color: seriesColor(cfg.Palette, 0)}
		for _, r := range rows {
			if p, ok := point(r); ok {
				s.Points = append(s.Points, p)
			}
		}
		frame.Series = []Series{s}
		return frame, nil
	}

	byName := map[string]int{}
	for _, r := range rows {
		name := text(r[frame.SplitBy])
		i, ok := byName[name]
		if !ok {
			i = len(frame.Series)
			byName[name] = i
			frame.Series = append(frame.Series, Series{Name: name, Color: seriesColor(cfg.Palette, i)})
		}
		if p, ok := point(r); ok {
			frame.Series[i].Points = append(frame.Series[i].Points, p)
		}
	}
	return frame, nil
}

func present(rows []map[string]any, keys ...string) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		if slices.ContainsFunc(keys, func(k string) bool { return blank(r[k]) }) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// bin groups consecutive rows in runs of size, labels each group with its first
// row's x value and aggregates y. Groups sharing a label are combined.
func bin(rows []map[string]any, xKey, yKey string, size int, method string) []map[string]any {
	var order []string
	groups := map[string][]float64{}
	for i, r := range rows {
		label := text(rows[(i/size)*size][xKey])
		if _, ok := groups[label]; !ok {
			order = append(order, label)
			groups[label] = nil
		}
		if v, ok := number(r[yKey]); ok {
			groups[label] = append(groups[label], v)
		}
	}
	out := make([]map[string]any, 0, len(order))
	for _, label := range order {
		out = append(out, map[string]any{xKey: label, yKey: aggregate(groups[label], method)})
	}
	return out
}

func aggregate(values []float64, method string) float64 {
	if len(values) == 0 {
		return 0
	}
	switch method {
	case "average":
		return sum(values) / float64(len(values))
	case "max":
		return slices.Max(values)
	case "min":
		return slices.Min(values)
	}
	return sum(values)
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

func splitColumn(cols []string, rows []map[string]any, xKey, yKey string) string {
	for _, col := range cols {
		if col == xKey || col == yKey {
			continue
		}
		distinct := map[string]struct{}{}
		for _, r := range rows {
			distinct[text(r[col])] = struct{}{}
			if len(distinct) > maxSeries {
				break
			}
		}
		if n := len(distinct); n > 1 && n <= maxSeries {
			return col
		}
	}
	return ""
}

func columns(ds Dataset, rows []map[string]any) []string {
	if len(ds.Columns) > 0 {
		return ds.Columns
	}
	cols := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func seriesColor(palette []string, i int) string {
	if i < len(palette) && palette[i] != "" {
		return palette[i]
	}
	return fallbackColor
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func number(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if x {
			f = 1
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
