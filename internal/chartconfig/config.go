package chartconfig

// Tree is the untyped form of a chart configuration. Patches, merge results and
// beautified results all travel as trees; only Validate turns one into a Config.
type Tree = map[string]any

// Chart types.
const (
	ChartBar     = "bar"
	ChartLine    = "line"
	ChartScatter = "scatter"
	ChartArea    = "area"
	ChartPie     = "pie"
)

// Config is a fully validated chart configuration.
type Config struct {
	ChartType    string        `json:"chartType" validate:"required,oneof=bar line scatter area pie"`
	XKey         string        `json:"xKey" validate:"required"`
	YKey         string        `json:"yKey" validate:"required"`
	Palette      []string      `json:"palette" validate:"required"`
	AxisStyle    *AxisStyle    `json:"axisStyle" validate:"required"`
	Animation    *Animation    `json:"animation" validate:"required"`
	Font         *Font         `json:"font" validate:"required"`
	TooltipStyle *TooltipStyle `json:"tooltipStyle" validate:"required"`
	Grid         string        `json:"grid" validate:"required,oneof=none solid dashed"`
	ThemePreset  string        `json:"themePreset" validate:"required,oneof=light dark vintage macarons custom shadcn-dark"`

	BarStyle        *BarStyle     `json:"barStyle,omitempty"`
	LineStyle       *LineStyle    `json:"lineStyle,omitempty"`
	ScatterStyle    *ScatterStyle `json:"scatterStyle,omitempty"`
	PieStyle        *PieStyle     `json:"pieStyle,omitempty"`
	BackgroundColor string        `json:"backgroundColor,omitempty"`
	BorderStyle     *BorderStyle  `json:"borderStyle,omitempty"`
	Legend          *Legend       `json:"legend,omitempty"`
	Title           *Title        `json:"title,omitempty"`
	AxisTitles      *AxisTitles   `json:"axisTitles,omitempty"`
	AxisLines       *AxisLines    `json:"axisLines,omitempty"`
	AxisLabels      *AxisLabels   `json:"axisLabels,omitempty"`
	YAxis           *YAxis        `json:"yAxis,omitempty"`
	Binning         *Binning      `json:"binning,omitempty"`
	ChartSize       *ChartSize    `json:"chartSize,omitempty"`
}

type Font struct {
	Family string   `json:"family" validate:"required"`
	Size   *float64 `json:"size" validate:"required"`
	Weight *float64 `json:"weight" validate:"required"`
}

type BarStyle struct {
	BorderRadius *float64 `json:"borderRadius,omitempty"`
	Width        *float64 `json:"width,omitempty"`
	Shadow       *bool    `json:"shadow,omitempty"`
	Gradient     *bool    `json:"gradient,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`
	Colors       []string `json:"colors,omitempty"`
	BorderColor  string   `json:"borderColor,omitempty"`
	BorderWidth  *float64 `json:"borderWidth,omitempty"`
}

type LineStyle struct {
	Width       *float64 `json:"width,omitempty"`
	Smooth      *bool    `json:"smooth,omitempty"`
	AreaOpacity *float64 `json:"areaOpacity,omitempty"`
	LineOpacity *float64 `json:"lineOpacity,omitempty"`
	Shadow      *bool    `json:"shadow,omitempty"`
	Gradient    *bool    `json:"gradient,omitempty"`
}

type ScatterStyle struct {
	Size        *float64 `json:"size,omitempty"`
	Shape       string   `json:"shape,omitempty" validate:"omitempty,oneof=circle square diamond triangle"`
	Opacity     *float64 `json:"opacity,omitempty"`
	BorderWidth *float64 `json:"borderWidth,omitempty"`
}

type PieStyle struct {
	Radius       *float64  `json:"radius,omitempty"`
	RoseType     *bool     `json:"roseType,omitempty"`
	Donut        *bool     `json:"donut,omitempty"`
	Center       PieCenter `json:"center,omitzero"`
	Gradient     *bool     `json:"gradient,omitempty"`
	BorderColor  string    `json:"borderColor,omitempty"`
	BorderWidth  *float64  `json:"borderWidth,omitempty"`
	BorderRadius *float64  `json:"borderRadius,omitempty"`
}

type BorderStyle struct {
	Color string   `json:"color,omitempty"`
	Width *float64 `json:"width,omitempty"`
	Type  string   `json:"type,omitempty" validate:"omitempty,oneof=solid dashed dotted"`
}

type Legend struct {
	Show      *bool  `json:"show,omitempty"`
	Position  string `json:"position,omitempty" validate:"omitempty,oneof=top bottom left right"`
	TextColor string `json:"textColor,omitempty"`
}

type Title struct {
	Text            string   `json:"text,omitempty"`
	Color           string   `json:"color,omitempty"`
	FontSize        *float64 `json:"fontSize,omitempty"`
	Position        string   `json:"position,omitempty" validate:"omitempty,oneof=top bottom left right"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	Padding         string   `json:"padding,omitempty"`
	BorderRadius    string   `json:"borderRadius,omitempty"`
	Border          string   `json:"border,omitempty"`
	Show            *bool    `json:"show,omitempty"`
}

type AxisTitles struct {
	XTitle *AxisTitle `json:"xTitle,omitempty"`
	YTitle *AxisTitle `json:"yTitle,omitempty"`
}

type AxisTitle struct {
	Text       string   `json:"text,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	FontFamily string   `json:"fontFamily,omitempty"`
	FontWeight *float64 `json:"fontWeight,omitempty"`
	Color      string   `json:"color,omitempty"`
	NameGap    *float64 `json:"nameGap,omitempty"`
}

type AxisLines struct {
	Color string   `json:"color,omitempty"`
	Width *float64 `json:"width,omitempty"`
	Show  *bool    `json:"show,omitempty"`
}

type AxisLabels struct {
	XLabels *AxisLabel `json:"xLabels,omitempty"`
	YLabels *AxisLabel `json:"yLabels,omitempty"`
}

type AxisLabel struct {
	Color        string     `json:"color,omitempty"`
	FontSize     *float64   `json:"fontSize,omitempty"`
	FontFamily   string     `json:"fontFamily,omitempty"`
	FontWeight   *float64   `json:"fontWeight,omitempty"`
	Rotate       *float64   `json:"rotate,omitempty"`
	Interval     *float64   `json:"interval,omitempty"`
	ShowMaxLabel *bool      `json:"showMaxLabel,omitempty"`
	Margin       *float64   `json:"margin,omitempty"`
	Formatter    *Formatter `json:"formatter,omitempty"`
}

type YAxis struct {
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Scale *bool    `json:"scale,omitempty"`
	Type  string   `json:"type,omitempty" validate:"omitempty,oneof=value log"`
}

// Binning asks the renderer to aggregate consecutive rows before plotting.
type Binning struct {
	Enabled   *bool    `json:"enabled,omitempty"`
	GroupSize *float64 `json:"groupSize,omitempty"`
	Method    string   `json:"method,omitempty" validate:"omitempty,oneof=sum average max min"`
}

// Active reports whether binning should be applied and with which group size.
func (b *Binning) Active() (int, bool) {
	if b == nil || b.Enabled == nil || !*b.Enabled || b.GroupSize == nil {
		return 0, false
	}
	n := int(*b.GroupSize)
	if n <= 1 {
		return 0, false
	}
	return n, true
}

type ChartSize struct {
	AspectRatio *float64 `json:"aspectRatio,omitempty"`
	MaxWidth    *float64 `json:"maxWidth,omitempty"`
	MaxHeight   *float64 `json:"maxHeight,omitempty"`
}
