package chartconfig

// FieldDoc describes one top-level configuration field for prompt construction.
type FieldDoc struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// FieldDocs lists the configuration schema with the value ranges a model should
// respect. Ranges are advisory; Validate does not enforce them.
func FieldDocs() []FieldDoc {
	return []FieldDoc{
		{Name: "chartType", Type: `"bar" | "line" | "scatter" | "area" | "pie"`, Required: true},
		{Name: "xKey", Type: "string", Required: true, Description: "dataset column for the x axis"},
		{Name: "yKey", Type: "string", Required: true, Description: "dataset column for the y axis"},
		{Name: "palette", Type: `["#hexcolor"]`, Required: true},
		{Name: "axisStyle", Type: `"minimal" | "classic" | {"color": "#hex", "width": number}`},
		{Name: "animation", Type: `"none" | {"easing": "string", "duration": number}`},
		{Name: "font", Type: `{"family": "string", "size": number, "weight": number}`},
		{Name: "tooltipStyle", Type: `"shadow" | {"bg": "#hex", "border": "#hex"}`},
		{Name: "grid", Type: `"none" | "solid" | "dashed"`},
		{Name: "themePreset", Type: `"light" | "dark" | "vintage" | "macarons" | "custom" | "shadcn-dark"`},
		{Name: "barStyle", Type: "object", Description: `{"borderRadius": 0-50, "width": 1-100, "shadow": bool, "gradient": bool, "opacity": 0-1, "colors": ["#hex"], "borderColor": "#hex", "borderWidth": 0-10}`},
		{Name: "lineStyle", Type: "object", Description: `{"width": 1-20, "smooth": bool, "areaOpacity": 0-1, "lineOpacity": 0-1, "shadow": bool, "gradient": bool}`},
		{Name: "scatterStyle", Type: "object", Description: `{"size": 1-50, "shape": "circle" | "square" | "diamond" | "triangle", "opacity": 0-1, "borderWidth": 0-10}`},
		{Name: "pieStyle", Type: "object", Description: `{"radius": 10-100, "roseType": bool, "donut": bool, "center": [number | string, number | string], "gradient": bool, "borderColor": "#hex", "borderWidth": 0-10, "borderRadius": 0-50}`},
		{Name: "backgroundColor", Type: "#hexcolor", Description: "only for light themes; otherwise keep the default dark background"},
		{Name: "borderStyle", Type: "object", Description: `{"color": "#hex", "width": 0-10, "type": "solid" | "dashed" | "dotted"}`},
		{Name: "legend", Type: "object", Description: `{"show": bool, "position": "top" | "bottom" | "left" | "right", "textColor": "#hex"}`},
		{Name: "title", Type: "object", Description: `{"text": "string", "color": "#hex", "fontSize": 8-32, "position": "top" | "bottom" | "left" | "right", "backgroundColor": "#hex", "padding": "css", "borderRadius": "css", "border": "css", "show": bool}`},
		{Name: "axisTitles", Type: "object", Description: `{"xTitle": AXIS_TITLE, "yTitle": AXIS_TITLE} where AXIS_TITLE = {"text": "string", "fontSize": 8-24, "fontFamily": "string", "fontWeight": 100-900, "color": "#hex", "nameGap": 0-100}`},
		{Name: "axisLines", Type: "object", Description: `{"color": "#hex", "width": 1-10, "show": bool}`},
		{Name: "axisLabels", Type: "object", Description: `{"xLabels": AXIS_LABEL, "yLabels": AXIS_LABEL} where AXIS_LABEL = {"color": "#hex", "fontSize": 8-20, "fontFamily": "string", "fontWeight": 100-900, "rotate": -90..90, "interval": 0 = all / 1 = every other / 2 = every third, "showMaxLabel": bool, "margin": number, "formatter": FORMATTER}`},
		{Name: "axisLabels.*.formatter", Type: `"truncate" | "keep-suffix" | "strip-suffix" | "hide-index" | {"strategy": name, "length": n, "suffix": "text", "index": n}`, Description: "truncate keeps the first length chars (default 3); keep-suffix keeps the last length chars (default 2); strip-suffix removes suffix; hide-index blanks the label at index (default 0). Never code."},
		{Name: "binning", Type: "object", Description: `{"enabled": bool, "groupSize": 2-10, "method": "sum" | "average" | "max" | "min"}`},
		{Name: "chartSize", Type: "object", Description: `{"aspectRatio": 0.3-3.0, "maxWidth": px, "maxHeight": px}`},
		{Name: "yAxis", Type: "object", Description: `{"min": number, "max": number, "scale": bool, "type": "value" | "log"}`},
	}
}
