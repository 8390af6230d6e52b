package chartconfig

// Beautify returns a copy of t with every missing stylistic field filled in.
// Values that are already set are kept, with two exceptions: a palette whose
// first color is white is swapped for the accent palette, and an aspect ratio
// outside [MinAspectRatio, MaxAspectRatio] is clamped. The legacy "dark" theme
// is renamed to its canonical preset. Beautify(Beautify(t)) equals Beautify(t).
func Beautify(t Tree) Tree {
	out := Clone(t)

	fill(out, "chartType", DefaultChartType)
	fill(out, "xKey", DefaultXKey)
	fill(out, "yKey", DefaultYKey)
	beautifyPalette(out)

	fill(out, "axisStyle", DefaultAxisStyle)
	fill(out, "animation", defaultAnimation())
	fill(out, "tooltipStyle", DefaultTooltip)
	if font := child(out, "font"); font != nil {
		defaults := defaultFont(defaultFontFamily)
		for _, k := range []string{"family", "size", "weight"} {
			fill(font, k, defaults[k])
		}
	}
	fill(out, "grid", DefaultGrid)
	if absent(out, "themePreset") || out["themePreset"] == legacyDarkTheme {
		out["themePreset"] = DefaultTheme
	}

	switch out["chartType"] {
	case ChartBar:
		if bar := child(out, "barStyle"); bar != nil {
			fill(bar, "borderRadius", DefaultBarRadius)
		}
	case ChartLine:
		if out["animation"] != "none" {
			if line := child(out, "lineStyle"); line != nil {
				fill(line, "smooth", true)
			}
		}
	}

	beautifyChartSize(out)
	beautifyTitle(out)
	if legend := child(out, "legend"); legend != nil {
		for k, v := range defaultLegend() {
			fill(legend, k, v)
		}
	}
	beautifyAxisTitles(out)
	return out
}

func beautifyPalette(t Tree) {
	v, ok := t["palette"]
	if !ok || v == nil {
		t["palette"] = AccentPalette()
		return
	}
	switch p := v.(type) {
	case []any:
		if len(p) == 0 || isWhite(p[0]) {
			t["palette"] = AccentPalette()
		}
	case []string:
		if len(p) == 0 || isWhite(p[0]) {
			t["palette"] = AccentPalette()
		}
	}
}

func beautifyChartSize(t Tree) {
	size := child(t, "chartSize")
	if size == nil {
		return
	}
	ratio, ok := toFloat(size["aspectRatio"])
	if !ok {
		fill(size, "aspectRatio", DefaultAspectRatio)
		return
	}
	if clamped := min(max(ratio, MinAspectRatio), MaxAspectRatio); clamped != ratio {
		size["aspectRatio"] = clamped
	}
}

func beautifyTitle(t Tree) {
	if absent(t, "title") {
		t["title"] = defaultTitle()
		return
	}
	title, ok := t["title"].(map[string]any)
	if !ok {
		return
	}
	fill(title, "text", defaultTitle()["text"])
	fill(title, "position", "bottom")
}

func beautifyAxisTitles(t Tree) {
	titles := child(t, "axisTitles")
	if titles == nil {
		return
	}
	for key, defaults := range map[string]Tree{"xTitle": defaultXTitle(), "yTitle": defaultYTitle()} {
		axis := child(titles, key)
		if axis == nil {
			continue
		}
		for k, v := range defaults {
			fill(axis, k, v)
		}
	}
}
