package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/TolgaCulfa/sunum2/internal/deck"
	"github.com/TolgaCulfa/sunum2/internal/deck/render"
)

// HTML renders the document as a standalone print page, one slide per sheet.
func (d Document) HTML() (string, error) {
	data := printData{
		Title: d.Title,
		Style: template.CSS(printCSS(d.Theme)),
	}
	for _, page := range d.Pages {
		data.Pages = append(data.Pages, buildPageView(page))
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render print document: %w", err)
	}
	return buf.String(), nil
}

type printData struct {
	Title string
	Style template.CSS
	Pages []pageView
}

type pageView struct {
	Layout  deck.Layout
	BgColor template.CSS
	Groups  []groupView
}

// groupView flattens a rendered slide's blocks into template-ready sections.
// Consecutive stat cards collapse into one Stats grid and the two column
// blocks into one Columns section.
type groupView struct {
	Kind    string
	Text    string
	Items   []string
	Stats   []statView
	Columns [][]string
}

type statView struct {
	Value string
	Desc  string
}

func buildPageView(page render.Slide) pageView {
	view := pageView{Layout: page.Layout}
	if page.BgColor != "" {
		view.BgColor = template.CSS("background:" + page.BgColor)
	}

	for _, block := range page.Blocks {
		switch block.Kind {
		case render.BlockHeading:
			view.Groups = append(view.Groups, groupView{Kind: "heading", Text: block.Text})
		case render.BlockSubtitle:
			view.Groups = append(view.Groups, groupView{Kind: "subtitle", Text: block.Text})
		case render.BlockQuote:
			view.Groups = append(view.Groups, groupView{Kind: "quote", Text: block.Text})
		case render.BlockAttribution:
			view.Groups = append(view.Groups, groupView{Kind: "attribution", Text: block.Text})
		case render.BlockParagraph:
			view.Groups = append(view.Groups, groupView{Kind: "paragraph", Text: block.Text})
		case render.BlockBulletList:
			view.Groups = append(view.Groups, groupView{Kind: "bullets", Items: block.Items})
		case render.BlockStatCard:
			if n := len(view.Groups); n > 0 && view.Groups[n-1].Kind == "stats" {
				view.Groups[n-1].Stats = append(view.Groups[n-1].Stats, statView{Value: block.Value, Desc: block.Desc})
			} else {
				view.Groups = append(view.Groups, groupView{Kind: "stats", Stats: []statView{{Value: block.Value, Desc: block.Desc}}})
			}
		case render.BlockColumn:
			if n := len(view.Groups); n > 0 && view.Groups[n-1].Kind == "columns" {
				view.Groups[n-1].Columns = append(view.Groups[n-1].Columns, block.Items)
			} else {
				view.Groups = append(view.Groups, groupView{Kind: "columns", Columns: [][]string{block.Items}})
			}
		}
	}
	return view
}

func printCSS(th render.Theme) string {
	return fmt.Sprintf(`*{margin:0;padding:0;box-sizing:border-box}
body{font-family:%s}
.print-slide{width:100vw;height:100vh;page-break-after:always;overflow:hidden}
.print-slide:last-child{page-break-after:auto}
.slide-display{width:100%%;height:100%%;display:flex;flex-direction:column;justify-content:center;padding:8%%;position:relative;overflow:hidden;background:%s;color:%s}
.slide-title{font-weight:800;margin-bottom:5%%;line-height:1.2;color:%s}
.slide-layout-title{align-items:center;text-align:center;justify-content:center}
.slide-layout-title .slide-title{font-size:2.5em;margin-bottom:3%%}
.slide-subtitle{font-size:1.1em;opacity:.7}
.slide-layout-content .slide-title{font-size:1.8em}
.slide-layout-closing{align-items:center;text-align:center;justify-content:center}
.slide-layout-closing .slide-title{font-size:2.2em}
.slide-layout-quote{align-items:center;text-align:center}
.slide-content-list{list-style:none;display:flex;flex-direction:column;gap:14px}
.slide-content-list li{display:flex;align-items:flex-start;gap:12px;font-size:1.05em;line-height:1.5}
.slide-content-list li::before{content:'';width:8px;height:8px;border-radius:50%%;background:currentColor;opacity:.5;margin-top:10px;flex-shrink:0}
.slide-columns{display:grid;grid-template-columns:1fr 1fr;gap:8%%}
.slide-quote-text{font-size:1.5em;font-style:italic;font-weight:300;line-height:1.6;margin-bottom:20px;padding:0 10%%}
.slide-quote-author{font-size:1em;font-weight:600;opacity:.7}
.slide-stats-grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(150px,1fr));gap:20px}
.stat-card{text-align:center;padding:20px;background:rgba(0,0,0,.04);border-radius:8px}
.stat-value{font-size:2em;font-weight:800;font-family:%s;color:%s}
.stat-desc{font-size:.85em;opacity:.7;margin-top:4px}
.slide-closing-text{font-size:1.1em;opacity:.7}
@media print{.print-slide{page-break-after:always}.print-slide:last-child{page-break-after:auto}}`,
		th.FontFamily, th.Background, th.Text, th.Heading, th.MonoFamily, th.Accent)
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} - Sunum2</title>
<link href="https://fonts.googleapis.com/css2?family=Outfit:wght@300;400;500;600;700;800;900&family=JetBrains+Mono:wght@400;600&display=swap" rel="stylesheet">
<style>{{.Style}}</style>
</head>
<body>
{{- range .Pages}}
<div class="print-slide"><div class="slide-display slide-layout-{{.Layout}}"{{with .BgColor}} style="{{.}}"{{end}}>
{{- range .Groups}}
{{- if eq .Kind "heading"}}<h2 class="slide-title">{{.Text}}</h2>
{{- else if eq .Kind "subtitle"}}<p class="slide-subtitle">{{.Text}}</p>
{{- else if eq .Kind "quote"}}<div class="slide-quote-text">{{.Text}}</div>
{{- else if eq .Kind "attribution"}}<div class="slide-quote-author">{{.Text}}</div>
{{- else if eq .Kind "paragraph"}}<p class="slide-closing-text">{{.Text}}</p>
{{- else if eq .Kind "bullets"}}<ul class="slide-content-list">{{range .Items}}<li>{{.}}</li>{{end}}</ul>
{{- else if eq .Kind "stats"}}<div class="slide-stats-grid">{{range .Stats}}<div class="stat-card"><div class="stat-value">{{.Value}}</div><div class="stat-desc">{{.Desc}}</div></div>{{end}}</div>
{{- else if eq .Kind "columns"}}<div class="slide-columns">{{range .Columns}}<div><ul class="slide-content-list">{{range .}}<li>{{.}}</li>{{end}}</ul></div>{{end}}</div>
{{- end}}
{{- end}}
</div></div>
{{- end}}
</body>
</html>
`))
