package report

const reportStyle = `
* { box-sizing: border-box; }
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; color: #111; background: #fff; }
[hidden] { display: none !important; }
.container { display: flex; min-height: 100vh; }
.sidebar-container { flex: 0 0 260px; border-right: 1px solid #e5e7eb; background: #f9fafb; }
.sidebar { position: sticky; top: 0; padding: 12px; max-height: 100vh; overflow-y: auto; }
.sidebar h2 { font-size: 13px; text-transform: uppercase; color: #6b7280; margin: 16px 0 6px; }
.sidebar-list { list-style: none; padding: 0; margin: 0; }
.sidebar-entry a { display: block; padding: 2px 4px; color: #0e7490; text-decoration: none; font-size: 13px; }
#filter-search { width: 100%; padding: 4px 6px; }
.control-group { display: inline-flex; gap: 2px; border: 0; padding: 0; margin: 0 6px 6px 0; }
.control-group[disabled] { opacity: 0.4; }
.diff-container { flex: 1; padding: 12px 24px; min-width: 0; }
.test-report { border: 1px solid #e5e7eb; border-radius: 6px; margin-bottom: 16px; }
.test-report-header { display: flex; align-items: center; gap: 12px; padding: 6px 10px; background: #f3f4f6; }
.report-toggle { font-weight: 600; background: none; border: 0; cursor: pointer; }
.report-toggle[aria-expanded="false"]::before { content: "\25B8 "; }
.report-toggle[aria-expanded="true"]::before { content: "\25BE "; }
.report-tabs label, .file-diff-tabs label { font-size: 12px; margin-right: 6px; }
.diff-header { display: flex; font-size: 13px; font-weight: normal; margin: 0; padding: 4px 10px; }
.diff-header-split { flex: 1; }
.report-body { padding: 8px 10px; }
.text-diff { width: 100%; border-collapse: collapse; font-size: 12px; }
.col-line-gutter { width: 3em; }
.line-gutter { text-align: right; color: #9ca3af; padding-right: 6px; user-select: none; }
.line-text { margin: 0; white-space: pre-wrap; }
.diff-add { background: #dcfce7; }
.diff-del { background: #fee2e2; }
.diff-gap { text-align: center; color: #9ca3af; }
del { background: #fca5a5; text-decoration: none; }
ins { background: #86efac; text-decoration: none; }
.image-diff-area { overflow: auto; border: 1px solid #e5e7eb; }
.image-diff-wrapper { display: flex; gap: 8px; }
.image-split { transform-origin: top left; }
.image-diff[data-mode="blend"] .image-diff-wrapper,
.image-diff[data-mode="difference"] .image-diff-wrapper { display: grid; }
.image-diff[data-mode="blend"] .image-split,
.image-diff[data-mode="difference"] .image-split { grid-area: 1 / 1; }
.image-diff[data-mode="difference"] .image-split + .image-split { mix-blend-mode: difference; }
.image-diff[data-align-x="center"] .image-split { justify-self: center; }
.image-diff[data-align-x="right"] .image-split { justify-self: end; }
.image-diff[data-align-y="center"] .image-split { align-self: center; }
.image-diff[data-align-y="bottom"] .image-split { align-self: end; }
`

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta name="generator" content="reportview {{.GeneratedAt}}">
<title>{{.Title}}</title>
<style>{{.Style}}</style>
</head>
<body>
<div class="container">
<div class="sidebar-container">
<div class="sidebar">
<h2>Settings</h2>
<fieldset class="control-group">
{{- range .Modes}}
<button class="icon-button global-image-view-mode" id="global-image-view-mode-{{.}}" value="{{.}}" title="Global Image View-Mode {{.}}">{{.}}</button>
{{- end}}
</fieldset>
<fieldset class="control-group">
{{- range .Formats}}
<button class="icon-button global-diff-format" id="global-diff-format-{{.}}" value="{{.}}" title="Show {{.}} in every report">{{.}}</button>
{{- end}}
</fieldset>
<h2>Filter</h2>
<input type="search" id="filter-search" placeholder="Search tests" value="">
<fieldset class="control-group filter-formats">
{{- range .Formats}}
<label><input type="checkbox" class="filter-format" value="{{.}}">{{.}}</label>
{{- end}}
</fieldset>
<h2>Tests</h2>
<ul class="sidebar-list">
{{- range .Tests}}
<li class="sidebar-entry"><a href="#r-{{.Name}}">{{.Name}}</a></li>
{{- end}}
</ul>
{{- if not .Tests}}
<div class="sidebar-empty">NONE</div>
{{- end}}
</div>
</div>
<div class="diff-container">
<h2 class="diff-container-header">Changes</h2>
{{- range $t := .Tests}}
<section class="test-report" id="r-{{$t.Name}}">
<div class="test-report-header">
<button class="report-toggle" aria-expanded="true">{{$t.Name}}</button>
<div class="report-tabs" role="tablist">
{{- range $t.Files}}
<label><input type="radio" role="tab" class="report-tab" name="report-tab-{{$t.Index}}" value="{{.Output}}" aria-selected="{{if .Active}}true{{else}}false{{end}}"{{if .Active}} checked{{end}}>{{.Output}}</label>
{{- end}}
</div>
</div>
{{- range $t.Files}}
<h1 class="report-file-header diff-header"{{if not .Active}} hidden{{end}}><div class="diff-header-split">{{.Left}}</div><div class="diff-header-split">{{.Right}}</div></h1>
{{- end}}
<div class="report-body">
{{- range $f := $t.Files}}
<div class="report-file report-file-{{$f.Output}}"{{if not $f.Active}} hidden{{end}}>
{{- if $f.Both}}
<div class="file-diff-tabs">
<label><input type="radio" class="file-diff-tab" name="file-diff-tab-{{$t.Index}}-{{$f.Index}}" value="text" aria-selected="true" checked>text</label>
<label><input type="radio" class="file-diff-tab" name="file-diff-tab-{{$t.Index}}-{{$f.Index}}" value="image" aria-selected="false">image</label>
</div>
{{- end}}
{{- with $f.Text}}
<div class="file-diff file-diff-text">
<details class="text-diff-details"{{if not .Large}} open{{end}}>
<summary class="diff-summary">{{$f.Output}} text diff</summary>
<table class="text-diff">
<colgroup><col span="1" class="col-line-gutter"><col span="1" class="col-line-body"><col span="1" class="col-line-gutter"><col span="1" class="col-line-body"></colgroup>
{{- range .Rows}}
<tr class="diff-line">{{template "cell" .Left}}{{template "cell" .Right}}</tr>
{{- end}}
</table>
</details>
</div>
{{- end}}
{{- with $f.Image}}
<div class="file-diff file-diff-image"{{if $f.Both}} hidden{{end}}>
{{template "image" .}}
</div>
{{- end}}
{{- if and (not $f.Text) (not $f.Image)}}
<div class="file-diff-none">No differences</div>
{{- end}}
</div>
{{- end}}
</div>
</section>
{{- end}}
{{- if not .Tests}}
<div class="diff-container-empty">NONE</div>
{{- end}}
<div class="diff-scroll-padding"></div>
</div>
</div>
</body>
</html>
{{define "cell" -}}
{{if .Gap}}<td colspan="2" class="diff-gap">&#8943;</td>
{{- else}}<td class="line-gutter diff-{{.Kind}}">{{.Nr}}</td><td class="line-body diff-{{.Kind}}"><pre class="line-text">
{{- range .Spans}}{{if eq .Tag "del"}}<del>{{.Text}}</del>{{else if eq .Tag "ins"}}<ins>{{.Text}}</ins>{{else}}{{.Text}}{{end}}{{end -}}
</pre></td>{{end}}
{{- end}}
{{define "image" -}}
<div class="image-diff" id="image-diff-{{.Index}}">
<div class="image-controls">
<fieldset class="control-group">
{{- $n := .Index}}
{{- range .Modes}}
<label class="icon-toggle-button"><input type="radio" class="image-view-mode" name="image-view-mode-{{$n}}" value="{{.}}" title="View-Mode {{.}}"{{if eq (print .) "side-by-side"}} checked{{end}}>{{.}}</label>
{{- end}}
</fieldset>
<fieldset class="control-group">
<label class="icon-toggle-button"><input type="checkbox" class="antialiasing" title="Antialiasing" checked>aa</label>
</fieldset>
<fieldset class="control-group">
<button class="icon-button image-zoom-minus" title="Zoom out">-</button>
<button class="icon-button image-zoom-plus" title="Zoom in">+</button>
<label class="slider" title="Zoom"><input type="range" class="image-zoom" min="{{.ZoomMin}}" max="{{.ZoomMax}}" value="{{.ZoomValue}}" step="{{.ZoomStep}}"></label>
</fieldset>
</div>
<div class="image-diff-area">
<div class="image-diff-wrapper">
<div class="image-split side-by-side"><img src="{{.Left}}" alt="reference"{{if .PDF}} style="background: #fff"{{end}}></div>
<div class="image-split side-by-side"><img src="{{.Right}}" alt="actual"{{if .PDF}} style="background: #fff"{{end}}></div>
</div>
</div>
<div class="image-mode-controls">
<fieldset class="control-group image-align-y-control">
<label class="icon-toggle-button"><input type="radio" class="image-align-y" name="image-align-y-{{$n}}" value="top" title="Vertical-align top" checked>top</label>
<label class="icon-toggle-button"><input type="radio" class="image-align-y" name="image-align-y-{{$n}}" value="center" title="Vertical-align center">center</label>
<label class="icon-toggle-button"><input type="radio" class="image-align-y" name="image-align-y-{{$n}}" value="bottom" title="Vertical-align bottom">bottom</label>
</fieldset>
<fieldset class="control-group image-align-x-control">
<label class="icon-toggle-button"><input type="radio" class="image-align-x" name="image-align-x-{{$n}}" value="left" title="Horizontal-align left" checked>left</label>
<label class="icon-toggle-button"><input type="radio" class="image-align-x" name="image-align-x-{{$n}}" value="center" title="Horizontal-align center">center</label>
<label class="icon-toggle-button"><input type="radio" class="image-align-x" name="image-align-x-{{$n}}" value="right" title="Horizontal-align right">right</label>
</fieldset>
<fieldset class="control-group image-blend-control">
<label class="slider" title="Blend">blend <input type="range" class="image-blend" min="0" max="1" value="0.5" step="{{.BlendStep}}"></label>
</fieldset>
</div>
</div>
{{- end}}
`
