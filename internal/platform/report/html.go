package report

import (
	"html/template"
	"io"
)

var sheetTemplate = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; }
td.num, th.num { text-align: right; }
footer { margin-top: 2em; font-size: 0.9em; color: #444; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Fields}}
<dl>
{{- range .Fields}}
<dt>{{.Label}}</dt><dd>{{.Value}}</dd>
{{- end}}
</dl>
{{- end}}
<table>
<thead>
<tr><th>Date</th><th>Tooth</th><th>Description</th><th class="num">Payment</th><th class="num">Cost</th><th class="num">Discount</th><th>Comment</th></tr>
</thead>
<tbody>
{{- range .Lines}}
<tr><td>{{.VisitDate}}</td><td>{{.Tooth}}</td><td>{{.Description}}</td><td class="num">{{.Payment}}</td><td class="num">{{.Cost}}</td><td class="num">{{.Discount}}</td><td>{{.Comment}}</td></tr>
{{- end}}
</tbody>
<tfoot>
<tr><th colspan="3">Total</th><th class="num">{{.Totals.Payments}}</th><th class="num">{{.Totals.Costs}}</th><th class="num">{{.Totals.Discounts}}</th><th></th></tr>
<tr><th colspan="3">Owed</th><th class="num" colspan="3">{{.Totals.Balance}}</th><th></th></tr>
</tfoot>
</table>
{{- with .Doctor}}
<footer>
<strong>{{.Name}}</strong>{{if .Speciality}}, {{.Speciality}}{{end}}<br>
{{.Address}}{{if .Telephone}} &middot; {{.Telephone}}{{end}}
</footer>
{{- end}}
</body>
</html>
`))

// WriteHTML renders s as a standalone HTML page.
func WriteHTML(w io.Writer, s *Sheet) error {
	return sheetTemplate.Execute(w, s)
}
