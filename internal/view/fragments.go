// Package view builds the HTML fragments embedded into the page layout.
// Everything goes through html/template so user-supplied fields
// (make, model, description) are escaped on output.
package view

import (
	"bytes"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mwalcott/motorlot/internal/models"
)

// FallbackNav is served when building the real menu fails, so the error
// page itself cannot crash on a second data-layer failure.
const FallbackNav = template.HTML(`<ul><li><a href="/" title="Home page">Home</a></li></ul>`)

var enUS = message.NewPrinter(language.AmericanEnglish)

func FormatPrice(v float64) string {
	return enUS.Sprintf("$%.2f", v)
}

func FormatMiles(v int) string {
	return enUS.Sprintf("%d", v)
}

var fragmentFuncs = template.FuncMap{
	"price": FormatPrice,
	"miles": FormatMiles,
}

func render(t *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var navTpl = template.Must(template.New("nav").Parse(`<ul>
<li><a href="/" title="Home page">Home</a></li>
{{- range .}}
<li><a href="/inv/type/{{.ID}}" title="See our inventory of {{.Name}} vehicles">{{.Name}}</a></li>
{{- end}}
</ul>`))

// Nav renders the menu with Home first and one entry per classification in
// the order the data layer returned them.
func Nav(classifications []models.Classification) (template.HTML, error) {
	return render(navTpl, classifications)
}

type selectData struct {
	Classifications []models.Classification
	Selected        uint
}

var selectTpl = template.Must(template.New("classificationSelect").Parse(
	`<select name="classification_id" id="classification_id" required>
<option value="">Choose a Classification</option>
{{- range .Classifications}}
<option value="{{.ID}}"{{if eq .ID $.Selected}} selected{{end}}>{{.Name}}</option>
{{- end}}
</select>`))

// ClassificationSelect renders the drop-down; selected may be 0 for none.
func ClassificationSelect(classifications []models.Classification, selected uint) (template.HTML, error) {
	return render(selectTpl, selectData{Classifications: classifications, Selected: selected})
}

var gridTpl = template.Must(template.New("grid").Funcs(fragmentFuncs).Parse(
	`{{if . -}}
<ul id="inv-display">
{{- range .}}
<li>
<a href="/inv/detail/{{.ID}}" title="View {{.Make}} {{.Model}} details"><img src="{{.Thumbnail}}" alt="Image of {{.Make}} {{.Model}}"></a>
<div class="namePrice">
<hr>
<h2><a href="/inv/detail/{{.ID}}" title="View {{.Make}} {{.Model}} details">{{.Make}} {{.Model}}</a></h2>
<span>{{price .Price}}</span>
</div>
</li>
{{- end}}
</ul>
{{- else -}}
<p class="notice">Sorry, no matching vehicles could be found.</p>
{{- end}}`))

// VehicleGrid renders one tile per vehicle. An empty set yields an
// explicitly initialized notice fragment, never an empty list.
func VehicleGrid(vehicles []models.Vehicle) (template.HTML, error) {
	return render(gridTpl, vehicles)
}

var detailTpl = template.Must(template.New("detail").Funcs(fragmentFuncs).Parse(
	`<section class="vehicle-detail">
<div class="vehicle-image">
<img src="{{.Image}}" alt="Image of {{.Make}} {{.Model}}">
</div>
<div class="vehicle-info">
<h2>{{.Year}} {{.Make}} {{.Model}}</h2>
<p><strong>Price:</strong> {{price .Price}}</p>
<p><strong>Mileage:</strong> {{miles .Miles}} miles</p>
<p><strong>Description:</strong> {{.Description}}</p>
<p><strong>Color:</strong> {{.Color}}</p>
</div>
</section>`))

func VehicleDetail(v models.Vehicle) (template.HTML, error) {
	return render(detailTpl, v)
}
