package view

import (
	"html/template"
	"io"
	"slices"
)

// Priorities are the choices offered by the priority field.
var Priorities = []string{"high", "medium", "low"}

// Page is everything the HTML page needs.
type Page struct {
	Style Style
	Form  Form
	Rows  []Row
}

// PriorityOptions returns the choices for the priority field. A stored
// priority outside the defaults is offered too so editing keeps it.
func (p Page) PriorityOptions() []string {
	opts := slices.Clone(Priorities)
	if p.Form.Priority != "" && !slices.Contains(opts, p.Form.Priority) {
		opts = append(opts, p.Form.Priority)
	}
	return opts
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"display": Display,
}).Parse(pageHTML))

// RenderPage writes the full HTML page.
func RenderPage(w io.Writer, p Page) error {
	return pageTmpl.ExecuteTemplate(w, "page", p)
}

// RenderList writes only the list container.
func RenderList(w io.Writer, p Page) error {
	return pageTmpl.ExecuteTemplate(w, "list", p)
}

const pageHTML = `{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tasks</title>
<style>
.task-row { display: flex; align-items: center; }
.task-title { width: 50%; text-transform: capitalize; }
.task-priority { width: 20%; text-transform: capitalize; }
.task-priority--strong { color: #AA0000; font-weight: bold; }
.notice { color: #AA0000; }
</style>
</head>
<body>
<form id="task" method="post" action="/tasks">
<input type="text" name="task" value="{{.Form.Title}}" required>
<select name="priority">
{{- range .PriorityOptions}}
<option value="{{.}}"{{if eq . $.Form.Priority}} selected{{end}}>{{display .}}</option>
{{- end}}
</select>
<button id="button" type="submit" name="action" value="{{.Form.Mode.Action}}" data-action="{{.Form.Mode.Action}}" class="{{.Style.SubmitClass .Form.Mode}}"> {{.Form.Label}}</button>
</form>
{{- if .Form.Notice}}
<p class="notice">{{.Form.Notice}}</p>
{{- end}}
{{template "list" .}}
</body>
</html>
{{end}}
{{define "list"}}<div id="tasks">
{{- range .Rows}}
<form class="{{$.Style.Row}}" method="post" action="/tasks/actions">
<input type="hidden" name="key" value="{{.Key}}">
<p class="{{$.Style.Title}}">{{.Title}}</p>
<p class="{{$.Style.Priority}}">{{.Priority}}</p>
<button type="submit" name="type" value="update" data-type="update" data-key="{{.Key}}" class="{{$.Style.UpdateButton}}"{{if .Editing}} disabled{{end}}> Update</button>
<button type="submit" name="type" value="delete" data-type="delete" data-key="{{.Key}}" class="{{$.Style.DeleteButton}}"> Delete</button>
</form>
{{- end}}
</div>
{{end}}`
