package report

import (
	"bytes"
	"html/template"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<html>
<head>
<style>
body { font-family: Arial, sans-serif; }
h2 { color: #0056b3; border-bottom: 2px solid #0056b3; padding-bottom: 5px; }
table { width: 100%; border-collapse: collapse; margin-top: 10px; }
th, td { padding: 8px; border: 1px solid #ddd; }
th { background-color: #0056b3; color: white; }
</style>
</head>
<body>
<h2>Смена: {{.Shift}}, Дата: {{.Date}}</h2>
<h3>Инженеры на смене:</h3>
<ul>
{{- range .Engineers}}
<li>{{.}}</li>
{{- end}}
</ul>
<h3>Записи журнала:</h3>
<table>
<tr><th>Время</th><th>Содержание</th><th>Примечание</th></tr>
{{- range .Rows}}
<tr><td>{{.Time}}</td><td>{{.Content}}</td><td>{{.Note}}</td></tr>
{{- end}}
</table>
</body>
</html>
`))

// HTML renders the mail body. All user text is escaped.
func HTML(r *Report) (string, error) {
	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		Shift     string
		Date      string
		Engineers []string
		Rows      []Row
	}{
		Shift:     r.Slot.Shift.Label(),
		Date:      r.Slot.Date.Format(messageDateLayout),
		Engineers: r.Engineers,
		Rows:      r.Rows,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
