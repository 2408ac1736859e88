package httpapi

import (
	"bytes"
	"html/template"

	"github.com/i474232898/weather-card/internal/weather"
)

var pageTmpl = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{if .Loading}}Weather{{else}}{{.City}} weather{{end}}</title>
<style>
body { font-family: Arial, sans-serif; }
form { display: flex; justify-content: center; margin: 20px 0; }
form input { width: 250px; padding: 10px; font-size: 16px; border-radius: 25px; border: 1px solid #ccc; margin-right: 10px; }
form button { padding: 10px 20px; font-size: 16px; border-radius: 25px; background-color: #007BFF; color: #fff; border: none; cursor: pointer; }
.card { width: 350px; height: 500px; margin: 20px auto; padding: 20px; border-radius: 15px; background-size: cover; background-position: center; box-shadow: 0 8px 15px rgba(0,0,0,0.2); display: flex; flex-direction: column; justify-content: space-between; }
.content { text-align: center; }
.details { display: flex; justify-content: space-between; }
.details p { margin: 4px 0; }
</style>
</head>
<body>
<form method="post" action="/search">
  <input type="text" name="city" placeholder="What City?" value="{{.Draft}}">
  <button type="submit">Search</button>
</form>
{{if .Loading}}
<div>Loading...</div>
{{else}}
<div class="card" style="background-image: url('{{.Background}}'); color: {{.TextColor}};">
  <div class="header">
    <h2>{{.City}}</h2>
    <p>{{.Date}}</p>
  </div>
  <div class="content">
    <img src="{{.IconURL}}" alt="{{.Summary}}">
    <h1>{{.Temperature}}°C</h1>
    <p>{{.Description}}</p>
  </div>
  <div class="details">
    <div>
      <p>{{.TempMax}}°C</p><p>Max</p>
      <p>{{.WindSpeed}} m/s</p><p>Wind Speed</p>
    </div>
    <div>
      <p>{{.TempMin}}°C</p><p>Min</p>
      <p>{{.Pressure}} hPa</p><p>Pressure</p>
    </div>
  </div>
</div>
{{end}}
</body>
</html>
`))

func renderPage(v weather.View) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
