package handler

import "html/template"

const (
	greetingView  = "greeting"
	anonymousView = "anonymous"
)

var views = parseViews()

func parseViews() *template.Template {
	t := template.Must(template.New(greetingView).Parse(
		`<p>Hello {{.Name}}!</p><a href=/logout>Logout</a>`,
	))
	template.Must(t.New(anonymousView).Parse(`<a href=/login>Login</a>`))
	return t
}
