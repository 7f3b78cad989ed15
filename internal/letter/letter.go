// Package letter renders cover-letter drafts for stored vacancies.
package letter

import (
	"strings"
	"text/template"

	"hhradar/internal/model"
)

var letterTemplate = template.Must(template.New("letter").Parse(
	`Dear {{.Company}} hiring team,

I am writing in response to the "{{.Title}}" opening listed on hh.ru.

My experience and skills are a strong match for this position. I would
welcome the opportunity to join your team and contribute from day one.

I am happy to discuss the details at an interview.

Kind regards,
[Your Name]
[Your Phone]
[Your Email]
`))

// Render produces a cover-letter draft for the vacancy.
func Render(v model.Vacancy) string {
	var b strings.Builder
	// The template only references plain string fields; execution cannot fail.
	_ = letterTemplate.Execute(&b, v)
	return b.String()
}
