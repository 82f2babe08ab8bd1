package mailer

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderTemplate(t *testing.T, file string, data any) (subject, body string) {
	t.Helper()

	tmpl, err := template.ParseFS(FS, "templates/"+file)
	require.NoError(t, err)

	var subjBuf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&subjBuf, "subject", data))

	var bodyBuf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&bodyBuf, "body", data))

	return subjBuf.String(), bodyBuf.String()
}

func TestUserWelcomeTemplate(t *testing.T) {
	data := struct {
		Username      string
		ActivationURL string
	}{
		Username:      "marta",
		ActivationURL: "https://sportmap.example/confirm?token=abc123",
	}

	subject, body := renderTemplate(t, UserWelcomeTemplate, data)
	assert.NotEmpty(t, subject)
	assert.Contains(t, body, "marta")
	assert.Contains(t, body, data.ActivationURL)
}

func TestReportNoticeTemplate(t *testing.T) {
	t.Run("with description", func(t *testing.T) {
		data := struct {
			Username     string
			ReporterName string
			VenueName    string
			ReportType   string
			Description  string
		}{
			Username:     "marta",
			ReporterName: "luca",
			VenueName:    "Campo Comunale",
			ReportType:   "incorrect-info",
			Description:  "The listed surface type is wrong",
		}

		subject, body := renderTemplate(t, ReportNoticeTemplate, data)
		assert.Contains(t, subject, "Campo Comunale")
		assert.Contains(t, body, "luca")
		assert.Contains(t, body, "incorrect-info")
		assert.Contains(t, body, data.Description)
	})

	t.Run("without description", func(t *testing.T) {
		data := struct {
			Username     string
			ReporterName string
			VenueName    string
			ReportType   string
			Description  string
		}{
			Username:     "marta",
			ReporterName: "luca",
			VenueName:    "Campo Comunale",
			ReportType:   "does-not-exist",
		}

		_, body := renderTemplate(t, ReportNoticeTemplate, data)
		assert.NotContains(t, body, "Details:")
	})
}
