package app

import (
	"bytes"
	"fmt"
	htmltmpl "html/template"
	texttmpl "text/template"
	"time"

	"playlist_tracker_bot/internal/domain/mail"
	"playlist_tracker_bot/internal/domain/schedule"
)

type overdueView struct {
	Title       string
	DueDate     string
	URL         string
	DaysOverdue int
}

type reportData struct {
	Participant string
	Playlist    string
	Percent     int
	Done        int
	Total       int
	CaughtUp    bool
	Overdue     []overdueView
}

const reportText = `Hello {{.Participant}},

Progress on {{.Playlist}}: {{.Done}}/{{.Total}} videos done ({{.Percent}}%).
{{if .CaughtUp}}
You are all caught up. Keep it going!
{{else}}
You are behind schedule on the following videos:
{{range .Overdue}}
- {{.Title}} (was due on {{.DueDate}}, {{.DaysOverdue}} days overdue)
  {{.URL}}
{{end}}
Take some time to catch up. Remember: We have a loan to repay!
{{end}}
Cheers,
Am Watching You!
`

const reportHTML = `<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <p>Hello {{.Participant}},</p>
    <p>Progress on <b>{{.Playlist}}</b>: {{.Done}}/{{.Total}} videos done ({{.Percent}}%).</p>
{{if .CaughtUp}}
    <p>You are all caught up. Keep it going!</p>
{{else}}
    <p>You are behind schedule on the following videos:</p>
    <ul>
{{range .Overdue}}
      <li>
        &#128250; <b>{{.Title}}</b> (was due on {{.DueDate}}, {{.DaysOverdue}} days overdue)<br>
        <a href="{{.URL}}" style="color: #1a73e8;">&#9654; Watch here</a>
      </li>
{{end}}
    </ul>
    <p>Take some time to catch up. Remember: We have a loan to repay!</p>
{{end}}
    <p>Cheers,<br><i>Am Watching You!</i></p>
  </body>
</html>
`

var (
	reportTextTmpl = texttmpl.Must(texttmpl.New("report").Parse(reportText))
	reportHTMLTmpl = htmltmpl.Must(htmltmpl.New("report").Parse(reportHTML))
)

// ComposeReport renders the per-participant progress summary as a multipart
// message. The recipient address is left for the caller to fill in.
func ComposeReport(participant, playlistName string, progress *schedule.Progress, today time.Time) (mail.Message, error) {
	data := reportData{
		Participant: participant,
		Playlist:    playlistName,
		Percent:     int(progress.CompletionPercent()),
		Done:        progress.Done,
		Total:       progress.Eligible,
		CaughtUp:    progress.CaughtUp(),
	}
	for _, item := range progress.Overdue {
		data.Overdue = append(data.Overdue, overdueView{
			Title:       item.Title,
			DueDate:     item.Date.Format(schedule.DateLayout),
			URL:         item.URL,
			DaysOverdue: item.DaysOverdue(today),
		})
	}

	subject := fmt.Sprintf("%s - Progress Update", playlistName)
	if !data.CaughtUp {
		subject = fmt.Sprintf("REMINDER - %s - Missed Deadline", playlistName)
	}

	var text, html bytes.Buffer
	if err := reportTextTmpl.Execute(&text, data); err != nil {
		return mail.Message{}, fmt.Errorf("could not render text report: %w", err)
	}
	if err := reportHTMLTmpl.Execute(&html, data); err != nil {
		return mail.Message{}, fmt.Errorf("could not render HTML report: %w", err)
	}

	return mail.Message{
		Subject: subject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
