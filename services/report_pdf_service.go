package services

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/mentorbridge/mentor_bridge/models"
)

// GenerateReportPDF renders a session report to PDF for download.
func GenerateReportPDF(session models.Session, report models.SessionReport) ([]byte, error) {
	htmlContent, err := renderReportHTML(session, report)
	if err != nil {
		return nil, err
	}
	return generatePDFFromHTML(htmlContent)
}

func renderReportHTML(session models.Session, report models.SessionReport) (string, error) {
	tmpl, err := template.ParseFiles("templates/session_report.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName string
		MentorName  string
		SessionDate string
		Summary     string
		KeyPoints   []string
		ActionItems []string
		GeneratedAt string
	}{
		StudentName: session.Student.FullName,
		MentorName:  session.Mentor.FullName,
		SessionDate: session.ScheduledAt.Format("January 2, 2006 at 15:04"),
		Summary:     report.Summary,
		KeyPoints:   report.KeyPoints,
		ActionItems: report.ActionItems,
		GeneratedAt: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
