package services

import (
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/meetings"
	"github.com/mentorbridge/mentor_bridge/models"
)

var (
	vttSequenceRe  = regexp.MustCompile(`(?m)^\d+$\n?`)
	vttTimestampRe = regexp.MustCompile(`(?m)^\d{2}:\d{2}:\d{2}\.\d{3} --> \d{2}:\d{2}:\d{2}\.\d{3}.*$\n?`)
	vttBlankRunsRe = regexp.MustCompile(`\n{3,}`)
)

// ParseVTT strips the WEBVTT header, cue numbers and timestamps, leaving the
// "Speaker: text" lines.
func ParseVTT(vttContent string) string {
	text := vttContent
	if idx := strings.Index(text, "WEBVTT"); idx == 0 {
		text = strings.TrimPrefix(text, "WEBVTT")
		text = strings.TrimLeft(text, "\r\n")
	}

	text = vttSequenceRe.ReplaceAllString(text, "")
	text = vttTimestampRe.ReplaceAllString(text, "")
	text = vttBlankRunsRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// ProcessTranscript downloads a finished meeting's transcript, generates the
// AI report and stores it against the session. Runs detached from the webhook
// handler so Zoom gets its acknowledgement quickly.
func ProcessTranscript(meetingID, downloadURL string) error {
	log.Printf("[REPORTS] Starting process for meeting: %s", meetingID)

	if meetings.Client == nil {
		return errors.New("zoom service not configured")
	}
	if OpenAI == nil {
		return errors.New("openai service not configured")
	}

	vttContent, err := meetings.Client.DownloadTranscript(downloadURL)
	if err != nil {
		return err
	}
	cleanedTranscript := ParseVTT(vttContent)

	log.Printf("[REPORTS] Generating AI report for meeting: %s", meetingID)
	report, err := OpenAI.GenerateSessionReport(cleanedTranscript)
	if err != nil {
		return err
	}

	var session models.Session
	if err := database.DB.Select("id").Where("zoom_meeting_id = ?", meetingID).First(&session).Error; err != nil {
		return errors.New("session not found for transcript")
	}

	sessionReport := models.SessionReport{
		SessionID:     session.ID,
		Summary:       report.Summary,
		KeyPoints:     report.KeyPoints,
		ActionItems:   report.ActionItems,
		RawTranscript: cleanedTranscript,
	}
	if err := database.DB.Create(&sessionReport).Error; err != nil {
		return err
	}

	log.Printf("[REPORTS] Success: Report generated for session %s", session.ID)
	return nil
}
