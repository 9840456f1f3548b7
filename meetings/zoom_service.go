package meetings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	config "github.com/mentorbridge/mentor_bridge/configs"
)

// ZoomService talks to the Zoom REST API using Server-to-Server OAuth.
// The access token is cached on the service with its expiry, so a restart or a
// second instance never shares stale process-wide state.
type ZoomService struct {
	AccountID    string
	ClientID     string
	ClientSecret string

	TokenURL string
	APIURL   string

	mu          sync.RWMutex
	token       string
	tokenExpiry time.Time

	httpClient *http.Client
}

var Client *ZoomService

func InitZoomService() {
	accountID := config.Config("ZOOM_ACCOUNT_ID")
	clientID := config.Config("ZOOM_CLIENT_ID")
	clientSecret := config.Config("ZOOM_CLIENT_SECRET")

	if accountID == "" || clientID == "" || clientSecret == "" {
		log.Println("⚠️ Zoom not configured. Sessions will be created without meeting links.")
		Client = nil
		return
	}

	Client = NewZoomService(accountID, clientID, clientSecret)
	log.Println("✅ Zoom service initialized successfully.")
}

func NewZoomService(accountID, clientID, clientSecret string) *ZoomService {
	return &ZoomService{
		AccountID:    accountID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     "https://zoom.us/oauth/token",
		APIURL:       "https://api.zoom.us/v2",
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// GetAccessToken returns the cached token, refetching it one minute before
// expiry.
func (z *ZoomService) GetAccessToken() (string, error) {
	z.mu.RLock()
	if z.token != "" && time.Now().Before(z.tokenExpiry.Add(-time.Minute)) {
		token := z.token
		z.mu.RUnlock()
		return token, nil
	}
	z.mu.RUnlock()

	z.mu.Lock()
	defer z.mu.Unlock()

	if z.token != "" && time.Now().Before(z.tokenExpiry.Add(-time.Minute)) {
		return z.token, nil
	}

	log.Println("Fetching new Zoom access token...")
	url := fmt.Sprintf("%s?grant_type=account_credentials&account_id=%s", z.TokenURL, z.AccountID)
	req, err := http.NewRequest("POST", url, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(z.ClientID, z.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := z.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("zoom token API returned %s: %s", resp.Status, string(body))
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}

	z.token = tokenResp.AccessToken
	z.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	return z.token, nil
}

type Meeting struct {
	ID       string
	JoinURL  string
	StartURL string
}

type meetingResponse struct {
	ID       int64  `json:"id"`
	JoinURL  string `json:"join_url"`
	StartURL string `json:"start_url"`
}

// CreateMeeting schedules a Zoom meeting and returns its id and URLs.
func (z *ZoomService) CreateMeeting(topic string, startTime time.Time, durationMinutes int) (*Meeting, error) {
	accessToken, err := z.GetAccessToken()
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"topic":      topic,
		"type":       2, // scheduled meeting
		"start_time": startTime.UTC().Format(time.RFC3339),
		"duration":   durationMinutes,
		"timezone":   "UTC",
		"settings": map[string]interface{}{
			"host_video":        true,
			"participant_video": true,
			"join_before_host":  true,
			"waiting_room":      false,
			"audio":             "both",
			"auto_recording":    "cloud", // recordings feed the session reports
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", z.APIURL+"/users/me/meetings", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := z.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create Zoom meeting: %s", string(respBody))
	}

	var meetingResp meetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&meetingResp); err != nil {
		return nil, err
	}

	return &Meeting{
		ID:       strconv.FormatInt(meetingResp.ID, 10),
		JoinURL:  meetingResp.JoinURL,
		StartURL: meetingResp.StartURL,
	}, nil
}

// DownloadTranscript fetches a webhook-provided recording file. Zoom download
// URLs require the OAuth bearer token.
func (z *ZoomService) DownloadTranscript(downloadURL string) (string, error) {
	accessToken, err := z.GetAccessToken()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("GET", downloadURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := z.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download transcript: %s", resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
