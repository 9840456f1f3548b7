package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	config "github.com/mentorbridge/mentor_bridge/configs"
)

const embeddingModel = "text-embedding-3-small"
const reportModel = "gpt-4o"

// OpenAIService wraps the two OpenAI calls this platform makes: profile
// embeddings for matching and chat completions for session reports.
type OpenAIService struct {
	APIKey  string
	BaseURL string

	httpClient *http.Client
}

var OpenAI *OpenAIService

func InitOpenAIService() {
	apiKey := config.Config("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("⚠️ OPENAI_API_KEY not set. Matching and report generation will fail.")
	}

	OpenAI = NewOpenAIService(apiKey)
	log.Println("✅ OpenAI service initialized.")
}

func NewOpenAIService(apiKey string) *OpenAIService {
	return &OpenAIService{
		APIKey:     apiKey,
		BaseURL:    "https://api.openai.com/v1",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// CreateEmbedding converts free text to a fixed-length vector.
func (s *OpenAIService) CreateEmbedding(input string) ([]float64, error) {
	body, err := json.Marshal(embeddingRequest{Model: embeddingModel, Input: input})
	if err != nil {
		return nil, err
	}

	respBody, err := s.post("/embeddings", body)
	if err != nil {
		return nil, err
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(respBody, &embResp); err != nil {
		return nil, err
	}
	if len(embResp.Data) == 0 {
		return nil, errors.New("embedding API returned no data")
	}

	return embResp.Data[0].Embedding, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ReportData is the structured session report the chat model returns.
type ReportData struct {
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
}

const reportSystemPrompt = "You are an expert AI assistant for a mentorship platform. " +
	"Your task is to analyze a mentorship session transcript and generate a structured report. " +
	"Return JSON with 'summary', 'key_points' (array of strings), and 'action_items' (array of strings)."

// GenerateSessionReport asks the chat model to summarize a cleaned transcript.
func (s *OpenAIService) GenerateSessionReport(transcript string) (*ReportData, error) {
	body, err := json.Marshal(chatRequest{
		Model: reportModel,
		Messages: []chatMessage{
			{Role: "system", Content: reportSystemPrompt},
			{Role: "user", Content: "Analyze the following transcript and generate a mentorship session report: \n\n" + transcript},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return nil, err
	}

	respBody, err := s.post("/chat/completions", body)
	if err != nil {
		return nil, err
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("chat API returned no choices")
	}

	var report ReportData
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report JSON: %w", err)
	}

	return &report, nil
}

func (s *OpenAIService) post(path string, body []byte) ([]byte, error) {
	req, err := http.NewRequest("POST", s.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API returned %s: %s", resp.Status, string(respBody))
	}

	return respBody, nil
}
