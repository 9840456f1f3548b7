package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mentorbridge/mentor_bridge/database"
	"github.com/mentorbridge/mentor_bridge/models"
)

const (
	// MatchThreshold is the minimum cosine similarity a mentor must clear.
	MatchThreshold = 0.2
	// MatchCount caps the shortlist handed back to the intake handler.
	MatchCount = 4
)

// MentorMatch pairs a ranked mentor with their similarity score.
type MentorMatch struct {
	Mentor     models.Mentor
	Similarity float64
}

// BuildStudentProfileText concatenates the student's free-text answers into
// the single document that gets embedded.
func BuildStudentProfileText(strengths, weaknesses, requirements, anythingElse string) string {
	return strings.TrimSpace(fmt.Sprintf(
		"Student Requirements:\nStrengths: %s\nWeaknesses: %s\nMentor Requirements: %s\nAdditional Info: %s",
		strengths, weaknesses, requirements, anythingElse,
	))
}

// MatchMentors ranks active mentors against the query embedding and returns
// at most MatchCount mentors above MatchThreshold, best first.
func MatchMentors(queryEmbedding []float64) ([]MentorMatch, error) {
	var mentors []models.Mentor
	if err := database.DB.Preload("User").Where("status = ?", "active").Find(&mentors).Error; err != nil {
		return nil, err
	}

	matches := make([]MentorMatch, 0, len(mentors))
	for _, mentor := range mentors {
		if len(mentor.Embedding) == 0 {
			continue
		}
		similarity := CosineSimilarity(queryEmbedding, mentor.Embedding)
		if similarity < MatchThreshold {
			continue
		}
		matches = append(matches, MentorMatch{Mentor: mentor, Similarity: similarity})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > MatchCount {
		matches = matches[:MatchCount]
	}
	return matches, nil
}

// CosineSimilarity returns the cosine of the angle between two vectors, or 0
// when the dimensions differ or either vector is zero.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// BuildMentorProfileText assembles the document embedded for a mentor at
// approval time, mirroring what students describe at intake.
func BuildMentorProfileText(headline, bio string, expertise []string) string {
	return strings.TrimSpace(fmt.Sprintf(
		"Mentor Profile:\nHeadline: %s\nBio: %s\nExpertise: %s",
		headline, bio, strings.Join(expertise, ", "),
	))
}
