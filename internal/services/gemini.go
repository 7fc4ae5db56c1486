package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

// Assistant is the narrow surface the handlers need from a generative model.
type Assistant interface {
	GenerateQuiz(ctx context.Context, subject, difficulty string, count int) ([]models.QuizQuestion, error)
	GenerateStudyPlan(ctx context.Context, subjects []string, availableHours float64, goals []string) ([]models.StudyPlanItem, error)
	ExplainConcept(ctx context.Context, concept, background string) (string, error)
	AnalyzePerformance(ctx context.Context, quizzes []*models.Quiz, studyHours float64) (string, error)
}

type GeminiConfig struct {
	APIKey          string
	StructuredModel string
	TextModel       string
	ConcurrentReqs  int
	Timeout         time.Duration
}

type GeminiService struct {
	client          *genai.Client
	structuredModel string
	textModel       string
	timeout         time.Duration
	rateChan        chan struct{} // Token bucket
}

func NewGeminiService(ctx context.Context, cfg GeminiConfig) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Token bucket for rate limiting
	rateChan := make(chan struct{}, cfg.ConcurrentReqs)
	for i := 0; i < cfg.ConcurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:          client,
		structuredModel: cfg.StructuredModel,
		textModel:       cfg.TextModel,
		timeout:         cfg.Timeout,
		rateChan:        rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// generate runs one prompt against the named model. A non-nil schema switches
// the model to JSON output constrained by it.
func (s *GeminiService) generate(ctx context.Context, modelName, prompt string, schema *genai.Schema) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	model := s.client.GenerativeModel(modelName)
	if schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = schema
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", fmt.Errorf("%w: empty text", ErrMalformedResponse)
	}
	return text, nil
}

func (s *GeminiService) GenerateQuiz(ctx context.Context, subject, difficulty string, count int) ([]models.QuizQuestion, error) {
	raw, err := s.generate(ctx, s.structuredModel, buildQuizPrompt(subject, difficulty, count), quizSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to generate quiz: %w", err)
	}
	return parseQuizQuestions(raw, count)
}

func (s *GeminiService) GenerateStudyPlan(ctx context.Context, subjects []string, availableHours float64, goals []string) ([]models.StudyPlanItem, error) {
	raw, err := s.generate(ctx, s.structuredModel, buildStudyPlanPrompt(subjects, availableHours, goals), studyPlanSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to generate study plan: %w", err)
	}
	return parseStudyPlan(raw)
}

func (s *GeminiService) ExplainConcept(ctx context.Context, concept, background string) (string, error) {
	text, err := s.generate(ctx, s.textModel, buildExplainPrompt(concept, background), nil)
	if err != nil {
		return "", fmt.Errorf("failed to explain concept: %w", err)
	}
	return text, nil
}

func (s *GeminiService) AnalyzePerformance(ctx context.Context, quizzes []*models.Quiz, studyHours float64) (string, error) {
	prompt, err := buildAnalysisPrompt(quizzes, studyHours)
	if err != nil {
		return "", err
	}
	text, err := s.generate(ctx, s.structuredModel, prompt, nil)
	if err != nil {
		return "", fmt.Errorf("failed to analyze performance: %w", err)
	}
	return text, nil
}

// Response schemas

var quizSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"questions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"question":      {Type: genai.TypeString},
					"options":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"correctAnswer": {Type: genai.TypeInteger},
					"explanation":   {Type: genai.TypeString},
				},
				Required: []string{"question", "options", "correctAnswer", "explanation"},
			},
		},
	},
	Required: []string{"questions"},
}

var studyPlanSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"studyPlan": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"duration":    {Type: genai.TypeInteger},
					"difficulty":  {Type: genai.TypeString, Enum: []string{models.DifficultyLow, models.DifficultyMedium, models.DifficultyHigh}},
					"priority":    {Type: genai.TypeInteger},
				},
				Required: []string{"title", "description", "duration", "difficulty", "priority"},
			},
		},
	},
	Required: []string{"studyPlan"},
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

func parseQuizQuestions(raw string, count int) ([]models.QuizQuestion, error) {
	var payload struct {
		Questions []models.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(payload.Questions) != count {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", ErrMalformedResponse, count, len(payload.Questions))
	}
	for i, q := range payload.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("%w: question %d is empty", ErrMalformedResponse, i)
		}
		if len(q.Options) != models.QuizOptionCount {
			return nil, fmt.Errorf("%w: question %d has %d options", ErrMalformedResponse, i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= models.QuizOptionCount {
			return nil, fmt.Errorf("%w: question %d answer index %d", ErrMalformedResponse, i, q.CorrectAnswer)
		}
	}
	return payload.Questions, nil
}

func parseStudyPlan(raw string) ([]models.StudyPlanItem, error) {
	var payload struct {
		StudyPlan []models.StudyPlanItem `json:"studyPlan"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(payload.StudyPlan) == 0 {
		return nil, fmt.Errorf("%w: empty study plan", ErrMalformedResponse)
	}

	for i := range payload.StudyPlan {
		item := &payload.StudyPlan[i]
		item.Title = strings.TrimSpace(item.Title)
		if item.Title == "" {
			return nil, fmt.Errorf("%w: item %d has no title", ErrMalformedResponse, i)
		}
		if item.Duration <= 0 {
			return nil, fmt.Errorf("%w: item %d has duration %d", ErrMalformedResponse, i, item.Duration)
		}
		item.Difficulty = normalizeDifficulty(item.Difficulty)
	}
	return payload.StudyPlan, nil
}

func normalizeDifficulty(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "low", "easy", "beginner":
		return models.DifficultyLow
	case "high", "hard", "advanced":
		return models.DifficultyHigh
	default:
		return models.DifficultyMedium
	}
}

func buildQuizPrompt(subject, difficulty string, count int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Generate %d multiple choice questions for %s at %s difficulty level.\n", count, subject, difficulty))
	b.WriteString(fmt.Sprintf("Each question must have exactly %d options with only one correct answer.\n", models.QuizOptionCount))
	b.WriteString("correctAnswer is the zero-based index of the correct option.\n\n")
	b.WriteString(`Respond with JSON in this exact format:
{"questions": [{"question": "string", "options": ["A", "B", "C", "D"], "correctAnswer": 0, "explanation": "why this is correct"}]}
`)
	return b.String()
}

func buildStudyPlanPrompt(subjects []string, availableHours float64, goals []string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Create a personalized study plan for the following subjects: %s.\n", strings.Join(subjects, ", ")))
	b.WriteString(fmt.Sprintf("Available study time: %g hours per week.\n", availableHours))
	if len(goals) > 0 {
		b.WriteString(fmt.Sprintf("Learning goals: %s.\n", strings.Join(goals, ", ")))
	}
	b.WriteString("\nGenerate a structured study plan with specific tasks. Duration is in minutes, difficulty is Low, Medium or High, priority 1 is most important.\n\n")
	b.WriteString(`Respond with JSON in this format:
{"studyPlan": [{"title": "Task title", "description": "What to study", "duration": 60, "difficulty": "Medium", "priority": 1}]}
`)
	return b.String()
}

func buildExplainPrompt(concept, background string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Explain the concept %q in a clear, educational way.\n", concept))
	if background != "" {
		b.WriteString(fmt.Sprintf("Context: %s\n", background))
	}
	b.WriteString(`
Make the explanation:
- Easy to understand for students
- Include relevant examples
- Break down complex ideas into simpler parts
- Highlight key points
`)
	return b.String()
}

type quizResult struct {
	Subject        string    `json:"subject"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	TakenAt        time.Time `json:"takenAt"`
}

func buildAnalysisPrompt(quizzes []*models.Quiz, studyHours float64) (string, error) {
	results := make([]quizResult, 0, len(quizzes))
	for _, q := range quizzes {
		r := quizResult{Subject: q.Subject, TotalQuestions: q.TotalQuestions, TakenAt: q.CreatedAt}
		if q.Score != nil {
			r.Score = *q.Score
		}
		results = append(results, r)
	}

	data, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("encode quiz results: %w", err)
	}

	var b strings.Builder
	b.WriteString("Analyze this student's performance and provide recommendations.\n\n")
	b.WriteString(fmt.Sprintf("Quiz Results: %s\n", data))
	b.WriteString(fmt.Sprintf("Weekly Study Hours: %g\n\n", studyHours))
	b.WriteString(`Provide:
1. Performance analysis
2. Areas for improvement
3. Study strategies
4. Motivation tips
`)
	return b.String(), nil
}
