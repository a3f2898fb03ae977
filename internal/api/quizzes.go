package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"lurnix/internal/quiz"
)

// GenerateQuizzesRequest asks the backend to author quizzes for one
// module (or every module when ModuleCode is empty).
type GenerateQuizzesRequest struct {
	CourseID     string `json:"course_id"`
	ModuleCode   string `json:"module_code,omitempty"`
	Overwrite    bool   `json:"overwrite"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

// GenerateQuizzesResponse reports the outcome of quiz generation.
type GenerateQuizzesResponse struct {
	Success          bool        `json:"success"`
	Message          string      `json:"message"`
	Errors           []string    `json:"errors"`
	GeneratedQuizzes []quiz.Quiz `json:"generated_quizzes"`
}

// QuizListResponse is a page of stored quizzes.
type QuizListResponse struct {
	Quizzes []quiz.Quiz `json:"quizzes"`
}

// GenerateQuizzes requests quiz generation for a course/module.
func (c *Client) GenerateQuizzes(ctx context.Context, req GenerateQuizzesRequest) (*GenerateQuizzesResponse, error) {
	var out GenerateQuizzesResponse
	if err := c.send(ctx, http.MethodPost, c.userBase, "/quiz/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetQuizzesByCourse lists stored quizzes for a course, optionally
// filtered to one module. Zero page/size values are omitted.
func (c *Client) GetQuizzesByCourse(ctx context.Context, courseID, moduleCode string, page, size int) (*QuizListResponse, error) {
	query := url.Values{}
	if moduleCode != "" {
		query.Set("module_code", moduleCode)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}

	var out QuizListResponse
	err := c.get(ctx, c.userBase, "/quiz/course/"+url.PathEscape(courseID), query, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
