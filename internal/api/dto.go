package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/wunjo/internal/models"
)

// CreateTopicRequest is the request body for creating a topic.
type CreateTopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate validates the request.
func (r CreateTopicRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 500)),
	)
}

// CreateResourceRequest is the request body for attaching a resource.
type CreateResourceRequest struct {
	ResType string `json:"res_type"`
	Content string `json:"content"`
}

// Validate validates the request. Link content is additionally checked
// against the URL validator in the service layer.
func (r CreateResourceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ResType, validation.Required, validation.In(models.ResourceLink, models.ResourceText)),
		validation.Field(&r.Content, validation.Required),
	)
}

// CreateNoteRequest is the request body for attaching a note.
type CreateNoteRequest struct {
	Text string `json:"text"`
}

// Validate validates the request.
func (r CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required),
	)
}

// CreateProgressRequest is the request body for recording progress.
type CreateProgressRequest struct {
	Percent int `json:"percent"`
}

// Validate validates the request. Required is not used here: zero percent
// is a legal value.
func (r CreateProgressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Percent, validation.Min(0), validation.Max(100)),
	)
}

// TopicResponse is the lightweight topic representation used in lists.
type TopicResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TopicDetailResponse includes the child collections.
type TopicDetailResponse struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Resources   []*models.Resource      `json:"resources"`
	Notes       []*models.Note          `json:"notes"`
	Progress    []*models.ProgressEntry `json:"progress"`
}

func topicResponse(t *models.Topic) TopicResponse {
	return TopicResponse{Title: t.Title, Description: t.Description}
}

func topicDetailResponse(t *models.Topic) TopicDetailResponse {
	return TopicDetailResponse{
		Title:       t.Title,
		Description: t.Description,
		Resources:   t.Resources,
		Notes:       t.Notes,
		Progress:    t.Progress,
	}
}
