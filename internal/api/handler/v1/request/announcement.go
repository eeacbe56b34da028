package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateAnnouncementRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	AuthorID string `json:"author_id"`
}

func (req *CreateAnnouncementRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.Category, validation.In("info", "urgent")),
		validation.Field(&req.AuthorID, is.UUID),
	)
}
