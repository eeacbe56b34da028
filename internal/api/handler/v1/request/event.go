package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var dateExp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type CreateEventRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	EndDate     string `json:"end_date"`
	Time        string `json:"time"`
	MeetingTime string `json:"meeting_time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CreatedBy   string `json:"created_by"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Date, validation.Required, validation.Match(dateExp)),
		validation.Field(&req.EndDate, validation.Match(dateExp)),
		validation.Field(&req.Category, validation.In("intern", "pflicht", "freiwillig")),
		validation.Field(&req.CreatedBy, is.UUID),
	)
}

type RegistrationRequest struct {
	EventID    string `json:"event_id"`
	MemberID   string `json:"member_id"`
	Status     string `json:"status"`
	Confirmed  bool   `json:"confirmed"`
	Extras     string `json:"extras"`
	GuestCount int    `json:"guest_count"`
}

func (req *RegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, is.UUID),
		validation.Field(&req.MemberID, validation.Required, is.UUID),
		validation.Field(&req.Status, validation.Required, validation.In("ja", "nein", "vielleicht")),
		validation.Field(&req.GuestCount, validation.Min(0)),
	)
}
