package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type UpsertMealRequest struct {
	Year         int    `json:"year"`
	Week         int    `json:"week"`
	DayIndex     *int   `json:"day_index"`
	Vorspeise    string `json:"vorspeise"`
	Hauptgericht string `json:"hauptgericht"`
	Nachspeise   string `json:"nachspeise"`
	Kochteam     string `json:"kochteam"`
	Status       string `json:"status"`
}

func (req *UpsertMealRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Year, validation.Required, validation.Min(2000)),
		validation.Field(&req.Week, validation.Required, validation.Min(1), validation.Max(53)),
		validation.Field(&req.DayIndex, validation.NotNil, validation.Min(0), validation.Max(4)),
		validation.Field(&req.Status, validation.In("active", "canceled", "sick", "vacation")),
	)
}

type MealSignupRequest struct {
	Year     int      `json:"year"`
	Week     int      `json:"week"`
	DayIndex *int     `json:"day_index"`
	MemberID string   `json:"member_id"`
	Types    []string `json:"types"`
}

func (req *MealSignupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Year, validation.Required, validation.Min(2000)),
		validation.Field(&req.Week, validation.Required, validation.Min(1), validation.Max(53)),
		validation.Field(&req.DayIndex, validation.NotNil, validation.Min(0), validation.Max(4)),
		validation.Field(&req.MemberID, validation.Required, is.UUID),
		validation.Field(&req.Types, validation.Each(validation.In("aktiv", "gast", "reste"))),
	)
}
