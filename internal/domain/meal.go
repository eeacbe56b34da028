package domain

// MealStatus tells whether a cooked meal takes place on a given weekday.
type MealStatus string

const (
	MealActive   MealStatus = "active"
	MealCanceled MealStatus = "canceled"
	MealSick     MealStatus = "sick"
	MealVacation MealStatus = "vacation"
)

func (s MealStatus) Valid() bool {
	switch s {
	case MealActive, MealCanceled, MealSick, MealVacation:
		return true
	}
	return false
}

// Canceled reports whether the meal does not take place. Rows without a
// status count as active.
func (s MealStatus) Canceled() bool {
	return s != "" && s != MealActive
}

// MealTag is one participation flag on a meal signup. A signup carries a set
// of tags; gast and reste depend on aktiv being present.
type MealTag string

const (
	TagAktiv MealTag = "aktiv"
	TagGast  MealTag = "gast"
	TagReste MealTag = "reste"
)

func (t MealTag) Valid() bool {
	switch t {
	case TagAktiv, TagGast, TagReste:
		return true
	}
	return false
}

// Price is the fixed charge for the tag, in euros.
func (t MealTag) Price() float64 {
	switch t {
	case TagAktiv, TagGast:
		return 3
	case TagReste:
		return 2.5
	}
	return 0
}

// SignupAmount is the charge for a tag set: the sum of the per-tag prices.
func SignupAmount(tags []MealTag) float64 {
	var sum float64
	for _, t := range tags {
		sum += t.Price()
	}
	return sum
}

// Meal is the cooked meal of one weekday, keyed by ISO year, ISO week and
// day index (0 = Monday .. 4 = Friday).
type Meal struct {
	ID           string       `json:"id,omitempty"`
	Year         int          `json:"year"`
	Week         int          `json:"week"`
	DayIndex     int          `json:"day_index"`
	Vorspeise    string       `json:"vorspeise,omitempty"`
	Hauptgericht string       `json:"hauptgericht,omitempty"`
	Nachspeise   string       `json:"nachspeise,omitempty"`
	Kochteam     string       `json:"kochteam,omitempty"`
	Status       MealStatus   `json:"status,omitempty"`
	Signups      []MealSignup `json:"signups,omitempty"`
}

// SignupFor returns the member's signup for this meal, if any.
func (m Meal) SignupFor(memberID string) (MealSignup, bool) {
	for _, s := range m.Signups {
		if s.MemberID == memberID {
			return s, true
		}
	}
	return MealSignup{}, false
}

// MealSignup is one member's participation in one meal. At most one exists
// per (meal, member) pair; the backend upserts on conflict.
type MealSignup struct {
	ID       string    `json:"id,omitempty"`
	MealID   string    `json:"meal_id,omitempty"`
	MemberID string    `json:"member_id"`
	Tags     []MealTag `json:"types"`
	Amount   float64   `json:"amount"`
}

// HasTag reports whether the signup carries the given tag.
func (s MealSignup) HasTag(tag MealTag) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
