package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/service"
)

type stubEventService struct {
	events        []domain.Event
	registrations []domain.Registration
}

func (s *stubEventService) ListEvents(context.Context) ([]domain.Event, error) {
	return s.events, nil
}

func (s *stubEventService) CreateEvent(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = "created-id"
	s.events = append(s.events, event)
	return event, nil
}

func (s *stubEventService) UpdateEvent(_ context.Context, id string, _ map[string]any) (domain.Event, error) {
	for _, e := range s.events {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Event{}, service.ErrEventNotFound
}

func (s *stubEventService) DeleteEvent(_ context.Context, id string) error {
	for _, e := range s.events {
		if e.ID == id {
			return nil
		}
	}
	return service.ErrEventNotFound
}

func (s *stubEventService) Register(_ context.Context, reg domain.Registration) (domain.Registration, error) {
	if !reg.Status.Valid() {
		return domain.Registration{}, service.ErrInvalidRegStatus
	}
	for _, e := range s.events {
		if e.ID == reg.EventID {
			// Overwrite an earlier answer from the same member.
			for i, existing := range s.registrations {
				if existing.EventID == reg.EventID && existing.MemberID == reg.MemberID {
					reg.ID = existing.ID
					s.registrations[i] = reg
					return reg, nil
				}
			}
			reg.ID = "reg-1"
			s.registrations = append(s.registrations, reg)
			return reg, nil
		}
	}
	return domain.Registration{}, service.ErrEventNotFound
}

func newEventRouter(svc EventService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewEventHandler(svc, NewStreamHandler())

	router := gin.New()
	router.GET("/events", handler.HandleListEvents)
	router.POST("/events", handler.HandleCreateEvent)
	router.PATCH("/events/:eventID", handler.HandleUpdateEvent)
	router.DELETE("/events/:eventID", handler.HandleDeleteEvent)
	router.POST("/event-registrations", handler.HandleUpsertRegistration)

	return router
}

func TestHandleCreateEvent(t *testing.T) {
	svc := &stubEventService{}
	router := newEventRouter(svc)

	w := httptest.NewRecorder()
	body := `{"title":"Stiftungsfest","date":"2026-03-20","category":"pflicht"}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var got domain.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "created-id", got.ID)

	// The date format is checked before the service is reached.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"title":"Kneipe","date":"20.03.2026"}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpsertRegistration(t *testing.T) {
	const (
		eventID  = "7d5bd7a0-8f2e-4a8a-b9a4-1fbc5ea63e0f"
		memberID = "0b167c28-69af-4b68-9425-a09b04a21f43"
	)

	svc := &stubEventService{events: []domain.Event{{ID: eventID, Title: "Kneipe", Date: "2026-03-20"}}}
	router := newEventRouter(svc)

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/event-registrations", strings.NewReader(body))
		router.ServeHTTP(w, req)
		return w
	}

	w := post(`{"event_id":"` + eventID + `","member_id":"` + memberID + `","status":"ja","confirmed":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	// A second answer overwrites the first instead of adding a row.
	w = post(`{"event_id":"` + eventID + `","member_id":"` + memberID + `","status":"nein","confirmed":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.registrations, 1)
	assert.Equal(t, domain.StatusNo, svc.registrations[0].Status)

	// Unknown status values never reach storage.
	w = post(`{"event_id":"` + eventID + `","member_id":"` + memberID + `","status":"jein"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown event.
	w = post(`{"event_id":"` + memberID + `","member_id":"` + memberID + `","status":"ja"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeleteEvent(t *testing.T) {
	svc := &stubEventService{events: []domain.Event{{ID: "e1"}}}
	router := newEventRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/events/e1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/events/missing", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
