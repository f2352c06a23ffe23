package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/master-scheduler/internal/dto"
	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/master-scheduler/internal/middleware"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
	ucBooking "github.com/BruksfildServices01/master-scheduler/internal/usecase/booking"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var day = time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC)

type server struct {
	store   *memory.Store
	router  *gin.Engine
	master  models.MasterProfile
	service models.Service
	slots   []models.Slot
}

// newServer seeds one master with one service and n consecutive 30 minute
// slots and mounts the public and cabinet booking routes over it.
func newServer(t *testing.T, serviceMinutes, n int) *server {
	t.Helper()

	store := memory.NewStore()
	master := store.AddProfile(models.MasterProfile{DisplayName: "Anna", Slug: "anna"})
	service := store.AddService(models.Service{
		MasterID:    master.UserID,
		Name:        "Haircut",
		DurationMin: serviceMinutes,
		Price:       25,
		Active:      true,
	})
	slots := store.AddSlots(master.UserID, day, 30*time.Minute, n)

	create := ucBooking.NewCreateBooking(store, nil, nil)
	cancel := ucBooking.NewCancelBooking(store, nil, nil)
	get := ucBooking.NewGetBooking(store)

	public := NewPublicHandler(
		ucBooking.NewListMasters(store),
		ucBooking.NewGetMaster(store),
		nil,
		ucBooking.NewGetAvailability(store, nil),
		create,
		get,
		cancel,
		14*24*time.Hour,
	)
	cabinet := NewBookingHandler(ucBooking.NewListBookings(store), get, cancel)

	r := gin.New()
	r.GET("/api/public/masters", public.ListMasters)
	r.GET("/api/public/masters/:slug", public.GetMaster)
	r.GET("/api/public/masters/:slug/slots", public.Availability)
	r.POST("/api/public/masters/:slug/bookings", public.CreateBooking)
	r.GET("/api/public/bookings/:reference", public.GetBooking)
	r.POST("/api/public/bookings/:reference/cancel", public.CancelBooking)

	me := r.Group("/api/me", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, master.UserID)
		c.Set(middleware.ContextMasterID, master.UserID)
		c.Next()
	})
	me.GET("/bookings", cabinet.List)
	me.GET("/bookings/:id", cabinet.Get)
	me.PATCH("/bookings/:id/cancel", cabinet.Cancel)

	return &server{store: store, router: r, master: master, service: service, slots: slots}
}

func (s *server) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *server) book(slotID uint) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/api/public/masters/anna/bookings", PublicCreateBookingRequest{
		ServiceID:   s.service.ID,
		SlotID:      slotID,
		ClientName:  "Bob",
		ClientPhone: "+1 555 0100",
	})
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

// ======================================================
// MASTER / AVAILABILITY
// ======================================================

func TestPublic_GetMaster(t *testing.T) {
	s := newServer(t, 30, 1)

	w := s.do(http.MethodGet, "/api/public/masters/anna", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "Anna", body["display_name"])
	assert.Equal(t, "UTC", body["timezone"])

	w = s.do(http.MethodGet, "/api/public/masters/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "master_not_found", decode[httperr.HTTPError](t, w).Code)
}

func TestPublic_ListMasters(t *testing.T) {
	s := newServer(t, 30, 1)

	idle := s.store.AddProfile(models.MasterProfile{DisplayName: "Boris", Slug: "boris"})
	s.store.AddSlots(idle.UserID, time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC), 30*time.Minute, 2)

	w := s.do(http.MethodGet, "/api/public/masters", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Masters    []map[string]any `json:"masters"`
		AllMasters []map[string]any `json:"all_masters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Len(t, body.Masters, 1)
	assert.Equal(t, "anna", body.Masters[0]["slug"])

	require.Len(t, body.AllMasters, 2)
	assert.Equal(t, "anna", body.AllMasters[0]["slug"])
	assert.Equal(t, "boris", body.AllMasters[1]["slug"])
}

func TestPublic_AvailabilityHidesBookedSlots(t *testing.T) {
	s := newServer(t, 30, 3)
	require.Equal(t, http.StatusCreated, s.book(s.slots[1].ID).Code)

	path := fmt.Sprintf("/api/public/masters/anna/slots?service=%d&from=2030-03-04&to=2030-03-04", s.service.ID)
	w := s.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SlotsNeeded int           `json:"slots_needed"`
		Slots       []dto.SlotDTO `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 1, body.SlotsNeeded)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, s.slots[0].ID, body.Slots[0].ID)
	assert.Equal(t, s.slots[2].ID, body.Slots[1].ID)
}

func TestPublic_AvailabilityRejectsBadDates(t *testing.T) {
	s := newServer(t, 30, 1)

	w := s.do(http.MethodGet, "/api/public/masters/anna/slots?from=04-03-2030", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/public/masters/anna/slots?from=2030-03-05&to=2030-03-04", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_range", decode[httperr.HTTPError](t, w).Code)
}

// ======================================================
// CREATE
// ======================================================

func TestPublic_CreateBooking(t *testing.T) {
	s := newServer(t, 60, 3)

	w := s.book(s.slots[0].ID)
	require.Equal(t, http.StatusCreated, w.Code)

	b := decode[dto.BookingDTO](t, w)
	assert.Equal(t, models.BookingCreated, b.Status)
	assert.Equal(t, "Haircut", b.Service.Name)
	require.Len(t, b.Slots, 2)
	assert.True(t, b.StartAt.Equal(s.slots[0].StartAt))
	assert.True(t, b.EndAt.Equal(s.slots[1].EndAt))
	_, err := uuid.Parse(b.Reference)
	assert.NoError(t, err)
}

func TestPublic_CreateBookingTwiceIsConflict(t *testing.T) {
	s := newServer(t, 30, 1)

	require.Equal(t, http.StatusCreated, s.book(s.slots[0].ID).Code)

	w := s.book(s.slots[0].ID)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_taken", decode[httperr.HTTPError](t, w).Code)
	assert.Equal(t, 1, s.store.BookingCount())
}

func TestPublic_CreateBookingRaceHasOneWinner(t *testing.T) {
	s := newServer(t, 30, 1)

	const clients = 6
	codes := make([]int, clients)

	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = s.book(s.slots[0].ID).Code
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, clients-1, conflicts)
	assert.Equal(t, 1, s.store.ActiveLinks(s.slots[0].ID))
}

func TestPublic_CreateBookingInsufficientRun(t *testing.T) {
	s := newServer(t, 90, 2)

	w := s.book(s.slots[0].ID)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Code    string `json:"error_code"`
		Details struct {
			Needed int `json:"needed"`
			Found  int `json:"found"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "insufficient_run", body.Code)
	assert.Equal(t, 3, body.Details.Needed)
	assert.Equal(t, 2, body.Details.Found)
	assert.Equal(t, models.SlotAvailable, s.store.Slot(s.slots[0].ID).Status)
}

func TestPublic_CreateBookingValidation(t *testing.T) {
	s := newServer(t, 30, 1)

	cases := []struct {
		name string
		body any
		code string
	}{
		{"missing fields", gin.H{"client_name": "Bob"}, "invalid_request"},
		{"blank name", PublicCreateBookingRequest{ServiceID: s.service.ID, SlotID: s.slots[0].ID, ClientName: "   ", ClientPhone: "+15550100"}, "invalid_client_name"},
		{"bad phone", PublicCreateBookingRequest{ServiceID: s.service.ID, SlotID: s.slots[0].ID, ClientName: "Bob", ClientPhone: "call me"}, "invalid_phone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/public/masters/anna/bookings", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.code, decode[httperr.HTTPError](t, w).Code)
		})
	}
	assert.Equal(t, 0, s.store.BookingCount())
}

func TestPublic_CreateBookingUnknownSlot(t *testing.T) {
	s := newServer(t, 30, 1)

	w := s.book(9999)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "slot_not_found", decode[httperr.HTTPError](t, w).Code)
}

// ======================================================
// BY REFERENCE
// ======================================================

func TestPublic_GetAndCancelByReference(t *testing.T) {
	s := newServer(t, 60, 2)

	created := decode[dto.BookingDTO](t, s.book(s.slots[0].ID))

	w := s.do(http.MethodGet, "/api/public/bookings/"+created.Reference, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[dto.BookingDTO](t, w).ID)

	w = s.do(http.MethodPost, "/api/public/bookings/"+created.Reference+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cancelled := decode[dto.BookingDTO](t, w)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, models.SlotAvailable, s.store.Slot(s.slots[0].ID).Status)
	assert.Equal(t, models.SlotAvailable, s.store.Slot(s.slots[1].ID).Status)

	w = s.do(http.MethodPost, "/api/public/bookings/"+created.Reference+"/cancel", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the freed run can be booked again
	assert.Equal(t, http.StatusCreated, s.book(s.slots[0].ID).Code)
}

func TestPublic_UnknownReference(t *testing.T) {
	s := newServer(t, 30, 1)

	w := s.do(http.MethodGet, "/api/public/bookings/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/public/bookings/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "booking_not_found", decode[httperr.HTTPError](t, w).Code)
}
