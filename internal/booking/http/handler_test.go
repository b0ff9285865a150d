package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/quietriver/campus-booking-backend/internal/booking"
)

// stubService returns canned answers so the handler's parsing and error
// mapping can be tested without a store.
type stubService struct {
	created       *booking.Booking
	err           error
	overlapCalled bool
}

func (s *stubService) Create(ctx context.Context, d booking.Draft) (*booking.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubService) Cancel(ctx context.Context, id int64) error { return s.err }

func (s *stubService) Get(ctx context.Context, id int64) (*booking.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubService) ListForUser(ctx context.Context, userID int64) ([]*booking.Booking, error) {
	return nil, s.err
}

func (s *stubService) ListForRoom(ctx context.Context, roomID int64) ([]*booking.Booking, error) {
	return nil, s.err
}

func (s *stubService) ListAll(ctx context.Context) []*booking.Booking { return nil }

func (s *stubService) FindOverlapping(ctx context.Context, roomID int64, date time.Time, start, end int) ([]*booking.Booking, error) {
	s.overlapCalled = true
	if s.err != nil {
		return nil, s.err
	}
	if s.created != nil {
		return []*booking.Booking{s.created}, nil
	}
	return nil, nil
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc))
	return r
}

func post(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBody() map[string]any {
	return map[string]any{
		"room_id":      1,
		"date":         "2024-05-01",
		"start_hour":   10,
		"end_hour":     12,
		"booking_type": "student",
		"user_id":      3,
	}
}

func TestCreateRejectsMalformedInput(t *testing.T) {
	r := newTestRouter(&stubService{})

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing room_id", func(m map[string]any) { delete(m, "room_id") }},
		{"non-numeric room_id", func(m map[string]any) { m["room_id"] = "1; DROP TABLE bookings" }},
		{"malformed date", func(m map[string]any) { m["date"] = "05/01/2024" }},
		{"impossible date", func(m map[string]any) { m["date"] = "2024-13-99" }},
		{"start after end", func(m map[string]any) { m["start_hour"] = 14 }},
		{"hour out of range", func(m map[string]any) { m["end_hour"] = 25 }},
		{"unknown type", func(m map[string]any) { m["booking_type"] = "weekly" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validBody()
			tt.mutate(body)
			w := post(r, "/v1/bookings", body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestCreateReturnsBookingWithDerivedFields(t *testing.T) {
	created := &booking.Booking{
		ID:        7,
		RoomID:    1,
		Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		StartHour: 10,
		EndHour:   12,
		Type:      booking.TypeStudent,
		UserID:    3,
		Status:    booking.StatusActive,
	}
	r := newTestRouter(&stubService{created: created})

	w := post(r, "/v1/bookings", validBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(7), resp.ID)
	require.Equal(t, "2024-05-01", resp.Date)
	require.Equal(t, 18, resp.WeekNumber)
	require.Equal(t, "Wednesday", resp.WeekDay)
}

func TestCreateMapsConflict(t *testing.T) {
	r := newTestRouter(&stubService{err: &booking.ConflictError{BookingIDs: []int64{3, 4}}})

	w := post(r, "/v1/bookings", validBody())
	require.Equal(t, http.StatusConflict, w.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, []int64{3, 4}, resp.ConflictingBookingIDs)
}

func TestOverlapQueryRejectsMalformedWindow(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"start below range", "date=2024-05-01&start_hour=-5&end_hour=99"},
		{"end above range", "date=2024-05-01&start_hour=10&end_hour=25"},
		{"start after end", "date=2024-05-01&start_hour=12&end_hour=10"},
		{"empty window", "date=2024-05-01&start_hour=10&end_hour=10"},
		{"malformed date", "date=05/01/2024&start_hour=10&end_hour=12"},
		{"missing start_hour", "date=2024-05-01&end_hour=12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			r := newTestRouter(svc)
			req, _ := http.NewRequest(http.MethodGet, "/v1/rooms/1/bookings?"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			require.False(t, svc.overlapCalled, "window must be rejected before the service runs")
		})
	}
}

func TestOverlapQueryReturnsMatches(t *testing.T) {
	match := &booking.Booking{
		ID:        1,
		RoomID:    1,
		Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		StartHour: 10,
		EndHour:   12,
		Type:      booking.TypeStudent,
		UserID:    3,
		Status:    booking.StatusActive,
	}
	r := newTestRouter(&stubService{created: match})

	req, _ := http.NewRequest(http.MethodGet, "/v1/rooms/1/bookings?date=2024-05-01&start_hour=9&end_hour=11", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Items []BookingResponse `json:"items"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	require.Equal(t, int64(1), resp.Items[0].ID)
}

func TestCancelStatusCodes(t *testing.T) {
	r := newTestRouter(&stubService{})
	req, _ := http.NewRequest(http.MethodDelete, "/v1/bookings/7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	r = newTestRouter(&stubService{err: booking.ErrNotFound})
	req, _ = http.NewRequest(http.MethodDelete, "/v1/bookings/7", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	// A non-numeric id never reaches the service.
	r = newTestRouter(&stubService{})
	req, _ = http.NewRequest(http.MethodDelete, "/v1/bookings/seven", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
