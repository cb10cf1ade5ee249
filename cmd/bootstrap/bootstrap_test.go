package bootstrap

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"health-consultancy-api/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-04-22 is a Monday, 2024-04-21 a Sunday
const (
	monday = "2024-04-22"
	sunday = "2024-04-21"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		DB:      config.DBConfig{DSN: ":memory:", LogLevel: "silent"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
		Booking: config.BookingConfig{LockIdleTimeout: time.Hour},
	}
	db, err := NewStore(context.Background(), cfg, log)
	require.NoError(t, err)

	handler, locks := NewHandler(cfg, log, db)
	app := &App{Config: cfg, Log: log, DB: db, DoctorLocks: locks}
	t.Cleanup(app.Close)

	return handler
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}

func book(t *testing.T, h http.Handler, doctorID interface{}, date, at string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"doctorId": doctorID, "date": date, "time": at})
	require.NoError(t, err)
	return do(t, h, http.MethodPost, "/api/appointments/book", string(body))
}

func TestWelcomeAndFavicon(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Welcome to Health Consultancy", rr.Body.String())

	rr = do(t, h, http.MethodGet, "/favicon.ico", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestListDoctors(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/api/doctors", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var doctors []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doctors))
	require.Len(t, doctors, 2)
	assert.Equal(t, map[string]interface{}{
		"id":        float64(1),
		"name":      "Dr. John Doe",
		"specialty": "General Physician",
		"location":  "XYZ Clinic",
	}, doctors[0])
}

func TestGetDoctor(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/api/doctors/2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	doctor := decode(t, rr)
	assert.Equal(t, "Dr. Jane Smith", doctor["name"])
	assert.Equal(t, float64(4), doctor["consultationSlots"])
	schedule, ok := doctor["schedule"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "17:00-19:00", schedule["Monday"])
	assert.Equal(t, "Not Available", schedule["Friday"])

	rr = do(t, h, http.MethodGet, "/api/doctors/99", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Doctor not found", decode(t, rr)["error"])

	rr = do(t, h, http.MethodGet, "/api/doctors/abc", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetDoctor_ReadsAreIdempotent(t *testing.T) {
	h := newTestServer(t)

	first := do(t, h, http.MethodGet, "/api/doctors/1", "")
	second := do(t, h, http.MethodGet, "/api/doctors/1", "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestAvailability(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name   string
		target string
		status int
		want   string
	}{
		{name: "inside hours", target: "/api/doctors/1/availability?date=" + monday + "&time=19:00", status: http.StatusOK, want: "Available"},
		{name: "at opening", target: "/api/doctors/1/availability?date=" + monday + "&time=18:00", status: http.StatusOK, want: "Not Available"},
		{name: "at closing", target: "/api/doctors/1/availability?date=" + monday + "&time=20:00", status: http.StatusOK, want: "Not Available"},
		{name: "sunday doctor 2", target: "/api/doctors/2/availability?date=" + sunday + "&time=18:00", status: http.StatusOK, want: "Not Available"},
		{name: "sunday doctor 2 any time", target: "/api/doctors/2/availability?date=" + sunday + "&time=03:00", status: http.StatusOK, want: "Not Available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tt.target, "")
			require.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.want, decode(t, rr)["availability"])
		})
	}
}

func TestAvailability_Errors(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/api/doctors/1/availability?date="+monday, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Date and time are required", decode(t, rr)["error"])

	rr = do(t, h, http.MethodGet, "/api/doctors/9/availability?date="+monday+"&time=19:00", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/doctors/1/availability?date=soon&time=19:00", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBooking_CapacityScenario(t *testing.T) {
	h := newTestServer(t)

	for i := 0; i < 5; i++ {
		rr := book(t, h, 1, monday, "18:30")
		require.Equal(t, http.StatusOK, rr.Code, "booking %d: %s", i+1, rr.Body.String())
		body := decode(t, rr)
		assert.Equal(t, "Appointment booked successfully", body["message"])
		appointment, ok := body["appointment"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(3+i), appointment["id"], "ids continue after the seeded appointments")
	}

	rr := book(t, h, 1, monday, "18:30")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Doctor has reached maximum appointments for the day", decode(t, rr)["error"])

	rr = do(t, h, http.MethodGet, "/api/doctors/1/appointments?date="+monday, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	assert.Len(t, listed, 5)
}

func TestBooking_Rejections(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{
			name:    "at opening time",
			body:    `{"doctorId": 1, "date": "` + monday + `", "time": "18:00"}`,
			status:  http.StatusBadRequest,
			message: "Doctor is not available at the provided time",
		},
		{
			name:    "sunday",
			body:    `{"doctorId": 1, "date": "` + sunday + `", "time": "18:30"}`,
			status:  http.StatusBadRequest,
			message: "Doctor is not available on Sundays or the provided date",
		},
		{
			name:    "doctor day off",
			body:    `{"doctorId": 2, "date": "2024-04-26", "time": "17:30"}`,
			status:  http.StatusBadRequest,
			message: "Doctor is not available on Sundays or the provided date",
		},
		{
			name:    "missing time",
			body:    `{"doctorId": 1, "date": "` + monday + `"}`,
			status:  http.StatusBadRequest,
			message: "Doctor ID, date, and time are required",
		},
		{
			name:    "blank date",
			body:    `{"doctorId": 1, "date": "   ", "time": "18:30"}`,
			status:  http.StatusBadRequest,
			message: "Doctor ID, date, and time are required",
		},
		{
			name:    "blank time",
			body:    `{"doctorId": 1, "date": "` + monday + `", "time": " "}`,
			status:  http.StatusBadRequest,
			message: "Doctor ID, date, and time are required",
		},
		{
			name:    "missing doctor",
			body:    `{"date": "` + monday + `", "time": "18:30"}`,
			status:  http.StatusBadRequest,
			message: "Doctor ID, date, and time are required",
		},
		{
			name:    "unknown doctor",
			body:    `{"doctorId": 42, "date": "` + monday + `", "time": "18:30"}`,
			status:  http.StatusNotFound,
			message: "Doctor not found",
		},
		{
			name:    "malformed time",
			body:    `{"doctorId": 1, "date": "` + monday + `", "time": "6pm"}`,
			status:  http.StatusBadRequest,
			message: "Invalid date or time format, use YYYY-MM-DD and HH:mm",
		},
		{
			name:    "malformed body",
			body:    `{"doctorId": `,
			status:  http.StatusBadRequest,
			message: "Invalid request body",
		},
		{
			name:    "non-numeric doctor id",
			body:    `{"doctorId": "abc", "date": "` + monday + `", "time": "18:30"}`,
			status:  http.StatusBadRequest,
			message: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/appointments/book", tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.message, decode(t, rr)["error"])
		})
	}

	// None of the rejected requests reached the ledger
	rr := do(t, h, http.MethodGet, "/api/doctors/1/appointments", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	assert.Len(t, listed, 1, "only the seeded appointment remains")
}

func TestBooking_StringDoctorIDAndPatientName(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodPost, "/api/appointments/book",
		`{"doctorId": "2", "date": "`+monday+`", "time": "17:45", "patientName": "Dana Lee"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	appointment, ok := decode(t, rr)["appointment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), appointment["doctorId"])
	assert.Equal(t, "Dana Lee", appointment["patientName"])
	assert.Equal(t, monday, appointment["date"])
	assert.Equal(t, "17:45", appointment["time"])
}

func TestBooking_PatientNameIsNotValidated(t *testing.T) {
	h := newTestServer(t)

	longName := strings.Repeat("a", 1000)
	body, err := json.Marshal(map[string]interface{}{
		"doctorId":    1,
		"date":        monday,
		"time":        "18:30",
		"patientName": longName,
	})
	require.NoError(t, err)

	rr := do(t, h, http.MethodPost, "/api/appointments/book", string(body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	appointment, ok := decode(t, rr)["appointment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, longName, appointment["patientName"])
}

func TestBooking_PaddedDateAndTimeAreAccepted(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodPost, "/api/appointments/book",
		`{"doctorId": 1, "date": " `+monday+` ", "time": " 18:30 "}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	appointment, ok := decode(t, rr)["appointment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, monday, appointment["date"])
	assert.Equal(t, "18:30", appointment["time"])
}

func TestRequestIDAndCORS(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	req.Header.Set("Origin", "https://frontend.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/appointments/book", nil)
	req.Header.Set("Origin", "https://frontend.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
