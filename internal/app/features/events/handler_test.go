package events_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"

	eventstore "github.com/manojdintakurti/hokie-event-sphere/internal/app/store/events"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/features/events"
	mailer "github.com/manojdintakurti/hokie-event-sphere/internal/app/system/mailer"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
	"github.com/manojdintakurti/hokie-event-sphere/internal/testutil"
)

type stubEventStore struct {
	created   []models.Event
	event     *models.Event
	appendErr error
	appended  []models.RSVP
	page      eventstore.Page
}

func (s *stubEventStore) Create(_ context.Context, ev models.Event) (models.Event, error) {
	ev.ID = primitive.NewObjectID()
	s.created = append(s.created, ev)
	return ev, nil
}

func (s *stubEventStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	if s.event == nil || s.event.ID != id {
		return nil, eventstore.ErrNotFound
	}
	return s.event, nil
}

func (s *stubEventStore) List(_ context.Context, page, limit int, category string) (eventstore.Page, error) {
	return s.page, nil
}

func (s *stubEventStore) AppendRSVP(_ context.Context, id primitive.ObjectID, r models.RSVP) (models.RSVP, error) {
	if s.appendErr != nil {
		return models.RSVP{}, s.appendErr
	}
	if s.event == nil || s.event.ID != id {
		return models.RSVP{}, eventstore.ErrNotFound
	}
	r.ID = "rsvp-1"
	r.Email = strings.ToLower(r.Email)
	r.CreatedAt = time.Now().UTC()
	s.appended = append(s.appended, r)
	return r, nil
}

type stubMirror struct {
	calls int
	err   error
}

func (s *stubMirror) MirrorRSVP(context.Context, string, primitive.ObjectID, time.Time) error {
	s.calls++
	return s.err
}

type stubUploader struct {
	url      string
	err      error
	filename string
}

func (s *stubUploader) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	s.filename = filename
	_, _ = io.Copy(io.Discard, r)
	return s.url, s.err
}

type stubCategorizer struct{ ids []string }

func (s *stubCategorizer) CategorizeAsync(id string) { s.ids = append(s.ids, id) }

type stubMailer struct {
	sent []mailer.Email
	err  error
}

func (s *stubMailer) Send(_ context.Context, e mailer.Email) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, e)
	return nil
}

type deps struct {
	store      *stubEventStore
	mirror     *stubMirror
	uploader   *stubUploader
	categorize *stubCategorizer
	mail       *stubMailer
}

func newTestHandler() (*events.Handler, *deps) {
	d := &deps{
		store:      &stubEventStore{},
		mirror:     &stubMirror{},
		uploader:   &stubUploader{url: "https://img.example.com/x.png"},
		categorize: &stubCategorizer{},
		mail:       &stubMailer{},
	}
	h := events.NewHandler(d.store, d.mirror, d.uploader, d.categorize, d.mail,
		"Hokie Event Sphere", "https://events.example.com", nil)
	return h, d
}

func multipartBody(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if imageName != "" {
		part, err := w.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		_, _ = part.Write([]byte("fake image"))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func validCreateFields() map[string]string {
	return map[string]string{
		"title":          "VT Hackathon",
		"venue":          "Squires",
		"description":    "24 hours of hacking",
		"startDate":      "2026-04-10",
		"endDate":        "2026-04-11",
		"startTime":      "18:00",
		"endTime":        "12:00",
		"organizerEmail": "organizer@vt.edu",
		"organizerId":    "user_org1",
	}
}

func TestHandleCreate(t *testing.T) {
	h, d := newTestHandler()

	body, contentType := multipartBody(t, validCreateFields(), "poster.png")
	r := httptest.NewRequest("POST", "/api/events", body)
	r.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, r)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if len(d.store.created) != 1 {
		t.Fatalf("created events: got %d, want 1", len(d.store.created))
	}
	created := d.store.created[0]
	if created.ImageURL != "https://img.example.com/x.png" {
		t.Errorf("ImageURL: got %q, want uploaded URL", created.ImageURL)
	}
	if d.uploader.filename != "poster.png" {
		t.Errorf("uploaded filename: got %q", d.uploader.filename)
	}
	if len(d.categorize.ids) != 1 || d.categorize.ids[0] != created.ID.Hex() {
		t.Errorf("categorize calls: got %v, want [%s]", d.categorize.ids, created.ID.Hex())
	}
}

func TestHandleCreate_NoImage(t *testing.T) {
	h, d := newTestHandler()

	body, contentType := multipartBody(t, validCreateFields(), "")
	r := httptest.NewRequest("POST", "/api/events", body)
	r.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, r)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", rec.Code)
	}
	if d.store.created[0].ImageURL != "" {
		t.Errorf("ImageURL: got %q, want empty", d.store.created[0].ImageURL)
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing title", func(f map[string]string) { delete(f, "title") }},
		{"bad organizer email", func(f map[string]string) { f["organizerEmail"] = "not-an-email" }},
		{"negative fee", func(f map[string]string) { f["registrationFee"] = "-5" }},
		{"non-numeric fee", func(f map[string]string) { f["registrationFee"] = "free" }},
		{"bad start date", func(f map[string]string) { f["startDate"] = "next friday" }},
		{"end before start", func(f map[string]string) { f["endDate"] = "2026-04-01" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, d := newTestHandler()
			fields := validCreateFields()
			tc.mutate(fields)

			body, contentType := multipartBody(t, fields, "")
			r := httptest.NewRequest("POST", "/api/events", body)
			r.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			h.HandleCreate(rec, r)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
			if len(d.store.created) != 0 {
				t.Error("no event should be created on validation failure")
			}
		})
	}
}

func TestHandleList(t *testing.T) {
	h, d := newTestHandler()
	d.store.page = eventstore.Page{
		Events:      []models.Event{{Title: "One"}, {Title: "Two"}},
		Total:       12,
		CurrentPage: 2,
		TotalPages:  6,
	}

	r := httptest.NewRequest("GET", "/api/events?page=2&limit=2", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var resp struct {
		Events      []models.Event `json:"events"`
		CurrentPage int            `json:"currentPage"`
		TotalPages  int            `json:"totalPages"`
		TotalEvents int64          `json:"totalEvents"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalEvents != 12 || resp.CurrentPage != 2 || resp.TotalPages != 6 {
		t.Errorf("pagination: got %+v", resp)
	}
	if len(resp.Events) != 2 {
		t.Errorf("events: got %d, want 2", len(resp.Events))
	}
}

func TestHandleGetByID(t *testing.T) {
	h, d := newTestHandler()
	ev := testutil.SampleEvent("Find Me")
	ev.ID = primitive.NewObjectID()
	d.store.event = &ev

	t.Run("found", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/events/getById/"+ev.ID.Hex(), nil)
		r = testutil.WithChiURLParam(r, "id", ev.ID.Hex())
		rec := httptest.NewRecorder()
		h.HandleGetByID(rec, r)
		if rec.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rec.Code)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/events/getById/xyz", nil)
		r = testutil.WithChiURLParam(r, "id", "xyz")
		rec := httptest.NewRecorder()
		h.HandleGetByID(rec, r)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})

	t.Run("absent", func(t *testing.T) {
		other := primitive.NewObjectID().Hex()
		r := httptest.NewRequest("GET", "/api/events/getById/"+other, nil)
		r = testutil.WithChiURLParam(r, "id", other)
		rec := httptest.NewRecorder()
		h.HandleGetByID(rec, r)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})
}

func rsvpReq(t *testing.T, id string, body string) *http.Request {
	t.Helper()
	r := httptest.NewRequest("POST", "/api/events/"+id+"/rsvp", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return testutil.WithChiURLParam(r, "id", id)
}

func TestHandleRSVP(t *testing.T) {
	h, d := newTestHandler()
	ev := testutil.SampleEvent("RSVP Event")
	ev.ID = primitive.NewObjectID()
	d.store.event = &ev

	rec := httptest.NewRecorder()
	h.HandleRSVP(rec, rsvpReq(t, ev.ID.Hex(), `{"name":"Ann","email":"Ann@VT.edu","phone":"540-555-0100"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		RSVP    models.RSVP `json:"rsvp"`
		Message string      `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RSVP.ID == "" {
		t.Error("expected an RSVP id in the response")
	}
	if resp.Message != "RSVP confirmed" {
		t.Errorf("message: got %q", resp.Message)
	}
	if d.mirror.calls != 1 {
		t.Errorf("mirror calls: got %d, want 1", d.mirror.calls)
	}
	if len(d.mail.sent) != 1 {
		t.Fatalf("emails sent: got %d, want 1", len(d.mail.sent))
	}
	if d.mail.sent[0].To != "ann@vt.edu" {
		t.Errorf("email To: got %q", d.mail.sent[0].To)
	}
}

func TestHandleRSVP_Duplicate(t *testing.T) {
	h, d := newTestHandler()
	d.store.appendErr = eventstore.ErrDuplicateRSVP

	rec := httptest.NewRecorder()
	h.HandleRSVP(rec, rsvpReq(t, primitive.NewObjectID().Hex(), `{"name":"Ann","email":"ann@vt.edu"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	var body struct {
		Message   string `json:"message"`
		Duplicate bool   `json:"duplicate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Duplicate {
		t.Error("expected duplicate flag in response")
	}
	if len(d.mail.sent) != 0 {
		t.Error("no email should be sent for a duplicate RSVP")
	}
}

func TestHandleRSVP_EventMissing(t *testing.T) {
	h, _ := newTestHandler()
	rec := httptest.NewRecorder()
	h.HandleRSVP(rec, rsvpReq(t, primitive.NewObjectID().Hex(), `{"name":"Ann","email":"ann@vt.edu"}`))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestHandleRSVP_Validation(t *testing.T) {
	h, _ := newTestHandler()
	for name, body := range map[string]string{
		"empty body":    ``,
		"missing name":  `{"email":"ann@vt.edu"}`,
		"missing email": `{"name":"Ann"}`,
		"bad email":     `{"name":"Ann","email":"nope"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleRSVP(rec, rsvpReq(t, primitive.NewObjectID().Hex(), body))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleRSVP_EmailFailureIsDegradedSuccess(t *testing.T) {
	h, d := newTestHandler()
	ev := testutil.SampleEvent("RSVP Event")
	ev.ID = primitive.NewObjectID()
	d.store.event = &ev
	d.mail.err = io.ErrUnexpectedEOF

	rec := httptest.NewRecorder()
	h.HandleRSVP(rec, rsvpReq(t, ev.ID.Hex(), `{"name":"Ann","email":"ann@vt.edu"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 despite email failure", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Message, "email") {
		t.Errorf("message should mention the email failure, got %q", resp.Message)
	}
	if len(d.store.appended) != 1 {
		t.Error("the RSVP itself must still be recorded")
	}
}

func TestHandleRSVP_MirrorFailureIsDegradedSuccess(t *testing.T) {
	h, d := newTestHandler()
	ev := testutil.SampleEvent("RSVP Event")
	ev.ID = primitive.NewObjectID()
	d.store.event = &ev
	d.mirror.err = io.ErrUnexpectedEOF

	rec := httptest.NewRecorder()
	h.HandleRSVP(rec, rsvpReq(t, ev.ID.Hex(), `{"name":"Ann","email":"ann@vt.edu"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 despite mirror failure", rec.Code)
	}
	// Email still goes out; the mirror is advisory.
	if len(d.mail.sent) != 1 {
		t.Errorf("emails sent: got %d, want 1", len(d.mail.sent))
	}
}
