package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stockdesk/services"
	"stockdesk/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// testDesk is a Desk backed by a fresh test app with one logged-in user.
type testDesk struct {
	app  *pocketbase.PocketBase
	desk *Desk
	sess *services.Session
}

func newTestDesk(t *testing.T) *testDesk {
	t.Helper()
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUser(t, app, "desk@example.com")

	desk := NewDesk(app, services.NewRecordStore(app), services.DefaultRules(), services.DefaultProfile)
	desk.Now = func() time.Time { return time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC) }

	return &testDesk{app: app, desk: desk, sess: login(t, desk, "desk@example.com")}
}

func login(t *testing.T, desk *Desk, email string) *services.Session {
	t.Helper()
	sess, err := desk.Identity.Login(services.Credentials{Email: email, Password: testhelpers.TestPassword})
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return sess
}

// do runs handler for an authenticated request and returns the recorder.
// body is JSON-encoded unless it is nil or an io.Reader.
func (td *testDesk) do(t *testing.T, handler func(*core.RequestEvent) error, method, target string, body any, pathValues ...string) *httptest.ResponseRecorder {
	t.Helper()
	return td.doAs(t, td.sess, handler, method, target, body, pathValues...)
}

func (td *testDesk) doAs(t *testing.T, sess *services.Session, handler func(*core.RequestEvent) error, method, target string, body any, pathValues ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if _, ok := body.(io.Reader); !ok && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	if sess != nil {
		req = withSession(req, sess)
	}

	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(td.app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, rec.Body.String())
	}
}

// quotationBody is a create request for a quotation worth 3324.06 with tax.
func quotationBody(number string) map[string]any {
	return map[string]any{
		"kind":           "quotation",
		"documentNumber": number,
		"date":           "2025-06-02",
		"customer":       map[string]string{"name": "Acme", "address": "Pune"},
		"seller":         map[string]string{"name": "Fervid Traders", "address": "Bengaluru"},
		"items": []map[string]any{
			{"description": "Bearing", "quantity": 10, "unitPrice": "313", "discountPercent": 10, "unitOfMeasure": "nes"},
		},
	}
}

// createDocument posts body and returns the new document's id.
func (td *testDesk) createDocument(t *testing.T, body map[string]any) string {
	t.Helper()
	rec := td.do(t, HandleDocumentSave(td.desk), http.MethodPost, "/documents", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create document: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	decodeJSON(t, rec, &resp)
	return resp.ID
}
