package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/apis"
)

// routeClient sends requests through the full router built by Register.
type routeClient struct {
	t   *testing.T
	mux http.Handler
}

func newRouteClient(t *testing.T, td *testDesk) *routeClient {
	t.Helper()
	r, err := apis.NewRouter(td.app)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	Register(r.Group("/api/desk"), td.desk)

	mux, err := r.BuildMux()
	if err != nil {
		t.Fatalf("build mux: %v", err)
	}
	return &routeClient{t: t, mux: mux}
}

func (c *routeClient) call(method, path, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, "/api/desk"+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.mux.ServeHTTP(rec, req)
	return rec
}

func TestRegister_Routes(t *testing.T) {
	td := newTestDesk(t)
	c := newRouteClient(t, td)
	creds := map[string]string{"email": "routes@example.com", "password": "long-enough"}

	rec := c.call(http.MethodPost, "/auth/register", "", creds)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var sess struct {
		Token string `json:"token"`
	}
	decodeJSON(t, rec, &sess)
	token := sess.Token

	if rec := c.call(http.MethodPost, "/auth/register", "", creds); rec.Code != http.StatusConflict {
		t.Errorf("duplicate register: expected 409, got %d", rec.Code)
	}
	if rec := c.call(http.MethodPost, "/auth/login", "", creds); rec.Code != http.StatusOK {
		t.Errorf("login: expected 200, got %d", rec.Code)
	}

	for _, path := range []string{"/auth/me", "/options", "/documents", "/customers", "/profile"} {
		if rec := c.call(http.MethodGet, path, "", nil); rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: expected 401, got %d", path, rec.Code)
		}
	}

	rec = c.call(http.MethodPost, "/documents", token, quotationBody("QTN-25-26-001"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created docResponse
	decodeJSON(t, rec, &created)
	id := created.ID

	rec = c.call(http.MethodGet, "/documents/next-number?kind=quotation", token, nil)
	var next map[string]string
	decodeJSON(t, rec, &next)
	if next["documentNumber"] != "QTN-25-26-002" {
		t.Errorf("next-number = %v, want QTN-25-26-002", next)
	}

	rec = c.call(http.MethodGet, "/documents/"+id+"/export/pdf", token, nil)
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Errorf("pdf export: status %d, content type %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	rec = c.call(http.MethodGet, "/documents/"+id+"/view", token, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "QTN-25-26-001") {
		t.Errorf("view: status %d", rec.Code)
	}

	update := quotationBody("QTN-25-26-001")
	update["status"] = "partial"
	if rec := c.call(http.MethodPut, "/documents/"+id, token, update); rec.Code != http.StatusOK {
		t.Errorf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if rec := c.call(http.MethodGet, "/documents/"+id, td.sess.Token, nil); rec.Code != http.StatusNotFound {
		t.Errorf("other owner get: expected 404, got %d", rec.Code)
	}

	if rec := c.call(http.MethodDelete, "/documents/"+id, token, nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rec.Code)
	}
	if rec := c.call(http.MethodGet, "/documents/"+id, token, nil); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestRegister_DeriveRoute(t *testing.T) {
	td := newTestDesk(t)
	c := newRouteClient(t, td)

	enquiry := quotationBody("ENQ-25-26-001")
	enquiry["kind"] = "enquiry"
	rec := c.call(http.MethodPost, "/documents", td.sess.Token, enquiry)
	var src docResponse
	decodeJSON(t, rec, &src)

	rec = c.call(http.MethodPost, "/documents/"+src.ID+"/derive?kind=purchase_order", td.sess.Token, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("derive: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var po docResponse
	decodeJSON(t, rec, &po)
	if po.Kind != "purchase_order" || po.Number != "PO-25-26-001" || len(po.Items) != 1 {
		t.Errorf("derived = %+v", po)
	}
}
