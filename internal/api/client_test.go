package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, 5*time.Second, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestGetSkipsEmptyQueryParams(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	query := url.Values{}
	query.Set("limit", "500")
	query.Set("cursor", "")
	if _, err := client.Get(context.Background(), "/api/admin-logs", query); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotQuery.Get("limit") != "500" {
		t.Fatalf("limit param missing: %v", gotQuery)
	}
	if _, present := gotQuery["cursor"]; present {
		t.Fatalf("empty param should be dropped: %v", gotQuery)
	}
}

func TestErrorMessagePreference(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"Email already exists","error":"other"}`, "Email already exists"},
		{"error field", `{"error":"Department has employees assigned"}`, "Department has employees assigned"},
		{"detail string", `{"detail":"not found"}`, "not found"},
		{"detail list", `{"detail":[{"msg":"email invalid"},{"msg":"name required"}]}`, "email invalid, name required"},
		{"detail list of strings", `{"detail":["too short","too plain"]}`, "too short, too plain"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(tc.body))
			})

			_, err := client.Post(context.Background(), "/api/employees", map[string]string{})
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *api.Error, got %v", err)
			}
			if apiErr.Status != http.StatusConflict {
				t.Fatalf("unexpected status: %d", apiErr.Status)
			}
			if apiErr.Message != tc.want {
				t.Fatalf("got message %q, want %q", apiErr.Message, tc.want)
			}
		})
	}
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.Get(context.Background(), "/api/employees", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "Bad Gateway") {
		t.Fatalf("expected status text fallback, got %q", apiErr.Message)
	}
	if StatusOf(err) != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", StatusOf(err))
	}
}

func TestNonJSONSuccessReturnsRawBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("pong"))
	})

	body, err := client.Get(context.Background(), "/api/health", nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(body) != "pong" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestPostMultipartSetsBoundaryAndField(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "roster.csv" {
			t.Errorf("unexpected filename: %s", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created":2,"failed":0}`))
	})

	body, err := client.PostMultipart(context.Background(), "/api/employees/bulk/csv", "file", "roster.csv", strings.NewReader("employee_id,full_name\n"))
	if err != nil {
		t.Fatalf("post multipart: %v", err)
	}
	if !strings.Contains(string(body), `"created":2`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestTransportFailureIsNotAPIError(t *testing.T) {
	client, err := New("http://127.0.0.1:1", time.Second, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Get(context.Background(), "/api/employees", nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if StatusOf(err) != 0 {
		t.Fatalf("transport failure should carry no HTTP status, got %d", StatusOf(err))
	}
}
