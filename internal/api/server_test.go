package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	drill "github.com/o-ludvik/Olivers-pages"
	"github.com/o-ludvik/Olivers-pages/internal/store"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal("open store:", err)
	}
	t.Cleanup(func() { st.Close() })
	srv := httptest.NewServer(New(st, "").Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal("post:", err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatal("decode response:", err)
		}
	}
	return resp.StatusCode
}

func TestEvalEndpoint(t *testing.T) {
	srv := testServer(t)
	var resp struct {
		Value *float64 `json:"value"`
		OK    bool     `json:"ok"`
	}
	if code := post(t, srv.URL+"/eval", `{"expr":"2+3*4"}`, &resp); code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	if !resp.OK || resp.Value == nil || *resp.Value != 14 {
		t.Errorf("want value 14, got %+v", resp)
	}

	resp.Value, resp.OK = nil, false
	post(t, srv.URL+"/eval", `{"expr":"2+"}`, &resp)
	if resp.OK || resp.Value != nil {
		t.Errorf("malformed expression should not produce a value: %+v", resp)
	}
	post(t, srv.URL+"/eval", `{"expr":"1/0"}`, &resp)
	if resp.OK || resp.Value != nil {
		t.Errorf("infinite result should not produce a value: %+v", resp)
	}
}

func TestCheckEndpoint(t *testing.T) {
	srv := testServer(t)
	var resp map[string]bool
	post(t, srv.URL+"/check", `{"equation":"10-3+8=15"}`, &resp)
	if !resp["holds"] {
		t.Error("10-3+8=15 should hold")
	}
	post(t, srv.URL+"/check", `{"equation":"10-3+8=14"}`, &resp)
	if resp["holds"] {
		t.Error("10-3+8=14 should not hold")
	}
}

func TestGradeEndpoint(t *testing.T) {
	srv := testServer(t)
	body := `{"fields":[
		{"id":"a","equation_tags":"1a","placeholder":"7+"},
		{"id":"b","equation_tags":"1b","unknown":true,"text":"8"},
		{"id":"c","equation_tags":"1c","placeholder":"=15"}
	]}`
	var resp struct {
		Statuses map[string]string `json:"statuses"`
		Solved   bool              `json:"solved"`
	}
	if code := post(t, srv.URL+"/grade", body, &resp); code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	if resp.Statuses["b"] != "correct" || !resp.Solved {
		t.Errorf("want b correct and solved, got %+v", resp)
	}
}

func TestSheetLifecycle(t *testing.T) {
	srv := testServer(t)

	var sheet store.Sheet
	body := `{"name":"sums","fields":[
		{"id":"a","equation_tags":"1a","placeholder":"7+"},
		{"id":"b","equation_tags":"1b","unknown":true},
		{"id":"c","equation_tags":"1c","placeholder":"=15"}
	]}`
	if code := post(t, srv.URL+"/sheets", body, &sheet); code != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", code)
	}

	var listed []store.Sheet
	resp, err := http.Get(srv.URL + "/sheets")
	if err != nil {
		t.Fatal("list:", err)
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()
	if len(listed) != 1 || listed[0].ID != sheet.ID {
		t.Fatalf("want one sheet %s, got %v", sheet.ID, listed)
	}

	var graded drill.Result
	if code := post(t, srv.URL+"/sheets/"+sheet.ID+"/grade", `{"answers":{"b":"8"}}`, &graded); code != http.StatusOK {
		t.Fatalf("grade: want 200, got %d", code)
	}
	if !graded.Solved {
		t.Errorf("want solved, got %+v", graded)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/sheets/"+sheet.ID, nil)
	dresp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal("delete:", err)
	}
	dresp.Body.Close()
	if dresp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: want 204, got %d", dresp.StatusCode)
	}

	gresp, err := http.Get(srv.URL + "/sheets/" + sheet.ID)
	if err != nil {
		t.Fatal("get after delete:", err)
	}
	gresp.Body.Close()
	if gresp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: want 404, got %d", gresp.StatusCode)
	}
}
