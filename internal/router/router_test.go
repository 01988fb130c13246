package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kennel-records/internal/platform/ids"
	"kennel-records/internal/router"
	"kennel-records/internal/store"
)

// 2024-12-20: una semana después del parto de Luna
var fixedNow = time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := store.NewInMemory(store.Options{
		IDs: ids.NewSequence(),
		Now: func() time.Time { return fixedNow },
	})
	ts := httptest.NewServer(router.NewRouter(router.Options{Store: st}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_LitterLifecycle(t *testing.T) {
	ts := newServer(t)

	lunaID := createDog(t, ts.URL, map[string]any{
		"name":       "Luna",
		"breed":      "Labrador Retriever",
		"gender":     "female",
		"birth_date": "2020-03-15",
	})

	// 1) Celo con días fértiles
	{
		st, body := doReq(t, ts.URL, "POST", "/heats", map[string]any{
			"dog_id":            lunaID,
			"start_date":        "2024-10-02",
			"calculate_fertile": true,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add heat, got %d body=%s", st, string(body))
		}
		var out struct {
			Fertile struct {
				StartDate string `json:"start_date"`
				EndDate   string `json:"end_date"`
			} `json:"fertile"`
		}
		mustDecode(t, body, &out)
		if out.Fertile.StartDate != "2024-10-11" || out.Fertile.EndDate != "2024-10-16" {
			t.Fatalf("unexpected fertile window: %+v", out.Fertile)
		}
	}

	// 2) Camada planificada: parto esperado a +60 días
	var litterID string
	{
		st, body := doReq(t, ts.URL, "POST", "/litters", map[string]any{
			"dog_id":        lunaID,
			"stud_name":     "Rocky",
			"breeding_date": "2024-10-13",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add litter, got %d body=%s", st, string(body))
		}
		var out struct {
			ID                string `json:"id"`
			Status            string `json:"status"`
			ExpectedBirthDate string `json:"expected_birth_date"`
		}
		mustDecode(t, body, &out)
		if out.Status != "planned" || out.ExpectedBirthDate != "2024-12-12" {
			t.Fatalf("unexpected litter: %+v", out)
		}
		litterID = out.ID
	}

	// 3) Parto
	{
		st, body := doReq(t, ts.URL, "POST", "/litters/"+litterID+"/birth", map[string]any{
			"birth_date":  "2024-12-13",
			"puppy_count": 5,
			"males":       2,
			"females":     3,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 record birth, got %d body=%s", st, string(body))
		}
		var out struct {
			Litter struct {
				Status    string `json:"status"`
				BirthDate string `json:"birth_date"`
			} `json:"litter"`
			Events []struct {
				Date  string `json:"date"`
				Type  string `json:"type"`
				Notes string `json:"notes"`
			} `json:"events"`
		}
		mustDecode(t, body, &out)
		if out.Litter.Status != "born" || out.Litter.BirthDate != "2024-12-13" {
			t.Fatalf("unexpected litter after birth: %+v", out.Litter)
		}
		if len(out.Events) != 13 {
			t.Fatalf("expected 13 scheduled events, got %d", len(out.Events))
		}
		if out.Events[0].Type != "birth" || !strings.Contains(out.Events[0].Notes, "Luna und Rocky") {
			t.Fatalf("unexpected first event: %+v", out.Events[0])
		}
	}

	// 4) Un segundo parto se rechaza
	{
		st, body := doReq(t, ts.URL, "POST", "/litters/"+litterID+"/birth", map[string]any{
			"birth_date": "2024-12-14",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on second birth, got %d body=%s", st, string(body))
		}
	}

	// 5) Eventos vinculados: esperado + 13 del calendario
	{
		st, body := doReq(t, ts.URL, "GET", "/events?litter_id="+litterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list events, got %d body=%s", st, string(body))
		}
		var out []struct {
			Date            string `json:"date"`
			RelatedLitterID string `json:"related_litter_id"`
		}
		mustDecode(t, body, &out)
		if len(out) != 14 {
			t.Fatalf("expected 14 linked events, got %d", len(out))
		}
		for i := 1; i < len(out); i++ {
			if out[i].Date < out[i-1].Date {
				t.Fatalf("events not sorted by date: %s before %s", out[i-1].Date, out[i].Date)
			}
		}
	}

	// 6) Stats: próximos eventos dentro de 30 días
	{
		st, body := doReq(t, ts.URL, "GET", "/stats", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 stats, got %d body=%s", st, string(body))
		}
		var out struct {
			Dogs    int `json:"dogs"`
			Females int `json:"females"`
			Litters struct {
				Born int `json:"born"`
			} `json:"litters"`
			Upcoming []struct {
				Date string `json:"date"`
			} `json:"upcoming"`
		}
		mustDecode(t, body, &out)
		if out.Dogs != 1 || out.Females != 1 || out.Litters.Born != 1 {
			t.Fatalf("unexpected stats: %+v", out)
		}
		// 1ª desparasitación (semana 3) = 2025-01-03
		if len(out.Upcoming) == 0 || out.Upcoming[0].Date != "2025-01-03" {
			t.Fatalf("unexpected upcoming: %+v", out.Upcoming)
		}
	}

	// 7) Borrar camada borra sus eventos
	{
		st, body := doReq(t, ts.URL, "DELETE", "/litters/"+litterID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete litter, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/events?litter_id="+litterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list events, got %d body=%s", st, string(body))
		}
		var out []json.RawMessage
		mustDecode(t, body, &out)
		if len(out) != 0 {
			t.Fatalf("expected no linked events after delete, got %d", len(out))
		}

		st, _ = doReq(t, ts.URL, "GET", "/litters/"+litterID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func TestHTTP_HeatSpacing(t *testing.T) {
	ts := newServer(t)
	bellaID := createDog(t, ts.URL, map[string]any{"name": "Bella", "gender": "female"})

	st, body := doReq(t, ts.URL, "POST", "/heats", map[string]any{"dog_id": bellaID, "start_date": "2024-10-02"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 first heat, got %d body=%s", st, string(body))
	}

	// 105 días después: advertencia
	st, body = doReq(t, ts.URL, "POST", "/heats", map[string]any{"dog_id": bellaID, "start_date": "2025-01-15"})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 spacing, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), "minimum spacing") {
		t.Fatalf("expected spacing detail, got %s", string(body))
	}

	// force lo registra igual
	st, body = doReq(t, ts.URL, "POST", "/heats", map[string]any{"dog_id": bellaID, "start_date": "2025-01-15", "force": true})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 forced heat, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/dogs/"+bellaID+"/heats", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list heats, got %d body=%s", st, string(body))
	}
	var cycles []json.RawMessage
	mustDecode(t, body, &cycles)
	if len(cycles) != 2 {
		t.Fatalf("expected 2 heat cycles, got %d", len(cycles))
	}
}

func TestHTTP_RejectsMaleAndUnknownDam(t *testing.T) {
	ts := newServer(t)
	maxID := createDog(t, ts.URL, map[string]any{"name": "Max", "gender": "male"})

	cases := []struct {
		name string
		path string
		body map[string]any
	}{
		{"heat for male", "/heats", map[string]any{"dog_id": maxID, "start_date": "2024-10-02"}},
		{"litter for male", "/litters", map[string]any{"dog_id": maxID, "breeding_date": "2024-10-13"}},
		{"heat for unknown dog", "/heats", map[string]any{"dog_id": "dog-404", "start_date": "2024-10-02"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "POST", tc.path, tc.body)
			if st != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d body=%s", st, string(body))
			}
		})
	}
}

func TestHTTP_ValidationErrors(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/dogs", map[string]any{"name": "Luna", "gender": "cat"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid gender, got %d body=%s", st, string(body))
	}
	var apiErr struct {
		Detail string            `json:"detail"`
		Fields map[string]string `json:"fields"`
	}
	mustDecode(t, body, &apiErr)
	if _, ok := apiErr.Fields["gender"]; !ok {
		t.Fatalf("expected gender field error, got %+v", apiErr)
	}

	st, body = doReq(t, ts.URL, "POST", "/litters", map[string]any{"dog_id": "dog-1", "breeding_date": "13.10.2024"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid date, got %d body=%s", st, string(body))
	}
}

func TestHTTP_SchedulePreview(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/schedule?birth_date=2024-12-13&dam=Luna", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 schedule, got %d body=%s", st, string(body))
	}
	var out []struct {
		Date  string `json:"date"`
		Title string `json:"title"`
	}
	mustDecode(t, body, &out)
	if len(out) != 13 {
		t.Fatalf("expected 13 milestones, got %d", len(out))
	}
	found := false
	for _, e := range out {
		if e.Title == "Erstimpfung & Chip" {
			found = true
			if e.Date != "2025-02-04" {
				t.Fatalf("expected first vaccination on 2025-02-04, got %s", e.Date)
			}
		}
	}
	if !found {
		t.Fatalf("first vaccination missing from schedule")
	}

	st, _ = doReq(t, ts.URL, "GET", "/schedule", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 without birth_date, got %d", st)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d body=%s", st, string(body))
	}

	// genera al menos una operación contada
	lunaID := createDog(t, ts.URL, map[string]any{"name": "Luna", "gender": "female"})
	if st, body := doReq(t, ts.URL, "POST", "/heats", map[string]any{"dog_id": lunaID, "start_date": "2024-10-02"}); st != http.StatusCreated {
		t.Fatalf("expected 201 add heat, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/metrics", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !strings.Contains(string(body), "kennel_") {
		t.Fatalf("expected kennel metrics in output")
	}

	req, _ := http.NewRequest("GET", ts.URL+"/health", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	_ = res.Body.Close()
	if res.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
}

func createDog(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/dogs", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create dog, got %d body=%s", st, string(body))
	}

	var out struct {
		ID string `json:"id"`
	}
	mustDecode(t, body, &out)
	if out.ID == "" {
		t.Fatalf("expected dog id")
	}
	return out.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(body))
	}
}
