package captable

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// The response shape is the HR service's own: extra fields must be
// ignored, only names and allocation values are extracted.
const employeesBody = `{
	"company": "acme",
	"employees": [
		{"name": "Lin", "role": "engineer", "esopAllocationValue": 60000},
		{"name": "Sam", "role": "designer", "esopAllocationValue": 40000.5}
	]
}`

func TestHTTPEmployeeDirectory_ListEmployees(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/companies/acme/employees" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, employeesBody)
	}))
	defer srv.Close()

	dir := &HTTPEmployeeDirectory{BaseURL: srv.URL, Currency: "USD"}
	employees, err := dir.ListEmployees(context.Background(), "acme")
	if err != nil {
		t.Fatal(err)
	}

	if len(employees) != 2 {
		t.Fatalf("got %d employees, want 2", len(employees))
	}
	if employees[0].Name != "Lin" || !employees[0].EsopAllocation.Equal(M(60_000, "USD")) {
		t.Errorf("first employee = %+v", employees[0])
	}
	if employees[1].Name != "Sam" || !employees[1].EsopAllocation.Equal(M(40_000.5, "USD")) {
		t.Errorf("second employee = %+v", employees[1])
	}

	total := SumAllocations(employees, "USD")
	if !total.Equal(M(100_000.5, "USD")) {
		t.Errorf("summed allocations = %s, want 100000.5", total)
	}
}

func TestHTTPEmployeeDirectory_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := &HTTPEmployeeDirectory{BaseURL: srv.URL, Currency: "USD"}
	if _, err := dir.ListEmployees(context.Background(), "acme"); err == nil {
		t.Error("server error not reported")
	}
}

func TestHTTPEmployeeDirectory_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"employees": [{"name": "Lin"}]}`)
	}))
	defer srv.Close()

	dir := &HTTPEmployeeDirectory{BaseURL: srv.URL, Currency: "USD"}
	if _, err := dir.ListEmployees(context.Background(), "acme"); err == nil {
		t.Error("missing allocation values not reported")
	}
}

func TestSumAllocations_Empty(t *testing.T) {
	if got := SumAllocations(nil, "USD"); !got.IsZero() {
		t.Errorf("empty sum = %s, want 0", got)
	}
}
