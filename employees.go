package captable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// Employee is the read-only projection of the employee subsystem this
// core consumes: a name and the monetary value of the employee's ESOP
// allocation. Allocation policy (vesting, blocking new hires on
// over-allocation) lives in that subsystem, not here.
type Employee struct {
	Name           string `json:"name"`
	EsopAllocation Money  `json:"esopAllocationValue"`
}

// EmployeeDirectory lists a company's employees and their ESOP
// allocations. Consumed read-only, only to compute the allocated value
// of the pool.
type EmployeeDirectory interface {
	ListEmployees(ctx context.Context, companyID string) ([]Employee, error)
}

// SumAllocations adds up the employee allocation values in the given
// currency.
func SumAllocations(employees []Employee, currency string) Money {
	total := M(0, currency)
	for _, e := range employees {
		total = total.Add(e.EsopAllocation)
	}
	return total
}

// HTTPEmployeeDirectory reads employees from the HR service's JSON API.
type HTTPEmployeeDirectory struct {
	BaseURL  string
	Currency string
	Client   *http.Client
}

var _ EmployeeDirectory = (*HTTPEmployeeDirectory)(nil)

// ListEmployees fetches /companies/{id}/employees and extracts the
// fields this core needs. The response shape is the HR service's own;
// extraction by path keeps this client indifferent to the rest of it.
func (d *HTTPEmployeeDirectory) ListEmployees(ctx context.Context, companyID string) ([]Employee, error) {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	addr := fmt.Sprintf("%s/companies/%s/employees", d.BaseURL, url.PathEscape(companyID))

	var jobj any
	if err := jwget(ctx, client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error listing employees for %q: %w", companyID, err)
	}

	names, err := jsonpath.Get("$.employees[*].name", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing employees for %q: %w", companyID, err)
	}
	allocations, err := jsonpath.Get("$.employees[*].esopAllocationValue", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing employee allocations for %q: %w", companyID, err)
	}

	jnames, ok := names.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing employees for %q: names are not a list", companyID)
	}
	jallocs, ok := allocations.([]any)
	if !ok || len(jallocs) != len(jnames) {
		return nil, fmt.Errorf("error parsing employees for %q: allocation list mismatch", companyID)
	}

	employees := make([]Employee, 0, len(jnames))
	for i, jname := range jnames {
		name, ok := jname.(string)
		if !ok {
			return nil, fmt.Errorf("error parsing employees for %q: name %v is not a string", companyID, jname)
		}
		value, ok := jallocs[i].(float64)
		if !ok {
			return nil, fmt.Errorf("error parsing employees for %q: allocation %v is not a number", companyID, jallocs[i])
		}
		employees = append(employees, Employee{Name: name, EsopAllocation: M(value, d.Currency)})
	}
	return employees, nil
}

// jwget fetches a JSON document into v.
func jwget(ctx context.Context, client *http.Client, addr string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: %s", addr, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
