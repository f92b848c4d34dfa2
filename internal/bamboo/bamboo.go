// Package bamboo provides the BambooHR integration for fetching leave
// and employee directory information.
package bamboo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bryan-cox/whosout/internal/calendar"
	"github.com/bryan-cox/whosout/internal/model"
)

// DefaultBaseURL is the BambooHR API gateway.
const DefaultBaseURL = "https://api.bamboohr.com/api/gateway.php"

// Client talks to the BambooHR API for one company domain. The API key
// goes in as the basic-auth username with a literal "x" password,
// which is the scheme BambooHR documents for API keys.
type Client struct {
	Domain     string
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the given company domain.
func NewClient(domain, apiKey string) *Client {
	return &Client{
		Domain:     domain,
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// whosOutItem is one row of the who's-out feed. Holiday rows carry no
// employee id and put the holiday's name in the name field.
type whosOutItem struct {
	ID         int           `json:"id"`
	Type       string        `json:"type"`
	EmployeeID int           `json:"employeeId"`
	Name       string        `json:"name"`
	Start      calendar.Date `json:"start"`
	End        calendar.Date `json:"end"`
}

// directoryResponse mirrors the employee directory payload.
type directoryResponse struct {
	Employees []directoryEmployee `json:"employees"`
}

type directoryEmployee struct {
	ID            string `json:"id"`
	DisplayName   string `json:"displayName"`
	PreferredName string `json:"preferredName"`
}

// WhosOut fetches the approved leave and company holidays overlapping
// the inclusive range [start, end].
func (c *Client) WhosOut(start, end calendar.Date) ([]model.Entry, error) {
	url := fmt.Sprintf("%s/%s/v1/time_off/whos_out/", c.BaseURL, c.Domain)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	q := req.URL.Query()
	q.Set("start", start.String())
	q.Set("end", end.String())
	req.URL.RawQuery = q.Encode()

	var items []whosOutItem
	if err := c.do(req, &items); err != nil {
		return nil, fmt.Errorf("failed to fetch who's out feed: %w", err)
	}

	entries := make([]model.Entry, 0, len(items))
	for _, item := range items {
		entry := model.Entry{
			Name:  item.Name,
			Type:  model.ParseLeaveType(item.Type),
			Start: item.Start,
			End:   item.End,
		}
		if item.EmployeeID != 0 {
			entry.EmployeeID = strconv.Itoa(item.EmployeeID)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Directory fetches the employee directory for preferred-name lookups.
func (c *Client) Directory() ([]model.Employee, error) {
	url := fmt.Sprintf("%s/%s/v1/employees/directory", c.BaseURL, c.Domain)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var dir directoryResponse
	if err := c.do(req, &dir); err != nil {
		return nil, fmt.Errorf("failed to fetch employee directory: %w", err)
	}

	employees := make([]model.Employee, 0, len(dir.Employees))
	for _, emp := range dir.Employees {
		employees = append(employees, model.Employee{
			ID:            emp.ID,
			Name:          emp.DisplayName,
			PreferredName: emp.PreferredName,
		})
	}
	return employees, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.SetBasicAuth(c.APIKey, "x")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("BambooHR API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
