package slack

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-cox/whosout/internal/calendar"
	"github.com/bryan-cox/whosout/internal/model"
	"github.com/bryan-cox/whosout/internal/report"
)

func leaveItem(name string, start, end calendar.Date) report.Item {
	return report.Item{Name: name, Start: start, End: end, Types: []model.LeaveType{model.TypeVacation}}
}

func TestBuildMessageSections(t *testing.T) {
	rep := report.Report{Items: []report.Item{
		{
			Name:  "New Year's Day",
			Start: calendar.New(2024, time.January, 1),
			End:   calendar.New(2024, time.January, 1),
			Types: []model.LeaveType{model.TypeHoliday},
		},
		leaveItem("Alex", calendar.New(2024, time.January, 5), calendar.New(2024, time.January, 9)),
	}}

	msg := BuildMessage(rep)
	require.Len(t, msg.Blocks, 4)

	assert.Equal(t, "header", msg.Blocks[0]["type"])
	assert.Equal(t, ":calendar: Holidays", msg.Blocks[0]["text"].(Block)["text"])
	assert.Equal(t, "rich_text", msg.Blocks[1]["type"])

	assert.Equal(t, "header", msg.Blocks[2]["type"])
	assert.Equal(t, ":wave: On leave", msg.Blocks[2]["text"].(Block)["text"])
	assert.Equal(t, "rich_text", msg.Blocks[3]["type"])
}

func TestBuildMessageUntilSuffix(t *testing.T) {
	// Leave through Tuesday 9th: back on Wednesday the 10th.
	rep := report.Report{Items: []report.Item{
		leaveItem("Alex", calendar.New(2024, time.January, 5), calendar.New(2024, time.January, 9)),
	}}

	body, err := json.Marshal(BuildMessage(rep))
	require.NoError(t, err)
	assert.Contains(t, string(body), "Alex")
	assert.Contains(t, string(body), "(until Wednesday, 10 January)")
	assert.Contains(t, string(body), `"italic":true`)
	assert.Contains(t, string(body), `"bold":true`)
}

func TestBuildMessageSingleDayHasNoSuffix(t *testing.T) {
	day := calendar.New(2024, time.January, 5)
	rep := report.Report{Items: []report.Item{leaveItem("Alex", day, day)}}

	body, err := json.Marshal(BuildMessage(rep))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "until")
}

func TestBuildMessageNobodyOut(t *testing.T) {
	msg := BuildMessage(report.Report{})
	require.Len(t, msg.Blocks, 1)

	assert.Equal(t, "section", msg.Blocks[0]["type"])
	assert.Equal(t, "*Nobody is on leave today*", msg.Blocks[0]["text"].(Block)["text"])
}

func TestPost(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		received, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	day := calendar.New(2024, time.January, 5)
	msg := BuildMessage(report.Report{Items: []report.Item{leaveItem("Alex", day, day)}})

	require.NoError(t, New(server.URL).Post(msg))
	assert.Contains(t, string(received), `"blocks"`)
	assert.Contains(t, string(received), "Alex")
}

func TestPostErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no_service", http.StatusInternalServerError)
	}))
	defer server.Close()

	err := New(server.URL).Post(BuildMessage(report.Report{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
