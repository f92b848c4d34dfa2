// Package report turns consolidated leave ranges into the ordered
// display lines posted to chat.
package report

import (
	"github.com/bryan-cox/whosout/internal/model"
)

// Displays attaches a chosen display name to each employee's merged
// ranges. A directory record for the employee, when present, wins over
// the names carried on the feed entries; either way a missing
// preferred name falls back to the legal name.
func Displays(ranges []model.MergedRange, directory []model.Employee) []model.EmployeeDisplay {
	byID := make(map[string]model.Employee, len(directory))
	for _, emp := range directory {
		byID[emp.ID] = emp
	}

	var displays []model.EmployeeDisplay
	index := make(map[string]int)
	for _, r := range ranges {
		key := r.EmployeeID
		if key == "" {
			key = r.Name
		}
		i, seen := index[key]
		if !seen {
			i = len(displays)
			index[key] = i
			displays = append(displays, model.EmployeeDisplay{
				EmployeeID: r.EmployeeID,
				ChosenName: chooseName(r, byID),
			})
		}
		displays[i].Ranges = append(displays[i].Ranges, r)
	}
	return displays
}

func chooseName(r model.MergedRange, directory map[string]model.Employee) string {
	if r.EmployeeID != "" {
		if emp, ok := directory[r.EmployeeID]; ok {
			return emp.DisplayName()
		}
	}
	// The who's-out feed carries names too; use those when the
	// directory has nothing better.
	feed := model.Employee{Name: r.Name, PreferredName: r.PreferredName}
	return feed.DisplayName()
}
