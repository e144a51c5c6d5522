package types

import "encoding/json"

// PlanView is the GET /api/plan/:year response document.
// BackgroundImages marshals as null when the row stores none.
type PlanView struct {
	Year             int             `json:"year"`
	Theme            *string         `json:"theme"`
	YearData         json.RawMessage `json:"yearData"`
	MonthData        json.RawMessage `json:"monthData"`
	BackgroundImages json.RawMessage `json:"backgroundImages"`
}

// SavePlanInput is the POST /api/plan/:year body. YearData and
// MonthData are required; theme and backgroundImages ride along
// untouched.
type SavePlanInput struct {
	YearData         json.RawMessage `json:"yearData"`
	MonthData        json.RawMessage `json:"monthData"`
	Theme            *string         `json:"theme"`
	BackgroundImages json.RawMessage `json:"backgroundImages"`
}

// PlanDoc is the shape persisted in the data column.
type PlanDoc struct {
	YearData  json.RawMessage `json:"yearData"`
	MonthData json.RawMessage `json:"monthData"`
}

// BackupRow is one element of a backup file. Data and BgImages accept
// both the pre-serialized string form ExportAll produces and a
// structured object from a hand-edited backup.
type BackupRow struct {
	ID        uint            `json:"id"`
	Year      int             `json:"year"`
	Data      json.RawMessage `json:"data"`
	Theme     *string         `json:"theme"`
	BgImages  json.RawMessage `json:"bg_images"`
	CreatedAt json.RawMessage `json:"created_at"`
}
