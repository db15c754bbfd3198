package viewmodels

import "time"

type DayCell struct {
	Date        time.Time `json:"date"`
	Label       string    `json:"label"`
	Placeholder bool      `json:"placeholder,omitempty"`
	Disabled    bool      `json:"disabled,omitempty"`
	Selected    string    `json:"selected,omitempty"`
	InRange     bool      `json:"in_range,omitempty"`
	HasBlocked  bool      `json:"has_blocked,omitempty"`
	Today       bool      `json:"today,omitempty"`
}

type MonthGrid struct {
	Title    string      `json:"title"`
	Weekdays [7]string   `json:"weekdays"`
	Weeks    [][]DayCell `json:"weeks"`
	CanPrev  bool        `json:"can_prev"`
	CanNext  bool        `json:"can_next"`
}

type HourCell struct {
	Hour     int       `json:"hour"`
	Instant  time.Time `json:"instant"`
	Label    string    `json:"label"`
	Disabled bool      `json:"disabled,omitempty"`
	Selected bool      `json:"selected,omitempty"`
}

type Header struct {
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
	Summary   string `json:"summary"`
}

type Picker struct {
	Edit        string     `json:"edit"`
	DisplayTime bool       `json:"display_time"`
	Open        bool       `json:"open"`
	Header      Header     `json:"header"`
	Month       MonthGrid  `json:"month"`
	Hours       []HourCell `json:"hours,omitempty"`
	OkDisabled  bool       `json:"ok_disabled"`
}
