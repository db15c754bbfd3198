package mappers

import (
	"strconv"

	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
	"github.com/iota-uz/rangepicker/modules/rangepicker/presentation/formatting"
	"github.com/iota-uz/rangepicker/modules/rangepicker/presentation/viewmodels"
	"github.com/iota-uz/rangepicker/modules/rangepicker/services"
	"github.com/iota-uz/rangepicker/pkg/calendar"
)

func locale(opts services.Options) string {
	if opts.Locale == "" {
		return calendar.DefaultLocale
	}
	return opts.Locale
}

// PickerToViewModel snapshots everything the host UI polls after a transition.
func PickerToViewModel(p *services.Picker, f *formatting.Formatter) *viewmodels.Picker {
	s := p.State()
	vm := &viewmodels.Picker{
		Edit:        string(s.Edit),
		DisplayTime: s.DisplayTime,
		Open:        s.Open,
		Header:      Header(p, f),
		Month:       MonthGrid(p),
		OkDisabled:  p.IsEdgeSelectionDisabled(),
	}
	if s.DisplayTime {
		vm.Hours = HourCells(p)
	}
	return vm
}

func Header(p *services.Picker, f *formatting.Formatter) viewmodels.Header {
	s := p.State()
	start, end := s.Start.SelectedDate, s.End.SelectedDate
	return viewmodels.Header{
		Status:    f.StatusLabel(s.Edit, s.DisplayTime),
		StartDate: f.FormatDateForDisplay(start, f.DateCaption(domain.EdgeStart)),
		StartTime: f.FormatTimeForDisplay(start, f.TimeCaption(domain.EdgeStart)),
		EndDate:   f.FormatDateForDisplay(end, f.DateCaption(domain.EdgeEnd)),
		EndTime:   f.FormatTimeForDisplay(end, f.TimeCaption(domain.EdgeEnd)),
		Summary:   f.FormatRangeSummary(s.Selection()),
	}
}

// MonthGrid lays out the displayed month. Placeholder cells carry no date.
func MonthGrid(p *services.Picker) viewmodels.MonthGrid {
	opts := p.Options()
	loc := locale(opts)
	month := p.State().DisplayMonth()
	now := opts.Clock.Now()

	title, _ := opts.Formatter.Format(loc, calendar.FormatOptions{Year: calendar.Numeric, Month: calendar.Long}, month)
	prev, next := p.CanNavigate()
	grid := viewmodels.MonthGrid{
		Title:    title,
		Weekdays: calendar.LocalizedWeekdays(opts.Formatter, loc, opts.FirstDayOfWeek),
		CanPrev:  prev,
		CanNext:  next,
	}

	for _, week := range p.WeekRows() {
		row := make([]viewmodels.DayCell, 0, len(week))
		for _, day := range week {
			if day.IsZero() {
				row = append(row, viewmodels.DayCell{Placeholder: true})
				continue
			}
			cell := viewmodels.DayCell{
				Date:       day,
				Label:      strconv.Itoa(day.Day()),
				Disabled:   p.IsDayDisabled(day),
				InRange:    p.IsDayInRange(day),
				HasBlocked: p.DayHasBlockedTime(day),
				Today:      calendar.IsEqualDate(day, now.In(day.Location())),
			}
			if edge, ok := p.IsDaySelected(day); ok {
				cell.Selected = string(edge)
			}
			row = append(row, cell)
		}
		grid.Weeks = append(grid.Weeks, row)
	}
	return grid
}

func HourCells(p *services.Picker) []viewmodels.HourCell {
	opts := p.Options()
	loc := locale(opts)
	selected := p.State().Active().SelectedDate

	slots := p.HourSlots()
	out := make([]viewmodels.HourCell, 0, len(slots))
	for h, slot := range slots {
		label, _ := opts.Formatter.Format(loc, calendar.FormatOptions{Hour: calendar.Numeric, Hour12: true}, slot)
		out = append(out, viewmodels.HourCell{
			Hour:     h,
			Instant:  slot,
			Label:    label,
			Disabled: p.IsHourDisabled(h),
			Selected: calendar.IsEqualDateTime(slot, selected),
		})
	}
	return out
}
