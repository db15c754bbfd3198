package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
	"github.com/iota-uz/rangepicker/modules/rangepicker/presentation/mappers"
	"github.com/iota-uz/rangepicker/modules/rangepicker/presentation/viewmodels"
	"github.com/iota-uz/rangepicker/pkg/calendar"
)

func newCalendarCmd() *cobra.Command {
	var (
		in       sessionInput
		edge     string
		month    string
		showTime bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the month grid an edge would see",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := domain.Edge(edge)
			if !e.Valid() {
				return withCode(exitUsage, errors.Errorf("invalid --edge %q (expected start|end)", edge))
			}

			s, err := newSession(cmd.Context(), in)
			if err != nil {
				return err
			}
			defer s.finish(cmd.ErrOrStderr())

			p := s.picker
			if err := p.Open(e, showTime); err != nil {
				return withCode(exitValidation, err)
			}
			if month != "" {
				target, err := calendar.ParseMonth(month, s.cfg.Picker.Location())
				if err != nil {
					return withCode(exitUsage, errors.Wrap(err, "invalid --month"))
				}
				if delta := calendar.MonthDiff(target, p.State().DisplayMonth()); delta != 0 {
					p.NavigateMonth(delta)
				}
			}

			vm := mappers.PickerToViewModel(p, s.formatter)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), vm)
			}
			return renderCalendar(cmd.OutOrStdout(), vm)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&edge, "edge", string(domain.EdgeStart), "Edge to preview (start|end)")
	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM); defaults to the edge's selection")
	cmd.Flags().BoolVar(&showTime, "time", false, "Also list the hour slots of the edge's selected day")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view model as JSON")
	return cmd
}

// dayMarker is the single character printed after a day number: S/E for
// the selected edges, x disabled, * partly reserved, ~ inside the range.
func dayMarker(c viewmodels.DayCell) string {
	switch {
	case c.Selected == string(domain.EdgeStart):
		return "S"
	case c.Selected == string(domain.EdgeEnd):
		return "E"
	case c.Disabled:
		return "x"
	case c.HasBlocked:
		return "*"
	case c.InRange:
		return "~"
	default:
		return " "
	}
}

func renderCalendar(w io.Writer, vm *viewmodels.Picker) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", vm.Header.Status)
	fmt.Fprintf(&b, "%s\n\n", vm.Month.Title)

	head := make([]string, 0, len(vm.Month.Weekdays))
	for _, wd := range vm.Month.Weekdays {
		head = append(head, fmt.Sprintf("%3s", wd))
	}
	fmt.Fprintf(&b, "%s\n", strings.TrimRight(strings.Join(head, " "), " "))

	for _, week := range vm.Month.Weeks {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			if c.Placeholder {
				cells = append(cells, "   ")
				continue
			}
			cells = append(cells, fmt.Sprintf("%2s%s", c.Label, dayMarker(c)))
		}
		fmt.Fprintf(&b, "%s\n", strings.TrimRight(strings.Join(cells, " "), " "))
	}

	if len(vm.Hours) > 0 {
		b.WriteString("\n")
		for _, h := range vm.Hours {
			mark := " "
			switch {
			case h.Selected && vm.Edit == string(domain.EdgeEnd):
				mark = "E"
			case h.Selected:
				mark = "S"
			case h.Disabled:
				mark = "x"
			}
			fmt.Fprintf(&b, "%6s%s\n", h.Label, mark)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", vm.Header.Summary)
	if vm.OkDisabled {
		b.WriteString("selection cannot be committed\n")
	}
	_, err := io.WriteString(w, b.String())
	if err != nil {
		return withCode(exitIO, errors.Wrap(err, "write calendar"))
	}
	return nil
}
