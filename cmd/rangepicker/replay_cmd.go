package main

import (
	"bytes"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
	"github.com/iota-uz/rangepicker/modules/rangepicker/presentation/mappers"
	"github.com/iota-uz/rangepicker/modules/rangepicker/presentation/viewmodels"
	"github.com/iota-uz/rangepicker/modules/rangepicker/services"
	"github.com/iota-uz/rangepicker/pkg/blockedrange"
	"github.com/iota-uz/rangepicker/pkg/calendar"
)

type scriptRange struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type replayStep struct {
	Event string `yaml:"event"`
	Edge  string `yaml:"edge"`
	Time  bool   `yaml:"time"`
	Day   string `yaml:"day"`
	Hour  *int   `yaml:"hour"`
	Delta int    `yaml:"delta"`
	Unit  string `yaml:"unit"`
	N     int    `yaml:"n"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type replayScript struct {
	Now         string        `yaml:"now"`
	Locale      string        `yaml:"locale"`
	Start       string        `yaml:"start"`
	End         string        `yaml:"end"`
	AutoAdvance *bool         `yaml:"auto_advance"`
	Blocked     []scriptRange `yaml:"blocked"`
	Steps       []replayStep  `yaml:"steps"`
}

type replayStepOutput struct {
	Step      int                `json:"step"`
	Event     string             `json:"event"`
	Error     string             `json:"error,omitempty"`
	Selection *domain.Selection  `json:"selection,omitempty"`
	Events    []string           `json:"events,omitempty"`
	State     domain.State       `json:"state"`
	View      *viewmodels.Picker `json:"view"`
}

func readScript(path string) (*replayScript, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, withCode(exitUsage, errors.Wrapf(err, "read %s", path))
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var script replayScript
	if err := dec.Decode(&script); err != nil {
		return nil, withCode(exitValidation, errors.Wrapf(err, "decode %s", path))
	}
	return &script, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func newReplayCmd() *cobra.Command {
	var (
		in         sessionInput
		scriptPath string
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Run a scripted event sequence and print the state after each step",
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readScript(scriptPath)
			if err != nil {
				return err
			}

			// Flags win over the script header.
			in.now = firstNonEmpty(in.now, script.Now)
			in.start = firstNonEmpty(in.start, script.Start)
			in.end = firstNonEmpty(in.end, script.End)
			in.locale = firstNonEmpty(in.locale, script.Locale)
			in.autoAdvance = script.AutoAdvance

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for i, r := range script.Blocked {
				rng, err := parseScriptRange(r, cfg.Picker.Location())
				if err != nil {
					return withCode(exitValidation, errors.Wrapf(err, "blocked[%d]", i))
				}
				in.extraRanges = append(in.extraRanges, rng)
			}

			s, err := newSession(cmd.Context(), in)
			if err != nil {
				return err
			}
			defer s.finish(cmd.ErrOrStderr())

			var (
				events    []string
				committed *domain.Selection
			)
			s.bus.Subscribe(func(e *domain.EndClearedEvent) { events = append(events, "end_cleared") })
			s.bus.Subscribe(func(e *domain.CommittedEvent) {
				events = append(events, "committed")
				committed = &e.Selection
			})
			s.bus.Subscribe(func(e *domain.DismissedEvent) { events = append(events, "dismissed") })

			failed := 0
			for i, step := range script.Steps {
				out := replayStepOutput{Step: i + 1, Event: step.Event}
				sel, err := runStep(s, step)
				if err != nil {
					if errors.Is(err, errUnknownEvent) {
						return withCode(exitUsage, errors.Wrapf(err, "step %d", i+1))
					}
					failed++
					out.Error = err.Error()
				}
				out.Selection = sel
				if out.Selection == nil && committed != nil {
					out.Selection = committed
				}
				out.Events = events
				events, committed = nil, nil
				out.State = s.picker.State()
				out.View = mappers.PickerToViewModel(s.picker, s.formatter)
				if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			}
			if strict && failed > 0 {
				return withCode(exitValidation, errors.Errorf("%d of %d steps failed", failed, len(script.Steps)))
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&scriptPath, "script", "", "Replay script (YAML, required)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any step returns an error")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func parseScriptRange(r scriptRange, loc *time.Location) (blockedrange.Range, error) {
	start, err := calendar.ParseInstant(r.Start, loc)
	if err != nil {
		return blockedrange.Range{}, errors.Wrapf(domain.ErrInvalidInstant, "start: %v", err)
	}
	end, err := calendar.ParseInstant(r.End, loc)
	if err != nil {
		return blockedrange.Range{}, errors.Wrapf(domain.ErrInvalidInstant, "end: %v", err)
	}
	if end.Before(start) {
		return blockedrange.Range{}, domain.ErrInvertedRange
	}
	return blockedrange.Range{Start: start, End: end}, nil
}

var errUnknownEvent = errors.New("unknown event")

// runStep applies one scripted event. Commit and dismiss return the pair the
// host would receive.
func runStep(s *session, step replayStep) (*domain.Selection, error) {
	p := s.picker
	loc := s.cfg.Picker.Location()

	switch step.Event {
	case "open":
		edge := domain.Edge(firstNonEmpty(step.Edge, string(domain.EdgeStart)))
		return nil, p.Open(edge, step.Time)
	case "select_day":
		day, err := calendar.ParseInstant(step.Day, loc)
		if err != nil {
			return nil, errors.Wrapf(domain.ErrInvalidInstant, "day: %v", err)
		}
		return nil, p.SelectDay(day)
	case "select_hour":
		if step.Hour == nil {
			return nil, errors.Wrap(domain.ErrInvalidHour, "hour is required")
		}
		return nil, p.SelectHour(*step.Hour)
	case "navigate":
		p.NavigateMonth(step.Delta)
		return nil, nil
	case "switch":
		return nil, p.SwitchEditEdge(domain.Edge(step.Edge))
	case "key":
		unit, err := services.ParseUnit(step.Unit)
		if err != nil {
			return nil, err
		}
		return nil, p.ApplyKeyboardDelta(unit, step.N)
	case "commit":
		sel, err := p.Commit()
		if err != nil {
			return nil, err
		}
		return &sel, nil
	case "dismiss":
		sel := p.Dismiss()
		if sel.Start.IsZero() && sel.End.IsZero() {
			return nil, nil
		}
		return &sel, nil
	case "reset":
		start, err := parseOptionalInstant("start", step.Start, loc)
		if err != nil {
			return nil, err
		}
		end, err := parseOptionalInstant("end", step.End, loc)
		if err != nil {
			return nil, err
		}
		return nil, p.Reset(start, end)
	default:
		return nil, errors.Wrapf(errUnknownEvent, "%q (expected open|select_day|select_hour|navigate|switch|key|commit|dismiss|reset)", step.Event)
	}
}
