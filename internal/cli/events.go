package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/corkboard/internal/calendar"
)

func addEvents(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event", "cal"},
		Short:   "Annotate calendar days",
	}

	addEventsList(cmd, o)
	addEventsMonth(cmd, o)
	addEventsShow(cmd, o)
	addEventsSet(cmd, o)
	addEventsRemove(cmd, o)

	topLevel.AddCommand(cmd)
}

func recurrenceLabel(m calendar.Match) string {
	switch {
	case m.Recurring:
		return string(m.Event.Recurring)
	case m.MultiDay && m.SpanStart:
		return "span start"
	case m.MultiDay:
		return "span"
	}
	return ""
}

func addEventsList(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored events",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			list := s.ws.Events.List()
			if len(list) == 0 {
				printNone(w)
				return nil
			}
			tbl := newTable("ID", "DATE", "END", "REPEATS", "COLOR", "DESCRIPTION")
			for _, e := range list {
				tbl.AddRow(yellowI(e.ID), e.Date, e.EndDate, e.Recurring, e.Color, e.Description)
			}
			printTable(w, tbl)
			return nil
		},
	})
}

func addEventsMonth(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show which event each day of a month resolves to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := time.Now()
			if len(args) == 1 {
				var err error
				if ref, err = time.Parse("2006-01", args[0]); err != nil {
					return fmt.Errorf("invalid month %q, want YYYY-MM", args[0])
				}
			}
			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			printTitle(w, ref.Format("January 2006"))
			tbl := newTable("DAY", "", "DESCRIPTION", "KIND")
			found := false
			for _, c := range s.ws.Events.Month(ref.Year(), ref.Month()) {
				if !c.Has {
					continue
				}
				found = true
				tbl.AddRow(calendar.Key(c.Day), c.Day.Format("Mon"), c.Match.Description, recurrenceLabel(c.Match))
			}
			if !found {
				printNone(w)
				return nil
			}
			printTable(w, tbl)
			return nil
		},
	})
}

func addEventsShow(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:   "show YYYY-MM-DD",
		Short: "Resolve the event shown on a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := calendar.ParseDay(args[0])
			if err != nil {
				return err
			}
			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			m, ok := s.ws.Events.Resolve(day)
			if !ok {
				printNone(w)
				return nil
			}
			tbl := newTable()
			tbl.AddRow(bold("Event"), yellowI(m.ID))
			tbl.AddRow(bold("Date"), m.Date)
			if m.EndDate != "" {
				tbl.AddRow(bold("Until"), m.EndDate)
			}
			if kind := recurrenceLabel(m); kind != "" {
				tbl.AddRow(bold("Kind"), kind)
			}
			tbl.AddRow(bold("Color"), m.Color)
			tbl.AddRow(bold("Description"), m.Description)
			printTable(w, tbl)
			return nil
		},
	})
}

type setOptions struct {
	end, recur, color string
}

func addEventsSet(parent *cobra.Command, o *rootOptions) {
	so := &setOptions{}
	cmd := &cobra.Command{
		Use:   "set YYYY-MM-DD DESCRIPTION...",
		Short: "Save the annotation of a day",
		Long: `Save the annotation of a day, as the day editor does.

An existing non-repeating event on exactly that date is updated. Any other
day, including one covered by a span or a repeating event, gets a new event.`,
		Example: `
corkboard events set 2024-06-09 Beach trip --end 2024-06-12
corkboard events set 2024-06-03 Gym --recur weekly --color '#388e3c'
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := calendar.ParseDay(args[0])
			if err != nil {
				return err
			}
			d := calendar.Details{
				EndDate:     so.end,
				Recurring:   calendar.Recurrence(so.recur),
				Color:       so.color,
				Description: strings.Join(args[1:], " "),
			}
			if d.EndDate != "" {
				if _, err := calendar.ParseDay(d.EndDate); err != nil {
					return err
				}
			}
			if d.Recurring != "" && !d.Recurring.Valid() {
				return fmt.Errorf("unknown recurrence %q (want none, weekly or monthly)", so.recur)
			}

			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			e, ok := s.ws.Events.SaveDay(day, d)
			if !ok {
				return fmt.Errorf("could not save %s", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved event %d on %s\n", e.ID, e.Date)
			return nil
		},
	}
	cmd.Flags().StringVar(&so.end, "end", "", "Last day of a multi-day span")
	cmd.Flags().StringVar(&so.recur, "recur", "none", "Repeat rule: none, weekly or monthly")
	cmd.Flags().StringVar(&so.color, "color", calendar.DefaultColor, "Event color")
	parent.AddCommand(cmd)
}

func addEventsRemove(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.ws.Events.Remove(id) {
				return fmt.Errorf("event %d not found", id)
			}
			return nil
		},
	})
}
