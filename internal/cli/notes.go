package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/corkboard/internal/notes"
)

func addNotes(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note", "board"},
		Short:   "Inspect and edit the notes on the board",
	}

	addNotesList(cmd, o)
	addNotesShow(cmd, o)
	addNotesAdd(cmd, o)
	addNotesRemove(cmd, o)
	addNotesTitle(cmd, o)
	addNotesColor(cmd, o)
	addNotesMove(cmd, o)
	addItem(cmd, o)
	addHabit(cmd, o)
	addTask(cmd, o)

	topLevel.AddCommand(cmd)
}

// withNote opens a session, looks up the note named by args[0] and hands
// both to fn.
func withNote(cmd *cobra.Command, o *rootOptions, args []string, fn func(s *session, n notes.Note) error) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := o.open(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	n, ok := s.ws.Notes.Get(id)
	if !ok {
		return fmt.Errorf("note %d not found", id)
	}
	return fn(s, n)
}

func requireVariant(n notes.Note, v notes.Variant) error {
	if n.Type != v {
		return fmt.Errorf("note %d is a %s note, not %s", n.ID, n.Type.Label(), v.Label())
	}
	return nil
}

func addNotesList(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes in board order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			list := s.ws.Notes.List()
			if len(list) == 0 {
				printNone(w)
				return nil
			}
			tbl := newTable("ID", "TYPE", "TITLE", "COLOR", "ENTRIES")
			for _, n := range list {
				tbl.AddRow(yellowI(n.ID), n.Type.Label(), n.Title, n.Color, n.Len())
			}
			printTable(w, tbl)
			return nil
		},
	})
}

func addNotesShow(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: "Show a note with its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNote(cmd, o, args, func(_ *session, n notes.Note) error {
				printNote(cmd.OutOrStdout(), n)
				return nil
			})
		},
	})
}

func printNote(w io.Writer, n notes.Note) {
	heading := n.Title
	if heading == "" {
		heading = "(untitled)"
	}
	printTitle(w, fmt.Sprintf("%s  %s", heading, faint(n.Type.Label()+" "+n.Color)))

	if n.Len() == 0 {
		printNone(w)
		return
	}
	switch n.Type {
	case notes.VariantChecklist:
		tbl := newTable("ID", "", "TEXT")
		for _, it := range n.Items {
			box := "[ ]"
			if it.Checked {
				box = green("[x]")
			}
			tbl.AddRow(yellowI(it.ID), box, it.Text)
		}
		printTable(w, tbl)
	case notes.VariantHabit:
		header := []any{"ID", "HABIT"}
		for _, d := range notes.Weekdays {
			header = append(header, d)
		}
		tbl := newTable(header...)
		for _, h := range n.Habits {
			row := []any{yellowI(h.ID), h.Text}
			for _, st := range h.Days {
				row = append(row, st.Symbol())
			}
			tbl.AddRow(row...)
		}
		printTable(w, tbl)
	case notes.VariantLongTerm:
		tbl := newTable("ID", "TASK", "DESCRIPTION")
		for _, t := range n.Tasks {
			tbl.AddRow(yellowI(t.ID), t.Text, t.Description)
		}
		printTable(w, tbl)
	}
}

func addNotesAdd(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:   "add TYPE [TITLE...]",
		Short: "Add a note: checklist, habit or longterm",
		Example: `
corkboard notes add checklist Groceries
corkboard notes add longterm Life Goals
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := notes.Variant(args[0])
			if !v.Valid() {
				return fmt.Errorf("unknown note type %q (want checklist, habit or longterm)", args[0])
			}
			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			n, _ := s.ws.Notes.Add(notes.Draft{Type: v, Title: strings.Join(args[1:], " ")})
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s note %d\n", n.Type.Label(), n.ID)
			return nil
		},
	})
}

func addNotesRemove(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNote(cmd, o, args, func(s *session, n notes.Note) error {
				s.ws.Notes.Remove(n.ID)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed note %d\n", n.ID)
				return nil
			})
		},
	})
}

func addNotesTitle(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:   "title ID TITLE...",
		Short: "Rename a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNote(cmd, o, args, func(s *session, n notes.Note) error {
				s.ws.Notes.Update(n.ID, notes.SetTitle(strings.Join(args[1:], " ")))
				return nil
			})
		},
	})
}

func addNotesColor(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:   "color ID COLOR",
		Short: "Repaint a note",
		Long:  "Repaint a note. Palette colors:\n  " + strings.Join(notes.Palette, " "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNote(cmd, o, args, func(s *session, n notes.Note) error {
				s.ws.Notes.Update(n.ID, notes.SetColor(args[1]))
				return nil
			})
		},
	})
}

func addNotesMove(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:   "move ID TARGET_ID",
		Short: "Move a note to the position of another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseID(args[1])
			if err != nil {
				return err
			}
			return withNote(cmd, o, args, func(s *session, n notes.Note) error {
				if _, ok := s.ws.Notes.Get(target); !ok {
					return fmt.Errorf("note %d not found", target)
				}
				s.ws.Reorder.Reorder(n.ID, target)
				return nil
			})
		},
	})
}

// entryCommand is the shape shared by the item, habit and task subtrees.
type entryCommand struct {
	use, short string
	variant    notes.Variant
}

func (e entryCommand) parent() *cobra.Command {
	return &cobra.Command{Use: e.use, Short: e.short}
}

// withEntry resolves args[0] as a note of the right variant and args[1] as
// the id of one of its entries.
func (e entryCommand) withEntry(cmd *cobra.Command, o *rootOptions, args []string, fn func(s *session, n notes.Note, entryID int64) error) error {
	entryID, err := parseID(args[1])
	if err != nil {
		return err
	}
	return withNote(cmd, o, args, func(s *session, n notes.Note) error {
		if err := requireVariant(n, e.variant); err != nil {
			return err
		}
		if !hasEntry(n, entryID) {
			return fmt.Errorf("%s %d not found in note %d", e.use, entryID, n.ID)
		}
		return fn(s, n, entryID)
	})
}

func hasEntry(n notes.Note, id int64) bool {
	for _, it := range n.Items {
		if it.ID == id {
			return true
		}
	}
	for _, h := range n.Habits {
		if h.ID == id {
			return true
		}
	}
	for _, t := range n.Tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

func addItem(topLevel *cobra.Command, o *rootOptions) {
	e := entryCommand{use: "item", short: "Edit checklist items", variant: notes.VariantChecklist}
	cmd := e.parent()

	cmd.AddCommand(&cobra.Command{
		Use:   "add NOTE_ID TEXT...",
		Short: "Append an item",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNote(cmd, o, args, func(s *session, n notes.Note) error {
				if err := requireVariant(n, e.variant); err != nil {
					return err
				}
				s.ws.Notes.Update(n.ID, notes.AddItem(n, s.ws.Notes.NextID(), strings.Join(args[1:], " ")))
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "toggle NOTE_ID ITEM_ID",
		Short: "Check or uncheck an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withEntry(cmd, o, args, func(s *session, n notes.Note, id int64) error {
				s.ws.Notes.Update(n.ID, notes.ToggleItem(n, id))
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "edit NOTE_ID ITEM_ID TEXT...",
		Short: "Change the text of an item",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withEntry(cmd, o, args, func(s *session, n notes.Note, id int64) error {
				s.ws.Notes.Update(n.ID, notes.SetItemText(n, id, strings.Join(args[2:], " ")))
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "rm NOTE_ID ITEM_ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withEntry(cmd, o, args, func(s *session, n notes.Note, id int64) error {
				s.ws.Notes.Update(n.ID, notes.DeleteItem(n, id))
				return nil
			})
		},
	})

	topLevel.AddCommand(cmd)
}

// parseWeekday accepts 1-7 (Monday first) or a weekday name prefix.
func parseWeekday(s string) (int, error) {
	if d, err := strconv.Atoi(s); err == nil {
		if d < 1 || d > notes.DaysPerWeek {
			return 0, fmt.Errorf("day %d out of range 1-7", d)
		}
		return d - 1, nil
	}
	names := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	s = strings.ToLower(s)
	if len(s) >= 2 {
		for i, name := range names {
			if strings.HasPrefix(name, s) {
				return i, nil
			}
		}
	}
	return 0, errors.New("day must be 1-7 or a weekday name such as mon")
}

func addHabit(topLevel *cobra.Command, o *rootOptions) {
	e := entryCommand{use: "habit", short: "Edit habit rows", variant: notes.VariantHabit}
	cmd := e.parent()

	cmd.AddCommand(&cobra.Command{
		Use:   "add NOTE_ID TEXT...",
		Short: "Append a habit",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNote(cmd, o, args, func(s *session, n notes.Note) error {
				if err := requireVariant(n, e.variant); err != nil {
					return err
				}
				s.ws.Notes.Update(n.ID, notes.AddHabit(n, s.ws.Notes.NextID(), strings.Join(args[1:], " ")))
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "mark NOTE_ID HABIT_ID DAY",
		Short: "Cycle a day: empty, missed, done, partial",
		Example: `
corkboard notes habit mark 2 21 mon
corkboard notes habit mark 2 21 7
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseWeekday(args[2])
			if err != nil {
				return err
			}
			return e.withEntry(cmd, o, args, func(s *session, n notes.Note, id int64) error {
				s.ws.Notes.Update(n.ID, notes.CycleHabitDay(n, id, day))
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "edit NOTE_ID HABIT_ID TEXT...",
		Short: "Rename a habit",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withEntry(cmd, o, args, func(s *session, n notes.Note, id int64) error {
				s.ws.Notes.Update(n.ID, notes.SetHabitText(n, id, strings.Join(args[2:], " ")))
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "rm NOTE_ID HABIT_ID",
		Short: "Delete a habit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withEntry(cmd, o, args, func(s *session, n notes.Note, id int64) error {
				s.ws.Notes.Update(n.ID, notes.DeleteHabit(n, id))
				return nil
			})
		},
	})

	topLevel.AddCommand(cmd)
}

func addTask(topLevel *cobra.Command, o *rootOptions) {
	e := entryCommand{use: "task", short: "Edit long term tasks", variant: notes.VariantLongTerm}
	cmd := e.parent()

	var desc string
	add := &cobra.Command{
		Use:   "add NOTE_ID TEXT...",
		Short: "Append a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNote(cmd, o, args, func(s *session, n notes.Note) error {
				if err := requireVariant(n, e.variant); err != nil {
					return err
				}
				s.ws.Notes.Update(n.ID, notes.AddTask(n, s.ws.Notes.NextID(), strings.Join(args[1:], " "), desc))
				return nil
			})
		},
	}
	add.Flags().StringVarP(&desc, "description", "d", "", "Longer description of the task")

	var editDesc string
	edit := &cobra.Command{
		Use:   "edit NOTE_ID TASK_ID TEXT...",
		Short: "Change a task",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withEntry(cmd, o, args, func(s *session, n notes.Note, id int64) error {
				d := editDesc
				if !cmd.Flags().Changed("description") {
					for _, t := range n.Tasks {
						if t.ID == id {
							d = t.Description
						}
					}
				}
				s.ws.Notes.Update(n.ID, notes.SetTask(n, id, strings.Join(args[2:], " "), d))
				return nil
			})
		},
	}
	edit.Flags().StringVarP(&editDesc, "description", "d", "", "Replace the description")

	cmd.AddCommand(add, edit, &cobra.Command{
		Use:   "rm NOTE_ID TASK_ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withEntry(cmd, o, args, func(s *session, n notes.Note, id int64) error {
				s.ws.Notes.Update(n.ID, notes.DeleteTask(n, id))
				return nil
			})
		},
	})

	topLevel.AddCommand(cmd)
}
