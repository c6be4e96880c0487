package notes

// DefaultNotes is the board a first-time user starts with.
func DefaultNotes() []Note {
	return []Note{
		{
			ID:    1,
			Type:  VariantChecklist,
			Title: "Morning Routine",
			Color: "#fff9c4",
			Items: []Item{
				{ID: 1, Text: "Drink water"},
				{ID: 2, Text: "Stretch"},
				{ID: 3, Text: "Plan the day"},
			},
		},
		{
			ID:    2,
			Type:  VariantHabit,
			Title: "Weekly Habits",
			Color: "#c8e6c9",
			Habits: []Habit{
				{ID: 1, Text: "Read 30 mins"},
				{ID: 2, Text: "Exercise"},
			},
		},
		{
			ID:    3,
			Type:  VariantLongTerm,
			Title: "Life Goals",
			Color: "#bbdefb",
			Tasks: []Task{
				{ID: 1, Text: "Learn Spanish", Description: "Practice 15 mins daily on Duolingo"},
				{ID: 2, Text: "Visit Japan", Description: "Save $5000 by 2026"},
			},
		},
	}
}
