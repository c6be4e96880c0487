package notes

import "slices"

// The helpers below never touch the manager. Each one derives the full
// replacement sub-collection for a note and returns it as a Patch to be
// handed to Manager.Update.

func itemsPatch(items []Item) Patch    { return Patch{Items: &items} }
func habitsPatch(habits []Habit) Patch { return Patch{Habits: &habits} }
func tasksPatch(tasks []Task) Patch    { return Patch{Tasks: &tasks} }

func AddItem(n Note, id int64, text string) Patch {
	items := append(slices.Clone(n.Items), Item{ID: id, Text: text})
	return itemsPatch(items)
}

func SetItemText(n Note, itemID int64, text string) Patch {
	items := slices.Clone(n.Items)
	for i := range items {
		if items[i].ID == itemID {
			items[i].Text = text
		}
	}
	return itemsPatch(items)
}

func ToggleItem(n Note, itemID int64) Patch {
	items := slices.Clone(n.Items)
	for i := range items {
		if items[i].ID == itemID {
			items[i].Checked = !items[i].Checked
		}
	}
	return itemsPatch(items)
}

func DeleteItem(n Note, itemID int64) Patch {
	items := slices.DeleteFunc(slices.Clone(n.Items), func(it Item) bool { return it.ID == itemID })
	return itemsPatch(nonNil(items))
}

func AddHabit(n Note, id int64, text string) Patch {
	habits := append(slices.Clone(n.Habits), Habit{ID: id, Text: text})
	return habitsPatch(habits)
}

func SetHabitText(n Note, habitID int64, text string) Patch {
	habits := slices.Clone(n.Habits)
	for i := range habits {
		if habits[i].ID == habitID {
			habits[i].Text = text
		}
	}
	return habitsPatch(habits)
}

// CycleHabitDay advances one cell of a habit row. Out-of-range days leave
// the row unchanged.
func CycleHabitDay(n Note, habitID int64, day int) Patch {
	habits := slices.Clone(n.Habits)
	if day < 0 || day >= DaysPerWeek {
		return habitsPatch(habits)
	}
	for i := range habits {
		if habits[i].ID == habitID {
			habits[i].Days[day] = habits[i].Days[day].Next()
		}
	}
	return habitsPatch(habits)
}

func DeleteHabit(n Note, habitID int64) Patch {
	habits := slices.DeleteFunc(slices.Clone(n.Habits), func(h Habit) bool { return h.ID == habitID })
	return habitsPatch(nonNil(habits))
}

func AddTask(n Note, id int64, text, description string) Patch {
	tasks := append(slices.Clone(n.Tasks), Task{ID: id, Text: text, Description: description})
	return tasksPatch(tasks)
}

func SetTask(n Note, taskID int64, text, description string) Patch {
	tasks := slices.Clone(n.Tasks)
	for i := range tasks {
		if tasks[i].ID == taskID {
			tasks[i].Text = text
			tasks[i].Description = description
		}
	}
	return tasksPatch(tasks)
}

func DeleteTask(n Note, taskID int64) Patch {
	tasks := slices.DeleteFunc(slices.Clone(n.Tasks), func(t Task) bool { return t.ID == taskID })
	return tasksPatch(nonNil(tasks))
}
