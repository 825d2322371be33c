package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aimandesu/portfolio-mobile/internal/schema"
)

func (a *App) ListEducation(ctx context.Context) {
	p := a.session.Profile()
	if p == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	if err := a.education.List(ctx, p.ID); err != nil {
		fmt.Fprintf(a.out, "Could not load education: %v\n", err)
		return
	}
	st := a.education.State()
	if len(st.Entries) == 0 {
		fmt.Fprintln(a.out, "No education entries")
		return
	}
	for _, e := range st.Entries {
		id := "-"
		if e.ID != nil {
			id = strconv.FormatInt(*e.ID, 10)
		}
		achievement := ""
		if e.Achievement != nil {
			achievement = ", " + *e.Achievement
		}
		fmt.Fprintf(a.out, "[%s] %s (%s)%s\n", id, e.Location, e.Level, achievement)
	}
}

func (a *App) AddEducation(ctx context.Context) {
	location, err := getSimpleText(a.reader, "Enter institution/location", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	level, err := getSimpleText(a.reader, "Enter level (spm, master, diploma, degree)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	achievement, err := getSimpleText(a.reader, "Enter achievement (optional)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	entry := schema.EducationEntry{
		Location: location,
		Level:    schema.Level(level),
	}
	if achievement != "" {
		entry.Achievement = &achievement
	}
	if err := a.education.Add(ctx, entry); err != nil {
		fmt.Fprintf(a.out, "Add unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Education added")
}

func (a *App) DeleteEducation(ctx context.Context) {
	idStr, err := getSimpleText(a.reader, "Enter education id", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Id must be numeric")
		return
	}
	if err := a.education.Remove(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Delete unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Education deleted")
}
