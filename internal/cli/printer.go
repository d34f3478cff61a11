package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"pet-care-tasks/internal/carousel"
	"pet-care-tasks/internal/ports/remote"
	"pet-care-tasks/internal/tasks"
)

// Printer escribe las vistas derivadas en la terminal.
type Printer struct {
	Out    io.Writer
	ShowID bool
}

func (p *Printer) title(s string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(p.Out, s)
}

func (p *Printer) titleWithCount(s string, n int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	_, _ = t.Fprint(p.Out, s)
	_, _ = c.Fprintf(p.Out, " - %d\n", n)
}

func (p *Printer) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(p.Out, " none\n\n")
}

// Projection imprime próxima tarea, pendientes, hechas y stats por mascota.
func (p *Printer) Projection(proj tasks.Projection, pets map[string]remote.Pet, now time.Time) {
	p.title("Next up")
	if proj.NextUp == nil {
		p.none()
	} else {
		v := *proj.NextUp
		_, _ = fmt.Fprintf(p.Out, "  %s %s  %s\n\n", iconGlyph(v.Icon), v.Title, relative(v, now))
	}

	p.titleWithCount("Pending", len(proj.Incomplete))
	p.tasks(proj.Incomplete, pets, now)

	p.titleWithCount("Done", len(proj.Completed))
	p.tasks(proj.Completed, pets, now)

	if len(proj.StatsByPet) > 0 {
		p.title("Pets")
		p.stats(proj.StatsByPet, pets)
	}
}

func (p *Printer) tasks(views []tasks.TaskView, pets map[string]remote.Pet, now time.Time) {
	if len(views) == 0 {
		p.none()
		return
	}

	faint := color.New(color.Faint)
	overdue := color.New(color.FgRed)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, v := range views {
		check := "[ ]"
		if v.Completed {
			check = "[x]"
		}
		when := v.Time
		if when == "" {
			when = faint.Sprint("--:--")
		} else if tasks.Overdue(v, now) {
			when = overdue.Sprint(when)
		}

		row := []any{check, when, iconGlyph(v.Icon), priorityLabel(v.Priority), v.Title, ownerName(v.PetID, pets)}
		if p.ShowID {
			row = append([]any{faint.Sprint(v.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(p.Out, tbl)
	_, _ = fmt.Fprintln(p.Out)
}

func (p *Printer) stats(stats map[string]tasks.PetStats, pets map[string]remote.Pet) {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, id := range sortedPetIDs(stats, pets) {
		st := stats[id]
		next := "-"
		if st.NextTask != nil {
			next = fmt.Sprintf("%s %s", st.NextTask.Time, st.NextTask.Title)
		}
		tbl.AddRow(ownerName(&id, pets), fmt.Sprintf("%d/%d", st.Completed, st.Total), next)
	}
	_, _ = fmt.Fprintln(p.Out, tbl)
	_, _ = fmt.Fprintln(p.Out)
}

// Carousel imprime las tarjetas de mascotas con la seleccionada marcada.
func (p *Printer) Carousel(list []remote.Pet, sel *carousel.Sync, stats map[string]tasks.PetStats) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for i, pet := range list {
		marker := " "
		name := pet.Name
		if i == sel.CurrentIndex() {
			marker = ">"
			name = bold.Sprint(name)
		}
		progress := faint.Sprint("no tasks")
		if st, ok := stats[pet.ID]; ok {
			progress = fmt.Sprintf("%d/%d done", st.Completed, st.Total)
		}
		primary := ""
		if pet.IsPrimary {
			primary = "*"
		}
		tbl.AddRow(marker, name+primary, pet.Species, pet.Breed, progress)
	}

	marker := " "
	if sel.IsAddSlot(sel.CurrentIndex()) {
		marker = ">"
	}
	tbl.AddRow(marker, faint.Sprint("+ add pet"), "", "", "")

	_, _ = fmt.Fprintln(p.Out, tbl)
}

// Celebrate es el "efecto" de la terminal.
func (p *Printer) Celebrate() {
	c := color.New(color.FgHiGreen, color.Bold)
	_, _ = c.Fprint(p.Out, "\n  All done for today! Your pets thank you.\n\n")
}

// Stale avisa que se está mostrando la copia offline.
func (p *Printer) Stale(savedAt time.Time) {
	y := color.New(color.FgHiYellow, color.Italic)
	_, _ = y.Fprintf(p.Out, "offline copy from %s\n\n", humanize.Time(savedAt))
}

func (p *Printer) Error(msg string) {
	r := color.New(color.FgRed)
	_, _ = r.Fprintln(p.Out, msg)
}

func relative(v tasks.TaskView, now time.Time) string {
	if v.SortInstant == nil {
		return ""
	}
	label := humanize.RelTime(*v.SortInstant, now, "ago", "from now")
	if tasks.Overdue(v, now) {
		return color.New(color.FgRed).Sprintf("%s (overdue %s)", v.Time, label)
	}
	return fmt.Sprintf("%s (%s)", v.Time, label)
}

func priorityLabel(pr remote.Priority) string {
	switch pr {
	case remote.PriorityUrgent:
		return color.New(color.FgRed, color.Bold).Sprint("!!!")
	case remote.PriorityHigh:
		return color.New(color.FgYellow).Sprint("!! ")
	case remote.PriorityMedium:
		return "!  "
	default:
		return "   "
	}
}

func ownerName(petID *string, pets map[string]remote.Pet) string {
	if petID == nil {
		return "you"
	}
	if pet, ok := pets[*petID]; ok && strings.TrimSpace(pet.Name) != "" {
		return pet.Name
	}
	return *petID
}

var glyphs = map[tasks.Icon]string{
	tasks.IconWalk:        "walk",
	tasks.IconFood:        "food",
	tasks.IconWater:       "watr",
	tasks.IconPill:        "meds",
	tasks.IconStethoscope: "vet ",
	tasks.IconSyringe:     "vacc",
	tasks.IconScissors:    "groo",
	tasks.IconBall:        "play",
}

func iconGlyph(ic tasks.Icon) string {
	if g, ok := glyphs[ic]; ok {
		return g
	}
	return "pet "
}
