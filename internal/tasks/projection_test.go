package tasks

import (
	"testing"
	"time"

	"pet-care-tasks/internal/ports/remote"
)

func TestProject_NextUpIsEarliestPending(t *testing.T) {
	entities := []remote.Reminder{
		rem("1", remote.StatusPending, "09:00"),
		rem("2", remote.StatusPending, "14:00"),
	}

	p := Project(entities, testNow)

	if p.NextUp == nil || p.NextUp.ID != "1" {
		t.Fatalf("expected nextUp=1, got %#v", p.NextUp)
	}
	if p.NextUp.Time != "09:00" {
		t.Fatalf("expected time label 09:00, got %q", p.NextUp.Time)
	}
	if !equalIDs(ids(p.Incomplete), []string{"1", "2"}) {
		t.Fatalf("unexpected incomplete: %v", ids(p.Incomplete))
	}
	if len(p.Completed) != 0 {
		t.Fatalf("expected no completed, got %v", ids(p.Completed))
	}
}

func TestProject_PartitionsByFinishedStatus(t *testing.T) {
	entities := []remote.Reminder{
		rem("1", remote.StatusCompleted, "09:00"),
		rem("2", remote.StatusPending, "14:00"),
		rem("3", remote.StatusDone, ""),
	}

	p := Project(entities, testNow)

	if !equalIDs(ids(p.Incomplete), []string{"2"}) {
		t.Fatalf("unexpected incomplete: %v", ids(p.Incomplete))
	}
	if !equalIDs(ids(p.Completed), []string{"1", "3"}) {
		t.Fatalf("unexpected completed: %v", ids(p.Completed))
	}
	if p.NextUp == nil || p.NextUp.ID != "2" {
		t.Fatalf("expected nextUp=2, got %#v", p.NextUp)
	}
}

func TestProject_UnparseableTime_CountsButNeverNextUp(t *testing.T) {
	pet := strPtr("p1")
	bad := rem("1", remote.StatusPending, "not-a-time")
	bad.PetID = pet
	good := rem("2", remote.StatusPending, "10:00")
	good.PetID = pet

	p := Project([]remote.Reminder{bad, good}, testNow)

	st := p.StatsByPet["p1"]
	if st.Total != 2 {
		t.Fatalf("expected total 2, got %d", st.Total)
	}
	if st.NextTask == nil || st.NextTask.ID != "2" {
		t.Fatalf("expected pet nextTask=2, got %#v", st.NextTask)
	}
	if p.NextUp == nil || p.NextUp.ID != "2" {
		t.Fatalf("expected nextUp=2, got %#v", p.NextUp)
	}
	if p.Incomplete[0].Time != "" || p.Incomplete[0].HasInstant() {
		t.Fatalf("expected no time for unparseable timestamp: %#v", p.Incomplete[0])
	}
	if p.PendingCount() != 1 {
		t.Fatalf("expected 1 pending with time, got %d", p.PendingCount())
	}
}

func TestProject_OnlyUnparseable_NextUpNil(t *testing.T) {
	p := Project([]remote.Reminder{rem("1", remote.StatusPending, "mañana")}, testNow)
	if p.NextUp != nil {
		t.Fatalf("expected nil nextUp, got %#v", p.NextUp)
	}
	if len(p.Incomplete) != 1 {
		t.Fatalf("expected reminder to stay in incomplete")
	}
}

func TestProject_ChosenTimePrecedence(t *testing.T) {
	r := rem("1", remote.StatusPending, "")
	r.DueAt = ts("11:00")
	r.SnoozeUntil = ts("07:00")

	p := Project([]remote.Reminder{r}, testNow)
	if p.Incomplete[0].Time != "11:00" {
		t.Fatalf("expected dueAt to win over snoozeUntil, got %q", p.Incomplete[0].Time)
	}

	// el primer campo presente decide aunque no parsee
	r.ScheduledAt = ts("garbage")
	p = Project([]remote.Reminder{r}, testNow)
	if p.Incomplete[0].HasInstant() {
		t.Fatalf("expected no instant when scheduledAt is unparseable")
	}
}

func TestProject_OverdueStaysPending(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)
	p := Project([]remote.Reminder{rem("1", remote.StatusPending, "09:00")}, now)

	if p.NextUp == nil || p.NextUp.ID != "1" {
		t.Fatalf("expected overdue reminder to still be nextUp")
	}
	if !Overdue(*p.NextUp, now) {
		t.Fatalf("expected reminder to be overdue at 15:00")
	}
	if Overdue(p.Incomplete[0], testNow) {
		t.Fatalf("expected not overdue at 08:00")
	}
}

func TestProject_TiesKeepFirstSeen(t *testing.T) {
	pet := strPtr("p1")
	a := rem("a", remote.StatusPending, "09:00")
	a.PetID = pet
	b := rem("b", remote.StatusPending, "09:00")
	b.PetID = pet

	p := Project([]remote.Reminder{a, b}, testNow)
	if p.NextUp.ID != "a" {
		t.Fatalf("expected first-seen to win tie, got %s", p.NextUp.ID)
	}
	if p.StatsByPet["p1"].NextTask.ID != "a" {
		t.Fatalf("expected first-seen to win pet tie")
	}

	p = Project([]remote.Reminder{b, a}, testNow)
	if p.NextUp.ID != "b" {
		t.Fatalf("expected first-seen to win tie after reorder, got %s", p.NextUp.ID)
	}
}

func TestProject_ArchivedExcludedEverywhere(t *testing.T) {
	pet := strPtr("p1")
	arch := rem("1", remote.StatusArchived, "07:00")
	arch.PetID = pet
	live := rem("2", remote.StatusPending, "10:00")
	live.PetID = pet

	p := Project([]remote.Reminder{arch, live}, testNow)

	if got := len(p.Incomplete) + len(p.Completed); got != 1 {
		t.Fatalf("expected archived out of partitions, got %d views", got)
	}
	if p.NextUp.ID != "2" {
		t.Fatalf("expected archived not to be nextUp")
	}
	if p.StatsByPet["p1"].Total != 1 {
		t.Fatalf("expected archived not counted in pet stats")
	}
}

func TestProject_PetStatsCounts(t *testing.T) {
	p1, p2 := strPtr("p1"), strPtr("p2")
	items := []remote.Reminder{
		rem("1", remote.StatusCompleted, "08:30"),
		rem("2", remote.StatusPending, "12:00"),
		rem("3", remote.StatusPending, "10:00"),
		rem("4", remote.StatusDone, ""),
		rem("5", remote.StatusPending, "06:00"), // sin mascota
	}
	items[0].PetID, items[1].PetID, items[2].PetID = p1, p1, p1
	items[3].PetID = p2

	p := Project(items, testNow)

	s1 := p.StatsByPet["p1"]
	if s1.Total != 3 || s1.Completed != 1 || s1.NextTask == nil || s1.NextTask.ID != "3" {
		t.Fatalf("unexpected p1 stats: %+v", s1)
	}
	s2 := p.StatsByPet["p2"]
	if s2.Total != 1 || s2.Completed != 1 || s2.NextTask != nil {
		t.Fatalf("unexpected p2 stats: %+v", s2)
	}
	if len(p.StatsByPet) != 2 {
		t.Fatalf("expected unowned reminder outside stats, got %d pets", len(p.StatsByPet))
	}
	for id, st := range p.StatsByPet {
		if st.Completed > st.Total {
			t.Fatalf("pet %s: completed > total", id)
		}
	}
	if p.NextUp.ID != "5" {
		t.Fatalf("expected unowned reminder to still compete for nextUp")
	}
}

func TestProject_IconFromFirstTag(t *testing.T) {
	r := rem("1", remote.StatusPending, "")
	r.Tags = []string{"Walk", "food"}
	p := Project([]remote.Reminder{r, rem("2", remote.StatusPending, "")}, testNow)

	if p.Incomplete[0].Icon != IconWalk {
		t.Fatalf("expected walk icon, got %s", p.Incomplete[0].Icon)
	}
	if p.Incomplete[1].Icon != IconPaw {
		t.Fatalf("expected default icon, got %s", p.Incomplete[1].Icon)
	}
}

func TestProject_TimeLabelInNowLocation(t *testing.T) {
	loc := time.FixedZone("ART", -3*3600)
	now := time.Date(2026, 10, 16, 5, 0, 0, 0, loc)
	r := rem("1", remote.StatusPending, "2026-10-16T12:30:00Z")

	p := Project([]remote.Reminder{r}, now)
	if p.Incomplete[0].Time != "09:30" {
		t.Fatalf("expected label in now's location, got %q", p.Incomplete[0].Time)
	}
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	items := []remote.Reminder{rem("1", remote.StatusPending, "09:00")}
	items[0].PetID = strPtr("p1")

	p := Project(items, testNow)
	*p.Incomplete[0].PetID = "other"

	if *items[0].PetID != "p1" {
		t.Fatalf("projection aliases the entity pet id")
	}
}
