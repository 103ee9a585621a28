package reminder

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
)

// Planner fires a notification at each active habit's reminder time on its
// selected weekdays.
type Planner struct {
	mu      sync.Mutex
	cron    *cron.Cron
	center  *Center
	habits  Habits
	loc     *time.Location
	entries map[string]cron.EntryID
}

func NewPlanner(center *Center, habits Habits, loc *time.Location) *Planner {
	return &Planner{
		cron:    cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		center:  center,
		habits:  habits,
		loc:     loc,
		entries: make(map[string]cron.EntryID),
	}
}

// BuildSpec turns an HH:MM reminder and a weekday set into a six-field
// cron spec, e.g. "0 30 7 * * 1,3,5".
func BuildSpec(reminderTime string, days []time.Weekday) (string, error) {
	hh, mm, ok := strings.Cut(reminderTime, ":")
	if !ok {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", reminderTime)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", reminderTime)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", reminderTime)
	}
	if len(days) == 0 {
		return "", fmt.Errorf("no weekdays selected")
	}

	sorted := slices.Clone(days)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	dow := make([]string, len(sorted))
	for i, d := range sorted {
		dow[i] = strconv.Itoa(int(d))
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * %s", minute, hour, strings.Join(dow, ",")), nil
}

// Sync replaces the scheduled jobs with one per active habit. Habits with
// an unusable schedule are skipped and logged.
func (p *Planner) Sync(habits []models.Habit) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, entry := range p.entries {
		p.cron.Remove(entry)
		delete(p.entries, id)
	}

	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		spec, err := BuildSpec(h.ReminderTime, h.SelectedDays)
		if err != nil {
			logger.Warn("Skipping reminder", "habit", h.Name, "error", err)
			continue
		}
		id := h.ID
		entry, err := p.cron.AddFunc(spec, func() { p.fire(id) })
		if err != nil {
			logger.Warn("Failed to schedule reminder", "habit", h.Name, "spec", spec, "error", err)
			continue
		}
		p.entries[id] = entry
	}
	logger.Debug("Reminders scheduled", "count", len(p.entries))
}

func (p *Planner) fire(habitID string) {
	h, ok := p.habits.State().Habit(habitID)
	if !ok || !h.IsActive {
		return
	}
	p.center.Notify(h)
}

// Next returns the next fire time for a habit, if it is scheduled.
func (p *Planner) Next(habitID string) (time.Time, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.entries[habitID]
	if !ok {
		return time.Time{}, false
	}
	e := p.cron.Entry(entry)
	if !e.Valid() {
		return time.Time{}, false
	}
	if e.Next.IsZero() {
		// cron only fills Next once running
		return e.Schedule.Next(time.Now().In(p.loc)), true
	}
	return e.Next, true
}

func (p *Planner) Start() {
	p.cron.Start()
}

func (p *Planner) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
}
