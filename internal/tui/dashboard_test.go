package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"journal/internal/activity"
	"journal/internal/analytics"
)

func testModel(t *testing.T) dashboardModel {
	t.Helper()

	today := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	engine := analytics.New(analytics.WithClock(func() time.Time { return today }))

	inputs := []struct {
		date    time.Time
		details activity.Details
	}{
		{time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC), activity.Exercise{Sport: activity.SportGym, DurationMinutes: 60}},
		{time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), activity.Film{Title: "Alien", Rating: 4}},
		{time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), activity.Reading{Title: "Dune", Author: "Frank Herbert", Rating: 5, Tags: []string{"sci-fi"}}},
	}

	records := make([]activity.Record, 0, len(inputs))
	for i, in := range inputs {
		r, err := activity.New(i+1, in.date, "", in.details)
		if err != nil {
			t.Fatalf("Failed to build record: %v", err)
		}
		records = append(records, r)
	}

	m := newDashboardModel(engine, records, analytics.DefaultFilter())
	m.glamourStyle = nil
	return m
}

func press(m dashboardModel, keys ...string) dashboardModel {
	for _, key := range keys {
		var msg tea.KeyMsg
		switch key {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		updated, _ := m.Update(msg)
		m = updated.(dashboardModel)
	}
	return m
}

func TestDashboardModel_InitialSnapshot(t *testing.T) {
	m := testModel(t)

	if m.dashboard.Summary.Total != 3 {
		t.Errorf("Expected 3 records in the initial snapshot, got %d", m.dashboard.Summary.Total)
	}

	if m.dashboard.Breakdown != nil {
		t.Error("Expected no breakdown with every category active")
	}
}

func TestDashboardModel_ToggleCategory(t *testing.T) {
	m := press(testModel(t), "2")

	if m.filter.Categories.Has(activity.CategoryFilm) {
		t.Error("Expected key 2 to deactivate film")
	}

	if m.dashboard.Summary.Total != 2 {
		t.Errorf("Expected 2 records after removing film, got %d", m.dashboard.Summary.Total)
	}

	m = press(m, "2")
	if !m.filter.Categories.Has(activity.CategoryFilm) {
		t.Error("Expected key 2 to reactivate film")
	}
}

func TestDashboardModel_SingleCategoryShowsBreakdown(t *testing.T) {
	m := press(testModel(t), "2", "3", "4", "5")

	if m.filter.Categories != activity.NewCategorySet(activity.CategoryReading) {
		t.Fatalf("Expected only reading active, got %s", m.filter.Categories)
	}

	if m.dashboard.Breakdown == nil {
		t.Fatal("Expected a breakdown for a single active category")
	}

	if m.dashboard.Breakdown.Entries[0].Key != "sci-fi" {
		t.Errorf("Expected sci-fi tag entry, got %v", m.dashboard.Breakdown.Entries)
	}

	m = press(m, "a")
	if m.filter.Categories != activity.FullCategorySet() {
		t.Error("Expected key a to select every category")
	}
}

func TestDashboardModel_CycleWindow(t *testing.T) {
	m := press(testModel(t), "w")

	if m.filter.Window != analytics.WindowLastMonth {
		t.Errorf("Expected lastMonth after one press, got %s", m.filter.Window)
	}
	if m.dashboard.Summary.Total != 2 {
		t.Errorf("Expected 2 records in the last month, got %d", m.dashboard.Summary.Total)
	}

	m = press(m, "w")
	if m.filter.Window != analytics.WindowLast7Days {
		t.Errorf("Expected last7days after two presses, got %s", m.filter.Window)
	}
	if m.dashboard.Summary.Total != 1 {
		t.Errorf("Expected 1 record in the last 7 days, got %d", m.dashboard.Summary.Total)
	}

	m = press(m, "w")
	if m.filter.Window != analytics.WindowAll {
		t.Errorf("Expected all after three presses, got %s", m.filter.Window)
	}
}

func TestDashboardModel_HistoryNavigation(t *testing.T) {
	m := press(testModel(t), "tab")

	if m.screen != screenHistory {
		t.Fatal("Expected tab to switch to the history screen")
	}

	m = press(m, "j", "j", "j")
	if m.cursor != 2 {
		t.Errorf("Expected cursor clamped at 2, got %d", m.cursor)
	}

	m = press(m, "k")
	if m.cursor != 1 {
		t.Errorf("Expected cursor 1 after moving up, got %d", m.cursor)
	}

	// Narrowing the filter keeps the cursor inside the shorter list.
	m = press(m, "w", "w")
	if m.cursor != 0 {
		t.Errorf("Expected cursor reset to 0 for a single record, got %d", m.cursor)
	}
}

func TestDashboardModel_EmptySelection(t *testing.T) {
	m := press(testModel(t), "1", "2", "3", "4", "5")

	if !m.filter.Categories.IsEmpty() {
		t.Fatal("Expected no active categories")
	}

	if m.dashboard.Summary.Total != 0 || len(m.dashboard.Filtered) != 0 {
		t.Error("Expected empty views for an empty selection")
	}

	if len(m.dashboard.Evolution.Months) != 1 {
		t.Errorf("Expected a single month slot, got %d", len(m.dashboard.Evolution.Months))
	}
}

func TestDashboardModel_Quit(t *testing.T) {
	m := testModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("Expected a command for q")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected q to quit")
	}
}

func TestDashboardModel_View(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(dashboardModel)

	view := m.View()
	if !strings.Contains(view, "Journal for April 15, 2024") {
		t.Error("View should contain the header")
	}
	if !strings.Contains(view, "All time") {
		t.Error("View should show the active window")
	}

	m = press(m, "tab")
	if !strings.Contains(m.View(), "Dune") {
		t.Error("History view should list record titles")
	}
}

func TestDashboardModel_ViewTooSmall(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = updated.(dashboardModel)

	if !strings.Contains(m.View(), "Terminal too small") {
		t.Error("View should warn about small terminals")
	}
}

func TestRecordMarkdown(t *testing.T) {
	distance := 5.0
	r, err := activity.New(7, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), "Easy pace", activity.Exercise{
		Sport:           activity.SportRunning,
		DurationMinutes: 30,
		DistanceKm:      &distance,
	})
	if err != nil {
		t.Fatalf("Failed to build record: %v", err)
	}

	md := recordMarkdown(r)

	for _, want := range []string{"# 💪 running", "| **Duration** | 30 min |", "| **Distance** | 5.0 km |", "## Notes", "Easy pace"} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown should contain '%s', got:\n%s", want, md)
		}
	}

	if strings.Contains(md, "Rating") {
		t.Error("Exercise markdown should not contain a rating")
	}
}
