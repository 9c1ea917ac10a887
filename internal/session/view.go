package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
)

type Section string

const (
	SectionOverview Section = "overview"
	SectionMap      Section = "map"
	SectionAlerts   Section = "alerts"
	SectionCharts   Section = "charts"
	SectionAdmin    Section = "admin"
)

// FilterAll shows every alert regardless of severity.
const FilterAll = "all"

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownFilter  = errors.New("unknown alert filter")
)

func ParseSection(s string) (Section, error) {
	switch sec := Section(strings.ToLower(strings.TrimSpace(s))); sec {
	case SectionOverview, SectionMap, SectionAlerts, SectionCharts, SectionAdmin:
		return sec, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
}

// ViewState is what the dashboard currently shows.
type ViewState struct {
	Section           Section `json:"section"`
	AlertFilter       string  `json:"alert_filter"`
	SelectedLocation  string  `json:"selected_location,omitempty"`
	NotificationsOpen bool    `json:"notifications_open"`
	UserMenuOpen      bool    `json:"user_menu_open"`
}

// Severity returns the threat level the alert filter selects, or "" for all.
func (s ViewState) Severity() models.ThreatLevel {
	if s.AlertFilter == FilterAll {
		return ""
	}
	return models.ThreatLevel(s.AlertFilter)
}

type View struct {
	mu    sync.RWMutex
	state ViewState
}

// NewView returns a view with no section, as on the landing page.
func NewView() *View {
	return &View{state: ViewState{AlertFilter: FilterAll}}
}

func (v *View) State() ViewState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *View) Section() Section {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state.Section
}

// ChartsVisible reports whether the charts section is on screen.
func (v *View) ChartsVisible() bool {
	return v.Section() == SectionCharts
}

// Active reports whether a dashboard section is shown at all.
func (v *View) Active() bool {
	return v.Section() != ""
}

func (v *View) SwitchSection(s Section) ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Section = s
	return v.state
}

// SetAlertFilter accepts "all" or a threat level name.
func (v *View) SetAlertFilter(filter string) (ViewState, error) {
	value := FilterAll
	if !strings.EqualFold(strings.TrimSpace(filter), FilterAll) {
		level, err := models.ParseThreatLevel(filter)
		if err != nil {
			return v.State(), fmt.Errorf("%w: %q", ErrUnknownFilter, filter)
		}
		value = string(level)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.AlertFilter = value
	return v.state, nil
}

func (v *View) SelectLocation(id string) ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.SelectedLocation = id
	return v.state
}

func (v *View) ClearLocation() ViewState {
	return v.SelectLocation("")
}

func (v *View) ToggleNotifications() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.NotificationsOpen = !v.state.NotificationsOpen
	return v.state
}

func (v *View) ToggleUserMenu() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.UserMenuOpen = !v.state.UserMenuOpen
	return v.state
}

// reset puts the view back to a fresh state showing section.
func (v *View) reset(section Section) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = ViewState{Section: section, AlertFilter: FilterAll}
}
