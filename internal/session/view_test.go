package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
)

func TestParseSection(t *testing.T) {
	s, err := ParseSection(" Charts ")
	require.NoError(t, err)
	assert.Equal(t, SectionCharts, s)

	_, err = ParseSection("settings")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestView_Defaults(t *testing.T) {
	v := NewView()
	st := v.State()
	assert.Equal(t, Section(""), st.Section)
	assert.Equal(t, FilterAll, st.AlertFilter)
	assert.False(t, v.Active())
	assert.False(t, v.ChartsVisible())
}

func TestView_SwitchSection(t *testing.T) {
	v := NewView()
	v.SwitchSection(SectionCharts)
	assert.True(t, v.ChartsVisible())
	assert.True(t, v.Active())

	v.SwitchSection(SectionMap)
	assert.False(t, v.ChartsVisible())
}

func TestView_AlertFilter(t *testing.T) {
	v := NewView()

	st, err := v.SetAlertFilter("critical")
	require.NoError(t, err)
	assert.Equal(t, "CRITICAL", st.AlertFilter)
	assert.Equal(t, models.ThreatCritical, st.Severity())

	st, err = v.SetAlertFilter("ALL")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, st.AlertFilter)
	assert.Equal(t, models.ThreatLevel(""), st.Severity())

	_, err = v.SetAlertFilter("severe")
	assert.ErrorIs(t, err, ErrUnknownFilter)
	assert.Equal(t, FilterAll, v.State().AlertFilter)
}

func TestView_LocationAndToggles(t *testing.T) {
	v := NewView()

	assert.Equal(t, "miami", v.SelectLocation("miami").SelectedLocation)
	assert.Empty(t, v.ClearLocation().SelectedLocation)

	assert.True(t, v.ToggleNotifications().NotificationsOpen)
	assert.False(t, v.ToggleNotifications().NotificationsOpen)
	assert.True(t, v.ToggleUserMenu().UserMenuOpen)
}
