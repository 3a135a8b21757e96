package sampler

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/handlewatch/internal/procinfo"
	"github.com/agbru/handlewatch/internal/procinfo/procinfotest"
)

var propertyNames = []string{"notepad", "Notepad++", "NOTEPAD", "explorer", "svchost", "note"}

// buildHost derives a deterministic host from generated handle and USER
// object counts. Names cycle through propertyNames.
func buildHost(handles, users []int64) (*procinfotest.Host, *procinfotest.GuiCounter) {
	host := &procinfotest.Host{}
	gui := &procinfotest.GuiCounter{Counts: map[int32]procinfo.GuiResources{}}
	for i, h := range handles {
		pid := int32(i + 100)
		host.Procs = append(host.Procs, &procinfotest.Process{
			Pid:       pid,
			ImageName: propertyNames[i%len(propertyNames)],
			Handles:   h,
			Threads:   int64(i % 7),
		})
		if i < len(users) {
			gui.Counts[pid] = procinfo.GuiResources{User: users[i], GDI: users[i] / 2}
		}
	}
	return host, gui
}

// TestSample_Properties checks the structural invariants of a snapshot over
// randomly generated process tables.
func TestSample_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	handlesGen := gen.SliceOf(gen.Int64Range(-10, 5000))
	usersGen := gen.SliceOf(gen.Int64Range(0, 4000))
	filterGen := gen.OneConstOf("notepad", "NOTE", "n", "explorer", "zzz")

	properties.Property("matched rows carry the filter prefix", prop.ForAll(
		func(handles, users []int64, filter string) bool {
			host, gui := buildHost(handles, users)
			snap, err := New(host, procinfo.NewReader(nil), gui).Sample(context.Background(), filter)
			if err != nil {
				return false
			}
			for _, s := range snap.Matched {
				if !strings.HasPrefix(strings.ToLower(s.Name), strings.ToLower(filter)) {
					return false
				}
			}
			return true
		},
		handlesGen, usersGen, filterGen,
	))

	properties.Property("matched rows are sorted by descending handle count", prop.ForAll(
		func(handles, users []int64, filter string) bool {
			host, gui := buildHost(handles, users)
			snap, err := New(host, procinfo.NewReader(nil), gui).Sample(context.Background(), filter)
			if err != nil {
				return false
			}
			for i := 1; i < len(snap.Matched); i++ {
				if snap.Matched[i-1].HandleCount < snap.Matched[i].HandleCount {
					return false
				}
			}
			return true
		},
		handlesGen, usersGen, filterGen,
	))

	properties.Property("filtered totals equal the sum of matched rows", prop.ForAll(
		func(handles, users []int64, filter string) bool {
			host, gui := buildHost(handles, users)
			snap, err := New(host, procinfo.NewReader(nil), gui).Sample(context.Background(), filter)
			if err != nil {
				return false
			}
			var sum, threads int64
			for _, s := range snap.Matched {
				if s.HandleCount < 0 {
					return false
				}
				sum += s.HandleCount
				threads += s.ThreadCount
			}
			return snap.FilteredTotals.Handles == sum && snap.FilteredTotals.Threads == threads
		},
		handlesGen, usersGen, filterGen,
	))

	properties.Property("system USER total covers every process and drives saturation", prop.ForAll(
		func(handles, users []int64, filter string) bool {
			host, gui := buildHost(handles, users)
			snap, err := New(host, procinfo.NewReader(nil), gui).Sample(context.Background(), filter)
			if err != nil {
				return false
			}
			var want, matchedUsers int64
			for i := range handles {
				if i < len(users) {
					want += users[i]
				}
			}
			for _, s := range snap.Matched {
				matchedUsers += gui.Counts[s.PID].User
			}
			expected := math.Min(100, math.Round(float64(want)/UserHandleCeiling*100*10)/10)
			return snap.SystemUserHandles == want &&
				snap.SystemUserHandles >= matchedUsers &&
				snap.UserSaturationPercent == expected &&
				snap.UserSaturationPercent >= 0 && snap.UserSaturationPercent <= 100
		},
		handlesGen, usersGen, filterGen,
	))

	properties.TestingRun(t)
}
