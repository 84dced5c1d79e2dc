// Package sample holds the user-maintained list of numbers and view state.
package sample

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	MinZoom     = 10
	MaxZoom     = 200
	ZoomStep    = 10
	DefaultZoom = 100
)

var (
	// ErrNotFinite is returned for NaN or infinite values.
	ErrNotFinite = errors.New("value must be a finite number")
	// ErrIndex is returned for positions outside the sample.
	ErrIndex = errors.New("index out of range")
)

// Sample is an ordered list of finite numbers plus the order it had before
// the last sort or move, which ResetOrder restores.
type Sample struct {
	values   []float64
	original []float64
	zoom     int
}

// New returns a sample holding a copy of values.
func New(values ...float64) (*Sample, error) {
	s := &Sample{zoom: DefaultZoom}
	if err := s.Replace(values); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseValue parses user input into a finite number.
func ParseValue(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", text)
	}
	if !IsFinite(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Values returns a copy of the current values.
func (s *Sample) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// Len returns the number of values.
func (s *Sample) Len() int {
	return len(s.values)
}

// At returns the value at position i.
func (s *Sample) At(i int) (float64, error) {
	if i < 0 || i >= len(s.values) {
		return 0, ErrIndex
	}
	return s.values[i], nil
}

// Add appends v.
func (s *Sample) Add(v float64) error {
	if !IsFinite(v) {
		return ErrNotFinite
	}
	s.values = append(s.values, v)
	s.commit()
	return nil
}

// Edit replaces the value at position i.
func (s *Sample) Edit(i int, v float64) error {
	if i < 0 || i >= len(s.values) {
		return ErrIndex
	}
	if !IsFinite(v) {
		return ErrNotFinite
	}
	s.values[i] = v
	s.commit()
	return nil
}

// Delete removes the value at position i.
func (s *Sample) Delete(i int) error {
	if i < 0 || i >= len(s.values) {
		return ErrIndex
	}
	s.values = append(s.values[:i], s.values[i+1:]...)
	s.commit()
	return nil
}

// Replace swaps in a new list, as an import does.
func (s *Sample) Replace(values []float64) error {
	for _, v := range values {
		if !IsFinite(v) {
			return ErrNotFinite
		}
	}
	s.values = append([]float64(nil), values...)
	s.commit()
	return nil
}

// Clear removes every value.
func (s *Sample) Clear() {
	s.values = nil
	s.commit()
}

// Move shifts the value at from to position to. The original order is kept.
func (s *Sample) Move(from, to int) error {
	if from < 0 || from >= len(s.values) || to < 0 || to >= len(s.values) {
		return ErrIndex
	}
	if from == to {
		return nil
	}
	v := s.values[from]
	s.values = append(s.values[:from], s.values[from+1:]...)
	s.values = append(s.values[:to], append([]float64{v}, s.values[to:]...)...)
	return nil
}

// SortAscending orders values from smallest to largest.
func (s *Sample) SortAscending() {
	sort.SliceStable(s.values, func(i, j int) bool { return s.values[i] < s.values[j] })
}

// SortDescending orders values from largest to smallest.
func (s *Sample) SortDescending() {
	sort.SliceStable(s.values, func(i, j int) bool { return s.values[i] > s.values[j] })
}

// ResetOrder restores the order from before the last sort or move.
func (s *Sample) ResetOrder() {
	s.values = append([]float64(nil), s.original...)
}

func (s *Sample) commit() {
	s.original = append([]float64(nil), s.values...)
}

// Zoom returns the zoom percentage.
func (s *Sample) Zoom() int {
	if s.zoom == 0 {
		return DefaultZoom
	}
	return s.zoom
}

// SetZoom sets the zoom percentage, clamped to [MinZoom, MaxZoom].
func (s *Sample) SetZoom(zoom int) {
	s.zoom = ClampZoom(zoom)
}

// ZoomIn raises the zoom by one step.
func (s *Sample) ZoomIn() {
	s.SetZoom(s.Zoom() + ZoomStep)
}

// ZoomOut lowers the zoom by one step.
func (s *Sample) ZoomOut() {
	s.SetZoom(s.Zoom() - ZoomStep)
}

// ClampZoom limits zoom to [MinZoom, MaxZoom].
func ClampZoom(zoom int) int {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
