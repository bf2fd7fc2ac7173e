package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyGoalName    = errors.New("model: goal name is required")
	ErrInvalidTotalTime = errors.New("model: goal total time must be positive")
)

type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
)

// GoalSession is one recorded focus run against a goal.
type GoalSession struct {
	Date     time.Time `json:"date"`
	Duration int       `json:"duration"`
}

// Goal is a study target measured in hours. TimeSpent accumulates in
// seconds; Status is derived from TimeSpent against TotalTime.
type Goal struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	TotalTime   float64       `json:"totalTime"`
	TimeSpent   int           `json:"timeSpent"`
	Status      GoalStatus    `json:"status"`
	Sessions    []GoalSession `json:"sessions"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func (g *Goal) UnmarshalJSON(data []byte) error {
	type alias Goal
	aux := struct {
		*alias
		LegacyID string `json:"id"`
	}{alias: (*alias)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if g.ID == "" {
		g.ID = aux.LegacyID
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyGoalName
	}
	if g.TotalTime <= 0 {
		return ErrInvalidTotalTime
	}
	return nil
}

// TotalSeconds is the configured goal duration in seconds.
func (g Goal) TotalSeconds() int {
	return int(g.TotalTime * 3600)
}

// ApplySession appends a session record, accumulates TimeSpent and
// re-derives Status.
func (g *Goal) ApplySession(durationSec int, at time.Time) {
	g.Sessions = append(g.Sessions, GoalSession{Date: at, Duration: durationSec})
	g.TimeSpent += durationSec
	if g.TimeSpent >= g.TotalSeconds() {
		g.Status = GoalCompleted
	} else {
		g.Status = GoalInProgress
	}
}

// Progress returns completion percent clamped to [0, 100].
func (g Goal) Progress() float64 {
	total := g.TotalTime * 3600
	if total <= 0 {
		return 0
	}
	pct := float64(g.TimeSpent) / total * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// GoalPatch carries a partial goal update; nil fields are left untouched.
type GoalPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	TotalTime   *float64 `json:"totalTime,omitempty"`
}

func (p GoalPatch) Apply(g *Goal) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.TotalTime != nil {
		g.TotalTime = *p.TotalTime
	}
}
