package state

import (
	"context"
	"sync"
)

// User states constants
const (
	None               = "none"
	WaitingForProfile  = "waiting_for_profile"
	WaitingForGlucose  = "waiting_for_glucose"
	WaitingForPressure = "waiting_for_pressure"
	WaitingForFood     = "waiting_for_food"
)

// Temp data keys
const (
	KeyGlucoseContext = "glucose_context"
	KeyCustomRange    = "custom_range"
)

// StateManager keeps the conversation state of each chat user.
type StateManager interface {
	SetUserState(ctx context.Context, userID int64, state string) error
	GetUserState(ctx context.Context, userID int64) (string, error)
	ClearUserState(ctx context.Context, userID int64) error
	SetTempData(ctx context.Context, userID int64, key, value string) error
	GetTempData(ctx context.Context, userID int64, key string) (string, bool, error)
	ClearTempData(ctx context.Context, userID int64) error
	Close() error
}

// Manager is an in-process StateManager. State is lost on restart.
type Manager struct {
	userStates map[int64]string
	tempData   map[int64]map[string]string
	mu         sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		tempData:   make(map[int64]map[string]string),
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(_ context.Context, userID int64, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
	return nil
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(_ context.Context, userID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None, nil
	}
	return state, nil
}

// ClearUserState clears the state for a user
func (m *Manager) ClearUserState(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
	return nil
}

// SetTempData sets temporary data for a user
func (m *Manager) SetTempData(_ context.Context, userID int64, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tempData[userID] == nil {
		m.tempData[userID] = make(map[string]string)
	}
	m.tempData[userID][key] = value
	return nil
}

// GetTempData gets temporary data for a user
func (m *Manager) GetTempData(_ context.Context, userID int64, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.tempData[userID][key]
	return value, exists, nil
}

// ClearTempData clears all temporary data for a user
func (m *Manager) ClearTempData(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tempData, userID)
	return nil
}

func (m *Manager) Close() error {
	return nil
}
