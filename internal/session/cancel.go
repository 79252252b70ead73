// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"
)

// =============================================================================
// CANCEL FUNCTION MANAGEMENT (THREAD-SAFE)
// =============================================================================

// cancelManager holds the cancel function of the outstanding request. It has
// its own lock so Cancel never waits on the controller lock.
type cancelManager struct {
	mu         sync.Mutex
	turnID     string
	cancelFunc context.CancelFunc
}

// set stores the cancel function for turnID, releasing any previous one.
func (cm *cancelManager) set(turnID string, fn context.CancelFunc) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancelFunc != nil {
		cm.cancelFunc()
	}
	cm.turnID = turnID
	cm.cancelFunc = fn
}

// cancel invokes the stored cancel function. It reports whether a request
// was outstanding. Safe to call multiple times.
func (cm *cancelManager) cancel() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancelFunc == nil {
		return false
	}
	cm.cancelFunc()
	cm.cancelFunc = nil
	return true
}

// clear releases the context for turnID once its outcome is applied. A stale
// turnID is ignored.
func (cm *cancelManager) clear(turnID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.turnID != turnID {
		return
	}
	if cm.cancelFunc != nil {
		cm.cancelFunc()
		cm.cancelFunc = nil
	}
	cm.turnID = ""
}
