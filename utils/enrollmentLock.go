package utils

import (
	"fmt"
	"sync"
)

// Progress updates are read-modify-write against a single enrollment row,
// so two concurrent toggles for the same (user, course) pair could lose one
// of the writes. Mutations are serialized per enrollment key instead.
// Entries live for the process lifetime: one mutex per distinct pair that
// has ever toggled progress, a few dozen bytes each, never evicted.
var enrollmentLocks sync.Map // "userID:courseID" -> *sync.Mutex

// LockEnrollment acquires the mutation lock for a (user, course) pair and
// returns it; the caller must Unlock when done.
func LockEnrollment(userID, courseID uint) *sync.Mutex {
	key := fmt.Sprintf("%d:%d", userID, courseID)
	lock, _ := enrollmentLocks.LoadOrStore(key, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	return mu
}
