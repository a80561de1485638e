package utils

import (
	"sync"
	"testing"
)

func TestLockEnrollmentSerializesSameKey(t *testing.T) {
	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock := LockEnrollment(7, 3)
			defer lock.Unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("lost updates under the enrollment lock: counter = %d, want %d", counter, workers)
	}
}

func TestLockEnrollmentDistinctKeysIndependent(t *testing.T) {
	first := LockEnrollment(1, 1)
	defer first.Unlock()

	done := make(chan struct{})
	go func() {
		lock := LockEnrollment(1, 2)
		lock.Unlock()
		close(done)
	}()

	// A different (user, course) pair must not block behind the first lock.
	<-done
}
