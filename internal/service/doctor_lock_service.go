package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale mutexes
	defaultLockCleanupInterval = time.Minute

	// How long a mutex must be unused before cleanup
	defaultLockIdleTimeout = 10 * time.Minute
)

// DoctorLockService hands out one mutex per doctor so that the booking
// check-then-insert sequence runs as a single critical section per doctor.
//
// Bookings for different doctors never contend with each other.
// Idle mutexes are evicted by a background goroutine; call Stop() during shutdown.
type DoctorLockService struct {
	log         *logrus.Logger
	idleTimeout time.Duration

	doctorMu sync.Map // map[int]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix nano
}

// NewDoctorLockService starts the cleanup loop. A non-positive idleTimeout uses the default.
func NewDoctorLockService(log *logrus.Logger, idleTimeout time.Duration) *DoctorLockService {
	if idleTimeout <= 0 {
		idleTimeout = defaultLockIdleTimeout
	}

	interval := defaultLockCleanupInterval
	if idleTimeout < interval {
		interval = idleTimeout
	}

	svc := &DoctorLockService{
		log:         log,
		idleTimeout: idleTimeout,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupLoop(interval)

	return svc
}

// Lock acquires the doctor's mutex and returns the matching unlock func
func (s *DoctorLockService) Lock(doctorID int) (unlock func()) {
	for {
		mt := s.getDoctorMutex(doctorID)
		mt.mu.Lock()

		// The mutex may have been evicted between load and lock; retry with the live one
		if current, ok := s.doctorMu.Load(doctorID); ok && current == mt {
			mt.lastUsed.Store(time.Now().UnixNano())
			return mt.mu.Unlock
		}
		mt.mu.Unlock()
	}
}

// Stop gracefully shuts down the cleanup goroutine.
// Safe to call multiple times.
func (s *DoctorLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("DoctorLockService stopped")
	}
}

// Size returns the number of live mutexes
func (s *DoctorLockService) Size() int {
	n := 0
	s.doctorMu.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (s *DoctorLockService) getDoctorMutex(doctorID int) *mutexWithTimestamp {
	mt, _ := s.doctorMu.LoadOrStore(doctorID, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().UnixNano())
	return result
}

func (s *DoctorLockService) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Doctor lock cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.evictIdle(time.Now())
		}
	}
}

// evictIdle removes mutexes unused since now-idleTimeout.
// lastUsed is checked while holding the mutex so a busy mutex is never removed.
func (s *DoctorLockService) evictIdle(now time.Time) int {
	cutoff := now.Add(-s.idleTimeout).UnixNano()
	var cleaned int

	s.doctorMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoff {
				s.doctorMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d idle doctor locks", cleaned)
	}
	return cleaned
}
