package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// Driver names the front end holding a lock. The desktop and terminal
// drivers lock separately, so one of each may run at a time.
type Driver string

const (
	DriverDesktop  Driver = "desktop"
	DriverTerminal Driver = "terminal"
)

// ErrAlreadyRunning is returned when another process holds the driver's lock.
var ErrAlreadyRunning = errors.New("driver already running")

const (
	lockPortFirst = 20000
	lockPortCount = 20000
)

// InstanceLock is held for the lifetime of a driver process.
type InstanceLock struct {
	driver   Driver
	listener net.Listener
}

// LockInstance claims the loopback port for appName and driver.
func LockInstance(appName string, driver Driver) (*InstanceLock, error) {
	address := LockAddress(appName, driver)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s on %s", ErrAlreadyRunning, appName, driver, address)
	}
	return &InstanceLock{driver: driver, listener: listener}, nil
}

// LockAddress is the loopback address a driver binds for appName.
func LockAddress(appName string, driver Driver) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName + "/" + string(driver)))
	return fmt.Sprintf("127.0.0.1:%d", lockPortFirst+int(hash.Sum32()%lockPortCount))
}

// Driver reports which front end holds the lock.
func (lock *InstanceLock) Driver() Driver {
	if lock == nil {
		return ""
	}
	return lock.driver
}

// Unlock releases the port. Calling it twice, or on nil, is a no-op.
func (lock *InstanceLock) Unlock() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	listener := lock.listener
	lock.listener = nil
	return listener.Close()
}
