package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"path/filepath"
)

// ErrAlreadyRunning indicates another host already drives the same store.
var ErrAlreadyRunning = errors.New("timer already running for this data directory")

const (
	minLockPort = 20000
	maxLockPort = 39999
)

// InstanceLock is held by the process that owns a data directory's engine.
type InstanceLock struct {
	listener net.Listener
	key      string
}

// LockDataDir binds a localhost port derived from the data directory, so at
// most one GUI host ticks against a given store at a time.
func LockDataDir(appName, dataDir string) (*InstanceLock, error) {
	key := appName + "\x00" + filepath.Clean(dataDir)
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", lockPort(key)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, err)
	}
	return &InstanceLock{listener: listener, key: key}, nil
}

// Address returns the bound address, or "" for a nil lock.
func (lock *InstanceLock) Address() string {
	if lock == nil || lock.listener == nil {
		return ""
	}
	return lock.listener.Addr().String()
}

// Release frees the lock. It is safe on a nil lock.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	return err
}

func lockPort(key string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	return minLockPort + int(hash.Sum32()%uint32(maxLockPort-minLockPort+1))
}
