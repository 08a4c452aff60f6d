package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockDataDirIsExclusive(t *testing.T) {
	dir := t.TempDir()
	first, err := LockDataDir("SimpleTimerTest", dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Release() })
	assert.NotEmpty(t, first.Address())

	_, err = LockDataDir("SimpleTimerTest", dir)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())
	assert.Empty(t, first.Address())

	again, err := LockDataDir("SimpleTimerTest", dir+"/")
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestLockPortStaysInRange(t *testing.T) {
	for _, key := range []string{"", "a", "SimpleTimer\x00/home/user/.config/SimpleTimer"} {
		port := lockPort(key)
		assert.GreaterOrEqual(t, port, minLockPort)
		assert.LessOrEqual(t, port, maxLockPort)
	}
	assert.Equal(t, lockPort("x"), lockPort("x"))
}

func TestNilLockIsSafe(t *testing.T) {
	var lock *InstanceLock
	assert.NoError(t, lock.Release())
	assert.Empty(t, lock.Address())
}
