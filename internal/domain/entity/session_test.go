package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Valid(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.Valid())
	assert.False(t, (&Session{}).Valid())
	assert.False(t, (&Session{RefreshToken: "refresh-only"}).Valid())
	assert.True(t, (&Session{AccessToken: "access-1"}).Valid())
}

func TestNavigationEvent_Failed(t *testing.T) {
	assert.False(t, NavigationEvent{Stage: StageWillNavigate}.Failed())
	assert.False(t, NavigationEvent{Stage: StageDidNavigate, Code: -105}.Failed())
	// An aborted load is how redirects look mid-chain; it is not a failure.
	assert.False(t, NavigationEvent{Stage: StageLoadFailed, Code: LoadAbortedCode}.Failed())
	assert.True(t, NavigationEvent{Stage: StageLoadFailed, Code: -105}.Failed())
	assert.True(t, NavigationEvent{Stage: StageLoadFailed, Code: 0}.Failed())
}
