package sozluk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityHas(t *testing.T) {
	granted := CapabilitySimpleRW | CapabilityDeleteEntry

	assert.True(t, granted.Has(CapabilitySimpleRW))
	assert.True(t, granted.Has(CapabilityDeleteEntry))
	assert.True(t, granted.Has(CapabilitySimpleRW|CapabilityDeleteEntry))

	assert.False(t, granted.Has(CapabilityAdministrator))
	assert.False(t, granted.Has(CapabilitySimpleRW|CapabilityMoveTopic))
}
