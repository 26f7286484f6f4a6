package circuit_test

import (
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/assert"

	circuit "github.com/jubjub-zk/circuit"
)

func TestVersionParses(t *testing.T) {
	assert.Equal(t, uint64(0), circuit.Version.Major)
}

func TestCompatibleWithSameMajor(t *testing.T) {
	other := semver.MustParse("0.9.9")
	assert.True(t, circuit.CompatibleWith(other))

	incompatible := semver.MustParse("1.0.0")
	assert.False(t, circuit.CompatibleWith(incompatible))
}
