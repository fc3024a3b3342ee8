package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRegistration(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"run", "siccodes", "export", "serve"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestRootUse(t *testing.T) {
	assert.Equal(t, "fundamentals-cli", rootCmd.Use)
}
