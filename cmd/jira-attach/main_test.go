package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileArg(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no args", args: nil, want: ""},
		{name: "no profile", args: []string{"list", "TES-3"}, want: ""},
		{name: "separate value", args: []string{"--profile", "/tmp/work.toml", "list", "TES-3"}, want: "/tmp/work.toml"},
		{name: "equals form", args: []string{"list", "--profile=work.toml", "TES-3"}, want: "work.toml"},
		{name: "missing value", args: []string{"list", "--profile"}, want: ""},
		{name: "after terminator", args: []string{"rename", "TES-3", "--", "--profile=a"}, want: ""},
		{name: "similar flag", args: []string{"--profiles", "x"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, profileArg(tt.args))
		})
	}
}
