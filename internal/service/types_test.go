package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Report", "report"},
		{"  HIGH  ", "high"},
		{"Buy Milk", "buy milk"},
		{"", ""},
		{"   ", ""},
		{"ÉTÉ", "été"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNewTask(t *testing.T) {
	task := NewTask(" Write Report ", "High")
	assert.Equal(t, Task{Title: "write report", Priority: "high"}, task)
}
