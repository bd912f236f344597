package rbm

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	if !DefaultConf(6, 3).IsValid() {
		t.Errorf("Expected Default Config to be correct")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		conf  Config
		field string
	}{
		{"no visible", Config{Visible: 0, Hidden: 3}, "Visible"},
		{"negative hidden", Config{Visible: 6, Hidden: -1}, "Hidden"},
		{"negative gain", Config{Visible: 6, Hidden: 3, Gain: -0.1}, "Gain"},
		{"negative epochs", Config{Visible: 6, Hidden: 3, Epochs: -1}, "Epochs"},
		{"negative learning rate", Config{Visible: 6, Hidden: 3, LearningRate: -1}, "LearningRate"},
		{"valid", Config{Visible: 1, Hidden: 1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.validate()
			assert.Equal(t, tt.field == "", tt.conf.IsValid())
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ce *ConfigError
			if assert.True(t, errors.As(err, &ce), "expected a *ConfigError, got %v", err) {
				assert.Equal(t, tt.field, ce.Field)
			}
		})
	}
}
