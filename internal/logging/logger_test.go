package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("WARN"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("info"))
	// anything unrecognized logs everything rather than hiding logs
	assert.Equal(t, logrus.TraceLevel, GetLevel("loud"))
	assert.Equal(t, logrus.TraceLevel, GetLevel(""))
}
