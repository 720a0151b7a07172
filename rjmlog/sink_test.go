package rjmlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLogrusSinkWritesThroughLevels(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	sink := NewLogrusSink(log)
	sink.Info("input ready: %d meshes", 3)
	sink.Error("stage %s failed", "CentreStage")
	sink.Debug("aggregate centre = %v", [3]float32{0, 0, 0})

	out := buf.String()
	for _, want := range []string{"input ready: 3 meshes", "stage CentreStage failed", "aggregate centre"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestDiscardSinkIsSafe(t *testing.T) {
	Discard.Info("ignored")
	Discard.Error("ignored")
	Discard.Debug("ignored")
}
