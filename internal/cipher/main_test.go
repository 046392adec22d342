package cipher

import (
	"os"
	"testing"

	"smtlab/internal/smt"
)

func TestMain(m *testing.M) {
	smt.Init()
	code := m.Run()
	smt.Exit()
	os.Exit(code)
}
