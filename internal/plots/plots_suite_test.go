package plots_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPlots(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Plots Suite")
}
