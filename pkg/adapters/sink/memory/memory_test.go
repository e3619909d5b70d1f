package memory

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"

	"gatelab/pkg/domain"
)

func TestWriteAndList(t *testing.T) {
	RegisterTestingT(t)

	sink := NewReportSink()

	ref, err := sink.Write(context.Background(), &domain.Report{RunID: "run-1"})
	Expect(err).To(BeNil())
	Expect(ref).To(Equal("run-1"))

	_, err = sink.Write(context.Background(), &domain.Report{RunID: "run-2"})
	Expect(err).To(BeNil())

	reports := sink.Reports()
	Expect(reports).To(HaveLen(2))
	Expect(reports[0].RunID).To(Equal("run-1"))
	Expect(reports[1].RunID).To(Equal("run-2"))
}
