package domain

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
)

func TestCallErrorMessage(t *testing.T) {
	RegisterTestingT(t)

	err := &CallError{Kind: ErrTimeout, Message: "deadline exceeded"}
	Expect(err.Error()).To(ContainSubstring("timeout"))
	Expect(err.Error()).To(ContainSubstring("deadline exceeded"))

	cause := errors.New("connection reset")
	wrapped := &CallError{Kind: ErrTransport, Cause: cause}
	Expect(wrapped.Error()).To(ContainSubstring("connection reset"))
	Expect(errors.Unwrap(wrapped)).To(Equal(cause))
}

func TestKindOf(t *testing.T) {
	RegisterTestingT(t)

	Expect(KindOf(&CallError{Kind: ErrInvalidModel})).To(Equal(ErrInvalidModel))
	Expect(KindOf(fmt.Errorf("plain error"))).To(Equal(ErrUnknown))
}
