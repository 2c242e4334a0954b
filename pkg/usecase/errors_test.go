package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/qainfo/pkg/usecase"
)

func TestErrors_SentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrMissingCode", usecase.ErrMissingCode},
		{"ErrInvalidGrant", usecase.ErrInvalidGrant},
		{"ErrRecordDisappeared", usecase.ErrRecordDisappeared},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.err).NotNil()
			gt.Bool(t, errors.Is(goerr.Wrap(tt.err, "wrapped"), tt.err)).True()
		})
	}
}

func TestErrors_ErrorsAreDistinct(t *testing.T) {
	gt.Bool(t, errors.Is(usecase.ErrMissingCode, usecase.ErrInvalidGrant)).False()
	gt.Bool(t, errors.Is(usecase.ErrInvalidGrant, usecase.ErrRecordDisappeared)).False()
}
