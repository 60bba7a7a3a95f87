package main

import (
	"fmt"
	"testing"
	"time"

	commonerrors "internship-recommender/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRetryWithBackoff(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"succeeds after transient failures", 2, fmt.Errorf("connection refused"), 3, false},
		{"gives up after max attempts", 10, commonerrors.NewDatabaseConnectionFailedError(fmt.Errorf("refused")), 4, true},
		{"stops on a non-retryable error", 10, commonerrors.NewValidationError("unsupported catalog source"), 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retryWithBackoff(func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			}, 4, time.Millisecond, zap.NewNop(), "catalog source initialization")

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
