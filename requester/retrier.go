// Copyright (C) 2024 Lumina Payments Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package requester

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
)

// Retrier retries transient network failures with exponential backoff. The
// requester itself never retries; callers wrap the read-only operations
// they know to be idempotent. Auth, signing and GraphQL-level failures are
// permanent and kill the retry loop immediately.
type Retrier struct {
	retries uint64
}

func NewRetrier(retries uint64) *Retrier {
	return &Retrier{
		retries: retries,
	}
}

// Execute runs op until it succeeds, returns a non-retryable error, the
// retry budget is exhausted, or ctx is done.
func (r *Retrier) Execute(ctx context.Context, op func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	var result map[string]interface{}

	attempt := func() error {
		res, err := op()
		if err != nil {
			netErr := &NetworkError{}
			if errors.As(err, &netErr) && (netErr.StatusCode == 0 || netErr.StatusCode >= 500) {
				return err
			}
			// Returning a permanent error kills the retry loop.
			return backoff.Permanent(err)
		}
		result = res
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.retries), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, err
	}
	return result, nil
}
