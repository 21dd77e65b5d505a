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

// Package await implements the wait-for-terminal-state pattern layered on
// subscriptions. It is used identically for wallet deployment, wallet
// initialization and payment completion.
package await

import (
	"context"
	"fmt"
	"time"
)

// Stream is a cancelable lazy sequence of states pushed by the server.
type Stream[S any] interface {
	// Updates delivers one state per server push. The channel is closed when
	// the subscription completes or errors; Err distinguishes the two.
	Updates() <-chan S

	// Err returns the terminal subscription error, if any, once Updates is
	// closed.
	Err() error

	// Close cancels the subscription. It is safe to call more than once.
	Close()
}

// SubscribeFunc opens the status subscription. It is only invoked when the
// current state is not already terminal.
type SubscribeFunc[S any] func(ctx context.Context) (Stream[S], error)

// TimeoutError reports that none of the expected states was reached in time.
type TimeoutError struct {
	Expected []string
	After    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for one of the states %v", e.After, e.Expected)
}

// AwaitError reports a subscription that completed without ever emitting a
// terminal state.
type AwaitError struct {
	Expected []string
}

func (e *AwaitError) Error() string {
	return fmt.Sprintf("the subscription completed without reaching one of the states %v", e.Expected)
}

// WaitForTerminal waits until the subscription pushes a state belonging to
// the terminal set, and returns it. Exactly one of four outcomes occurs:
// the first terminal state is returned, a TimeoutError is returned after
// timeout, the subscription's own error is propagated, or an AwaitError is
// returned when the subscription completes without a terminal state. When
// current is already terminal, it is returned without subscribing. On every
// path the timer is stopped and the subscription closed exactly once.
func WaitForTerminal[S comparable](
	ctx context.Context,
	current S,
	terminal []S,
	subscribe SubscribeFunc[S],
	timeout time.Duration,
) (S, error) {
	var zero S

	if isTerminal(current, terminal) {
		return current, nil
	}

	stream, err := subscribe(ctx)
	if err != nil {
		return zero, err
	}
	defer stream.Close()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case state, ok := <-stream.Updates():
			if !ok {
				if subErr := stream.Err(); subErr != nil {
					return zero, subErr
				}
				return zero, &AwaitError{Expected: describe(terminal)}
			}
			if isTerminal(state, terminal) {
				return state, nil
			}
		case <-timer.C:
			return zero, &TimeoutError{Expected: describe(terminal), After: timeout}
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

func isTerminal[S comparable](state S, terminal []S) bool {
	for _, t := range terminal {
		if state == t {
			return true
		}
	}
	return false
}

func describe[S any](states []S) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, fmt.Sprintf("%v", s))
	}
	return out
}
