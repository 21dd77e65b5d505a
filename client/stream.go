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

package client

import (
	"code.luminapay.io/lumina/requester"
)

// statusStream turns the requester's raw update stream into a typed status
// stream. It keeps only the latest state: status consumers act on where the
// entity is now, not on the full transition history.
type statusStream[S any] struct {
	inner   requester.Stream
	updates chan S
	err     error
}

func newStatusStream[S any](inner requester.Stream, extract func(map[string]interface{}) (S, bool)) *statusStream[S] {
	s := &statusStream[S]{
		inner:   inner,
		updates: make(chan S, 1),
	}
	go s.pump(extract)
	return s
}

// pump is the only sender on s.updates, which makes the drop-oldest push
// below race-free. It sets s.err before closing the channel, so consumers
// that observed the close can read it without synchronization.
func (s *statusStream[S]) pump(extract func(map[string]interface{}) (S, bool)) {
	for raw := range s.inner.Updates() {
		state, ok := extract(raw)
		if !ok {
			continue
		}
		select {
		case s.updates <- state:
		default:
			select {
			case <-s.updates:
			default:
			}
			select {
			case s.updates <- state:
			default:
			}
		}
	}
	s.err = s.inner.Err()
	close(s.updates)
}

func (s *statusStream[S]) Updates() <-chan S {
	return s.updates
}

// Err reports why the stream ended. Only meaningful after the updates
// channel is closed.
func (s *statusStream[S]) Err() error {
	return s.err
}

// Close unsubscribes the underlying stream, which ends the pump.
func (s *statusStream[S]) Close() {
	s.inner.Unsubscribe()
}
