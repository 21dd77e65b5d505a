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
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsSubprotocol      = "graphql-transport-ws"
	wsHandshakeTimeout = 15 * time.Second

	msgTypeConnectionInit = "connection_init"
	msgTypeConnectionAck  = "connection_ack"
	msgTypeSubscribe      = "subscribe"
	msgTypeNext           = "next"
	msgTypeError          = "error"
	msgTypeComplete       = "complete"
	msgTypePing           = "ping"
	msgTypePong           = "pong"

	// slow consumers get updates dropped rather than stalling the shared
	// read loop; status streams only care about the latest state anyway
	subscriptionBuffer = 64
)

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Stream is the consumer's view on one multiplexed subscription.
type Stream interface {
	// Updates delivers one data object per server push. The channel is
	// closed when the subscription terminates; Err tells why.
	Updates() <-chan map[string]interface{}

	// Err returns the terminal error once Updates is closed, nil for a
	// clean completion.
	Err() error

	// Unsubscribe stops the subscription. Safe to call more than once.
	Unsubscribe()
}

// Subscribe opens a subscription over the shared websocket connection. The
// connection is lazily dialed on first use and implicitly shared by every
// subscription; a dropped transport surfaces as a terminal error on all of
// them rather than being silently re-dialed, since a silent reconnect could
// make callers miss status transitions.
func (r *Requester) Subscribe(ctx context.Context, req Request) (Stream, error) {
	provider := r.provider()
	if !req.SkipAuthCheck && !provider.IsAuthorized() {
		return nil, ErrAuthRequired
	}

	r.mu.Lock()
	sock := r.sock
	if sock == nil || sock.isDead() {
		var err error
		sock, err = dialSocket(ctx, r.log, r.cfg.WSEndpoint, provider.WSConnectionParams())
		if err != nil {
			r.mu.Unlock()
			return nil, err
		}
		r.sock = sock
	}
	r.mu.Unlock()

	sub, err := sock.subscribe(req)
	if err != nil {
		// A typed nil wrapped in the Stream interface is not nil to callers.
		return nil, err
	}
	return sub, nil
}

// Close tears down the subscription transport, failing every active
// subscription. Queries are unaffected.
func (r *Requester) Close() {
	r.mu.Lock()
	sock := r.sock
	r.sock = nil
	r.mu.Unlock()
	if sock != nil {
		sock.fail(ErrSubscriptionsClosed)
	}
}

type socket struct {
	log  *zap.Logger
	conn *websocket.Conn

	writeMu sync.Mutex

	mu   sync.Mutex
	subs map[string]*Subscription
	dead bool
}

func dialSocket(ctx context.Context, log *zap.Logger, endpoint string, connParams map[string]interface{}) (*socket, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: wsHandshakeTimeout,
		Subprotocols:     []string{wsSubprotocol},
	}
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("couldn't dial the subscription endpoint: %w", err)}
	}

	payload, err := json.Marshal(connParams)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("couldn't serialize the connection params: %w", err)
	}
	if err := conn.WriteJSON(wsMessage{Type: msgTypeConnectionInit, Payload: payload}); err != nil {
		conn.Close()
		return nil, &NetworkError{Err: err}
	}

	_ = conn.SetReadDeadline(time.Now().Add(wsHandshakeTimeout))
	var ack wsMessage
	if err := conn.ReadJSON(&ack); err != nil {
		conn.Close()
		return nil, &NetworkError{Err: err}
	}
	if ack.Type != msgTypeConnectionAck {
		conn.Close()
		return nil, fmt.Errorf("%w: got %q", ErrConnectionNotAcked, ack.Type)
	}
	_ = conn.SetReadDeadline(time.Time{})

	log.Debug("subscription transport established", zap.String("endpoint", endpoint))

	s := &socket{
		log:  log,
		conn: conn,
		subs: map[string]*Subscription{},
	}
	go s.readLoop()
	return s, nil
}

func (s *socket) isDead() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dead
}

func (s *socket) subscribe(req Request) (*Subscription, error) {
	sub := &Subscription{
		id:      uuid.NewString(),
		sock:    s,
		updates: make(chan map[string]interface{}, subscriptionBuffer),
	}

	s.mu.Lock()
	if s.dead {
		s.mu.Unlock()
		return nil, ErrSubscriptionsClosed
	}
	s.subs[sub.id] = sub
	s.mu.Unlock()

	payload, err := json.Marshal(map[string]interface{}{
		"query":     req.Query,
		"variables": req.Variables,
	})
	if err != nil {
		s.remove(sub.id)
		return nil, fmt.Errorf("couldn't serialize the subscription: %w", err)
	}
	if err := s.write(wsMessage{ID: sub.id, Type: msgTypeSubscribe, Payload: payload}); err != nil {
		s.remove(sub.id)
		return nil, &NetworkError{Err: err}
	}

	s.log.Debug("subscription started",
		zap.String("operation", req.Name),
		zap.String("subscription-id", sub.id),
	)
	return sub, nil
}

func (s *socket) write(msg wsMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (s *socket) lookup(id string) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subs[id]
}

func (s *socket) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// fail marks the transport dead and terminates every active subscription
// with err. Other concurrent operations are unaffected.
func (s *socket) fail(err error) {
	s.mu.Lock()
	if s.dead {
		s.mu.Unlock()
		return
	}
	s.dead = true
	active := make([]*Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		active = append(active, sub)
	}
	s.subs = map[string]*Subscription{}
	s.mu.Unlock()

	_ = s.conn.Close()
	for _, sub := range active {
		sub.finish(err)
	}
}

func (s *socket) readLoop() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.fail(&NetworkError{Err: err})
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Warn("discarding an unparsable frame", zap.Error(err))
			continue
		}

		switch msg.Type {
		case msgTypePing:
			_ = s.write(wsMessage{Type: msgTypePong})
		case msgTypePong, msgTypeConnectionAck:
			// keep-alive noise
		case msgTypeNext:
			s.handleNext(msg)
		case msgTypeError:
			s.handleError(msg)
		case msgTypeComplete:
			if sub := s.lookup(msg.ID); sub != nil {
				s.remove(msg.ID)
				sub.finish(nil)
			}
		default:
			s.log.Warn("discarding an unexpected frame", zap.String("type", msg.Type))
		}
	}
}

func (s *socket) handleNext(msg wsMessage) {
	sub := s.lookup(msg.ID)
	if sub == nil {
		return
	}

	var payload graphQLResponse
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Warn("discarding an unparsable subscription payload",
			zap.String("subscription-id", msg.ID),
			zap.Error(err),
		)
		return
	}

	// a mid-stream GraphQL error terminates this subscription only
	if len(payload.Errors) > 0 {
		s.remove(msg.ID)
		sub.finish(&GraphQLError{Messages: messagesOf(payload.Errors)})
		return
	}

	sub.push(payload.Data)
}

func (s *socket) handleError(msg wsMessage) {
	sub := s.lookup(msg.ID)
	if sub == nil {
		return
	}
	var errs []graphQLMessage
	_ = json.Unmarshal(msg.Payload, &errs)
	s.remove(msg.ID)
	sub.finish(&GraphQLError{Messages: messagesOf(errs)})
}

func messagesOf(errs []graphQLMessage) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message)
	}
	return out
}

// Subscription is one multiplexed stream of server pushes.
type Subscription struct {
	id   string
	sock *socket

	mu       sync.Mutex
	updates  chan map[string]interface{}
	err      error
	finished bool

	unsubOnce sync.Once
}

func (s *Subscription) Updates() <-chan map[string]interface{} {
	return s.updates
}

func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) Unsubscribe() {
	s.unsubOnce.Do(func() {
		s.sock.remove(s.id)
		_ = s.sock.write(wsMessage{ID: s.id, Type: msgTypeComplete})
		s.finish(nil)
	})
}

func (s *Subscription) push(data map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}
	select {
	case s.updates <- data:
	default:
		s.sock.log.Warn("dropping an update for a slow consumer",
			zap.String("subscription-id", s.id),
		)
	}
}

func (s *Subscription) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}
	s.finished = true
	s.err = err
	close(s.updates)
}
