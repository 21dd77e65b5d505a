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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"code.luminapay.io/lumina/auth"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSocket(t *testing.T) {
	t.Run("A failed subscribe returns no stream", testFailedSubscribeReturnsNoStream)
}

func testFailedSubscribeReturnsNoStream(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		conn.Close()
	}))
	defer srv.Close()

	dialer := websocket.Dialer{}
	conn, _, err := dialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	// A live-looking socket whose writes fail, as after a connection loss
	// the read loop has not observed yet.
	r := New(nil, Config{}, auth.NewTokenProvider("id", "secret"), nil)
	r.sock = &socket{log: zap.NewNop(), conn: conn, subs: map[string]*Subscription{}}

	stream, err := r.Subscribe(context.Background(), Request{Query: "subscription { payment { status } }"})
	require.Error(t, err)
	if stream != nil {
		t.Fatal("a failed subscribe must yield a nil stream, not a typed nil inside the interface")
	}
}
